package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	api "github.com/clouddiag/openstack-advisor/api/v1alpha1"
)

var _ = Describe("Service health prober", func() {
	failingServers := func(ctx context.Context) ([]api.Server, error) {
		return nil, errors.New("compute api timeout")
	}
	failingVolumes := func(ctx context.Context) ([]api.Volume, error) {
		return nil, errors.New("storage api timeout")
	}
	failingNetworks := func(ctx context.Context) ([]api.Network, error) {
		return nil, errors.New("networking api timeout")
	}

	It("reports healthy when every probe succeeds", func() {
		mock := &CloudMock{
			ListServersFunc: func(ctx context.Context) ([]api.Server, error) {
				return []api.Server{{ID: "s-1"}, {ID: "s-2"}}, nil
			},
		}
		advisor := newAdvisor(mock)

		report := advisor.CheckServiceHealth(context.TODO())
		Expect(report.OverallStatus).To(Equal(api.OverallStatusHealthy))
		Expect(report.Summary.TotalServices).To(Equal(3))
		Expect(report.Summary.HealthyServices).To(Equal(3))
		Expect(report.Summary.UnhealthyServices).To(BeZero())

		Expect(report.Services).To(HaveKey("nova"))
		Expect(report.Services).To(HaveKey("cinder"))
		Expect(report.Services).To(HaveKey("neutron"))
		Expect(report.Services["nova"].Status).To(Equal(api.ServiceStatusHealthy))
		Expect(report.Services["nova"].Message).To(Equal("Successfully retrieved 2 servers"))
	})

	It("degrades on a single unhealthy service", func() {
		mock := &CloudMock{ListVolumesFunc: failingVolumes}
		advisor := newAdvisor(mock)

		report := advisor.CheckServiceHealth(context.TODO())
		Expect(report.OverallStatus).To(Equal(api.OverallStatusDegraded))
		Expect(report.Summary.UnhealthyServices).To(Equal(1))
		Expect(report.Services["cinder"].Status).To(Equal(api.ServiceStatusUnhealthy))
		Expect(report.Services["cinder"].Message).To(ContainSubstring("Cinder service error"))
		Expect(report.Services["nova"].Status).To(Equal(api.ServiceStatusHealthy))
	})

	It("turns critical on two unhealthy services", func() {
		mock := &CloudMock{
			ListServersFunc: failingServers,
			ListVolumesFunc: failingVolumes,
		}
		advisor := newAdvisor(mock)

		report := advisor.CheckServiceHealth(context.TODO())
		Expect(report.OverallStatus).To(Equal(api.OverallStatusCritical))
		Expect(report.Summary.UnhealthyServices).To(Equal(2))
		Expect(report.Summary.HealthyServices).To(Equal(1))
	})

	It("turns critical when every probe fails and still reports all three", func() {
		mock := &CloudMock{
			ListServersFunc:  failingServers,
			ListVolumesFunc:  failingVolumes,
			ListNetworksFunc: failingNetworks,
		}
		advisor := newAdvisor(mock)

		report := advisor.CheckServiceHealth(context.TODO())
		Expect(report.OverallStatus).To(Equal(api.OverallStatusCritical))
		Expect(report.Summary.UnhealthyServices).To(Equal(3))
		Expect(report.Services).To(HaveLen(3))
		for _, health := range report.Services {
			Expect(health.Status).To(Equal(api.ServiceStatusUnhealthy))
			Expect(health.LastCheck).ToNot(BeZero())
		}
	})
})
