package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	api "github.com/clouddiag/openstack-advisor/api/v1alpha1"
	"github.com/clouddiag/openstack-advisor/internal/config"
	"github.com/clouddiag/openstack-advisor/internal/inventory"
	"github.com/clouddiag/openstack-advisor/internal/service"
)

func newAdvisor(mock *CloudMock) *service.AdvisorService {
	return service.NewAdvisorService(mock, config.SvcConfig{
		FetchTimeout:     time.Second,
		FetchParallelism: 4,
		ProbeTimeout:     time.Second,
	})
}

var _ = Describe("Advisor service", func() {
	Context("detail lookups", func() {
		It("rejects a blank server id before any client call", func() {
			mock := &CloudMock{}
			advisor := newAdvisor(mock)

			_, err := advisor.GetServerDetails(context.TODO(), "")
			Expect(err).To(HaveOccurred())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrValidation{}))
			Expect(mock.Calls()).To(BeZero())
		})

		It("rejects blank flavor and image ids before any client call", func() {
			mock := &CloudMock{}
			advisor := newAdvisor(mock)

			_, err := advisor.GetFlavorDetails(context.TODO(), "")
			Expect(err).To(BeAssignableToTypeOf(&service.ErrValidation{}))
			_, err = advisor.GetImageDetails(context.TODO(), "")
			Expect(err).To(BeAssignableToTypeOf(&service.ErrValidation{}))
			Expect(mock.Calls()).To(BeZero())
		})

		It("passes the id through to the client", func() {
			mock := &CloudMock{}
			advisor := newAdvisor(mock)

			server, err := advisor.GetServerDetails(context.TODO(), "srv-1")
			Expect(err).ToNot(HaveOccurred())
			Expect(server.ID).To(Equal("srv-1"))
		})
	})

	Context("listings", func() {
		It("degrades a failed listing to an empty collection with a diagnostic", func() {
			mock := &CloudMock{
				ListServersFunc: func(ctx context.Context) ([]api.Server, error) {
					return nil, errors.New("nova unreachable")
				},
			}
			advisor := newAdvisor(mock)

			servers, diagnostic := advisor.ListServers(context.TODO())
			Expect(servers).To(BeEmpty())
			Expect(servers).ToNot(BeNil())
			Expect(diagnostic).To(ContainSubstring("nova unreachable"))
		})

		It("returns an empty diagnostic on success", func() {
			mock := &CloudMock{
				ListVolumesFunc: func(ctx context.Context) ([]api.Volume, error) {
					return []api.Volume{{ID: "v-1"}}, nil
				},
			}
			advisor := newAdvisor(mock)

			volumes, diagnostic := advisor.ListVolumes(context.TODO())
			Expect(volumes).To(HaveLen(1))
			Expect(diagnostic).To(BeEmpty())
		})
	})

	Context("server analysis", func() {
		It("correlates flavor allocation and hypervisor placement", func() {
			mock := &CloudMock{
				GetServerFunc: func(ctx context.Context, id string) (*api.Server, error) {
					return &api.Server{ID: id, Name: "web-1", Status: "ACTIVE", Host: "compute-1", FlavorID: "f-1", PowerState: 1}, nil
				},
				GetFlavorFunc: func(ctx context.Context, id string) (*api.Flavor, error) {
					return &api.Flavor{ID: id, VCPUs: 4, RAMMB: 8192, DiskGB: 40}, nil
				},
				ListHypervisorsFunc: func(ctx context.Context) ([]api.Hypervisor, error) {
					return []api.Hypervisor{
						{Hostname: "compute-2", VCPUs: 16},
						{Hostname: "compute-1", Status: "enabled", State: "up", VCPUs: 32, VCPUsUsed: 8, MemoryMB: 65536, MemoryMBUsed: 16384, RunningVMs: 3},
					}, nil
				},
			}
			advisor := newAdvisor(mock)

			analysis, err := advisor.AnalyzeServerResources(context.TODO(), "srv-1")
			Expect(err).ToNot(HaveOccurred())
			Expect(analysis.HealthStatus).To(Equal(api.HealthStatusHealthy))
			Expect(analysis.ServerInfo.Name).To(Equal("web-1"))
			Expect(analysis.ResourceAllocation).ToNot(BeNil())
			Expect(analysis.ResourceAllocation.VCPUs).To(Equal(int64(4)))
			Expect(analysis.HostAnalysis).ToNot(BeNil())
			Expect(analysis.HostAnalysis.Hypervisor).To(Equal("compute-1"))
			Expect(analysis.HostAnalysis.RunningVMs).To(Equal(3))
		})

		It("degrades missing flavor and host data to nil sections", func() {
			mock := &CloudMock{
				GetServerFunc: func(ctx context.Context, id string) (*api.Server, error) {
					return &api.Server{ID: id, Status: "SHUTOFF"}, nil
				},
			}
			advisor := newAdvisor(mock)

			analysis, err := advisor.AnalyzeServerResources(context.TODO(), "srv-1")
			Expect(err).ToNot(HaveOccurred())
			Expect(analysis.ResourceAllocation).To(BeNil())
			Expect(analysis.HostAnalysis).To(BeNil())
			Expect(analysis.HealthStatus).To(Equal(api.HealthStatusStopped))
		})

		It("keeps the analysis when the flavor lookup fails", func() {
			mock := &CloudMock{
				GetServerFunc: func(ctx context.Context, id string) (*api.Server, error) {
					return &api.Server{ID: id, Status: "ACTIVE", FlavorID: "f-gone", PowerState: 1}, nil
				},
				GetFlavorFunc: func(ctx context.Context, id string) (*api.Flavor, error) {
					return nil, errors.New("flavor gone")
				},
			}
			advisor := newAdvisor(mock)

			analysis, err := advisor.AnalyzeServerResources(context.TODO(), "srv-1")
			Expect(err).ToNot(HaveOccurred())
			Expect(analysis.ResourceAllocation).To(BeNil())
			Expect(analysis.HealthStatus).To(Equal(api.HealthStatusHealthy))
		})
	})

	Context("infrastructure summary", func() {
		It("aggregates the four collections", func() {
			mock := &CloudMock{
				ListServersFunc: func(ctx context.Context) ([]api.Server, error) {
					return []api.Server{{Status: "ACTIVE"}, {Status: "ACTIVE"}, {Status: "ERROR"}}, nil
				},
				ListHypervisorsFunc: func(ctx context.Context) ([]api.Hypervisor, error) {
					return []api.Hypervisor{{VCPUs: 32, VCPUsUsed: 8, MemoryMB: 1000, MemoryMBUsed: 500}}, nil
				},
				ListVolumesFunc: func(ctx context.Context) ([]api.Volume, error) {
					return []api.Volume{{SizeGB: 100}, {SizeGB: 50}}, nil
				},
				ListNetworksFunc: func(ctx context.Context) ([]api.Network, error) {
					return []api.Network{{External: true}, {}}, nil
				},
			}
			advisor := newAdvisor(mock)

			summary := advisor.GetInfrastructureSummary(context.TODO())
			Expect(summary.Compute.Servers.Total).To(Equal(3))
			Expect(summary.Compute.Servers.ByStatus).To(Equal(api.StatusBreakdown{"ACTIVE": 2, "ERROR": 1}))
			Expect(summary.Compute.Hypervisors.VCPUs.UtilizationPercent).To(Equal(25.0))
			Expect(summary.Storage.Volumes.TotalSizeGB).To(Equal(int64(150)))
			Expect(summary.Network.Networks.External).To(Equal(1))
			Expect(summary.Diagnostics).To(BeEmpty())
		})

		It("keeps healthy sections when one fetch fails", func() {
			mock := &CloudMock{
				ListVolumesFunc: func(ctx context.Context) ([]api.Volume, error) {
					return nil, errors.New("cinder down")
				},
				ListServersFunc: func(ctx context.Context) ([]api.Server, error) {
					return []api.Server{{Status: "ACTIVE"}}, nil
				},
			}
			advisor := newAdvisor(mock)

			summary := advisor.GetInfrastructureSummary(context.TODO())
			Expect(summary.Compute.Servers.Total).To(Equal(1))
			Expect(summary.Storage.Volumes.Total).To(BeZero())
			Expect(summary.Diagnostics).To(HaveLen(1))
			Expect(summary.Diagnostics[0]).To(ContainSubstring("failed to list volumes"))
		})
	})

	Context("resource utilization", func() {
		It("computes per-host metrics and the summary", func() {
			mock := &CloudMock{
				ListHypervisorsFunc: func(ctx context.Context) ([]api.Hypervisor, error) {
					return []api.Hypervisor{
						{Hostname: "compute-1", Status: "enabled", VCPUs: 10, VCPUsUsed: 5, RunningVMs: 4},
						{Hostname: "compute-2", Status: "disabled", VCPUs: 10, VCPUsUsed: 9, RunningVMs: 1},
					}, nil
				},
			}
			advisor := newAdvisor(mock)

			utilization, err := advisor.GetResourceUtilization(context.TODO())
			Expect(err).ToNot(HaveOccurred())
			Expect(utilization.Hypervisors).To(HaveLen(2))
			Expect(utilization.Hypervisors[0].CPU.UtilizationPercent).To(Equal(50.0))
			Expect(utilization.Summary.TotalHypervisors).To(Equal(2))
			Expect(utilization.Summary.ActiveHypervisors).To(Equal(1))
			Expect(utilization.Summary.TotalVMs).To(Equal(5))
		})

		It("propagates a hypervisor listing failure", func() {
			mock := &CloudMock{
				ListHypervisorsFunc: func(ctx context.Context) ([]api.Hypervisor, error) {
					return nil, errors.New("nova down")
				},
			}
			advisor := newAdvisor(mock)

			_, err := advisor.GetResourceUtilization(context.TODO())
			Expect(err).To(HaveOccurred())
		})
	})

	Context("inventory report", func() {
		It("assembles a detailed report by default", func() {
			mock := &CloudMock{
				ListServersFunc: func(ctx context.Context) ([]api.Server, error) {
					return []api.Server{{ID: "s-1", Status: "ACTIVE"}}, nil
				},
			}
			advisor := newAdvisor(mock)

			report := advisor.GenerateInventoryReport(context.TODO(), "")
			Expect(report.Metadata.Format).To(Equal(inventory.FormatDetailed))
			Expect(report.Compute.ServerDetails).To(HaveLen(1))
			Expect(report.Metadata.ReportID).ToNot(BeEmpty())
		})

		It("produces a partial report when one kind fails", func() {
			mock := &CloudMock{
				ListRoutersFunc: func(ctx context.Context) ([]api.Router, error) {
					return nil, errors.New("neutron timeout")
				},
				ListServersFunc: func(ctx context.Context) ([]api.Server, error) {
					return []api.Server{{ID: "s-1", Status: "ACTIVE"}}, nil
				},
			}
			advisor := newAdvisor(mock)

			report := advisor.GenerateInventoryReport(context.TODO(), inventory.FormatSummary)
			Expect(report.Summary.TotalResources.Servers).To(Equal(1))
			Expect(report.Summary.TotalResources.Routers).To(BeZero())
			Expect(report.Metadata.Diagnostics).To(HaveLen(1))
			Expect(report.Metadata.Diagnostics[0]).To(ContainSubstring("failed to list routers"))
		})

		It("still produces a report when the caller context is expired", func() {
			failWhenDone := func(ctx context.Context) error {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
					return nil
				}
			}
			mock := &CloudMock{
				ListServersFunc: func(ctx context.Context) ([]api.Server, error) {
					if err := failWhenDone(ctx); err != nil {
						return nil, err
					}
					return []api.Server{{ID: "s-1"}}, nil
				},
			}
			advisor := newAdvisor(mock)

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			report := advisor.GenerateInventoryReport(ctx, inventory.FormatSummary)
			Expect(report.Metadata.ReportID).ToNot(BeEmpty())
			Expect(report.Summary.TotalResources.Servers).To(BeZero())
			Expect(report.Metadata.Diagnostics).ToNot(BeEmpty())
		})
	})
})
