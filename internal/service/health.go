package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lthibault/jitterbug/v2"
	"go.uber.org/zap"

	api "github.com/clouddiag/openstack-advisor/api/v1alpha1"
	"github.com/clouddiag/openstack-advisor/pkg/metrics"
)

// serviceProbe is one connectivity check against a backing service. It lists
// the cheapest collection of that service and reports the count on success.
type serviceProbe struct {
	service     string
	displayName string
	run         func(ctx context.Context) (int, string, error)
}

func (s *AdvisorService) probes() []serviceProbe {
	return []serviceProbe{
		{service: "nova", displayName: "Nova", run: func(ctx context.Context) (int, string, error) {
			items, err := s.client.ListServers(ctx)
			return len(items), "servers", err
		}},
		{service: "cinder", displayName: "Cinder", run: func(ctx context.Context) (int, string, error) {
			items, err := s.client.ListVolumes(ctx)
			return len(items), "volumes", err
		}},
		{service: "neutron", displayName: "Neutron", run: func(ctx context.Context) (int, string, error) {
			items, err := s.client.ListNetworks(ctx)
			return len(items), "networks", err
		}},
	}
}

// CheckServiceHealth probes nova, cinder and neutron concurrently. Each probe
// is fault isolated under its own timeout; a probe failure marks that service
// unhealthy, never the whole check. One unhealthy service degrades the
// overall status, two or more make it critical.
func (s *AdvisorService) CheckServiceHealth(ctx context.Context) *api.ServiceHealthReport {
	probes := s.probes()

	results := make(chan api.ServiceHealth, len(probes))
	var wg sync.WaitGroup
	for _, probe := range probes {
		wg.Add(1)
		go func(probe serviceProbe) {
			defer wg.Done()

			probeCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
			defer cancel()

			health := api.ServiceHealth{
				Service:   probe.service,
				LastCheck: time.Now().UTC(),
			}
			count, kind, err := probe.run(probeCtx)
			if err != nil {
				health.Status = api.ServiceStatusUnhealthy
				health.Message = fmt.Sprintf("%s service error: %v", probe.displayName, err)
			} else {
				health.Status = api.ServiceStatusHealthy
				health.Message = fmt.Sprintf("Successfully retrieved %d %s", count, kind)
			}
			results <- health
		}(probe)
	}
	wg.Wait()
	close(results)

	report := &api.ServiceHealthReport{
		Timestamp: time.Now().UTC(),
		Services:  make(map[string]api.ServiceHealth, len(probes)),
	}
	for health := range results {
		report.Services[health.Service] = health
		report.Summary.TotalServices++
		if health.Status == api.ServiceStatusHealthy {
			report.Summary.HealthyServices++
			metrics.SetServiceHealth(health.Service, true)
		} else {
			report.Summary.UnhealthyServices++
			metrics.SetServiceHealth(health.Service, false)
		}
	}

	switch {
	case report.Summary.UnhealthyServices == 0:
		report.OverallStatus = api.OverallStatusHealthy
	case report.Summary.UnhealthyServices == 1:
		report.OverallStatus = api.OverallStatusDegraded
	default:
		report.OverallStatus = api.OverallStatusCritical
	}
	return report
}

// HealthMonitor re-runs the service health check on a jittered interval so
// the exported gauges stay current between API calls.
type HealthMonitor struct {
	service  *AdvisorService
	interval time.Duration
}

func NewHealthMonitor(service *AdvisorService, interval time.Duration) *HealthMonitor {
	return &HealthMonitor{service: service, interval: interval}
}

func (m *HealthMonitor) Run(ctx context.Context) {
	logger := zap.S().Named("health_monitor")
	logger.Infow("starting service health monitor", "interval", m.interval)

	ticker := jitterbug.New(m.interval, &jitterbug.Norm{Stdev: 30 * time.Millisecond, Mean: 0})
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("stopping service health monitor")
			return
		case <-ticker.C:
			report := m.service.CheckServiceHealth(ctx)
			if report.OverallStatus != api.OverallStatusHealthy {
				logger.Warnw("backing services degraded", "status", report.OverallStatus, "unhealthy", report.Summary.UnhealthyServices)
			}
		}
	}
}
