// Package service implements the advisor's callable operations on top of the
// OpenStack client boundary: listings, detail lookups, the aggregate
// diagnostics and the inventory report.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	api "github.com/clouddiag/openstack-advisor/api/v1alpha1"
	"github.com/clouddiag/openstack-advisor/internal/client"
	"github.com/clouddiag/openstack-advisor/internal/config"
	"github.com/clouddiag/openstack-advisor/internal/inventory"
	"github.com/clouddiag/openstack-advisor/pkg/metrics"
)

type AdvisorService struct {
	client           client.CloudResourceClient
	fetchTimeout     time.Duration
	fetchParallelism int
	probeTimeout     time.Duration
}

func NewAdvisorService(c client.CloudResourceClient, cfg config.SvcConfig) *AdvisorService {
	return &AdvisorService{
		client:           c,
		fetchTimeout:     cfg.FetchTimeout,
		fetchParallelism: cfg.FetchParallelism,
		probeTimeout:     cfg.ProbeTimeout,
	}
}

// listCollection degrades a single-kind listing failure to an empty
// collection plus a diagnostic note, per the fetch-boundary policy.
func listCollection[T any](kind string, items []T, err error) ([]T, string) {
	if err != nil {
		zap.S().Named("service").Warnw("listing degraded", "kind", kind, "error", err)
		metrics.IncreaseFetchFailure(kind)
		return []T{}, err.Error()
	}
	if items == nil {
		items = []T{}
	}
	return items, ""
}

func (s *AdvisorService) ListServers(ctx context.Context) ([]api.Server, string) {
	items, err := s.client.ListServers(ctx)
	return listCollection("servers", items, err)
}

func (s *AdvisorService) ListHypervisors(ctx context.Context) ([]api.Hypervisor, string) {
	items, err := s.client.ListHypervisors(ctx)
	return listCollection("hypervisors", items, err)
}

func (s *AdvisorService) ListFlavors(ctx context.Context) ([]api.Flavor, string) {
	items, err := s.client.ListFlavors(ctx)
	return listCollection("flavors", items, err)
}

func (s *AdvisorService) ListImages(ctx context.Context) ([]api.Image, string) {
	items, err := s.client.ListImages(ctx)
	return listCollection("images", items, err)
}

func (s *AdvisorService) ListVolumes(ctx context.Context) ([]api.Volume, string) {
	items, err := s.client.ListVolumes(ctx)
	return listCollection("volumes", items, err)
}

func (s *AdvisorService) ListVolumeTypes(ctx context.Context) ([]api.VolumeType, string) {
	items, err := s.client.ListVolumeTypes(ctx)
	return listCollection("volume_types", items, err)
}

func (s *AdvisorService) ListNetworks(ctx context.Context) ([]api.Network, string) {
	items, err := s.client.ListNetworks(ctx)
	return listCollection("networks", items, err)
}

func (s *AdvisorService) ListSubnets(ctx context.Context) ([]api.Subnet, string) {
	items, err := s.client.ListSubnets(ctx)
	return listCollection("subnets", items, err)
}

func (s *AdvisorService) ListRouters(ctx context.Context) ([]api.Router, string) {
	items, err := s.client.ListRouters(ctx)
	return listCollection("routers", items, err)
}

func (s *AdvisorService) GetServerDetails(ctx context.Context, serverID string) (*api.Server, error) {
	if serverID == "" {
		return nil, NewErrMissingID("server_id")
	}
	return s.client.GetServer(ctx, serverID)
}

func (s *AdvisorService) GetFlavorDetails(ctx context.Context, flavorID string) (*api.Flavor, error) {
	if flavorID == "" {
		return nil, NewErrMissingID("flavor_id")
	}
	return s.client.GetFlavor(ctx, flavorID)
}

func (s *AdvisorService) GetImageDetails(ctx context.Context, imageID string) (*api.Image, error) {
	if imageID == "" {
		return nil, NewErrMissingID("image_id")
	}
	return s.client.GetImage(ctx, imageID)
}

// AnalyzeServerResources correlates one server with its flavor allocation
// and hypervisor placement. Missing flavor or host data degrades the
// corresponding section to nil instead of failing the analysis.
func (s *AdvisorService) AnalyzeServerResources(ctx context.Context, serverID string) (*api.ServerAnalysis, error) {
	if serverID == "" {
		return nil, NewErrMissingID("server_id")
	}

	server, err := s.client.GetServer(ctx, serverID)
	if err != nil {
		return nil, err
	}

	analysis := &api.ServerAnalysis{HealthStatus: inventory.ClassifyServer(*server)}
	analysis.ServerInfo.ID = server.ID
	analysis.ServerInfo.Name = server.Name
	analysis.ServerInfo.Status = server.Status
	analysis.ServerInfo.Host = server.Host
	analysis.ServerInfo.Created = server.Created

	if server.FlavorID != "" {
		flavor, err := s.client.GetFlavor(ctx, server.FlavorID)
		if err != nil {
			zap.S().Named("service").Warnw("flavor lookup failed during analysis", "server_id", serverID, "flavor_id", server.FlavorID, "error", err)
		} else {
			analysis.ResourceAllocation = &api.ServerResourceAllocation{
				VCPUs:       flavor.VCPUs,
				RAMMB:       flavor.RAMMB,
				DiskGB:      flavor.DiskGB,
				EphemeralGB: flavor.EphemeralGB,
			}
		}
	}

	if server.Host != "" {
		hypervisors, err := s.client.ListHypervisors(ctx)
		if err != nil {
			zap.S().Named("service").Warnw("hypervisor lookup failed during analysis", "server_id", serverID, "error", err)
		} else {
			for _, h := range hypervisors {
				if h.Hostname != server.Host {
					continue
				}
				analysis.HostAnalysis = &api.ServerHostAnalysis{
					Hypervisor:       h.Hostname,
					HypervisorStatus: h.Status,
					HypervisorState:  h.State,
					TotalVCPUs:       h.VCPUs,
					UsedVCPUs:        h.VCPUsUsed,
					TotalMemoryMB:    h.MemoryMB,
					UsedMemoryMB:     h.MemoryMBUsed,
					RunningVMs:       h.RunningVMs,
				}
				break
			}
		}
	}

	return analysis, nil
}

// GetInfrastructureSummary builds the condensed cross-service snapshot from
// four concurrent fetches. Per-kind failures degrade to empty sections.
func (s *AdvisorService) GetInfrastructureSummary(ctx context.Context) *api.InfrastructureSummary {
	var (
		servers     []api.Server
		hypervisors []api.Hypervisor
		volumes     []api.Volume
		networks    []api.Network
	)
	tasks := []collectionTask{
		{kind: "servers", run: func(ctx context.Context) error {
			items, err := s.client.ListServers(ctx)
			servers = items
			return err
		}},
		{kind: "hypervisors", run: func(ctx context.Context) error {
			items, err := s.client.ListHypervisors(ctx)
			hypervisors = items
			return err
		}},
		{kind: "volumes", run: func(ctx context.Context) error {
			items, err := s.client.ListVolumes(ctx)
			volumes = items
			return err
		}},
		{kind: "networks", run: func(ctx context.Context) error {
			items, err := s.client.ListNetworks(ctx)
			networks = items
			return err
		}},
	}
	diagnostics := s.fetchCollections(ctx, tasks)

	capacity := inventory.AggregateCapacity(hypervisors)

	summary := &api.InfrastructureSummary{
		Timestamp:   time.Now().UTC(),
		Diagnostics: diagnostics,
	}
	summary.Compute.Servers.Total = len(servers)
	summary.Compute.Servers.ByStatus = inventory.TabulateStatus(servers, func(srv api.Server) string { return srv.Status })
	summary.Compute.Hypervisors.Total = len(hypervisors)
	summary.Compute.Hypervisors.VCPUs = capacity.VCPUs
	summary.Compute.Hypervisors.Memory = capacity.Memory
	summary.Storage.Volumes.Total = len(volumes)
	for _, v := range volumes {
		summary.Storage.Volumes.TotalSizeGB += v.SizeGB
	}
	summary.Network.Networks.Total = len(networks)
	for _, n := range networks {
		if n.External {
			summary.Network.Networks.External++
		}
	}
	return summary
}

// GetResourceUtilization reports the per-hypervisor utilization triple.
func (s *AdvisorService) GetResourceUtilization(ctx context.Context) (*api.ResourceUtilization, error) {
	hypervisors, err := s.client.ListHypervisors(ctx)
	if err != nil {
		return nil, err
	}

	utilization := &api.ResourceUtilization{
		Timestamp:   time.Now().UTC(),
		Hypervisors: make([]api.HypervisorUtilization, 0, len(hypervisors)),
		Summary:     api.UtilizationSummary{TotalHypervisors: len(hypervisors)},
	}
	for _, h := range hypervisors {
		utilization.Hypervisors = append(utilization.Hypervisors, inventory.HostUtilization(h))
		utilization.Summary.TotalVMs += h.RunningVMs
		if h.Status == "enabled" {
			utilization.Summary.ActiveHypervisors++
		}
	}
	return utilization, nil
}

// GenerateInventoryReport assembles the full report from one concurrent
// snapshot. Any format other than "detailed" yields the summary shape.
func (s *AdvisorService) GenerateInventoryReport(ctx context.Context, format string) api.InventoryReport {
	if format == "" {
		format = inventory.FormatDetailed
	}
	collections := s.snapshot(ctx)
	metrics.IncreaseReportGeneration(format)
	return inventory.AssembleReport(collections, format, time.Now().UTC())
}
