package inventory

import (
	"time"

	"github.com/google/uuid"

	api "github.com/clouddiag/openstack-advisor/api/v1alpha1"
)

// FormatDetailed includes raw per-resource listings in each report section.
// Any other format value produces aggregate counters only.
const (
	FormatDetailed = "detailed"
	FormatSummary  = "summary"
)

// Collections is one synchronous snapshot of every resource kind feeding
// report assembly. A kind whose fetch failed is present as an empty slice
// with a diagnostic note.
type Collections struct {
	Servers     []api.Server
	Hypervisors []api.Hypervisor
	Flavors     []api.Flavor
	Images      []api.Image
	Volumes     []api.Volume
	VolumeTypes []api.VolumeType
	Networks    []api.Network
	Subnets     []api.Subnet
	Routers     []api.Router

	Diagnostics []string
}

// AssembleReport composes the full inventory report from one snapshot. It is
// a pure function: empty collections produce a structurally valid report with
// zero counters, and no cross-collection invariant is assumed (a server's
// flavor id need not resolve to a known flavor).
func AssembleReport(c Collections, format string, now time.Time) api.InventoryReport {
	capacity := AggregateCapacity(c.Hypervisors)

	report := api.InventoryReport{
		Metadata: api.ReportMetadata{
			ReportID:    uuid.New().String(),
			GeneratedAt: now,
			Format:      format,
			Services:    []string{"nova", "cinder", "neutron", "keystone"},
			Diagnostics: c.Diagnostics,
		},
		Summary: api.ReportSummary{
			TotalResources: api.ResourceCounts{
				Servers:     len(c.Servers),
				Hypervisors: len(c.Hypervisors),
				Flavors:     len(c.Flavors),
				Images:      len(c.Images),
				Volumes:     len(c.Volumes),
				Networks:    len(c.Networks),
				Subnets:     len(c.Subnets),
				Routers:     len(c.Routers),
			},
			ServerStatusBreakdown:     TabulateStatus(c.Servers, func(s api.Server) string { return s.Status }),
			HypervisorStatusBreakdown: TabulateStatus(c.Hypervisors, func(h api.Hypervisor) string { return h.Status }),
		},
		Compute:             computeSection(c, capacity),
		Storage:             storageSection(c),
		Networking:          networkingSection(c),
		ResourceUtilization: utilizationSection(c, capacity),
		Recommendations: Recommend(RecommendationInput{
			Capacity:    capacity,
			Servers:     c.Servers,
			Hypervisors: c.Hypervisors,
			Flavors:     c.Flavors,
		}),
	}

	if format == FormatDetailed {
		report.Compute.ServerDetails = c.Servers
		report.Compute.HypervisorDetails = c.Hypervisors
		report.Compute.FlavorDetails = c.Flavors
		report.Storage.VolumeDetails = c.Volumes
		report.Storage.VolumeTypeDetails = c.VolumeTypes
		report.Networking.NetworkDetails = c.Networks
		report.Networking.SubnetDetails = c.Subnets
		report.Networking.RouterDetails = c.Routers
	}

	return report
}

func computeSection(c Collections, capacity api.ComputeCapacity) api.ComputeSection {
	active, enabled := 0, 0
	errorServers := []api.Server{}
	for _, s := range c.Servers {
		if s.Status == "ACTIVE" {
			active++
		}
		if s.Status == "ERROR" {
			errorServers = append(errorServers, s)
		}
	}
	for _, h := range c.Hypervisors {
		if h.Status == "enabled" {
			enabled++
		}
	}

	return api.ComputeSection{
		Servers: api.ServerStats{
			Total:         len(c.Servers),
			ByStatus:      TabulateStatus(c.Servers, func(s api.Server) string { return s.Status }),
			ActiveServers: active,
			ErrorServers:  errorServers,
		},
		Hypervisors: api.HypervisorStats{
			Total:    len(c.Hypervisors),
			Enabled:  enabled,
			Capacity: capacity,
		},
		Flavors: flavorStats(c.Flavors),
	}
}

func flavorStats(flavors []api.Flavor) api.FlavorStats {
	stats := api.FlavorStats{Total: len(flavors)}
	for i, f := range flavors {
		if f.IsPublic {
			stats.PublicFlavors++
		}
		if i == 0 {
			stats.ResourceSpecs = api.FlavorSpecRange{
				SmallestVCPU:  f.VCPUs,
				LargestVCPU:   f.VCPUs,
				SmallestRAMMB: f.RAMMB,
				LargestRAMMB:  f.RAMMB,
			}
			continue
		}
		specs := &stats.ResourceSpecs
		if f.VCPUs < specs.SmallestVCPU {
			specs.SmallestVCPU = f.VCPUs
		}
		if f.VCPUs > specs.LargestVCPU {
			specs.LargestVCPU = f.VCPUs
		}
		if f.RAMMB < specs.SmallestRAMMB {
			specs.SmallestRAMMB = f.RAMMB
		}
		if f.RAMMB > specs.LargestRAMMB {
			specs.LargestRAMMB = f.RAMMB
		}
	}
	return stats
}

func storageSection(c Collections) api.StorageSection {
	var totalSizeGB int64
	available, inUse, publicTypes := 0, 0, 0
	for _, v := range c.Volumes {
		totalSizeGB += v.SizeGB
		switch v.Status {
		case "available":
			available++
		case "in-use":
			inUse++
		}
	}
	for _, vt := range c.VolumeTypes {
		if vt.IsPublic {
			publicTypes++
		}
	}

	attachmentRate := 0.0
	if len(c.Volumes) > 0 {
		attachmentRate = UtilizationPercent(int64(inUse), int64(len(c.Volumes)))
	}

	return api.StorageSection{
		Volumes: api.VolumeStats{
			Total:          len(c.Volumes),
			TotalSizeGB:    totalSizeGB,
			ByStatus:       TabulateStatus(c.Volumes, func(v api.Volume) string { return v.Status }),
			Available:      available,
			InUse:          inUse,
			AttachmentRate: attachmentRate,
		},
		VolumeTypes: api.VolumeTypeStats{
			Total:       len(c.VolumeTypes),
			PublicTypes: publicTypes,
		},
	}
}

func networkingSection(c Collections) api.NetworkingSection {
	external, shared := 0, 0
	for _, n := range c.Networks {
		if n.External {
			external++
		}
		if n.Shared {
			shared++
		}
	}

	subnets := api.SubnetStats{Total: len(c.Subnets)}
	for _, s := range c.Subnets {
		switch s.IPVersion {
		case 4:
			subnets.IPv4++
		case 6:
			subnets.IPv6++
		}
		if s.EnableDHCP {
			subnets.DHCPEnabled++
		}
	}

	routers := api.RouterStats{Total: len(c.Routers)}
	for _, r := range c.Routers {
		if r.Status == "ACTIVE" {
			routers.Active++
		}
		if r.ExternalGateway != nil {
			routers.WithExternalGateway++
		}
	}

	return api.NetworkingSection{
		Networks: api.NetworkStats{
			Total:    len(c.Networks),
			External: external,
			Internal: len(c.Networks) - external,
			Shared:   shared,
			ByStatus: TabulateStatus(c.Networks, func(n api.Network) string { return n.Status }),
		},
		Subnets: subnets,
		Routers: routers,
	}
}

func utilizationSection(c Collections, capacity api.ComputeCapacity) api.UtilizationSection {
	serversPerHypervisor := make(map[string]int, len(c.Hypervisors))
	for _, h := range c.Hypervisors {
		serversPerHypervisor[h.Hostname] = h.RunningVMs
	}
	return api.UtilizationSection{
		ComputeUtilization: api.ComputeUtilization{
			CPUPercent:    capacity.VCPUs.UtilizationPercent,
			MemoryPercent: capacity.Memory.UtilizationPercent,
			DiskPercent:   capacity.LocalStorage.UtilizationPercent,
		},
		HighUtilizationHypervisors: HighUtilizationHosts(c.Hypervisors),
		ServersPerHypervisor:       serversPerHypervisor,
	}
}
