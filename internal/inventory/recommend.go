package inventory

import (
	"fmt"

	api "github.com/clouddiag/openstack-advisor/api/v1alpha1"
)

const (
	// capacityWarningPercent is the aggregate utilization threshold above
	// which a capacity recommendation is emitted.
	capacityWarningPercent = 80.0

	// maxUnusedFlavorNames caps the identifiers reported by the unused
	// flavor rule. The cap is a hard truncation in flavor-list order.
	maxUnusedFlavorNames = 5
)

// RecommendationInput carries the already-aggregated metrics and collections
// the rules evaluate. No rule performs I/O.
type RecommendationInput struct {
	Capacity    api.ComputeCapacity
	Servers     []api.Server
	Hypervisors []api.Hypervisor
	Flavors     []api.Flavor
}

// Recommend evaluates the fixed rule set in order: CPU, memory, error
// servers, disabled hypervisors, unused public flavors. Rules are independent
// and the result keeps evaluation order, it is not re-sorted by priority.
func Recommend(in RecommendationInput) []api.Recommendation {
	recommendations := []api.Recommendation{}

	if in.Capacity.VCPUs.UtilizationPercent > capacityWarningPercent {
		recommendations = append(recommendations, api.Recommendation{
			Type:     "capacity_warning",
			Resource: "CPU",
			Message:  fmt.Sprintf("CPU utilization is high (%.2f%%). Consider adding more compute capacity.", in.Capacity.VCPUs.UtilizationPercent),
			Priority: api.RecommendationPriorityHigh,
		})
	}

	if in.Capacity.Memory.UtilizationPercent > capacityWarningPercent {
		recommendations = append(recommendations, api.Recommendation{
			Type:     "capacity_warning",
			Resource: "Memory",
			Message:  fmt.Sprintf("Memory utilization is high (%.2f%%). Consider adding more memory or nodes.", in.Capacity.Memory.UtilizationPercent),
			Priority: api.RecommendationPriorityHigh,
		})
	}

	if errored := errorServerNames(in.Servers); len(errored) > 0 {
		recommendations = append(recommendations, api.Recommendation{
			Type:     "health_issue",
			Resource: "Servers",
			Message:  fmt.Sprintf("%d servers are in ERROR state. Investigation required.", len(errored)),
			Priority: api.RecommendationPriorityCritical,
			Affected: errored,
		})
	}

	if disabled := disabledHypervisorNames(in.Hypervisors); len(disabled) > 0 {
		recommendations = append(recommendations, api.Recommendation{
			Type:     "infrastructure_issue",
			Resource: "Hypervisors",
			Message:  fmt.Sprintf("%d hypervisors are not enabled. Check hypervisor health.", len(disabled)),
			Priority: api.RecommendationPriorityMedium,
			Affected: disabled,
		})
	}

	if unused := unusedPublicFlavorNames(in.Flavors, in.Servers); len(unused) > 0 {
		affected := unused
		if len(affected) > maxUnusedFlavorNames {
			affected = affected[:maxUnusedFlavorNames]
		}
		recommendations = append(recommendations, api.Recommendation{
			Type:     "optimization",
			Resource: "Flavors",
			Message:  fmt.Sprintf("%d public flavors are unused. Consider cleanup.", len(unused)),
			Priority: api.RecommendationPriorityLow,
			Affected: affected,
		})
	}

	return recommendations
}

// errorServerNames returns the names of ERROR servers, falling back to the id
// for servers without a name.
func errorServerNames(servers []api.Server) []string {
	names := []string{}
	for _, s := range servers {
		if s.Status != "ERROR" {
			continue
		}
		name := s.Name
		if name == "" {
			name = s.ID
		}
		names = append(names, name)
	}
	return names
}

func disabledHypervisorNames(hypervisors []api.Hypervisor) []string {
	names := []string{}
	for _, h := range hypervisors {
		if h.Status != "enabled" {
			names = append(names, h.Hostname)
		}
	}
	return names
}

// unusedPublicFlavorNames returns, in flavor-list order, the names of public
// flavors no server references.
func unusedPublicFlavorNames(flavors []api.Flavor, servers []api.Server) []string {
	referenced := make(map[string]struct{}, len(servers))
	for _, s := range servers {
		if s.FlavorID != "" {
			referenced[s.FlavorID] = struct{}{}
		}
	}
	unused := []string{}
	for _, f := range flavors {
		if !f.IsPublic {
			continue
		}
		if _, ok := referenced[f.ID]; ok {
			continue
		}
		unused = append(unused, f.Name)
	}
	return unused
}
