package inventory

import (
	"math"

	api "github.com/clouddiag/openstack-advisor/api/v1alpha1"
)

// highUtilizationRatio flags a single hypervisor as a hot host.
const highUtilizationRatio = 0.8

// NewCapacityMetric derives available and utilization from a total/used pair.
// A zero total yields 0 percent, never a division fault. Utilization is not
// capped at 100 so over-commit stays representable.
func NewCapacityMetric(total, used int64) api.CapacityMetric {
	return api.CapacityMetric{
		Total:              total,
		Used:               used,
		Available:          total - used,
		UtilizationPercent: UtilizationPercent(used, total),
	}
}

// UtilizationPercent returns used/total*100 rounded to 2 decimals, 0 when
// total is 0.
func UtilizationPercent(used, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(used)/float64(total)*100*100) / 100
}

// AggregateCapacity sums vcpu, memory and local disk capacity across a
// hypervisor collection. Missing attributes were normalized to 0 upstream.
func AggregateCapacity(hypervisors []api.Hypervisor) api.ComputeCapacity {
	var totalVCPUs, usedVCPUs, totalMemoryMB, usedMemoryMB, totalDiskGB, usedDiskGB int64
	for _, h := range hypervisors {
		totalVCPUs += h.VCPUs
		usedVCPUs += h.VCPUsUsed
		totalMemoryMB += h.MemoryMB
		usedMemoryMB += h.MemoryMBUsed
		totalDiskGB += h.LocalGB
		usedDiskGB += h.LocalGBUsed
	}
	return api.ComputeCapacity{
		VCPUs:        NewCapacityMetric(totalVCPUs, usedVCPUs),
		Memory:       NewCapacityMetric(totalMemoryMB, usedMemoryMB),
		LocalStorage: NewCapacityMetric(totalDiskGB, usedDiskGB),
	}
}

// HostUtilization computes the per-host utilization triple.
func HostUtilization(h api.Hypervisor) api.HypervisorUtilization {
	return api.HypervisorUtilization{
		Hostname:   h.Hostname,
		Status:     h.Status,
		RunningVMs: h.RunningVMs,
		CPU:        NewCapacityMetric(h.VCPUs, h.VCPUsUsed),
		Memory:     NewCapacityMetric(h.MemoryMB, h.MemoryMBUsed),
		Disk:       NewCapacityMetric(h.LocalGB, h.LocalGBUsed),
	}
}

// IsHighUtilization reports whether a single host runs above 80% vcpu usage.
// The divisor floor of 1 applies only to this per-host check; aggregate
// metrics use the zero-safe rule instead.
func IsHighUtilization(h api.Hypervisor) bool {
	divisor := h.VCPUs
	if divisor < 1 {
		divisor = 1
	}
	return float64(h.VCPUsUsed)/float64(divisor) > highUtilizationRatio
}

// HighUtilizationHosts returns the hostnames of hot hosts in collection order.
func HighUtilizationHosts(hypervisors []api.Hypervisor) []string {
	hosts := []string{}
	for _, h := range hypervisors {
		if IsHighUtilization(h) {
			hosts = append(hosts, h.Hostname)
		}
	}
	return hosts
}
