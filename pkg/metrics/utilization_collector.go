package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	api "github.com/clouddiag/openstack-advisor/api/v1alpha1"
)

// UtilizationSource yields the current hypervisor utilization snapshot.
// Implemented by the advisor service.
type UtilizationSource interface {
	GetResourceUtilization(ctx context.Context) (*api.ResourceUtilization, error)
}

type utilizationCollector struct {
	source           UtilizationSource
	totalHypervisors *prometheus.Desc
	totalVms         *prometheus.Desc
	cpuPercent       *prometheus.Desc
	memoryPercent    *prometheus.Desc // WARN: possible high cardinality on large clouds
}

func newUtilizationCollector(source UtilizationSource) prometheus.Collector {
	fqName := func(name string) string {
		return fmt.Sprintf("%s_utilization_%s", openstackAdvisor, name)
	}

	return &utilizationCollector{
		source: source,
		totalHypervisors: prometheus.NewDesc(
			fqName("hypervisors_total"),
			"Total number of hypervisors.",
			nil,
			prometheus.Labels{},
		),
		totalVms: prometheus.NewDesc(
			fqName("vms_total"),
			"Total number of running vms.",
			nil,
			prometheus.Labels{},
		),
		cpuPercent: prometheus.NewDesc(
			fqName("cpu_percent"),
			"CPU utilization percent per hypervisor",
			[]string{"hypervisor"},
			prometheus.Labels{},
		),
		memoryPercent: prometheus.NewDesc(
			fqName("memory_percent"),
			"Memory utilization percent per hypervisor",
			[]string{"hypervisor"},
			prometheus.Labels{},
		),
	}
}

func (c *utilizationCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalHypervisors
	ch <- c.totalVms
	ch <- c.cpuPercent
	ch <- c.memoryPercent
}

// Collect implements Collector.
func (c *utilizationCollector) Collect(ch chan<- prometheus.Metric) {
	utilization, err := c.source.GetResourceUtilization(context.Background())
	if err != nil {
		zap.S().Named("utilization_collector").Errorf("failed to collect utilization statistics: %s", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.totalHypervisors, prometheus.GaugeValue, float64(utilization.Summary.TotalHypervisors))
	ch <- prometheus.MustNewConstMetric(c.totalVms, prometheus.GaugeValue, float64(utilization.Summary.TotalVMs))

	for _, h := range utilization.Hypervisors {
		ch <- prometheus.MustNewConstMetric(c.cpuPercent, prometheus.GaugeValue, h.CPU.UtilizationPercent, h.Hostname)
		ch <- prometheus.MustNewConstMetric(c.memoryPercent, prometheus.GaugeValue, h.Memory.UtilizationPercent, h.Hostname)
	}
}
