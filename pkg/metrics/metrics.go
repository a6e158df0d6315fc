package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	openstackAdvisor = "openstack_advisor"

	// Fetch metrics
	fetchFailuresTotal = "fetch_failures_total"

	// Health metrics
	serviceHealthy = "service_healthy"

	// Report metrics
	reportGenerationsTotal = "report_generations_total"

	// Labels
	resourceKindLabel = "kind"
	serviceLabel      = "service"
	reportFormatLabel = "format"
)

var fetchFailureLabels = []string{
	resourceKindLabel,
}

var serviceHealthLabels = []string{
	serviceLabel,
}

var reportGenerationLabels = []string{
	reportFormatLabel,
}

/**
* Metrics definition
**/
var fetchFailuresTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: openstackAdvisor,
		Name:      fetchFailuresTotal,
		Help:      "number of failed collection fetches per resource kind",
	},
	fetchFailureLabels,
)

var serviceHealthyMetric = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Subsystem: openstackAdvisor,
		Name:      serviceHealthy,
		Help:      "last probe verdict per backing service, 1 healthy 0 unhealthy",
	},
	serviceHealthLabels,
)

var reportGenerationsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: openstackAdvisor,
		Name:      reportGenerationsTotal,
		Help:      "number of generated inventory reports per format",
	},
	reportGenerationLabels,
)

func IncreaseFetchFailure(kind string) {
	labels := prometheus.Labels{
		resourceKindLabel: kind,
	}
	fetchFailuresTotalMetric.With(labels).Inc()
}

func SetServiceHealth(service string, healthy bool) {
	labels := prometheus.Labels{
		serviceLabel: service,
	}
	value := 0.0
	if healthy {
		value = 1.0
	}
	serviceHealthyMetric.With(labels).Set(value)
}

func IncreaseReportGeneration(format string) {
	labels := prometheus.Labels{
		reportFormatLabel: format,
	}
	reportGenerationsTotalMetric.With(labels).Inc()
}
