package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type PrometheusMetricsHandler struct {
	registered bool
}

func NewPrometheusMetricsHandler() *PrometheusMetricsHandler {
	return &PrometheusMetricsHandler{}
}

// Handler registers the package metrics with the default registry and returns
// the scrape endpoint handler.
func (h *PrometheusMetricsHandler) Handler() http.Handler {
	if !h.registered {
		prometheus.MustRegister(
			fetchFailuresTotalMetric,
			serviceHealthyMetric,
			reportGenerationsTotalMetric,
		)
		h.registered = true
	}
	return promhttp.Handler()
}

// RegisterUtilizationCollector exposes live hypervisor utilization gauges
// backed by the given source. Each scrape queries the backing cloud.
func RegisterUtilizationCollector(source UtilizationSource) {
	prometheus.MustRegister(newUtilizationCollector(source))
}
