package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	api "github.com/clouddiag/openstack-advisor/api/v1alpha1"
)

func TestClassifyServer(t *testing.T) {
	tests := []struct {
		name     string
		server   api.Server
		expected api.HealthStatus
	}{
		{"active and running", api.Server{Status: "ACTIVE", PowerState: 1}, api.HealthStatusHealthy},
		{"active but not running", api.Server{Status: "ACTIVE", PowerState: 0}, api.HealthStatusTransitioning},
		{"active shutdown power state", api.Server{Status: "ACTIVE", PowerState: 4}, api.HealthStatusTransitioning},
		{"error", api.Server{Status: "ERROR"}, api.HealthStatusError},
		{"error with running power state", api.Server{Status: "ERROR", PowerState: 1}, api.HealthStatusError},
		{"shutoff", api.Server{Status: "SHUTOFF"}, api.HealthStatusStopped},
		{"suspended", api.Server{Status: "SUSPENDED"}, api.HealthStatusStopped},
		{"build", api.Server{Status: "BUILD"}, api.HealthStatusTransitioning},
		{"resize", api.Server{Status: "RESIZE", PowerState: 1}, api.HealthStatusTransitioning},
		{"unknown status", api.Server{Status: "unknown"}, api.HealthStatusTransitioning},
		{"empty", api.Server{}, api.HealthStatusTransitioning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyServer(tt.server))
		})
	}
}
