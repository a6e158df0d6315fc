package inventory

import api "github.com/clouddiag/openstack-advisor/api/v1alpha1"

// powerStateRunning is nova's numeric power state for a running instance.
const powerStateRunning = 1

// ClassifyServer assigns a coarse health label from the status/power-state
// pair. First match wins: ACTIVE alone is not enough, the power state must
// positively confirm liveness or the server is still transitioning.
func ClassifyServer(server api.Server) api.HealthStatus {
	switch {
	case server.Status == "ACTIVE" && server.PowerState == powerStateRunning:
		return api.HealthStatusHealthy
	case server.Status == "ERROR":
		return api.HealthStatusError
	case server.Status == "SHUTOFF" || server.Status == "SUSPENDED":
		return api.HealthStatusStopped
	default:
		return api.HealthStatusTransitioning
	}
}
