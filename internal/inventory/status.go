package inventory

import api "github.com/clouddiag/openstack-advisor/api/v1alpha1"

// TabulateStatus counts the occurrences of each status value across a
// collection. Resources with an empty status land in the "unknown" bucket, so
// the counts always sum to the collection size.
func TabulateStatus[T any](items []T, statusOf func(T) string) api.StatusBreakdown {
	breakdown := api.StatusBreakdown{}
	for _, item := range items {
		status := statusOf(item)
		if status == "" {
			status = StatusUnknown
		}
		breakdown[status]++
	}
	return breakdown
}
