package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	api "github.com/clouddiag/openstack-advisor/api/v1alpha1"
)

func TestTabulateStatus(t *testing.T) {
	servers := []api.Server{
		{Status: "ACTIVE"},
		{Status: "ACTIVE"},
		{Status: "ERROR"},
		{Status: "SHUTOFF"},
		{Status: ""},
	}

	breakdown := TabulateStatus(servers, func(s api.Server) string { return s.Status })

	assert.Equal(t, api.StatusBreakdown{
		"ACTIVE":  2,
		"ERROR":   1,
		"SHUTOFF": 1,
		"unknown": 1,
	}, breakdown)

	total := 0
	for _, count := range breakdown {
		total += count
	}
	assert.Equal(t, len(servers), total)
}

func TestTabulateStatusEmpty(t *testing.T) {
	breakdown := TabulateStatus(nil, func(s api.Server) string { return s.Status })
	assert.Empty(t, breakdown)
	assert.NotNil(t, breakdown)
}
