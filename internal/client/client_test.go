package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clouddiag/openstack-advisor/internal/config"
)

type fakeCloud struct {
	authCount   atomic.Int64
	tokenSuffix atomic.Int64
	expiresAt   time.Time

	mux *http.ServeMux
}

func newFakeCloud() *fakeCloud {
	f := &fakeCloud{mux: http.NewServeMux()}
	f.mux.HandleFunc("POST /auth/tokens", func(w http.ResponseWriter, r *http.Request) {
		f.authCount.Add(1)
		w.Header().Set("X-Subject-Token", fmt.Sprintf("token-%d", f.tokenSuffix.Add(1)))
		w.WriteHeader(http.StatusCreated)
		expiresAt := f.expiresAt
		if expiresAt.IsZero() {
			expiresAt = time.Now().Add(time.Hour)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": map[string]any{
				"expires_at": expiresAt.Format(time.RFC3339),
				"project":    map[string]any{"id": "proj-1"},
			},
		})
	})
	return f
}

func testConfig(url string) config.OpenStackConfig {
	return config.OpenStackConfig{
		AuthURL:        url,
		Username:       "admin",
		Password:       "secret",
		ProjectName:    "demo",
		UserDomainName: "Default",
	}
}

func TestSessionTokenCaching(t *testing.T) {
	fake := newFakeCloud()
	fake.mux.HandleFunc("GET /compute/v2.1/proj-1/servers/detail", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"servers": []any{}})
	})
	ts := httptest.NewServer(fake.mux)
	defer ts.Close()

	c, err := NewOpenStack(testConfig(ts.URL))
	require.NoError(t, err)

	_, err = c.ListServers(context.Background())
	require.NoError(t, err)
	_, err = c.ListServers(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), fake.authCount.Load())
}

func TestSessionReauthenticatesAfterExpiry(t *testing.T) {
	fake := newFakeCloud()
	fake.expiresAt = time.Now().Add(-time.Minute)
	ts := httptest.NewServer(fake.mux)
	defer ts.Close()

	session := NewSession(testConfig(ts.URL), ts.Client())

	_, err := session.Token(context.Background())
	require.NoError(t, err)
	_, err = session.Token(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), fake.authCount.Load())
}

func TestSessionInvalidate(t *testing.T) {
	fake := newFakeCloud()
	ts := httptest.NewServer(fake.mux)
	defer ts.Close()

	session := NewSession(testConfig(ts.URL), ts.Client())

	token, err := session.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)

	session.Invalidate()

	token, err = session.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-2", token)
	assert.Equal(t, int64(2), fake.authCount.Load())
}

func TestSessionProjectID(t *testing.T) {
	fake := newFakeCloud()
	ts := httptest.NewServer(fake.mux)
	defer ts.Close()

	session := NewSession(testConfig(ts.URL), ts.Client())

	projectID, err := session.ProjectID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "proj-1", projectID)
}

func TestSessionAuthenticationFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/tokens", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	session := NewSession(testConfig(ts.URL), ts.Client())

	_, err := session.Token(context.Background())
	require.Error(t, err)
	var authErr *ErrAuthentication
	assert.ErrorAs(t, err, &authErr)
}

func TestUnauthorizedRetriesOnce(t *testing.T) {
	fake := newFakeCloud()
	var serverCalls atomic.Int64
	fake.mux.HandleFunc("GET /compute/v2.1/proj-1/servers/detail", func(w http.ResponseWriter, r *http.Request) {
		if serverCalls.Add(1) == 1 {
			// stale token on the first call
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "token-2", r.Header.Get("X-Auth-Token"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"servers": []any{map[string]any{"id": "s-1", "status": "ACTIVE"}},
		})
	})
	ts := httptest.NewServer(fake.mux)
	defer ts.Close()

	c, err := NewOpenStack(testConfig(ts.URL))
	require.NoError(t, err)

	servers, err := c.ListServers(context.Background())
	require.NoError(t, err)
	require.Len(t, servers, 1)
	assert.Equal(t, "s-1", servers[0].ID)
	assert.Equal(t, int64(2), fake.authCount.Load())
	assert.Equal(t, int64(2), serverCalls.Load())
}

func TestGetServerNotFound(t *testing.T) {
	fake := newFakeCloud()
	fake.mux.HandleFunc("GET /compute/v2.1/proj-1/servers/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	ts := httptest.NewServer(fake.mux)
	defer ts.Close()

	c, err := NewOpenStack(testConfig(ts.URL))
	require.NoError(t, err)

	_, err = c.GetServer(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	var notFound *ErrResourceNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "server", notFound.Resource)
	assert.Equal(t, "missing", notFound.ID)
}

func TestServiceUnavailableMapping(t *testing.T) {
	fake := newFakeCloud()
	fake.mux.HandleFunc("GET /compute/v2.1/proj-1/servers/detail", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	ts := httptest.NewServer(fake.mux)
	defer ts.Close()

	c, err := NewOpenStack(testConfig(ts.URL))
	require.NoError(t, err)

	_, err = c.ListServers(context.Background())
	require.Error(t, err)
	var unavailable *ErrServiceUnavailable
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, ServiceCompute, unavailable.Service)
}

func TestMalformedResponseMapping(t *testing.T) {
	fake := newFakeCloud()
	fake.mux.HandleFunc("GET /networking/v2.0/networks", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})
	ts := httptest.NewServer(fake.mux)
	defer ts.Close()

	c, err := NewOpenStack(testConfig(ts.URL))
	require.NoError(t, err)

	_, err = c.ListNetworks(context.Background())
	require.Error(t, err)
	var malformed *ErrMalformedResponse
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, ServiceNetworking, malformed.Service)
}

func TestListServersNormalizesAndCompacts(t *testing.T) {
	fake := newFakeCloud()
	fake.mux.HandleFunc("GET /compute/v2.1/proj-1/servers/detail", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"servers": []any{map[string]any{
				"id":                     "s-1",
				"name":                   "web-1",
				"status":                 "ACTIVE",
				"OS-EXT-SRV-ATTR:host":   "compute-1",
				"OS-EXT-STS:power_state": 1,
				"flavor":                 map[string]any{"id": "f-1"},
				"updated":                "2024-01-01T00:00:00Z",
				"metadata":               map[string]any{"role": "frontend"},
			}},
		})
	})
	ts := httptest.NewServer(fake.mux)
	defer ts.Close()

	c, err := NewOpenStack(testConfig(ts.URL))
	require.NoError(t, err)

	servers, err := c.ListServers(context.Background())
	require.NoError(t, err)
	require.Len(t, servers, 1)

	server := servers[0]
	assert.Equal(t, "compute-1", server.Host)
	assert.Equal(t, "f-1", server.FlavorID)
	assert.Equal(t, 1, server.PowerState)
	// listings keep the compact shape
	assert.Empty(t, server.Updated)
	assert.Nil(t, server.Metadata)
}

func TestVolumeAndNetworkRouting(t *testing.T) {
	fake := newFakeCloud()
	fake.mux.HandleFunc("GET /volume/v3/proj-1/volumes/detail", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"volumes": []any{map[string]any{"id": "v-1", "status": "in-use", "size": 100}},
		})
	})
	fake.mux.HandleFunc("GET /networking/v2.0/networks", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"networks": []any{map[string]any{"id": "n-1", "router:external": true}},
		})
	})
	ts := httptest.NewServer(fake.mux)
	defer ts.Close()

	c, err := NewOpenStack(testConfig(ts.URL))
	require.NoError(t, err)

	volumes, err := c.ListVolumes(context.Background())
	require.NoError(t, err)
	require.Len(t, volumes, 1)
	assert.Equal(t, int64(100), volumes[0].SizeGB)

	networks, err := c.ListNetworks(context.Background())
	require.NoError(t, err)
	require.Len(t, networks, 1)
	assert.True(t, networks[0].External)
}
