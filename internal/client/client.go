// Package client implements the OpenStack boundary: a keystone session and
// typed list/get operations against nova, cinder and neutron. Raw payloads
// are normalized into api records before they leave this package.
package client

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	api "github.com/clouddiag/openstack-advisor/api/v1alpha1"
	"github.com/clouddiag/openstack-advisor/internal/config"
	"github.com/clouddiag/openstack-advisor/internal/inventory"
)

const (
	ServiceCompute    = "nova"
	ServiceStorage    = "cinder"
	ServiceNetworking = "neutron"

	defaultHTTPTimeout = 30 * time.Second
)

// CloudResourceClient is the capability the advisor core consumes. Every
// call may fail with one of the typed errors in this package; the core treats
// listing failures as recoverable at the collection level.
type CloudResourceClient interface {
	ListServers(ctx context.Context) ([]api.Server, error)
	GetServer(ctx context.Context, id string) (*api.Server, error)
	ListHypervisors(ctx context.Context) ([]api.Hypervisor, error)
	ListFlavors(ctx context.Context) ([]api.Flavor, error)
	GetFlavor(ctx context.Context, id string) (*api.Flavor, error)
	ListImages(ctx context.Context) ([]api.Image, error)
	GetImage(ctx context.Context, id string) (*api.Image, error)
	ListVolumes(ctx context.Context) ([]api.Volume, error)
	ListVolumeTypes(ctx context.Context) ([]api.VolumeType, error)
	ListNetworks(ctx context.Context) ([]api.Network, error)
	ListSubnets(ctx context.Context) ([]api.Subnet, error)
	ListRouters(ctx context.Context) ([]api.Router, error)
}

// OpenStack talks to nova, cinder and neutron co-located behind the keystone
// host, the layout exposed by standard-port deployments.
type OpenStack struct {
	baseURL    string
	session    *Session
	httpClient *http.Client
}

func NewOpenStack(cfg config.OpenStackConfig) (*OpenStack, error) {
	parsed, err := url.Parse(cfg.AuthURL)
	if err != nil {
		return nil, errors.Wrap(err, "parsing auth url")
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.Insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402
	}
	httpClient := &http.Client{Transport: transport, Timeout: defaultHTTPTimeout}

	return &OpenStack{
		baseURL:    fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host),
		session:    NewSession(cfg, httpClient),
		httpClient: httpClient,
	}, nil
}

// Session exposes the keystone session, mainly for explicit invalidation.
func (c *OpenStack) Session() *Session {
	return c.session
}

// serviceURL derives the endpoint prefix for one service. Nova and cinder
// paths are scoped by project id.
func (c *OpenStack) serviceURL(ctx context.Context, service string) (string, error) {
	switch service {
	case ServiceCompute, ServiceStorage:
		projectID, err := c.session.ProjectID(ctx)
		if err != nil {
			return "", err
		}
		if service == ServiceCompute {
			return fmt.Sprintf("%s/compute/v2.1/%s", c.baseURL, projectID), nil
		}
		return fmt.Sprintf("%s/volume/v3/%s", c.baseURL, projectID), nil
	case ServiceNetworking:
		return c.baseURL + "/networking/v2.0", nil
	default:
		return "", fmt.Errorf("unknown service: %s", service)
	}
}

var errStatusNotFound = errors.New("resource not found")

// get performs one authenticated GET and decodes the payload into out.
// A 401 invalidates the cached token and retries once.
func (c *OpenStack) get(ctx context.Context, service, path string, out any) error {
	prefix, err := c.serviceURL(ctx, service)
	if err != nil {
		return err
	}

	retried := false
	for {
		token, err := c.session.Token(ctx)
		if err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, prefix+path, nil)
		if err != nil {
			return NewErrServiceUnavailable(service, err)
		}
		req.Header.Set("X-Auth-Token", token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return NewErrServiceUnavailable(service, err)
		}

		switch {
		case resp.StatusCode == http.StatusUnauthorized && !retried:
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			zap.S().Named("client").Debugw("token rejected, re-authenticating", "service", service)
			c.session.Invalidate()
			retried = true
			continue
		case resp.StatusCode == http.StatusUnauthorized:
			resp.Body.Close()
			return NewErrAuthentication(fmt.Errorf("%s rejected token after refresh", service))
		case resp.StatusCode == http.StatusNotFound:
			resp.Body.Close()
			return errStatusNotFound
		case resp.StatusCode < 200 || resp.StatusCode > 299:
			resp.Body.Close()
			return NewErrServiceUnavailable(service, fmt.Errorf("status %d for %s", resp.StatusCode, path))
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return NewErrMalformedResponse(service, err)
		}
		return nil
	}
}

func (c *OpenStack) ListServers(ctx context.Context) ([]api.Server, error) {
	var payload struct {
		Servers []map[string]any `json:"servers"`
	}
	if err := c.get(ctx, ServiceCompute, "/servers/detail", &payload); err != nil {
		return nil, err
	}
	servers := make([]api.Server, 0, len(payload.Servers))
	for _, raw := range payload.Servers {
		server := inventory.NormalizeServer(raw)
		// listings keep the compact shape, detail-only fields stay empty
		server.Fault, server.Addresses, server.Metadata, server.Updated = nil, nil, nil, ""
		servers = append(servers, server)
	}
	return servers, nil
}

func (c *OpenStack) GetServer(ctx context.Context, id string) (*api.Server, error) {
	var payload struct {
		Server map[string]any `json:"server"`
	}
	if err := c.get(ctx, ServiceCompute, "/servers/"+id, &payload); err != nil {
		if errors.Is(err, errStatusNotFound) {
			return nil, NewErrResourceNotFound("server", id)
		}
		return nil, err
	}
	server := inventory.NormalizeServer(payload.Server)
	return &server, nil
}

func (c *OpenStack) ListHypervisors(ctx context.Context) ([]api.Hypervisor, error) {
	var payload struct {
		Hypervisors []map[string]any `json:"hypervisors"`
	}
	if err := c.get(ctx, ServiceCompute, "/os-hypervisors/detail", &payload); err != nil {
		return nil, err
	}
	hypervisors := make([]api.Hypervisor, 0, len(payload.Hypervisors))
	for _, raw := range payload.Hypervisors {
		hypervisors = append(hypervisors, inventory.NormalizeHypervisor(raw))
	}
	return hypervisors, nil
}

func (c *OpenStack) ListFlavors(ctx context.Context) ([]api.Flavor, error) {
	var payload struct {
		Flavors []map[string]any `json:"flavors"`
	}
	if err := c.get(ctx, ServiceCompute, "/flavors/detail", &payload); err != nil {
		return nil, err
	}
	flavors := make([]api.Flavor, 0, len(payload.Flavors))
	for _, raw := range payload.Flavors {
		flavor := inventory.NormalizeFlavor(raw)
		flavor.ExtraSpecs = nil
		flavors = append(flavors, flavor)
	}
	return flavors, nil
}

func (c *OpenStack) GetFlavor(ctx context.Context, id string) (*api.Flavor, error) {
	var payload struct {
		Flavor map[string]any `json:"flavor"`
	}
	if err := c.get(ctx, ServiceCompute, "/flavors/"+id, &payload); err != nil {
		if errors.Is(err, errStatusNotFound) {
			return nil, NewErrResourceNotFound("flavor", id)
		}
		return nil, err
	}
	flavor := inventory.NormalizeFlavor(payload.Flavor)
	return &flavor, nil
}

func (c *OpenStack) ListImages(ctx context.Context) ([]api.Image, error) {
	var payload struct {
		Images []map[string]any `json:"images"`
	}
	if err := c.get(ctx, ServiceCompute, "/images/detail", &payload); err != nil {
		return nil, err
	}
	images := make([]api.Image, 0, len(payload.Images))
	for _, raw := range payload.Images {
		image := inventory.NormalizeImage(raw)
		image.Metadata = nil
		images = append(images, image)
	}
	return images, nil
}

func (c *OpenStack) GetImage(ctx context.Context, id string) (*api.Image, error) {
	var payload struct {
		Image map[string]any `json:"image"`
	}
	if err := c.get(ctx, ServiceCompute, "/images/"+id, &payload); err != nil {
		if errors.Is(err, errStatusNotFound) {
			return nil, NewErrResourceNotFound("image", id)
		}
		return nil, err
	}
	image := inventory.NormalizeImage(payload.Image)
	return &image, nil
}

func (c *OpenStack) ListVolumes(ctx context.Context) ([]api.Volume, error) {
	var payload struct {
		Volumes []map[string]any `json:"volumes"`
	}
	if err := c.get(ctx, ServiceStorage, "/volumes/detail", &payload); err != nil {
		return nil, err
	}
	volumes := make([]api.Volume, 0, len(payload.Volumes))
	for _, raw := range payload.Volumes {
		volumes = append(volumes, inventory.NormalizeVolume(raw))
	}
	return volumes, nil
}

func (c *OpenStack) ListVolumeTypes(ctx context.Context) ([]api.VolumeType, error) {
	var payload struct {
		VolumeTypes []map[string]any `json:"volume_types"`
	}
	if err := c.get(ctx, ServiceStorage, "/types", &payload); err != nil {
		return nil, err
	}
	volumeTypes := make([]api.VolumeType, 0, len(payload.VolumeTypes))
	for _, raw := range payload.VolumeTypes {
		volumeTypes = append(volumeTypes, inventory.NormalizeVolumeType(raw))
	}
	return volumeTypes, nil
}

func (c *OpenStack) ListNetworks(ctx context.Context) ([]api.Network, error) {
	var payload struct {
		Networks []map[string]any `json:"networks"`
	}
	if err := c.get(ctx, ServiceNetworking, "/networks", &payload); err != nil {
		return nil, err
	}
	networks := make([]api.Network, 0, len(payload.Networks))
	for _, raw := range payload.Networks {
		networks = append(networks, inventory.NormalizeNetwork(raw))
	}
	return networks, nil
}

func (c *OpenStack) ListSubnets(ctx context.Context) ([]api.Subnet, error) {
	var payload struct {
		Subnets []map[string]any `json:"subnets"`
	}
	if err := c.get(ctx, ServiceNetworking, "/subnets", &payload); err != nil {
		return nil, err
	}
	subnets := make([]api.Subnet, 0, len(payload.Subnets))
	for _, raw := range payload.Subnets {
		subnets = append(subnets, inventory.NormalizeSubnet(raw))
	}
	return subnets, nil
}

func (c *OpenStack) ListRouters(ctx context.Context) ([]api.Router, error) {
	var payload struct {
		Routers []map[string]any `json:"routers"`
	}
	if err := c.get(ctx, ServiceNetworking, "/routers", &payload); err != nil {
		return nil, err
	}
	routers := make([]api.Router, 0, len(payload.Routers))
	for _, raw := range payload.Routers {
		routers = append(routers, inventory.NormalizeRouter(raw))
	}
	return routers, nil
}
