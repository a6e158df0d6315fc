package service_test

import (
	"context"
	"sync/atomic"

	api "github.com/clouddiag/openstack-advisor/api/v1alpha1"
)

// CloudMock implements client.CloudResourceClient. A nil Func yields an empty
// result. Calls counts every invocation per method name.
type CloudMock struct {
	ListServersFunc     func(ctx context.Context) ([]api.Server, error)
	GetServerFunc       func(ctx context.Context, id string) (*api.Server, error)
	ListHypervisorsFunc func(ctx context.Context) ([]api.Hypervisor, error)
	ListFlavorsFunc     func(ctx context.Context) ([]api.Flavor, error)
	GetFlavorFunc       func(ctx context.Context, id string) (*api.Flavor, error)
	ListImagesFunc      func(ctx context.Context) ([]api.Image, error)
	GetImageFunc        func(ctx context.Context, id string) (*api.Image, error)
	ListVolumesFunc     func(ctx context.Context) ([]api.Volume, error)
	ListVolumeTypesFunc func(ctx context.Context) ([]api.VolumeType, error)
	ListNetworksFunc    func(ctx context.Context) ([]api.Network, error)
	ListSubnetsFunc     func(ctx context.Context) ([]api.Subnet, error)
	ListRoutersFunc     func(ctx context.Context) ([]api.Router, error)

	calls atomic.Int64
}

func (m *CloudMock) Calls() int64 {
	return m.calls.Load()
}

func (m *CloudMock) ListServers(ctx context.Context) ([]api.Server, error) {
	m.calls.Add(1)
	if m.ListServersFunc != nil {
		return m.ListServersFunc(ctx)
	}
	return []api.Server{}, nil
}

func (m *CloudMock) GetServer(ctx context.Context, id string) (*api.Server, error) {
	m.calls.Add(1)
	if m.GetServerFunc != nil {
		return m.GetServerFunc(ctx, id)
	}
	return &api.Server{ID: id}, nil
}

func (m *CloudMock) ListHypervisors(ctx context.Context) ([]api.Hypervisor, error) {
	m.calls.Add(1)
	if m.ListHypervisorsFunc != nil {
		return m.ListHypervisorsFunc(ctx)
	}
	return []api.Hypervisor{}, nil
}

func (m *CloudMock) ListFlavors(ctx context.Context) ([]api.Flavor, error) {
	m.calls.Add(1)
	if m.ListFlavorsFunc != nil {
		return m.ListFlavorsFunc(ctx)
	}
	return []api.Flavor{}, nil
}

func (m *CloudMock) GetFlavor(ctx context.Context, id string) (*api.Flavor, error) {
	m.calls.Add(1)
	if m.GetFlavorFunc != nil {
		return m.GetFlavorFunc(ctx, id)
	}
	return &api.Flavor{ID: id}, nil
}

func (m *CloudMock) ListImages(ctx context.Context) ([]api.Image, error) {
	m.calls.Add(1)
	if m.ListImagesFunc != nil {
		return m.ListImagesFunc(ctx)
	}
	return []api.Image{}, nil
}

func (m *CloudMock) GetImage(ctx context.Context, id string) (*api.Image, error) {
	m.calls.Add(1)
	if m.GetImageFunc != nil {
		return m.GetImageFunc(ctx, id)
	}
	return &api.Image{ID: id}, nil
}

func (m *CloudMock) ListVolumes(ctx context.Context) ([]api.Volume, error) {
	m.calls.Add(1)
	if m.ListVolumesFunc != nil {
		return m.ListVolumesFunc(ctx)
	}
	return []api.Volume{}, nil
}

func (m *CloudMock) ListVolumeTypes(ctx context.Context) ([]api.VolumeType, error) {
	m.calls.Add(1)
	if m.ListVolumeTypesFunc != nil {
		return m.ListVolumeTypesFunc(ctx)
	}
	return []api.VolumeType{}, nil
}

func (m *CloudMock) ListNetworks(ctx context.Context) ([]api.Network, error) {
	m.calls.Add(1)
	if m.ListNetworksFunc != nil {
		return m.ListNetworksFunc(ctx)
	}
	return []api.Network{}, nil
}

func (m *CloudMock) ListSubnets(ctx context.Context) ([]api.Subnet, error) {
	m.calls.Add(1)
	if m.ListSubnetsFunc != nil {
		return m.ListSubnetsFunc(ctx)
	}
	return []api.Subnet{}, nil
}

func (m *CloudMock) ListRouters(ctx context.Context) ([]api.Router, error) {
	m.calls.Add(1)
	if m.ListRoutersFunc != nil {
		return m.ListRoutersFunc(ctx)
	}
	return []api.Router{}, nil
}
