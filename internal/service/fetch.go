package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/clouddiag/openstack-advisor/internal/inventory"
	"github.com/clouddiag/openstack-advisor/pkg/metrics"
)

// collectionTask fetches one resource kind and stores the result into the
// shared snapshot. run must only touch its own field; the mutex in
// fetchCollections guards the diagnostics slice.
type collectionTask struct {
	kind string
	run  func(ctx context.Context) error
}

// fetchCollections issues the independent collection fetches concurrently
// with bounded parallelism, each under its own timeout. A failed fetch leaves
// its collection empty and records a diagnostic, it never aborts the
// snapshot. When the caller deadline expires, already-completed sections are
// kept.
func (s *AdvisorService) fetchCollections(ctx context.Context, tasks []collectionTask) []string {
	parallelism := s.fetchParallelism
	if parallelism <= 0 || parallelism > len(tasks) {
		parallelism = len(tasks)
	}

	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		diagnostics []string
	)
	sem := make(chan struct{}, parallelism)

	for _, task := range tasks {
		wg.Add(1)
		go func(task collectionTask) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
			defer cancel()

			if err := task.run(fetchCtx); err != nil {
				zap.S().Named("service").Warnw("collection fetch failed", "kind", task.kind, "error", err)
				metrics.IncreaseFetchFailure(task.kind)
				mu.Lock()
				diagnostics = append(diagnostics, fmt.Sprintf("failed to list %s: %v", task.kind, err))
				mu.Unlock()
			}
		}(task)
	}
	wg.Wait()

	return diagnostics
}

// snapshot fetches all nine resource collections feeding report assembly.
func (s *AdvisorService) snapshot(ctx context.Context) inventory.Collections {
	var c inventory.Collections
	tasks := []collectionTask{
		{kind: "servers", run: func(ctx context.Context) error {
			items, err := s.client.ListServers(ctx)
			c.Servers = items
			return err
		}},
		{kind: "hypervisors", run: func(ctx context.Context) error {
			items, err := s.client.ListHypervisors(ctx)
			c.Hypervisors = items
			return err
		}},
		{kind: "flavors", run: func(ctx context.Context) error {
			items, err := s.client.ListFlavors(ctx)
			c.Flavors = items
			return err
		}},
		{kind: "images", run: func(ctx context.Context) error {
			items, err := s.client.ListImages(ctx)
			c.Images = items
			return err
		}},
		{kind: "volumes", run: func(ctx context.Context) error {
			items, err := s.client.ListVolumes(ctx)
			c.Volumes = items
			return err
		}},
		{kind: "volume_types", run: func(ctx context.Context) error {
			items, err := s.client.ListVolumeTypes(ctx)
			c.VolumeTypes = items
			return err
		}},
		{kind: "networks", run: func(ctx context.Context) error {
			items, err := s.client.ListNetworks(ctx)
			c.Networks = items
			return err
		}},
		{kind: "subnets", run: func(ctx context.Context) error {
			items, err := s.client.ListSubnets(ctx)
			c.Subnets = items
			return err
		}},
		{kind: "routers", run: func(ctx context.Context) error {
			items, err := s.client.ListRouters(ctx)
			c.Routers = items
			return err
		}},
	}

	c.Diagnostics = s.fetchCollections(ctx, tasks)
	return c
}
