// Package bicyclerepo is the in-memory BicycleRegistry. Each bicycle has its own
// lock; the map lock is held only to find or insert entries.
package bicyclerepo

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"bikeshare/internal/core/domain/model/bicycle"
	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/core/ports"
)

type entry struct {
	mu      sync.Mutex
	bike    *bicycle.Bicycle
	removed bool
}

// Registry implements ports.BicycleRegistry.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

var _ ports.BicycleRegistry = (*Registry)(nil)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Add inserts b.
func (r *Registry) Add(_ context.Context, b *bicycle.Bicycle) error {
	if err := b.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := b.ID().String()
	if _, ok := r.entries[key]; ok {
		return fmt.Errorf("%w: %s", ports.ErrBicycleAlreadyRegistered, key)
	}
	r.entries[key] = &entry{bike: b}
	return nil
}

// Update runs fn under the bicycle's lock.
func (r *Registry) Update(
	_ context.Context,
	id kernel.BicycleID,
	fn func(*bicycle.Bicycle) error,
) (bicycle.Snapshot, error) {
	e, err := r.lock(id)
	if err != nil {
		return bicycle.Snapshot{}, err
	}
	defer e.mu.Unlock()

	err = fn(e.bike)
	return e.bike.Snapshot(), err
}

// Remove runs fn under the bicycle's lock and deletes it when fn succeeds.
func (r *Registry) Remove(
	_ context.Context,
	id kernel.BicycleID,
	fn func(*bicycle.Bicycle) error,
) (bicycle.Snapshot, error) {
	e, err := r.lock(id)
	if err != nil {
		return bicycle.Snapshot{}, err
	}
	defer e.mu.Unlock()

	snapshot := e.bike.Snapshot()
	if fn != nil {
		if err = fn(e.bike); err != nil {
			return e.bike.Snapshot(), err
		}
	}

	e.removed = true
	r.mu.Lock()
	delete(r.entries, id.String())
	r.mu.Unlock()

	return snapshot, nil
}

// Get returns the current state of one bicycle.
func (r *Registry) Get(_ context.Context, id kernel.BicycleID) (bicycle.Snapshot, error) {
	e, err := r.lock(id)
	if err != nil {
		return bicycle.Snapshot{}, err
	}
	defer e.mu.Unlock()

	return e.bike.Snapshot(), nil
}

// List returns every bicycle ordered by id.
func (r *Registry) List(_ context.Context) ([]bicycle.Snapshot, error) {
	r.mu.RLock()
	entries := make([]*entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	snapshots := make([]bicycle.Snapshot, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		if !e.removed {
			snapshots = append(snapshots, e.bike.Snapshot())
		}
		e.mu.Unlock()
	}

	slices.SortFunc(snapshots, func(a, b bicycle.Snapshot) int {
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return snapshots, nil
}

// lock finds id and returns its entry locked. An entry removed between the map
// lookup and acquiring its lock counts as unknown.
func (r *Registry) lock(id kernel.BicycleID) (*entry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	e, ok := r.entries[id.String()]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrUnknownBicycle, id)
	}

	e.mu.Lock()
	if e.removed {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ports.ErrUnknownBicycle, id)
	}
	return e, nil
}
