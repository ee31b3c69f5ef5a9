// Package snapshotstore is an in-memory SnapshotStore used when no database is
// configured. It keeps state for the lifetime of the process only.
package snapshotstore

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"bikeshare/internal/core/domain/model/bicycle"
	"bikeshare/internal/core/domain/model/breakdown"
	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/core/domain/model/rental"
	"bikeshare/internal/core/ports"
)

// Store implements ports.SnapshotStore.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string]bicycle.Snapshot
	repairs   map[string][]breakdown.Repair
	rentals   map[string]rental.Record
}

var _ ports.SnapshotStore = (*Store)(nil)

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		snapshots: make(map[string]bicycle.Snapshot),
		repairs:   make(map[string][]breakdown.Repair),
		rentals:   make(map[string]rental.Record),
	}
}

// Save upserts snapshot.
func (s *Store) Save(_ context.Context, snapshot bicycle.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snapshot.ID.String()] = snapshot
	return nil
}

// Delete forgets id, its open rental and its history.
func (s *Store) Delete(_ context.Context, id kernel.BicycleID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, id.String())
	delete(s.repairs, id.String())
	delete(s.rentals, id.String())
	return nil
}

// StartRental saves snapshot and stores record.
func (s *Store) StartRental(_ context.Context, snapshot bicycle.Snapshot, record rental.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := snapshot.ID.String()
	if _, ok := s.rentals[key]; ok {
		return fmt.Errorf("%w: %s", ports.ErrRentalAlreadyActive, key)
	}
	s.snapshots[key] = snapshot
	s.rentals[key] = record
	return nil
}

// EndRental saves snapshot and drops its rental record.
func (s *Store) EndRental(_ context.Context, snapshot bicycle.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := snapshot.ID.String()
	s.snapshots[key] = snapshot
	delete(s.rentals, key)
	return nil
}

// Rentals returns the open rental records ordered by bicycle id.
func (s *Store) Rentals(_ context.Context) ([]rental.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]rental.Record, 0, len(s.rentals))
	for _, r := range s.rentals {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b rental.Record) int {
		return strings.Compare(a.BicycleID().String(), b.BicycleID().String())
	})
	return out, nil
}

// RecordRepair saves snapshot and appends repair.
func (s *Store) RecordRepair(_ context.Context, snapshot bicycle.Snapshot, repair breakdown.Repair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := snapshot.ID.String()
	s.snapshots[key] = snapshot
	s.repairs[key] = append(s.repairs[key], repair)
	return nil
}

// LoadAll returns every snapshot ordered by id.
func (s *Store) LoadAll(_ context.Context) ([]bicycle.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]bicycle.Snapshot, 0, len(s.snapshots))
	for _, snap := range s.snapshots {
		out = append(out, snap)
	}
	slices.SortFunc(out, func(a, b bicycle.Snapshot) int {
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return out, nil
}

// Repairs returns the history of id.
func (s *Store) Repairs(_ context.Context, id kernel.BicycleID) ([]breakdown.Repair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.repairs[id.String()]), nil
}
