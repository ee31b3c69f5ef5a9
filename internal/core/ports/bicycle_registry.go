package ports

import (
	"context"

	"bikeshare/internal/core/domain/model/bicycle"
	"bikeshare/internal/core/domain/model/kernel"
)

// BicycleRegistry is the authoritative, in-process store of bicycle aggregates.
//
// Aggregates never leave the registry: callers mutate them inside Update/Remove
// callbacks and read detached snapshots. Every callback for one bicycle runs
// under that bicycle's lock, so a check followed by a transition inside one
// callback is atomic with respect to every other caller.
type BicycleRegistry interface {
	// Add inserts a new bicycle. Returns ErrBicycleAlreadyRegistered if the id is taken.
	Add(ctx context.Context, b *bicycle.Bicycle) error

	// Update runs fn on the bicycle under its lock and returns the state after fn.
	// Returns ErrUnknownBicycle if the id is not registered, or fn's error as is.
	// State changes made by fn before it fails are kept; aggregate transitions are
	// all-or-nothing, so a refused transition leaves nothing behind.
	Update(ctx context.Context, id kernel.BicycleID, fn func(*bicycle.Bicycle) error) (bicycle.Snapshot, error)

	// Remove runs fn under the bicycle's lock and deletes the bicycle if fn
	// returns nil. Returns the last state.
	Remove(ctx context.Context, id kernel.BicycleID, fn func(*bicycle.Bicycle) error) (bicycle.Snapshot, error)

	// Get returns the current state. Returns ErrUnknownBicycle if absent.
	Get(ctx context.Context, id kernel.BicycleID) (bicycle.Snapshot, error)

	// List returns every bicycle ordered by id.
	List(ctx context.Context) ([]bicycle.Snapshot, error)
}
