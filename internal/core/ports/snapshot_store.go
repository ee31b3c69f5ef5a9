package ports

import (
	"context"

	"bikeshare/internal/core/domain/model/bicycle"
	"bikeshare/internal/core/domain/model/breakdown"
	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/core/domain/model/rental"
)

// SnapshotStore is the persistence hook invoked after each successful mutation.
// It never drives the state machine: the registry stays authoritative, and a
// failing store only loses durability.
type SnapshotStore interface {
	// Save upserts the bicycle's state.
	Save(ctx context.Context, snapshot bicycle.Snapshot) error

	// Delete forgets a deregistered bicycle, its open rental and its history.
	Delete(ctx context.Context, id kernel.BicycleID) error

	// RecordRepair saves the returned-to-service state together with the repair
	// history entry, atomically.
	RecordRepair(ctx context.Context, snapshot bicycle.Snapshot, repair breakdown.Repair) error

	// StartRental saves the Rented snapshot together with the open rental record,
	// atomically.
	StartRental(ctx context.Context, snapshot bicycle.Snapshot, record rental.Record) error

	// EndRental saves the returned snapshot and drops the open rental record,
	// atomically.
	EndRental(ctx context.Context, snapshot bicycle.Snapshot) error

	// Rentals returns every open rental record, used to warm the rental ledger.
	Rentals(ctx context.Context) ([]rental.Record, error)

	// LoadAll returns every saved bicycle, used to warm the registry at startup.
	LoadAll(ctx context.Context) ([]bicycle.Snapshot, error)

	// Repairs returns the repair history of one bicycle, oldest first.
	Repairs(ctx context.Context, id kernel.BicycleID) ([]breakdown.Repair, error)
}
