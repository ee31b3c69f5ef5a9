package ports

import (
	"context"

	"bikeshare/internal/core/domain/model/bicycle"
	"bikeshare/internal/core/domain/model/breakdown"
	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/core/domain/model/rental"
)

// UnitOfWorkFactory creates a new UnitOfWork for every store operation.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a database transaction boundary spanning the bicycle, rental and
// repair log tables. Client code manages the transaction explicitly.
type UnitOfWork interface {
	// Begin starts a transaction. Calling it twice is a no-op.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback discards the current transaction.
	Rollback(ctx context.Context) error

	// BicycleRepository returns a repository bound to the current transaction,
	// or to the plain connection when none is active.
	BicycleRepository() BicycleRepository

	// RepairLogRepository returns a repository bound to the current transaction,
	// or to the plain connection when none is active.
	RepairLogRepository() RepairLogRepository

	// RentalRepository returns a repository bound to the current transaction,
	// or to the plain connection when none is active.
	RentalRepository() RentalRepository
}

// BicycleRepository persists bicycle snapshots.
type BicycleRepository interface {
	// Save inserts or replaces the row for snapshot.ID.
	Save(ctx context.Context, snapshot bicycle.Snapshot) error

	// Delete removes the row. Deleting a missing row is not an error.
	Delete(ctx context.Context, id kernel.BicycleID) error

	// GetAll returns every row ordered by id.
	GetAll(ctx context.Context) ([]bicycle.Snapshot, error)
}

// RepairLogRepository persists the repair history.
type RepairLogRepository interface {
	// Append adds one history row.
	Append(ctx context.Context, repair breakdown.Repair) error

	// ListByBicycle returns the history of one bicycle ordered by completion time.
	ListByBicycle(ctx context.Context, id kernel.BicycleID) ([]breakdown.Repair, error)

	// DeleteByBicycle drops the history of a deregistered bicycle.
	DeleteByBicycle(ctx context.Context, id kernel.BicycleID) error
}

// RentalRepository persists open rental records.
type RentalRepository interface {
	// Open inserts the record. Returns ErrRentalAlreadyActive if the bicycle has one.
	Open(ctx context.Context, record rental.Record) error

	// Close removes the record of id. Closing a missing record is not an error.
	Close(ctx context.Context, id kernel.BicycleID) error

	// GetAll returns every open record ordered by bicycle id.
	GetAll(ctx context.Context) ([]rental.Record, error)
}
