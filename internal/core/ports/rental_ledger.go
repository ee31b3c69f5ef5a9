package ports

import (
	"context"

	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/core/domain/model/rental"
)

// RentalLedger keeps one active rental record per bicycle.
type RentalLedger interface {
	// Start stores record. Returns ErrRentalAlreadyActive if the bicycle has one.
	Start(ctx context.Context, record rental.Record) error

	// Lookup returns the active record. Returns ErrMissingRentalRecord if none.
	Lookup(ctx context.Context, id kernel.BicycleID) (rental.Record, error)

	// Remove drops the active record. Removing a missing record is not an error.
	Remove(ctx context.Context, id kernel.BicycleID) error
}
