package commands

import (
	"context"
	"log/slog"

	"bikeshare/internal/core/domain/model/bicycle"
	"bikeshare/internal/core/domain/model/rental"
	"bikeshare/internal/core/ports"
)

// StartRentalCommandHandler rents out a bicycle and opens its rental record.
type StartRentalCommandHandler struct {
	registry    Registry
	ledger      ports.RentalLedger
	clock       Clock
	persistence persistence
}

// NewStartRentalCommandHandler creates the handler.
func NewStartRentalCommandHandler(
	registry Registry,
	ledger ports.RentalLedger,
	store SnapshotWriter,
	clock Clock,
	logger *slog.Logger,
) StartRentalCommandHandler {
	return StartRentalCommandHandler{
		registry:    registry,
		ledger:      ledger,
		clock:       clock,
		persistence: newPersistence(store, logger, "start_rental_handler"),
	}
}

// Handle rents the bicycle.
//
// Under the bicycle's lock: the bicycle must be Available, no rental may be
// open for it (ports.ErrRentalAlreadyActive), then the record is written, the
// bicycle becomes Rented and both are persisted.
func (h StartRentalCommandHandler) Handle(ctx context.Context, cmd StartRentalCommand) (rental.Record, error) {
	if err := cmd.Validate(); err != nil {
		return rental.Record{}, err
	}

	var record rental.Record
	_, err := h.registry.Update(ctx, cmd.BicycleID(), func(b *bicycle.Bicycle) error {
		if err := b.Check(bicycle.Rent); err != nil {
			return err
		}

		var err error
		if record, err = rental.NewRecord(b.ID(), h.clock.Now()); err != nil {
			return err
		}
		if err = h.ledger.Start(ctx, record); err != nil {
			return err
		}

		if err = b.SetRented(); err != nil {
			_ = h.ledger.Remove(ctx, b.ID())
			return err
		}

		h.persistence.startRental(ctx, b.Snapshot(), record)
		return nil
	})
	if err != nil {
		return rental.Record{}, err
	}
	return record, nil
}
