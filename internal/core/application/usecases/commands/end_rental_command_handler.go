package commands

import (
	"context"
	"log/slog"
	"time"

	"bikeshare/internal/core/domain/model/bicycle"
	"bikeshare/internal/core/domain/model/rental"
	"bikeshare/internal/core/ports"
)

// EndRentalCommandHandler closes a rental and computes the billed usage.
type EndRentalCommandHandler struct {
	registry    Registry
	ledger      ports.RentalLedger
	stations    Stations
	clock       Clock
	billingUnit time.Duration
	persistence persistence
}

// NewEndRentalCommandHandler creates the handler. billingUnit is one minute in
// production; one second turns every rented second into a billed minute.
func NewEndRentalCommandHandler(
	registry Registry,
	ledger ports.RentalLedger,
	stations Stations,
	store SnapshotWriter,
	clock Clock,
	billingUnit time.Duration,
	logger *slog.Logger,
) EndRentalCommandHandler {
	return EndRentalCommandHandler{
		registry:    registry,
		ledger:      ledger,
		stations:    stations,
		clock:       clock,
		billingUnit: billingUnit,
		persistence: newPersistence(store, logger, "end_rental_handler"),
	}
}

// Handle ends the rental.
//
// A return station outside the directory is refused with ports.ErrUnknownStation
// before anything changes. Under the bicycle's lock the rental record is looked up first
// (ports.ErrMissingRentalRecord when there is none), then the bicycle goes back
// to Available, optionally moves to the return station, and the record is
// dropped. The usage is billed at least one unit.
func (h EndRentalCommandHandler) Handle(ctx context.Context, cmd EndRentalCommand) (rental.Usage, error) {
	if err := cmd.Validate(); err != nil {
		return rental.Usage{}, err
	}

	if station, ok := cmd.ReturnStation(); ok {
		if err := checkStation(h.stations, station); err != nil {
			return rental.Usage{}, err
		}
	}

	var usage rental.Usage
	_, err := h.registry.Update(ctx, cmd.BicycleID(), func(b *bicycle.Bicycle) error {
		record, err := h.ledger.Lookup(ctx, b.ID())
		if err != nil {
			return err
		}

		if usage, err = rental.NewUsage(record, h.clock.Now(), h.billingUnit); err != nil {
			return err
		}

		if err = b.SetAvailable(); err != nil {
			return err
		}
		if station, ok := cmd.ReturnStation(); ok {
			if err = b.MoveTo(station); err != nil {
				return err
			}
		}

		if err = h.ledger.Remove(ctx, b.ID()); err != nil {
			return err
		}

		h.persistence.endRental(ctx, b.Snapshot())
		return nil
	})
	if err != nil {
		return rental.Usage{}, err
	}
	return usage, nil
}
