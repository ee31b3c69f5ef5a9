package commands

import (
	"context"
	"errors"
	"log/slog"

	"bikeshare/internal/core/domain/model/bicycle"
	"bikeshare/internal/core/ports"
)

// RegisterBicycleCommandHandler creates the aggregate and adds it to the registry.
type RegisterBicycleCommandHandler struct {
	registry    Registry
	stations    Stations
	clock       Clock
	persistence persistence
}

// NewRegisterBicycleCommandHandler creates the handler.
func NewRegisterBicycleCommandHandler(
	registry Registry,
	stations Stations,
	store SnapshotWriter,
	clock Clock,
	logger *slog.Logger,
) RegisterBicycleCommandHandler {
	return RegisterBicycleCommandHandler{
		registry:    registry,
		stations:    stations,
		clock:       clock,
		persistence: newPersistence(store, logger, "register_bicycle_handler"),
	}
}

// Handle registers the bicycle. Returns ports.ErrUnknownStation for a station
// outside the directory and ports.ErrBicycleAlreadyRegistered if the id is taken.
func (h RegisterBicycleCommandHandler) Handle(
	ctx context.Context,
	cmd RegisterBicycleCommand,
) (bicycle.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return bicycle.Snapshot{}, err
	}
	if err := checkStation(h.stations, cmd.Station()); err != nil {
		return bicycle.Snapshot{}, err
	}

	b, err := bicycle.NewBicycle(cmd.BicycleID(), cmd.Kind(), cmd.Station(), h.clock.Now())
	if err != nil {
		return bicycle.Snapshot{}, err
	}
	registered := b.Snapshot()

	if err = h.registry.Add(ctx, b); err != nil {
		return bicycle.Snapshot{}, err
	}

	// The first write goes through the bicycle's lock like every later one. If
	// the bicycle was deregistered in the meantime its delete already ran.
	_, err = h.registry.Update(ctx, cmd.BicycleID(), h.persistence.saved(ctx, func(*bicycle.Bicycle) error {
		return nil
	}))
	if err != nil && !errors.Is(err, ports.ErrUnknownBicycle) {
		h.persistence.logger.WarnContext(ctx, "Failed to persist registered bicycle",
			"bicycle_id", registered.ID.String(), "error", err)
	}

	return registered, nil
}
