package commands

import (
	"context"
	"log/slog"

	"bikeshare/internal/core/domain/model/bicycle"
)

// MoveBicycleCommandHandler relocates bicycles between stations.
type MoveBicycleCommandHandler struct {
	registry    Registry
	stations    Stations
	persistence persistence
}

// NewMoveBicycleCommandHandler creates the handler.
func NewMoveBicycleCommandHandler(
	registry Registry,
	stations Stations,
	store SnapshotWriter,
	logger *slog.Logger,
) MoveBicycleCommandHandler {
	return MoveBicycleCommandHandler{
		registry:    registry,
		stations:    stations,
		persistence: newPersistence(store, logger, "move_bicycle_handler"),
	}
}

// Handle moves the bicycle. Anything but an Available bicycle is refused, and
// so is a station outside the directory (ports.ErrUnknownStation).
func (h MoveBicycleCommandHandler) Handle(ctx context.Context, cmd MoveBicycleCommand) (bicycle.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return bicycle.Snapshot{}, err
	}
	if err := checkStation(h.stations, cmd.Station()); err != nil {
		return bicycle.Snapshot{}, err
	}

	return h.registry.Update(ctx, cmd.BicycleID(), h.persistence.saved(ctx, func(b *bicycle.Bicycle) error {
		return b.MoveTo(cmd.Station())
	}))
}
