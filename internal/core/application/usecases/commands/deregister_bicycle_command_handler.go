package commands

import (
	"context"
	"log/slog"

	"bikeshare/internal/core/domain/model/bicycle"
)

// DeregisterBicycleCommandHandler removes bicycles that are not in use.
type DeregisterBicycleCommandHandler struct {
	registry    Registry
	persistence persistence
}

// NewDeregisterBicycleCommandHandler creates the handler.
func NewDeregisterBicycleCommandHandler(
	registry Registry,
	store SnapshotWriter,
	logger *slog.Logger,
) DeregisterBicycleCommandHandler {
	return DeregisterBicycleCommandHandler{
		registry:    registry,
		persistence: newPersistence(store, logger, "deregister_bicycle_handler"),
	}
}

// Handle removes the bicycle. A Rented, Broken or Repairing bicycle is refused
// with a *bicycle.RefusalError and stays registered.
func (h DeregisterBicycleCommandHandler) Handle(ctx context.Context, cmd DeregisterBicycleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := h.registry.Remove(ctx, cmd.BicycleID(), func(b *bicycle.Bicycle) error {
		if err := b.Check(bicycle.Delete); err != nil {
			return err
		}
		h.persistence.delete(ctx, b.ID())
		return nil
	})
	return err
}
