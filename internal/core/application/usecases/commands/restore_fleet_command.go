package commands

import (
	"errors"

	"bikeshare/internal/pkg/guard"
)

var ErrRestoreFleetCommandIsNotConstructed = errors.New(
	"RestoreFleetCommand must be created via NewRestoreFleetCommand constructor",
)

// RestoreFleetCommand loads the persisted fleet and its open rentals into the
// in-process registry and ledger. It runs once at startup, before the HTTP
// surface accepts requests.
//
// Example:
//
//	resumed, err := handler.Handle(ctx, NewRestoreFleetCommand())
//	if err != nil {
//	    return fmt.Errorf("warm registry: %w", err)
//	}
//	for _, report := range resumed {
//	    workflow.Notify(ctx, events.BreakdownReported{Report: report})
//	}
type RestoreFleetCommand struct {
	guard guard.ConstructorGuard
}

// NewRestoreFleetCommand creates the command.
func NewRestoreFleetCommand() RestoreFleetCommand {
	return RestoreFleetCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c RestoreFleetCommand) Validate() error {
	return c.guard.Validate(ErrRestoreFleetCommandIsNotConstructed)
}
