package commands

import (
	"errors"

	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/pkg/guard"
)

var ErrDeregisterBicycleCommandIsNotConstructed = errors.New(
	"DeregisterBicycleCommand must be created via NewDeregisterBicycleCommand constructor",
)

// DeregisterBicycleCommand removes a bicycle from the fleet. Only an Available
// bicycle can be removed.
type DeregisterBicycleCommand struct {
	bicycleID kernel.BicycleID
	guard     guard.ConstructorGuard
}

// NewDeregisterBicycleCommand validates and builds the command.
func NewDeregisterBicycleCommand(bicycleID kernel.BicycleID) (DeregisterBicycleCommand, error) {
	if err := bicycleID.Validate(); err != nil {
		return DeregisterBicycleCommand{}, err
	}
	return DeregisterBicycleCommand{bicycleID: bicycleID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeregisterBicycleCommand) Validate() error {
	return c.guard.Validate(ErrDeregisterBicycleCommandIsNotConstructed)
}

// BicycleID returns the bicycle to remove.
func (c DeregisterBicycleCommand) BicycleID() kernel.BicycleID {
	return c.bicycleID
}
