package commands

import (
	"errors"

	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/pkg/guard"
)

var ErrStartRentalCommandIsNotConstructed = errors.New(
	"StartRentalCommand must be created via NewStartRentalCommand constructor",
)

// StartRentalCommand rents out an Available bicycle.
type StartRentalCommand struct {
	bicycleID kernel.BicycleID
	guard     guard.ConstructorGuard
}

// NewStartRentalCommand validates and builds the command.
func NewStartRentalCommand(bicycleID kernel.BicycleID) (StartRentalCommand, error) {
	if err := bicycleID.Validate(); err != nil {
		return StartRentalCommand{}, err
	}
	return StartRentalCommand{bicycleID: bicycleID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c StartRentalCommand) Validate() error {
	return c.guard.Validate(ErrStartRentalCommandIsNotConstructed)
}

// BicycleID returns the bicycle to rent.
func (c StartRentalCommand) BicycleID() kernel.BicycleID {
	return c.bicycleID
}
