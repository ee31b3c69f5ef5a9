package commands

import (
	"errors"

	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/pkg/guard"
)

var ErrEndRentalCommandIsNotConstructed = errors.New(
	"EndRentalCommand must be created via NewEndRentalCommand constructor",
)

// EndRentalCommand returns a rented bicycle. The bicycle can be dropped off at a
// different station than it was taken from.
type EndRentalCommand struct {
	bicycleID     kernel.BicycleID
	returnStation *kernel.Station
	guard         guard.ConstructorGuard
}

// NewEndRentalCommand validates and builds the command. returnStation may be nil
// to leave the bicycle's station unchanged.
func NewEndRentalCommand(bicycleID kernel.BicycleID, returnStation *kernel.Station) (EndRentalCommand, error) {
	if err := bicycleID.Validate(); err != nil {
		return EndRentalCommand{}, err
	}
	cmd := EndRentalCommand{bicycleID: bicycleID, guard: guard.NewConstructorGuard()}
	if returnStation != nil {
		if err := returnStation.Validate(); err != nil {
			return EndRentalCommand{}, err
		}
		station := *returnStation
		cmd.returnStation = &station
	}
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c EndRentalCommand) Validate() error {
	return c.guard.Validate(ErrEndRentalCommandIsNotConstructed)
}

// BicycleID returns the bicycle being returned.
func (c EndRentalCommand) BicycleID() kernel.BicycleID {
	return c.bicycleID
}

// ReturnStation returns the drop-off station and whether one was given.
func (c EndRentalCommand) ReturnStation() (kernel.Station, bool) {
	if c.returnStation == nil {
		return kernel.Station{}, false
	}
	return *c.returnStation, true
}
