package commands

import (
	"errors"

	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/pkg/guard"
)

var ErrMoveBicycleCommandIsNotConstructed = errors.New(
	"MoveBicycleCommand must be created via NewMoveBicycleCommand constructor",
)

// MoveBicycleCommand relocates an Available bicycle to another station.
type MoveBicycleCommand struct { //nolint:recvcheck //using for validation
	bicycleID kernel.BicycleID
	station   kernel.Station
	guard     guard.ConstructorGuard
}

// NewMoveBicycleCommand validates and builds the command.
func NewMoveBicycleCommand(bicycleID kernel.BicycleID, station kernel.Station) (MoveBicycleCommand, error) {
	cmd := MoveBicycleCommand{guard: guard.NewConstructorGuard()}
	if err := errors.Join(cmd.setBicycleID(bicycleID), cmd.setStation(station)); err != nil {
		return MoveBicycleCommand{}, err
	}
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MoveBicycleCommand) Validate() error {
	return c.guard.Validate(ErrMoveBicycleCommandIsNotConstructed)
}

// BicycleID returns the bicycle to move.
func (c MoveBicycleCommand) BicycleID() kernel.BicycleID {
	return c.bicycleID
}

// Station returns the destination.
func (c MoveBicycleCommand) Station() kernel.Station {
	return c.station
}

func (c *MoveBicycleCommand) setBicycleID(id kernel.BicycleID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.bicycleID = id
	return nil
}

func (c *MoveBicycleCommand) setStation(station kernel.Station) error {
	if err := station.Validate(); err != nil {
		return err
	}
	c.station = station
	return nil
}
