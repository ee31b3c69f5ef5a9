package commands

import (
	"errors"

	"bikeshare/internal/core/domain/model/bicycle"
	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/pkg/guard"
)

var ErrRegisterBicycleCommandIsNotConstructed = errors.New(
	"RegisterBicycleCommand must be created via NewRegisterBicycleCommand constructor",
)

// RegisterBicycleCommand adds a new bicycle to the fleet in the Available state.
//
// Example:
//
//	cmd, err := NewRegisterBicycleCommand(kernel.MustBicycleID("B-001"), bicycle.Electric,
//	    kernel.MustStation("성복동"))
//	if err != nil {
//	    return fmt.Errorf("invalid bicycle data: %w", err)
//	}
//	snapshot, err := handler.Handle(ctx, cmd)
type RegisterBicycleCommand struct { //nolint:recvcheck //using for validation
	bicycleID kernel.BicycleID
	kind      bicycle.Kind
	station   kernel.Station

	guard guard.ConstructorGuard
}

// NewRegisterBicycleCommand validates and builds the command.
func NewRegisterBicycleCommand(
	bicycleID kernel.BicycleID,
	kind bicycle.Kind,
	station kernel.Station,
) (RegisterBicycleCommand, error) {
	cmd := RegisterBicycleCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setBicycleID(bicycleID),
		cmd.setKind(kind),
		cmd.setStation(station),
	); err != nil {
		return RegisterBicycleCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterBicycleCommand) Validate() error {
	return c.guard.Validate(ErrRegisterBicycleCommandIsNotConstructed)
}

// BicycleID returns the identifier of the new bicycle.
func (c RegisterBicycleCommand) BicycleID() kernel.BicycleID {
	return c.bicycleID
}

// Kind returns Regular or Electric.
func (c RegisterBicycleCommand) Kind() bicycle.Kind {
	return c.kind
}

// Station returns where the bicycle is parked.
func (c RegisterBicycleCommand) Station() kernel.Station {
	return c.station
}

func (c *RegisterBicycleCommand) setBicycleID(id kernel.BicycleID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.bicycleID = id
	return nil
}

func (c *RegisterBicycleCommand) setKind(kind bicycle.Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	c.kind = kind
	return nil
}

func (c *RegisterBicycleCommand) setStation(station kernel.Station) error {
	if err := station.Validate(); err != nil {
		return err
	}
	c.station = station
	return nil
}
