package commands

import (
	"errors"
	"slices"

	"bikeshare/internal/core/domain/model/breakdown"
	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/pkg/guard"
)

var (
	ErrReportBreakdownCommandIsNotConstructed = errors.New(
		"ReportBreakdownCommand must be created via NewReportBreakdownCommand constructor",
	)
	ErrCausesAreRequired = errors.New("at least one breakdown cause is required")
)

// ReportBreakdownCommand reports a broken bicycle. The origin station and the
// electric flag are not part of the command: they are read from the bicycle.
//
// Example:
//
//	cmd, err := NewReportBreakdownCommand(kernel.MustBicycleID("B-001"),
//	    []breakdown.Cause{breakdown.FlatTire, breakdown.BrakeIssue})
//	report, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, bicycle.ErrInvalidTransition) {
//	    // bicycle was not Available
//	}
type ReportBreakdownCommand struct { //nolint:recvcheck //using for validation
	bicycleID kernel.BicycleID
	causes    []breakdown.Cause

	guard guard.ConstructorGuard
}

// NewReportBreakdownCommand validates and builds the command. At least one valid
// cause is required.
func NewReportBreakdownCommand(bicycleID kernel.BicycleID, causes []breakdown.Cause) (ReportBreakdownCommand, error) {
	cmd := ReportBreakdownCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setBicycleID(bicycleID),
		cmd.setCauses(causes),
	); err != nil {
		return ReportBreakdownCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportBreakdownCommand) Validate() error {
	return c.guard.Validate(ErrReportBreakdownCommandIsNotConstructed)
}

// BicycleID returns the reported bicycle.
func (c ReportBreakdownCommand) BicycleID() kernel.BicycleID {
	return c.bicycleID
}

// Causes returns a copy of the reported causes.
func (c ReportBreakdownCommand) Causes() []breakdown.Cause {
	return slices.Clone(c.causes)
}

func (c *ReportBreakdownCommand) setBicycleID(id kernel.BicycleID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.bicycleID = id
	return nil
}

func (c *ReportBreakdownCommand) setCauses(causes []breakdown.Cause) error {
	if len(causes) == 0 {
		return ErrCausesAreRequired
	}
	for _, cause := range causes {
		if err := cause.Validate(); err != nil {
			return err
		}
	}
	c.causes = slices.Clone(causes)
	return nil
}
