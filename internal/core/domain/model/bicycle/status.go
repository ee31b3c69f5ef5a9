package bicycle

import (
	"errors"
	"fmt"
	"strings"

	"bikeshare/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel behind every refused action or transition.
// A refusal is a normal business outcome, never a crash.
var ErrInvalidTransition = errors.New("invalid transition")

// Status is the lifecycle state of a bicycle. Exactly one Status is held by a
// bicycle at any instant.
//
// State transitions (no terminal state):
//
//	Available ──report──> Broken ──beginRepair──> Repairing ──complete──> Available
//	Available ──rent────> Rented ──return───────> Available
//
// There is no edge between Rented and Broken/Repairing: a rented bicycle can be
// neither reported nor repaired until it is returned.
type Status int

const (
	// Unknown is the zero value and never a valid lifecycle state.
	Unknown Status = iota
	Available
	Rented
	Broken
	Repairing
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Available: "Available",
		Rented:    "Rented",
		Broken:    "Broken",
		Repairing: "Repairing",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Available: "Available",
		Rented:    "Rented",
		Broken:    "Broken",
		Repairing: "Repairing",
	}
}

// AllStatuses lists the valid states in declaration order.
func AllStatuses() []Status {
	return []Status{Available, Rented, Broken, Repairing}
}

// ParseStatus maps a case-insensitive name such as "repairing" to its Status.
func ParseStatus(name string) (Status, error) {
	for s, str := range getValidStatusStrings() {
		if strings.EqualFold(str, strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", name))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Permits reports whether the action is allowed from s. Only Available permits
// renting, deleting, moving and reporting; every other state locks all four.
func (s Status) Permits(a Action) bool {
	return s == Available && a.IsPermission()
}

// Check is Permits returning a RefusalError that names the action and state.
func (s Status) Check(a Action) error {
	if !s.Permits(a) {
		return NewRefusalError(a, s)
	}
	return nil
}

// Permissions evaluates the four permission queries at once.
func (s Status) Permissions() Permissions {
	return Permissions{
		CanRent:   s.Permits(Rent),
		CanDelete: s.Permits(Delete),
		CanMove:   s.Permits(Move),
		CanReport: s.Permits(Report),
	}
}

// ReportBroken transitions Available -> Broken.
func (s Status) ReportBroken() (Status, error) {
	if err := s.Check(Report); err != nil {
		return 0, err
	}
	return Broken, nil
}

// BeginRepair transitions Broken -> Repairing.
func (s Status) BeginRepair() (Status, error) {
	if s != Broken {
		return 0, NewRefusalError(BeginRepair, s)
	}
	return Repairing, nil
}

// CompleteRepair transitions Repairing -> Available.
func (s Status) CompleteRepair() (Status, error) {
	if s != Repairing {
		return 0, NewRefusalError(CompleteRepair, s)
	}
	return Available, nil
}

// Rent transitions Available -> Rented.
func (s Status) Rent() (Status, error) {
	if err := s.Check(Rent); err != nil {
		return 0, err
	}
	return Rented, nil
}

// Return transitions Rented -> Available.
func (s Status) Return() (Status, error) {
	if s != Rented {
		return 0, NewRefusalError(Return, s)
	}
	return Available, nil
}

// Permissions is the result of the four permission queries for one state.
type Permissions struct {
	CanRent   bool
	CanDelete bool
	CanMove   bool
	CanReport bool
}
