package queries

import (
	"errors"

	"bikeshare/internal/core/domain/model/bicycle"
	"bikeshare/internal/pkg/guard"
)

var ErrListBicyclesQueryIsNotConstructed = errors.New(
	"ListBicyclesQuery must be created via NewListBicyclesQuery constructor",
)

// ListBicyclesQuery lists the fleet, optionally only the bicycles in one state.
type ListBicyclesQuery struct {
	status *bicycle.Status
	guard  guard.ConstructorGuard
}

// NewListBicyclesQuery lists every bicycle.
func NewListBicyclesQuery() ListBicyclesQuery {
	return ListBicyclesQuery{guard: guard.NewConstructorGuard()}
}

// NewListBicyclesByStatusQuery lists the bicycles currently in status.
func NewListBicyclesByStatusQuery(status bicycle.Status) (ListBicyclesQuery, error) {
	if err := status.Validate(); err != nil {
		return ListBicyclesQuery{}, err
	}
	return ListBicyclesQuery{status: &status, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through a constructor.
func (q ListBicyclesQuery) Validate() error {
	return q.guard.Validate(ErrListBicyclesQueryIsNotConstructed)
}

// Status returns the filter and whether one is set.
func (q ListBicyclesQuery) Status() (bicycle.Status, bool) {
	if q.status == nil {
		return bicycle.Unknown, false
	}
	return *q.status, true
}
