package queries

import (
	"errors"
	"time"

	"bikeshare/internal/core/domain/model/bicycle"
	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/pkg/guard"
)

var ErrGetBicycleQueryIsNotConstructed = errors.New(
	"GetBicycleQuery must be created via NewGetBicycleQuery constructor",
)

// GetBicycleQuery reads one bicycle's status and what may be done with it.
//
// Example:
//
//	query, _ := NewGetBicycleQuery(kernel.MustBicycleID("B-001"))
//	view, err := handler.Handle(ctx, query)
//	if err == nil && !view.CanDelete {
//	    // bicycle is rented or in the repair pipeline
//	}
type GetBicycleQuery struct {
	bicycleID kernel.BicycleID
	guard     guard.ConstructorGuard
}

// NewGetBicycleQuery validates and builds the query.
func NewGetBicycleQuery(bicycleID kernel.BicycleID) (GetBicycleQuery, error) {
	if err := bicycleID.Validate(); err != nil {
		return GetBicycleQuery{}, err
	}
	return GetBicycleQuery{bicycleID: bicycleID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetBicycleQuery) Validate() error {
	return q.guard.Validate(ErrGetBicycleQueryIsNotConstructed)
}

// BicycleID returns the bicycle to read.
func (q GetBicycleQuery) BicycleID() kernel.BicycleID {
	return q.bicycleID
}

// BicycleView is the read model of one bicycle.
type BicycleView struct {
	ID                kernel.BicycleID
	Kind              bicycle.Kind
	Station           kernel.Station
	Status            bicycle.Status
	RegisteredAt      time.Time
	LastMaintenanceAt time.Time
	bicycle.Permissions
}

func newBicycleView(s bicycle.Snapshot) BicycleView {
	return BicycleView{
		ID:                s.ID,
		Kind:              s.Kind,
		Station:           s.Station,
		Status:            s.Status,
		RegisteredAt:      s.RegisteredAt,
		LastMaintenanceAt: s.LastMaintenanceAt,
		Permissions:       s.Permissions(),
	}
}
