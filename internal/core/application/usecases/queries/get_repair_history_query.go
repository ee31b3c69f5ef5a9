package queries

import (
	"errors"

	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/pkg/guard"
)

var ErrGetRepairHistoryQueryIsNotConstructed = errors.New(
	"GetRepairHistoryQuery must be created via NewGetRepairHistoryQuery constructor",
)

// GetRepairHistoryQuery reads the finished repairs of one bicycle.
type GetRepairHistoryQuery struct {
	bicycleID kernel.BicycleID
	guard     guard.ConstructorGuard
}

// NewGetRepairHistoryQuery validates and builds the query.
func NewGetRepairHistoryQuery(bicycleID kernel.BicycleID) (GetRepairHistoryQuery, error) {
	if err := bicycleID.Validate(); err != nil {
		return GetRepairHistoryQuery{}, err
	}
	return GetRepairHistoryQuery{bicycleID: bicycleID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRepairHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetRepairHistoryQueryIsNotConstructed)
}

// BicycleID returns the bicycle to read.
func (q GetRepairHistoryQuery) BicycleID() kernel.BicycleID {
	return q.bicycleID
}
