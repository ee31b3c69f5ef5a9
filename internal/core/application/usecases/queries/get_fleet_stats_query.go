package queries

import (
	"errors"

	"bikeshare/internal/core/domain/model/bicycle"
	"bikeshare/internal/pkg/guard"
)

var ErrGetFleetStatsQueryIsNotConstructed = errors.New(
	"GetFleetStatsQuery must be created via NewGetFleetStatsQuery constructor",
)

// GetFleetStatsQuery counts the fleet by status.
type GetFleetStatsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetFleetStatsQuery builds the query.
func NewGetFleetStatsQuery() GetFleetStatsQuery {
	return GetFleetStatsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetFleetStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetFleetStatsQueryIsNotConstructed)
}

// FleetStats is the fleet broken down by status. ByStatus has an entry for every
// valid status, zero included.
type FleetStats struct {
	Total    int
	Electric int
	ByStatus map[bicycle.Status]int
}

// InRepairPipeline counts bicycles that are Broken or Repairing.
func (s FleetStats) InRepairPipeline() int {
	return s.ByStatus[bicycle.Broken] + s.ByStatus[bicycle.Repairing]
}
