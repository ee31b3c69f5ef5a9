package queries

import (
	"context"

	"bikeshare/internal/core/domain/model/bicycle"
)

// GetFleetStatsQueryHandler aggregates the registry.
type GetFleetStatsQueryHandler struct {
	registry RegistryReader
}

// NewGetFleetStatsQueryHandler creates the handler.
func NewGetFleetStatsQueryHandler(registry RegistryReader) GetFleetStatsQueryHandler {
	return GetFleetStatsQueryHandler{registry: registry}
}

// Handle counts the fleet.
func (h GetFleetStatsQueryHandler) Handle(ctx context.Context, query GetFleetStatsQuery) (FleetStats, error) {
	if err := query.Validate(); err != nil {
		return FleetStats{}, err
	}

	snapshots, err := h.registry.List(ctx)
	if err != nil {
		return FleetStats{}, err
	}

	stats := FleetStats{ByStatus: make(map[bicycle.Status]int, len(bicycle.AllStatuses()))}
	for _, s := range bicycle.AllStatuses() {
		stats.ByStatus[s] = 0
	}
	for _, s := range snapshots {
		stats.Total++
		stats.ByStatus[s.Status]++
		if s.Kind == bicycle.Electric {
			stats.Electric++
		}
	}

	return stats, nil
}
