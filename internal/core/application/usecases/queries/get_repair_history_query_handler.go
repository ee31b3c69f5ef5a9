package queries

import (
	"context"

	"bikeshare/internal/core/domain/model/breakdown"
)

// GetRepairHistoryQueryHandler reads the maintenance log of a registered bicycle.
type GetRepairHistoryQueryHandler struct {
	registry RegistryReader
	history  RepairHistoryReader
}

// NewGetRepairHistoryQueryHandler creates the handler.
func NewGetRepairHistoryQueryHandler(registry RegistryReader, history RepairHistoryReader) GetRepairHistoryQueryHandler {
	return GetRepairHistoryQueryHandler{registry: registry, history: history}
}

// Handle returns the repairs oldest first, or ports.ErrUnknownBicycle when the
// bicycle is not registered.
func (h GetRepairHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetRepairHistoryQuery,
) ([]breakdown.Repair, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.registry.Get(ctx, query.BicycleID()); err != nil {
		return nil, err
	}

	repairs, err := h.history.Repairs(ctx, query.BicycleID())
	if err != nil {
		return nil, err
	}
	if repairs == nil {
		repairs = []breakdown.Repair{}
	}
	return repairs, nil
}
