package queries

import "context"

// GetBicycleQueryHandler reads one bicycle from the registry.
type GetBicycleQueryHandler struct {
	registry RegistryReader
}

// NewGetBicycleQueryHandler creates the handler.
func NewGetBicycleQueryHandler(registry RegistryReader) GetBicycleQueryHandler {
	return GetBicycleQueryHandler{registry: registry}
}

// Handle returns the bicycle view or ports.ErrUnknownBicycle.
func (h GetBicycleQueryHandler) Handle(ctx context.Context, query GetBicycleQuery) (BicycleView, error) {
	if err := query.Validate(); err != nil {
		return BicycleView{}, err
	}

	snapshot, err := h.registry.Get(ctx, query.BicycleID())
	if err != nil {
		return BicycleView{}, err
	}

	return newBicycleView(snapshot), nil
}
