package queries

import "context"

// ListBicyclesQueryHandler lists bicycles from the registry ordered by id.
type ListBicyclesQueryHandler struct {
	registry RegistryReader
}

// NewListBicyclesQueryHandler creates the handler.
func NewListBicyclesQueryHandler(registry RegistryReader) ListBicyclesQueryHandler {
	return ListBicyclesQueryHandler{registry: registry}
}

// Handle returns the matching bicycles. The result is never nil.
func (h ListBicyclesQueryHandler) Handle(ctx context.Context, query ListBicyclesQuery) ([]BicycleView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	snapshots, err := h.registry.List(ctx)
	if err != nil {
		return nil, err
	}

	filter, filtered := query.Status()
	views := make([]BicycleView, 0, len(snapshots))
	for _, s := range snapshots {
		if filtered && s.Status != filter {
			continue
		}
		views = append(views, newBicycleView(s))
	}

	return views, nil
}
