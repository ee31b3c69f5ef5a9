package ports

import (
	"context"
	"time"

	"bikeshare/internal/core/domain/model/kernel"
)

// StationDirectory knows how long it takes to haul a bicycle between a station
// and the repair center. The trip is symmetric.
type StationDirectory interface {
	MoveTime(ctx context.Context, station kernel.Station) (time.Duration, error)

	// Known reports whether bicycles may be parked at station.
	Known(station kernel.Station) bool
}
