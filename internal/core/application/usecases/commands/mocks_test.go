package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"bikeshare/internal/adapters/out/memory/bicyclerepo"
	"bikeshare/internal/core/domain/events"
	"bikeshare/internal/core/domain/model/bicycle"
	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/core/domain/model/rental"
	"bikeshare/internal/pkg/clock"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSnapshotWriter struct{ mock.Mock }

func (m *MockSnapshotWriter) Save(ctx context.Context, snapshot bicycle.Snapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockSnapshotWriter) Delete(ctx context.Context, id kernel.BicycleID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSnapshotWriter) StartRental(ctx context.Context, snapshot bicycle.Snapshot, record rental.Record) error {
	args := m.Called(ctx, snapshot, record)
	return args.Error(0)
}

func (m *MockSnapshotWriter) EndRental(ctx context.Context, snapshot bicycle.Snapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

type MockBreakdownPublisher struct{ mock.Mock }

func (m *MockBreakdownPublisher) PublishBreakdownReported(ctx context.Context, e events.BreakdownReported) int {
	args := m.Called(ctx, e)
	return args.Int(0)
}

type MockRegistry struct{ mock.Mock }

func (m *MockRegistry) Add(ctx context.Context, b *bicycle.Bicycle) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockRegistry) Update(
	ctx context.Context,
	id kernel.BicycleID,
	fn func(*bicycle.Bicycle) error,
) (bicycle.Snapshot, error) {
	args := m.Called(ctx, id, fn)
	return args.Get(0).(bicycle.Snapshot), args.Error(1)
}

func (m *MockRegistry) Remove(
	ctx context.Context,
	id kernel.BicycleID,
	fn func(*bicycle.Bicycle) error,
) (bicycle.Snapshot, error) {
	args := m.Called(ctx, id, fn)
	return args.Get(0).(bicycle.Snapshot), args.Error(1)
}

// stationSet is a station directory that only answers Known.
type stationSet map[string]bool

func (s stationSet) Known(station kernel.Station) bool {
	return s[station.String()]
}

// allStations lists the stations the tests register and move bicycles to.
var allStations = stationSet{"성복동": true, "상현동": true, "죽전동": true, "보정동": true}

var epoch = time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// seededRegistry returns a registry holding one Available bicycle per id.
func seededRegistry(t *testing.T, kind bicycle.Kind, ids ...string) *bicyclerepo.Registry {
	t.Helper()
	registry := bicyclerepo.NewRegistry()
	for _, id := range ids {
		b, err := bicycle.NewBicycle(kernel.MustBicycleID(id), kind, kernel.MustStation("성복동"), epoch)
		require.NoError(t, err)
		require.NoError(t, registry.Add(t.Context(), b))
	}
	return registry
}

func newFakeClock() *clock.Fake {
	return clock.NewFake(epoch)
}
