package queries_test

import (
	"context"
	"time"

	"bikeshare/internal/core/domain/model/bicycle"
	"bikeshare/internal/core/domain/model/breakdown"
	"bikeshare/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/mock"
)

type MockRegistryReader struct{ mock.Mock }

func (m *MockRegistryReader) Get(ctx context.Context, id kernel.BicycleID) (bicycle.Snapshot, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(bicycle.Snapshot), args.Error(1)
}

func (m *MockRegistryReader) List(ctx context.Context) ([]bicycle.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bicycle.Snapshot), args.Error(1)
}

type MockRepairHistoryReader struct{ mock.Mock }

func (m *MockRepairHistoryReader) Repairs(ctx context.Context, id kernel.BicycleID) ([]breakdown.Repair, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]breakdown.Repair), args.Error(1)
}

var epoch = time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

func snapshot(id string, kind bicycle.Kind, status bicycle.Status) bicycle.Snapshot {
	return bicycle.Snapshot{
		ID:                kernel.MustBicycleID(id),
		Kind:              kind,
		Station:           kernel.MustStation("상현동"),
		Status:            status,
		RegisteredAt:      epoch,
		LastMaintenanceAt: epoch,
	}
}
