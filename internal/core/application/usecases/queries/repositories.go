// Package queries contains read operations over the fleet.
// Queries never touch aggregates: they read detached snapshots from the
// registry and history from the snapshot store.
package queries

import (
	"context"

	"bikeshare/internal/core/domain/model/bicycle"
	"bikeshare/internal/core/domain/model/breakdown"
	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/core/ports"
)

type (
	// RegistryReader is the read side of ports.BicycleRegistry.
	RegistryReader interface {
		Get(ctx context.Context, id kernel.BicycleID) (bicycle.Snapshot, error)
		List(ctx context.Context) ([]bicycle.Snapshot, error)
	}

	// RepairHistoryReader reads the maintenance log.
	RepairHistoryReader interface {
		Repairs(ctx context.Context, id kernel.BicycleID) ([]breakdown.Repair, error)
	}
)

var (
	_ RegistryReader      = (ports.BicycleRegistry)(nil)
	_ RepairHistoryReader = (ports.SnapshotStore)(nil)
)
