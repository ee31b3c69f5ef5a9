// Package commands contains the operations that change bicycle state.
// Every command follows the same pattern: validated construction, a
// check-then-act callback run under the bicycle's registry lock, a best-effort
// call to the persistence hook before that lock is released, and events
// published after it.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bikeshare/internal/core/domain/events"
	"bikeshare/internal/core/domain/model/bicycle"
	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/core/domain/model/rental"
	"bikeshare/internal/core/ports"
)

type (
	// Registry is the part of ports.BicycleRegistry the command handlers use.
	Registry interface {
		Add(ctx context.Context, b *bicycle.Bicycle) error
		Update(ctx context.Context, id kernel.BicycleID, fn func(*bicycle.Bicycle) error) (bicycle.Snapshot, error)
		Remove(ctx context.Context, id kernel.BicycleID, fn func(*bicycle.Bicycle) error) (bicycle.Snapshot, error)
	}

	// SnapshotWriter is the write side of ports.SnapshotStore.
	SnapshotWriter interface {
		Save(ctx context.Context, snapshot bicycle.Snapshot) error
		Delete(ctx context.Context, id kernel.BicycleID) error
		StartRental(ctx context.Context, snapshot bicycle.Snapshot, record rental.Record) error
		EndRental(ctx context.Context, snapshot bicycle.Snapshot) error
	}

	// Stations is the part of ports.StationDirectory that tells valid stations apart.
	Stations interface {
		Known(station kernel.Station) bool
	}

	// BreakdownPublisher announces accepted breakdown reports.
	BreakdownPublisher interface {
		PublishBreakdownReported(ctx context.Context, e events.BreakdownReported) int
	}

	// Clock supplies the current time.
	Clock interface {
		Now() time.Time
	}
)

var (
	_ Registry           = (ports.BicycleRegistry)(nil)
	_ SnapshotWriter     = (ports.SnapshotStore)(nil)
	_ Stations           = (ports.StationDirectory)(nil)
	_ BreakdownPublisher = (*events.Bus)(nil)
)

// persistence wraps the snapshot hook. It is called from inside registry
// callbacks, so writes for one bicycle reach the store in the order its
// transitions happened. Failures are logged and swallowed: the registry stays
// authoritative.
type persistence struct {
	store  SnapshotWriter
	logger *slog.Logger
}

func (p persistence) save(ctx context.Context, snapshot bicycle.Snapshot) {
	if err := p.store.Save(ctx, snapshot); err != nil {
		p.logger.ErrorContext(ctx, "Failed to persist bicycle snapshot",
			"bicycle_id", snapshot.ID.String(), "status", snapshot.Status.String(), "error", err)
	}
}

// saved runs fn and, when it succeeds, writes the resulting state before the
// bicycle's lock is released.
func (p persistence) saved(ctx context.Context, fn func(*bicycle.Bicycle) error) func(*bicycle.Bicycle) error {
	return func(b *bicycle.Bicycle) error {
		if err := fn(b); err != nil {
			return err
		}
		p.save(ctx, b.Snapshot())
		return nil
	}
}

func (p persistence) startRental(ctx context.Context, snapshot bicycle.Snapshot, record rental.Record) {
	if err := p.store.StartRental(ctx, snapshot, record); err != nil {
		p.logger.ErrorContext(ctx, "Failed to persist rental start",
			"bicycle_id", snapshot.ID.String(), "error", err)
	}
}

func (p persistence) endRental(ctx context.Context, snapshot bicycle.Snapshot) {
	if err := p.store.EndRental(ctx, snapshot); err != nil {
		p.logger.ErrorContext(ctx, "Failed to persist rental end",
			"bicycle_id", snapshot.ID.String(), "error", err)
	}
}

func (p persistence) delete(ctx context.Context, id kernel.BicycleID) {
	if err := p.store.Delete(ctx, id); err != nil {
		p.logger.ErrorContext(ctx, "Failed to delete bicycle snapshot", "bicycle_id", id.String(), "error", err)
	}
}

func newPersistence(store SnapshotWriter, logger *slog.Logger, handler string) persistence {
	if logger == nil {
		logger = slog.Default()
	}
	return persistence{store: store, logger: logger.With("component", handler)}
}

// checkStation refuses stations the directory does not list.
func checkStation(stations Stations, station kernel.Station) error {
	if !stations.Known(station) {
		return fmt.Errorf("%w: %s", ports.ErrUnknownStation, station.String())
	}
	return nil
}
