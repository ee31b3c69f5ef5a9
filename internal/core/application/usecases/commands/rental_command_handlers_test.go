package commands_test

import (
	"testing"
	"time"

	"bikeshare/internal/adapters/out/memory/rentalledger"
	"bikeshare/internal/core/application/usecases/commands"
	"bikeshare/internal/core/domain/model/bicycle"
	"bikeshare/internal/core/domain/model/breakdown"
	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/core/domain/model/rental"
	"bikeshare/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRentalCommandHandlers(t *testing.T) {
	id := kernel.MustBicycleID("B-1")
	startCmd, err := commands.NewStartRentalCommand(id)
	require.NoError(t, err)
	endCmd, err := commands.NewEndRentalCommand(id, nil)
	require.NoError(t, err)

	setup := func(t *testing.T) (commands.StartRentalCommandHandler, commands.EndRentalCommandHandler,
		*rentalledger.Ledger, ports.BicycleRegistry, *MockSnapshotWriter, func(time.Duration)) {
		t.Helper()
		registry := seededRegistry(t, bicycle.Regular, "B-1")
		ledger := rentalledger.NewLedger()
		store := new(MockSnapshotWriter)
		store.On("StartRental", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		store.On("EndRental", mock.Anything, mock.Anything).Return(nil)
		clk := newFakeClock()

		start := commands.NewStartRentalCommandHandler(registry, ledger, store, clk, discardLogger())
		end := commands.NewEndRentalCommandHandler(registry, ledger, allStations, store, clk, time.Minute, discardLogger())
		return start, end, ledger, registry, store, clk.Advance
	}

	t.Run("a full rental bills at least one unit", func(t *testing.T) {
		ctx := t.Context()
		start, end, ledger, registry, store, advance := setup(t)

		record, err := start.Handle(ctx, startCmd)
		require.NoError(t, err)
		assert.Equal(t, epoch, record.StartedAt())
		snap, err := registry.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, bicycle.Rented, snap.Status)

		advance(10 * time.Second)
		usage, err := end.Handle(ctx, endCmd)

		require.NoError(t, err)
		assert.Equal(t, int64(1), usage.BilledUnits)
		assert.Equal(t, 10*time.Second, usage.Elapsed)
		assert.Equal(t, 0, ledger.Active())
		snap, err = registry.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, bicycle.Available, snap.Status)

		store.AssertCalled(t, "StartRental", ctx, mock.MatchedBy(func(s bicycle.Snapshot) bool {
			return s.Status == bicycle.Rented
		}), mock.MatchedBy(func(r rental.Record) bool {
			return r.StartedAt().Equal(epoch)
		}))
		store.AssertCalled(t, "EndRental", ctx, mock.MatchedBy(func(s bicycle.Snapshot) bool {
			return s.Status == bicycle.Available
		}))
	})

	t.Run("long rentals bill whole units", func(t *testing.T) {
		ctx := t.Context()
		start, end, _, _, _, advance := setup(t)

		_, err := start.Handle(ctx, startCmd)
		require.NoError(t, err)
		advance(7*time.Minute + 59*time.Second)

		usage, err := end.Handle(ctx, endCmd)
		require.NoError(t, err)
		assert.Equal(t, int64(7), usage.BilledUnits)
	})

	t.Run("ending without a record fails with missing rental record", func(t *testing.T) {
		_, end, _, registry, _, _ := setup(t)

		_, err := end.Handle(t.Context(), endCmd)

		require.ErrorIs(t, err, ports.ErrMissingRentalRecord)
		snap, err := registry.Get(t.Context(), id)
		require.NoError(t, err)
		assert.Equal(t, bicycle.Available, snap.Status)
	})

	t.Run("a record on a non rented bicycle is refused and kept", func(t *testing.T) {
		ctx := t.Context()
		_, end, ledger, _, _, _ := setup(t)
		record, err := rental.NewRecord(id, epoch)
		require.NoError(t, err)
		require.NoError(t, ledger.Start(ctx, record))

		_, err = end.Handle(ctx, endCmd)

		require.ErrorIs(t, err, bicycle.ErrInvalidTransition)
		assert.Equal(t, 1, ledger.Active())
	})

	t.Run("a second start is refused", func(t *testing.T) {
		ctx := t.Context()
		start, _, ledger, _, _, _ := setup(t)

		_, err := start.Handle(ctx, startCmd)
		require.NoError(t, err)
		_, err = start.Handle(ctx, startCmd)

		require.ErrorIs(t, err, bicycle.ErrInvalidTransition)
		assert.Equal(t, 1, ledger.Active())
	})

	t.Run("a stale record blocks the start", func(t *testing.T) {
		ctx := t.Context()
		start, _, ledger, registry, _, _ := setup(t)
		record, err := rental.NewRecord(id, epoch.Add(-time.Hour))
		require.NoError(t, err)
		require.NoError(t, ledger.Start(ctx, record))

		_, err = start.Handle(ctx, startCmd)

		require.ErrorIs(t, err, ports.ErrRentalAlreadyActive)
		snap, err := registry.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, bicycle.Available, snap.Status)
	})

	t.Run("a broken bicycle cannot be rented", func(t *testing.T) {
		ctx := t.Context()
		start, _, ledger, registry, _, _ := setup(t)
		_, err := registry.Update(ctx, id, func(b *bicycle.Bicycle) error {
			_, err := b.ReportBroken([]breakdown.Cause{breakdown.BrakeIssue}, epoch)
			return err
		})
		require.NoError(t, err)

		_, err = start.Handle(ctx, startCmd)

		require.ErrorIs(t, err, bicycle.ErrInvalidTransition)
		assert.Equal(t, 0, ledger.Active())
	})

	t.Run("returning at another station moves the bicycle", func(t *testing.T) {
		ctx := t.Context()
		start, end, _, registry, _, _ := setup(t)
		station := kernel.MustStation("보정동")
		cmd, err := commands.NewEndRentalCommand(id, &station)
		require.NoError(t, err)

		_, err = start.Handle(ctx, startCmd)
		require.NoError(t, err)
		usage, err := end.Handle(ctx, cmd)
		require.NoError(t, err)
		assert.Equal(t, int64(1), usage.BilledUnits)

		snap, err := registry.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "보정동", snap.Station.String())
	})

	t.Run("returning at an unknown station is refused and the rental stays open", func(t *testing.T) {
		ctx := t.Context()
		start, end, ledger, registry, _, _ := setup(t)
		nowhere := kernel.MustStation("Nowhere")
		cmd, err := commands.NewEndRentalCommand(id, &nowhere)
		require.NoError(t, err)

		_, err = start.Handle(ctx, startCmd)
		require.NoError(t, err)
		_, err = end.Handle(ctx, cmd)

		require.ErrorIs(t, err, ports.ErrUnknownStation)
		assert.Equal(t, 1, ledger.Active())
		snap, err := registry.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, bicycle.Rented, snap.Status)
		assert.Equal(t, "성복동", snap.Station.String())
	})
}

func TestMoveBicycleCommandHandler_Handle(t *testing.T) {
	id := kernel.MustBicycleID("B-1")
	cmd, err := commands.NewMoveBicycleCommand(id, kernel.MustStation("죽전동"))
	require.NoError(t, err)

	t.Run("should move an Available bicycle", func(t *testing.T) {
		ctx := t.Context()
		store := new(MockSnapshotWriter)
		store.On("Save", ctx, mock.MatchedBy(func(s bicycle.Snapshot) bool {
			return s.Station.String() == "죽전동"
		})).Return(nil).Once()

		h := commands.NewMoveBicycleCommandHandler(seededRegistry(t, bicycle.Regular, "B-1"), allStations, store,
			discardLogger())
		snap, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "죽전동", snap.Station.String())
		store.AssertExpectations(t)
	})

	t.Run("should refuse a rented bicycle", func(t *testing.T) {
		ctx := t.Context()
		registry := seededRegistry(t, bicycle.Regular, "B-1")
		_, err := registry.Update(ctx, id, (*bicycle.Bicycle).SetRented)
		require.NoError(t, err)

		h := commands.NewMoveBicycleCommandHandler(registry, allStations, new(MockSnapshotWriter), discardLogger())
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, bicycle.ErrInvalidTransition)
	})

	t.Run("should refuse a station outside the directory", func(t *testing.T) {
		ctx := t.Context()
		store := new(MockSnapshotWriter)
		registry := seededRegistry(t, bicycle.Regular, "B-1")
		nowhere, err := commands.NewMoveBicycleCommand(id, kernel.MustStation("Nowhere"))
		require.NoError(t, err)

		h := commands.NewMoveBicycleCommandHandler(registry, allStations, store, discardLogger())
		_, err = h.Handle(ctx, nowhere)

		require.ErrorIs(t, err, ports.ErrUnknownStation)
		snap, err := registry.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "성복동", snap.Station.String())
		store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
