package commands_test

import (
	"errors"
	"testing"

	"bikeshare/internal/adapters/out/memory/bicyclerepo"
	"bikeshare/internal/core/application/usecases/commands"
	"bikeshare/internal/core/domain/model/bicycle"
	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/core/ports"
	"bikeshare/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterBicycleCommandHandler_Handle(t *testing.T) {
	cmd, err := commands.NewRegisterBicycleCommand(kernel.MustBicycleID("B-1"), bicycle.Regular,
		kernel.MustStation("상현동"))
	require.NoError(t, err)

	t.Run("should register Available and persist", func(t *testing.T) {
		ctx := t.Context()
		registry := bicyclerepo.NewRegistry()
		store := new(MockSnapshotWriter)
		store.On("Save", ctx, mock.MatchedBy(func(s bicycle.Snapshot) bool {
			return s.ID.String() == "B-1" && s.Status == bicycle.Available
		})).Return(nil).Once()

		h := commands.NewRegisterBicycleCommandHandler(registry, allStations, store, newFakeClock(), discardLogger())
		snapshot, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, epoch, snapshot.RegisteredAt)
		_, err = registry.Get(ctx, kernel.MustBicycleID("B-1"))
		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("should refuse a duplicate id without persisting", func(t *testing.T) {
		ctx := t.Context()
		registry := seededRegistry(t, bicycle.Regular, "B-1")
		store := new(MockSnapshotWriter)

		h := commands.NewRegisterBicycleCommandHandler(registry, allStations, store, newFakeClock(), discardLogger())
		_, err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, ports.ErrBicycleAlreadyRegistered)
		store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("persistence failure does not fail the command", func(t *testing.T) {
		ctx := t.Context()
		store := new(MockSnapshotWriter)
		store.On("Save", ctx, mock.Anything).Return(errors.New("db down")).Once()

		h := commands.NewRegisterBicycleCommandHandler(bicyclerepo.NewRegistry(), allStations, store, newFakeClock(), discardLogger())
		_, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("should refuse a station outside the directory", func(t *testing.T) {
		ctx := t.Context()
		registry := bicyclerepo.NewRegistry()
		store := new(MockSnapshotWriter)
		nowhere, err := commands.NewRegisterBicycleCommand(kernel.MustBicycleID("B-1"), bicycle.Regular,
			kernel.MustStation("Nowhere"))
		require.NoError(t, err)

		h := commands.NewRegisterBicycleCommandHandler(registry, allStations, store, newFakeClock(), discardLogger())
		_, err = h.Handle(ctx, nowhere)

		require.ErrorIs(t, err, ports.ErrUnknownStation)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		_, err = registry.Get(ctx, kernel.MustBicycleID("B-1"))
		require.ErrorIs(t, err, ports.ErrUnknownBicycle)
		store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("should reject a command not built by its constructor", func(t *testing.T) {
		registry := new(MockRegistry)
		h := commands.NewRegisterBicycleCommandHandler(registry, allStations, new(MockSnapshotWriter), newFakeClock(), discardLogger())

		_, err := h.Handle(t.Context(), commands.RegisterBicycleCommand{})

		require.ErrorIs(t, err, commands.ErrRegisterBicycleCommandIsNotConstructed)
		registry.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})
}
