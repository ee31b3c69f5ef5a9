package guard_test

import (
	"errors"
	"testing"

	"bikeshare/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("Bicycle must be created via NewBicycle constructor")

	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_guard_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInStruct(t *testing.T) {
	type stationSlot struct {
		name  string
		guard guard.ConstructorGuard
	}
	errSlotNotConstructed := errors.New("slot must be created via newSlot")

	newSlot := func(name string) stationSlot {
		return stationSlot{name: name, guard: guard.NewConstructorGuard()}
	}

	t.Run("built_through_constructor", func(t *testing.T) {
		slot := newSlot("죽전동")

		require.NoError(t, slot.guard.Validate(errSlotNotConstructed))
		assert.Equal(t, "죽전동", slot.name)
	})

	t.Run("zero_value_struct", func(t *testing.T) {
		var slot stationSlot

		require.ErrorIs(t, slot.guard.Validate(errSlotNotConstructed), errSlotNotConstructed)
	})
}
