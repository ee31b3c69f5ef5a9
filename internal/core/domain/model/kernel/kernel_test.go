package kernel_test

import (
	"testing"

	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBicycleID(t *testing.T) {
	t.Run("should trim and accept non-blank id", func(t *testing.T) {
		id, err := kernel.NewBicycleID("  E-102 ")

		require.NoError(t, err)
		require.NoError(t, id.Validate())
		assert.Equal(t, "E-102", id.String())
	})

	t.Run("should reject blank id", func(t *testing.T) {
		_, err := kernel.NewBicycleID("   ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		var id kernel.BicycleID

		require.ErrorIs(t, id.Validate(), kernel.ErrBicycleIDIsRequired)
	})

	t.Run("equality by value", func(t *testing.T) {
		assert.True(t, kernel.MustBicycleID("R-1").IsEqual(kernel.MustBicycleID("R-1")))
		assert.False(t, kernel.MustBicycleID("R-1").IsEqual(kernel.MustBicycleID("R-2")))
	})

	t.Run("must panics on invalid input", func(t *testing.T) {
		assert.Panics(t, func() { kernel.MustBicycleID("") })
	})
}

func TestNewStation(t *testing.T) {
	t.Run("should accept station name", func(t *testing.T) {
		s, err := kernel.NewStation("성복동")

		require.NoError(t, err)
		require.NoError(t, s.Validate())
		assert.Equal(t, "성복동", s.String())
	})

	t.Run("should reject empty name", func(t *testing.T) {
		_, err := kernel.NewStation("")

		require.ErrorIs(t, err, kernel.ErrStationIsRequired)
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		var s kernel.Station

		require.Error(t, s.Validate())
	})
}

func TestReportID(t *testing.T) {
	t.Run("new ids are valid and unique", func(t *testing.T) {
		a := kernel.NewReportID()
		b := kernel.NewReportID()

		require.NoError(t, a.Validate())
		assert.False(t, a.IsEqual(b))
	})

	t.Run("round trips through string", func(t *testing.T) {
		a := kernel.NewReportID()

		b, err := kernel.ReportIDFromString(a.String())

		require.NoError(t, err)
		assert.True(t, a.IsEqual(b))
	})

	t.Run("rejects malformed and nil ids", func(t *testing.T) {
		_, err := kernel.ReportIDFromString("not-a-uuid")
		require.Error(t, err)

		_, err = kernel.ReportIDFromString("00000000-0000-0000-0000-000000000000")
		require.ErrorIs(t, err, kernel.ErrReportIDIsNotConstructed)
	})

	t.Run("round trips through uuid", func(t *testing.T) {
		a := kernel.NewReportID()

		b, err := kernel.ReportIDFromUUID(a.UUID())

		require.NoError(t, err)
		assert.True(t, a.IsEqual(b))

		_, err = kernel.ReportIDFromUUID(kernel.ReportID{}.UUID())
		require.ErrorIs(t, err, kernel.ErrReportIDIsNotConstructed)
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		var id kernel.ReportID

		require.Error(t, id.Validate())
	})
}
