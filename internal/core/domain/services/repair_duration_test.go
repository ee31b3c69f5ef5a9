package services_test

import (
	"testing"
	"time"

	"bikeshare/internal/core/domain/model/breakdown"
	"bikeshare/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestBaseRepairDuration(t *testing.T) {
	tests := []struct {
		name     string
		electric bool
		causes   []breakdown.Cause
		want     time.Duration
	}{
		{"no causes", false, nil, 0},
		{"regular flat tire", false, []breakdown.Cause{breakdown.FlatTire}, 5 * time.Second},
		{"electric flat tire doubles", true, []breakdown.Cause{breakdown.FlatTire}, 10 * time.Second},
		{"electric battery does not double", true, []breakdown.Cause{breakdown.Battery}, 5 * time.Second},
		{"regular battery is accepted", false, []breakdown.Cause{breakdown.Battery}, 5 * time.Second},
		{
			"regular sums every cause", false,
			[]breakdown.Cause{breakdown.BrokenChain, breakdown.BrakeIssue, breakdown.Other},
			18 * time.Second,
		},
		{
			"electric mixes doubled and single causes", true,
			[]breakdown.Cause{breakdown.BrokenChain, breakdown.Battery},
			21 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.BaseRepairDuration(tt.electric, tt.causes))
			assert.Equal(t, tt.want, services.FixedRepairDuration{}.RepairDuration(tt.electric, tt.causes))
		})
	}
}

func TestRandomizedRepairDuration(t *testing.T) {
	causes := []breakdown.Cause{breakdown.FlatTire}

	tests := []struct {
		roll float64
		want time.Duration
	}{
		{0.0, 8 * time.Second},
		{0.09, 8 * time.Second},
		{0.1, 12 * time.Second},
		{0.29, 12 * time.Second},
		{0.3, 10 * time.Second},
		{0.99, 10 * time.Second},
	}

	for _, tt := range tests {
		strategy := services.NewRandomizedRepairDuration(services.WithRoll(func() float64 { return tt.roll }))

		assert.Equal(t, tt.want, strategy.RepairDuration(true, causes), "roll %v", tt.roll)
	}

	t.Run("one roll per call", func(t *testing.T) {
		calls := 0
		strategy := services.NewRandomizedRepairDuration(services.WithRoll(func() float64 {
			calls++
			return 0.5
		}))

		strategy.RepairDuration(false, []breakdown.Cause{breakdown.FlatTire, breakdown.Other, breakdown.Battery})

		assert.Equal(t, 1, calls)
	})

	t.Run("default source stays within the factor bounds", func(t *testing.T) {
		strategy := services.NewRandomizedRepairDuration()
		base := services.BaseRepairDuration(false, causes)

		for range 100 {
			d := strategy.RepairDuration(false, causes)
			assert.GreaterOrEqual(t, d, time.Duration(float64(base)*services.LuckyFactor))
			assert.LessOrEqual(t, d, time.Duration(float64(base)*services.UnluckyFactor))
		}
	})
}
