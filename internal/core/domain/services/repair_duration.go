package services

import (
	"math/rand/v2"
	"time"

	"bikeshare/internal/core/domain/model/breakdown"
)

// Perturbation factors applied by RandomizedRepairDuration.
const (
	// LuckyRollBelow is the roll threshold for a faster repair.
	LuckyRollBelow = 0.1
	// UnluckyRollBelow is the roll threshold for a slower repair (checked after the lucky one).
	UnluckyRollBelow = 0.3

	LuckyFactor   = 0.8
	UnluckyFactor = 1.2
)

// RepairDurationStrategy computes how long a repair takes for a set of causes.
// Implementations must be safe for concurrent use.
type RepairDurationStrategy interface {
	RepairDuration(isElectric bool, causes []breakdown.Cause) time.Duration
}

// BaseRepairDuration is the sum of the causes' base times. On an electric bicycle
// every cause except Battery counts twice; Battery counts once regardless of kind.
//
// Example:
//
//	BaseRepairDuration(true, []breakdown.Cause{breakdown.FlatTire})  // 10s
//	BaseRepairDuration(true, []breakdown.Cause{breakdown.Battery})   // 5s
func BaseRepairDuration(isElectric bool, causes []breakdown.Cause) time.Duration {
	var total time.Duration
	for _, c := range causes {
		d := c.BaseTime()
		if isElectric && !c.IsElectrical() {
			d *= 2
		}
		total += d
	}
	return total
}

// FixedRepairDuration returns BaseRepairDuration unchanged.
type FixedRepairDuration struct{}

// RepairDuration implements RepairDurationStrategy.
func (FixedRepairDuration) RepairDuration(isElectric bool, causes []breakdown.Cause) time.Duration {
	return BaseRepairDuration(isElectric, causes)
}

// RandomizedRepairDuration scales BaseRepairDuration by one roll per call:
// a roll below 0.1 makes the repair 20% faster, a roll below 0.3 makes it 20%
// slower, anything else leaves it unchanged.
type RandomizedRepairDuration struct {
	roll func() float64
}

// RandomizedOption configures a RandomizedRepairDuration.
type RandomizedOption func(*RandomizedRepairDuration)

// WithRoll replaces the random source. roll must return values in [0, 1).
func WithRoll(roll func() float64) RandomizedOption {
	return func(r *RandomizedRepairDuration) {
		if roll != nil {
			r.roll = roll
		}
	}
}

// NewRandomizedRepairDuration builds the default strategy backed by math/rand/v2.
func NewRandomizedRepairDuration(opts ...RandomizedOption) RandomizedRepairDuration {
	r := RandomizedRepairDuration{roll: rand.Float64}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RepairDuration implements RepairDurationStrategy.
func (r RandomizedRepairDuration) RepairDuration(isElectric bool, causes []breakdown.Cause) time.Duration {
	base := BaseRepairDuration(isElectric, causes)
	roll := r.roll
	if roll == nil {
		roll = rand.Float64
	}
	return time.Duration(float64(base) * PerturbationFactor(roll()))
}

// PerturbationFactor maps a roll in [0, 1) to the multiplier applied to the base time.
func PerturbationFactor(roll float64) float64 {
	switch {
	case roll < LuckyRollBelow:
		return LuckyFactor
	case roll < UnluckyRollBelow:
		return UnluckyFactor
	default:
		return 1.0
	}
}
