// Package rental tracks when a bicycle was taken out and turns a finished rental
// into billed usage.
package rental

import (
	"errors"
	"fmt"
	"time"

	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/pkg/errs"
	"bikeshare/internal/pkg/guard"
)

// ErrRecordIsNotConstructed is returned for a zero-value Record.
var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")

// Record is the start of an active rental.
type Record struct {
	bicycleID kernel.BicycleID
	startedAt time.Time
	guard     guard.ConstructorGuard
}

// NewRecord opens a rental for bicycleID at startedAt.
func NewRecord(bicycleID kernel.BicycleID, startedAt time.Time) (Record, error) {
	if err := bicycleID.Validate(); err != nil {
		return Record{}, err
	}
	if startedAt.IsZero() {
		return Record{}, errs.NewValueIsRequiredError("rental start")
	}
	return Record{bicycleID: bicycleID, startedAt: startedAt, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the record was built by NewRecord.
func (r Record) Validate() error {
	return r.guard.Validate(ErrRecordIsNotConstructed)
}

// BicycleID returns the rented bicycle.
func (r Record) BicycleID() kernel.BicycleID {
	return r.bicycleID
}

// StartedAt returns when the rental began.
func (r Record) StartedAt() time.Time {
	return r.startedAt
}

// Usage is a finished rental. BilledUnits is Elapsed expressed in billing units,
// rounded down, but never less than one.
type Usage struct {
	BicycleID   kernel.BicycleID
	StartedAt   time.Time
	EndedAt     time.Time
	Elapsed     time.Duration
	BilledUnits int64
}

// NewUsage closes record at endedAt.
//
// Parameters:
//   - record: the active rental
//   - endedAt: when the bicycle came back; an instant before the start counts as zero elapsed
//   - billingUnit: the unit rentals are billed in (one minute in production)
//
// Example:
//
//	u, _ := rental.NewUsage(rec, rec.StartedAt().Add(90*time.Second), time.Minute)
//	// u.BilledUnits == 1
func NewUsage(record Record, endedAt time.Time, billingUnit time.Duration) (Usage, error) {
	if err := record.Validate(); err != nil {
		return Usage{}, err
	}
	if billingUnit <= 0 {
		return Usage{}, errs.NewValueIsInvalidErrorWithCause("billing unit",
			fmt.Errorf("%s is not greater than 0", billingUnit))
	}

	elapsed := max(endedAt.Sub(record.startedAt), 0)
	units := max(int64(elapsed/billingUnit), 1)

	return Usage{
		BicycleID:   record.bicycleID,
		StartedAt:   record.startedAt,
		EndedAt:     endedAt,
		Elapsed:     elapsed,
		BilledUnits: units,
	}, nil
}
