package breakdown

import (
	"fmt"
	"time"

	"bikeshare/internal/pkg/errs"
)

// Repair is the outcome of one finished repair workflow, kept as maintenance history.
type Repair struct {
	Report      Report
	StartedAt   time.Time
	CompletedAt time.Time
	// Duration is the time spent in the repair stage only, excluding transport.
	Duration time.Duration
}

// NewRepair records that the bicycle in report was repaired between startedAt and
// completedAt, spending duration in the workshop.
func NewRepair(report Report, startedAt, completedAt time.Time, duration time.Duration) (Repair, error) {
	if err := report.Validate(); err != nil {
		return Repair{}, err
	}
	if completedAt.Before(startedAt) {
		return Repair{}, errs.NewValueIsInvalidErrorWithCause("repair completion",
			fmt.Errorf("%s is before %s", completedAt.Format(time.RFC3339), startedAt.Format(time.RFC3339)))
	}
	return Repair{Report: report, StartedAt: startedAt, CompletedAt: completedAt, Duration: max(duration, 0)}, nil
}

// Turnaround is the time from the report to the bicycle being available again.
func (r Repair) Turnaround() time.Duration {
	return r.CompletedAt.Sub(r.Report.ReportedAt())
}
