package breakdown

import (
	"errors"
	"slices"
	"time"

	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/pkg/guard"
)

// ErrReportIsNotConstructed is returned for a zero-value Report.
var ErrReportIsNotConstructed = errors.New("Report must be created via NewReport constructor")

// Report is an immutable breakdown report. Causes are copied in and out so no
// caller can mutate a report after it was published.
//
// An empty cause list is accepted: the collaborators that build reports are
// expected to require at least one cause, and the repair workflow treats an
// empty list as "no extra repair time".
type Report struct {
	id            kernel.ReportID
	bicycleID     kernel.BicycleID
	causes        []Cause
	originStation kernel.Station
	isElectric    bool
	reportedAt    time.Time
	guard         guard.ConstructorGuard
}

// NewReport builds a report. Every cause must be valid.
func NewReport(
	bicycleID kernel.BicycleID,
	causes []Cause,
	originStation kernel.Station,
	isElectric bool,
	reportedAt time.Time,
) (Report, error) {
	validations := []error{bicycleID.Validate(), originStation.Validate()}
	for _, c := range causes {
		validations = append(validations, c.Validate())
	}
	if err := errors.Join(validations...); err != nil {
		return Report{}, err
	}

	return Report{
		id:            kernel.NewReportID(),
		bicycleID:     bicycleID,
		causes:        slices.Clone(causes),
		originStation: originStation,
		isElectric:    isElectric,
		reportedAt:    reportedAt,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// RestoreReport rebuilds a persisted report keeping its original id.
func RestoreReport(
	id kernel.ReportID,
	bicycleID kernel.BicycleID,
	causes []Cause,
	originStation kernel.Station,
	isElectric bool,
	reportedAt time.Time,
) (Report, error) {
	if err := id.Validate(); err != nil {
		return Report{}, err
	}
	r, err := NewReport(bicycleID, causes, originStation, isElectric, reportedAt)
	if err != nil {
		return Report{}, err
	}
	r.id = id
	return r, nil
}

// Validate ensures the report was built by NewReport.
func (r Report) Validate() error {
	return r.guard.Validate(ErrReportIsNotConstructed)
}

// ID returns the report id.
func (r Report) ID() kernel.ReportID {
	return r.id
}

// BicycleID returns the reported bicycle.
func (r Report) BicycleID() kernel.BicycleID {
	return r.bicycleID
}

// Causes returns a copy of the reported causes.
func (r Report) Causes() []Cause {
	return slices.Clone(r.causes)
}

// OriginStation returns the station the bicycle was reported at.
func (r Report) OriginStation() kernel.Station {
	return r.originStation
}

// IsElectric reports whether the bicycle is electric.
func (r Report) IsElectric() bool {
	return r.isElectric
}

// ReportedAt returns when the report was filed.
func (r Report) ReportedAt() time.Time {
	return r.reportedAt
}
