package kernel

import (
	"fmt"

	"bikeshare/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrReportIDIsNotConstructed is returned when validating a zero-value ReportID.
var ErrReportIDIsNotConstructed = errs.NewValueIsRequiredError("ReportID must be created via NewReportID or ReportIDFromString")

// ReportID identifies one breakdown report. The repair workflow started by the
// report logs under the same id.
type ReportID struct {
	id uuid.UUID
}

// NewReportID returns a random ReportID.
func NewReportID() ReportID {
	return ReportID{id: uuid.New()}
}

// ReportIDFromString parses s in any format accepted by uuid.Parse.
func ReportIDFromString(s string) (ReportID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ReportID{}, fmt.Errorf("invalid report id format: %w", err)
	}
	r := ReportID{id: id}
	if err = r.Validate(); err != nil {
		return ReportID{}, err
	}
	return r, nil
}

func (r ReportID) String() string {
	return r.id.String()
}

// IsEqual compares two report ids.
func (r ReportID) IsEqual(other ReportID) bool {
	return r.id == other.id
}

// Validate rejects the nil UUID.
func (r ReportID) Validate() error {
	if r.id == uuid.Nil {
		return ErrReportIDIsNotConstructed
	}
	return nil
}

// ReportIDFromUUID wraps a UUID read from storage.
func ReportIDFromUUID(id uuid.UUID) (ReportID, error) {
	r := ReportID{id: id}
	if err := r.Validate(); err != nil {
		return ReportID{}, err
	}
	return r, nil
}

// UUID returns the underlying UUID for persistence.
func (r ReportID) UUID() uuid.UUID {
	return r.id
}
