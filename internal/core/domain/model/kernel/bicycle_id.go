package kernel

import (
	"strings"

	"bikeshare/internal/pkg/errs"
)

// ErrBicycleIDIsRequired is returned for an empty or zero-value BicycleID.
var ErrBicycleIDIsRequired = errs.NewValueIsRequiredError("bicycle id")

// BicycleID names one physical bicycle. It is opaque to the domain: any
// non-blank string is accepted and surrounding whitespace is dropped.
type BicycleID struct {
	value string
}

// NewBicycleID validates and wraps raw.
func NewBicycleID(raw string) (BicycleID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return BicycleID{}, ErrBicycleIDIsRequired
	}
	return BicycleID{value: trimmed}, nil
}

// MustBicycleID is NewBicycleID for literals known to be valid. It panics otherwise.
func MustBicycleID(raw string) BicycleID {
	id, err := NewBicycleID(raw)
	if err != nil {
		panic(err)
	}
	return id
}

func (id BicycleID) String() string {
	return id.value
}

// IsEqual reports whether both identifiers name the same bicycle.
func (id BicycleID) IsEqual(other BicycleID) bool {
	return id.value == other.value
}

// Validate rejects the zero value.
func (id BicycleID) Validate() error {
	if id.value == "" {
		return ErrBicycleIDIsRequired
	}
	return nil
}
