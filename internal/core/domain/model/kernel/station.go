package kernel

import (
	"strings"

	"bikeshare/internal/pkg/errs"
)

// ErrStationIsRequired is returned for an empty or zero-value Station.
var ErrStationIsRequired = errs.NewValueIsRequiredError("station")

// Station is the name of a pickup/drop-off location. Distances between a station
// and the repair center are resolved by the station directory, not by the name.
type Station struct {
	name string
}

// NewStation validates and wraps name.
func NewStation(name string) (Station, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Station{}, ErrStationIsRequired
	}
	return Station{name: trimmed}, nil
}

// MustStation is NewStation for literals known to be valid. It panics otherwise.
func MustStation(name string) Station {
	s, err := NewStation(name)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Station) String() string {
	return s.name
}

// IsEqual compares stations by name.
func (s Station) IsEqual(other Station) bool {
	return s.name == other.name
}

// Validate rejects the zero value.
func (s Station) Validate() error {
	if s.name == "" {
		return ErrStationIsRequired
	}
	return nil
}
