package bicycle

import (
	"fmt"
	"strings"

	"bikeshare/internal/pkg/errs"
)

// Kind distinguishes regular from electric bicycles.
type Kind int

const (
	UnknownKind Kind = iota
	Regular
	Electric
)

// ParseKind maps "regular" or "electric" to a Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "regular":
		return Regular, nil
	case "electric":
		return Electric, nil
	default:
		return UnknownKind, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not regular or electric", name))
	}
}

// Validate rejects UnknownKind.
func (k Kind) Validate() error {
	if k != Regular && k != Electric {
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%d is not a valid kind", k))
	}
	return nil
}

func (k Kind) String() string {
	switch k {
	case Regular:
		return "regular"
	case Electric:
		return "electric"
	default:
		return "unknown"
	}
}
