package breakdown

import (
	"fmt"
	"strings"
	"time"

	"bikeshare/internal/pkg/errs"
)

// Cause is the reason a bicycle was reported broken.
type Cause int

const (
	// UnknownCause is the zero value and is never valid.
	UnknownCause Cause = iota
	FlatTire
	BrokenChain
	BrakeIssue
	// Battery only makes sense for electric bicycles. It is still accepted for
	// regular ones; only the duration computation treats it specially.
	Battery
	Other
)

type causeInfo struct {
	code     string
	baseTime time.Duration
}

func getCauseInfo() map[Cause]causeInfo {
	return map[Cause]causeInfo{
		FlatTire:    {code: "flat_tire", baseTime: 5 * time.Second},
		BrokenChain: {code: "broken_chain", baseTime: 8 * time.Second},
		BrakeIssue:  {code: "brake_issue", baseTime: 6 * time.Second},
		Battery:     {code: "battery", baseTime: 5 * time.Second},
		Other:       {code: "other", baseTime: 4 * time.Second},
	}
}

// AllCauses lists the valid causes in declaration order.
func AllCauses() []Cause {
	return []Cause{FlatTire, BrokenChain, BrakeIssue, Battery, Other}
}

// ParseCause maps a wire code such as "flat_tire" to its Cause.
func ParseCause(code string) (Cause, error) {
	normalized := strings.ToLower(strings.TrimSpace(code))
	for c, info := range getCauseInfo() {
		if info.code == normalized {
			return c, nil
		}
	}
	return UnknownCause, errs.NewValueIsInvalidErrorWithCause("cause", fmt.Errorf("%q is not a known breakdown cause", code))
}

// ParseCauses parses every code. The first invalid code fails the call.
func ParseCauses(codes []string) ([]Cause, error) {
	causes := make([]Cause, 0, len(codes))
	for _, code := range codes {
		c, err := ParseCause(code)
		if err != nil {
			return nil, err
		}
		causes = append(causes, c)
	}
	return causes, nil
}

// Validate rejects UnknownCause and out-of-range values.
func (c Cause) Validate() error {
	if _, ok := getCauseInfo()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("cause", fmt.Errorf("%d is not a valid breakdown cause", c))
	}
	return nil
}

// BaseTime is the repair time of the cause on a regular bicycle. Invalid causes
// take no time.
func (c Cause) BaseTime() time.Duration {
	return getCauseInfo()[c].baseTime
}

// IsElectrical reports whether the cause concerns the electrical system.
func (c Cause) IsElectrical() bool {
	return c == Battery
}

func (c Cause) String() string {
	if info, ok := getCauseInfo()[c]; ok {
		return info.code
	}
	return "unknown"
}
