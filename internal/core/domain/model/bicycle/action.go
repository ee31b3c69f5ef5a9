package bicycle

import "fmt"

// Action names something a caller or the repair workflow attempts on a bicycle.
// The first four are the permission-checked actions; the rest are workflow and
// rental transitions.
type Action int

const (
	Rent Action = iota + 1
	Delete
	Move
	Report
	BeginRepair
	CompleteRepair
	Return
)

func getActionStrings() map[Action]string {
	return map[Action]string{
		Rent:           "rent",
		Delete:         "delete",
		Move:           "move",
		Report:         "report",
		BeginRepair:    "begin repair",
		CompleteRepair: "complete repair",
		Return:         "return",
	}
}

// IsPermission reports whether a is one of rent, delete, move, report.
func (a Action) IsPermission() bool {
	return a == Rent || a == Delete || a == Move || a == Report
}

func (a Action) String() string {
	if str, ok := getActionStrings()[a]; ok {
		return str
	}
	return "unknown action"
}

// RefusalError explains why an action was refused: which action, in which state.
// It unwraps to ErrInvalidTransition.
type RefusalError struct {
	Action Action
	Status Status
}

// NewRefusalError builds a RefusalError.
func NewRefusalError(a Action, s Status) *RefusalError {
	return &RefusalError{Action: a, Status: s}
}

func (e *RefusalError) Error() string {
	return fmt.Sprintf("%s: cannot %s a bicycle that is %s", ErrInvalidTransition, e.Action, e.Status)
}

func (e *RefusalError) Unwrap() error {
	return ErrInvalidTransition
}
