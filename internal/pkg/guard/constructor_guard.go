// Package guard provides the constructor guard used by aggregates, commands and
// queries to reject zero-value instances.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as built by its constructor. Embed it in a struct
// and set it with NewConstructorGuard; a zero-value struct then fails Validate.
//
// Example:
//
//	var ErrReportIsNotConstructed = errors.New("Report must be created via NewReport")
//
//	type Report struct {
//	    bicycleID kernel.BicycleID
//	    guard     guard.ConstructorGuard
//	}
//
//	func (r Report) Validate() error {
//	    return r.guard.Validate(ErrReportIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guarded value was not created by its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
