// Package guard provides a defensive construction pattern for value objects
// and commands. Embedding a ConstructorGuard in a struct makes zero-value
// instances detectable, so objects that bypass their constructor fail
// validation instead of carrying unchecked state through the system.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks whether its enclosing object was created through
// a designated constructor. The zero value always fails validation, which
// is what makes the pattern work: constructors call NewConstructorGuard,
// direct struct literals do not.
//
// Example:
//
//	type TrackingCode struct {
//	    value string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewTrackingCode(value string) (TrackingCode, error) {
//	    // validate value...
//	    return TrackingCode{value: value, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c TrackingCode) Validate() error {
//	    return c.guard.Validate(ErrTrackingCodeIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking the enclosing object as
// properly constructed. Call it only from constructors.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was built through its constructor.
// For zero-value guards it returns validationError, falling back to
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
