// Package guard provides ConstructorGuard, a marker that lets value objects, aggregates
// and commands detect that they were built through their constructor rather than
// declared as zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded into types that must only be created via a constructor.
// The zero value reports "not constructed".
//
// Example usage:
//
//	var ErrAssignOrdersCommandIsNotConstructed = errors.New("AssignOrdersCommand must be created via NewAssignOrdersCommand")
//
//	type AssignOrdersCommand struct {
//	    courierID int64
//	    guard     guard.ConstructorGuard
//	}
//
//	func (c AssignOrdersCommand) Validate() error {
//	    return c.guard.Validate(ErrAssignOrdersCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
