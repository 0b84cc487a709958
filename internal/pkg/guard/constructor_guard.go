// Package guard provides the constructor guard embedded in command and query values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as created through its constructor.
// Embed it in a struct and set it with NewConstructorGuard in the constructor;
// the zero value fails Validate.
//
// Example:
//
//	type CreateRouteCommand struct {
//	    name  string
//	    guard guard.ConstructorGuard
//	}
//
//	func (c CreateRouteCommand) Validate() error {
//	    return c.guard.Validate(ErrCreateRouteCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that passes validation.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
