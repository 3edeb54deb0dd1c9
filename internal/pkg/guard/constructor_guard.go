// Package guard provides the ConstructorGuard used by value objects, commands
// and queries to detect zero values that bypassed their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a
// nil validation error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as built by its designated constructor.
// Embed it in a struct, set it with NewConstructorGuard in the constructor and
// call Validate before using the object:
//
//	var ErrQuoteNotConstructed = errors.New("Quote must be created via NewQuote")
//
//	type Quote struct {
//	    fee   decimal.Decimal
//	    guard guard.ConstructorGuard
//	}
//
//	func (q Quote) Validate() error {
//	    return q.guard.Validate(ErrQuoteNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard flagged as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is
// nil) if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
