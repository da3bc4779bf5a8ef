// Package guard provides the constructor-guard pattern used by commands, queries,
// and domain objects to ensure they are only created through their designated
// constructor functions, never as zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a nil validation error
// is supplied. This guarantees validation always fails with a meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. Embed it in a struct
// and initialize it with NewConstructorGuard inside the constructor; a zero-value
// instance of the struct then fails Validate.
//
// Example:
//
//	type FireEventCommand struct {
//	    orderID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewFireEventCommand(orderID kernel.UUID) (FireEventCommand, error) {
//	    return FireEventCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c FireEventCommand) Validate() error {
//	    return c.guard.Validate(ErrFireEventCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks its holder as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the holder was created through its constructor.
// For zero-value holders it returns the supplied error, or
// ErrDefaultConstructorGuard when the supplied error is nil.
func (g ConstructorGuard) Validate(notConstructedErr error) error {
	if g.isConstructed {
		return nil
	}

	if notConstructedErr == nil {
		return ErrDefaultConstructorGuard
	}

	return notConstructedErr
}
