package order

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order is the relational aggregate holding an order's identifier and its
// recorded workflow state. The aggregate itself does not know the transition
// rules; legality of a state change is decided by the workflow engine before
// ChangeState is called, and the recorded state is the defense-in-depth
// counterpart of the workflow snapshot.
//
// Invariants:
//   - Must have a valid unique identifier
//   - State is always a member of the closed enumeration
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// state is the currently recorded workflow state
	state State

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates an Order in the Created state.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	o, err := order.NewOrder(orderID)
//	if err != nil {
//	    // invalid identifier
//	}
func NewOrder(id kernel.UUID) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		state:         Created,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an Order from persistence with its recorded state.
// Used by repository mapping; rejects states outside the enumeration so a
// corrupt row can never produce an aggregate in an undefined state.
func RestoreOrder(id kernel.UUID, state State) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		state:         state,
		isConstructed: true,
	}, nil
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// State returns the currently recorded workflow state.
func (o *Order) State() State {
	return o.state
}

// ChangeState records a new workflow state on the aggregate.
// The caller is responsible for having validated the transition against the
// workflow table; this method only refuses values outside the enumeration.
func (o *Order) ChangeState(next State) error {
	if err := next.Validate(); err != nil {
		return err
	}

	o.state = next
	return nil
}

// Validate ensures the order was created through a factory method and its
// state is well-formed.
func (o *Order) Validate() error {
	if !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return errors.Join(
		o.id.Validate(),
		o.state.Validate(),
	)
}
