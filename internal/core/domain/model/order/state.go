package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// State represents the lifecycle state of an order workflow.
// The set of states is closed; an order is in exactly one state at any
// observed instant, and every state change goes through the workflow
// transition table.
//
// Lifecycle:
//
//	Created ──┬──> PaymentPending ──> Paid ──┬──> Preparing ──> Shipped ──> Delivered
//	          │           ▲                  │        ▲
//	          └──> PaymentChoice ────────────┘        │
//	                                  (ShippingJunction branches here)
//
//	Cancel is accepted from every non-terminal state before Shipped and leads
//	to Cancelled; Cancelled accepts Refund and leads to Refunded.
//
// The string form of a State (e.g. "CREATED") is what gets written to the
// snapshot store, so it must stay stable across releases.
type State int

const (
	// Unknown represents an invalid or undefined state.
	// This value (0) helps catch uninitialized State values.
	Unknown State = iota

	// Created is the initial state assigned when an order is registered.
	Created

	// PaymentChoice is a branch state where the payment method is selected.
	PaymentChoice

	// PaymentPending indicates payment was submitted and awaits confirmation.
	PaymentPending

	// Paid indicates the payment provider confirmed the payment.
	Paid

	// ShippingJunction is a branch state where the shipping mode is decided.
	ShippingJunction

	// Preparing indicates the order is being picked and packed.
	Preparing

	// Shipped indicates the order left the warehouse.
	Shipped

	// Delivered is a terminal state: the order reached the customer.
	Delivered

	// Cancelled indicates the order was aborted; it still accepts Refund.
	Cancelled

	// Refunded is a terminal state: the paid amount was returned.
	Refunded
)

func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:          "UNKNOWN",
		Created:          "CREATED",
		PaymentChoice:    "PAYMENT_CHOICE",
		PaymentPending:   "PAYMENT_PENDING",
		Paid:             "PAID",
		ShippingJunction: "SHIPPING_JUNCTION",
		Preparing:        "PREPARING",
		Shipped:          "SHIPPED",
		Delivered:        "DELIVERED",
		Cancelled:        "CANCELLED",
		Refunded:         "REFUNDED",
	}
}

func getValidStateStrings() map[State]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[State]string{
		Created:          "CREATED",
		PaymentChoice:    "PAYMENT_CHOICE",
		PaymentPending:   "PAYMENT_PENDING",
		Paid:             "PAID",
		ShippingJunction: "SHIPPING_JUNCTION",
		Preparing:        "PREPARING",
		Shipped:          "SHIPPED",
		Delivered:        "DELIVERED",
		Cancelled:        "CANCELLED",
		Refunded:         "REFUNDED",
	}
}

// AllStates returns every valid state in declaration order.
// Used by exhaustive transition-table tests and by queries that validate input.
func AllStates() []State {
	return []State{
		Created,
		PaymentChoice,
		PaymentPending,
		Paid,
		ShippingJunction,
		Preparing,
		Shipped,
		Delivered,
		Cancelled,
		Refunded,
	}
}

// StateFromString maps a persisted state name back to its State value.
// Returns a ValueIsInvalidError for names outside the enumeration; callers
// that read snapshots treat that as "no stored state".
func StateFromString(s string) (State, error) {
	for state, name := range getValidStateStrings() {
		if name == s {
			return state, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"state",
		fmt.Errorf("%q is not a valid order state", s),
	)
}

// Validate checks that the State value belongs to the enumeration.
func (s State) Validate() error {
	if _, ok := getValidStateStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"state",
			fmt.Errorf("%d is not a valid order state", s),
		)
	}
	return nil
}

// String returns the persisted name of the state ("CREATED" ... "REFUNDED").
// Safe to call on any value; invalid values yield "UNKNOWN".
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the state accepts no further events at all.
// Cancelled is not terminal: it still accepts a refund.
func (s State) IsTerminal() bool {
	return s == Delivered || s == Refunded
}
