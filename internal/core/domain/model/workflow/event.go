package workflow

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Event is a trigger symbol fired against a workflow instance. The set is
// closed; events carry no payload of their own — variable writes that
// accompany an event are applied to the instance before firing.
type Event int

const (
	// EventUnknown represents an invalid or undefined event.
	EventUnknown Event = iota

	// SubmitPayment submits the order for payment.
	SubmitPayment

	// PaymentSucceeded confirms the payment was captured.
	PaymentSucceeded

	// PaymentFailed reports the payment attempt failed.
	PaymentFailed

	// Prepare moves a paid order into picking and packing.
	Prepare

	// Ship marks the order as handed to the carrier.
	Ship

	// Deliver marks the order as received by the customer.
	Deliver

	// Cancel aborts the order.
	Cancel

	// Refund returns the captured amount for a cancelled order.
	Refund

	// SelectPaymentMethod enters the payment-method choice.
	SelectPaymentMethod

	// CreditCard resolves the payment choice to a credit card.
	CreditCard

	// BankTransfer resolves the payment choice to a bank transfer.
	BankTransfer

	// CheckShipping enters the shipping-mode junction.
	CheckShipping

	// Expedite resolves the shipping junction to expedited handling.
	Expedite

	// Standard resolves the shipping junction to standard handling.
	Standard
)

func getEventStrings() map[Event]string {
	return map[Event]string{
		EventUnknown:        "UNKNOWN",
		SubmitPayment:       "SUBMIT_PAYMENT",
		PaymentSucceeded:    "PAYMENT_SUCCEEDED",
		PaymentFailed:       "PAYMENT_FAILED",
		Prepare:             "PREPARE",
		Ship:                "SHIP",
		Deliver:             "DELIVER",
		Cancel:              "CANCEL",
		Refund:              "REFUND",
		SelectPaymentMethod: "SELECT_PAYMENT_METHOD",
		CreditCard:          "CREDIT_CARD",
		BankTransfer:        "BANK_TRANSFER",
		CheckShipping:       "CHECK_SHIPPING",
		Expedite:            "EXPEDITE",
		Standard:            "STANDARD",
	}
}

// AllEvents returns every valid event in declaration order.
// Used by the exhaustive transition-table tests.
func AllEvents() []Event {
	return []Event{
		SubmitPayment,
		PaymentSucceeded,
		PaymentFailed,
		Prepare,
		Ship,
		Deliver,
		Cancel,
		Refund,
		SelectPaymentMethod,
		CreditCard,
		BankTransfer,
		CheckShipping,
		Expedite,
		Standard,
	}
}

// EventFromString maps an event name (e.g. "SUBMIT_PAYMENT") to its Event value.
func EventFromString(s string) (Event, error) {
	for event, name := range getEventStrings() {
		if event != EventUnknown && name == s {
			return event, nil
		}
	}
	return EventUnknown, errs.NewValueIsInvalidErrorWithCause(
		"event",
		fmt.Errorf("%q is not a valid workflow event", s),
	)
}

// Validate checks that the Event value belongs to the enumeration.
func (e Event) Validate() error {
	if e == EventUnknown {
		return errs.NewValueIsInvalidError("event")
	}
	if _, ok := getEventStrings()[e]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"event",
			fmt.Errorf("%d is not a valid workflow event", e),
		)
	}
	return nil
}

// String returns the wire name of the event ("SUBMIT_PAYMENT" ...).
// Safe to call on any value; invalid values yield "UNKNOWN".
func (e Event) String() string {
	if str, ok := getEventStrings()[e]; ok {
		return str
	}
	return "UNKNOWN"
}
