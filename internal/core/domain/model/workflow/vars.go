package workflow

import (
	"maps"
	"time"
)

// Payment method values recorded in Vars.PaymentMethod.
const (
	PaymentMethodCreditCard   = "CREDIT_CARD"
	PaymentMethodBankTransfer = "BANK_TRANSFER"
)

// Vars is the extended-variable bag of a workflow instance, as a fixed schema
// rather than a dynamic map so guards and actions never need runtime casts.
// Guards read it; actions are the only writers during a fire; callers may
// apply event-carried writes through Instance.UpdateVars before firing.
type Vars struct {
	// Amount is the order total submitted for payment.
	Amount float64

	// ShippingAddress is the destination recorded with the order.
	ShippingAddress string

	// PaymentMethod is PaymentMethodCreditCard or PaymentMethodBankTransfer
	// once a payment method has been selected, empty before that.
	PaymentMethod string

	// ExpediteShipping requests expedited handling at the shipping junction.
	ExpediteShipping bool

	// TrackingID is assigned when the order ships.
	TrackingID string

	SubmittedAt time.Time
	PaidAt      time.Time
	ShippedAt   time.Time
	DeliveredAt time.Time
	RefundedAt  time.Time

	// ActionErrors collects swallowed action failures, keyed by
	// "<phase>Error". A failing action never blocks its transition; the
	// failure lands here for the caller to log and for diagnostics to read.
	ActionErrors map[string]string
}

// recordActionError stores a swallowed action failure under "<phase>Error".
func (v *Vars) recordActionError(phase string, err error) {
	if v.ActionErrors == nil {
		v.ActionErrors = make(map[string]string, 1)
	}
	v.ActionErrors[phase+"Error"] = err.Error()
}

// clone returns a copy safe to hand out: the ActionErrors map is copied so
// callers cannot mutate the instance's bag through the returned value.
func (v Vars) clone() Vars {
	out := v
	if v.ActionErrors != nil {
		out.ActionErrors = maps.Clone(v.ActionErrors)
	}
	return out
}
