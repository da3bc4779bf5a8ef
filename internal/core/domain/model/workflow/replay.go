package workflow

import "orderflow/internal/core/domain/model/order"

// replayPaths maps every reachable state to an event sequence that, fired in
// order from a freshly started (Created) instance, reaches it. Recovery only
// ever replays from Created, so a precomputed table keyed by target state is
// enough — no graph search.
//
// One representative path is stored per state: where several event sequences
// converge on the same state (PaymentPending is reachable directly or through
// the payment choice), recovery only needs to reach the correct state for
// subsequent transition validity, not to reproduce the branch taken. Paths
// are chosen so the replayed actions leave the variable bag consistent with
// the target state.
var replayPaths = map[order.State][]Event{
	order.Created:          {},
	order.PaymentChoice:    {SelectPaymentMethod},
	order.PaymentPending:   {SubmitPayment},
	order.Paid:             {SubmitPayment, PaymentSucceeded},
	order.ShippingJunction: {SubmitPayment, PaymentSucceeded, CheckShipping},
	order.Preparing:        {SubmitPayment, PaymentSucceeded, Prepare},
	order.Shipped:          {SubmitPayment, PaymentSucceeded, Prepare, Ship},
	order.Delivered:        {SubmitPayment, PaymentSucceeded, Prepare, Ship, Deliver},
	order.Cancelled:        {Cancel},
	order.Refunded:         {Cancel, Refund},
}

// ReplayPath returns the event sequence that reaches target from a freshly
// started instance, and whether the target is a known state. The longest path
// in this workflow is five events (Delivered).
func ReplayPath(target order.State) ([]Event, bool) {
	path, ok := replayPaths[target]
	if !ok {
		return nil, false
	}
	out := make([]Event, len(path))
	copy(out, path)
	return out, true
}
