package workflow

import (
	"time"

	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// Guard is a side-effect-free predicate over the extended variables.
// It must not mutate anything; a false result refuses the transition exactly
// as if the (state, event) pair were not declared at all.
type Guard func(vars Vars) bool

// Action is a side-effecting callback run once, synchronously, after guard
// selection and before the target state is committed. Actions may write
// extended variables. An error returned by an action is swallowed into
// Vars.ActionErrors instead of aborting the transition: state progression is
// never blocked by a failing non-critical side effect.
type Action func(vars *Vars) error

// alternative is one (guard, target, action) row of a transition. Branch
// transitions declare several, evaluated top-down with the first matching
// guard winning; a nil guard matches unconditionally and ends the list as the
// designated default.
type alternative struct {
	// phase names the alternative for the ActionErrors side channel.
	phase  string
	guard  Guard
	target order.State
	action Action
}

type transitionRule struct {
	source       order.State
	event        Event
	alternatives []alternative
}

// selectAlternative picks the first alternative whose guard passes.
// Returns false when every alternative is guarded and none holds.
func (r transitionRule) selectAlternative(vars Vars) (alternative, bool) {
	for _, alt := range r.alternatives {
		if alt.guard == nil || alt.guard(vars) {
			return alt, true
		}
	}
	return alternative{}, false
}

// Table is the static transition table of the order workflow: a pure, total
// mapping over the closed state and event enumerations. Exactly one rule
// exists per declared (source, event) pair; rule alternatives resolve branch
// states at fire time.
type Table struct {
	rules map[order.State]map[Event]transitionRule
	// outgoing preserves per-state declaration order for LegalEvents.
	outgoing map[order.State][]Event
}

func newTable(rules []transitionRule) *Table {
	t := &Table{
		rules:    make(map[order.State]map[Event]transitionRule, len(rules)),
		outgoing: make(map[order.State][]Event, len(rules)),
	}
	for _, r := range rules {
		if t.rules[r.source] == nil {
			t.rules[r.source] = make(map[Event]transitionRule)
		}
		if _, dup := t.rules[r.source][r.event]; dup {
			panic("workflow: duplicate transition rule for " + r.source.String() + "/" + r.event.String())
		}
		t.rules[r.source][r.event] = r
		t.outgoing[r.source] = append(t.outgoing[r.source], r.event)
	}
	return t
}

// CanFire reports whether the table declares a transition for (state, event).
// Purely structural: guards are evaluated at fire time, not here.
func (t *Table) CanFire(state order.State, event Event) bool {
	_, ok := t.rules[state][event]
	return ok
}

// TargetOf returns the state the designated default alternative of
// (state, event) leads to, and whether the pair is declared at all.
// CanFire returning true implies TargetOf yields a defined state, because
// every branch rule ends with an unguarded default or converges on a single
// target.
func (t *Table) TargetOf(state order.State, event Event) (order.State, bool) {
	rule, ok := t.rules[state][event]
	if !ok {
		return order.Unknown, false
	}
	return rule.alternatives[len(rule.alternatives)-1].target, true
}

// LegalEvents returns the declared outgoing events of a state, in declaration
// order. Terminal states yield an empty slice.
func (t *Table) LegalEvents(state order.State) []Event {
	events := t.outgoing[state]
	out := make([]Event, len(events))
	copy(out, events)
	return out
}

func (t *Table) rule(state order.State, event Event) (transitionRule, bool) {
	r, ok := t.rules[state][event]
	return r, ok
}

// single builds a one-alternative rule.
func single(source order.State, event Event, target order.State, phase string, g Guard, a Action) transitionRule {
	return transitionRule{
		source: source,
		event:  event,
		alternatives: []alternative{
			{phase: phase, guard: g, target: target, action: a},
		},
	}
}

func methodIsCreditCard(vars Vars) bool   { return vars.PaymentMethod == PaymentMethodCreditCard }
func methodIsBankTransfer(vars Vars) bool { return vars.PaymentMethod == PaymentMethodBankTransfer }
func wantsExpedite(vars Vars) bool        { return vars.ExpediteShipping }

func recordPaymentSubmitted(vars *Vars) error {
	vars.SubmittedAt = time.Now().UTC()
	return nil
}

func selectCreditCard(vars *Vars) error {
	vars.PaymentMethod = PaymentMethodCreditCard
	return nil
}

func selectBankTransfer(vars *Vars) error {
	vars.PaymentMethod = PaymentMethodBankTransfer
	return nil
}

func recordPaymentConfirmed(vars *Vars) error {
	vars.PaidAt = time.Now().UTC()
	return nil
}

func markExpedited(vars *Vars) error {
	vars.ExpediteShipping = true
	return nil
}

func markStandard(vars *Vars) error {
	vars.ExpediteShipping = false
	return nil
}

func assignTracking(vars *Vars) error {
	vars.ShippedAt = time.Now().UTC()
	vars.TrackingID = "TRK-" + uuid.NewString()
	return nil
}

func recordDelivered(vars *Vars) error {
	vars.DeliveredAt = time.Now().UTC()
	return nil
}

func recordRefunded(vars *Vars) error {
	vars.RefundedAt = time.Now().UTC()
	return nil
}

// defaultTable is the canonical order workflow, built once at package init.
//
// Branch states appear as ordinary rules with ordered guarded alternatives and
// an unguarded default evaluated top-down: PaymentChoice resolves
// SubmitPayment by the selected payment method, ShippingJunction resolves
// Prepare by the expedite flag. Cancelled is not fully terminal: Refund is
// its single outgoing event.
var defaultTable = newTable([]transitionRule{
	single(order.Created, SubmitPayment, order.PaymentPending, "submitPayment", nil, recordPaymentSubmitted),
	single(order.Created, SelectPaymentMethod, order.PaymentChoice, "selectPaymentMethod", nil, nil),
	single(order.Created, Cancel, order.Cancelled, "cancel", nil, nil),

	{
		source: order.PaymentChoice,
		event:  SubmitPayment,
		alternatives: []alternative{
			{phase: "submitByCreditCard", guard: methodIsCreditCard, target: order.PaymentPending, action: recordPaymentSubmitted},
			{phase: "submitByBankTransfer", guard: methodIsBankTransfer, target: order.PaymentPending, action: recordPaymentSubmitted},
			{phase: "submitPayment", guard: nil, target: order.PaymentPending, action: recordPaymentSubmitted},
		},
	},
	single(order.PaymentChoice, CreditCard, order.PaymentPending, "creditCard", nil, selectCreditCard),
	single(order.PaymentChoice, BankTransfer, order.PaymentPending, "bankTransfer", nil, selectBankTransfer),
	single(order.PaymentChoice, Cancel, order.Cancelled, "cancel", nil, nil),

	single(order.PaymentPending, PaymentSucceeded, order.Paid, "paymentSucceeded", nil, recordPaymentConfirmed),
	single(order.PaymentPending, PaymentFailed, order.Cancelled, "paymentFailed", nil, nil),
	single(order.PaymentPending, Cancel, order.Cancelled, "cancel", nil, nil),

	single(order.Paid, Prepare, order.Preparing, "prepare", nil, nil),
	single(order.Paid, CheckShipping, order.ShippingJunction, "checkShipping", nil, nil),
	single(order.Paid, Cancel, order.Cancelled, "cancel", nil, nil),

	{
		source: order.ShippingJunction,
		event:  Prepare,
		alternatives: []alternative{
			{phase: "prepareExpedited", guard: wantsExpedite, target: order.Preparing, action: markExpedited},
			{phase: "prepareStandard", guard: nil, target: order.Preparing, action: markStandard},
		},
	},
	single(order.ShippingJunction, Expedite, order.Preparing, "expedite", nil, markExpedited),
	single(order.ShippingJunction, Standard, order.Preparing, "standard", nil, markStandard),

	single(order.Preparing, Ship, order.Shipped, "ship", nil, assignTracking),
	single(order.Preparing, Cancel, order.Cancelled, "cancel", nil, nil),

	single(order.Shipped, Deliver, order.Delivered, "deliver", nil, recordDelivered),

	single(order.Cancelled, Refund, order.Refunded, "refund", nil, recordRefunded),
})

// DefaultTable returns the canonical order workflow table.
func DefaultTable() *Table {
	return defaultTable
}
