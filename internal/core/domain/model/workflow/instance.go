package workflow

import (
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// Instance is the live in-memory state machine tracking one order's progress:
// its identifier, current state, and extended-variable bag. Instances are
// created fresh and brought to their persisted state by the recovery engine;
// they are mutated only through Fire.
//
// An Instance is not safe for concurrent use. The orchestrating service
// serializes all work for one order identifier behind a per-key lock, which
// also guarantees Fire is never re-entered mid-flight for the same order.
type Instance struct {
	id      kernel.UUID
	table   *Table
	state   order.State
	vars    Vars
	started bool
}

// NewInstance creates an unstarted instance bound to the canonical workflow
// table. Call Start before firing events.
func NewInstance(id kernel.UUID) *Instance {
	return newInstanceWithTable(id, defaultTable)
}

func newInstanceWithTable(id kernel.UUID, table *Table) *Instance {
	return &Instance{
		id:    id,
		table: table,
		state: order.Unknown,
	}
}

// ID returns the order identifier this instance tracks.
func (i *Instance) ID() kernel.UUID {
	return i.id
}

// Start initializes the instance to the Created state. Idempotent: starting
// an already-started instance is a no-op and never resets the extended
// variables.
func (i *Instance) Start() {
	if i.started {
		return
	}
	i.state = order.Created
	i.started = true
}

// CurrentState returns the instance's current state, or order.Unknown for an
// unstarted instance.
func (i *Instance) CurrentState() order.State {
	return i.state
}

// Vars returns a copy of the extended-variable bag.
func (i *Instance) Vars() Vars {
	return i.vars.clone()
}

// UpdateVars applies event-carried variable writes before a fire.
func (i *Instance) UpdateVars(apply func(*Vars)) {
	apply(&i.vars)
}

// LegalEvents returns the events the table declares from the current state.
func (i *Instance) LegalEvents() []Event {
	return i.table.LegalEvents(i.state)
}

// CanFire reports whether the table declares event from the current state.
func (i *Instance) CanFire(event Event) bool {
	return i.table.CanFire(i.state, event)
}

// Fire attempts a transition. The sequence is: rule lookup, guard selection,
// action, commit. A missing rule or a guard that does not hold returns an
// InvalidTransitionError and leaves state and variables untouched. An action
// error is recorded in Vars.ActionErrors under "<phase>Error" and the
// transition still commits; the committed state value never lands in a
// partial or undefined value.
func (i *Instance) Fire(event Event) error {
	if !i.started {
		return ErrInstanceNotStarted
	}

	rule, ok := i.table.rule(i.state, event)
	if !ok {
		return NewInvalidTransitionError(i.state, event)
	}

	alt, ok := rule.selectAlternative(i.vars)
	if !ok {
		return NewInvalidTransitionError(i.state, event)
	}

	if alt.action != nil {
		if err := alt.action(&i.vars); err != nil {
			i.vars.recordActionError(alt.phase, err)
		}
	}

	i.state = alt.target
	return nil
}
