package ports

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/workflow"
)

// TransitionRecord is one append-only audit entry describing a committed
// transition.
type TransitionRecord struct {
	OrderID    kernel.UUID
	Source     order.State
	Target     order.State
	Event      workflow.Event
	OccurredAt time.Time
	Message    string
}

// TransitionHistoryRepository is the audit collaborator. Appends are
// fire-and-forget from the core's perspective: a failure here must never
// abort a transition that already committed to the order's persisted state —
// callers log the error and continue.
type TransitionHistoryRepository interface {
	// Append stores one transition record.
	Append(ctx context.Context, record TransitionRecord) error

	// GetByOrder returns the recorded transitions of an order, oldest first.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]TransitionRecord, error)
}
