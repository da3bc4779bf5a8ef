package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// The core only depends on a record exposing the identifier and the recorded
// workflow state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInState retrieves all orders whose recorded state matches.
	GetAllInState(ctx context.Context, state order.State) ([]*order.Order, error)

	// GetAllNonTerminal retrieves all orders that can still accept events.
	// Used by the snapshot refresh job to keep live snapshots from expiring.
	GetAllNonTerminal(ctx context.Context) ([]*order.Order, error)
}
