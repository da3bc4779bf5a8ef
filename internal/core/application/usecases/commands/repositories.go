// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order operations.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)

// WorkflowRecovery abstracts the snapshot recovery service for command
// handlers. The snapshot store sits outside the unit of work: snapshot writes
// happen after the relational commit and their failure is surfaced, not
// rolled back into.
type WorkflowRecovery interface {
	// Restore rebuilds the live workflow instance for an order from its
	// stored snapshot, or in the initial state when no snapshot exists.
	Restore(ctx context.Context, orderID kernel.UUID) (*workflow.Instance, error)

	// Materialize rebuilds an instance at a known state without reading the
	// store. Used when the snapshot disagrees with the relational state.
	Materialize(ctx context.Context, orderID kernel.UUID, state order.State) (*workflow.Instance, error)

	// Persist writes the instance's current state as the order's snapshot.
	Persist(ctx context.Context, instance *workflow.Instance) error
}
