package commands

import (
	"context"
	"log/slog"

	"orderflow/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Persists the aggregate in the initial workflow state and writes the first
// snapshot so a later restore needs no replay.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, recovery, logger)
//	orderID := kernel.NewUUID()
//	cmd, _ := NewCreateOrderCommand(orderID)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	recovery   WorkflowRecovery
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence and the workflow
// recovery service for the initial snapshot write.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	recovery WorkflowRecovery,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		recovery:   recovery,
		logger:     logger.With("component", "create_order_handler"),
	}
}

// Handle processes the order creation command.
// Persists the order in the initial state and writes the first snapshot.
// The snapshot write happens after the relational commit; its failure is
// logged and swallowed because restore treats an absent snapshot as the
// initial state anyway.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := order.NewOrder(cmd.OrderID())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	instance, err := h.recovery.Materialize(ctx, aggregate.ID(), aggregate.State())
	if err != nil {
		return err
	}
	if err = h.recovery.Persist(ctx, instance); err != nil {
		h.logger.WarnContext(ctx, "Initial snapshot write failed",
			"order_id", aggregate.ID().String(), "error", err)
	}

	return nil
}
