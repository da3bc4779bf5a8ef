package commands

import (
	"context"
	"log/slog"
)

// RefreshSnapshotsCommandHandler rewrites the workflow snapshots of all
// non-terminal orders from their relational state. A per-order failure is
// logged and skipped so one misbehaving order cannot starve the rest of the
// batch.
type RefreshSnapshotsCommandHandler struct {
	uowFactory OrderUoWFactory
	recovery   WorkflowRecovery
	logger     *slog.Logger
}

// NewRefreshSnapshotsCommandHandler creates a handler for the periodic
// snapshot refresh.
func NewRefreshSnapshotsCommandHandler(
	uowFactory OrderUoWFactory,
	recovery WorkflowRecovery,
	logger *slog.Logger,
) RefreshSnapshotsCommandHandler {
	return RefreshSnapshotsCommandHandler{
		uowFactory: uowFactory,
		recovery:   recovery,
		logger:     logger.With("component", "refresh_snapshots_handler"),
	}
}

// Handle processes the snapshot refresh command.
// Reads all non-terminal orders inside one read transaction, then writes
// each order's snapshot from its recorded relational state.
func (h *RefreshSnapshotsCommandHandler) Handle(ctx context.Context, cmd RefreshSnapshotsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().GetAllNonTerminal(ctx)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	refreshed := 0
	for _, aggregate := range orders {
		instance, materializeErr := h.recovery.Materialize(ctx, aggregate.ID(), aggregate.State())
		if materializeErr != nil {
			return materializeErr
		}
		if persistErr := h.recovery.Persist(ctx, instance); persistErr != nil {
			h.logger.WarnContext(ctx, "Snapshot refresh skipped order",
				"order_id", aggregate.ID().String(), "error", persistErr)
			continue
		}
		refreshed++
	}

	h.logger.InfoContext(ctx, "Snapshot refresh finished",
		"total", len(orders), "refreshed", refreshed)
	return nil
}
