package commands

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/keyedlock"
)

// FireEventCommandHandler advances an order's workflow by one event.
//
// The full sequence runs under a per-order lock: load the aggregate, restore
// the live workflow instance from its snapshot, reconcile it against the
// relational state, apply the command's variable writes, fire the event,
// persist the new relational state, append the audit record and refresh the
// snapshot. Operations on different orders run concurrently; operations on
// the same order serialize.
type FireEventCommandHandler struct {
	uowFactory OrderUoWFactory
	recovery   WorkflowRecovery
	history    ports.TransitionHistoryRepository
	locks      *keyedlock.KeyedLock
	logger     *slog.Logger
}

// NewFireEventCommandHandler creates a handler for workflow event operations.
func NewFireEventCommandHandler(
	uowFactory OrderUoWFactory,
	recovery WorkflowRecovery,
	history ports.TransitionHistoryRepository,
	locks *keyedlock.KeyedLock,
	logger *slog.Logger,
) FireEventCommandHandler {
	return FireEventCommandHandler{
		uowFactory: uowFactory,
		recovery:   recovery,
		history:    history,
		locks:      locks,
		logger:     logger.With("component", "fire_event_handler"),
	}
}

// Handle processes the fire event command.
//
// A refused event returns workflow.InvalidTransitionError without touching
// storage. The audit append and the snapshot refresh run after the relational
// commit; either failing is logged and swallowed because the transition is
// already durable and both collaborators are rebuilt or retried elsewhere.
func (h *FireEventCommandHandler) Handle(ctx context.Context, cmd FireEventCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	lockKey := cmd.OrderID().String()
	h.locks.Lock(lockKey)
	defer h.locks.Unlock(lockKey)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	instance, err := h.recovery.Restore(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if instance.CurrentState() != aggregate.State() {
		// The relational row is the source of truth; a diverged snapshot is
		// discarded and the instance rebuilt at the recorded state.
		h.logger.ErrorContext(ctx, "Snapshot diverged from relational state",
			"order_id", cmd.OrderID().String(),
			"snapshot_state", instance.CurrentState().String(),
			"relational_state", aggregate.State().String())
		instance, err = h.recovery.Materialize(ctx, cmd.OrderID(), aggregate.State())
		if err != nil {
			return err
		}
	}

	instance.UpdateVars(cmd.ApplyVars)

	source := instance.CurrentState()
	if err = instance.Fire(cmd.Event()); err != nil {
		return err
	}
	target := instance.CurrentState()

	if err = aggregate.ChangeState(target); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	record := ports.TransitionRecord{
		OrderID:    cmd.OrderID(),
		Source:     source,
		Target:     target,
		Event:      cmd.Event(),
		OccurredAt: time.Now().UTC(),
		Message:    actionErrorMessage(instance.Vars().ActionErrors),
	}
	if err = h.history.Append(ctx, record); err != nil {
		h.logger.WarnContext(ctx, "Transition history append failed",
			"order_id", cmd.OrderID().String(),
			"event", cmd.Event().String(),
			"error", err)
	}

	if err = h.recovery.Persist(ctx, instance); err != nil {
		h.logger.WarnContext(ctx, "Snapshot refresh failed after commit",
			"order_id", cmd.OrderID().String(),
			"state", target.String(),
			"error", err)
	}

	return nil
}

// actionErrorMessage flattens recorded action failures into a single audit
// message. Empty when every action of the fired transition succeeded.
func actionErrorMessage(actionErrors map[string]string) string {
	if len(actionErrors) == 0 {
		return ""
	}
	message := ""
	for phase, text := range actionErrors {
		if message != "" {
			message += "; "
		}
		message += phase + ": " + text
	}
	return message
}
