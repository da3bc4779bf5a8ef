package services

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/core/ports"
)

const (
	// DefaultSnapshotKeyPrefix namespaces workflow snapshot keys in the store.
	DefaultSnapshotKeyPrefix = "workflow:order:"

	// DefaultSnapshotTTL bounds the lifetime of a persisted snapshot. After
	// expiry the relational state field is the fallback source of truth.
	DefaultSnapshotTTL = 24 * time.Hour

	defaultRetryAttempts = 3
	defaultRetryBackoff  = 100 * time.Millisecond
	defaultReplayDelay   = 10 * time.Millisecond
)

// WorkflowRecoveryConfig tunes the recovery service. KeyPrefix, SnapshotTTL
// and RetryAttempts fall back to the package defaults when left zero; a zero
// RetryBackoff or ReplayDelay genuinely means no sleep, which is what tests
// use. Production wiring starts from DefaultWorkflowRecoveryConfig.
type WorkflowRecoveryConfig struct {
	KeyPrefix     string
	SnapshotTTL   time.Duration
	RetryAttempts int
	RetryBackoff  time.Duration
	ReplayDelay   time.Duration
}

// DefaultWorkflowRecoveryConfig returns the reference configuration: 24h
// snapshot TTL, three read attempts with 100ms linear backoff, and a small
// pacing delay between replayed events.
func DefaultWorkflowRecoveryConfig() WorkflowRecoveryConfig {
	return WorkflowRecoveryConfig{
		KeyPrefix:     DefaultSnapshotKeyPrefix,
		SnapshotTTL:   DefaultSnapshotTTL,
		RetryAttempts: defaultRetryAttempts,
		RetryBackoff:  defaultRetryBackoff,
		ReplayDelay:   defaultReplayDelay,
	}
}

func (c WorkflowRecoveryConfig) withDefaults() WorkflowRecoveryConfig {
	if c.KeyPrefix == "" {
		c.KeyPrefix = DefaultSnapshotKeyPrefix
	}
	if c.SnapshotTTL <= 0 {
		c.SnapshotTTL = DefaultSnapshotTTL
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = defaultRetryAttempts
	}
	return c
}

// WorkflowRecoveryService persists workflow snapshots and reconstructs live
// instances from them. Only the state name is ever stored, so restoring an
// instance replays the precomputed event path from Created to the stored
// state — actions included — to leave the extended-variable bag consistent
// before the next fire. Storage compactness is traded for a recomputation
// cost bounded by workflow depth (five events at most).
type WorkflowRecoveryService struct {
	store  ports.SnapshotStore
	cfg    WorkflowRecoveryConfig
	logger *slog.Logger
}

// NewWorkflowRecoveryService creates the recovery service over a snapshot
// store.
func NewWorkflowRecoveryService(
	store ports.SnapshotStore,
	cfg WorkflowRecoveryConfig,
	logger *slog.Logger,
) *WorkflowRecoveryService {
	return &WorkflowRecoveryService{
		store:  store,
		cfg:    cfg.withDefaults(),
		logger: logger.With("component", "workflow_recovery"),
	}
}

// SnapshotKey returns the store key for an order's snapshot.
func (s *WorkflowRecoveryService) SnapshotKey(orderID kernel.UUID) string {
	return s.cfg.KeyPrefix + orderID.String()
}

// Persist writes the instance's current state name under the order's key with
// the configured TTL. Side effect only; a failure is wrapped into a
// SnapshotPersistError and surfaced without retry — writes are cheap and
// idempotent from the caller's perspective, so retrying is the caller's call.
func (s *WorkflowRecoveryService) Persist(ctx context.Context, instance *workflow.Instance) error {
	key := s.SnapshotKey(instance.ID())
	if err := s.store.Set(ctx, key, instance.CurrentState().String(), s.cfg.SnapshotTTL); err != nil {
		return NewSnapshotPersistError(instance.ID(), err)
	}
	return nil
}

// Restore reads the stored state for an order and rebuilds a live instance.
//
// An absent key yields a freshly started instance in Created: that is the
// documented default for new or expired snapshots, not an error. A stored
// value outside the state enumeration is treated the same way, with a
// warning. A stored state that differs from Created is reached by replaying
// its precomputed event path; if an event is unexpectedly refused mid-path
// the instance is returned in whatever state it reached, with a warning, and
// the caller's subsequent validation surfaces the mismatch.
//
// Store read failures are retried up to the configured number of attempts
// with linearly increasing backoff; exhaustion returns a
// SnapshotRecoveryError carrying the last underlying error.
func (s *WorkflowRecoveryService) Restore(ctx context.Context, orderID kernel.UUID) (*workflow.Instance, error) {
	value, found, err := s.getWithRetry(ctx, s.SnapshotKey(orderID))
	if err != nil {
		return nil, NewSnapshotRecoveryError(orderID, s.cfg.RetryAttempts, err)
	}

	if !found {
		instance := workflow.NewInstance(orderID)
		instance.Start()
		return instance, nil
	}

	stored, parseErr := order.StateFromString(value)
	if parseErr != nil {
		s.logger.WarnContext(ctx, "Discarding malformed workflow snapshot",
			"order_id", orderID.String(), "value", value)
		instance := workflow.NewInstance(orderID)
		instance.Start()
		return instance, nil
	}

	instance, err := s.Materialize(ctx, orderID, stored)
	if err != nil {
		return nil, NewSnapshotRecoveryError(orderID, s.cfg.RetryAttempts, err)
	}
	return instance, nil
}

// Materialize rebuilds a live instance at the given state without consulting
// the store, replaying the state's precomputed event path from Created. The
// only error it can return is context cancellation during replay pacing.
func (s *WorkflowRecoveryService) Materialize(
	ctx context.Context,
	orderID kernel.UUID,
	state order.State,
) (*workflow.Instance, error) {
	instance := workflow.NewInstance(orderID)
	instance.Start()

	if state == instance.CurrentState() {
		return instance, nil
	}

	path, ok := workflow.ReplayPath(state)
	if !ok {
		s.logger.WarnContext(ctx, "No replay path for stored state",
			"order_id", orderID.String(), "state", state.String())
		return instance, nil
	}

	for _, event := range path {
		if err := s.pace(ctx); err != nil {
			return nil, err
		}
		if fireErr := instance.Fire(event); fireErr != nil {
			s.logger.WarnContext(ctx, "Replay stopped early on refused event",
				"order_id", orderID.String(),
				"event", event.String(),
				"reached", instance.CurrentState().String(),
				"stored", state.String())
			return instance, nil
		}
	}

	return instance, nil
}

// getWithRetry reads a key, retrying transport failures with linear backoff
// (backoff × attempt number between attempts).
func (s *WorkflowRecoveryService) getWithRetry(ctx context.Context, key string) (string, bool, error) {
	var lastErr error
	for attempt := 1; attempt <= s.cfg.RetryAttempts; attempt++ {
		value, found, err := s.store.Get(ctx, key)
		if err == nil {
			return value, found, nil
		}
		lastErr = err

		s.logger.WarnContext(ctx, "Snapshot read failed",
			"key", key, "attempt", attempt, "error", err)

		if attempt < s.cfg.RetryAttempts {
			if sleepErr := sleepFor(ctx, time.Duration(attempt)*s.cfg.RetryBackoff); sleepErr != nil {
				return "", false, sleepErr
			}
		}
	}
	return "", false, lastErr
}

func (s *WorkflowRecoveryService) pace(ctx context.Context) error {
	return sleepFor(ctx, s.cfg.ReplayDelay)
}

// sleepFor blocks for d or until the context is cancelled, whichever comes
// first. The small fixed sleeps in recovery must never outlive the request.
func sleepFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
