package services

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
)

var (
	// ErrSnapshotPersist is the sentinel error for snapshot writes that
	// failed. Surfaced immediately without internal retry; the caller decides
	// whether to retry.
	ErrSnapshotPersist = errors.New("workflow snapshot persist failed")

	// ErrSnapshotRecovery is the sentinel error for snapshot reads that
	// failed after the bounded retry loop was exhausted. Fatal to the current
	// request, not to the process.
	ErrSnapshotRecovery = errors.New("workflow snapshot recovery failed")
)

// SnapshotPersistError reports a failed snapshot write for one order.
// Wraps ErrSnapshotPersist so callers can classify it with errors.Is.
type SnapshotPersistError struct {
	OrderID kernel.UUID
	Cause   error
}

// NewSnapshotPersistError creates a SnapshotPersistError wrapping the
// underlying store failure.
func NewSnapshotPersistError(orderID kernel.UUID, cause error) *SnapshotPersistError {
	return &SnapshotPersistError{OrderID: orderID, Cause: cause}
}

func (e *SnapshotPersistError) Error() string {
	return fmt.Sprintf("%s: order %s (cause: %s)", ErrSnapshotPersist, e.OrderID, e.Cause)
}

func (e *SnapshotPersistError) Unwrap() error {
	return ErrSnapshotPersist
}

// SnapshotRecoveryError reports a snapshot read that kept failing across the
// retry loop. Carries the last underlying error.
// Wraps ErrSnapshotRecovery so callers can classify it with errors.Is.
type SnapshotRecoveryError struct {
	OrderID  kernel.UUID
	Attempts int
	Cause    error
}

// NewSnapshotRecoveryError creates a SnapshotRecoveryError carrying the last
// underlying store failure after the given number of attempts.
func NewSnapshotRecoveryError(orderID kernel.UUID, attempts int, cause error) *SnapshotRecoveryError {
	return &SnapshotRecoveryError{OrderID: orderID, Attempts: attempts, Cause: cause}
}

func (e *SnapshotRecoveryError) Error() string {
	return fmt.Sprintf("%s: order %s after %d attempts (cause: %s)",
		ErrSnapshotRecovery, e.OrderID, e.Attempts, e.Cause)
}

func (e *SnapshotRecoveryError) Unwrap() error {
	return ErrSnapshotRecovery
}
