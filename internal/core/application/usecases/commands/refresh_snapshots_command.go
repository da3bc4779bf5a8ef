package commands

import (
	"errors"

	"orderflow/internal/pkg/guard"
)

var ErrRefreshSnapshotsCommandIsNotConstructed = errors.New(
	"RefreshSnapshotsCommand must be created via NewRefreshSnapshotsCommand constructor",
)

// RefreshSnapshotsCommand triggers a rewrite of the workflow snapshots of all
// orders that can still accept events. Rewriting resets each snapshot's TTL
// so live orders never fall back to the slower relational recovery path.
//
// Example:
//
//	cmd := NewRefreshSnapshotsCommand()
//	handler := NewRefreshSnapshotsCommandHandler(uowFactory, recovery, logger)
//
//	// Run periodically from a scheduler
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Snapshot refresh failed: %v", err)
//	}
type RefreshSnapshotsCommand struct {
	guard guard.ConstructorGuard
}

// NewRefreshSnapshotsCommand creates a command to refresh all live snapshots.
// This is a parameterless command that processes all non-terminal orders.
func NewRefreshSnapshotsCommand() RefreshSnapshotsCommand {
	command := RefreshSnapshotsCommand{
		guard: guard.NewConstructorGuard(),
	}

	return command
}

// Validate ensures the command was created through the constructor.
// Returns ErrRefreshSnapshotsCommandIsNotConstructed if validation fails.
func (c *RefreshSnapshotsCommand) Validate() error {
	return c.guard.Validate(ErrRefreshSnapshotsCommandIsNotConstructed)
}
