package ports

import (
	"context"
	"time"
)

// SnapshotStore is the key-value store holding workflow snapshots. Only
// single-key atomic operations are assumed; no multi-key transactions.
// Snapshots expire after their TTL, at which point the order's relational
// state field is the fallback source of truth.
type SnapshotStore interface {
	// Set writes value under key with the given TTL, replacing any prior value.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Get reads the value under key. found is false for an absent or expired
	// key; err is reserved for transport/storage failures.
	Get(ctx context.Context, key string) (value string, found bool, err error)
}
