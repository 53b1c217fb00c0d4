package shared

import (
	"context"
	"time"
)

// Guard claims a named one-off task so that only one holder runs it at a
// time, across processes when the implementation is shared.
type Guard interface {
	// Acquire claims key for ttl. It returns false when another holder
	// already owns an unexpired claim.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Held reports whether key carries an unexpired claim.
	Held(ctx context.Context, key string) (bool, error)

	// Release drops the claim on key so a later Acquire can succeed.
	Release(ctx context.Context, key string) error

	// Close releases resources held by the guard
	Close() error
}
