package driven

import (
	"context"
	"time"
)

// RunLock defines the driven port for a cross-instance mutual exclusion lock.
// TryAcquire returns false without error when another holder owns key.
type RunLock interface {
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
