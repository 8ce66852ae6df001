package locks

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	lockKeyPrefix = "ingest_lock:"
	lockTTL       = 2 * time.Minute
	retryInterval = 100 * time.Millisecond
)

// unlockScript releases the lease only when the caller still owns it, so an
// expired lease taken over by another instance is never deleted by mistake.
const unlockScript = `if redis.call("get", KEYS[1]) == ARGV[1] then return redis.call("del", KEYS[1]) else return 0 end`

// RedisLocker is a StudentLocker backed by a redis SET NX lease. It
// coordinates ingestion across multiple service instances.
type RedisLocker struct {
	client *redis.Client
}

// NewRedisLocker creates a RedisLocker over the given client.
func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

// Lock polls SET NX until the lease is acquired or ctx is done. The lease
// carries a TTL so a crashed holder cannot block a student indefinitely.
func (l *RedisLocker) Lock(ctx context.Context, studentID string) (func(), error) {
	key := lockKeyPrefix + studentID
	token := uuid.New().String()

	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, lockTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("acquiring ingest lock for student %q: %w", studentID, err)
		}
		if ok {
			unlock := func() {
				l.client.Eval(context.Background(), unlockScript, []string{key}, token)
			}
			return unlock, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// compile-time check to ensure RedisLocker implements the StudentLocker interface
var _ StudentLocker = (*RedisLocker)(nil)
