package projection

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	appsync "github.com/ovnstore/backend/internal/application/sync"
)

const resyncLockKey = "sync:resync:lock"

// releaseScript deletes the lock only if this process still holds it,
// so an expired lock taken over by another replica is never released here.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisResyncLock serializes full rebuilds across replicas sharing one
// document store. The lock carries a TTL so a crashed holder cannot block
// rebuilds forever.
type RedisResyncLock struct {
	client *redis.Client
	token  string
	ttl    time.Duration
}

// NewRedisResyncLock creates a lock with the given TTL
func NewRedisResyncLock(client *redis.Client, ttl time.Duration) *RedisResyncLock {
	return &RedisResyncLock{
		client: client,
		token:  uuid.New().String(),
		ttl:    ttl,
	}
}

// Acquire tries to take the lock, reporting whether it was obtained
func (l *RedisResyncLock) Acquire(ctx context.Context) (bool, error) {
	ok, err := l.client.SetNX(ctx, resyncLockKey, l.token, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire resync lock: %w", err)
	}
	return ok, nil
}

// Release gives the lock back if this process still holds it
func (l *RedisResyncLock) Release(ctx context.Context) error {
	if err := releaseScript.Run(ctx, l.client, []string{resyncLockKey}, l.token).Err(); err != nil {
		return fmt.Errorf("release resync lock: %w", err)
	}
	return nil
}

var _ appsync.ResyncLock = (*RedisResyncLock)(nil)
