package storage

import (
	"context"
	"fmt"
	"time"

	"spotguide/internal/storage"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const lockPrefix = "photo:reserve:"

// releaseScript deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ReservationLocker takes short-lived Redis locks on photo hash and path values
// so that two uploads of the same content cannot both pass the uniqueness
// check. The database unique constraints still decide the final outcome.
type ReservationLocker struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewReservationLocker(client redis.Cmdable, ttl time.Duration) *ReservationLocker {
	return &ReservationLocker{
		client: client,
		ttl:    ttl,
	}
}

// Acquire locks every key or none of them. The returned release func is safe
// to call more than once.
func (l *ReservationLocker) Acquire(ctx context.Context, keys ...string) (func(context.Context), error) {
	const op = "storage.redis.ReservationLocker.Acquire"

	token := uuid.NewString()
	held := make([]string, 0, len(keys))

	release := func(ctx context.Context) {
		for _, k := range held {
			_ = releaseScript.Run(ctx, l.client, []string{k}, token).Err()
		}
		held = held[:0]
	}

	for _, k := range keys {
		key := lockPrefix + k

		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			release(ctx)
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if !ok {
			release(ctx)
			return nil, fmt.Errorf("%s: %s: %w", op, k, storage.ErrLockNotHeld)
		}

		held = append(held, key)
	}

	return release, nil
}
