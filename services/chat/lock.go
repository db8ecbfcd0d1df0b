package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const sessionLockPrefix = "chat:lock:"

// ErrSessionBusy is returned while another message for the same session is being handled.
var ErrSessionBusy = errors.New("session is busy")

// SessionLock serializes message handling per session.
type SessionLock interface {
	Acquire(ctx context.Context, sessionID string) (release func(), err error)
}

// Deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

type RedisSessionLock struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionLock(client *redis.Client, ttl time.Duration) *RedisSessionLock {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &RedisSessionLock{client: client, ttl: ttl}
}

func (l *RedisSessionLock) Acquire(ctx context.Context, sessionID string) (func(), error) {
	key := sessionLockPrefix + sessionID
	token := uuid.New().String()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire session lock: %w", err)
	}
	if !ok {
		return nil, ErrSessionBusy
	}

	release := func() {
		// Released even if the request context was cancelled.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(ctx, l.client, []string{key}, token).Err()
	}
	return release, nil
}

// NoopSessionLock never blocks; for single-process deployments without Redis.
type NoopSessionLock struct{}

func (NoopSessionLock) Acquire(context.Context, string) (func(), error) {
	return func() {}, nil
}
