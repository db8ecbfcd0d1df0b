package chat

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisSessionLock(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	lock := NewRedisSessionLock(client, time.Minute)

	release, err := lock.Acquire(ctx, "s1")
	require.NoError(t, err)

	_, err = lock.Acquire(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionBusy)

	// Other sessions are independent.
	releaseOther, err := lock.Acquire(ctx, "s2")
	require.NoError(t, err)
	releaseOther()

	release()
	assert.False(t, mr.Exists(sessionLockPrefix+"s1"))

	release, err = lock.Acquire(ctx, "s1")
	require.NoError(t, err)
	release()
}

func TestRedisSessionLockExpires(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	lock := NewRedisSessionLock(client, time.Second)

	staleRelease, err := lock.Acquire(ctx, "s1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	release, err := lock.Acquire(ctx, "s1")
	require.NoError(t, err)

	// A holder whose lock expired must not free the new holder's lock.
	staleRelease()
	assert.True(t, mr.Exists(sessionLockPrefix+"s1"))

	release()
	assert.False(t, mr.Exists(sessionLockPrefix+"s1"))
}

func TestNoopSessionLock(t *testing.T) {
	release, err := NoopSessionLock{}.Acquire(context.Background(), "s1")
	require.NoError(t, err)
	release()
}
