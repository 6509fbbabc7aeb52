package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisLocker(client), mr
}

func TestRedisLocker_SecondAcquireFails(t *testing.T) {
	locker, _ := newTestLocker(t)
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "appointments:2025-03-03", time.Minute)
	require.NoError(t, err)

	_, err = locker.Acquire(ctx, "appointments:2025-03-03", time.Minute)
	assert.ErrorIs(t, err, ErrNotAcquired)

	// другая дата не заблокирована
	otherRelease, err := locker.Acquire(ctx, "appointments:2025-03-04", time.Minute)
	require.NoError(t, err)
	require.NoError(t, otherRelease(ctx))

	require.NoError(t, release(ctx))

	release, err = locker.Acquire(ctx, "appointments:2025-03-03", time.Minute)
	require.NoError(t, err)
	require.NoError(t, release(ctx))
}

func TestRedisLocker_ExpiresAfterTTL(t *testing.T) {
	locker, mr := newTestLocker(t)
	ctx := context.Background()

	_, err := locker.Acquire(ctx, "appointments:2025-03-03", 5*time.Second)
	require.NoError(t, err)

	mr.FastForward(6 * time.Second)

	_, err = locker.Acquire(ctx, "appointments:2025-03-03", 5*time.Second)
	assert.NoError(t, err)
}

func TestRedisLocker_StaleReleaseKeepsNewOwner(t *testing.T) {
	locker, mr := newTestLocker(t)
	ctx := context.Background()

	staleRelease, err := locker.Acquire(ctx, "appointments:2025-03-03", time.Second)
	require.NoError(t, err)
	mr.FastForward(2 * time.Second)

	_, err = locker.Acquire(ctx, "appointments:2025-03-03", time.Minute)
	require.NoError(t, err)

	// истекшая блокировка не должна снять чужую
	require.NoError(t, staleRelease(ctx))
	assert.True(t, mr.Exists("lock:appointments:2025-03-03"))
}

func TestConnect_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := Connect(context.Background(), addr, "", 0)
	assert.ErrorIs(t, err, ErrRedis)
}

func TestNopLocker(t *testing.T) {
	release, err := NopLocker{}.Acquire(context.Background(), "any", time.Second)
	require.NoError(t, err)
	assert.NoError(t, release(context.Background()))
}

func TestRedisLocker_Ping(t *testing.T) {
	locker, mr := newTestLocker(t)
	ctx := context.Background()

	require.NoError(t, locker.Ping(ctx))

	mr.Close()
	assert.ErrorIs(t, locker.Ping(ctx), ErrRedis)
}
