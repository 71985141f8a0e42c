package locking_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/retail_ledger/internal/platform/locking"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis starts a miniredis server and a client for it.
func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func fastOptions() locking.LockOptions {
	return locking.LockOptions{Expiry: 2 * time.Second, Tries: 3, RetryDelay: 10 * time.Millisecond}
}

func TestAccountKeys(t *testing.T) {
	keys := locking.AccountKeys([]string{"b", "a", "", "b"})

	assert.Equal(t, []string{"lock:account:a", "lock:account:b"}, keys)
}

func TestWithAccountLock_RunsFnAndReleases(t *testing.T) {
	mr, client := setupTestRedis(t)
	locker := locking.NewRedisLocker(client, fastOptions())

	err := locker.WithAccountLock(context.Background(), []string{"acc-2", "acc-1"}, func(ctx context.Context) error {
		assert.True(t, mr.Exists("lock:account:acc-1"))
		assert.True(t, mr.Exists("lock:account:acc-2"))
		return nil
	})

	require.NoError(t, err)
	assert.False(t, mr.Exists("lock:account:acc-1"))
	assert.False(t, mr.Exists("lock:account:acc-2"))
}

func TestWithAccountLock_ReturnsFnErrorUnchanged(t *testing.T) {
	_, client := setupTestRedis(t)
	locker := locking.NewRedisLocker(client, fastOptions())

	err := locker.WithAccountLock(context.Background(), []string{"acc-1"}, func(ctx context.Context) error {
		return assert.AnError
	})

	assert.Same(t, assert.AnError, err)
}

func TestWithAccountLock_BusyAccount(t *testing.T) {
	mr, client := setupTestRedis(t)
	require.NoError(t, mr.Set("lock:account:acc-1", "someone-else"))
	locker := locking.NewRedisLocker(client, fastOptions())
	ran := false

	err := locker.WithAccountLock(context.Background(), []string{"acc-1", "acc-0"}, func(ctx context.Context) error {
		ran = true
		return nil
	})

	assert.ErrorIs(t, err, locking.ErrLockNotAcquired)
	assert.False(t, ran)
	// the lock taken before the busy one is released again
	assert.False(t, mr.Exists("lock:account:acc-0"))
	assert.True(t, mr.Exists("lock:account:acc-1"))
}

func TestWithAccountLock_SerialisesOverlappingAccounts(t *testing.T) {
	_, client := setupTestRedis(t)
	opts := fastOptions()
	opts.Tries = 200
	locker := locking.NewRedisLocker(client, opts)

	var inside, maxInside atomic.Int32
	var wg sync.WaitGroup
	for i := range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids := []string{"shared", "own-" + string(rune('a'+i))}
			err := locker.WithAccountLock(context.Background(), ids, func(ctx context.Context) error {
				n := inside.Add(1)
				for {
					m := maxInside.Load()
					if n <= m || maxInside.CompareAndSwap(m, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				inside.Add(-1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside.Load())
}

func TestWithAccountLock_CancelledContext(t *testing.T) {
	mr, client := setupTestRedis(t)
	require.NoError(t, mr.Set("lock:account:acc-1", "someone-else"))
	opts := fastOptions()
	opts.Tries = 1000
	locker := locking.NewRedisLocker(client, opts)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := locker.WithAccountLock(ctx, []string{"acc-1"}, func(ctx context.Context) error { return nil })

	assert.True(t, errors.Is(err, context.DeadlineExceeded) || errors.Is(err, locking.ErrLockNotAcquired))
}
