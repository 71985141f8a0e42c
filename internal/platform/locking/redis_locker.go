// Package locking serialises ledger mutations on the same accounts across processes.
package locking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	portssvc "github.com/SscSPs/retail_ledger/internal/core/ports/services"
	"github.com/SscSPs/retail_ledger/internal/middleware"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "lock:account:"

// ErrLockNotAcquired is returned when an account lock stays busy for every try.
var ErrLockNotAcquired = errors.New("account lock not acquired")

// LockOptions tunes lock acquisition.
type LockOptions struct {
	// Expiry bounds how long a crashed holder can block an account.
	Expiry      time.Duration
	Tries       int
	RetryDelay  time.Duration
	DriftFactor float64
}

// DefaultLockOptions holds an account lock for at most 8 seconds and tries 32
// times, 100ms apart.
func DefaultLockOptions() LockOptions {
	return LockOptions{
		Expiry:      8 * time.Second,
		Tries:       32,
		RetryDelay:  100 * time.Millisecond,
		DriftFactor: 0.01,
	}
}

// RedisLocker takes one redsync mutex per account.
type RedisLocker struct {
	rs   *redsync.Redsync
	opts LockOptions
}

var _ portssvc.AccountLocker = (*RedisLocker)(nil)

// NewRedisLocker creates a locker over client. Zero fields of opts take their defaults.
func NewRedisLocker(client redis.UniversalClient, opts LockOptions) *RedisLocker {
	def := DefaultLockOptions()
	if opts.Expiry <= 0 {
		opts.Expiry = def.Expiry
	}
	if opts.Tries < 1 {
		opts.Tries = def.Tries
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = def.RetryDelay
	}
	if opts.DriftFactor <= 0 || opts.DriftFactor >= 1 {
		opts.DriftFactor = def.DriftFactor
	}
	return &RedisLocker{rs: redsync.New(goredis.NewPool(client)), opts: opts}
}

// NewRedisClient connects to the Redis server at redisURL (redis://host:port/db).
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// AccountKeys returns the lock keys for accountIDs, sorted and without duplicates.
// Taking locks in this order keeps two transfers between the same pair of accounts
// from deadlocking.
func AccountKeys(accountIDs []string) []string {
	keys := make([]string, 0, len(accountIDs))
	for _, id := range accountIDs {
		if id != "" {
			keys = append(keys, keyPrefix+id)
		}
	}
	slices.Sort(keys)
	return slices.Compact(keys)
}

// WithAccountLock runs fn while holding the lock of every account in accountIDs.
// The error of fn is returned as is.
func (l *RedisLocker) WithAccountLock(ctx context.Context, accountIDs []string, fn func(ctx context.Context) error) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	keys := AccountKeys(accountIDs)

	held := make([]*redsync.Mutex, 0, len(keys))
	defer func() {
		for _, m := range slices.Backward(held) {
			if ok, err := m.UnlockContext(context.WithoutCancel(ctx)); !ok || err != nil {
				logger.Warn("Failed to release account lock",
					slog.String("lock_key", m.Name()),
					slog.Bool("unlock_ok", ok),
					slog.Any("error", err))
			}
		}
	}()

	for _, key := range keys {
		m := l.rs.NewMutex(key,
			redsync.WithExpiry(l.opts.Expiry),
			redsync.WithTries(l.opts.Tries),
			redsync.WithRetryDelay(l.opts.RetryDelay),
			redsync.WithDriftFactor(l.opts.DriftFactor),
		)
		if err := m.LockContext(ctx); err != nil {
			logger.Warn("Failed to acquire account lock", slog.String("lock_key", key), slog.String("error", err.Error()))
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return fmt.Errorf("%w: %s: %v", ErrLockNotAcquired, key, err)
		}
		held = append(held, m)
	}
	logger.Debug("Account locks acquired", slog.Any("lock_keys", keys))

	return fn(ctx)
}
