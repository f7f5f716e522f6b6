package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ledgerbook:lock:"

// Options configures distributed lock behavior.
type Options struct {
	// Expiry is how long the lock is held before auto-expiring.
	Expiry time.Duration
	// Tries is the number of acquisition attempts before giving up.
	Tries int
	// RetryDelay is the delay between attempts.
	RetryDelay time.Duration
	// DriftFactor accounts for clock drift between Redis nodes.
	DriftFactor float64
}

// DefaultOptions suits short posting critical sections that may briefly queue
// behind a retried caller for the same transaction.
func DefaultOptions() Options {
	return Options{
		Expiry:      10 * time.Second,
		Tries:       50,
		RetryDelay:  100 * time.Millisecond,
		DriftFactor: 0.01,
	}
}

// RedisLocker is a Locker backed by the Redlock algorithm, for deployments
// running more than one ledger instance.
type RedisLocker struct {
	rs     *redsync.Redsync
	opts   Options
	logger *slog.Logger
}

var _ Locker = (*RedisLocker)(nil)

// NewRedisLocker creates a RedisLocker on top of an existing client.
func NewRedisLocker(client redis.UniversalClient, opts Options, logger *slog.Logger) (*RedisLocker, error) {
	if client == nil {
		return nil, errors.New("redis client is nil")
	}
	if opts.Expiry <= 0 {
		return nil, errors.New("lock expiry must be greater than 0")
	}
	if opts.Tries < 1 {
		return nil, errors.New("lock tries must be at least 1")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisLocker{
		rs:     redsync.New(goredis.NewPool(client)),
		opts:   opts,
		logger: logger,
	}, nil
}

// NewRedisClient parses a redis:// URL and verifies connectivity.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// WithLock implements Locker.
func (l *RedisLocker) WithLock(ctx context.Context, key string, fn func(context.Context) error) error {
	if err := validate(key, fn); err != nil {
		return err
	}

	mutex := l.rs.NewMutex(
		keyPrefix+key,
		redsync.WithExpiry(l.opts.Expiry),
		redsync.WithTries(l.opts.Tries),
		redsync.WithRetryDelay(l.opts.RetryDelay),
		redsync.WithDriftFactor(l.opts.DriftFactor),
	)

	if err := mutex.LockContext(ctx); err != nil {
		l.logger.Error("failed to acquire lock", slog.String("lock_key", key), slog.String("error", err.Error()))
		return fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	l.logger.Debug("lock acquired", slog.String("lock_key", key))

	defer func() {
		// Release with a fresh context so a cancelled request still frees the key.
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if ok, err := mutex.UnlockContext(releaseCtx); !ok || err != nil {
			l.logger.Warn("failed to release lock", slog.String("lock_key", key), slog.Bool("unlock_ok", ok), slog.Any("error", err))
		}
	}()

	return fn(ctx)
}
