package lock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	// ErrEmptyLockKey is returned when an empty lock key is provided.
	ErrEmptyLockKey = errors.New("lock key cannot be empty")
	// ErrNilLockFn is returned when a nil function is passed to WithLock.
	ErrNilLockFn = errors.New("lock function is nil")
)

// Locker serializes work per key. Work under different keys runs in parallel.
type Locker interface {
	// WithLock runs fn while holding the lock for key and returns fn's error.
	WithLock(ctx context.Context, key string, fn func(context.Context) error) error
}

func validate(key string, fn func(context.Context) error) error {
	if fn == nil {
		return ErrNilLockFn
	}
	if strings.TrimSpace(key) == "" {
		return ErrEmptyLockKey
	}
	return nil
}

// KeyedMutex is an in-process Locker. Waiting for a held key respects context cancellation.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	sem  chan struct{}
	refs int
}

// NewKeyedMutex creates an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyedEntry)}
}

var _ Locker = (*KeyedMutex)(nil)

// WithLock implements Locker.
func (m *KeyedMutex) WithLock(ctx context.Context, key string, fn func(context.Context) error) error {
	if err := validate(key, fn); err != nil {
		return err
	}

	e := m.ref(key)
	defer m.unref(key, e)

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("failed to acquire lock %s: %w", key, ctx.Err())
	}
	defer func() { <-e.sem }()

	return fn(ctx)
}

func (m *KeyedMutex) ref(key string) *keyedEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.locks[key]
	if !ok {
		e = &keyedEntry{sem: make(chan struct{}, 1)}
		m.locks[key] = e
	}
	e.refs++
	return e
}

func (m *KeyedMutex) unref(key string, e *keyedEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(m.locks, key)
	}
}

// size reports the number of keys currently tracked.
func (m *KeyedMutex) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}
