package concurrency

import (
	"context"
	"sync"
)

// LockManager hands out one lock per key. Entries are reference counted and
// dropped once no caller holds or waits on them.
type LockManager struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	sem  chan struct{}
	refs int
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{locks: make(map[string]*keyLock)}
}

// Lock blocks until the key's lock is held or ctx is done. The returned
// function releases the lock and must be called exactly once.
func (lm *LockManager) Lock(ctx context.Context, key string) (func(), error) {
	kl := lm.acquire(key)

	select {
	case kl.sem <- struct{}{}:
	case <-ctx.Done():
		lm.release(key)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-kl.sem
			lm.release(key)
		})
	}, nil
}

func (lm *LockManager) acquire(key string) *keyLock {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	kl, ok := lm.locks[key]
	if !ok {
		kl = &keyLock{sem: make(chan struct{}, 1)}
		lm.locks[key] = kl
	}
	kl.refs++
	return kl
}

func (lm *LockManager) release(key string) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	kl := lm.locks[key]
	kl.refs--
	if kl.refs == 0 {
		delete(lm.locks, key)
	}
}

// Len returns the number of keys currently held or waited on
func (lm *LockManager) Len() int {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return len(lm.locks)
}
