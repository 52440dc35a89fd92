package wheatgrass

import "sync"

// LockManager hands out one mutex per key, so that two goroutines resolving
// the same deferred binding concurrently instantiate it only once.
type LockManager struct {
	mu    sync.Mutex
	locks map[Key]*sync.Mutex
}

func NewLockManager() *LockManager {
	return &LockManager{
		locks: make(map[Key]*sync.Mutex),
	}
}

func (lm *LockManager) GetLockFor(key Key) *sync.Mutex {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if lock, exists := lm.locks[key]; exists {
		return lock
	}

	lock := &sync.Mutex{}
	lm.locks[key] = lock
	return lock
}

func (lm *LockManager) ReleaseLock(key Key) {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	delete(lm.locks, key)
}
