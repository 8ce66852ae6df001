package locks

import (
	"context"
	"sync"
)

// StudentLocker serializes ingestion per student so two concurrent requests
// cannot both observe a filename as un-indexed and double-embed it.
type StudentLocker interface {
	// Lock blocks until the student's ingest lock is held or ctx is done.
	// The returned function releases the lock.
	Lock(ctx context.Context, studentID string) (unlock func(), err error)
}

// KeyedMutex is an in-process StudentLocker. It is sufficient when a single
// service instance owns ingestion; multi-instance deployments need the redis
// locker instead.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyedMutex creates an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the given student, creating it on first use.
// Student mutexes are never removed; the set of students is small.
func (m *KeyedMutex) Lock(ctx context.Context, studentID string) (func(), error) {
	m.mu.Lock()
	lock, ok := m.locks[studentID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[studentID] = lock
	}
	m.mu.Unlock()

	acquired := make(chan struct{})
	go func() {
		lock.Lock()
		close(acquired)
	}()

	select {
	case <-acquired:
		return lock.Unlock, nil
	case <-ctx.Done():
		// The goroutine will still acquire the lock; release it as soon
		// as it does so no student stays locked forever.
		go func() {
			<-acquired
			lock.Unlock()
		}()
		return nil, ctx.Err()
	}
}

// compile-time check to ensure KeyedMutex implements the StudentLocker interface
var _ StudentLocker = (*KeyedMutex)(nil)
