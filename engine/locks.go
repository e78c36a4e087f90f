package engine

import (
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// documentLocks enforces at-most-one in-flight analysis per document.
// Each document gets a one-permit semaphore created on demand and
// reclaimed when the last interested run releases it.
type documentLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*documentLock
}

type documentLock struct {
	sem  *semaphore.Weighted
	refs int
}

func newDocumentLocks() *documentLocks {
	return &documentLocks{
		locks: make(map[uuid.UUID]*documentLock),
	}
}

// TryLock attempts to acquire the exclusion token for a document without
// blocking. A false return means another analysis for the same document
// is in flight.
func (d *documentLocks) TryLock(id uuid.UUID) bool {
	d.mu.Lock()
	lock, ok := d.locks[id]
	if !ok {
		lock = &documentLock{sem: semaphore.NewWeighted(1)}
		d.locks[id] = lock
	}
	lock.refs++
	d.mu.Unlock()

	if lock.sem.TryAcquire(1) {
		return true
	}

	d.release(id)
	return false
}

// Unlock releases the exclusion token acquired by TryLock.
func (d *documentLocks) Unlock(id uuid.UUID) {
	d.mu.Lock()
	lock := d.locks[id]
	d.mu.Unlock()

	lock.sem.Release(1)
	d.release(id)
}

func (d *documentLocks) release(id uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	lock := d.locks[id]
	lock.refs--
	if lock.refs == 0 {
		delete(d.locks, id)
	}
}
