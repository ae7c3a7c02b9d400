package store

import "sync"

// LockManager provides critical sections scoped to an arbitrary key.
// Work submitted for the same key runs one at a time in submission
// order; work for different keys never blocks.
//
// Each key holds the tail of a chain of signal channels. A new unit of
// work swaps in its own channel as the tail, waits for its predecessor's
// channel to close, runs, and closes its own. Tail entries stay in the
// map after the chain drains.
type LockManager struct {
	mu    sync.Mutex
	tails map[string]chan struct{}
}

func NewLockManager() *LockManager {
	return &LockManager{
		tails: make(map[string]chan struct{}),
	}
}

// WithLock runs fn once every earlier unit of work for key has finished,
// and returns fn's error. The lock is released whether fn returns or
// panics, so a failing unit of work never blocks later ones.
func (m *LockManager) WithLock(key string, fn func() error) error {
	m.mu.Lock()
	prev := m.tails[key]
	turn := make(chan struct{})
	m.tails[key] = turn
	m.mu.Unlock()

	if prev != nil {
		<-prev
	}
	defer close(turn)

	return fn()
}

// Reset drops all lock chains. Only safe when no work is in flight.
func (m *LockManager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tails = make(map[string]chan struct{})
}
