package store

import (
	"sync"
	"time"

	"pandar-wallet/internal/domain"
)

// CachedResult is the memoized outcome of a successfully processed
// mutating request. Failed attempts are never stored, so a retry after a
// failure re-executes against current state.
type CachedResult struct {
	Transaction *domain.Transaction
	CreatedAt   time.Time
}

// IdempotencyStore maps (user, operation, client token) to the result
// produced the first time that triple was seen. Entries are kept for the
// life of the process.
//
// Callers must check and store under the user's lock, otherwise two
// requests with the same token could both miss and both mutate.
type IdempotencyStore struct {
	mu    sync.RWMutex
	cache map[string]CachedResult
}

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{
		cache: make(map[string]CachedResult),
	}
}

// BuildKey is deterministic and collision-free for distinct triples;
// user ids and operation names never contain ':'.
func (s *IdempotencyStore) BuildKey(userID, operation, token string) string {
	return userID + ":" + operation + ":" + token
}

func (s *IdempotencyStore) Get(key string) (CachedResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.cache[key]
	return result, ok
}

func (s *IdempotencyStore) Set(key string, result CachedResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache[key] = result
}

func (s *IdempotencyStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache = make(map[string]CachedResult)
}
