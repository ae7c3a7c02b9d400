package store

// Store bundles the in-memory state owned by the service: users, the
// double-entry ledger, the idempotency cache and the per-user lock
// manager. It is injected into the service layer rather than accessed as
// global state, so tests can reset between runs.
type Store struct {
	Users       *UserStore
	Ledger      *LedgerStore
	Idempotency *IdempotencyStore
	Locks       *LockManager
}

func NewStore() *Store {
	return &Store{
		Users:       NewUserStore(),
		Ledger:      NewLedgerStore(),
		Idempotency: NewIdempotencyStore(),
		Locks:       NewLockManager(),
	}
}

// ResetAll clears every store. Test helper; never called while requests
// are in flight.
func (s *Store) ResetAll() {
	s.Users.Reset()
	s.Ledger.Reset()
	s.Idempotency.Reset()
	s.Locks.Reset()
}
