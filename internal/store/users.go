package store

import (
	"sync"

	"pandar-wallet/internal/domain"
	"pandar-wallet/internal/errors"
)

// UserStore holds registered users with a secondary index by email.
type UserStore struct {
	mu     sync.RWMutex
	users  map[string]domain.User
	emails map[string]string // email -> user id
}

func NewUserStore() *UserStore {
	return &UserStore{
		users:  make(map[string]domain.User),
		emails: make(map[string]string),
	}
}

// Create registers the user, rejecting duplicate emails atomically.
func (s *UserStore) Create(user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.emails[user.Email]; ok {
		return errors.ErrEmailExists
	}
	s.users[user.ID] = user
	s.emails[user.Email] = user.ID
	return nil
}

func (s *UserStore) GetByID(id string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	return user, ok
}

func (s *UserStore) GetByEmail(email string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[email]
	if !ok {
		return domain.User{}, false
	}
	user, ok := s.users[id]
	return user, ok
}

func (s *UserStore) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.users[id]
	return ok
}

func (s *UserStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[string]domain.User)
	s.emails = make(map[string]string)
}
