// Package store provides the in-memory user collection for goUserRegistry.
package store

import (
	"sync"

	"github.com/chybatronik/goUserRegistry/internal/models"
	pkgerrors "github.com/chybatronik/goUserRegistry/pkg/errors"
)

// UserStore is an ordered, append-only collection of users that lives for
// the lifetime of the process. IDs come from a counter owned by the store
// and advance only on successful inserts.
type UserStore struct {
	mu     sync.RWMutex
	users  []models.User
	byName map[string]int
	nextID int
}

// NewUserStore creates an empty store whose first id is 1.
func NewUserStore() *UserStore {
	return &UserStore{
		users:  make([]models.User, 0, 16),
		byName: make(map[string]int),
		nextID: 1,
	}
}

// Exists reports whether username is taken. Matching is case-sensitive.
func (s *UserStore) Exists(username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byName[username]
	return ok
}

// Insert appends user with the next id and returns the stored copy.
// Any ID set on the argument is ignored.
func (s *UserStore) Insert(user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byName[user.Username]; ok {
		return models.User{}, pkgerrors.ErrDuplicateUsername
	}

	user.ID = s.nextID
	s.nextID++
	s.byName[user.Username] = len(s.users)
	s.users = append(s.users, user)
	return user, nil
}

// Snapshot returns a copy of all users in insertion order.
func (s *UserStore) Snapshot() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out
}

// Count returns the number of stored users.
func (s *UserStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
