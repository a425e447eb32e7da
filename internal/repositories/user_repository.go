package repositories

import (
	"fmt"
	"sync"

	"delight/internal/models"

	"github.com/google/uuid"
)

// UserRepository defines the interface for credential lookups.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
}

// StaticUserRepository is an in-memory implementation of UserRepository.
// The credential table is seeded once at startup and injected into the
// auth service, so tests can substitute their own fixtures.
type StaticUserRepository struct {
	users map[string]models.User // keyed by username
	mu    sync.RWMutex
}

// NewStaticUserRepository creates an empty credential table.
func NewStaticUserRepository() *StaticUserRepository {
	return &StaticUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a user to the table.
func (r *StaticUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Username]; ok {
		return fmt.Errorf("user with username %s already exists", user.Username)
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	r.users[user.Username] = *user
	return nil
}

// GetByUsername returns the user for the given username.
func (r *StaticUserRepository) GetByUsername(username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, fmt.Errorf("user with username %s not found", username)
	}
	return &user, nil
}
