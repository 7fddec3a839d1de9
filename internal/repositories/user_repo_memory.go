package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"freshcart/internal/apperr"
	"freshcart/internal/models"
)

// MemoryUserRepository is an in-memory implementation of UserRepository.
type MemoryUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMemoryUserRepository creates a new instance of MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[string]models.User),
	}
}

func (r *MemoryUserRepository) emailTaken(email, exceptID string) bool {
	for _, u := range r.users {
		if u.ID != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

// Create adds a new user.
func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(user.Email, "") {
		return apperr.Duplicate("email '%s' already registered", user.Email)
	}
	if user.ID == "" {
		user.ID = newID()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

// GetByID returns a user by ID.
func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperr.NotFound("user with ID %s not found", id)
	}
	return &user, nil
}

// GetByEmail returns a user by email, ignoring case.
func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, apperr.NotFound("user with email %s not found", email)
}

// GetByIDs returns the users that exist among ids, keyed by ID.
func (r *MemoryUserRepository) GetByIDs(_ context.Context, ids []string) (map[string]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := make(map[string]*models.User, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			found[id] = &u
		}
	}
	return found, nil
}

// List returns all users ordered by creation time.
func (r *MemoryUserRepository) List(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		list = append(list, u)
	}
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

// Update replaces an existing user.
func (r *MemoryUserRepository) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return apperr.NotFound("user with ID %s not found for update", user.ID)
	}
	if r.emailTaken(user.Email, user.ID) {
		return apperr.Duplicate("email '%s' already registered", user.Email)
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

// Delete removes a user by ID.
func (r *MemoryUserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return apperr.NotFound("user with ID %s not found for deletion", id)
	}
	delete(r.users, id)
	return nil
}

// Count returns the number of users.
func (r *MemoryUserRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

// HasAdmin reports whether any admin account exists.
func (r *MemoryUserRepository) HasAdmin(_ context.Context) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.IsAdmin {
			return true, nil
		}
	}
	return false, nil
}
