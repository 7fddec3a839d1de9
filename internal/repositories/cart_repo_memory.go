package repositories

import (
	"context"
	"sync"
	"time"

	"freshcart/internal/models"
)

// MemoryCartRepository is an in-memory implementation of CartRepository.
type MemoryCartRepository struct {
	carts map[string]models.Cart
	mu    sync.RWMutex
}

// NewMemoryCartRepository creates a new instance of MemoryCartRepository.
func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{
		carts: make(map[string]models.Cart),
	}
}

// Get returns the user's cart, or an empty one.
func (r *MemoryCartRepository) Get(_ context.Context, userID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[userID]
	if !ok {
		return models.NewCart(userID), nil
	}
	cart = cloneCart(cart)
	return &cart, nil
}

// Save upserts the cart.
func (r *MemoryCartRepository) Save(_ context.Context, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart.UpdatedAt = time.Now()
	r.carts[cart.UserID] = cloneCart(*cart)
	return nil
}

// Clear empties the user's cart.
func (r *MemoryCartRepository) Clear(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart := models.NewCart(userID)
	cart.UpdatedAt = time.Now()
	r.carts[userID] = *cart
	return nil
}
