package repositories

import (
	"context"
	"sync"
	"time"

	"freshcart/internal/apperr"
	"freshcart/internal/models"
)

// MemoryOrderRepository is an in-memory implementation of OrderRepository.
type MemoryOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewMemoryOrderRepository creates a new instance of MemoryOrderRepository.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[string]models.Order),
	}
}

func (r *MemoryOrderRepository) filter(keep func(*models.Order) bool) []models.Order {
	list := make([]models.Order, 0)
	for _, o := range r.orders {
		if keep(&o) {
			list = append(list, cloneOrder(o))
		}
	}
	sortOrdersNewest(list)
	return list
}

// Create adds a new order.
func (r *MemoryOrderRepository) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = newID()
	}
	now := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now
	r.orders[order.ID] = cloneOrder(*order)
	return nil
}

// GetByID returns an order by its ID.
func (r *MemoryOrderRepository) GetByID(_ context.Context, id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, apperr.NotFound("order with ID %s not found", id)
	}
	order = cloneOrder(order)
	return &order, nil
}

// Update replaces an existing order.
func (r *MemoryOrderRepository) Update(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; !ok {
		return apperr.NotFound("order with ID %s not found for update", order.ID)
	}
	r.orders[order.ID] = cloneOrder(*order)
	return nil
}

// ListByUser returns the user's orders, newest first.
func (r *MemoryOrderRepository) ListByUser(_ context.Context, userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(o *models.Order) bool { return o.UserID == userID }), nil
}

// List returns up to limit orders, newest first.
func (r *MemoryOrderRepository) List(_ context.Context, limit int) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := r.filter(func(*models.Order) bool { return true })
	return page(all, 0, limit), nil
}

// ListPaidSince returns paid orders created at or after since.
func (r *MemoryOrderRepository) ListPaidSince(_ context.Context, since time.Time) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(o *models.Order) bool {
		return o.IsPaid && !o.CreatedAt.Before(since)
	}), nil
}

// Count returns the number of orders.
func (r *MemoryOrderRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.orders)), nil
}
