package repositories

import (
	"context"
	"time"

	"freshcart/internal/models"
)

// OrderRepository defines the interface for order data access.
// Listings are ordered newest first. Orders are never deleted.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	// List returns at most limit orders; limit <= 0 means all.
	List(ctx context.Context, limit int) ([]models.Order, error)
	// ListPaidSince returns paid orders created at or after since.
	ListPaidSince(ctx context.Context, since time.Time) ([]models.Order, error)
	Count(ctx context.Context) (int64, error)
}
