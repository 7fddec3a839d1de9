package repositories

import (
	"context"

	"freshcart/internal/models"
)

// CartRepository defines the interface for cart data access.
// Get returns an empty cart when the user has none; Save upserts the whole document.
type CartRepository interface {
	Get(ctx context.Context, userID string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Clear(ctx context.Context, userID string) error
}
