package repositories

import (
	"context"
	"errors"
	"time"

	"freshcart/internal/apperr"
	"freshcart/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCartRepository is a GORM implementation of CartRepository.
// Each user has at most one row keyed by user ID.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// Get returns the user's cart, or an empty one.
func (r *GORMCartRepository) Get(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).First(&cart, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewCart(userID), nil
	}
	if err != nil {
		return nil, apperr.Persistence(err, "failed to get cart")
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart, nil
}

// Save upserts the cart.
func (r *GORMCartRepository) Save(ctx context.Context, cart *models.Cart) error {
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	cart.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"items", "updated_at"}),
	}).Create(cart).Error
	if err != nil {
		return apperr.Persistence(err, "failed to save cart")
	}
	return nil
}

// Clear empties the user's cart.
func (r *GORMCartRepository) Clear(ctx context.Context, userID string) error {
	return r.Save(ctx, models.NewCart(userID))
}
