package repositories

import (
	"context"
	"time"

	"freshcart/internal/apperr"
	"freshcart/internal/models"

	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

func newestOrdersFirst(tx *gorm.DB) *gorm.DB {
	return tx.Order("created_at desc").Order("id desc")
}

// Create inserts a new order.
func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = newID()
	}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return apperr.Persistence(err, "failed to create order")
	}
	return nil
}

// GetByID retrieves an order by its ID.
func (r *GORMOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, gormError(err, apperr.NotFound("order with ID %s not found", id), "get order by ID "+id)
	}
	return &order, nil
}

// Update writes every column of an existing order.
func (r *GORMOrderRepository) Update(ctx context.Context, order *models.Order) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", order.ID).Select("*").Updates(order)
	if res.Error != nil {
		return apperr.Persistence(res.Error, "failed to update order")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("order with ID %s not found for update", order.ID)
	}
	return nil
}

// ListByUser retrieves the user's orders, newest first.
func (r *GORMOrderRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	if err := r.db.WithContext(ctx).Scopes(newestOrdersFirst).Where("user_id = ?", userID).Find(&orders).Error; err != nil {
		return nil, apperr.Persistence(err, "failed to get user orders")
	}
	return orders, nil
}

// List retrieves up to limit orders, newest first.
func (r *GORMOrderRepository) List(ctx context.Context, limit int) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	tx := r.db.WithContext(ctx).Scopes(newestOrdersFirst)
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if err := tx.Find(&orders).Error; err != nil {
		return nil, apperr.Persistence(err, "failed to list orders")
	}
	return orders, nil
}

// ListPaidSince retrieves paid orders created at or after since.
func (r *GORMOrderRepository) ListPaidSince(ctx context.Context, since time.Time) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	err := r.db.WithContext(ctx).Scopes(newestOrdersFirst).
		Where("is_paid = ? AND created_at >= ?", true, since).
		Find(&orders).Error
	if err != nil {
		return nil, apperr.Persistence(err, "failed to list paid orders")
	}
	return orders, nil
}

// Count returns the number of orders.
func (r *GORMOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&count).Error; err != nil {
		return 0, apperr.Persistence(err, "failed to count orders")
	}
	return count, nil
}
