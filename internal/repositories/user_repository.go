package repositories

import (
	"context"

	"freshcart/internal/models"
)

// UserRepository defines the interface for user data access.
// Create and Update fail with a duplicate error when the email is taken.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	HasAdmin(ctx context.Context) (bool, error)
}
