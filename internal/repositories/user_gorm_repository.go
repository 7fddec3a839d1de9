package repositories

import (
	"context"

	"freshcart/internal/apperr"
	"freshcart/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create inserts a new user. A taken email is reported as a duplicate.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = newID()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if apperr.Is(gormError(err, nil, "create user"), apperr.KindDuplicate) {
			return apperr.Duplicate("email '%s' already registered", user.Email)
		}
		return apperr.Persistence(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *GORMUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, gormError(err, apperr.NotFound("user with ID %s not found", id), "get user by ID "+id)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email, ignoring case.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, gormError(err, apperr.NotFound("user with email %s not found", email), "get user by email")
	}
	return &user, nil
}

// GetByIDs retrieves the users that exist among ids, keyed by ID.
func (r *GORMUserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	found := make(map[string]*models.User, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	var users []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, apperr.Persistence(err, "failed to get users")
	}
	for i := range users {
		found[users[i].ID] = &users[i]
	}
	return found, nil
}

// List retrieves all users ordered by creation time.
func (r *GORMUserRepository) List(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := r.db.WithContext(ctx).Order("created_at asc").Order("id asc").Find(&users).Error; err != nil {
		return nil, apperr.Persistence(err, "failed to list users")
	}
	return users, nil
}

// Update writes every column of an existing user.
func (r *GORMUserRepository) Update(ctx context.Context, user *models.User) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Select("*").Updates(user)
	if res.Error != nil {
		if apperr.Is(gormError(res.Error, nil, "update user"), apperr.KindDuplicate) {
			return apperr.Duplicate("email '%s' already registered", user.Email)
		}
		return apperr.Persistence(res.Error, "failed to update user")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user with ID %s not found for update", user.ID)
	}
	return nil
}

// Delete removes a user by ID.
func (r *GORMUserRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return apperr.Persistence(res.Error, "failed to delete user")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user with ID %s not found for deletion", id)
	}
	return nil
}

// Count returns the number of users.
func (r *GORMUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, apperr.Persistence(err, "failed to count users")
	}
	return count, nil
}

// HasAdmin reports whether any admin account exists.
func (r *GORMUserRepository) HasAdmin(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return false, apperr.Persistence(err, "failed to look up admin accounts")
	}
	return count > 0, nil
}
