package services_test

import (
	"context"
	"testing"

	"freshcart/internal/apperr"
	"freshcart/internal/models"
	"freshcart/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func strPtr(s string) *string { return &s }

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	stored := &models.User{ID: "u1", Name: "Alice", Email: "alice@example.com", Password: "old-hash"}

	// Without a password the stored hash is kept.
	mockRepo.On("GetByID", "u1").Return(stored, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()
	updated, err := service.UpdateProfile(ctx, "u1", models.ProfileUpdate{Name: strPtr("Alice B"), City: strPtr("Oslo"), Password: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, "Oslo", updated.City)
	assert.Equal(t, "old-hash", updated.Password)

	// A new password is hashed.
	mockRepo.On("GetByID", "u1").Return(stored, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()
	updated, err = service.UpdateProfile(ctx, "u1", models.ProfileUpdate{Password: strPtr("new-secret")})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("new-secret")))

	// A taken email surfaces as a duplicate.
	mockRepo.On("GetByID", "u1").Return(stored, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(apperr.Duplicate("email 'bob@example.com' already registered")).Once()
	_, err = service.UpdateProfile(ctx, "u1", models.ProfileUpdate{Email: strPtr("bob@example.com")})
	assert.True(t, apperr.Is(err, apperr.KindDuplicate))
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateUser(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	isAdmin := true
	mockRepo.On("GetByID", "u2").Return(&models.User{ID: "u2", Name: "Bob", Email: "bob@example.com"}, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()

	updated, err := service.UpdateUser(ctx, "u2", models.AdminUserUpdate{IsAdmin: &isAdmin, Email: strPtr("ROBERT@example.com")})
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin)
	assert.Equal(t, "robert@example.com", updated.Email)
	assert.Equal(t, "Bob", updated.Name)

	mockRepo.On("GetByID", "missing").Return(nil, apperr.NotFound("user with ID missing not found")).Once()
	_, err = service.UpdateUser(ctx, "missing", models.AdminUserUpdate{})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	mockRepo.AssertExpectations(t)
}

func TestUserService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	mockRepo.On("HasAdmin").Return(true, nil).Once()
	created, err := service.EnsureAdmin(ctx, "Admin", "admin@example.com", "admin123")
	require.NoError(t, err)
	assert.False(t, created)

	mockRepo.On("HasAdmin").Return(false, nil).Once()
	mockRepo.On("Create", mock.MatchedBy(func(u *models.User) bool {
		return u.IsAdmin && u.Email == "admin@example.com"
	})).Return(nil).Once()
	created, err = service.EnsureAdmin(ctx, "Admin", "Admin@Example.com", "admin123")
	require.NoError(t, err)
	assert.True(t, created)
	mockRepo.AssertExpectations(t)
}
