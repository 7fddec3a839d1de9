package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"freshcart/internal/apperr"
	"freshcart/internal/models"
	"freshcart/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

func TestAuthService_RegisterUser(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	// Test successful registration
	mockRepo.On("GetByEmail", "test@example.com").Return(nil, apperr.NotFound("user not found")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		args.Get(0).(*models.User).ID = "user-123"
	}).Return(nil).Once()

	result, err := authService.RegisterUser(ctx, "Test User", " Test@Example.com ", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "user-123", result.User.ID)
	assert.Equal(t, "test@example.com", result.User.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(result.User.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)

	// Test email already registered
	mockRepo.On("GetByEmail", "test@example.com").Return(&models.User{ID: "1"}, nil).Once()
	_, err = authService.RegisterUser(ctx, "Test User", "test@example.com", "password123")
	assert.True(t, apperr.Is(err, apperr.KindDuplicate))
	assert.Contains(t, err.Error(), "email 'test@example.com' already registered")
	mockRepo.AssertExpectations(t)

	// Test short password
	mockRepo.On("GetByEmail", "short@example.com").Return(nil, apperr.NotFound("user not found")).Once()
	_, err = authService.RegisterUser(ctx, "Short", "short@example.com", "123")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Name:     "Test User",
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}

	// Test successful login
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	result, err := authService.LoginUser(ctx, "TEST@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user, result.User)

	parsedToken, err := jwt.Parse(result.Token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["user_id"])
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (wrong password)
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, err = authService.LoginUser(ctx, user.Email, "wrongpassword")
	assert.True(t, apperr.Is(err, apperr.KindAuthentication))
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (user not found)
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, apperr.NotFound("user with email nobody@example.com not found")).Once()
	_, err = authService.LoginUser(ctx, "nobody@example.com", "password123")
	assert.True(t, apperr.Is(err, apperr.KindAuthentication))
	assert.Equal(t, "invalid email or password", apperr.MessageOf(err))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	validTokenString, err := authService.GenerateToken("user-123")
	require.NoError(t, err)

	// Test valid token
	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])

	// Test malformed token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.True(t, apperr.Is(err, apperr.KindAuthentication))

	// Test token signed with another secret
	other := services.NewAuthService(mockRepo, "another-secret", time.Hour)
	foreign, _ := other.GenerateToken("user-123")
	_, err = authService.ValidateToken(foreign)
	assert.True(t, apperr.Is(err, apperr.KindAuthentication))

	// Test expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.True(t, apperr.Is(err, apperr.KindAuthentication))
}

func TestAuthService_ResolveUser(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)
	token, _ := authService.GenerateToken("user-123")

	mockRepo.On("GetByID", "user-123").Return(&models.User{ID: "user-123", Name: "Alice"}, nil).Once()
	user, err := authService.ResolveUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)

	// A token whose user was deleted no longer authenticates.
	mockRepo.On("GetByID", "user-123").Return(nil, apperr.NotFound("user with ID user-123 not found")).Once()
	_, err = authService.ResolveUser(ctx, token)
	assert.True(t, apperr.Is(err, apperr.KindAuthentication))
	mockRepo.AssertExpectations(t)
}
