package services

import (
	"context"
	"fmt"
	"strings"

	"freshcart/internal/apperr"
	"freshcart/internal/models"
	"freshcart/internal/repositories"
)

// UserService manages profiles and admin user maintenance.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetProfile returns the account of userID.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile applies the present fields of upd. The password is re-hashed
// only when a new non-empty one is supplied.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		if strings.TrimSpace(*upd.Name) == "" {
			return nil, apperr.Validation("name must not be empty")
		}
		user.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Email != nil {
		email := normalizeEmail(*upd.Email)
		if email == "" {
			return nil, apperr.Validation("email must not be empty")
		}
		user.Email = email
	}
	if upd.Address != nil {
		user.Address = *upd.Address
	}
	if upd.City != nil {
		user.City = *upd.City
	}
	if upd.PostalCode != nil {
		user.PostalCode = *upd.PostalCode
	}
	if upd.Country != nil {
		user.Country = *upd.Country
	}
	if upd.Password != nil && *upd.Password != "" {
		hashed, err := hashPassword(*upd.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// ListUsers returns every account.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

// GetUser returns any account by ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateUser lets an admin change name, email and role.
func (s *UserService) UpdateUser(ctx context.Context, id string, upd models.AdminUserUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) != "" {
		user.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Email != nil && strings.TrimSpace(*upd.Email) != "" {
		user.Email = normalizeEmail(*upd.Email)
	}
	if upd.IsAdmin != nil {
		user.IsAdmin = *upd.IsAdmin
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// DeleteUser removes an account.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	return s.userRepo.Delete(ctx, id)
}

// EnsureAdmin creates an admin account when none exists yet. It reports
// whether an account was created.
func (s *UserService) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	hasAdmin, err := s.userRepo.HasAdmin(ctx)
	if err != nil {
		return false, err
	}
	if hasAdmin {
		return false, nil
	}
	hashed, err := hashPassword(password)
	if err != nil {
		return false, err
	}
	admin := &models.User{Name: name, Email: normalizeEmail(email), Password: hashed, IsAdmin: true}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("failed to create admin user: %w", err)
	}
	return true, nil
}
