package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/room-booking-service/internal/domain"
	"github.com/spec-kit/room-booking-service/internal/repository"
	apperrors "github.com/spec-kit/room-booking-service/pkg/util"
)

// UserService coordinates user profile and admin user management.
type UserService struct {
	users repository.UserRepository
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetByID fetches a user.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, err
	}
	return user, nil
}

// GetByEmail fetches a user by unique email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"email": email})
		}
		return nil, err
	}
	return user, nil
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// UpdateProfile updates the caller's display name. Email and password are
// deliberately not updatable here.
func (s *UserService) UpdateProfile(ctx context.Context, userID, name string) (*domain.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	user.Name = name

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateRole changes a user's role (admin path).
func (s *UserService) UpdateRole(ctx context.Context, id, role string) (*domain.User, error) {
	parsed, err := domain.ParseUserRole(role)
	if err != nil {
		return nil, apperrors.NewInvalidEnumValue(err)
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateRole(ctx, user.ID, parsed); err != nil {
		return nil, err
	}
	user.Role = parsed
	return user, nil
}

// Delete removes a user; reservations and feedback cascade at the store level.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return err
	}
	return nil
}
