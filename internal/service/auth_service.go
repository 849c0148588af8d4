package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/room-booking-service/internal/auth"
	"github.com/spec-kit/room-booking-service/internal/config"
	"github.com/spec-kit/room-booking-service/internal/domain"
	"github.com/spec-kit/room-booking-service/internal/events"
	"github.com/spec-kit/room-booking-service/internal/repository"
	apperrors "github.com/spec-kit/room-booking-service/pkg/util"
)

// AuthService coordinates signup and login flows.
type AuthService struct {
	users          repository.UserRepository
	tokenMgr       *auth.TokenManager
	dispatcher     events.Dispatcher
	bcryptCost     int
	allowedDomains []string
}

// AuthDependencies encapsulates collaborators for auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:          deps.UserRepo,
		tokenMgr:       auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		dispatcher:     deps.Dispatcher,
		bcryptCost:     cfg.Auth.BcryptCost,
		allowedDomains: cfg.Auth.AllowedEmailDomains,
	}
}

// Signup creates a new user account. The email domain must be on the
// configured allow-list; the role defaults to EMPLOYEE.
func (s *AuthService) Signup(ctx context.Context, name, email, password, role string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !s.emailDomainAllowed(email) {
		return nil, apperrors.NewValidationError("email domain not allowed",
			map[string]any{"allowed_domains": s.allowedDomains})
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email is already in use", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	userRole := domain.UserRoleEmployee
	if strings.EqualFold(role, string(domain.UserRoleAdmin)) {
		userRole = domain.UserRoleAdmin
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Role:         userRole,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventUserRegistered,
			UserID:    user.ID,
			Timestamp: time.Now(),
			Payload:   events.UserRegisteredPayload{Email: user.Email, Role: user.Role},
		})
	}
	return user, nil
}

// Login authenticates a user and issues a role-bearing JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) emailDomainAllowed(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 1 || at == len(email)-1 {
		return false
	}
	domainPart := email[at+1:]
	for _, allowed := range s.allowedDomains {
		if strings.EqualFold(domainPart, allowed) {
			return true
		}
	}
	return false
}
