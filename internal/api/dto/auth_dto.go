package dto

import (
	"time"

	"github.com/spec-kit/room-booking-service/internal/domain"
)

// SignupRequest payload for new users.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=employee admin EMPLOYEE ADMIN"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// OTPRequest asks for a one-time code to be sent to an email address.
type OTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// OTPVerifyRequest submits a previously issued one-time code.
type OTPVerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the public user shape.
type UserResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      domain.UserRole `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
}

// UpdateProfileRequest updates caller display name only.
type UpdateProfileRequest struct {
	Name string `json:"name" validate:"required,min=3,max=100"`
}

// UpdateRoleRequest changes a user's role. Admin only.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// NewUserResponse maps a domain user onto its response shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
