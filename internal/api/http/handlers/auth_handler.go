package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/room-booking-service/internal/api/dto"
	"github.com/spec-kit/room-booking-service/internal/service"
	apperrors "github.com/spec-kit/room-booking-service/pkg/util"
)

// AuthHandler exposes signup, login and OTP endpoints.
type AuthHandler struct {
	auth *service.AuthService
	otp  *service.OTPService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, otpService *service.OTPService) *AuthHandler {
	return &AuthHandler{auth: authService, otp: otpService}
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.auth.Signup(c.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// RequestOTP handles POST /api/auth/request-otp.
func (h *AuthHandler) RequestOTP(c *fiber.Ctx) error {
	var req dto.OTPRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if _, err := h.otp.Generate(c.Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "otp sent"}})
}

// VerifyOTP handles POST /api/auth/verify-otp.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req dto.OTPVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	valid, err := h.otp.Validate(c.Context(), req.Email, req.Code)
	if err != nil {
		return err
	}
	if !valid {
		return apperrors.NewUnauthorized("invalid or expired otp")
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"verified": true}})
}
