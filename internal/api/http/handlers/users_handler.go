package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/room-booking-service/internal/api/dto"
	"github.com/spec-kit/room-booking-service/internal/auth"
	"github.com/spec-kit/room-booking-service/internal/service"
	apperrors "github.com/spec-kit/room-booking-service/pkg/util"
)

// UsersHandler exposes profile and reservation endpoints for the
// authenticated user.
type UsersHandler struct {
	users        *service.UserService
	reservations *service.ReservationService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService, reservationService *service.ReservationService) *UsersHandler {
	return &UsersHandler{users: userService, reservations: reservationService}
}

// Profile GET /api/users/profile.
func (h *UsersHandler) Profile(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(principal.User)})
}

// UpdateProfile PUT /api/users/profile.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.users.UpdateProfile(c.Context(), principal.User.ID, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// MyReservations GET /api/users/my_reservations.
func (h *UsersHandler) MyReservations(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	reservations, err := h.reservations.ListForUser(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReservationResponses(reservations)})
}

// ListReservations GET /api/users/reservations.
func (h *UsersHandler) ListReservations(c *fiber.Ctx) error {
	reservations, err := h.reservations.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReservationResponses(reservations)})
}

// CreateReservation POST /api/users/reservations.
func (h *UsersHandler) CreateReservation(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	input, err := parseReservationBody(c)
	if err != nil {
		return err
	}

	reservation, err := h.reservations.Create(c.Context(), principal.User.ID, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewReservationResponse(reservation)})
}

// UpdateReservation PUT /api/users/reservations/:id.
func (h *UsersHandler) UpdateReservation(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	input, err := parseReservationBody(c)
	if err != nil {
		return err
	}

	requester := service.Requester{UserID: principal.User.ID, Role: principal.Role}
	reservation, err := h.reservations.Update(c.Context(), c.Params("id"), requester, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReservationResponse(reservation)})
}

// CancelReservation DELETE /api/users/reservations/:id.
func (h *UsersHandler) CancelReservation(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	requester := service.Requester{UserID: principal.User.ID, Role: principal.Role}
	if err := h.reservations.Cancel(c.Context(), c.Params("id"), requester); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "reservation cancelled"}})
}

func parseReservationBody(c *fiber.Ctx) (service.ReservationInput, error) {
	var req dto.ReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return service.ReservationInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return service.ReservationInput{}, err
	}
	return service.ReservationInput{
		RoomID:    req.RoomID,
		Title:     req.Title,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Amenities: req.Amenities,
	}, nil
}

func requirePrincipal(c *fiber.Ctx) (*auth.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return nil, apperrors.NewUnauthorized("user required")
	}
	return principal, nil
}
