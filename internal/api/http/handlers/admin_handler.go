package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/room-booking-service/internal/api/dto"
	"github.com/spec-kit/room-booking-service/internal/domain"
	"github.com/spec-kit/room-booking-service/internal/service"
	apperrors "github.com/spec-kit/room-booking-service/pkg/util"
)

// AdminHandler groups operator endpoints: user administration, room
// management and reservation oversight.
type AdminHandler struct {
	users        *service.UserService
	rooms        *service.RoomService
	reservations *service.ReservationService
	feedbacks    *service.FeedbackService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(userService *service.UserService, roomService *service.RoomService, reservationService *service.ReservationService, feedbackService *service.FeedbackService) *AdminHandler {
	return &AdminHandler{
		users:        userService,
		rooms:        roomService,
		reservations: reservationService,
		feedbacks:    feedbackService,
	}
}

// ListUsers GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetUser GET /api/admin/users/:id.
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.users.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// UpdateUserRole PUT /api/admin/users/:id/role.
func (h *AdminHandler) UpdateUserRole(c *fiber.Ctx) error {
	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.users.UpdateRole(c.Context(), c.Params("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// DeleteUser DELETE /api/admin/users/:id.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.users.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "user deleted"}})
}

// ListRooms GET /api/admin/rooms.
func (h *AdminHandler) ListRooms(c *fiber.Ctx) error {
	rooms, err := h.rooms.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRoomResponses(rooms)})
}

// CreateRoom POST /api/admin/rooms.
func (h *AdminHandler) CreateRoom(c *fiber.Ctx) error {
	input, err := parseRoomBody(c)
	if err != nil {
		return err
	}
	room, err := h.rooms.Create(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewRoomResponse(room)})
}

// UpdateRoom PUT /api/admin/rooms/:id.
func (h *AdminHandler) UpdateRoom(c *fiber.Ctx) error {
	input, err := parseRoomBody(c)
	if err != nil {
		return err
	}
	room, err := h.rooms.Update(c.Context(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRoomResponse(room)})
}

// AddRoomDescription PUT /api/admin/rooms/:id/description.
func (h *AdminHandler) AddRoomDescription(c *fiber.Ctx) error {
	var req dto.DescriptionNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	room, err := h.rooms.AddDescriptionNote(c.Context(), c.Params("id"), req.Note)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRoomResponse(room)})
}

// DeleteRoom DELETE /api/admin/rooms/:id.
func (h *AdminHandler) DeleteRoom(c *fiber.Ctx) error {
	if err := h.rooms.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "room deleted"}})
}

// ListReservations GET /api/admin/reservations.
func (h *AdminHandler) ListReservations(c *fiber.Ctx) error {
	reservations, err := h.reservations.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReservationResponses(reservations)})
}

// ListReservationsByRoom GET /api/admin/reservations/room/:roomId.
func (h *AdminHandler) ListReservationsByRoom(c *fiber.Ctx) error {
	reservations, err := h.reservations.ListForRoom(c.Context(), c.Params("roomId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReservationResponses(reservations)})
}

// SetReservationStatus PUT /api/admin/reservations/:id/status?status=...
func (h *AdminHandler) SetReservationStatus(c *fiber.Ctx) error {
	status, err := domain.ParseReservationStatus(c.Query("status"))
	if err != nil {
		return apperrors.NewInvalidEnumValue(err)
	}
	reservation, err := h.reservations.SetStatus(c.Context(), c.Params("id"), status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReservationResponse(reservation)})
}

// ListFeedbacks GET /api/admin/feedbacks.
func (h *AdminHandler) ListFeedbacks(c *fiber.Ctx) error {
	feedbacks, err := h.feedbacks.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewFeedbackResponses(feedbacks)})
}

// DeleteFeedback DELETE /api/admin/feedback/:id.
func (h *AdminHandler) DeleteFeedback(c *fiber.Ctx) error {
	if err := h.feedbacks.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "feedback deleted"}})
}

func parseRoomBody(c *fiber.Ctx) (service.RoomInput, error) {
	var req dto.RoomRequest
	if err := c.BodyParser(&req); err != nil {
		return service.RoomInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return service.RoomInput{}, err
	}
	return service.RoomInput{
		Name:         req.Name,
		Location:     req.Location,
		Capacity:     req.Capacity,
		Availability: req.Availability,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
	}, nil
}
