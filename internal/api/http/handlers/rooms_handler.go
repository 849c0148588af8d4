package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/room-booking-service/internal/api/dto"
	"github.com/spec-kit/room-booking-service/internal/service"
	apperrors "github.com/spec-kit/room-booking-service/pkg/util"
)

// RoomsHandler exposes read-only room endpoints for authenticated users.
type RoomsHandler struct {
	rooms        *service.RoomService
	reservations *service.ReservationService
}

// NewRoomsHandler constructs handler.
func NewRoomsHandler(roomService *service.RoomService, reservationService *service.ReservationService) *RoomsHandler {
	return &RoomsHandler{rooms: roomService, reservations: reservationService}
}

// ListRooms GET /api/rooms.
func (h *RoomsHandler) ListRooms(c *fiber.Ctx) error {
	rooms, err := h.rooms.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRoomResponses(rooms)})
}

// GetRoom GET /api/rooms/:id.
func (h *RoomsHandler) GetRoom(c *fiber.Ctx) error {
	room, err := h.rooms.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRoomResponse(room)})
}

// ListByLocation GET /api/rooms/location/:location.
func (h *RoomsHandler) ListByLocation(c *fiber.Ctx) error {
	rooms, err := h.rooms.ListByLocation(c.Context(), c.Params("location"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRoomResponses(rooms)})
}

// ListByCapacity GET /api/rooms/capacity/:minCapacity.
func (h *RoomsHandler) ListByCapacity(c *fiber.Ctx) error {
	capacity, err := strconv.Atoi(c.Params("minCapacity"))
	if err != nil || capacity <= 0 {
		return apperrors.NewValidationError("minCapacity must be a positive integer", nil)
	}
	rooms, err := h.rooms.ListByMinCapacity(c.Context(), capacity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRoomResponses(rooms)})
}

// ListAvailable GET /api/rooms/available?startTime=...&endTime=...
// Both parameters are required RFC 3339 timestamps.
func (h *RoomsHandler) ListAvailable(c *fiber.Ctx) error {
	start, err := requireTimeQuery(c, "startTime")
	if err != nil {
		return err
	}
	end, err := requireTimeQuery(c, "endTime")
	if err != nil {
		return err
	}
	rooms, err := h.rooms.ListAvailableForSlot(c.Context(), start, end)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRoomResponses(rooms)})
}

// RoomSchedule GET /api/rooms/:id/schedule?fromDate=...&toDate=...
func (h *RoomsHandler) RoomSchedule(c *fiber.Ctx) error {
	from, err := requireTimeQuery(c, "fromDate")
	if err != nil {
		return err
	}
	to, err := requireTimeQuery(c, "toDate")
	if err != nil {
		return err
	}
	reservations, err := h.reservations.RoomSchedule(c.Context(), c.Params("id"), from, to)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReservationResponses(reservations)})
}

func requireTimeQuery(c *fiber.Ctx, name string) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, apperrors.NewValidationError(name+" query parameter required", nil)
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(name+" must be an RFC 3339 timestamp", nil)
	}
	return parsed, nil
}
