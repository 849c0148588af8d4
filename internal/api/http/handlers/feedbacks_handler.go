package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/room-booking-service/internal/api/dto"
	"github.com/spec-kit/room-booking-service/internal/service"
	apperrors "github.com/spec-kit/room-booking-service/pkg/util"
)

// FeedbacksHandler exposes reservation feedback endpoints.
type FeedbacksHandler struct {
	feedbacks *service.FeedbackService
}

// NewFeedbacksHandler constructs handler.
func NewFeedbacksHandler(feedbackService *service.FeedbackService) *FeedbacksHandler {
	return &FeedbacksHandler{feedbacks: feedbackService}
}

// Create POST /api/feedbacks.
func (h *FeedbacksHandler) Create(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	input := service.FeedbackInput{
		ReservationID: req.ReservationID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	}
	feedback, err := h.feedbacks.Create(c.Context(), principal.User.ID, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewFeedbackResponse(feedback)})
}

// ListByRoom GET /api/feedbacks/room/:roomId.
func (h *FeedbacksHandler) ListByRoom(c *fiber.Ctx) error {
	feedbacks, err := h.feedbacks.ListByRoom(c.Context(), c.Params("roomId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewFeedbackResponses(feedbacks)})
}

// ListOwn GET /api/feedbacks/user.
func (h *FeedbacksHandler) ListOwn(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	feedbacks, err := h.feedbacks.ListByUser(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewFeedbackResponses(feedbacks)})
}
