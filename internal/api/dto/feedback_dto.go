package dto

import (
	"time"

	"github.com/spec-kit/room-booking-service/internal/domain"
)

// FeedbackRequest payload for leaving feedback on a reservation.
type FeedbackRequest struct {
	ReservationID string `json:"reservation_id" validate:"required"`
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`
	Comment       string `json:"comment" validate:"max=1000"`
}

// FeedbackResponse is the public feedback shape.
type FeedbackResponse struct {
	ID            string    `json:"id"`
	ReservationID string    `json:"reservation_id"`
	UserID        string    `json:"user_id"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewFeedbackResponse maps a domain feedback onto its response shape.
func NewFeedbackResponse(fb *domain.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:            fb.ID,
		ReservationID: fb.ReservationID,
		UserID:        fb.UserID,
		Rating:        fb.Rating,
		Comment:       fb.Comment,
		CreatedAt:     fb.CreatedAt,
	}
}

// NewFeedbackResponses maps a slice of feedback rows.
func NewFeedbackResponses(feedbacks []domain.Feedback) []FeedbackResponse {
	items := make([]FeedbackResponse, 0, len(feedbacks))
	for i := range feedbacks {
		items = append(items, NewFeedbackResponse(&feedbacks[i]))
	}
	return items
}
