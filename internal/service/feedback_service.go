package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/room-booking-service/internal/domain"
	"github.com/spec-kit/room-booking-service/internal/repository"
	apperrors "github.com/spec-kit/room-booking-service/pkg/util"
)

// FeedbackService coordinates reservation feedback.
type FeedbackService struct {
	feedbacks    repository.FeedbackRepository
	reservations repository.ReservationRepository
}

// FeedbackInput describes a create payload.
type FeedbackInput struct {
	ReservationID string
	Rating        int
	Comment       string
}

// NewFeedbackService constructs the service.
func NewFeedbackService(feedbacks repository.FeedbackRepository, reservations repository.ReservationRepository) *FeedbackService {
	return &FeedbackService{feedbacks: feedbacks, reservations: reservations}
}

// Create records feedback for a reservation. Only the reservation's owner may
// leave feedback, and only once per reservation.
func (s *FeedbackService) Create(ctx context.Context, userID string, input FeedbackInput) (*domain.Feedback, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5", nil)
	}

	res, err := s.reservations.GetByID(ctx, input.ReservationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("reservation", map[string]any{"reservation_id": input.ReservationID})
		}
		return nil, err
	}
	if res.UserID != userID {
		return nil, apperrors.NewForbidden("you are not authorized to give feedback for this reservation")
	}

	feedback := &domain.Feedback{
		ReservationID: res.ID,
		UserID:        res.UserID,
		Rating:        input.Rating,
		Comment:       strings.TrimSpace(input.Comment),
	}
	if err := s.feedbacks.Create(ctx, feedback); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.NewConflict("feedback already exists for this reservation", nil)
		}
		return nil, err
	}
	return feedback, nil
}

// ListByRoom returns feedback for reservations targeting a room.
func (s *FeedbackService) ListByRoom(ctx context.Context, roomID string) ([]domain.Feedback, error) {
	return s.feedbacks.ListByRoom(ctx, roomID)
}

// ListByUser returns feedback left by a user.
func (s *FeedbackService) ListByUser(ctx context.Context, userID string) ([]domain.Feedback, error) {
	return s.feedbacks.ListByUser(ctx, userID)
}

// List returns all feedback (admin path).
func (s *FeedbackService) List(ctx context.Context) ([]domain.Feedback, error) {
	return s.feedbacks.List(ctx)
}

// Delete removes feedback (admin path).
func (s *FeedbackService) Delete(ctx context.Context, id string) error {
	if err := s.feedbacks.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("feedback", map[string]any{"feedback_id": id})
		}
		return err
	}
	return nil
}
