package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/room-booking-service/internal/domain"
)

type mockFeedbackRepo struct {
	createFunc func(ctx context.Context, feedback *domain.Feedback) error
}

func (m *mockFeedbackRepo) Create(ctx context.Context, feedback *domain.Feedback) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, feedback)
	}
	return nil
}

func (m *mockFeedbackRepo) Delete(ctx context.Context, id string) error { return nil }

func (m *mockFeedbackRepo) List(ctx context.Context) ([]domain.Feedback, error) { return nil, nil }

func (m *mockFeedbackRepo) ListByRoom(ctx context.Context, roomID string) ([]domain.Feedback, error) {
	return nil, nil
}

func (m *mockFeedbackRepo) ListByUser(ctx context.Context, userID string) ([]domain.Feedback, error) {
	return nil, nil
}

func TestCreateFeedback(t *testing.T) {
	reservations := &mockReservationRepo{getByIDFunc: func(ctx context.Context, id string) (*domain.Reservation, error) {
		return &domain.Reservation{ID: id, UserID: "owner", RoomID: "room-1"}, nil
	}}

	t.Run("owner may leave feedback", func(t *testing.T) {
		svc := NewFeedbackService(&mockFeedbackRepo{}, reservations)
		fb, err := svc.Create(context.Background(), "owner", FeedbackInput{ReservationID: "res-1", Rating: 4, Comment: " nice room "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fb.Comment != "nice room" {
			t.Errorf("comment = %q, want trimmed", fb.Comment)
		}
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		svc := NewFeedbackService(&mockFeedbackRepo{}, reservations)
		_, err := svc.Create(context.Background(), "stranger", FeedbackInput{ReservationID: "res-1", Rating: 4})
		if code := domainCode(t, err); code != "FORBIDDEN" {
			t.Errorf("error code = %q, want FORBIDDEN", code)
		}
	})

	t.Run("rating out of range", func(t *testing.T) {
		svc := NewFeedbackService(&mockFeedbackRepo{}, reservations)
		for _, rating := range []int{0, 6, -1} {
			_, err := svc.Create(context.Background(), "owner", FeedbackInput{ReservationID: "res-1", Rating: rating})
			if code := domainCode(t, err); code != "VALIDATION_FAILED" {
				t.Errorf("rating %d: error code = %q, want VALIDATION_FAILED", rating, code)
			}
		}
	})

	t.Run("duplicate maps unique violation to conflict", func(t *testing.T) {
		repo := &mockFeedbackRepo{createFunc: func(ctx context.Context, feedback *domain.Feedback) error {
			return &pgconn.PgError{Code: "23505"}
		}}
		svc := NewFeedbackService(repo, reservations)
		_, err := svc.Create(context.Background(), "owner", FeedbackInput{ReservationID: "res-1", Rating: 5})
		if code := domainCode(t, err); code != "CONFLICT" {
			t.Errorf("error code = %q, want CONFLICT", code)
		}
	})
}
