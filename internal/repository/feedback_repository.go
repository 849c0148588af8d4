package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/room-booking-service/internal/domain"
)

// FeedbackRepository manages reservation feedback persistence.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Feedback, error)
	ListByRoom(ctx context.Context, roomID string) ([]domain.Feedback, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Feedback, error)
}

type feedbackRepository struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepository constructs repository.
func NewFeedbackRepository(pool *pgxpool.Pool) FeedbackRepository {
	return &feedbackRepository{pool: pool}
}

const feedbackColumns = `id, reservation_id, user_id, rating, comment, created_at`

func (r *feedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	const query = `
        INSERT INTO feedbacks (reservation_id, user_id, rating, comment)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		feedback.ReservationID,
		feedback.UserID,
		feedback.Rating,
		feedback.Comment,
	).Scan(&feedback.ID, &feedback.CreatedAt)
}

func (r *feedbackRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM feedbacks WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *feedbackRepository) List(ctx context.Context) ([]domain.Feedback, error) {
	const query = `SELECT ` + feedbackColumns + ` FROM feedbacks ORDER BY created_at DESC`
	return r.queryFeedbacks(ctx, query)
}

func (r *feedbackRepository) ListByRoom(ctx context.Context, roomID string) ([]domain.Feedback, error) {
	const query = `
        SELECT f.id, f.reservation_id, f.user_id, f.rating, f.comment, f.created_at
        FROM feedbacks f
        JOIN reservations r ON r.id = f.reservation_id
        WHERE r.room_id = $1
        ORDER BY f.created_at DESC`
	return r.queryFeedbacks(ctx, query, roomID)
}

func (r *feedbackRepository) ListByUser(ctx context.Context, userID string) ([]domain.Feedback, error) {
	const query = `SELECT ` + feedbackColumns + ` FROM feedbacks WHERE user_id=$1 ORDER BY created_at DESC`
	return r.queryFeedbacks(ctx, query, userID)
}

func (r *feedbackRepository) queryFeedbacks(ctx context.Context, query string, args ...any) ([]domain.Feedback, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Feedback
	for rows.Next() {
		var fb domain.Feedback
		if err := rows.Scan(
			&fb.ID,
			&fb.ReservationID,
			&fb.UserID,
			&fb.Rating,
			&fb.Comment,
			&fb.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, fb)
	}
	return result, rows.Err()
}
