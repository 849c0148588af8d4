package repository

import (
	"context"
	"errors"
	"hash/fnv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/room-booking-service/internal/domain"
)

// ErrOverlap signals that a confirmed reservation already occupies the
// requested interval on the target room.
var ErrOverlap = errors.New("overlapping confirmed reservation exists")

// ReservationRepository encapsulates reservation persistence, including the
// check-then-write operations that guard the no-overlap invariant.
type ReservationRepository interface {
	// CreateConfirmed atomically verifies the interval is free on the room
	// and inserts the reservation with status CONFIRMED. Returns ErrOverlap
	// when a confirmed reservation intersects the interval.
	CreateConfirmed(ctx context.Context, res *domain.Reservation) error
	// UpdateChecked atomically verifies the reservation's (possibly new)
	// room and interval are free, excluding excludeID when non-empty, then
	// persists the update. Returns ErrOverlap on conflict.
	UpdateChecked(ctx context.Context, res *domain.Reservation, excludeID string) error
	Update(ctx context.Context, res *domain.Reservation) error
	UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	List(ctx context.Context) ([]domain.Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Reservation, error)
	ListByRoom(ctx context.Context, roomID string) ([]domain.Reservation, error)
	ListByRoomAndRange(ctx context.Context, roomID string, from, to time.Time) ([]domain.Reservation, error)
	ExistsOverlapping(ctx context.Context, roomID string, start, end time.Time, excludeID string) (bool, error)
	// MarkCompleted transitions every confirmed reservation whose end time
	// precedes now to COMPLETED in one statement; returns affected rows.
	MarkCompleted(ctx context.Context, now time.Time) (int64, error)
}

type reservationRepository struct {
	pool *pgxpool.Pool
}

// NewReservationRepository instantiates repository.
func NewReservationRepository(pool *pgxpool.Pool) ReservationRepository {
	return &reservationRepository{pool: pool}
}

const reservationColumns = `id, user_id, room_id, title, start_time, end_time, amenities, status, created_at, updated_at`

// Overlap predicate over half-open intervals: an existing confirmed
// reservation conflicts iff start_time < $end AND end_time > $start.
// This is the SQL form of domain.Overlaps; both must stay strict so
// back-to-back reservations sharing an endpoint do not conflict.
const overlapExistsQuery = `
        SELECT EXISTS (
            SELECT 1 FROM reservations
            WHERE room_id = $1
              AND status = 'CONFIRMED'
              AND start_time < $3
              AND end_time > $2
              AND ($4 = '' OR id::text != $4)
        )`

func (r *reservationRepository) ExistsOverlapping(ctx context.Context, roomID string, start, end time.Time, excludeID string) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, overlapExistsQuery, roomID, start, end, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *reservationRepository) CreateConfirmed(ctx context.Context, res *domain.Reservation) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := acquireRoomLock(ctx, tx, res.RoomID); err != nil {
			return err
		}

		var exists bool
		if err := tx.QueryRow(ctx, overlapExistsQuery, res.RoomID, res.StartTime, res.EndTime, "").Scan(&exists); err != nil {
			return err
		}
		if exists {
			return ErrOverlap
		}

		const insert = `
            INSERT INTO reservations (user_id, room_id, title, start_time, end_time, amenities, status)
            VALUES ($1,$2,$3,$4,$5,$6,$7)
            RETURNING id, created_at, updated_at`
		return tx.QueryRow(ctx, insert,
			res.UserID,
			res.RoomID,
			res.Title,
			res.StartTime,
			res.EndTime,
			res.Amenities,
			res.Status,
		).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	})
}

func (r *reservationRepository) UpdateChecked(ctx context.Context, res *domain.Reservation, excludeID string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := acquireRoomLock(ctx, tx, res.RoomID); err != nil {
			return err
		}

		var exists bool
		if err := tx.QueryRow(ctx, overlapExistsQuery, res.RoomID, res.StartTime, res.EndTime, excludeID).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return ErrOverlap
		}

		return updateReservation(ctx, tx, res)
	})
}

func (r *reservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	return updateReservation(ctx, r.pool, res)
}

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func updateReservation(ctx context.Context, db execer, res *domain.Reservation) error {
	const query = `
        UPDATE reservations SET room_id=$1, title=$2, start_time=$3, end_time=$4,
            amenities=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := db.Exec(ctx, query,
		res.RoomID,
		res.Title,
		res.StartTime,
		res.EndTime,
		res.Amenities,
		res.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	const query = `UPDATE reservations SET status=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	const query = `SELECT ` + reservationColumns + ` FROM reservations WHERE id=$1`
	var res domain.Reservation
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&res.ID,
		&res.UserID,
		&res.RoomID,
		&res.Title,
		&res.StartTime,
		&res.EndTime,
		&res.Amenities,
		&res.Status,
		&res.CreatedAt,
		&res.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepository) List(ctx context.Context) ([]domain.Reservation, error) {
	const query = `SELECT ` + reservationColumns + ` FROM reservations ORDER BY start_time`
	return r.queryReservations(ctx, query)
}

func (r *reservationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Reservation, error) {
	const query = `SELECT ` + reservationColumns + ` FROM reservations WHERE user_id=$1 ORDER BY start_time`
	return r.queryReservations(ctx, query, userID)
}

func (r *reservationRepository) ListByRoom(ctx context.Context, roomID string) ([]domain.Reservation, error) {
	const query = `SELECT ` + reservationColumns + ` FROM reservations WHERE room_id=$1 ORDER BY start_time`
	return r.queryReservations(ctx, query, roomID)
}

func (r *reservationRepository) ListByRoomAndRange(ctx context.Context, roomID string, from, to time.Time) ([]domain.Reservation, error) {
	const query = `
        SELECT ` + reservationColumns + ` FROM reservations
        WHERE room_id=$1 AND start_time >= $2 AND end_time <= $3
        ORDER BY start_time`
	return r.queryReservations(ctx, query, roomID, from, to)
}

func (r *reservationRepository) MarkCompleted(ctx context.Context, now time.Time) (int64, error) {
	const query = `
        UPDATE reservations SET status='COMPLETED', updated_at=NOW()
        WHERE status='CONFIRMED' AND end_time < $1`
	cmd, err := r.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *reservationRepository) queryReservations(ctx context.Context, query string, args ...any) ([]domain.Reservation, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		if err := rows.Scan(
			&res.ID,
			&res.UserID,
			&res.RoomID,
			&res.Title,
			&res.StartTime,
			&res.EndTime,
			&res.Amenities,
			&res.Status,
			&res.CreatedAt,
			&res.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, res)
	}
	return result, rows.Err()
}

// acquireRoomLock serializes check-then-write sequences targeting the same
// room. The transaction-scoped advisory lock is released on commit/rollback.
func acquireRoomLock(ctx context.Context, tx pgx.Tx, roomID string) error {
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, roomLockKey(roomID))
	return err
}

func roomLockKey(roomID string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(roomID))
	return int64(h.Sum64())
}
