package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/room-booking-service/internal/domain"
)

// RoomRepository encapsulates meeting room persistence.
type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	Update(ctx context.Context, room *domain.Room) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Room, error)
	List(ctx context.Context) ([]domain.Room, error)
	ListByLocation(ctx context.Context, location domain.RoomLocation) ([]domain.Room, error)
	ListByMinCapacity(ctx context.Context, capacity int) ([]domain.Room, error)
	ListAvailableForSlot(ctx context.Context, start, end time.Time) ([]domain.Room, error)
}

type roomRepository struct {
	pool *pgxpool.Pool
}

// NewRoomRepository instantiates repository.
func NewRoomRepository(pool *pgxpool.Pool) RoomRepository {
	return &roomRepository{pool: pool}
}

const roomColumns = `id, name, location, capacity, availability, description, image_url, created_at, updated_at`

func (r *roomRepository) Create(ctx context.Context, room *domain.Room) error {
	const query = `
        INSERT INTO rooms (name, location, capacity, availability, description, image_url)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		room.Name,
		room.Location,
		room.Capacity,
		room.Availability,
		room.Description,
		room.ImageURL,
	).Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt)
}

func (r *roomRepository) Update(ctx context.Context, room *domain.Room) error {
	const query = `
        UPDATE rooms SET name=$1, location=$2, capacity=$3, availability=$4,
            description=$5, image_url=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		room.Name,
		room.Location,
		room.Capacity,
		room.Availability,
		room.Description,
		room.ImageURL,
		room.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *roomRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM rooms WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *roomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	const query = `SELECT ` + roomColumns + ` FROM rooms WHERE id=$1`
	var room domain.Room
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&room.ID,
		&room.Name,
		&room.Location,
		&room.Capacity,
		&room.Availability,
		&room.Description,
		&room.ImageURL,
		&room.CreatedAt,
		&room.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) List(ctx context.Context) ([]domain.Room, error) {
	const query = `SELECT ` + roomColumns + ` FROM rooms ORDER BY name`
	return r.queryRooms(ctx, query)
}

func (r *roomRepository) ListByLocation(ctx context.Context, location domain.RoomLocation) ([]domain.Room, error) {
	const query = `SELECT ` + roomColumns + ` FROM rooms WHERE location=$1 ORDER BY name`
	return r.queryRooms(ctx, query, location)
}

func (r *roomRepository) ListByMinCapacity(ctx context.Context, capacity int) ([]domain.Room, error) {
	const query = `SELECT ` + roomColumns + ` FROM rooms WHERE capacity >= $1 ORDER BY capacity`
	return r.queryRooms(ctx, query, capacity)
}

// ListAvailableForSlot returns rooms with no confirmed reservation intersecting
// the half-open interval [start,end).
func (r *roomRepository) ListAvailableForSlot(ctx context.Context, start, end time.Time) ([]domain.Room, error) {
	const query = `
        SELECT ` + roomColumns + ` FROM rooms m
        WHERE NOT EXISTS (
            SELECT 1 FROM reservations r
            WHERE r.room_id = m.id
              AND r.status = 'CONFIRMED'
              AND r.start_time < $2
              AND r.end_time > $1
        )
        ORDER BY m.name`
	return r.queryRooms(ctx, query, start, end)
}

func (r *roomRepository) queryRooms(ctx context.Context, query string, args ...any) ([]domain.Room, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Room
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(
			&room.ID,
			&room.Name,
			&room.Location,
			&room.Capacity,
			&room.Availability,
			&room.Description,
			&room.ImageURL,
			&room.CreatedAt,
			&room.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, room)
	}
	return result, rows.Err()
}
