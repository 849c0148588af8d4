package dto

import (
	"time"

	"github.com/spec-kit/room-booking-service/internal/domain"
)

// ReservationRequest payload for creating/updating reservations.
// Timestamps are RFC 3339 date-times.
type ReservationRequest struct {
	RoomID    string    `json:"room_id" validate:"required"`
	Title     string    `json:"title" validate:"required,min=1,max=200"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
	Amenities string    `json:"amenities"`
}

// ReservationResponse is the public reservation shape.
type ReservationResponse struct {
	ID        string                   `json:"id"`
	UserID    string                   `json:"user_id"`
	RoomID    string                   `json:"room_id"`
	Title     string                   `json:"title"`
	StartTime time.Time                `json:"start_time"`
	EndTime   time.Time                `json:"end_time"`
	Amenities string                   `json:"amenities"`
	Status    domain.ReservationStatus `json:"status"`
	CreatedAt time.Time                `json:"created_at"`
}

// NewReservationResponse maps a domain reservation onto its response shape.
func NewReservationResponse(res *domain.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:        res.ID,
		UserID:    res.UserID,
		RoomID:    res.RoomID,
		Title:     res.Title,
		StartTime: res.StartTime,
		EndTime:   res.EndTime,
		Amenities: res.Amenities,
		Status:    res.Status,
		CreatedAt: res.CreatedAt,
	}
}

// NewReservationResponses maps a slice of reservations.
func NewReservationResponses(reservations []domain.Reservation) []ReservationResponse {
	items := make([]ReservationResponse, 0, len(reservations))
	for i := range reservations {
		items = append(items, NewReservationResponse(&reservations[i]))
	}
	return items
}
