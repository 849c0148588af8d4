package events

import (
	"time"

	"github.com/spec-kit/room-booking-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered           EventType = "user_registered"
	EventReservationCreated       EventType = "reservation_created"
	EventReservationUpdated       EventType = "reservation_updated"
	EventReservationCancelled     EventType = "reservation_cancelled"
	EventReservationStatusChanged EventType = "reservation_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID            string      `json:"id"`
	Type          EventType   `json:"type"`
	ReservationID string      `json:"reservation_id,omitempty"`
	UserID        string      `json:"user_id,omitempty"`
	Timestamp     time.Time   `json:"timestamp"`
	Payload       interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string          `json:"email"`
	Role  domain.UserRole `json:"role"`
}

// ReservationCreatedPayload payload.
type ReservationCreatedPayload struct {
	RoomID    string    `json:"room_id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// ReservationUpdatedPayload payload.
type ReservationUpdatedPayload struct {
	RoomID    string    `json:"room_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// ReservationStatusChangedPayload payload.
type ReservationStatusChangedPayload struct {
	OldStatus domain.ReservationStatus `json:"old_status"`
	NewStatus domain.ReservationStatus `json:"new_status"`
}
