package domain

import (
	"fmt"
	"strings"
	"time"
)

// ReservationStatus enumerates reservation lifecycle states.
type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
	ReservationCompleted ReservationStatus = "COMPLETED"
)

// ParseReservationStatus maps a raw string onto a ReservationStatus.
func ParseReservationStatus(raw string) (ReservationStatus, error) {
	switch ReservationStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case ReservationConfirmed:
		return ReservationConfirmed, nil
	case ReservationCancelled:
		return ReservationCancelled, nil
	case ReservationCompleted:
		return ReservationCompleted, nil
	default:
		return "", fmt.Errorf("invalid status: %q", raw)
	}
}

// Reservation is the aggregate owning a room's time interval.
// Only CONFIRMED reservations participate in overlap checks.
type Reservation struct {
	ID        string
	UserID    string
	RoomID    string
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Amenities string
	Status    ReservationStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overlaps reports whether two half-open intervals [startA,endA) and
// [startB,endB) intersect. Back-to-back intervals sharing an endpoint
// do not overlap. This is the reference predicate for the conflict rule;
// the reservation repository's SQL must implement the same convention.
func Overlaps(startA, endA, startB, endB time.Time) bool {
	return startA.Before(endB) && endA.After(startB)
}
