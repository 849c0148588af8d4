package domain

import "time"

// Feedback is a one-per-reservation rating left by the reservation owner.
type Feedback struct {
	ID            string
	ReservationID string
	UserID        string
	Rating        int
	Comment       string
	CreatedAt     time.Time
}
