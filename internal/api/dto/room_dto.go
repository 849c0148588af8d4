package dto

import (
	"time"

	"github.com/spec-kit/room-booking-service/internal/domain"
)

// RoomRequest payload for creating/updating rooms.
type RoomRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=100"`
	Location     string `json:"location" validate:"required"`
	Capacity     int    `json:"capacity" validate:"required,gt=0"`
	Availability string `json:"availability" validate:"omitempty"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
}

// DescriptionNoteRequest appends a timestamped note to a room description.
type DescriptionNoteRequest struct {
	Note string `json:"note" validate:"required,min=1,max=500"`
}

// RoomResponse is the public room shape.
type RoomResponse struct {
	ID           string                  `json:"id"`
	Name         string                  `json:"name"`
	Location     domain.RoomLocation     `json:"location"`
	Capacity     int                     `json:"capacity"`
	Availability domain.RoomAvailability `json:"availability"`
	Description  string                  `json:"description"`
	ImageURL     string                  `json:"image_url"`
	CreatedAt    time.Time               `json:"created_at"`
}

// NewRoomResponse maps a domain room onto its response shape.
func NewRoomResponse(room *domain.Room) RoomResponse {
	return RoomResponse{
		ID:           room.ID,
		Name:         room.Name,
		Location:     room.Location,
		Capacity:     room.Capacity,
		Availability: room.Availability,
		Description:  room.Description,
		ImageURL:     room.ImageURL,
		CreatedAt:    room.CreatedAt,
	}
}

// NewRoomResponses maps a slice of rooms.
func NewRoomResponses(rooms []domain.Room) []RoomResponse {
	items := make([]RoomResponse, 0, len(rooms))
	for i := range rooms {
		items = append(items, NewRoomResponse(&rooms[i]))
	}
	return items
}
