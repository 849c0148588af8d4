package domain

import (
	"fmt"
	"strings"
	"time"
)

// RoomLocation enumerates the fixed office sites rooms can belong to.
type RoomLocation string

const (
	RoomLocationHyderabad        RoomLocation = "HYDERABAD"
	RoomLocationPuneWadgaonsheri RoomLocation = "PUNE_WADGAONSHERI"
	RoomLocationPuneBaner        RoomLocation = "PUNE_BANER"
)

// ParseRoomLocation maps a raw string onto a RoomLocation.
func ParseRoomLocation(raw string) (RoomLocation, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	normalized = strings.NewReplacer(" ", "_", ",", "", "__", "_").Replace(normalized)
	switch RoomLocation(normalized) {
	case RoomLocationHyderabad:
		return RoomLocationHyderabad, nil
	case RoomLocationPuneWadgaonsheri:
		return RoomLocationPuneWadgaonsheri, nil
	case RoomLocationPuneBaner:
		return RoomLocationPuneBaner, nil
	default:
		return "", fmt.Errorf("invalid location: %q", raw)
	}
}

// RoomAvailability enumerates room maintenance states.
type RoomAvailability string

const (
	RoomAvailable        RoomAvailability = "AVAILABLE"
	RoomUnderMaintenance RoomAvailability = "UNDER_MAINTENANCE"
)

// ParseRoomAvailability maps a raw string onto a RoomAvailability.
func ParseRoomAvailability(raw string) (RoomAvailability, error) {
	switch RoomAvailability(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoomAvailable:
		return RoomAvailable, nil
	case RoomUnderMaintenance:
		return RoomUnderMaintenance, nil
	default:
		return "", fmt.Errorf("invalid availability: %q", raw)
	}
}

// Room models a bookable meeting room.
type Room struct {
	ID           string
	Name         string
	Location     RoomLocation
	Capacity     int
	Availability RoomAvailability
	Description  string
	ImageURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
