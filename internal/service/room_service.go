package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/room-booking-service/internal/domain"
	"github.com/spec-kit/room-booking-service/internal/repository"
	apperrors "github.com/spec-kit/room-booking-service/pkg/util"
)

// RoomService coordinates meeting room lookups and admin management.
type RoomService struct {
	rooms repository.RoomRepository
}

// RoomInput describes a create/update payload.
type RoomInput struct {
	Name         string
	Location     string
	Capacity     int
	Availability string
	Description  string
	ImageURL     string
}

// NewRoomService constructs the service.
func NewRoomService(rooms repository.RoomRepository) *RoomService {
	return &RoomService{rooms: rooms}
}

// GetByID fetches a room.
func (s *RoomService) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("room", map[string]any{"room_id": id})
		}
		return nil, err
	}
	return room, nil
}

// List returns all rooms.
func (s *RoomService) List(ctx context.Context) ([]domain.Room, error) {
	return s.rooms.List(ctx)
}

// ListByLocation returns rooms at one of the fixed sites.
func (s *RoomService) ListByLocation(ctx context.Context, location string) ([]domain.Room, error) {
	parsed, err := domain.ParseRoomLocation(location)
	if err != nil {
		return nil, apperrors.NewInvalidEnumValue(err)
	}
	return s.rooms.ListByLocation(ctx, parsed)
}

// ListByMinCapacity returns rooms holding at least capacity people.
func (s *RoomService) ListByMinCapacity(ctx context.Context, capacity int) ([]domain.Room, error) {
	if capacity < 1 {
		return nil, apperrors.NewValidationError("capacity must be a positive integer", nil)
	}
	return s.rooms.ListByMinCapacity(ctx, capacity)
}

// ListAvailableForSlot returns rooms with no confirmed overlap in [start,end).
func (s *RoomService) ListAvailableForSlot(ctx context.Context, start, end time.Time) ([]domain.Room, error) {
	if !start.Before(end) {
		return nil, apperrors.NewInvalidInterval("start time must be before end time")
	}
	return s.rooms.ListAvailableForSlot(ctx, start, end)
}

// Create registers a new room (admin path).
func (s *RoomService) Create(ctx context.Context, input RoomInput) (*domain.Room, error) {
	location, err := domain.ParseRoomLocation(input.Location)
	if err != nil {
		return nil, apperrors.NewInvalidEnumValue(err)
	}
	if input.Capacity < 1 {
		return nil, apperrors.NewValidationError("capacity must be a positive integer", nil)
	}

	room := &domain.Room{
		Name:         strings.TrimSpace(input.Name),
		Location:     location,
		Capacity:     input.Capacity,
		Availability: domain.RoomAvailable,
		Description:  input.Description,
		ImageURL:     input.ImageURL,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// Update modifies a room (admin path). Identity is immutable.
func (s *RoomService) Update(ctx context.Context, id string, input RoomInput) (*domain.Room, error) {
	room, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	location, err := domain.ParseRoomLocation(input.Location)
	if err != nil {
		return nil, apperrors.NewInvalidEnumValue(err)
	}
	if input.Capacity < 1 {
		return nil, apperrors.NewValidationError("capacity must be a positive integer", nil)
	}

	room.Name = strings.TrimSpace(input.Name)
	room.Location = location
	room.Capacity = input.Capacity
	room.ImageURL = input.ImageURL
	if input.Availability != "" {
		availability, err := domain.ParseRoomAvailability(input.Availability)
		if err != nil {
			return nil, apperrors.NewInvalidEnumValue(err)
		}
		room.Availability = availability
	}
	if input.Description != "" {
		room.Description = input.Description
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// AddDescriptionNote appends a timestamped note to the room description.
func (s *RoomService) AddDescriptionNote(ctx context.Context, id, note string) (*domain.Room, error) {
	room, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entry := fmt.Sprintf("%s: %s", time.Now().Format(time.RFC3339), strings.TrimSpace(note))
	if room.Description != "" {
		room.Description = room.Description + "\n" + entry
	} else {
		room.Description = entry
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// Delete removes a room (admin path).
func (s *RoomService) Delete(ctx context.Context, id string) error {
	if err := s.rooms.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("room", map[string]any{"room_id": id})
		}
		return err
	}
	return nil
}
