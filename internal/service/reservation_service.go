package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/room-booking-service/internal/domain"
	"github.com/spec-kit/room-booking-service/internal/events"
	"github.com/spec-kit/room-booking-service/internal/repository"
	apperrors "github.com/spec-kit/room-booking-service/pkg/util"
)

// Requester identifies the caller of a reservation operation. Authorization
// is decided from these fields, never from ambient state.
type Requester struct {
	UserID string
	Role   domain.UserRole
}

// ReservationService owns the no-double-booking invariant: every create and
// update that could violate it goes through here.
type ReservationService struct {
	reservations repository.ReservationRepository
	rooms        repository.RoomRepository
	dispatcher   events.Dispatcher
	logger       *zap.Logger
	now          func() time.Time
}

// ReservationDependencies bundles collaborators for the service.
type ReservationDependencies struct {
	ReservationRepo repository.ReservationRepository
	RoomRepo        repository.RoomRepository
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
	Now             func() time.Time
}

// ReservationInput describes a create/update payload.
type ReservationInput struct {
	RoomID    string
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Amenities string
}

// NewReservationService constructs the service.
func NewReservationService(deps ReservationDependencies) *ReservationService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReservationService{
		reservations: deps.ReservationRepo,
		rooms:        deps.RoomRepo,
		dispatcher:   deps.Dispatcher,
		logger:       logger,
		now:          now,
	}
}

// CheckAvailability reports whether no confirmed reservation for the room
// intersects [start,end), other than excludeID when non-empty. No side effects.
func (s *ReservationService) CheckAvailability(ctx context.Context, roomID string, start, end time.Time, excludeID string) (bool, error) {
	if !start.Before(end) {
		return false, apperrors.NewInvalidInterval("start time must be before end time")
	}
	overlapping, err := s.reservations.ExistsOverlapping(ctx, roomID, start, end, excludeID)
	if err != nil {
		return false, err
	}
	return !overlapping, nil
}

// Create books a room for a future time window, guaranteeing no overlap with
// other confirmed reservations on the same room.
func (s *ReservationService) Create(ctx context.Context, userID string, input ReservationInput) (*domain.Reservation, error) {
	if err := s.validateInterval(input.StartTime, input.EndTime); err != nil {
		return nil, err
	}

	room, err := s.rooms.GetByID(ctx, input.RoomID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("room", map[string]any{"room_id": input.RoomID})
		}
		return nil, err
	}

	res := &domain.Reservation{
		UserID:    userID,
		RoomID:    room.ID,
		Title:     strings.TrimSpace(input.Title),
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Amenities: input.Amenities,
		Status:    domain.ReservationConfirmed,
	}

	if err := s.reservations.CreateConfirmed(ctx, res); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return nil, apperrors.NewRoomNotAvailable(room.ID, input.StartTime, input.EndTime)
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:          events.EventReservationCreated,
		ReservationID: res.ID,
		UserID:        userID,
		Payload: events.ReservationCreatedPayload{
			RoomID:    res.RoomID,
			Title:     res.Title,
			StartTime: res.StartTime,
			EndTime:   res.EndTime,
		},
	})
	return res, nil
}

// Update modifies a reservation's room, interval, title, or amenities.
// Only the owner may update; admins do not bypass this check.
func (s *ReservationService) Update(ctx context.Context, reservationID string, req Requester, input ReservationInput) (*domain.Reservation, error) {
	res, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.UserID != req.UserID {
		return nil, apperrors.NewForbidden("you don't have permission to update this reservation")
	}
	if !input.StartTime.Before(input.EndTime) {
		return nil, apperrors.NewInvalidInterval("start time must be before end time")
	}

	roomChanged := res.RoomID != input.RoomID
	intervalChanged := !res.StartTime.Equal(input.StartTime) || !res.EndTime.Equal(input.EndTime)

	// Only a changed interval must lie in the future. Title or amenities
	// edits keep the original window, which may already be in progress.
	if intervalChanged && input.StartTime.Before(s.now()) {
		return nil, apperrors.NewPastStartTime()
	}

	if roomChanged {
		if _, err := s.rooms.GetByID(ctx, input.RoomID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("room", map[string]any{"room_id": input.RoomID})
			}
			return nil, err
		}
	}

	res.RoomID = input.RoomID
	res.Title = strings.TrimSpace(input.Title)
	res.StartTime = input.StartTime
	res.EndTime = input.EndTime
	res.Amenities = input.Amenities

	switch {
	case roomChanged:
		// The old reservation occupies the old room; no exclusion needed
		// when checking the new one.
		err = s.reservations.UpdateChecked(ctx, res, "")
	case intervalChanged:
		// Same room, new interval: exclude the reservation itself or it
		// would self-conflict.
		err = s.reservations.UpdateChecked(ctx, res, res.ID)
	default:
		err = s.reservations.Update(ctx, res)
	}
	if err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return nil, apperrors.NewRoomNotAvailable(input.RoomID, input.StartTime, input.EndTime)
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:          events.EventReservationUpdated,
		ReservationID: res.ID,
		UserID:        req.UserID,
		Payload: events.ReservationUpdatedPayload{
			RoomID:    res.RoomID,
			StartTime: res.StartTime,
			EndTime:   res.EndTime,
		},
	})
	return res, nil
}

// Cancel sets a reservation to CANCELLED. The owner or an admin may cancel.
// The row is kept; cancelled reservations no longer block the room.
func (s *ReservationService) Cancel(ctx context.Context, reservationID string, req Requester) error {
	res, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return err
	}
	if res.UserID != req.UserID && req.Role != domain.UserRoleAdmin {
		return apperrors.NewForbidden("you don't have permission to cancel this reservation")
	}

	if err := s.reservations.UpdateStatus(ctx, res.ID, domain.ReservationCancelled); err != nil {
		return err
	}

	s.publishEvent(ctx, events.Event{
		Type:          events.EventReservationCancelled,
		ReservationID: res.ID,
		UserID:        req.UserID,
		Payload: events.ReservationStatusChangedPayload{
			OldStatus: res.Status,
			NewStatus: domain.ReservationCancelled,
		},
	})
	return nil
}

// SetStatus force-sets a reservation status (admin path). Any status may be
// set from any other; no transition graph is enforced.
func (s *ReservationService) SetStatus(ctx context.Context, reservationID string, status domain.ReservationStatus) (*domain.Reservation, error) {
	res, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	oldStatus := res.Status
	if err := s.reservations.UpdateStatus(ctx, res.ID, status); err != nil {
		return nil, err
	}
	res.Status = status

	s.publishEvent(ctx, events.Event{
		Type:          events.EventReservationStatusChanged,
		ReservationID: res.ID,
		Payload: events.ReservationStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: status,
		},
	})
	return res, nil
}

// GetByID fetches a single reservation.
func (s *ReservationService) GetByID(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	return s.getReservation(ctx, reservationID)
}

// List returns all reservations.
func (s *ReservationService) List(ctx context.Context) ([]domain.Reservation, error) {
	return s.reservations.List(ctx)
}

// ListForUser returns the reservations owned by a user.
func (s *ReservationService) ListForUser(ctx context.Context, userID string) ([]domain.Reservation, error) {
	return s.reservations.ListByUser(ctx, userID)
}

// ListForRoom returns all reservations targeting a room.
func (s *ReservationService) ListForRoom(ctx context.Context, roomID string) ([]domain.Reservation, error) {
	return s.reservations.ListByRoom(ctx, roomID)
}

// RoomSchedule returns a room's reservations within [from,to].
func (s *ReservationService) RoomSchedule(ctx context.Context, roomID string, from, to time.Time) ([]domain.Reservation, error) {
	return s.reservations.ListByRoomAndRange(ctx, roomID, from, to)
}

// RunSweep transitions every confirmed reservation whose end time precedes
// now to COMPLETED. Idempotent: already-completed rows are untouched.
func (s *ReservationService) RunSweep(ctx context.Context, now time.Time) (int64, error) {
	completed, err := s.reservations.MarkCompleted(ctx, now)
	if err != nil {
		return 0, err
	}
	if completed > 0 {
		s.logger.Info("completed expired reservations", zap.Int64("count", completed))
	}
	return completed, nil
}

func (s *ReservationService) validateInterval(start, end time.Time) error {
	if !start.Before(end) {
		return apperrors.NewInvalidInterval("start time must be before end time")
	}
	if start.Before(s.now()) {
		return apperrors.NewPastStartTime()
	}
	return nil
}

func (s *ReservationService) getReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("reservation", map[string]any{"reservation_id": id})
		}
		return nil, err
	}
	return res, nil
}

func (s *ReservationService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
