package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/room-booking-service/internal/domain"
	"github.com/spec-kit/room-booking-service/internal/repository"
	apperrors "github.com/spec-kit/room-booking-service/pkg/util"
)

type mockReservationRepo struct {
	createConfirmedFunc func(ctx context.Context, res *domain.Reservation) error
	updateCheckedFunc   func(ctx context.Context, res *domain.Reservation, excludeID string) error
	updateFunc          func(ctx context.Context, res *domain.Reservation) error
	updateStatusFunc    func(ctx context.Context, id string, status domain.ReservationStatus) error
	getByIDFunc         func(ctx context.Context, id string) (*domain.Reservation, error)
	existsFunc          func(ctx context.Context, roomID string, start, end time.Time, excludeID string) (bool, error)
	markCompletedFunc   func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockReservationRepo) CreateConfirmed(ctx context.Context, res *domain.Reservation) error {
	if m.createConfirmedFunc != nil {
		return m.createConfirmedFunc(ctx, res)
	}
	return nil
}

func (m *mockReservationRepo) UpdateChecked(ctx context.Context, res *domain.Reservation, excludeID string) error {
	if m.updateCheckedFunc != nil {
		return m.updateCheckedFunc(ctx, res, excludeID)
	}
	return nil
}

func (m *mockReservationRepo) Update(ctx context.Context, res *domain.Reservation) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, res)
	}
	return nil
}

func (m *mockReservationRepo) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockReservationRepo) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockReservationRepo) List(ctx context.Context) ([]domain.Reservation, error) {
	return nil, nil
}

func (m *mockReservationRepo) ListByUser(ctx context.Context, userID string) ([]domain.Reservation, error) {
	return nil, nil
}

func (m *mockReservationRepo) ListByRoom(ctx context.Context, roomID string) ([]domain.Reservation, error) {
	return nil, nil
}

func (m *mockReservationRepo) ListByRoomAndRange(ctx context.Context, roomID string, from, to time.Time) ([]domain.Reservation, error) {
	return nil, nil
}

func (m *mockReservationRepo) ExistsOverlapping(ctx context.Context, roomID string, start, end time.Time, excludeID string) (bool, error) {
	if m.existsFunc != nil {
		return m.existsFunc(ctx, roomID, start, end, excludeID)
	}
	return false, nil
}

func (m *mockReservationRepo) MarkCompleted(ctx context.Context, now time.Time) (int64, error) {
	if m.markCompletedFunc != nil {
		return m.markCompletedFunc(ctx, now)
	}
	return 0, nil
}

type mockRoomRepo struct {
	getByIDFunc func(ctx context.Context, id string) (*domain.Room, error)
}

func (m *mockRoomRepo) Create(ctx context.Context, room *domain.Room) error { return nil }
func (m *mockRoomRepo) Update(ctx context.Context, room *domain.Room) error { return nil }
func (m *mockRoomRepo) Delete(ctx context.Context, id string) error         { return nil }
func (m *mockRoomRepo) List(ctx context.Context) ([]domain.Room, error)     { return nil, nil }

func (m *mockRoomRepo) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &domain.Room{ID: id, Name: "Room", Availability: domain.RoomAvailable}, nil
}

func (m *mockRoomRepo) ListByLocation(ctx context.Context, location domain.RoomLocation) ([]domain.Room, error) {
	return nil, nil
}

func (m *mockRoomRepo) ListByMinCapacity(ctx context.Context, capacity int) ([]domain.Room, error) {
	return nil, nil
}

func (m *mockRoomRepo) ListAvailableForSlot(ctx context.Context, start, end time.Time) ([]domain.Room, error) {
	return nil, nil
}

var frozenNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestService(resRepo *mockReservationRepo, roomRepo *mockRoomRepo) *ReservationService {
	return NewReservationService(ReservationDependencies{
		ReservationRepo: resRepo,
		RoomRepo:        roomRepo,
		Now:             func() time.Time { return frozenNow },
	})
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var derr *apperrors.DomainError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DomainError, got %T: %v", err, err)
	}
	return derr.Code
}

func TestCreateReservation(t *testing.T) {
	future := frozenNow.Add(2 * time.Hour)

	tests := []struct {
		name     string
		input    ReservationInput
		repo     *mockReservationRepo
		room     *mockRoomRepo
		wantCode string
	}{
		{
			name:  "success",
			input: ReservationInput{RoomID: "room-1", Title: " Standup ", StartTime: future, EndTime: future.Add(time.Hour)},
			repo:  &mockReservationRepo{},
			room:  &mockRoomRepo{},
		},
		{
			name:     "start equals end",
			input:    ReservationInput{RoomID: "room-1", StartTime: future, EndTime: future},
			repo:     &mockReservationRepo{},
			room:     &mockRoomRepo{},
			wantCode: "INVALID_INTERVAL",
		},
		{
			name:     "end before start",
			input:    ReservationInput{RoomID: "room-1", StartTime: future.Add(time.Hour), EndTime: future},
			repo:     &mockReservationRepo{},
			room:     &mockRoomRepo{},
			wantCode: "INVALID_INTERVAL",
		},
		{
			name:     "start in the past",
			input:    ReservationInput{RoomID: "room-1", StartTime: frozenNow.Add(-time.Hour), EndTime: future},
			repo:     &mockReservationRepo{},
			room:     &mockRoomRepo{},
			wantCode: "PAST_START_TIME",
		},
		{
			name:  "room missing",
			input: ReservationInput{RoomID: "ghost", StartTime: future, EndTime: future.Add(time.Hour)},
			repo:  &mockReservationRepo{},
			room: &mockRoomRepo{getByIDFunc: func(ctx context.Context, id string) (*domain.Room, error) {
				return nil, pgx.ErrNoRows
			}},
			wantCode: "NOT_FOUND",
		},
		{
			name:  "slot taken",
			input: ReservationInput{RoomID: "room-1", StartTime: future, EndTime: future.Add(time.Hour)},
			repo: &mockReservationRepo{createConfirmedFunc: func(ctx context.Context, res *domain.Reservation) error {
				return repository.ErrOverlap
			}},
			room:     &mockRoomRepo{},
			wantCode: "ROOM_NOT_AVAILABLE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(tt.repo, tt.room)
			res, err := svc.Create(context.Background(), "user-1", tt.input)
			if tt.wantCode != "" {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if code := domainCode(t, err); code != tt.wantCode {
					t.Errorf("error code = %q, want %q", code, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Status != domain.ReservationConfirmed {
				t.Errorf("status = %q, want CONFIRMED", res.Status)
			}
			if res.Title != "Standup" {
				t.Errorf("title = %q, want trimmed %q", res.Title, "Standup")
			}
		})
	}
}

func TestCreateReservationConflictDetails(t *testing.T) {
	start := frozenNow.Add(time.Hour)
	end := start.Add(time.Hour)
	repo := &mockReservationRepo{createConfirmedFunc: func(ctx context.Context, res *domain.Reservation) error {
		return repository.ErrOverlap
	}}
	svc := newTestService(repo, &mockRoomRepo{})

	_, err := svc.Create(context.Background(), "user-1", ReservationInput{RoomID: "room-1", StartTime: start, EndTime: end})
	var derr *apperrors.DomainError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DomainError, got %v", err)
	}
	if derr.HTTPStatus != 409 {
		t.Errorf("HTTPStatus = %d, want 409", derr.HTTPStatus)
	}
	if derr.Details["room_id"] != "room-1" {
		t.Errorf("details room_id = %v, want room-1", derr.Details["room_id"])
	}
}

func TestUpdateReservation(t *testing.T) {
	existingStart := frozenNow.Add(2 * time.Hour)
	existing := func() *domain.Reservation {
		return &domain.Reservation{
			ID:        "res-1",
			UserID:    "owner",
			RoomID:    "room-1",
			Title:     "Standup",
			StartTime: existingStart,
			EndTime:   existingStart.Add(time.Hour),
			Status:    domain.ReservationConfirmed,
		}
	}

	t.Run("non-owner forbidden, even admin", func(t *testing.T) {
		repo := &mockReservationRepo{getByIDFunc: func(ctx context.Context, id string) (*domain.Reservation, error) {
			return existing(), nil
		}}
		svc := newTestService(repo, &mockRoomRepo{})
		input := ReservationInput{RoomID: "room-1", StartTime: existingStart, EndTime: existingStart.Add(time.Hour)}

		_, err := svc.Update(context.Background(), "res-1", Requester{UserID: "someone-else", Role: domain.UserRoleAdmin}, input)
		if code := domainCode(t, err); code != "FORBIDDEN" {
			t.Errorf("error code = %q, want FORBIDDEN", code)
		}
	})

	t.Run("same interval skips overlap check", func(t *testing.T) {
		checked := false
		repo := &mockReservationRepo{
			getByIDFunc: func(ctx context.Context, id string) (*domain.Reservation, error) {
				return existing(), nil
			},
			updateCheckedFunc: func(ctx context.Context, res *domain.Reservation, excludeID string) error {
				checked = true
				return nil
			},
		}
		svc := newTestService(repo, &mockRoomRepo{})
		input := ReservationInput{RoomID: "room-1", Title: "Renamed", StartTime: existingStart, EndTime: existingStart.Add(time.Hour)}

		res, err := svc.Update(context.Background(), "res-1", Requester{UserID: "owner"}, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if checked {
			t.Error("overlap check ran for an unchanged interval")
		}
		if res.Title != "Renamed" {
			t.Errorf("title = %q, want Renamed", res.Title)
		}
	})

	t.Run("new interval excludes itself", func(t *testing.T) {
		var gotExclude string
		repo := &mockReservationRepo{
			getByIDFunc: func(ctx context.Context, id string) (*domain.Reservation, error) {
				return existing(), nil
			},
			updateCheckedFunc: func(ctx context.Context, res *domain.Reservation, excludeID string) error {
				gotExclude = excludeID
				return nil
			},
		}
		svc := newTestService(repo, &mockRoomRepo{})
		input := ReservationInput{RoomID: "room-1", StartTime: existingStart.Add(time.Hour), EndTime: existingStart.Add(2 * time.Hour)}

		if _, err := svc.Update(context.Background(), "res-1", Requester{UserID: "owner"}, input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotExclude != "res-1" {
			t.Errorf("excludeID = %q, want res-1", gotExclude)
		}
	})

	t.Run("room change checks without exclusion", func(t *testing.T) {
		var gotExclude string
		repo := &mockReservationRepo{
			getByIDFunc: func(ctx context.Context, id string) (*domain.Reservation, error) {
				return existing(), nil
			},
			updateCheckedFunc: func(ctx context.Context, res *domain.Reservation, excludeID string) error {
				gotExclude = excludeID
				return nil
			},
		}
		svc := newTestService(repo, &mockRoomRepo{})
		input := ReservationInput{RoomID: "room-2", StartTime: existingStart, EndTime: existingStart.Add(time.Hour)}

		res, err := svc.Update(context.Background(), "res-1", Requester{UserID: "owner"}, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotExclude != "" {
			t.Errorf("excludeID = %q, want empty", gotExclude)
		}
		if res.RoomID != "room-2" {
			t.Errorf("room = %q, want room-2", res.RoomID)
		}
	})

	t.Run("conflict maps to room not available", func(t *testing.T) {
		repo := &mockReservationRepo{
			getByIDFunc: func(ctx context.Context, id string) (*domain.Reservation, error) {
				return existing(), nil
			},
			updateCheckedFunc: func(ctx context.Context, res *domain.Reservation, excludeID string) error {
				return repository.ErrOverlap
			},
		}
		svc := newTestService(repo, &mockRoomRepo{})
		input := ReservationInput{RoomID: "room-1", StartTime: existingStart.Add(time.Hour), EndTime: existingStart.Add(2 * time.Hour)}

		_, err := svc.Update(context.Background(), "res-1", Requester{UserID: "owner"}, input)
		if code := domainCode(t, err); code != "ROOM_NOT_AVAILABLE" {
			t.Errorf("error code = %q, want ROOM_NOT_AVAILABLE", code)
		}
	})

	t.Run("title edit of in-progress reservation succeeds", func(t *testing.T) {
		inProgress := &domain.Reservation{
			ID:        "res-1",
			UserID:    "owner",
			RoomID:    "room-1",
			Title:     "Standup",
			StartTime: frozenNow.Add(-30 * time.Minute),
			EndTime:   frozenNow.Add(30 * time.Minute),
			Status:    domain.ReservationConfirmed,
		}
		checked := false
		repo := &mockReservationRepo{
			getByIDFunc: func(ctx context.Context, id string) (*domain.Reservation, error) {
				clone := *inProgress
				return &clone, nil
			},
			updateCheckedFunc: func(ctx context.Context, res *domain.Reservation, excludeID string) error {
				checked = true
				return nil
			},
		}
		svc := newTestService(repo, &mockRoomRepo{})
		input := ReservationInput{RoomID: "room-1", Title: "Retro", StartTime: inProgress.StartTime, EndTime: inProgress.EndTime}

		res, err := svc.Update(context.Background(), "res-1", Requester{UserID: "owner"}, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if checked {
			t.Error("overlap check ran for an unchanged interval")
		}
		if res.Title != "Retro" {
			t.Errorf("title = %q, want Retro", res.Title)
		}
	})

	t.Run("moving the interval into the past rejected", func(t *testing.T) {
		repo := &mockReservationRepo{getByIDFunc: func(ctx context.Context, id string) (*domain.Reservation, error) {
			return existing(), nil
		}}
		svc := newTestService(repo, &mockRoomRepo{})
		input := ReservationInput{RoomID: "room-1", StartTime: frozenNow.Add(-2 * time.Hour), EndTime: frozenNow.Add(-time.Hour)}

		_, err := svc.Update(context.Background(), "res-1", Requester{UserID: "owner"}, input)
		if code := domainCode(t, err); code != "PAST_START_TIME" {
			t.Errorf("error code = %q, want PAST_START_TIME", code)
		}
	})

	t.Run("missing reservation", func(t *testing.T) {
		svc := newTestService(&mockReservationRepo{}, &mockRoomRepo{})
		input := ReservationInput{RoomID: "room-1", StartTime: existingStart, EndTime: existingStart.Add(time.Hour)}

		_, err := svc.Update(context.Background(), "ghost", Requester{UserID: "owner"}, input)
		if code := domainCode(t, err); code != "NOT_FOUND" {
			t.Errorf("error code = %q, want NOT_FOUND", code)
		}
	})
}

func TestCancelReservation(t *testing.T) {
	existing := &domain.Reservation{ID: "res-1", UserID: "owner", Status: domain.ReservationConfirmed}

	tests := []struct {
		name     string
		req      Requester
		wantCode string
	}{
		{"owner may cancel", Requester{UserID: "owner", Role: domain.UserRoleEmployee}, ""},
		{"admin may cancel", Requester{UserID: "someone-else", Role: domain.UserRoleAdmin}, ""},
		{"stranger forbidden", Requester{UserID: "someone-else", Role: domain.UserRoleEmployee}, "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotStatus domain.ReservationStatus
			repo := &mockReservationRepo{
				getByIDFunc: func(ctx context.Context, id string) (*domain.Reservation, error) {
					clone := *existing
					return &clone, nil
				},
				updateStatusFunc: func(ctx context.Context, id string, status domain.ReservationStatus) error {
					gotStatus = status
					return nil
				},
			}
			svc := newTestService(repo, &mockRoomRepo{})

			err := svc.Cancel(context.Background(), "res-1", tt.req)
			if tt.wantCode != "" {
				if code := domainCode(t, err); code != tt.wantCode {
					t.Errorf("error code = %q, want %q", code, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotStatus != domain.ReservationCancelled {
				t.Errorf("status = %q, want CANCELLED", gotStatus)
			}
		})
	}
}

func TestSetStatusAllowsAnyTransition(t *testing.T) {
	transitions := []struct {
		from, to domain.ReservationStatus
	}{
		{domain.ReservationConfirmed, domain.ReservationCompleted},
		{domain.ReservationCompleted, domain.ReservationConfirmed},
		{domain.ReservationCancelled, domain.ReservationConfirmed},
		{domain.ReservationConfirmed, domain.ReservationConfirmed},
	}

	for _, tr := range transitions {
		repo := &mockReservationRepo{getByIDFunc: func(ctx context.Context, id string) (*domain.Reservation, error) {
			return &domain.Reservation{ID: id, Status: tr.from}, nil
		}}
		svc := newTestService(repo, &mockRoomRepo{})

		res, err := svc.SetStatus(context.Background(), "res-1", tr.to)
		if err != nil {
			t.Fatalf("SetStatus(%s -> %s) unexpected error: %v", tr.from, tr.to, err)
		}
		if res.Status != tr.to {
			t.Errorf("SetStatus(%s -> %s) left status %q", tr.from, tr.to, res.Status)
		}
	}
}

func TestCheckAvailability(t *testing.T) {
	start := frozenNow.Add(time.Hour)
	end := start.Add(time.Hour)

	t.Run("free slot", func(t *testing.T) {
		svc := newTestService(&mockReservationRepo{}, &mockRoomRepo{})
		available, err := svc.CheckAvailability(context.Background(), "room-1", start, end, "")
		if err != nil || !available {
			t.Errorf("CheckAvailability = %v, %v; want true, nil", available, err)
		}
	})

	t.Run("taken slot", func(t *testing.T) {
		repo := &mockReservationRepo{existsFunc: func(ctx context.Context, roomID string, s, e time.Time, excludeID string) (bool, error) {
			return true, nil
		}}
		svc := newTestService(repo, &mockRoomRepo{})
		available, err := svc.CheckAvailability(context.Background(), "room-1", start, end, "")
		if err != nil || available {
			t.Errorf("CheckAvailability = %v, %v; want false, nil", available, err)
		}
	})

	t.Run("inverted interval", func(t *testing.T) {
		svc := newTestService(&mockReservationRepo{}, &mockRoomRepo{})
		_, err := svc.CheckAvailability(context.Background(), "room-1", end, start, "")
		if code := domainCode(t, err); code != "INVALID_INTERVAL" {
			t.Errorf("error code = %q, want INVALID_INTERVAL", code)
		}
	})
}

func TestRunSweep(t *testing.T) {
	var gotNow time.Time
	calls := 0
	repo := &mockReservationRepo{markCompletedFunc: func(ctx context.Context, now time.Time) (int64, error) {
		calls++
		gotNow = now
		if calls == 1 {
			return 3, nil
		}
		return 0, nil
	}}
	svc := newTestService(repo, &mockRoomRepo{})

	completed, err := svc.RunSweep(context.Background(), frozenNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if completed != 3 {
		t.Errorf("completed = %d, want 3", completed)
	}
	if !gotNow.Equal(frozenNow) {
		t.Errorf("sweep time = %v, want %v", gotNow, frozenNow)
	}

	// second run finds nothing left to do
	completed, err = svc.RunSweep(context.Background(), frozenNow)
	if err != nil || completed != 0 {
		t.Errorf("repeat sweep = %d, %v; want 0, nil", completed, err)
	}

	repoErr := errors.New("connection reset")
	failing := &mockReservationRepo{markCompletedFunc: func(ctx context.Context, now time.Time) (int64, error) {
		return 0, repoErr
	}}
	svc = newTestService(failing, &mockRoomRepo{})
	if _, err := svc.RunSweep(context.Background(), frozenNow); !errors.Is(err, repoErr) {
		t.Errorf("expected repository error to propagate, got %v", err)
	}
}
