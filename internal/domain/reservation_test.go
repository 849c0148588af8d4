package domain

import (
	"testing"
	"time"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return base.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	tests := []struct {
		name                       string
		startA, endA, startB, endB time.Time
		want                       bool
	}{
		{"disjoint before", at(0, 0), at(1, 0), at(2, 0), at(3, 0), false},
		{"disjoint after", at(2, 0), at(3, 0), at(0, 0), at(1, 0), false},
		{"back to back, shared endpoint", at(0, 0), at(1, 0), at(1, 0), at(2, 0), false},
		{"back to back, other order", at(1, 0), at(2, 0), at(0, 0), at(1, 0), false},
		{"partial overlap", at(0, 0), at(1, 30), at(1, 0), at(2, 0), true},
		{"identical intervals", at(0, 0), at(1, 0), at(0, 0), at(1, 0), true},
		{"containment", at(0, 0), at(3, 0), at(1, 0), at(2, 0), true},
		{"contained by", at(1, 0), at(2, 0), at(0, 0), at(3, 0), true},
		{"one minute intrusion", at(0, 0), at(1, 1), at(1, 0), at(2, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.startA, tt.endA, tt.startB, tt.endB); got != tt.want {
				t.Errorf("Overlaps(%v, %v, %v, %v) = %v, want %v", tt.startA, tt.endA, tt.startB, tt.endB, got, tt.want)
			}
		})
	}
}

func TestParseReservationStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    ReservationStatus
		wantErr bool
	}{
		{"CONFIRMED", ReservationConfirmed, false},
		{"confirmed", ReservationConfirmed, false},
		{"  cancelled ", ReservationCancelled, false},
		{"Completed", ReservationCompleted, false},
		{"PENDING", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseReservationStatus(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseReservationStatus(%q) expected error, got %q", tt.raw, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseReservationStatus(%q) unexpected error: %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseReservationStatus(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
