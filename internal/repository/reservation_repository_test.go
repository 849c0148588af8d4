package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/spec-kit/room-booking-service/internal/domain"
)

// The no-double-booking rule is enforced by overlapExistsQuery, not by Go
// code, so the query text is the contract under test: it must use the same
// half-open convention as domain.Overlaps and only count confirmed rows.
func TestOverlapQueryConvention(t *testing.T) {
	fragments := []struct {
		fragment string
		reason   string
	}{
		{"start_time < $3", "existing start must be strictly before the requested end"},
		{"end_time > $2", "existing end must be strictly after the requested start"},
		{"status = 'CONFIRMED'", "only confirmed reservations occupy their interval"},
		{"($4 = '' OR id::text != $4)", "updates must be able to exclude their own row"},
	}
	for _, f := range fragments {
		if !strings.Contains(overlapExistsQuery, f.fragment) {
			t.Errorf("overlap query missing %q (%s)", f.fragment, f.reason)
		}
	}

	for _, op := range []string{"start_time <= ", "end_time >= "} {
		if strings.Contains(overlapExistsQuery, op) {
			t.Errorf("overlap query uses inclusive comparison %q; back-to-back reservations sharing an endpoint would conflict", op)
		}
	}
}

// Evaluates the query's comparisons in Go and checks them against
// domain.Overlaps over the boundary cases, so the two forms of the
// predicate cannot drift apart silently.
func TestOverlapQueryMatchesReferencePredicate(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

	// Mirrors overlapExistsQuery with existing row (exStart, exEnd) and
	// requested interval ($2, $3): start_time < $3 AND end_time > $2.
	queryConflicts := func(exStart, exEnd, reqStart, reqEnd time.Time) bool {
		return exStart.Before(reqEnd) && exEnd.After(reqStart)
	}

	tests := []struct {
		name                             string
		exStart, exEnd, reqStart, reqEnd time.Time
	}{
		{"disjoint", at(0), at(1), at(2), at(3)},
		{"back to back, request after", at(0), at(1), at(1), at(2)},
		{"back to back, request before", at(1), at(2), at(0), at(1)},
		{"partial overlap", at(0), at(2), at(1), at(3)},
		{"identical", at(0), at(1), at(0), at(1)},
		{"containment", at(0), at(3), at(1), at(2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := domain.Overlaps(tt.exStart, tt.exEnd, tt.reqStart, tt.reqEnd)
			got := queryConflicts(tt.exStart, tt.exEnd, tt.reqStart, tt.reqEnd)
			if got != want {
				t.Errorf("query predicate = %v, reference predicate = %v", got, want)
			}
		})
	}
}
