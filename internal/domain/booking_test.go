package domain_test

import (
	"testing"
	"time"

	"hotel_booking/internal/domain"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to domain.BookingStatus
		ok       bool
	}{
		{domain.StatusPending, domain.StatusConfirmed, true},
		{domain.StatusPending, domain.StatusCancelled, true},
		{domain.StatusPending, domain.StatusCompleted, false}, // no skipping
		{domain.StatusConfirmed, domain.StatusCompleted, true},
		{domain.StatusConfirmed, domain.StatusCancelled, true},
		{domain.StatusConfirmed, domain.StatusPending, false},
		{domain.StatusCancelled, domain.StatusPending, false},
		{domain.StatusCancelled, domain.StatusConfirmed, false},
		{domain.StatusCompleted, domain.StatusCancelled, false},
	}
	for _, c := range cases {
		if got := domain.CanTransition(c.from, c.to); got != c.ok {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.ok)
		}
	}
}

func TestTerminal(t *testing.T) {
	if domain.StatusPending.Terminal() || domain.StatusConfirmed.Terminal() {
		t.Fatal("active statuses must not be terminal")
	}
	if !domain.StatusCancelled.Terminal() || !domain.StatusCompleted.Terminal() {
		t.Fatal("cancelled/completed must be terminal")
	}
}

func TestOverlaps_HalfOpen(t *testing.T) {
	cases := []struct {
		name           string
		a1, a2, b1, b2 string
		want           bool
	}{
		{"nested", "2024-06-01", "2024-06-05", "2024-06-02", "2024-06-03", true},
		{"partial", "2024-06-01", "2024-06-03", "2024-06-02", "2024-06-04", true},
		{"identical", "2024-06-01", "2024-06-03", "2024-06-01", "2024-06-03", true},
		{"back_to_back", "2024-06-01", "2024-06-03", "2024-06-03", "2024-06-05", false},
		{"back_to_back_rev", "2024-06-03", "2024-06-05", "2024-06-01", "2024-06-03", false},
		{"disjoint", "2024-06-01", "2024-06-02", "2024-06-10", "2024-06-12", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := domain.Overlaps(day(c.a1), day(c.a2), day(c.b1), day(c.b2))
			if got != c.want {
				t.Fatalf("Overlaps = %v, want %v", got, c.want)
			}
		})
	}
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("X", 3*3600)
	in := time.Date(2024, 6, 1, 2, 30, 0, 0, loc) // 2024-05-31T23:30Z
	got := domain.DateOnly(in)
	if got != day("2024-05-31") {
		t.Fatalf("DateOnly = %v", got)
	}
	if got.Location() != time.UTC {
		t.Fatal("DateOnly must return UTC")
	}
}

func TestActorMayAccess(t *testing.T) {
	owner := domain.Actor{ID: 7, Role: domain.RoleUser}
	other := domain.Actor{ID: 8, Role: domain.RoleUser}
	mgr := domain.Actor{ID: 9, Role: domain.RoleManager}

	if !owner.MayAccess(7) {
		t.Fatal("owner must access own booking")
	}
	if other.MayAccess(7) {
		t.Fatal("stranger must not access booking")
	}
	if !mgr.MayAccess(7) {
		t.Fatal("manager must access any booking")
	}
	if mgr.Role.Can(domain.CapHardDeleteBooking) {
		t.Fatal("hard delete is admin only")
	}
	if !domain.RoleAdmin.Can(domain.CapHardDeleteBooking) {
		t.Fatal("admin must hard delete")
	}
}
