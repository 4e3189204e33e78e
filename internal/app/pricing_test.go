package app_test

import (
	"testing"
	"time"

	"hotel_booking/internal/app"
)

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNights(t *testing.T) {
	cases := []struct {
		name    string
		in, out string
		want    int
	}{
		{"two_full_nights", "2024-06-01T00:00:00Z", "2024-06-03T00:00:00Z", 2},
		{"one_night", "2024-06-01T00:00:00Z", "2024-06-02T00:00:00Z", 1},
		{"partial_day_rounds_up", "2024-06-01T00:00:00Z", "2024-06-02T12:00:00Z", 2},
		{"one_hour_is_a_night", "2024-06-01T00:00:00Z", "2024-06-01T01:00:00Z", 1},
		{"week", "2024-06-01T00:00:00Z", "2024-06-08T00:00:00Z", 7},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := app.Nights(at(c.in), at(c.out)); got != c.want {
				t.Fatalf("Nights = %d, want %d", got, c.want)
			}
		})
	}
}

func TestTotalPrice(t *testing.T) {
	in := at("2024-06-01T00:00:00Z")
	if got := app.TotalPrice(in, at("2024-06-03T00:00:00Z"), 100); got != 200 {
		t.Fatalf("TotalPrice = %v, want 200", got)
	}
	if got := app.TotalPrice(in, at("2024-06-03T00:00:00Z"), 0); got != 0 {
		t.Fatalf("TotalPrice at zero rate = %v, want 0", got)
	}
}

// Price never shrinks as the stay gets longer at a fixed rate.
func TestTotalPrice_MonotonicInStayLength(t *testing.T) {
	in := at("2024-06-01T00:00:00Z")
	prev := 0.0
	for d := 1; d <= 30; d++ {
		total := app.TotalPrice(in, in.AddDate(0, 0, d), 75)
		if total < prev {
			t.Fatalf("total dropped from %v to %v at %d days", prev, total, d)
		}
		prev = total
	}
}
