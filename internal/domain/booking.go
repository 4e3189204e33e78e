package domain

import "time"

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// ActiveStatuses are the statuses that occupy a room's dates.
var ActiveStatuses = []BookingStatus{StatusPending, StatusConfirmed}

// transitions is the full lifecycle: cancelled and completed are terminal.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
}

func CanTransition(from, to BookingStatus) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

func (s BookingStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

type Booking struct {
	ID              int64
	RoomID          int64
	UserID          int64
	CheckIn         time.Time // midnight UTC
	CheckOut        time.Time // midnight UTC, exclusive
	NumberOfGuests  int
	TotalPrice      float64
	Status          BookingStatus
	GuestName       string
	GuestEmail      string
	GuestPhone      string
	SpecialRequests *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Room is populated on reads that join the catalog; nil otherwise.
	Room *Room
}

// BookingPatch carries partial updates; nil means "leave unchanged".
type BookingPatch struct {
	CheckIn         *time.Time
	CheckOut        *time.Time
	NumberOfGuests  *int
	SpecialRequests *string
	Status          *BookingStatus
	TotalPrice      *float64
}

type BookingsQuery struct {
	UserID *int64
	RoomID *int64
	Status *BookingStatus
}

// Overlaps reports whether [a1,a2) and [b1,b2) intersect. Half-open
// semantics: a booking checking out the day another checks in does not
// overlap, so same-day turnover is allowed.
func Overlaps(a1, a2, b1, b2 time.Time) bool {
	return a1.Before(b2) && a2.After(b1)
}

// DateOnly truncates t to midnight UTC. Booking dates are calendar dates;
// time-of-day never participates in overlap or pricing.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
