package domain

import (
	"context"
	"time"
)

type RoomRepository interface {
	// Write paths
	CreateRoom(ctx context.Context, r Room) (Room, error)
	UpdateRoom(ctx context.Context, id int64, p RoomPatch) (Room, error)
	// DeleteRoom fails with ErrConflict while the room has a pending or
	// confirmed booking whose check-out is in the future.
	DeleteRoom(ctx context.Context, id int64, now time.Time) error

	// Read paths
	GetRoom(ctx context.Context, id int64) (Room, error)
	ListRooms(ctx context.Context, q RoomsQuery) ([]Room, error)
}

type BookingRepository interface {
	// InsertBooking serializes against concurrent writers for the same room
	// and fails with ErrConflict if the date range is already taken by a
	// booking in ActiveStatuses.
	InsertBooking(ctx context.Context, b Booking) (Booking, error)
	// UpdateBooking applies a partial update. When the patch moves dates it
	// re-checks overlap (excluding the booking itself) under the same
	// serialization as InsertBooking.
	UpdateBooking(ctx context.Context, id int64, p BookingPatch) (Booking, error)
	DeleteBooking(ctx context.Context, id int64) error

	GetBooking(ctx context.Context, id int64) (Booking, error)
	ListBookings(ctx context.Context, q BookingsQuery) ([]Booking, error)
	FindOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time, statuses []BookingStatus) ([]Booking, error)
}

// Notifier delivers guest-facing messages. Implementations are best-effort:
// the booking operation never fails because a notification did.
type Notifier interface {
	BookingConfirmation(ctx context.Context, b Booking) error
	BookingCancellation(ctx context.Context, b Booking) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
