package app_test

import (
	"context"
	"fmt"
	"time"

	"hotel_booking/internal/domain"
)

// ---- fakes ----

// fakeStore is an in-memory stand-in for both repositories. It mirrors the
// storage contract, including the overlap conflict on insert/update.
type fakeStore struct {
	rooms      map[int64]domain.Room
	bookings   map[int64]domain.Booking
	nextRoomID int64
	nextBookID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rooms:    map[int64]domain.Room{},
		bookings: map[int64]domain.Booking{},
	}
}

func (f *fakeStore) addRoom(r domain.Room) domain.Room {
	f.nextRoomID++
	r.ID = f.nextRoomID
	f.rooms[r.ID] = r
	return r
}

func (f *fakeStore) CreateRoom(ctx context.Context, r domain.Room) (domain.Room, error) {
	for _, ex := range f.rooms {
		if ex.RoomNumber == r.RoomNumber {
			return domain.Room{}, fmt.Errorf("room number %s already exists: %w", r.RoomNumber, domain.ErrConflict)
		}
	}
	return f.addRoom(r), nil
}

func (f *fakeStore) UpdateRoom(ctx context.Context, id int64, p domain.RoomPatch) (domain.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return domain.Room{}, fmt.Errorf("room not found: %w", domain.ErrNotFound)
	}
	if p.RoomNumber != nil {
		r.RoomNumber = *p.RoomNumber
	}
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.Price != nil {
		r.Price = *p.Price
	}
	if p.Capacity != nil {
		r.Capacity = *p.Capacity
	}
	if p.IsAvailable != nil {
		r.IsAvailable = *p.IsAvailable
	}
	f.rooms[id] = r
	return r, nil
}

func (f *fakeStore) DeleteRoom(ctx context.Context, id int64, now time.Time) error {
	if _, ok := f.rooms[id]; !ok {
		return fmt.Errorf("room not found: %w", domain.ErrNotFound)
	}
	for _, b := range f.bookings {
		if b.RoomID == id && !b.Status.Terminal() && b.CheckOut.After(now) {
			return fmt.Errorf("cannot delete room with active bookings: %w", domain.ErrConflict)
		}
	}
	delete(f.rooms, id)
	return nil
}

func (f *fakeStore) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return domain.Room{}, fmt.Errorf("room not found: %w", domain.ErrNotFound)
	}
	return r, nil
}

func (f *fakeStore) ListRooms(ctx context.Context, q domain.RoomsQuery) ([]domain.Room, error) {
	var out []domain.Room
	for _, r := range f.rooms {
		if q.Type != nil && r.Type != *q.Type {
			continue
		}
		if q.MinPrice != nil && r.Price < *q.MinPrice {
			continue
		}
		if q.MaxPrice != nil && r.Price > *q.MaxPrice {
			continue
		}
		if q.IsAvailable != nil && r.IsAvailable != *q.IsAvailable {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeStore) overlapping(roomID int64, in, out time.Time, exclude int64) []domain.Booking {
	var hits []domain.Booking
	for _, b := range f.bookings {
		if b.RoomID != roomID || b.ID == exclude || b.Status.Terminal() {
			continue
		}
		if domain.Overlaps(b.CheckIn, b.CheckOut, in, out) {
			hits = append(hits, b)
		}
	}
	return hits
}

func (f *fakeStore) InsertBooking(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	if _, ok := f.rooms[b.RoomID]; !ok {
		return domain.Booking{}, fmt.Errorf("room not found: %w", domain.ErrNotFound)
	}
	if len(f.overlapping(b.RoomID, b.CheckIn, b.CheckOut, 0)) > 0 {
		return domain.Booking{}, fmt.Errorf("room is not available for selected dates: %w", domain.ErrConflict)
	}
	f.nextBookID++
	b.ID = f.nextBookID
	f.bookings[b.ID] = b
	return b, nil
}

func (f *fakeStore) UpdateBooking(ctx context.Context, id int64, p domain.BookingPatch) (domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return domain.Booking{}, fmt.Errorf("booking not found: %w", domain.ErrNotFound)
	}
	if p.CheckIn != nil || p.CheckOut != nil {
		in, out := b.CheckIn, b.CheckOut
		if p.CheckIn != nil {
			in = *p.CheckIn
		}
		if p.CheckOut != nil {
			out = *p.CheckOut
		}
		if len(f.overlapping(b.RoomID, in, out, id)) > 0 {
			return domain.Booking{}, fmt.Errorf("room is not available for selected dates: %w", domain.ErrConflict)
		}
		b.CheckIn, b.CheckOut = in, out
	}
	if p.NumberOfGuests != nil {
		b.NumberOfGuests = *p.NumberOfGuests
	}
	if p.SpecialRequests != nil {
		b.SpecialRequests = p.SpecialRequests
	}
	if p.Status != nil {
		b.Status = *p.Status
	}
	if p.TotalPrice != nil {
		b.TotalPrice = *p.TotalPrice
	}
	f.bookings[id] = b
	return b, nil
}

func (f *fakeStore) DeleteBooking(ctx context.Context, id int64) error {
	if _, ok := f.bookings[id]; !ok {
		return fmt.Errorf("booking not found: %w", domain.ErrNotFound)
	}
	delete(f.bookings, id)
	return nil
}

func (f *fakeStore) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return domain.Booking{}, fmt.Errorf("booking not found: %w", domain.ErrNotFound)
	}
	return b, nil
}

func (f *fakeStore) ListBookings(ctx context.Context, q domain.BookingsQuery) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range f.bookings {
		if q.UserID != nil && b.UserID != *q.UserID {
			continue
		}
		if q.RoomID != nil && b.RoomID != *q.RoomID {
			continue
		}
		if q.Status != nil && b.Status != *q.Status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeStore) FindOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time, statuses []domain.BookingStatus) ([]domain.Booking, error) {
	return f.overlapping(roomID, checkIn, checkOut, 0), nil
}

type fakeNotifier struct {
	confirmations []int64
	cancellations []int64
	fail          bool
}

func (n *fakeNotifier) BookingConfirmation(ctx context.Context, b domain.Booking) error {
	n.confirmations = append(n.confirmations, b.ID)
	if n.fail {
		return fmt.Errorf("smtp unreachable")
	}
	return nil
}

func (n *fakeNotifier) BookingCancellation(ctx context.Context, b domain.Booking) error {
	n.cancellations = append(n.cancellations, b.ID)
	if n.fail {
		return fmt.Errorf("smtp unreachable")
	}
	return nil
}

type fakeCache struct {
	store map[string]any
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.Room:
		*d = v.(domain.Room)
	case *[]domain.Room:
		*d = v.([]domain.Room)
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.dels = append(c.dels, key)
	delete(c.store, key)
	return nil
}

// ---- helpers ----

func ptr[T any](v T) *T { return &v }

// futureDay returns today+offset at midnight UTC; booking tests stay ahead
// of the past-check-in rule by building dates relative to now.
func futureDay(offset int) time.Time {
	return domain.DateOnly(time.Now()).AddDate(0, 0, offset)
}
