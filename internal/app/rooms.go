package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"hotel_booking/internal/domain"
)

type RoomService struct {
	rooms    domain.RoomRepository
	bookings domain.BookingRepository
	cache    domain.Cache
	cacheTTL time.Duration
	sf       singleflight.Group
}

func NewRoomService(rooms domain.RoomRepository, bookings domain.BookingRepository, cache domain.Cache, ttl time.Duration) *RoomService {
	return &RoomService{rooms: rooms, bookings: bookings, cache: cache, cacheTTL: ttl}
}

const roomsAllKey = "rooms:all"

func roomKey(id int64) string { return fmt.Sprintf("room:%d", id) }

// List returns rooms matching the filter. Only the unfiltered listing is
// cached; filtered queries go straight to the catalog.
func (s *RoomService) List(ctx context.Context, q domain.RoomsQuery) ([]domain.Room, error) {
	cacheable := s.cache != nil && q.Type == nil && q.MinPrice == nil && q.MaxPrice == nil && q.IsAvailable == nil
	if !cacheable {
		return s.rooms.ListRooms(ctx, q)
	}

	var cached []domain.Room
	if ok, _ := s.cache.Get(ctx, roomsAllKey, &cached); ok {
		return cached, nil
	}
	// Collapse concurrent misses into one catalog query.
	v, err, _ := s.sf.Do(roomsAllKey, func() (any, error) {
		rs, err := s.rooms.ListRooms(ctx, q)
		if err != nil {
			return nil, err
		}
		_ = s.cache.Set(ctx, roomsAllKey, rs, int(s.cacheTTL.Seconds()))
		return rs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Room), nil
}

func (s *RoomService) Get(ctx context.Context, id int64) (domain.Room, error) {
	if s.cache != nil {
		var r domain.Room
		if ok, _ := s.cache.Get(ctx, roomKey(id), &r); ok {
			return r, nil
		}
	}
	r, err := s.rooms.GetRoom(ctx, id)
	if err != nil {
		return domain.Room{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, roomKey(id), r, int(s.cacheTTL.Seconds()))
	}
	return r, nil
}

func (s *RoomService) Create(ctx context.Context, actor domain.Actor, r domain.Room) (domain.Room, error) {
	if !actor.Role.Can(domain.CapManageRooms) {
		return domain.Room{}, fmt.Errorf("not authorized to manage rooms: %w", domain.ErrForbidden)
	}
	if err := validateRoom(r); err != nil {
		return domain.Room{}, err
	}
	created, err := s.rooms.CreateRoom(ctx, r)
	if err != nil {
		return domain.Room{}, err
	}
	s.invalidate(ctx, created.ID)
	return created, nil
}

func (s *RoomService) Update(ctx context.Context, actor domain.Actor, id int64, p domain.RoomPatch) (domain.Room, error) {
	if !actor.Role.Can(domain.CapManageRooms) {
		return domain.Room{}, fmt.Errorf("not authorized to manage rooms: %w", domain.ErrForbidden)
	}
	if err := validateRoomPatch(p); err != nil {
		return domain.Room{}, err
	}
	updated, err := s.rooms.UpdateRoom(ctx, id, p)
	if err != nil {
		return domain.Room{}, err
	}
	s.invalidate(ctx, id)
	return updated, nil
}

// Delete removes a room. The repository enforces the guard: a room with a
// pending/confirmed booking whose check-out is still ahead cannot be deleted.
func (s *RoomService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if !actor.Role.Can(domain.CapManageRooms) {
		return fmt.Errorf("not authorized to manage rooms: %w", domain.ErrForbidden)
	}
	if err := s.rooms.DeleteRoom(ctx, id, domain.DateOnly(time.Now())); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// CheckAvailability reports whether the room is free over [checkIn, checkOut)
// together with a guest-facing reason.
func (s *RoomService) CheckAvailability(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, string, error) {
	if _, err := s.rooms.GetRoom(ctx, roomID); err != nil {
		return false, "", err
	}
	in, out := domain.DateOnly(checkIn), domain.DateOnly(checkOut)
	if !out.After(in) {
		return false, "", fmt.Errorf("check-out date must be after check-in date: %w", domain.ErrValidation)
	}
	overlapping, err := s.bookings.FindOverlapping(ctx, roomID, in, out, domain.ActiveStatuses)
	if err != nil {
		return false, "", err
	}
	if len(overlapping) > 0 {
		return false, "Room is not available for selected dates", nil
	}
	return true, "Room is available", nil
}

func (s *RoomService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, roomKey(id))
	_ = s.cache.Del(ctx, roomsAllKey)
}

func validateRoom(r domain.Room) error {
	if strings.TrimSpace(r.RoomNumber) == "" {
		return fmt.Errorf("room number is required: %w", domain.ErrValidation)
	}
	if !domain.ValidRoomType(r.Type) {
		return fmt.Errorf("invalid room type %q: %w", r.Type, domain.ErrValidation)
	}
	if r.Price < 0 {
		return fmt.Errorf("price cannot be negative: %w", domain.ErrValidation)
	}
	if r.Capacity < 1 {
		return fmt.Errorf("capacity must be at least 1: %w", domain.ErrValidation)
	}
	if r.Floor != nil && *r.Floor < 1 {
		return fmt.Errorf("floor must be at least 1: %w", domain.ErrValidation)
	}
	return nil
}

func validateRoomPatch(p domain.RoomPatch) error {
	if p.RoomNumber != nil && strings.TrimSpace(*p.RoomNumber) == "" {
		return fmt.Errorf("room number cannot be empty: %w", domain.ErrValidation)
	}
	if p.Type != nil && !domain.ValidRoomType(*p.Type) {
		return fmt.Errorf("invalid room type %q: %w", *p.Type, domain.ErrValidation)
	}
	if p.Price != nil && *p.Price < 0 {
		return fmt.Errorf("price cannot be negative: %w", domain.ErrValidation)
	}
	if p.Capacity != nil && *p.Capacity < 1 {
		return fmt.Errorf("capacity must be at least 1: %w", domain.ErrValidation)
	}
	if p.Floor != nil && *p.Floor < 1 {
		return fmt.Errorf("floor must be at least 1: %w", domain.ErrValidation)
	}
	return nil
}
