package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
)

type BookingService struct {
	rooms    domain.RoomRepository
	bookings domain.BookingRepository
	notifier domain.Notifier
}

func NewBookingService(rooms domain.RoomRepository, bookings domain.BookingRepository, notifier domain.Notifier) *BookingService {
	return &BookingService{rooms: rooms, bookings: bookings, notifier: notifier}
}

type CreateBookingInput struct {
	RoomID          int64
	CheckIn         time.Time
	CheckOut        time.Time
	NumberOfGuests  int
	GuestName       string
	GuestEmail      string
	GuestPhone      string
	SpecialRequests *string
}

// Create validates the request, prices it and writes it to the ledger.
// Nothing is written unless every check passes; the repository re-checks
// overlap under the per-room lock, so two concurrent requests for the same
// dates cannot both land.
func (s *BookingService) Create(ctx context.Context, actor domain.Actor, in CreateBookingInput) (domain.Booking, error) {
	room, err := s.rooms.GetRoom(ctx, in.RoomID)
	if err != nil {
		return domain.Booking{}, err
	}

	if in.NumberOfGuests < 1 {
		return domain.Booking{}, fmt.Errorf("number of guests must be at least 1: %w", domain.ErrValidation)
	}
	if in.NumberOfGuests > room.Capacity {
		return domain.Booking{}, fmt.Errorf("room capacity is %d guests: %w", room.Capacity, domain.ErrValidation)
	}

	checkIn := domain.DateOnly(in.CheckIn)
	checkOut := domain.DateOnly(in.CheckOut)
	today := domain.DateOnly(time.Now())
	if checkIn.Before(today) {
		return domain.Booking{}, fmt.Errorf("check-in date cannot be in the past: %w", domain.ErrValidation)
	}
	if !checkOut.After(checkIn) {
		return domain.Booking{}, fmt.Errorf("check-out date must be after check-in date: %w", domain.ErrValidation)
	}

	// Fast pre-check outside the transaction; the insert repeats it under
	// the room lock.
	overlapping, err := s.bookings.FindOverlapping(ctx, room.ID, checkIn, checkOut, domain.ActiveStatuses)
	if err != nil {
		return domain.Booking{}, err
	}
	if len(overlapping) > 0 {
		observability.ObserveBooking("create", "conflict")
		return domain.Booking{}, fmt.Errorf("room is not available for selected dates: %w", domain.ErrConflict)
	}

	b := domain.Booking{
		RoomID:          room.ID,
		UserID:          actor.ID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		NumberOfGuests:  in.NumberOfGuests,
		TotalPrice:      TotalPrice(checkIn, checkOut, room.Price),
		Status:          domain.StatusPending,
		GuestName:       in.GuestName,
		GuestEmail:      in.GuestEmail,
		GuestPhone:      in.GuestPhone,
		SpecialRequests: in.SpecialRequests,
	}
	created, err := s.bookings.InsertBooking(ctx, b)
	if err != nil {
		observability.ObserveBooking("create", "error")
		return domain.Booking{}, err
	}
	created.Room = &room

	s.notify(ctx, "confirmation", created)
	observability.ObserveBooking("create", "ok")
	return created, nil
}

func (s *BookingService) ListMine(ctx context.Context, actor domain.Actor) ([]domain.Booking, error) {
	return s.bookings.ListBookings(ctx, domain.BookingsQuery{UserID: &actor.ID})
}

func (s *BookingService) ListAll(ctx context.Context, actor domain.Actor, status *domain.BookingStatus) ([]domain.Booking, error) {
	if !actor.Role.Can(domain.CapListAllBookings) {
		return nil, fmt.Errorf("not authorized to list all bookings: %w", domain.ErrForbidden)
	}
	if status != nil && !domain.ValidBookingStatus(*status) {
		return nil, fmt.Errorf("unknown booking status %q: %w", *status, domain.ErrValidation)
	}
	return s.bookings.ListBookings(ctx, domain.BookingsQuery{Status: status})
}

func (s *BookingService) Get(ctx context.Context, actor domain.Actor, id int64) (domain.Booking, error) {
	b, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		return domain.Booking{}, err
	}
	if !actor.MayAccess(b.UserID) {
		return domain.Booking{}, fmt.Errorf("not authorized to access this booking: %w", domain.ErrForbidden)
	}
	return b, nil
}

type UpdateBookingInput struct {
	CheckIn         *time.Time
	CheckOut        *time.Time
	NumberOfGuests  *int
	SpecialRequests *string
	Status          *domain.BookingStatus
}

// Update applies a partial change to a live booking. Terminal bookings are
// immutable. Status is manager/admin territory and must follow the
// transition table; a date change reprices against the room's current rate.
func (s *BookingService) Update(ctx context.Context, actor domain.Actor, id int64, in UpdateBookingInput) (domain.Booking, error) {
	b, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		return domain.Booking{}, err
	}
	if !actor.MayAccess(b.UserID) {
		return domain.Booking{}, fmt.Errorf("not authorized to update this booking: %w", domain.ErrForbidden)
	}
	if b.Status.Terminal() {
		return domain.Booking{}, fmt.Errorf("cannot update %s booking: %w", b.Status, domain.ErrConflict)
	}

	p := domain.BookingPatch{SpecialRequests: in.SpecialRequests}

	if in.Status != nil {
		if !actor.Role.Can(domain.CapChangeBookingStatus) {
			return domain.Booking{}, fmt.Errorf("not authorized to change booking status: %w", domain.ErrForbidden)
		}
		if !domain.ValidBookingStatus(*in.Status) {
			return domain.Booking{}, fmt.Errorf("unknown booking status %q: %w", *in.Status, domain.ErrValidation)
		}
		if !domain.CanTransition(b.Status, *in.Status) {
			return domain.Booking{}, fmt.Errorf("cannot move booking from %s to %s: %w", b.Status, *in.Status, domain.ErrConflict)
		}
		p.Status = in.Status
	}

	if in.NumberOfGuests != nil {
		if *in.NumberOfGuests < 1 {
			return domain.Booking{}, fmt.Errorf("number of guests must be at least 1: %w", domain.ErrValidation)
		}
		p.NumberOfGuests = in.NumberOfGuests
	}

	if in.CheckIn != nil || in.CheckOut != nil {
		checkIn, checkOut := b.CheckIn, b.CheckOut
		if in.CheckIn != nil {
			checkIn = domain.DateOnly(*in.CheckIn)
		}
		if in.CheckOut != nil {
			checkOut = domain.DateOnly(*in.CheckOut)
		}
		if !checkOut.After(checkIn) {
			return domain.Booking{}, fmt.Errorf("check-out date must be after check-in date: %w", domain.ErrValidation)
		}
		room, err := s.rooms.GetRoom(ctx, b.RoomID)
		if err != nil {
			return domain.Booking{}, err
		}
		total := TotalPrice(checkIn, checkOut, room.Price)
		p.CheckIn = &checkIn
		p.CheckOut = &checkOut
		p.TotalPrice = &total
	}

	updated, err := s.bookings.UpdateBooking(ctx, id, p)
	if err != nil {
		observability.ObserveBooking("update", "error")
		return domain.Booking{}, err
	}
	observability.ObserveBooking("update", "ok")
	return updated, nil
}

// Cancel moves a booking to cancelled. Cancelling an already-cancelled or
// completed booking is a Conflict, not a no-op; callers depend on the
// distinction.
func (s *BookingService) Cancel(ctx context.Context, actor domain.Actor, id int64) (domain.Booking, error) {
	b, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		return domain.Booking{}, err
	}
	if !actor.MayAccess(b.UserID) {
		return domain.Booking{}, fmt.Errorf("not authorized to cancel this booking: %w", domain.ErrForbidden)
	}
	if b.Status == domain.StatusCancelled {
		return domain.Booking{}, fmt.Errorf("booking is already cancelled: %w", domain.ErrConflict)
	}
	if b.Status == domain.StatusCompleted {
		return domain.Booking{}, fmt.Errorf("cannot cancel completed booking: %w", domain.ErrConflict)
	}

	cancelled := domain.StatusCancelled
	updated, err := s.bookings.UpdateBooking(ctx, id, domain.BookingPatch{Status: &cancelled})
	if err != nil {
		observability.ObserveBooking("cancel", "error")
		return domain.Booking{}, err
	}

	s.notify(ctx, "cancellation", updated)
	observability.ObserveBooking("cancel", "ok")
	return updated, nil
}

// Delete is the administrative hard removal. It bypasses the state machine:
// any booking goes, terminal or not.
func (s *BookingService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if !actor.Role.Can(domain.CapHardDeleteBooking) {
		return fmt.Errorf("not authorized to delete bookings: %w", domain.ErrForbidden)
	}
	if err := s.bookings.DeleteBooking(ctx, id); err != nil {
		return err
	}
	observability.ObserveBooking("delete", "ok")
	return nil
}

// notify is fire-and-forget: a failed email never unwinds the booking.
func (s *BookingService) notify(ctx context.Context, kind string, b domain.Booking) {
	if s.notifier == nil {
		return
	}
	send := s.notifier.BookingConfirmation
	if kind == "cancellation" {
		send = s.notifier.BookingCancellation
	}
	if err := send(ctx, b); err != nil {
		observability.ObserveMail(kind, "error")
		log.Warn().Err(err).Int64("booking_id", b.ID).Str("kind", kind).Msg("notification failed")
		return
	}
	observability.ObserveMail(kind, "ok")
}
