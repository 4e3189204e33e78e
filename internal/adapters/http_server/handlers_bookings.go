package httpserver

import (
	"net/http"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

type createBookingReq struct {
	Room            int64   `json:"room" validate:"required"`
	CheckInDate     string  `json:"checkInDate" validate:"required"`
	CheckOutDate    string  `json:"checkOutDate" validate:"required"`
	NumberOfGuests  int     `json:"numberOfGuests" validate:"required,min=1"`
	GuestName       string  `json:"guestName" validate:"required"`
	GuestEmail      string  `json:"guestEmail" validate:"required,email"`
	GuestPhone      string  `json:"guestPhone" validate:"required"`
	SpecialRequests *string `json:"specialRequests"`
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}
	var req createBookingReq
	if !decodeBody(w, r, &req) {
		return
	}
	checkIn, err := parseDate(req.CheckInDate)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Validation Failed", "valid check-in date is required")
		return
	}
	checkOut, err := parseDate(req.CheckOutDate)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Validation Failed", "valid check-out date is required")
		return
	}

	booking, err := h.Bookings.Create(r.Context(), actor, app.CreateBookingInput{
		RoomID:          req.Room,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		NumberOfGuests:  req.NumberOfGuests,
		GuestName:       req.GuestName,
		GuestEmail:      req.GuestEmail,
		GuestPhone:      req.GuestPhone,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, "Booking created successfully", toBookingView(booking))
}

func (h *Handlers) listMyBookings(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}
	bookings, err := h.Bookings.ListMine(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, toBookingViews(bookings), len(bookings))
}

func (h *Handlers) listAllBookings(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}
	var status *domain.BookingStatus
	if s := r.URL.Query().Get("status"); s != "" {
		bs := domain.BookingStatus(s)
		status = &bs
	}
	bookings, err := h.Bookings.ListAll(r.Context(), actor, status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, toBookingViews(bookings), len(bookings))
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	booking, err := h.Bookings.Get(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", toBookingView(booking))
}

type updateBookingReq struct {
	CheckInDate     *string `json:"checkInDate"`
	CheckOutDate    *string `json:"checkOutDate"`
	NumberOfGuests  *int    `json:"numberOfGuests"`
	SpecialRequests *string `json:"specialRequests"`
	Status          *string `json:"status"`
}

func (h *Handlers) updateBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req updateBookingReq
	if !decodeBody(w, r, &req) {
		return
	}

	var in app.UpdateBookingInput
	if req.CheckInDate != nil {
		t, err := parseDate(*req.CheckInDate)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Validation Failed", "valid check-in date is required")
			return
		}
		in.CheckIn = &t
	}
	if req.CheckOutDate != nil {
		t, err := parseDate(*req.CheckOutDate)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Validation Failed", "valid check-out date is required")
			return
		}
		in.CheckOut = &t
	}
	in.NumberOfGuests = req.NumberOfGuests
	in.SpecialRequests = req.SpecialRequests
	if req.Status != nil {
		bs := domain.BookingStatus(*req.Status)
		in.Status = &bs
	}

	booking, err := h.Bookings.Update(r.Context(), actor, id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, "Booking updated successfully", toBookingView(booking))
}

func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	booking, err := h.Bookings.Cancel(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, "Booking cancelled successfully", toBookingView(booking))
}

func (h *Handlers) deleteBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Bookings.Delete(r.Context(), actor, id); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, "Booking deleted successfully", struct{}{})
}
