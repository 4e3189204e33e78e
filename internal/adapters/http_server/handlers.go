package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

type Handlers struct {
	Rooms    *app.RoomService
	Bookings *app.BookingService
}

var validate = validator.New()

func (s *Server) MountHandlers(h *Handlers, auth func(http.Handler) http.Handler) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1/rooms", func(r chi.Router) {
		r.Get("/", h.listRooms)
		r.Get("/{id}", h.getRoom)
		r.Post("/{id}/check-availability", h.checkAvailability)

		r.Group(func(pr chi.Router) {
			pr.Use(auth)
			pr.Post("/", h.createRoom)
			pr.Put("/{id}", h.updateRoom)
			pr.Delete("/{id}", h.deleteRoom)
		})
	})

	s.mux.Route("/v1/bookings", func(r chi.Router) {
		r.Use(auth)
		r.Post("/", h.createBooking)
		r.Get("/", h.listMyBookings)
		r.Get("/all", h.listAllBookings)
		r.Get("/{id}", h.getBooking)
		r.Put("/{id}", h.updateBooking)
		r.Put("/{id}/cancel", h.cancelBooking)
		r.Delete("/{id}", h.deleteBooking)
	})
}

// ---- responses ----

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps domain error kinds onto HTTP statuses. Anything untyped is
// a 500 with the detail kept out of the response.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrValidation):
		writeProblem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeProblem(w, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
	default:
		log.Error().Err(err).Msg("internal error")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data"`
}

func writeData(w http.ResponseWriter, status int, msg string, data any) {
	writeJSON(w, status, envelope{Success: true, Message: msg, Data: data})
}

func writeList(w http.ResponseWriter, data any, count int) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Count: &count, Data: data})
}

// ---- request plumbing ----

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return 0, false
	}
	return id, true
}

// parseDate accepts a plain calendar date or a full RFC3339 timestamp; the
// time-of-day portion is dropped either way.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return domain.DateOnly(t), nil
}

func mustActor(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	a, ok := ActorFrom(r.Context())
	if !ok {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "missing identity")
	}
	return a, ok
}

// ---- JSON views ----

type roomView struct {
	ID          int64     `json:"id"`
	RoomNumber  string    `json:"roomNumber"`
	Type        string    `json:"type"`
	Price       float64   `json:"price"`
	Capacity    int       `json:"capacity"`
	Description *string   `json:"description,omitempty"`
	Amenities   []string  `json:"amenities"`
	Images      []string  `json:"images"`
	Floor       *int      `json:"floor,omitempty"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toRoomView(r domain.Room) roomView {
	if r.Amenities == nil {
		r.Amenities = []string{}
	}
	if r.Images == nil {
		r.Images = []string{}
	}
	return roomView{
		ID:          r.ID,
		RoomNumber:  r.RoomNumber,
		Type:        string(r.Type),
		Price:       r.Price,
		Capacity:    r.Capacity,
		Description: r.Description,
		Amenities:   r.Amenities,
		Images:      r.Images,
		Floor:       r.Floor,
		IsAvailable: r.IsAvailable,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toRoomViews(rs []domain.Room) []roomView {
	out := make([]roomView, 0, len(rs))
	for _, r := range rs {
		out = append(out, toRoomView(r))
	}
	return out
}

type bookingView struct {
	ID              int64     `json:"id"`
	RoomID          int64     `json:"roomId"`
	Room            *roomView `json:"room,omitempty"`
	UserID          int64     `json:"userId"`
	CheckInDate     string    `json:"checkInDate"`
	CheckOutDate    string    `json:"checkOutDate"`
	NumberOfGuests  int       `json:"numberOfGuests"`
	TotalPrice      float64   `json:"totalPrice"`
	Status          string    `json:"status"`
	GuestName       string    `json:"guestName"`
	GuestEmail      string    `json:"guestEmail"`
	GuestPhone      string    `json:"guestPhone"`
	SpecialRequests *string   `json:"specialRequests,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toBookingView(b domain.Booking) bookingView {
	v := bookingView{
		ID:              b.ID,
		RoomID:          b.RoomID,
		UserID:          b.UserID,
		CheckInDate:     b.CheckIn.Format("2006-01-02"),
		CheckOutDate:    b.CheckOut.Format("2006-01-02"),
		NumberOfGuests:  b.NumberOfGuests,
		TotalPrice:      b.TotalPrice,
		Status:          string(b.Status),
		GuestName:       b.GuestName,
		GuestEmail:      b.GuestEmail,
		GuestPhone:      b.GuestPhone,
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if b.Room != nil {
		rv := toRoomView(*b.Room)
		v.Room = &rv
	}
	return v
}

func toBookingViews(bs []domain.Booking) []bookingView {
	out := make([]bookingView, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBookingView(b))
	}
	return out
}
