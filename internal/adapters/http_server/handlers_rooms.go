package httpserver

import (
	"net/http"
	"strconv"

	"hotel_booking/internal/domain"
)

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	var q domain.RoomsQuery
	qs := r.URL.Query()
	if t := qs.Get("type"); t != "" {
		rt := domain.RoomType(t)
		q.Type = &rt
	}
	if v := qs.Get("minPrice"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Validation Failed", "minPrice must be a number")
			return
		}
		q.MinPrice = &f
	}
	if v := qs.Get("maxPrice"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Validation Failed", "maxPrice must be a number")
			return
		}
		q.MaxPrice = &f
	}
	if v := qs.Get("isAvailable"); v != "" {
		b := v == "true"
		q.IsAvailable = &b
	}

	rooms, err := h.Rooms.List(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, toRoomViews(rooms), len(rooms))
}

func (h *Handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	room, err := h.Rooms.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", toRoomView(room))
}

type roomReq struct {
	RoomNumber  string   `json:"roomNumber" validate:"required"`
	Type        string   `json:"type" validate:"required"`
	Price       *float64 `json:"price" validate:"required"`
	Capacity    *int     `json:"capacity" validate:"required"`
	Description *string  `json:"description"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
	Floor       *int     `json:"floor"`
	IsAvailable *bool    `json:"isAvailable"`
}

func (h *Handlers) createRoom(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}
	var req roomReq
	if !decodeBody(w, r, &req) {
		return
	}
	room := domain.Room{
		RoomNumber:  req.RoomNumber,
		Type:        domain.RoomType(req.Type),
		Price:       *req.Price,
		Capacity:    *req.Capacity,
		Description: req.Description,
		Amenities:   req.Amenities,
		Images:      req.Images,
		Floor:       req.Floor,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}

	created, err := h.Rooms.Create(r.Context(), actor, room)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, "Room created successfully", toRoomView(created))
}

type roomPatchReq struct {
	RoomNumber  *string  `json:"roomNumber"`
	Type        *string  `json:"type"`
	Price       *float64 `json:"price"`
	Capacity    *int     `json:"capacity"`
	Description *string  `json:"description"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
	Floor       *int     `json:"floor"`
	IsAvailable *bool    `json:"isAvailable"`
}

func (h *Handlers) updateRoom(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req roomPatchReq
	if !decodeBody(w, r, &req) {
		return
	}
	p := domain.RoomPatch{
		RoomNumber:  req.RoomNumber,
		Price:       req.Price,
		Capacity:    req.Capacity,
		Description: req.Description,
		Amenities:   req.Amenities,
		Images:      req.Images,
		Floor:       req.Floor,
		IsAvailable: req.IsAvailable,
	}
	if req.Type != nil {
		rt := domain.RoomType(*req.Type)
		p.Type = &rt
	}

	updated, err := h.Rooms.Update(r.Context(), actor, id, p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, "Room updated successfully", toRoomView(updated))
}

func (h *Handlers) deleteRoom(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Rooms.Delete(r.Context(), actor, id); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, "Room deleted successfully", struct{}{})
}

type availabilityReq struct {
	CheckInDate  string `json:"checkInDate" validate:"required"`
	CheckOutDate string `json:"checkOutDate" validate:"required"`
}

func (h *Handlers) checkAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req availabilityReq
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

	available, reason, err := h.Rooms.CheckAvailability(r.Context(), id, checkIn, checkOut)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", struct {
		IsAvailable bool   `json:"isAvailable"`
		Message     string `json:"message"`
	}{available, reason})
}
