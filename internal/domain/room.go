package domain

import "time"

type RoomType string

const (
	RoomSingle       RoomType = "Single"
	RoomDouble       RoomType = "Double"
	RoomSuite        RoomType = "Suite"
	RoomDeluxe       RoomType = "Deluxe"
	RoomPresidential RoomType = "Presidential"
)

func ValidRoomType(t RoomType) bool {
	switch t {
	case RoomSingle, RoomDouble, RoomSuite, RoomDeluxe, RoomPresidential:
		return true
	}
	return false
}

type Room struct {
	ID          int64
	RoomNumber  string
	Type        RoomType
	Price       float64 // nightly rate
	Capacity    int
	Description *string
	Amenities   []string
	Images      []string
	Floor       *int
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RoomPatch carries partial updates; nil means "leave unchanged".
type RoomPatch struct {
	RoomNumber  *string
	Type        *RoomType
	Price       *float64
	Capacity    *int
	Description *string
	Amenities   []string
	Images      []string
	Floor       *int
	IsAvailable *bool
}

type RoomsQuery struct {
	Type        *RoomType
	MinPrice    *float64
	MaxPrice    *float64
	IsAvailable *bool
}
