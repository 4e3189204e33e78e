package domain

type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Actor is the authenticated caller as supplied by the identity layer.
// The core never authenticates; it only enforces predicates on this pair.
type Actor struct {
	ID   int64
	Role Role
}

type Capability int

const (
	CapManageRooms Capability = iota
	CapListAllBookings
	CapChangeBookingStatus
	CapHardDeleteBooking
)

var grants = map[Role]map[Capability]bool{
	RoleManager: {
		CapManageRooms:         true,
		CapListAllBookings:     true,
		CapChangeBookingStatus: true,
	},
	RoleAdmin: {
		CapManageRooms:         true,
		CapListAllBookings:     true,
		CapChangeBookingStatus: true,
		CapHardDeleteBooking:   true,
	},
}

func (r Role) Can(c Capability) bool { return grants[r][c] }

// MayAccess reports whether the actor may read/update/cancel a booking
// owned by ownerID: the owner themselves, or a manager/admin.
func (a Actor) MayAccess(ownerID int64) bool {
	return a.ID == ownerID || a.Role.Can(CapListAllBookings)
}
