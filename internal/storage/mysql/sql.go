package mysql

const insertRoomSQL = `
INSERT INTO rooms
  (room_number, type, price, capacity, description, amenities, images, floor, is_available)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const selectRoomCols = `
  id, room_number, type, price, capacity, description, amenities, images, floor, is_available, created_at, updated_at
`

const getRoomSQL = `SELECT` + selectRoomCols + `FROM rooms WHERE id = ?`

const lockRoomSQL = `SELECT id FROM rooms WHERE id = ? FOR UPDATE`

const deleteRoomSQL = `DELETE FROM rooms WHERE id = ?`

// A room is delete-blocked while an active booking still has its check-out
// ahead of today.
const countActiveFutureSQL = `
SELECT COUNT(*) FROM bookings
WHERE room_id = ? AND status IN ('pending','confirmed') AND check_out > ?
`

const insertBookingSQL = `
INSERT INTO bookings
  (room_id, user_id, check_in, check_out, number_of_guests, total_price, status,
   guest_name, guest_email, guest_phone, special_requests)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// Half-open interval intersection: [a1,a2) and [b1,b2) overlap iff
// a1 < b2 AND a2 > b1. Back-to-back stays share a boundary and do not match.
const countOverlapSQL = `
SELECT COUNT(*) FROM bookings
WHERE room_id = ? AND status IN ('pending','confirmed')
  AND check_in < ? AND check_out > ?
`

const countOverlapExceptSQL = countOverlapSQL + ` AND id <> ?`

// Booking reads join the catalog so callers get the room snapshot in one trip.
const selectBookingSQL = `
SELECT
  b.id, b.room_id, b.user_id, b.check_in, b.check_out, b.number_of_guests,
  b.total_price, b.status, b.guest_name, b.guest_email, b.guest_phone,
  b.special_requests, b.created_at, b.updated_at,
  r.id, r.room_number, r.type, r.price, r.capacity, r.description,
  r.amenities, r.images, r.floor, r.is_available, r.created_at, r.updated_at
FROM bookings b
LEFT JOIN rooms r ON r.id = b.room_id
`

const deleteBookingSQL = `DELETE FROM bookings WHERE id = ?`
