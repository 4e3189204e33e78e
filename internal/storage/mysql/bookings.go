package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"hotel_booking/internal/domain"
)

// InsertBooking writes a booking after re-checking overlap under the room
// lock. Two concurrent requests for intersecting dates on the same room
// serialize here; the loser sees the winner's row and gets ErrConflict.
func (r *Repo) InsertBooking(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Booking{}, err
	}
	defer tx.Rollback()

	var locked int64
	if err := tx.QueryRowContext(ctx, lockRoomSQL, b.RoomID).Scan(&locked); err != nil {
		if err == sql.ErrNoRows {
			return domain.Booking{}, fmt.Errorf("room not found: %w", domain.ErrNotFound)
		}
		return domain.Booking{}, mapWriteErr(err, "")
	}

	var overlapping int
	if err := tx.QueryRowContext(ctx, countOverlapSQL, b.RoomID, b.CheckOut, b.CheckIn).Scan(&overlapping); err != nil {
		return domain.Booking{}, err
	}
	if overlapping > 0 {
		return domain.Booking{}, fmt.Errorf("room is not available for selected dates: %w", domain.ErrConflict)
	}

	res, err := tx.ExecContext(ctx, insertBookingSQL,
		b.RoomID,
		b.UserID,
		b.CheckIn,
		b.CheckOut,
		b.NumberOfGuests,
		b.TotalPrice,
		string(b.Status),
		b.GuestName,
		b.GuestEmail,
		b.GuestPhone,
		valStr(b.SpecialRequests),
	)
	if err != nil {
		return domain.Booking{}, mapWriteErr(err, "")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Booking{}, mapWriteErr(err, "")
	}
	return r.GetBooking(ctx, id)
}

// UpdateBooking applies a partial update. When dates move, the room row is
// locked and overlap re-checked excluding the booking itself, under the same
// serialization as inserts.
func (r *Repo) UpdateBooking(ctx context.Context, id int64, p domain.BookingPatch) (domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Booking{}, err
	}
	defer tx.Rollback()

	var roomID int64
	var curIn, curOut time.Time
	err = tx.QueryRowContext(ctx,
		"SELECT room_id, check_in, check_out FROM bookings WHERE id = ? FOR UPDATE", id).
		Scan(&roomID, &curIn, &curOut)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Booking{}, fmt.Errorf("booking not found: %w", domain.ErrNotFound)
		}
		return domain.Booking{}, mapWriteErr(err, "")
	}

	if p.CheckIn != nil || p.CheckOut != nil {
		newIn, newOut := curIn, curOut
		if p.CheckIn != nil {
			newIn = *p.CheckIn
		}
		if p.CheckOut != nil {
			newOut = *p.CheckOut
		}

		var locked int64
		if err := tx.QueryRowContext(ctx, lockRoomSQL, roomID).Scan(&locked); err != nil {
			return domain.Booking{}, mapWriteErr(err, "")
		}
		var overlapping int
		if err := tx.QueryRowContext(ctx, countOverlapExceptSQL, roomID, newOut, newIn, id).Scan(&overlapping); err != nil {
			return domain.Booking{}, err
		}
		if overlapping > 0 {
			return domain.Booking{}, fmt.Errorf("room is not available for selected dates: %w", domain.ErrConflict)
		}
	}

	sets := make([]string, 0, 6)
	args := make([]any, 0, 7)
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if p.CheckIn != nil {
		add("check_in", *p.CheckIn)
	}
	if p.CheckOut != nil {
		add("check_out", *p.CheckOut)
	}
	if p.NumberOfGuests != nil {
		add("number_of_guests", *p.NumberOfGuests)
	}
	if p.SpecialRequests != nil {
		add("special_requests", *p.SpecialRequests)
	}
	if p.Status != nil {
		add("status", string(*p.Status))
	}
	if p.TotalPrice != nil {
		add("total_price", *p.TotalPrice)
	}
	if len(sets) > 0 {
		args = append(args, id)
		if _, err := tx.ExecContext(ctx, "UPDATE bookings SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...); err != nil {
			return domain.Booking{}, mapWriteErr(err, "")
		}
	}
	if err := tx.Commit(); err != nil {
		return domain.Booking{}, mapWriteErr(err, "")
	}
	return r.GetBooking(ctx, id)
}

func (r *Repo) DeleteBooking(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteBookingSQL, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("booking not found: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *Repo) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	row := r.db.QueryRowContext(ctx, selectBookingSQL+" WHERE b.id = ?", id)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return domain.Booking{}, fmt.Errorf("booking not found: %w", domain.ErrNotFound)
	}
	return b, err
}

func (r *Repo) ListBookings(ctx context.Context, q domain.BookingsQuery) ([]domain.Booking, error) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 3)
	if q.UserID != nil {
		where = append(where, "b.user_id = ?")
		args = append(args, *q.UserID)
	}
	if q.RoomID != nil {
		where = append(where, "b.room_id = ?")
		args = append(args, *q.RoomID)
	}
	if q.Status != nil {
		where = append(where, "b.status = ?")
		args = append(args, string(*q.Status))
	}
	sqlStr := selectBookingSQL
	if len(where) > 0 {
		sqlStr += " WHERE " + strings.Join(where, " AND ")
	}
	sqlStr += " ORDER BY b.created_at DESC, b.id DESC"

	return r.queryBookings(ctx, sqlStr, args...)
}

func (r *Repo) FindOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time, statuses []domain.BookingStatus) ([]domain.Booking, error) {
	if len(statuses) == 0 {
		statuses = domain.ActiveStatuses
	}
	ph, stArgs := statusArgs(statuses)
	sqlStr := selectBookingSQL +
		" WHERE b.room_id = ? AND b.status IN (" + ph + ") AND b.check_in < ? AND b.check_out > ?" +
		" ORDER BY b.check_in"
	args := append([]any{roomID}, stArgs...)
	args = append(args, checkOut, checkIn)
	return r.queryBookings(ctx, sqlStr, args...)
}

func (r *Repo) queryBookings(ctx context.Context, sqlStr string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanBooking(row rowScanner) (domain.Booking, error) {
	var b domain.Booking
	var status string
	var special sql.NullString

	// Joined room columns; all nullable since the join is LEFT.
	var (
		roomID        sql.NullInt64
		roomNumber    sql.NullString
		roomType      sql.NullString
		roomPrice     sql.NullFloat64
		roomCapacity  sql.NullInt64
		roomDesc      sql.NullString
		amenitiesJSON []byte
		imagesJSON    []byte
		roomFloor     sql.NullInt64
		roomAvailable sql.NullBool
		roomCreated   sql.NullTime
		roomUpdated   sql.NullTime
	)

	if err := row.Scan(
		&b.ID,
		&b.RoomID,
		&b.UserID,
		&b.CheckIn,
		&b.CheckOut,
		&b.NumberOfGuests,
		&b.TotalPrice,
		&status,
		&b.GuestName,
		&b.GuestEmail,
		&b.GuestPhone,
		&special,
		&b.CreatedAt,
		&b.UpdatedAt,
		&roomID,
		&roomNumber,
		&roomType,
		&roomPrice,
		&roomCapacity,
		&roomDesc,
		&amenitiesJSON,
		&imagesJSON,
		&roomFloor,
		&roomAvailable,
		&roomCreated,
		&roomUpdated,
	); err != nil {
		return domain.Booking{}, err
	}
	b.Status = domain.BookingStatus(status)
	b.SpecialRequests = nullStr(special)

	if roomID.Valid {
		room := domain.Room{
			ID:          roomID.Int64,
			RoomNumber:  roomNumber.String,
			Type:        domain.RoomType(roomType.String),
			Price:       roomPrice.Float64,
			Capacity:    int(roomCapacity.Int64),
			Description: nullStr(roomDesc),
			Floor:       nullInt(roomFloor),
			IsAvailable: roomAvailable.Bool,
			CreatedAt:   roomCreated.Time,
			UpdatedAt:   roomUpdated.Time,
		}
		_ = json.Unmarshal(amenitiesJSON, &room.Amenities)
		_ = json.Unmarshal(imagesJSON, &room.Images)
		b.Room = &room
	}
	return b, nil
}
