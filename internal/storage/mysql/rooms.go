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

func (r *Repo) CreateRoom(ctx context.Context, room domain.Room) (domain.Room, error) {
	res, err := r.db.ExecContext(ctx, insertRoomSQL,
		room.RoomNumber,
		string(room.Type),
		room.Price,
		room.Capacity,
		valStr(room.Description),
		marshalList(room.Amenities),
		marshalList(room.Images),
		valInt(room.Floor),
		room.IsAvailable,
	)
	if err != nil {
		return domain.Room{}, mapWriteErr(err, fmt.Sprintf("room number %s already exists", room.RoomNumber))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Room{}, err
	}
	return r.GetRoom(ctx, id)
}

func (r *Repo) UpdateRoom(ctx context.Context, id int64, p domain.RoomPatch) (domain.Room, error) {
	sets := make([]string, 0, 9)
	args := make([]any, 0, 10)
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if p.RoomNumber != nil {
		add("room_number", *p.RoomNumber)
	}
	if p.Type != nil {
		add("type", string(*p.Type))
	}
	if p.Price != nil {
		add("price", *p.Price)
	}
	if p.Capacity != nil {
		add("capacity", *p.Capacity)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.Amenities != nil {
		add("amenities", marshalList(p.Amenities))
	}
	if p.Images != nil {
		add("images", marshalList(p.Images))
	}
	if p.Floor != nil {
		add("floor", *p.Floor)
	}
	if p.IsAvailable != nil {
		add("is_available", *p.IsAvailable)
	}
	if len(sets) == 0 {
		return r.GetRoom(ctx, id)
	}
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, "UPDATE rooms SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return domain.Room{}, mapWriteErr(err, "room number already exists")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Either absent or a no-op update; disambiguate with a read.
		if _, gerr := r.GetRoom(ctx, id); gerr != nil {
			return domain.Room{}, gerr
		}
	}
	return r.GetRoom(ctx, id)
}

// DeleteRoom removes a room unless an active booking with a future check-out
// still references it. The room row is locked first so a concurrent booking
// insert cannot slip in between the guard and the delete.
func (r *Repo) DeleteRoom(ctx context.Context, id int64, now time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var locked int64
	if err := tx.QueryRowContext(ctx, lockRoomSQL, id).Scan(&locked); err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("room not found: %w", domain.ErrNotFound)
		}
		return mapWriteErr(err, "")
	}

	var active int
	if err := tx.QueryRowContext(ctx, countActiveFutureSQL, id, now).Scan(&active); err != nil {
		return err
	}
	if active > 0 {
		return fmt.Errorf("cannot delete room with active bookings: %w", domain.ErrConflict)
	}

	if _, err := tx.ExecContext(ctx, deleteRoomSQL, id); err != nil {
		return mapWriteErr(err, "")
	}
	return tx.Commit()
}

func (r *Repo) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	row := r.db.QueryRowContext(ctx, getRoomSQL, id)
	room, err := scanRoom(row)
	if err == sql.ErrNoRows {
		return domain.Room{}, fmt.Errorf("room not found: %w", domain.ErrNotFound)
	}
	return room, err
}

func (r *Repo) ListRooms(ctx context.Context, q domain.RoomsQuery) ([]domain.Room, error) {
	where := make([]string, 0, 4)
	args := make([]any, 0, 4)
	if q.Type != nil {
		where = append(where, "type = ?")
		args = append(args, string(*q.Type))
	}
	if q.MinPrice != nil {
		where = append(where, "price >= ?")
		args = append(args, *q.MinPrice)
	}
	if q.MaxPrice != nil {
		where = append(where, "price <= ?")
		args = append(args, *q.MaxPrice)
	}
	if q.IsAvailable != nil {
		where = append(where, "is_available = ?")
		args = append(args, *q.IsAvailable)
	}
	sqlStr := "SELECT" + selectRoomCols + "FROM rooms"
	if len(where) > 0 {
		sqlStr += " WHERE " + strings.Join(where, " AND ")
	}
	sqlStr += " ORDER BY room_number"

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanRoom(row rowScanner) (domain.Room, error) {
	var room domain.Room
	var typ string
	var desc sql.NullString
	var amenitiesJSON, imagesJSON []byte
	var floor sql.NullInt64
	if err := row.Scan(
		&room.ID,
		&room.RoomNumber,
		&typ,
		&room.Price,
		&room.Capacity,
		&desc,
		&amenitiesJSON,
		&imagesJSON,
		&floor,
		&room.IsAvailable,
		&room.CreatedAt,
		&room.UpdatedAt,
	); err != nil {
		return domain.Room{}, err
	}
	room.Type = domain.RoomType(typ)
	room.Description = nullStr(desc)
	room.Floor = nullInt(floor)
	_ = json.Unmarshal(amenitiesJSON, &room.Amenities)
	_ = json.Unmarshal(imagesJSON, &room.Images)
	return room, nil
}
