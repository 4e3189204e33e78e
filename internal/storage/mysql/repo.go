package mysql

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"hotel_booking/internal/domain"
)

// Repo implements domain.RoomRepository and domain.BookingRepository over a
// single MySQL database. Per-room serialization of check-then-write is done
// by locking the room row inside a transaction; InnoDB's lock wait timeout
// bounds how long a writer can stall behind another.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

const (
	mysqlErrDuplicate    = 1062
	mysqlErrLockTimeout  = 1205
	mysqlErrLockDeadlock = 1213
)

// mapWriteErr translates driver errors into domain kinds: duplicate keys are
// conflicts, lock timeouts/deadlocks are retryable conflicts.
func mapWriteErr(err error, dupMsg string) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlErrDuplicate:
			return fmt.Errorf("%s: %w", dupMsg, domain.ErrConflict)
		case mysqlErrLockTimeout, mysqlErrLockDeadlock:
			return fmt.Errorf("room is busy, retry the request: %w", domain.ErrConflict)
		}
	}
	return err
}

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullStr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullInt(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	n := int(ni.Int64)
	return &n
}

func marshalList(ss []string) string {
	if ss == nil {
		ss = []string{}
	}
	b, _ := json.Marshal(ss)
	return string(b)
}

func statusArgs(statuses []domain.BookingStatus) (string, []any) {
	ph := make([]string, len(statuses))
	args := make([]any, len(statuses))
	for i, s := range statuses {
		ph[i] = "?"
		args[i] = string(s)
	}
	return strings.Join(ph, ","), args
}
