package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// Sentinel errors the service layer branches on with errors.Is.
// Not-found is an expected outcome in several flows (unbound sensors,
// rooms deleted mid-request) and must stay distinguishable from
// infrastructure failures.
var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrSensorNotFound  = errors.New("sensor not found")
	ErrAccountNotFound = errors.New("account not found")
)

// mysqlDuplicateEntry is the server error code for unique key violations
const mysqlDuplicateEntry = 1062

// IsDuplicateKey reports whether err is a MySQL unique constraint
// violation. Auto-registration relies on this to resolve the
// concurrent-first-contact race by re-fetching instead of failing.
func IsDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
