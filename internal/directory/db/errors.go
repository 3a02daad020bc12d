package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Failure kinds returned by the repository. Callers branch on them with
// errors.Is; the underlying driver error stays wrapped for logging.
var (
	ErrNotFound            = errors.New("not found")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrInvalidReference    = errors.New("invalid reference")
	ErrTransient           = errors.New("transient store failure")
)

// ReferenceError reports which side of a show booking did not resolve.
type ReferenceError struct {
	Entity string
	ID     int64
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %d does not exist", e.Entity, e.ID)
}

func (e *ReferenceError) Unwrap() error {
	return ErrInvalidReference
}

// MySQL server error numbers for duplicate key, NOT NULL and foreign key.
const (
	mysqlDuplicateEntry     = 1062
	mysqlColumnCannotBeNull = 1048
	mysqlNoReferencedRow    = 1452
)

// classify turns a raw store error into one of the failure kinds above.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if refErr, ok := err.(*ReferenceError); ok {
		return fmt.Errorf("%s: %w", op, refErr)
	}
	switch {
	case err == ErrNotFound, errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case err == ErrConstraintViolation, err == ErrTransient:
		return fmt.Errorf("%s: %w", op, err)
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrConstraintViolation),
		errors.Is(err, ErrInvalidReference), errors.Is(err, ErrTransient):
		// already classified further down the call
		return err
	}
	if isConstraintError(err) {
		return fmt.Errorf("%s: %w: %w", op, ErrConstraintViolation, err)
	}
	if isTransientError(err) {
		return fmt.Errorf("%s: %w: %w", op, ErrTransient, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isConstraintError(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		// SQLSTATE class 23: integrity constraint violation.
		return strings.HasPrefix(pgErr.Field('C'), "23")
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDuplicateEntry, mysqlColumnCannotBeNull, mysqlNoReferencedRow:
			return true
		}
		return false
	}
	// SQLite drivers only expose the extended result code in the message,
	// e.g. "UNIQUE constraint failed: venues.name".
	return strings.Contains(err.Error(), "constraint failed")
}

func isTransientError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		code := pgErr.Field('C')
		// 08xxx connection exceptions, 57014 query_canceled (statement timeout).
		return strings.HasPrefix(code, "08") || code == "57014"
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	// SQLITE_BUSY and SQLITE_LOCKED, again only visible in the message.
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "database table is locked")
}
