// Package apperr defines the error classes every operation fails with.
// Services wrap one of these sentinels with a specific message; transport
// code only ever inspects the class with errors.Is.
package apperr

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnavailable       = errors.New("datastore unavailable")
)

// Postgres SQLSTATE codes that signal a lost race on a constrained write.
const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)

func New(class error, msg string) error {
	return fmt.Errorf("%w: %s", class, msg)
}

func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// IsConstraintViolation reports whether err comes from an exclusion or unique
// constraint rejecting a write.
func IsConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgExclusionViolation || pgErr.Code == pgUniqueViolation
	}
	return false
}

// FromStore classifies low-level datastore failures. Errors it does not
// recognise are returned unchanged.
func FromStore(err error) error {
	if err == nil {
		return nil
	}
	if IsConstraintViolation(err) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	var connErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connErr) || errors.As(err, &netErr) || errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
