package database

import (
	"errors"

	"github.com/lib/pq"
)

// Sentinel errors returned by the query layer. Handlers map these to
// HTTP status codes.
var (
	ErrStudentNotFound       = errors.New("student not found")
	ErrTargetSessionNotFound = errors.New("target class session not found")
	ErrInvalidAmount         = errors.New("amount must be greater than zero")
	ErrNoMonths              = errors.New("at least one month is required")
	ErrDuplicateIdentifier   = errors.New("identifier already taken")
	ErrDuplicateTeacher      = errors.New("class level already has a different teacher")
)

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (two concurrent writers computed the same identifier).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
