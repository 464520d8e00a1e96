// Package repository persists the terminal's entities in PostgreSQL.
//
// Result conventions, shared by every repository here: a missing row is a
// nil pointer or false boolean with a nil error; an expected uniqueness
// conflict (seat already taken, document already claimed) is likewise a
// non-error result; only storage communication failures and broken
// references come back as errors.
package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// DataIntegrityError reports stored state that contradicts itself, e.g. a
// route pointing at a deleted stop, or a uniqueness conflict with no row
// behind it. It is a hard persistence failure wherever entities are
// reconstructed; only the reporting aggregator downgrades it to a
// placeholder.
type DataIntegrityError struct {
	Detail string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity: %s", e.Detail)
}

// IntegrityErrorf builds a DataIntegrityError from a format string.
func IntegrityErrorf(format string, args ...interface{}) error {
	return &DataIntegrityError{Detail: fmt.Sprintf(format, args...)}
}

// uniqueViolationCode is the PostgreSQL error code for a unique constraint
// violation.
const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
