package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "tickets_flight_seat_active"}
	assert.True(t, isUniqueViolation(unique))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert ticket: %w", unique)))

	assert.False(t, isUniqueViolation(nil))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
}

func TestIntegrityErrorf(t *testing.T) {
	err := IntegrityErrorf("route %d references missing %s stop %d", 7, "departure", 3)

	var integrityErr *DataIntegrityError
	assert.ErrorAs(t, err, &integrityErr)
	assert.Equal(t, "data integrity: route 7 references missing departure stop 3", err.Error())
}
