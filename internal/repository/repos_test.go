package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewRepositories(t *testing.T) {
	pool := &pgxpool.Pool{}

	assert.NotNil(t, NewStopRepository(pool))
	assert.NotNil(t, NewRouteRepository(pool))
	assert.NotNil(t, NewFlightRepository(pool))
	assert.NotNil(t, NewPassengerRepository(pool))
	assert.NotNil(t, NewTicketRepository(pool))
	assert.NotNil(t, NewReportRepository(pool))
}
