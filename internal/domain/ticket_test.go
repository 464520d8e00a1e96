package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTicketStatusActive(t *testing.T) {
	assert.True(t, TicketStatusBooked.Active())
	assert.True(t, TicketStatusSold.Active())
	assert.False(t, TicketStatusCancelled.Active())
	assert.False(t, TicketStatusExpired.Active())
	assert.False(t, TicketStatusUsed.Active())
}

func TestTicketValidate(t *testing.T) {
	ticket := Ticket{
		FlightID:       1,
		PassengerID:    2,
		SeatNumber:     "A1",
		PricePaidCents: 80000,
		Status:         TicketStatusBooked,
	}
	assert.NoError(t, ticket.Validate())

	testCases := []struct {
		name   string
		mutate func(*Ticket)
	}{
		{name: "missing flight", mutate: func(tk *Ticket) { tk.FlightID = 0 }},
		{name: "missing passenger", mutate: func(tk *Ticket) { tk.PassengerID = 0 }},
		{name: "missing seat", mutate: func(tk *Ticket) { tk.SeatNumber = "" }},
		{name: "negative price", mutate: func(tk *Ticket) { tk.PricePaidCents = -1 }},
		{name: "unknown status", mutate: func(tk *Ticket) { tk.Status = "REFUNDED" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			copy := ticket
			tc.mutate(&copy)
			assert.ErrorIs(t, copy.Validate(), ErrInvalid)
		})
	}
}

func TestTicketExpiredBy(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	deadline := now.Add(-time.Minute)

	overdue := Ticket{Status: TicketStatusBooked, BookingExpiry: &deadline}
	assert.True(t, overdue.ExpiredBy(now))
	// The row stays BOOKED until something re-evaluates it; ExpiredBy is
	// that re-evaluation, not a status change.
	assert.Equal(t, TicketStatusBooked, overdue.Status)

	future := now.Add(time.Hour)
	assert.False(t, (&Ticket{Status: TicketStatusBooked, BookingExpiry: &future}).ExpiredBy(now))

	// A sold ticket cannot expire even with a stale deadline still stored.
	assert.False(t, (&Ticket{Status: TicketStatusSold, BookingExpiry: &deadline}).ExpiredBy(now))
	assert.False(t, (&Ticket{Status: TicketStatusBooked}).ExpiredBy(now))

	boundary := Ticket{Status: TicketStatusBooked, BookingExpiry: &now}
	assert.True(t, boundary.ExpiredBy(now))
}
