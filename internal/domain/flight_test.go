package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validFlight() Flight {
	return Flight{
		RouteID:           1,
		DepartureDateTime: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		ArrivalDateTime:   time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
		TotalSeats:        50,
		BusModel:          "Neoplan N116",
		PricePerSeatCents: 100000,
		Status:            FlightStatusScheduled,
	}
}

func TestFlightValidate(t *testing.T) {
	f := validFlight()
	assert.NoError(t, f.Validate())

	testCases := []struct {
		name   string
		mutate func(*Flight)
	}{
		{name: "missing route", mutate: func(f *Flight) { f.RouteID = 0 }},
		{name: "missing departure time", mutate: func(f *Flight) { f.DepartureDateTime = time.Time{} }},
		{name: "missing arrival time", mutate: func(f *Flight) { f.ArrivalDateTime = time.Time{} }},
		{name: "zero seats", mutate: func(f *Flight) { f.TotalSeats = 0 }},
		{name: "negative seats", mutate: func(f *Flight) { f.TotalSeats = -3 }},
		{name: "negative price", mutate: func(f *Flight) { f.PricePerSeatCents = -1 }},
		{name: "unknown status", mutate: func(f *Flight) { f.Status = "PARKED" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := validFlight()
			tc.mutate(&f)
			err := f.Validate()
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestFlightWarnings(t *testing.T) {
	f := validFlight()
	assert.Empty(t, f.Warnings())

	// Arrival before departure is flagged, never rejected, at this layer.
	f.ArrivalDateTime = f.DepartureDateTime.Add(-time.Hour)
	assert.NoError(t, f.Validate())
	warnings := f.Warnings()
	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "before it departs")
}
