package domain

import (
	"fmt"
	"time"
)

type FlightStatus string

const (
	FlightStatusScheduled FlightStatus = "SCHEDULED"
	FlightStatusDelayed   FlightStatus = "DELAYED"
	FlightStatusDeparted  FlightStatus = "DEPARTED"
	FlightStatusCompleted FlightStatus = "COMPLETED"
	FlightStatusCancelled FlightStatus = "CANCELLED"
)

// FlightStatuses lists every known flight status.
var FlightStatuses = []FlightStatus{
	FlightStatusScheduled,
	FlightStatusDelayed,
	FlightStatusDeparted,
	FlightStatusCompleted,
	FlightStatusCancelled,
}

func (s FlightStatus) Known() bool {
	for _, known := range FlightStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Flight is one scheduled journey along a route. Seat occupancy is never
// stored on the flight; it is always derived by counting active tickets.
type Flight struct {
	ID                int64
	RouteID           int64
	DepartureDateTime time.Time
	ArrivalDateTime   time.Time
	TotalSeats        int
	BusModel          string
	PricePerSeatCents int64
	Status            FlightStatus
}

func (f *Flight) Validate() error {
	if f.RouteID == 0 {
		return fmt.Errorf("%w: flight route is required", ErrInvalid)
	}
	if f.DepartureDateTime.IsZero() {
		return fmt.Errorf("%w: flight departure time is required", ErrInvalid)
	}
	if f.ArrivalDateTime.IsZero() {
		return fmt.Errorf("%w: flight arrival time is required", ErrInvalid)
	}
	if f.TotalSeats <= 0 {
		return fmt.Errorf("%w: flight must have a positive seat count", ErrInvalid)
	}
	if f.PricePerSeatCents < 0 {
		return fmt.Errorf("%w: flight price must not be negative", ErrInvalid)
	}
	if !f.Status.Known() {
		return fmt.Errorf("%w: unknown flight status %q", ErrInvalid, f.Status)
	}
	return nil
}

// Warnings reports suspicious but accepted field combinations. Departure
// after arrival is flagged here, not rejected; the surrounding entry forms
// own that rule.
func (f *Flight) Warnings() []string {
	var warnings []string
	if !f.DepartureDateTime.IsZero() && !f.ArrivalDateTime.IsZero() &&
		f.ArrivalDateTime.Before(f.DepartureDateTime) {
		warnings = append(warnings, fmt.Sprintf("flight arrives %s before it departs %s",
			f.ArrivalDateTime.Format(time.RFC3339), f.DepartureDateTime.Format(time.RFC3339)))
	}
	return warnings
}
