package domain

import (
	"fmt"
	"time"
)

type TicketStatus string

const (
	TicketStatusBooked    TicketStatus = "BOOKED"
	TicketStatusSold      TicketStatus = "SOLD"
	TicketStatusCancelled TicketStatus = "CANCELLED"
	TicketStatusExpired   TicketStatus = "EXPIRED"
	TicketStatusUsed      TicketStatus = "USED"
)

// TicketStatuses lists every known ticket status. Reporting relies on this
// order when padding counts with zeros.
var TicketStatuses = []TicketStatus{
	TicketStatusBooked,
	TicketStatusSold,
	TicketStatusCancelled,
	TicketStatusExpired,
	TicketStatusUsed,
}

func (s TicketStatus) Known() bool {
	for _, known := range TicketStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Active reports whether the status holds a seat. Only BOOKED and SOLD
// tickets count toward occupancy and the per-flight seat uniqueness rule.
func (s TicketStatus) Active() bool {
	return s == TicketStatusBooked || s == TicketStatusSold
}

// Ticket is a claim on one seat of one flight for one passenger.
//
// BookingExpiry is set only while the ticket is BOOKED; it is a passive
// deadline, nothing fires when it elapses. PurchasedAt is stamped exactly
// once, on the transition to SOLD. PricePaidCents is frozen at booking time
// and never recomputed.
type Ticket struct {
	ID             int64
	Reference      string
	FlightID       int64
	PassengerID    int64
	SeatNumber     string
	BookedAt       time.Time
	PurchasedAt    *time.Time
	BookingExpiry  *time.Time
	PricePaidCents int64
	Status         TicketStatus
}

func (t *Ticket) Validate() error {
	if t.FlightID == 0 {
		return fmt.Errorf("%w: ticket flight is required", ErrInvalid)
	}
	if t.PassengerID == 0 {
		return fmt.Errorf("%w: ticket passenger is required", ErrInvalid)
	}
	if t.SeatNumber == "" {
		return fmt.Errorf("%w: ticket seat number is required", ErrInvalid)
	}
	if t.PricePaidCents < 0 {
		return fmt.Errorf("%w: ticket price must not be negative", ErrInvalid)
	}
	if !t.Status.Known() {
		return fmt.Errorf("%w: unknown ticket status %q", ErrInvalid, t.Status)
	}
	return nil
}

// ExpiredBy reports whether a BOOKED ticket's deadline has passed at the
// given instant. The row itself stays BOOKED until something re-evaluates
// it; storage never expires tickets on its own.
func (t *Ticket) ExpiredBy(now time.Time) bool {
	return t.Status == TicketStatusBooked && t.BookingExpiry != nil && !now.Before(*t.BookingExpiry)
}
