package reservation

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/vkozyr/busterminal/internal/domain"
	"github.com/vkozyr/busterminal/internal/kafka"
	"github.com/vkozyr/busterminal/internal/repository"
)

// DefaultHold is how long a booking holds its seat before it may be
// expired.
const DefaultHold = 24 * time.Hour

type ReservationUseCase interface {
	BookSeat(ctx context.Context, input BookSeatInput) (*domain.Ticket, bool, error)
	SellTicket(ctx context.Context, reference string) (*domain.Ticket, error)
	CancelTicket(ctx context.Context, reference string) (*domain.Ticket, error)
	UpdateTicketStatus(ctx context.Context, id int64, status domain.TicketStatus, purchasedAt *time.Time) (bool, error)
	GetTicketByReference(ctx context.Context, reference string) (*domain.Ticket, error)
	ListTicketsByFlight(ctx context.Context, flightID int64) ([]domain.Ticket, error)
	ExpireOverdueTickets(ctx context.Context) ([]domain.Ticket, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type Clock func() time.Time

type ReservationService struct {
	tickets    repository.TicketRepository
	flights    repository.FlightRepository
	passengers repository.PassengerRepository
	producer   Producer
	topic      string
	hold       time.Duration
	now        Clock
}

type BookSeatInput struct {
	FlightID    int64  `json:"flight_id"`
	PassengerID int64  `json:"passenger_id"`
	SeatNumber  string `json:"seat_number"`
}

type ReservationServiceOption func(*ReservationService)

// WithClock replaces the time source, for tests.
func WithClock(clock Clock) ReservationServiceOption {
	return func(s *ReservationService) {
		s.now = clock
	}
}

func WithHold(hold time.Duration) ReservationServiceOption {
	return func(s *ReservationService) {
		if hold > 0 {
			s.hold = hold
		}
	}
}

func NewReservationService(
	tickets repository.TicketRepository,
	flights repository.FlightRepository,
	passengers repository.PassengerRepository,
	producer Producer,
	topic string,
	opts ...ReservationServiceOption,
) *ReservationService {
	service := &ReservationService{
		tickets:    tickets,
		flights:    flights,
		passengers: passengers,
		producer:   producer,
		topic:      topic,
		hold:       DefaultHold,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// BookSeat creates a BOOKED ticket for (flight, seat). The fare is computed
// here, once, from the flight's base price and the passenger's current
// benefit, and frozen on the ticket.
//
// The boolean is false when the seat is already held by an active ticket:
// the storage unique index is the arbiter of who got there first, and
// losing that race is an expected outcome, not an error. A nil ticket with
// a true boolean and nil error means the flight or passenger does not
// exist.
func (s *ReservationService) BookSeat(ctx context.Context, input BookSeatInput) (*domain.Ticket, bool, error) {
	if input.SeatNumber == "" {
		return nil, false, fmt.Errorf("%w: seat number is required", domain.ErrInvalid)
	}
	if input.FlightID == 0 || input.PassengerID == 0 {
		return nil, false, fmt.Errorf("%w: flight and passenger are required", domain.ErrInvalid)
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, false, err
	}
	if flight == nil {
		return nil, true, nil
	}
	passenger, err := s.passengers.GetByID(ctx, input.PassengerID)
	if err != nil {
		return nil, false, err
	}
	if passenger == nil {
		return nil, true, nil
	}

	now := s.now()
	expiry := now.Add(s.hold)
	ticket := &domain.Ticket{
		Reference:      uuid.NewString(),
		FlightID:       flight.ID,
		PassengerID:    passenger.ID,
		SeatNumber:     input.SeatNumber,
		BookedAt:       now,
		BookingExpiry:  &expiry,
		PricePaidCents: domain.FinalFareCents(flight.PricePerSeatCents, passenger.Benefit),
		Status:         domain.TicketStatusBooked,
	}

	created, err := s.tickets.Insert(ctx, ticket)
	if err != nil {
		return nil, false, err
	}
	if !created {
		return nil, false, nil
	}

	s.publish(ctx, "ticket_booked", ticket, passenger.Email)
	return ticket, true, nil
}

// SellTicket moves a ticket to SOLD, stamping the purchase time and
// clearing the expiry deadline. A sold ticket cannot expire.
func (s *ReservationService) SellTicket(ctx context.Context, reference string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, nil
	}

	purchasedAt := s.now()
	matched, err := s.tickets.UpdateStatus(ctx, ticket.ID, domain.TicketStatusSold, &purchasedAt)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, nil
	}

	ticket.Status = domain.TicketStatusSold
	ticket.PurchasedAt = &purchasedAt
	ticket.BookingExpiry = nil
	s.publish(ctx, "ticket_sold", ticket, "")
	return ticket, nil
}

// CancelTicket moves a ticket to CANCELLED and clears the expiry deadline;
// a terminal state carries no pending timer.
func (s *ReservationService) CancelTicket(ctx context.Context, reference string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, nil
	}

	matched, err := s.tickets.UpdateStatus(ctx, ticket.ID, domain.TicketStatusCancelled, nil)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, nil
	}

	ticket.Status = domain.TicketStatusCancelled
	ticket.BookingExpiry = nil
	s.publish(ctx, "ticket_cancelled", ticket, "")
	return ticket, nil
}

// UpdateTicketStatus is the raw transition write. It does not validate the
// transition against the ticket's current state; callers must only request
// legal moves.
func (s *ReservationService) UpdateTicketStatus(ctx context.Context, id int64, status domain.TicketStatus, purchasedAt *time.Time) (bool, error) {
	if !status.Known() {
		return false, fmt.Errorf("%w: unknown ticket status %q", domain.ErrInvalid, status)
	}
	return s.tickets.UpdateStatus(ctx, id, status, purchasedAt)
}

func (s *ReservationService) GetTicketByReference(ctx context.Context, reference string) (*domain.Ticket, error) {
	return s.tickets.GetByReference(ctx, reference)
}

func (s *ReservationService) ListTicketsByFlight(ctx context.Context, flightID int64) ([]domain.Ticket, error) {
	return s.tickets.ListByFlight(ctx, flightID)
}

// ExpireOverdueTickets marks every BOOKED ticket past its deadline as
// EXPIRED. The engine never runs this on its own; until someone does, an
// overdue ticket stays BOOKED in storage and still holds its seat.
func (s *ReservationService) ExpireOverdueTickets(ctx context.Context) ([]domain.Ticket, error) {
	expired, err := s.tickets.ExpireOverdue(ctx, s.now())
	if err != nil {
		return nil, err
	}
	for i := range expired {
		s.publish(ctx, "ticket_expired", &expired[i], "")
	}
	return expired, nil
}

func (s *ReservationService) publish(ctx context.Context, eventType string, ticket *domain.Ticket, email string) {
	if s.producer == nil || s.topic == "" {
		return
	}
	event := kafka.TicketEvent{
		Type:           eventType,
		Reference:      ticket.Reference,
		TicketID:       ticket.ID,
		FlightID:       ticket.FlightID,
		SeatNumber:     ticket.SeatNumber,
		PassengerID:    ticket.PassengerID,
		PassengerEmail: email,
		Status:         string(ticket.Status),
		PricePaidCents: ticket.PricePaidCents,
		ExpiresAt:      ticket.BookingExpiry,
	}
	if err := s.producer.Publish(ctx, s.topic, ticket.Reference, event); err != nil {
		log.Printf("publish %s for ticket %s: %v", eventType, ticket.Reference, err)
	}
}

var _ ReservationUseCase = (*ReservationService)(nil)
