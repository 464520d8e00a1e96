package schedule

import (
	"context"
	"fmt"
	"log"

	"github.com/vkozyr/busterminal/internal/domain"
	"github.com/vkozyr/busterminal/internal/repository"
)

type FlightUseCase interface {
	AddFlight(ctx context.Context, flight *domain.Flight) error
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	List(ctx context.Context) ([]domain.Flight, error)
	UpdateStatus(ctx context.Context, id int64, status domain.FlightStatus) (bool, error)
	Update(ctx context.Context, flight *domain.Flight) (bool, error)
	OccupiedSeatsCount(ctx context.Context, flightID int64) (int, error)
	OccupiedSeats(ctx context.Context, flightID int64) ([]string, error)
	CompleteFlight(ctx context.Context, id int64) (bool, error)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo    repository.FlightRepository
	tickets repository.TicketRepository
	cache   Cache
}

func NewFlightService(repo repository.FlightRepository, tickets repository.TicketRepository, cache Cache) *FlightService {
	return &FlightService{repo: repo, tickets: tickets, cache: cache}
}

// AddFlight validates the record and persists it. Departure after arrival
// is logged as a warning, not rejected; the entry forms own that rule.
func (s *FlightService) AddFlight(ctx context.Context, flight *domain.Flight) error {
	if flight.Status == "" {
		flight.Status = domain.FlightStatusScheduled
	}
	if err := flight.Validate(); err != nil {
		return err
	}
	for _, warning := range flight.Warnings() {
		log.Printf("flight on route %d: %s", flight.RouteID, warning)
	}

	if err := s.repo.Create(ctx, flight); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) UpdateStatus(ctx context.Context, id int64, status domain.FlightStatus) (bool, error) {
	if !status.Known() {
		return false, fmt.Errorf("%w: unknown flight status %q", domain.ErrInvalid, status)
	}
	matched, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return false, err
	}
	if matched {
		s.invalidate(ctx)
	}
	return matched, nil
}

func (s *FlightService) Update(ctx context.Context, flight *domain.Flight) (bool, error) {
	if err := flight.Validate(); err != nil {
		return false, err
	}
	for _, warning := range flight.Warnings() {
		log.Printf("flight %d: %s", flight.ID, warning)
	}
	matched, err := s.repo.Update(ctx, flight)
	if err != nil {
		return false, err
	}
	if matched {
		s.invalidate(ctx)
	}
	return matched, nil
}

// OccupiedSeatsCount is the sole authoritative availability signal: a count
// of tickets in BOOKED or SOLD, nothing stored, nothing cached.
func (s *FlightService) OccupiedSeatsCount(ctx context.Context, flightID int64) (int, error) {
	return s.repo.OccupiedSeatsCount(ctx, flightID)
}

func (s *FlightService) OccupiedSeats(ctx context.Context, flightID int64) ([]string, error) {
	return s.repo.OccupiedSeats(ctx, flightID)
}

// CompleteFlight marks the flight COMPLETED and moves its SOLD tickets to
// USED. Returns false when the flight does not exist.
func (s *FlightService) CompleteFlight(ctx context.Context, id int64) (bool, error) {
	matched, err := s.repo.UpdateStatus(ctx, id, domain.FlightStatusCompleted)
	if err != nil {
		return false, err
	}
	if !matched {
		return false, nil
	}

	used, err := s.tickets.MarkUsedForFlight(ctx, id)
	if err != nil {
		return false, err
	}
	if used > 0 {
		log.Printf("flight %d completed, %d tickets marked used", id, used)
	}
	s.invalidate(ctx)
	return true, nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		log.Printf("invalidate flights cache: %v", err)
	}
}

var _ FlightUseCase = (*FlightService)(nil)
