package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/vkozyr/busterminal/internal/domain"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) UpdateStatus(ctx context.Context, id int64, status domain.FlightStatus) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockFlightRepository) Update(ctx context.Context, flight *domain.Flight) (bool, error) {
	args := m.Called(ctx, flight)
	return args.Bool(0), args.Error(1)
}

func (m *MockFlightRepository) OccupiedSeatsCount(ctx context.Context, flightID int64) (int, error) {
	args := m.Called(ctx, flightID)
	return args.Int(0), args.Error(1)
}

func (m *MockFlightRepository) OccupiedSeats(ctx context.Context, flightID int64) ([]string, error) {
	args := m.Called(ctx, flightID)
	return args.Get(0).([]string), args.Error(1)
}

type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) Insert(ctx context.Context, ticket *domain.Ticket) (bool, error) {
	args := m.Called(ctx, ticket)
	return args.Bool(0), args.Error(1)
}

func (m *MockTicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) GetByReference(ctx context.Context, reference string) (*domain.Ticket, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) ListByFlight(ctx context.Context, flightID int64) ([]domain.Ticket, error) {
	args := m.Called(ctx, flightID)
	return args.Get(0).([]domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus, purchasedAt *time.Time) (bool, error) {
	args := m.Called(ctx, id, status, purchasedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockTicketRepository) ExpireOverdue(ctx context.Context, deadline time.Time) ([]domain.Ticket, error) {
	args := m.Called(ctx, deadline)
	return args.Get(0).([]domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) MarkUsedForFlight(ctx context.Context, flightID int64) (int64, error) {
	args := m.Called(ctx, flightID)
	return args.Get(0).(int64), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestFlightService_List_CacheHit(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, &MockTicketRepository{}, mockCache)

	ctx := context.Background()
	cached := []domain.Flight{{ID: 1, Status: domain.FlightStatusScheduled}}
	mockCache.On("GetFlights", ctx).Return(cached, nil).Once()

	flights, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, cached, flights)
	mockRepo.AssertNotCalled(t, "List")
}

func TestFlightService_List_CacheMiss(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, &MockTicketRepository{}, mockCache)

	ctx := context.Background()
	stored := []domain.Flight{{ID: 2, Status: domain.FlightStatusDelayed}}
	mockCache.On("GetFlights", ctx).Return(nil, nil).Once()
	mockRepo.On("List", ctx).Return(stored, nil).Once()
	mockCache.On("SetFlights", ctx, stored).Return(nil).Once()

	flights, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, stored, flights)
	mockRepo.AssertExpectations(t)
}

func TestFlightService_AddFlight_DefaultsStatusAndInvalidates(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, &MockTicketRepository{}, mockCache)

	ctx := context.Background()
	flight := &domain.Flight{
		RouteID:           1,
		DepartureDateTime: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		ArrivalDateTime:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		TotalSeats:        50,
		PricePerSeatCents: 100000,
	}
	mockRepo.On("Create", ctx, flight).Return(nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	err := service.AddFlight(ctx, flight)

	assert.NoError(t, err)
	assert.Equal(t, domain.FlightStatusScheduled, flight.Status)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestFlightService_AddFlight_Validation(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, &MockTicketRepository{}, nil)

	err := service.AddFlight(context.Background(), &domain.Flight{RouteID: 1, TotalSeats: 0})
	assert.ErrorIs(t, err, domain.ErrInvalid)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestFlightService_UpdateStatus(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, &MockTicketRepository{}, mockCache)

	ctx := context.Background()
	mockRepo.On("UpdateStatus", ctx, int64(3), domain.FlightStatusDelayed).Return(true, nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	matched, err := service.UpdateStatus(ctx, 3, domain.FlightStatusDelayed)
	assert.NoError(t, err)
	assert.True(t, matched)

	// Missing row comes back as false, not an error.
	mockRepo.On("UpdateStatus", ctx, int64(99), domain.FlightStatusDelayed).Return(false, nil).Once()
	matched, err = service.UpdateStatus(ctx, 99, domain.FlightStatusDelayed)
	assert.NoError(t, err)
	assert.False(t, matched)
}

func TestFlightService_UpdateStatus_UnknownStatus(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, &MockTicketRepository{}, nil)

	matched, err := service.UpdateStatus(context.Background(), 3, "PARKED")
	assert.ErrorIs(t, err, domain.ErrInvalid)
	assert.False(t, matched)
	mockRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestFlightService_OccupiedSeats(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, &MockTicketRepository{}, nil)

	ctx := context.Background()
	mockRepo.On("OccupiedSeatsCount", ctx, int64(5)).Return(2, nil).Once()
	mockRepo.On("OccupiedSeats", ctx, int64(5)).Return([]string{"A1", "B4"}, nil).Once()

	count, err := service.OccupiedSeatsCount(ctx, 5)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)

	seats, err := service.OccupiedSeats(ctx, 5)
	assert.NoError(t, err)
	assert.Equal(t, []string{"A1", "B4"}, seats)
}

func TestFlightService_CompleteFlight(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockTickets := &MockTicketRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockTickets, mockCache)

	ctx := context.Background()
	mockRepo.On("UpdateStatus", ctx, int64(5), domain.FlightStatusCompleted).Return(true, nil).Once()
	mockTickets.On("MarkUsedForFlight", ctx, int64(5)).Return(int64(12), nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	matched, err := service.CompleteFlight(ctx, 5)

	assert.NoError(t, err)
	assert.True(t, matched)
	mockTickets.AssertExpectations(t)
}

func TestFlightService_CompleteFlight_NotFound(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockTickets := &MockTicketRepository{}
	service := NewFlightService(mockRepo, mockTickets, nil)

	ctx := context.Background()
	mockRepo.On("UpdateStatus", ctx, int64(99), domain.FlightStatusCompleted).Return(false, nil).Once()

	matched, err := service.CompleteFlight(ctx, 99)

	assert.NoError(t, err)
	assert.False(t, matched)
	mockTickets.AssertNotCalled(t, "MarkUsedForFlight")
}

func TestFlightService_List_RepoError(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, &MockTicketRepository{}, mockCache)

	ctx := context.Background()
	mockCache.On("GetFlights", ctx).Return(nil, nil).Once()
	mockRepo.On("List", ctx).Return([]domain.Flight(nil), errors.New("connection refused")).Once()

	flights, err := service.List(ctx)
	assert.Error(t, err)
	assert.Nil(t, flights)
	mockCache.AssertNotCalled(t, "SetFlights")
}
