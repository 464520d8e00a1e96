package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/vkozyr/busterminal/internal/domain"
	"github.com/vkozyr/busterminal/internal/repository"
)

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) SalesByRoute(ctx context.Context, from, to time.Time) ([]repository.RouteSalesRow, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.RouteSalesRow), args.Error(1)
}

func (m *MockReportRepository) CountsByStatus(ctx context.Context) (map[domain.TicketStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.TicketStatus]int64), args.Error(1)
}

type MockRouteResolver struct {
	mock.Mock
}

func (m *MockRouteResolver) GetRouteByID(ctx context.Context, id int64) (*domain.RouteDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RouteDetail), args.Error(1)
}

func TestReportService_SalesByRoute_ResolvesLabels(t *testing.T) {
	mockRepo := &MockReportRepository{}
	mockRoutes := &MockRouteResolver{}
	service := NewReportService(mockRepo, mockRoutes)

	ctx := context.Background()
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)

	mockRepo.On("SalesByRoute", ctx, from, to).Return([]repository.RouteSalesRow{
		{RouteID: 1, TicketsSold: 3, RevenueCents: 240000},
	}, nil).Once()
	mockRoutes.On("GetRouteByID", ctx, int64(1)).Return(&domain.RouteDetail{
		ID:              1,
		DepartureStop:   domain.Stop{ID: 10, Name: "Central", City: "Kyiv"},
		DestinationStop: domain.Stop{ID: 11, Name: "Main", City: "Lviv"},
	}, nil).Once()

	sales, err := service.SalesByRoute(ctx, from, to)

	assert.NoError(t, err)
	assert.Equal(t, []RouteSales{
		{RouteID: 1, RouteLabel: "Kyiv - Lviv", TicketsSold: 3, RevenueCents: 240000},
	}, sales)
}

func TestReportService_SalesByRoute_UnresolvedRouteGetsPlaceholder(t *testing.T) {
	mockRepo := &MockReportRepository{}
	mockRoutes := &MockRouteResolver{}
	service := NewReportService(mockRepo, mockRoutes)

	ctx := context.Background()
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	mockRepo.On("SalesByRoute", ctx, from, to).Return([]repository.RouteSalesRow{
		{RouteID: 7, TicketsSold: 1, RevenueCents: 50000},
		{RouteID: 8, TicketsSold: 2, RevenueCents: 90000},
	}, nil).Once()
	mockRoutes.On("GetRouteByID", ctx, int64(7)).Return(nil, nil).Once()
	mockRoutes.On("GetRouteByID", ctx, int64(8)).Return(nil, errors.New("connection refused")).Once()

	sales, err := service.SalesByRoute(ctx, from, to)

	assert.NoError(t, err)
	assert.Len(t, sales, 2)
	assert.Equal(t, UnknownRouteLabel, sales[0].RouteLabel)
	assert.Equal(t, UnknownRouteLabel, sales[1].RouteLabel)
	assert.Equal(t, int64(50000), sales[0].RevenueCents)
}

func TestReportService_SalesByRoute_Empty(t *testing.T) {
	mockRepo := &MockReportRepository{}
	service := NewReportService(mockRepo, &MockRouteResolver{})

	ctx := context.Background()
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	mockRepo.On("SalesByRoute", ctx, from, to).Return([]repository.RouteSalesRow{}, nil).Once()

	sales, err := service.SalesByRoute(ctx, from, to)

	assert.NoError(t, err)
	assert.Empty(t, sales)
	assert.NotNil(t, sales)
}

func TestReportService_TicketCountsByStatus_ZeroFillsMissing(t *testing.T) {
	mockRepo := &MockReportRepository{}
	service := NewReportService(mockRepo, &MockRouteResolver{})

	ctx := context.Background()
	mockRepo.On("CountsByStatus", ctx).Return(map[domain.TicketStatus]int64{
		domain.TicketStatusSold:   4,
		domain.TicketStatusBooked: 1,
	}, nil).Once()

	counts, err := service.TicketCountsByStatus(ctx)

	assert.NoError(t, err)
	assert.Len(t, counts, len(domain.TicketStatuses))
	assert.Equal(t, int64(4), counts[domain.TicketStatusSold])
	assert.Equal(t, int64(1), counts[domain.TicketStatusBooked])
	assert.Equal(t, int64(0), counts[domain.TicketStatusCancelled])
	assert.Equal(t, int64(0), counts[domain.TicketStatusExpired])
	assert.Equal(t, int64(0), counts[domain.TicketStatusUsed])
}

func TestReportService_TicketCountsByStatus_RepoError(t *testing.T) {
	mockRepo := &MockReportRepository{}
	service := NewReportService(mockRepo, &MockRouteResolver{})

	ctx := context.Background()
	mockRepo.On("CountsByStatus", ctx).Return(nil, errors.New("connection refused")).Once()

	counts, err := service.TicketCountsByStatus(ctx)
	assert.Error(t, err)
	assert.Nil(t, counts)
}
