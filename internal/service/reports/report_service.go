package reports

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/vkozyr/busterminal/internal/domain"
	"github.com/vkozyr/busterminal/internal/repository"
)

// UnknownRouteLabel is used when a sold ticket's route no longer resolves.
// Reporting favors availability over strict referential completeness; the
// row is kept under a placeholder instead of failing the whole report.
const UnknownRouteLabel = "(unknown route)"

type ReportUseCase interface {
	SalesByRoute(ctx context.Context, from, to time.Time) ([]RouteSales, error)
	TicketCountsByStatus(ctx context.Context) (map[domain.TicketStatus]int64, error)
}

// RouteSales is one line of the sales report for a closed purchase-date
// interval.
type RouteSales struct {
	RouteID      int64  `json:"route_id"`
	RouteLabel   string `json:"route_label"`
	TicketsSold  int64  `json:"tickets_sold"`
	RevenueCents int64  `json:"revenue_cents"`
}

type RouteResolver interface {
	GetRouteByID(ctx context.Context, id int64) (*domain.RouteDetail, error)
}

type ReportService struct {
	repo   repository.ReportRepository
	routes RouteResolver
}

func NewReportService(repo repository.ReportRepository, routes RouteResolver) *ReportService {
	return &ReportService{repo: repo, routes: routes}
}

// SalesByRoute aggregates SOLD tickets whose purchase time falls within
// [from, to], grouped by route with a human label resolved from the route
// catalog.
func (s *ReportService) SalesByRoute(ctx context.Context, from, to time.Time) ([]RouteSales, error) {
	rows, err := s.repo.SalesByRoute(ctx, from, to)
	if err != nil {
		return nil, err
	}

	sales := make([]RouteSales, 0, len(rows))
	for _, row := range rows {
		sales = append(sales, RouteSales{
			RouteID:      row.RouteID,
			RouteLabel:   s.routeLabel(ctx, row.RouteID),
			TicketsSold:  row.TicketsSold,
			RevenueCents: row.RevenueCents,
		})
	}
	return sales, nil
}

// TicketCountsByStatus returns a count for every known status, zero when
// unseen, so callers never need per-status nil checks.
func (s *ReportService) TicketCountsByStatus(ctx context.Context) (map[domain.TicketStatus]int64, error) {
	counts, err := s.repo.CountsByStatus(ctx)
	if err != nil {
		return nil, err
	}

	full := make(map[domain.TicketStatus]int64, len(domain.TicketStatuses))
	for _, status := range domain.TicketStatuses {
		full[status] = counts[status]
	}
	return full, nil
}

func (s *ReportService) routeLabel(ctx context.Context, routeID int64) string {
	detail, err := s.routes.GetRouteByID(ctx, routeID)
	if err != nil || detail == nil {
		if err != nil {
			log.Printf("sales report: route %d did not resolve: %v", routeID, err)
		}
		return UnknownRouteLabel
	}
	return fmt.Sprintf("%s - %s", detail.DepartureStop.City, detail.DestinationStop.City)
}

var _ ReportUseCase = (*ReportService)(nil)
