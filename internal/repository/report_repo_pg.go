package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vkozyr/busterminal/internal/domain"
)

// RouteSalesRow is one aggregated row of the sales report, keyed by the
// route id of the flight each ticket was sold for.
type RouteSalesRow struct {
	RouteID      int64
	TicketsSold  int64
	RevenueCents int64
}

type ReportRepository interface {
	// SalesByRoute aggregates SOLD tickets purchased within the closed
	// interval [from, to], grouped by route.
	SalesByRoute(ctx context.Context, from, to time.Time) ([]RouteSalesRow, error)
	CountsByStatus(ctx context.Context) (map[domain.TicketStatus]int64, error)
}

type PGReportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) ReportRepository {
	return &PGReportRepository{db: db}
}

func (r *PGReportRepository) SalesByRoute(ctx context.Context, from, to time.Time) ([]RouteSalesRow, error) {
	rows, err := r.db.Query(ctx, `SELECT f.route_id, COUNT(*), SUM(t.price_paid_cents)
		FROM tickets t
		JOIN flights f ON f.id = t.flight_id
		WHERE t.status = $1 AND t.purchase_date_time >= $2 AND t.purchase_date_time <= $3
		GROUP BY f.route_id
		ORDER BY f.route_id`,
		domain.TicketStatusSold, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := make([]RouteSalesRow, 0)
	for rows.Next() {
		var row RouteSalesRow
		if err := rows.Scan(&row.RouteID, &row.TicketsSold, &row.RevenueCents); err != nil {
			return nil, err
		}
		sales = append(sales, row)
	}
	return sales, rows.Err()
}

func (r *PGReportRepository) CountsByStatus(ctx context.Context) (map[domain.TicketStatus]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM tickets GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.TicketStatus]int64)
	for rows.Next() {
		var status domain.TicketStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

var _ ReportRepository = (*PGReportRepository)(nil)
