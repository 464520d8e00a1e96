package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vkozyr/busterminal/internal/domain"
)

type RouteRepository interface {
	Create(ctx context.Context, route *domain.Route) error
	GetByID(ctx context.Context, id int64) (*domain.Route, error)
	List(ctx context.Context) ([]domain.Route, error)
}

type PGRouteRepository struct {
	db *pgxpool.Pool
}

func NewRouteRepository(db *pgxpool.Pool) RouteRepository {
	return &PGRouteRepository{db: db}
}

// Create persists the route header and its intermediate-stop links in one
// transaction. The links are written as a single batch, each stamped with a
// 1-based sequence number in the caller-supplied order. Any failure, a
// batched insert included, rolls back the whole route; the deferred
// rollback is a no-op once the commit succeeds, so the connection returns
// to the pool out of transactional mode on every exit path.
func (r *PGRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx,
		`INSERT INTO routes (departure_stop_id, destination_stop_id) VALUES ($1, $2) RETURNING id`,
		route.DepartureStopID, route.DestinationStopID).Scan(&route.ID); err != nil {
		return err
	}

	if len(route.IntermediateStopIDs) > 0 {
		batch := &pgx.Batch{}
		for i, stopID := range route.IntermediateStopIDs {
			batch.Queue(
				`INSERT INTO route_intermediate_stops (route_id, stop_id, stop_order) VALUES ($1, $2, $3)`,
				route.ID, stopID, i+1)
		}
		results := tx.SendBatch(ctx, batch)
		for i := range route.IntermediateStopIDs {
			tag, err := results.Exec()
			if err != nil {
				results.Close()
				return fmt.Errorf("insert intermediate stop %d: %w", i+1, err)
			}
			if tag.RowsAffected() == 0 {
				results.Close()
				return fmt.Errorf("insert intermediate stop %d: no row written", i+1)
			}
		}
		if err := results.Close(); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PGRouteRepository) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, departure_stop_id, destination_stop_id FROM routes WHERE id=$1`, id)
	var route domain.Route
	if err := row.Scan(&route.ID, &route.DepartureStopID, &route.DestinationStopID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	stops, err := r.intermediateStops(ctx, route.ID)
	if err != nil {
		return nil, err
	}
	route.IntermediateStopIDs = stops
	return &route, nil
}

func (r *PGRouteRepository) List(ctx context.Context) ([]domain.Route, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, departure_stop_id, destination_stop_id FROM routes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]domain.Route, 0)
	for rows.Next() {
		var route domain.Route
		if err := rows.Scan(&route.ID, &route.DepartureStopID, &route.DestinationStopID); err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range routes {
		stops, err := r.intermediateStops(ctx, routes[i].ID)
		if err != nil {
			return nil, err
		}
		routes[i].IntermediateStopIDs = stops
	}
	return routes, nil
}

func (r *PGRouteRepository) intermediateStops(ctx context.Context, routeID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT stop_id FROM route_intermediate_stops WHERE route_id=$1 ORDER BY stop_order`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stopIDs []int64
	for rows.Next() {
		var stopID int64
		if err := rows.Scan(&stopID); err != nil {
			return nil, err
		}
		stopIDs = append(stopIDs, stopID)
	}
	return stopIDs, rows.Err()
}

var _ RouteRepository = (*PGRouteRepository)(nil)
