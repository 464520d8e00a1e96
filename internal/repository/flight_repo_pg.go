package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vkozyr/busterminal/internal/domain"
)

type FlightRepository interface {
	Create(ctx context.Context, flight *domain.Flight) error
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	List(ctx context.Context) ([]domain.Flight, error)
	UpdateStatus(ctx context.Context, id int64, status domain.FlightStatus) (bool, error)
	Update(ctx context.Context, flight *domain.Flight) (bool, error)
	OccupiedSeatsCount(ctx context.Context, flightID int64) (int, error)
	OccupiedSeats(ctx context.Context, flightID int64) ([]string, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, route_id, departure_date_time, arrival_date_time, total_seats, bus_model, price_per_seat_cents, status`

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.RouteID, &f.DepartureDateTime, &f.ArrivalDateTime,
		&f.TotalSeats, &f.BusModel, &f.PricePerSeatCents, &f.Status); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	return r.db.QueryRow(ctx, `INSERT INTO flights (route_id, departure_date_time, arrival_date_time, total_seats, bus_model, price_per_seat_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		flight.RouteID, flight.DepartureDateTime, flight.ArrivalDateTime,
		flight.TotalSeats, flight.BusModel, flight.PricePerSeatCents, flight.Status).
		Scan(&flight.ID)
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return f, nil
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY departure_date_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

// UpdateStatus changes the status column only. A missing flight is reported
// as false, not as an error.
func (r *PGFlightRepository) UpdateStatus(ctx context.Context, id int64, status domain.FlightStatus) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE flights SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Update replaces every mutable field of the flight row.
func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE flights SET route_id=$1, departure_date_time=$2, arrival_date_time=$3, total_seats=$4, bus_model=$5, price_per_seat_cents=$6, status=$7 WHERE id=$8`,
		flight.RouteID, flight.DepartureDateTime, flight.ArrivalDateTime,
		flight.TotalSeats, flight.BusModel, flight.PricePerSeatCents, flight.Status, flight.ID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// OccupiedSeatsCount derives occupancy by counting active tickets. There is
// no stored seat counter to fall out of sync with the ticket rows.
func (r *PGFlightRepository) OccupiedSeatsCount(ctx context.Context, flightID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM tickets WHERE flight_id=$1 AND status IN ($2, $3)`,
		flightID, domain.TicketStatusBooked, domain.TicketStatusSold).Scan(&count)
	return count, err
}

func (r *PGFlightRepository) OccupiedSeats(ctx context.Context, flightID int64) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT seat_number FROM tickets WHERE flight_id=$1 AND status IN ($2, $3) ORDER BY seat_number`,
		flightID, domain.TicketStatusBooked, domain.TicketStatusSold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]string, 0)
	for rows.Next() {
		var seat string
		if err := rows.Scan(&seat); err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}
	return seats, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
