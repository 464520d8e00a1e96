package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vkozyr/busterminal/internal/domain"
)

type TicketRepository interface {
	// Insert writes a BOOKED ticket. A violation of the active-seat unique
	// index means the seat is already taken and comes back as (false, nil);
	// contention is an expected outcome, not an error.
	Insert(ctx context.Context, ticket *domain.Ticket) (bool, error)
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	GetByReference(ctx context.Context, reference string) (*domain.Ticket, error)
	ListByFlight(ctx context.Context, flightID int64) ([]domain.Ticket, error)
	UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus, purchasedAt *time.Time) (bool, error)
	ExpireOverdue(ctx context.Context, deadline time.Time) ([]domain.Ticket, error)
	MarkUsedForFlight(ctx context.Context, flightID int64) (int64, error)
}

type PGTicketRepository struct {
	db *pgxpool.Pool
}

func NewTicketRepository(db *pgxpool.Pool) TicketRepository {
	return &PGTicketRepository{db: db}
}

const ticketColumns = `id, reference, flight_id, passenger_id, seat_number, booking_date_time, purchase_date_time, booking_expiry_date_time, price_paid_cents, status`

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var t domain.Ticket
	if err := row.Scan(&t.ID, &t.Reference, &t.FlightID, &t.PassengerID, &t.SeatNumber,
		&t.BookedAt, &t.PurchasedAt, &t.BookingExpiry, &t.PricePaidCents, &t.Status); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PGTicketRepository) Insert(ctx context.Context, ticket *domain.Ticket) (bool, error) {
	err := r.db.QueryRow(ctx, `INSERT INTO tickets (reference, flight_id, passenger_id, seat_number, booking_date_time, booking_expiry_date_time, price_paid_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		ticket.Reference, ticket.FlightID, ticket.PassengerID, ticket.SeatNumber,
		ticket.BookedAt, ticket.BookingExpiry, ticket.PricePaidCents, ticket.Status).
		Scan(&ticket.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *PGTicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	t, err := scanTicket(r.db.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

func (r *PGTicketRepository) GetByReference(ctx context.Context, reference string) (*domain.Ticket, error) {
	t, err := scanTicket(r.db.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE reference=$1`, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

func (r *PGTicketRepository) ListByFlight(ctx context.Context, flightID int64) ([]domain.Ticket, error) {
	rows, err := r.db.Query(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE flight_id=$1 ORDER BY seat_number`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *t)
	}
	return tickets, rows.Err()
}

// UpdateStatus is a plain update-by-id; it does not check that the
// transition is legal for the row's current state. SOLD stamps the purchase
// time and clears the expiry deadline, CANCELLED clears the deadline, every
// other status touches only the status column.
func (r *PGTicketRepository) UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus, purchasedAt *time.Time) (bool, error) {
	var tag pgconn.CommandTag
	var err error
	switch status {
	case domain.TicketStatusSold:
		if purchasedAt == nil {
			return false, errors.New("purchase time is required for SOLD")
		}
		tag, err = r.db.Exec(ctx,
			`UPDATE tickets SET status=$1, purchase_date_time=$2, booking_expiry_date_time=NULL WHERE id=$3`,
			status, *purchasedAt, id)
	case domain.TicketStatusCancelled:
		tag, err = r.db.Exec(ctx,
			`UPDATE tickets SET status=$1, booking_expiry_date_time=NULL WHERE id=$2`,
			status, id)
	default:
		tag, err = r.db.Exec(ctx, `UPDATE tickets SET status=$1 WHERE id=$2`, status, id)
	}
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ExpireOverdue flips BOOKED tickets whose deadline has passed to EXPIRED
// and returns them. Nothing calls this from the engine itself; expiry stays
// lazy until an operator or the worker asks for it.
func (r *PGTicketRepository) ExpireOverdue(ctx context.Context, deadline time.Time) ([]domain.Ticket, error) {
	rows, err := r.db.Query(ctx,
		`UPDATE tickets SET status=$1 WHERE status=$2 AND booking_expiry_date_time <= $3 RETURNING `+ticketColumns,
		domain.TicketStatusExpired, domain.TicketStatusBooked, deadline)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expired []domain.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		expired = append(expired, *t)
	}
	return expired, rows.Err()
}

// MarkUsedForFlight moves a completed flight's SOLD tickets to USED and
// reports how many rows changed.
func (r *PGTicketRepository) MarkUsedForFlight(ctx context.Context, flightID int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `UPDATE tickets SET status=$1 WHERE flight_id=$2 AND status=$3`,
		domain.TicketStatusUsed, flightID, domain.TicketStatusSold)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

var _ TicketRepository = (*PGTicketRepository)(nil)
