package repository

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vkozyr/busterminal/internal/domain"
)

type PassengerRepository interface {
	// Insert writes a new passenger row. When the document key is already
	// claimed it returns (false, nil); a concurrent caller won the race and
	// the registry resolves it by re-querying.
	Insert(ctx context.Context, passenger *domain.Passenger) (bool, error)
	GetByID(ctx context.Context, id int64) (*domain.Passenger, error)
	GetByDocument(ctx context.Context, documentType, documentNumber string) (*domain.Passenger, error)
	List(ctx context.Context) ([]domain.Passenger, error)
}

type PGPassengerRepository struct {
	db *pgxpool.Pool
}

func NewPassengerRepository(db *pgxpool.Pool) PassengerRepository {
	return &PGPassengerRepository{db: db}
}

const passengerColumns = `id, full_name, document_type, document_number, phone_number, email, benefit_type`

func scanPassenger(row pgx.Row) (*domain.Passenger, error) {
	var p domain.Passenger
	var benefit string
	if err := row.Scan(&p.ID, &p.FullName, &p.DocumentType, &p.DocumentNumber,
		&p.PhoneNumber, &p.Email, &benefit); err != nil {
		return nil, err
	}
	parsed, ok := domain.ParseBenefitType(benefit)
	if !ok {
		// Fall back to NONE but leave a trace: a silent default here would
		// hide corrupt rows forever.
		log.Printf("passenger %d: unknown stored benefit type %q, treating as NONE", p.ID, benefit)
	}
	p.Benefit = parsed
	return &p, nil
}

func (r *PGPassengerRepository) Insert(ctx context.Context, passenger *domain.Passenger) (bool, error) {
	err := r.db.QueryRow(ctx, `INSERT INTO passengers (full_name, document_type, document_number, phone_number, email, benefit_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		passenger.FullName, passenger.DocumentType, passenger.DocumentNumber,
		passenger.PhoneNumber, passenger.Email, passenger.Benefit).
		Scan(&passenger.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *PGPassengerRepository) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	p, err := scanPassenger(r.db.QueryRow(ctx, `SELECT `+passengerColumns+` FROM passengers WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *PGPassengerRepository) GetByDocument(ctx context.Context, documentType, documentNumber string) (*domain.Passenger, error) {
	p, err := scanPassenger(r.db.QueryRow(ctx,
		`SELECT `+passengerColumns+` FROM passengers WHERE document_type=$1 AND document_number=$2`,
		documentType, documentNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *PGPassengerRepository) List(ctx context.Context) ([]domain.Passenger, error) {
	rows, err := r.db.Query(ctx, `SELECT `+passengerColumns+` FROM passengers ORDER BY full_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	passengers := make([]domain.Passenger, 0)
	for rows.Next() {
		p, err := scanPassenger(rows)
		if err != nil {
			return nil, err
		}
		passengers = append(passengers, *p)
	}
	return passengers, rows.Err()
}

var _ PassengerRepository = (*PGPassengerRepository)(nil)
