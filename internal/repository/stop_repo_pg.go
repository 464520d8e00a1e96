package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vkozyr/busterminal/internal/domain"
)

type StopRepository interface {
	Create(ctx context.Context, stop *domain.Stop) error
	GetByID(ctx context.Context, id int64) (*domain.Stop, error)
	List(ctx context.Context) ([]domain.Stop, error)
}

type PGStopRepository struct {
	db *pgxpool.Pool
}

func NewStopRepository(db *pgxpool.Pool) StopRepository {
	return &PGStopRepository{db: db}
}

func (r *PGStopRepository) Create(ctx context.Context, stop *domain.Stop) error {
	return r.db.QueryRow(ctx, `INSERT INTO stops (name, city) VALUES ($1, $2) RETURNING id`,
		stop.Name, stop.City).Scan(&stop.ID)
}

func (r *PGStopRepository) GetByID(ctx context.Context, id int64) (*domain.Stop, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, city FROM stops WHERE id=$1`, id)
	var s domain.Stop
	if err := row.Scan(&s.ID, &s.Name, &s.City); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *PGStopRepository) List(ctx context.Context) ([]domain.Stop, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, city FROM stops ORDER BY city, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stops := make([]domain.Stop, 0)
	for rows.Next() {
		var s domain.Stop
		if err := rows.Scan(&s.ID, &s.Name, &s.City); err != nil {
			return nil, err
		}
		stops = append(stops, s)
	}
	return stops, rows.Err()
}

var _ StopRepository = (*PGStopRepository)(nil)
