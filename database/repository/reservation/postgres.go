// File: database/repository/reservation/postgres.go
package reservationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"tavola/database/repository"
	"tavola/models"
)

// Postgres unique-violation error code.
const pgUniqueViolation = "23505"

type postgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresRepo constructs a Repository backed by the reservations
// table. Slot uniqueness rides on the UNIQUE (date, time) constraint.
func NewPostgresRepo(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, res *models.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	q := `INSERT INTO reservations (id, name, contact, date, time, people, extra, created_at)
	      VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := r.pool.Exec(ctx, q,
		res.ID, res.Name, res.Contact, res.Date, res.Time, res.People, res.Extra, res.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return repository.ErrSlotTaken
		}
		return fmt.Errorf("failed to insert reservation: %w", err)
	}
	return nil
}

func (r *postgresRepo) List(ctx context.Context) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	q := `SELECT id, name, contact, date, time, people, extra, created_at
	      FROM reservations ORDER BY seq`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

func (r *postgresRepo) ListByDate(ctx context.Context, date string) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	q := `SELECT id, name, contact, date, time, people, extra, created_at
	      FROM reservations WHERE date=$1 ORDER BY seq`
	rows, err := r.pool.Query(ctx, q, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations by date: %w", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

func scanReservations(rows pgx.Rows) ([]models.Reservation, error) {
	var out []models.Reservation
	for rows.Next() {
		var res models.Reservation
		if err := rows.Scan(&res.ID, &res.Name, &res.Contact, &res.Date, &res.Time,
			&res.People, &res.Extra, &res.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
