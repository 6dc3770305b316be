// File: database/repository/formschema/postgres.go
package formschemaRepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tavola/models"
)

// The whole schema lives in a single jsonb row, so Replace is one
// UPSERT and readers never see a half-written field list.
type postgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresRepo constructs a Repository backed by the form_schema table.
func NewPostgresRepo(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Init(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM form_schema WHERE id=1)`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check schema presence: %w", err)
	}
	if exists {
		return nil
	}
	return r.Replace(ctx, models.DefaultFields())
}

func (r *postgresRepo) List(ctx context.Context) ([]models.FieldDefinition, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT fields FROM form_schema WHERE id=1`).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query schema: %w", err)
	}
	var out []models.FieldDefinition
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode schema: %w", err)
	}
	return out, nil
}

func (r *postgresRepo) Replace(ctx context.Context, fields []models.FieldDefinition) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if fields == nil {
		fields = []models.FieldDefinition{}
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode schema: %w", err)
	}
	q := `INSERT INTO form_schema (id, fields) VALUES (1, $1)
	      ON CONFLICT (id) DO UPDATE SET fields = EXCLUDED.fields`
	if _, err := r.pool.Exec(ctx, q, raw); err != nil {
		return fmt.Errorf("failed to persist schema: %w", err)
	}
	return nil
}
