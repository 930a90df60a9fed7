package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"osoc-selections-backend/internal/model"
)

type EditionRepository struct {
	pool *pgxpool.Pool
}

func NewEditionRepository(pool *pgxpool.Pool) *EditionRepository {
	return &EditionRepository{pool: pool}
}

func (r *EditionRepository) List(ctx context.Context) ([]model.Edition, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, year, is_active, created_at FROM editions ORDER BY year DESC`)
	if err != nil {
		return nil, fmt.Errorf("list editions: %w", err)
	}
	defer rows.Close()

	editions := make([]model.Edition, 0)
	for rows.Next() {
		var e model.Edition
		if err := rows.Scan(&e.ID, &e.Name, &e.Year, &e.IsActive, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan edition: %w", err)
		}
		editions = append(editions, e)
	}
	return editions, rows.Err()
}

func (r *EditionRepository) FindByID(ctx context.Context, id string) (model.Edition, error) {
	var e model.Edition
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, year, is_active, created_at FROM editions WHERE id = $1`, id).
		Scan(&e.ID, &e.Name, &e.Year, &e.IsActive, &e.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Edition{}, model.ErrEditionNotFound
	}
	if err != nil {
		return model.Edition{}, fmt.Errorf("find edition: %w", err)
	}
	return e, nil
}

func (r *EditionRepository) ExistsByYear(ctx context.Context, year int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM editions WHERE year = $1)`, year).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check edition year exists: %w", err)
	}
	return exists, nil
}

func (r *EditionRepository) Create(ctx context.Context, e model.Edition) error {
	// Only one edition may be active; activating a new one retires the rest.
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create edition: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if e.IsActive {
		if _, err := tx.Exec(ctx, `UPDATE editions SET is_active = false WHERE is_active`); err != nil {
			return fmt.Errorf("retire active editions: %w", err)
		}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO editions (id, name, year, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.Name, e.Year, e.IsActive, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("create edition: %w", err)
	}

	return tx.Commit(ctx)
}
