package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"osoc-selections-backend/internal/model"
	"osoc-selections-backend/internal/util"
)

type StudentRepository struct {
	pool *pgxpool.Pool
}

func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

func (r *StudentRepository) List(ctx context.Context, query model.StudentQuery) ([]model.Student, model.Meta, error) {
	page, limit := util.NormalizePage(query.Page, query.Limit)

	where := make([]string, 0)
	args := make([]any, 0)
	argIdx := 1

	if editionID := strings.TrimSpace(query.EditionID); editionID != "" {
		where = append(where, fmt.Sprintf("edition_id = $%d", argIdx))
		args = append(args, editionID)
		argIdx++
	}
	if status := strings.TrimSpace(query.Status); status != "" {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, status)
		argIdx++
	}
	if search := strings.TrimSpace(query.Search); search != "" {
		where = append(where, fmt.Sprintf("(first_name || ' ' || last_name) ILIKE $%d", argIdx))
		args = append(args, "%"+search+"%")
		argIdx++
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM students %s", whereClause)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, model.Meta{}, fmt.Errorf("count students: %w", err)
	}

	listQuery := fmt.Sprintf(
		`SELECT id, first_name, last_name, email, edition_id, status, skills, created_at, updated_at
		 FROM students %s
		 ORDER BY lower(last_name), lower(first_name)
		 LIMIT $%d OFFSET $%d`, whereClause, argIdx, argIdx+1)
	args = append(args, limit, util.Offset(page, limit))

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, model.Meta{}, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	students := make([]model.Student, 0)
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.EditionID,
			&s.Status, &s.Skills, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, model.Meta{}, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, model.Meta{}, err
	}

	return students, util.PageMeta(page, limit, total), nil
}

func (r *StudentRepository) FindByID(ctx context.Context, id string) (model.Student, error) {
	var s model.Student
	err := r.pool.QueryRow(ctx,
		`SELECT id, first_name, last_name, email, edition_id, status, skills, created_at, updated_at
		 FROM students WHERE id = $1`, id).
		Scan(&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.EditionID,
			&s.Status, &s.Skills, &s.CreatedAt, &s.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Student{}, model.ErrStudentNotFound
	}
	if err != nil {
		return model.Student{}, fmt.Errorf("find student: %w", err)
	}
	return s, nil
}

func (r *StudentRepository) Create(ctx context.Context, s model.Student) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO students (id, first_name, last_name, email, edition_id, status, skills, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.FirstName, s.LastName, s.Email, s.EditionID, s.Status, s.Skills, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

func (r *StudentRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE students SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update student status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrStudentNotFound
	}
	return nil
}
