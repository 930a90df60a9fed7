package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"osoc-selections-backend/internal/model"
	"osoc-selections-backend/internal/util"
)

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

func (r *ProjectRepository) List(ctx context.Context, query model.ProjectQuery) ([]model.Project, model.Meta, error) {
	page, limit := util.NormalizePage(query.Page, query.Limit)

	where := make([]string, 0)
	args := make([]any, 0)
	argIdx := 1

	if editionID := strings.TrimSpace(query.EditionID); editionID != "" {
		where = append(where, fmt.Sprintf("edition_id = $%d", argIdx))
		args = append(args, editionID)
		argIdx++
	}
	if search := strings.TrimSpace(query.Search); search != "" {
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR partner ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+search+"%")
		argIdx++
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM projects %s", whereClause)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, model.Meta{}, fmt.Errorf("count projects: %w", err)
	}

	listQuery := fmt.Sprintf(
		`SELECT id, name, partner, edition_id, positions, created_at
		 FROM projects %s
		 ORDER BY lower(name)
		 LIMIT $%d OFFSET $%d`, whereClause, argIdx, argIdx+1)
	args = append(args, limit, util.Offset(page, limit))

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, model.Meta{}, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]model.Project, 0)
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Partner, &p.EditionID, &p.Positions, &p.CreatedAt); err != nil {
			return nil, model.Meta{}, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, model.Meta{}, err
	}

	return projects, util.PageMeta(page, limit, total), nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (model.Project, error) {
	var p model.Project
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, partner, edition_id, positions, created_at
		 FROM projects WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Partner, &p.EditionID, &p.Positions, &p.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Project{}, model.ErrProjectNotFound
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("find project: %w", err)
	}
	return p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, p model.Project) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO projects (id, name, partner, edition_id, positions, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Name, p.Partner, p.EditionID, p.Positions, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) ListAssignments(ctx context.Context, projectID string) ([]model.Assignment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT project_id, student_id, position, assigned_by, assigned_at
		 FROM assignments WHERE project_id = $1 ORDER BY assigned_at`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	assignments := make([]model.Assignment, 0)
	for rows.Next() {
		var a model.Assignment
		if err := rows.Scan(&a.ProjectID, &a.StudentID, &a.Position, &a.AssignedBy, &a.AssignedAt); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (r *ProjectRepository) Assign(ctx context.Context, a model.Assignment) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO assignments (project_id, student_id, position, assigned_by, assigned_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		a.ProjectID, a.StudentID, a.Position, a.AssignedBy, a.AssignedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return model.ErrAlreadyAssigned
	}
	if err != nil {
		return fmt.Errorf("assign student: %w", err)
	}
	return nil
}

func (r *ProjectRepository) Unassign(ctx context.Context, projectID string, studentID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM assignments WHERE project_id = $1 AND student_id = $2`, projectID, studentID)
	if err != nil {
		return fmt.Errorf("unassign student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAssignmentNotFound
	}
	return nil
}
