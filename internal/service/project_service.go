package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"osoc-selections-backend/internal/model"
	"osoc-selections-backend/internal/repository"
	"osoc-selections-backend/pkg/apierror"
)

type ProjectService struct {
	projects *repository.ProjectRepository
	students *repository.StudentRepository
	editions *repository.EditionRepository
}

func NewProjectService(
	projects *repository.ProjectRepository,
	students *repository.StudentRepository,
	editions *repository.EditionRepository,
) *ProjectService {
	return &ProjectService{projects: projects, students: students, editions: editions}
}

func (s *ProjectService) List(ctx context.Context, query model.ProjectQuery) ([]model.Project, model.Meta, error) {
	return s.projects.List(ctx, query)
}

func (s *ProjectService) Get(ctx context.Context, id string) (model.ProjectDetail, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return model.ProjectDetail{}, err
	}

	assignments, err := s.projects.ListAssignments(ctx, id)
	if err != nil {
		return model.ProjectDetail{}, err
	}

	return model.ProjectDetail{Project: project, Assignments: assignments}, nil
}

func (s *ProjectService) Create(ctx context.Context, req model.CreateProjectRequest) (model.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.Project{}, apierror.BadRequest("name is required", "name")
	}
	if req.Positions < 1 {
		return model.Project{}, apierror.BadRequest("positions must be at least 1", "positions")
	}

	if _, err := s.editions.FindByID(ctx, strings.TrimSpace(req.EditionID)); err != nil {
		return model.Project{}, err
	}

	project := model.Project{
		ID:        uuid.NewString(),
		Name:      name,
		Partner:   strings.TrimSpace(req.Partner),
		EditionID: strings.TrimSpace(req.EditionID),
		Positions: req.Positions,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return model.Project{}, err
	}

	return project, nil
}

// Assign places a student on a project. Both sides must exist and belong
// to the same edition.
func (s *ProjectService) Assign(ctx context.Context, projectID string, req model.AssignStudentRequest, assignedBy string) (model.Assignment, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return model.Assignment{}, err
	}

	student, err := s.students.FindByID(ctx, strings.TrimSpace(req.StudentID))
	if err != nil {
		return model.Assignment{}, err
	}

	if student.EditionID != project.EditionID {
		return model.Assignment{}, apierror.New("CONFLICT",
			"student and project belong to different editions", "", http.StatusConflict)
	}

	assignment := model.Assignment{
		ProjectID:  project.ID,
		StudentID:  student.ID,
		Position:   strings.TrimSpace(req.Position),
		AssignedBy: assignedBy,
		AssignedAt: time.Now().UTC(),
	}

	if err := s.projects.Assign(ctx, assignment); err != nil {
		return model.Assignment{}, err
	}

	return assignment, nil
}

func (s *ProjectService) Unassign(ctx context.Context, projectID string, studentID string) error {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return err
	}

	return s.projects.Unassign(ctx, projectID, studentID)
}
