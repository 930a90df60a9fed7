package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"osoc-selections-backend/internal/model"
	"osoc-selections-backend/internal/repository"
	"osoc-selections-backend/pkg/apierror"
)

type StudentService struct {
	students *repository.StudentRepository
	editions *repository.EditionRepository
}

func NewStudentService(students *repository.StudentRepository, editions *repository.EditionRepository) *StudentService {
	return &StudentService{students: students, editions: editions}
}

func (s *StudentService) List(ctx context.Context, query model.StudentQuery) ([]model.Student, model.Meta, error) {
	if status := strings.TrimSpace(query.Status); status != "" && !model.ValidStudentStatus(status) {
		return nil, model.Meta{}, apierror.BadRequest("invalid status filter", status)
	}

	return s.students.List(ctx, query)
}

func (s *StudentService) Get(ctx context.Context, id string) (model.Student, error) {
	return s.students.FindByID(ctx, id)
}

func (s *StudentService) Create(ctx context.Context, req model.CreateStudentRequest) (model.Student, error) {
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if firstName == "" || lastName == "" {
		return model.Student{}, apierror.BadRequest("first_name and last_name are required", "")
	}
	if email == "" {
		return model.Student{}, apierror.BadRequest("email is required", "email")
	}

	if _, err := s.editions.FindByID(ctx, strings.TrimSpace(req.EditionID)); err != nil {
		return model.Student{}, err
	}

	skills := req.Skills
	if skills == nil {
		skills = []string{}
	}

	now := time.Now().UTC()
	student := model.Student{
		ID:        uuid.NewString(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		EditionID: strings.TrimSpace(req.EditionID),
		Status:    model.StatusPending,
		Skills:    skills,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.students.Create(ctx, student); err != nil {
		return model.Student{}, err
	}

	return student, nil
}

func (s *StudentService) UpdateStatus(ctx context.Context, id string, status string) (model.Student, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !model.ValidStudentStatus(status) {
		return model.Student{}, apierror.BadRequest("invalid status", status)
	}

	if err := s.students.UpdateStatus(ctx, id, status); err != nil {
		return model.Student{}, err
	}

	return s.students.FindByID(ctx, id)
}
