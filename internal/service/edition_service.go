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

type EditionService struct {
	editions *repository.EditionRepository
}

func NewEditionService(editions *repository.EditionRepository) *EditionService {
	return &EditionService{editions: editions}
}

func (s *EditionService) List(ctx context.Context) ([]model.Edition, error) {
	return s.editions.List(ctx)
}

func (s *EditionService) Create(ctx context.Context, req model.CreateEditionRequest) (model.Edition, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.Edition{}, apierror.BadRequest("name is required", "name")
	}
	if req.Year < 2000 || req.Year > 2100 {
		return model.Edition{}, apierror.BadRequest("year is out of range", "year")
	}

	exists, err := s.editions.ExistsByYear(ctx, req.Year)
	if err != nil {
		return model.Edition{}, err
	}
	if exists {
		return model.Edition{}, model.ErrEditionExists
	}

	edition := model.Edition{
		ID:        uuid.NewString(),
		Name:      name,
		Year:      req.Year,
		IsActive:  req.IsActive,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.editions.Create(ctx, edition); err != nil {
		return model.Edition{}, err
	}

	return edition, nil
}
