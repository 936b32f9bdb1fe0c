package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/maximiza-sistemas/edu-backend/internal/model"
	"github.com/maximiza-sistemas/edu-backend/internal/repository"
	apperrors "github.com/maximiza-sistemas/edu-backend/pkg/errors"
)

// ── curriculum component errors ──

var (
	ErrComponentNameRequired = apperrors.BadRequest("Nome é obrigatório")
	ErrComponentExists       = apperrors.Conflict("Componente curricular já existe")
	ErrComponentNameTaken    = apperrors.Conflict("Componente curricular já existe com esse nome")
	ErrComponentNotFound     = apperrors.NotFound("Componente curricular não encontrado")
	ErrComponentInUse        = apperrors.Conflict("Não é possível excluir. Existem livros usando este componente curricular.")
)

// ── series errors ──

var (
	ErrSeriesNameRequired = apperrors.BadRequest("Nome da série é obrigatório")
	ErrSeriesExists       = apperrors.Conflict("Já existe uma série com esse nome")
	ErrSeriesNotFound     = apperrors.NotFound("Série não encontrada")
)

// CurriculumComponentService lookup table of subject areas.
type CurriculumComponentService interface {
	List(ctx context.Context) ([]model.CurriculumComponent, error)
	GetByID(ctx context.Context, id string) (*model.CurriculumComponent, error)
	Create(ctx context.Context, name string) (*model.CurriculumComponent, error)
	Update(ctx context.Context, id, name string) (*model.CurriculumComponent, error)
	// Delete refuses while any book references the component.
	Delete(ctx context.Context, id string) error
}

// SeriesService lookup table of school years.
type SeriesService interface {
	List(ctx context.Context) ([]model.Series, error)
	GetByID(ctx context.Context, id string) (*model.Series, error)
	Create(ctx context.Context, name string) (*model.Series, error)
	Update(ctx context.Context, id, name string) (*model.Series, error)
	Delete(ctx context.Context, id string) error
}

// ═══════════════════════════════════════════════════════════
// Curriculum components
// ═══════════════════════════════════════════════════════════

type curriculumComponentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCurriculumComponentService creates a CurriculumComponentService.
func NewCurriculumComponentService(repo *repository.Repository, logger *zap.Logger) CurriculumComponentService {
	return &curriculumComponentService{repo: repo, logger: logger}
}

func (s *curriculumComponentService) List(ctx context.Context) ([]model.CurriculumComponent, error) {
	items, err := s.repo.CurriculumComponent.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.CurriculumComponent{}
	}
	return items, nil
}

func (s *curriculumComponentService) GetByID(ctx context.Context, id string) (*model.CurriculumComponent, error) {
	c, err := s.repo.CurriculumComponent.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrComponentNotFound)
	}
	return c, nil
}

func (s *curriculumComponentService) Create(ctx context.Context, name string) (*model.CurriculumComponent, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrComponentNameRequired
	}

	existing, err := s.repo.CurriculumComponent.FindByName(ctx, name)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrComponentExists
	}

	c := &model.CurriculumComponent{Name: name}
	if err := s.repo.CurriculumComponent.Create(ctx, c); err != nil {
		s.logger.Error("failed to create curriculum component", zap.Error(err))
		return nil, err
	}
	return c, nil
}

func (s *curriculumComponentService) Update(ctx context.Context, id, name string) (*model.CurriculumComponent, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrComponentNameRequired
	}

	existing, err := s.repo.CurriculumComponent.FindByName(ctx, name)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, ErrComponentNameTaken
	}

	c, err := s.repo.CurriculumComponent.Rename(ctx, id, name)
	if err != nil {
		return nil, notFound(err, ErrComponentNotFound)
	}
	return c, nil
}

func (s *curriculumComponentService) Delete(ctx context.Context, id string) error {
	c, err := s.repo.CurriculumComponent.GetByID(ctx, id)
	if err != nil {
		return notFound(err, ErrComponentNotFound)
	}

	inUse, err := s.repo.Book.CountByComponent(ctx, c.Name)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return ErrComponentInUse
	}

	if err := s.repo.CurriculumComponent.Delete(ctx, id); err != nil {
		return notFound(err, ErrComponentNotFound)
	}
	return nil
}

// ═══════════════════════════════════════════════════════════
// Series
// ═══════════════════════════════════════════════════════════

type seriesService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSeriesService creates a SeriesService.
func NewSeriesService(repo *repository.Repository, logger *zap.Logger) SeriesService {
	return &seriesService{repo: repo, logger: logger}
}

func (s *seriesService) List(ctx context.Context) ([]model.Series, error) {
	items, err := s.repo.Series.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Series{}
	}
	return items, nil
}

func (s *seriesService) GetByID(ctx context.Context, id string) (*model.Series, error) {
	item, err := s.repo.Series.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrSeriesNotFound)
	}
	return item, nil
}

func (s *seriesService) Create(ctx context.Context, name string) (*model.Series, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrSeriesNameRequired
	}

	existing, err := s.repo.Series.FindByName(ctx, name)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSeriesExists
	}

	item := &model.Series{Name: name}
	if err := s.repo.Series.Create(ctx, item); err != nil {
		s.logger.Error("failed to create series", zap.Error(err))
		return nil, err
	}
	return item, nil
}

func (s *seriesService) Update(ctx context.Context, id, name string) (*model.Series, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrSeriesNameRequired
	}

	existing, err := s.repo.Series.FindByName(ctx, name)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, ErrSeriesExists
	}

	item, err := s.repo.Series.Rename(ctx, id, name)
	if err != nil {
		return nil, notFound(err, ErrSeriesNotFound)
	}
	return item, nil
}

func (s *seriesService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Series.Delete(ctx, id); err != nil {
		return notFound(err, ErrSeriesNotFound)
	}
	return nil
}
