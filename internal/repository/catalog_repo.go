package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/maximiza-sistemas/edu-backend/internal/model"
)

// CurriculumComponentRepository curriculum_components data access.
type CurriculumComponentRepository interface {
	Create(ctx context.Context, c *model.CurriculumComponent) error
	GetByID(ctx context.Context, id string) (*model.CurriculumComponent, error)
	// FindByName matches case-insensitively.
	FindByName(ctx context.Context, name string) (*model.CurriculumComponent, error)
	Rename(ctx context.Context, id, name string) (*model.CurriculumComponent, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.CurriculumComponent, error)
}

// SeriesRepository series data access.
type SeriesRepository interface {
	Create(ctx context.Context, s *model.Series) error
	GetByID(ctx context.Context, id string) (*model.Series, error)
	FindByName(ctx context.Context, name string) (*model.Series, error)
	Rename(ctx context.Context, id, name string) (*model.Series, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.Series, error)
}

// ── shared lookup-table helpers ──

func lookupByID[T any](ctx context.Context, db *gorm.DB, id string) (*T, error) {
	var out T
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func lookupByName[T any](ctx context.Context, db *gorm.DB, name string) (*T, error) {
	var out T
	if err := db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func lookupRename[T any](ctx context.Context, db *gorm.DB, id, name string) (*T, error) {
	var out T
	result := db.WithContext(ctx).
		Model(&out).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Update("name", name)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &out, nil
}

func lookupDelete[T any](ctx context.Context, db *gorm.DB, id string) error {
	var zero T
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&zero)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func lookupList[T any](ctx context.Context, db *gorm.DB) ([]T, error) {
	var out []T
	err := db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}

// ── curriculum components ──

type curriculumComponentRepo struct {
	db *gorm.DB
}

// NewCurriculumComponentRepo creates the gorm-backed CurriculumComponentRepository.
func NewCurriculumComponentRepo(db *gorm.DB) CurriculumComponentRepository {
	return &curriculumComponentRepo{db: db}
}

func (r *curriculumComponentRepo) Create(ctx context.Context, c *model.CurriculumComponent) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *curriculumComponentRepo) GetByID(ctx context.Context, id string) (*model.CurriculumComponent, error) {
	return lookupByID[model.CurriculumComponent](ctx, r.db, id)
}

func (r *curriculumComponentRepo) FindByName(ctx context.Context, name string) (*model.CurriculumComponent, error) {
	return lookupByName[model.CurriculumComponent](ctx, r.db, name)
}

// Rename also rewrites the name on every book referencing the old one,
// since books point at components by name.
func (r *curriculumComponentRepo) Rename(ctx context.Context, id, name string) (*model.CurriculumComponent, error) {
	var out *model.CurriculumComponent
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		old, err := lookupByID[model.CurriculumComponent](ctx, tx, id)
		if err != nil {
			return err
		}
		out, err = lookupRename[model.CurriculumComponent](ctx, tx, id, name)
		if err != nil {
			return err
		}
		if old.Name == name {
			return nil
		}
		return tx.Model(&model.Book{}).
			Where("curriculum_component = ?", old.Name).
			Update("curriculum_component", name).Error
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *curriculumComponentRepo) Delete(ctx context.Context, id string) error {
	return lookupDelete[model.CurriculumComponent](ctx, r.db, id)
}

func (r *curriculumComponentRepo) List(ctx context.Context) ([]model.CurriculumComponent, error) {
	return lookupList[model.CurriculumComponent](ctx, r.db)
}

// ── series ──

type seriesRepo struct {
	db *gorm.DB
}

// NewSeriesRepo creates the gorm-backed SeriesRepository.
func NewSeriesRepo(db *gorm.DB) SeriesRepository {
	return &seriesRepo{db: db}
}

func (r *seriesRepo) Create(ctx context.Context, s *model.Series) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *seriesRepo) GetByID(ctx context.Context, id string) (*model.Series, error) {
	return lookupByID[model.Series](ctx, r.db, id)
}

func (r *seriesRepo) FindByName(ctx context.Context, name string) (*model.Series, error) {
	return lookupByName[model.Series](ctx, r.db, name)
}

func (r *seriesRepo) Rename(ctx context.Context, id, name string) (*model.Series, error) {
	return lookupRename[model.Series](ctx, r.db, id, name)
}

func (r *seriesRepo) Delete(ctx context.Context, id string) error {
	return lookupDelete[model.Series](ctx, r.db, id)
}

func (r *seriesRepo) List(ctx context.Context) ([]model.Series, error) {
	return lookupList[model.Series](ctx, r.db)
}
