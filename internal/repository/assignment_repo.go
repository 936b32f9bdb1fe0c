package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/maximiza-sistemas/edu-backend/internal/model"
)

// AssignmentFilter narrows assignment listings. Empty fields are ignored.
type AssignmentFilter struct {
	BookID string
	UserID string
	Limit  int
	Offset int
}

// Conditions renders the filter against the ba alias.
func (f AssignmentFilter) Conditions() *Conditions {
	return NewConditions().
		AddIf(f.BookID != "", "ba.book_id = ?", f.BookID).
		AddIf(f.UserID != "", "ba.user_id = ?", f.UserID)
}

// AssignmentRepository book_assignments data access.
type AssignmentRepository interface {
	// Create inserts unless the (book, user) pair exists; created is false on conflict.
	Create(ctx context.Context, a *model.BookAssignment) (created bool, err error)
	GetByID(ctx context.Context, id string) (*model.AssignmentDetail, error)
	List(ctx context.Context, filter AssignmentFilter) ([]model.AssignmentDetail, int64, error)
	ListByUser(ctx context.Context, userID string) ([]model.AssignmentDetail, error)
	ListByBook(ctx context.Context, bookID string) ([]model.AssignmentDetail, error)
	ListForExport(ctx context.Context, filter AssignmentFilter) ([]model.AssignmentDetail, error)
	UpdateProgress(ctx context.Context, id string, progress int) (*model.BookAssignment, error)
	UpdateProgressByPair(ctx context.Context, bookID, userID string, progress int) (*model.BookAssignment, error)
	Delete(ctx context.Context, id string) error
	DeleteByPair(ctx context.Context, bookID, userID string) error
}

type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo creates the gorm-backed AssignmentRepository.
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

const (
	listColumns = "ba.*, b.title AS book_title, u.name AS user_name, u.email AS user_email"
	userColumns = "ba.*, b.title AS book_title, b.author AS book_author, b.cover_url AS book_cover_url, b.curriculum_component"
	bookColumns = "ba.*, u.name AS user_name, u.email AS user_email, u.role AS user_role"
	fullColumns = "ba.*, b.title AS book_title, b.author AS book_author, b.curriculum_component, " +
		"u.name AS user_name, u.email AS user_email, u.role AS user_role"
)

func (r *assignmentRepo) joined(ctx context.Context, columns string) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("book_assignments ba").
		Select(columns).
		Joins("JOIN books b ON b.id = ba.book_id").
		Joins("JOIN users u ON u.id = ba.user_id")
}

func (r *assignmentRepo) Create(ctx context.Context, a *model.BookAssignment) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "book_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(a)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*model.AssignmentDetail, error) {
	var out model.AssignmentDetail
	err := r.joined(ctx, listColumns).
		Where("ba.id = ?", id).
		Take(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *assignmentRepo) List(ctx context.Context, filter AssignmentFilter) ([]model.AssignmentDetail, int64, error) {
	var rows []model.AssignmentDetail
	var total int64

	conds := filter.Conditions()

	if err := r.db.WithContext(ctx).
		Table("book_assignments ba").
		Scopes(conds.Scope).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.joined(ctx, listColumns).
		Scopes(conds.Scope, paginate(filter.Limit, filter.Offset)).
		Order("ba.assigned_at DESC").
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (r *assignmentRepo) ListByUser(ctx context.Context, userID string) ([]model.AssignmentDetail, error) {
	var rows []model.AssignmentDetail
	err := r.joined(ctx, userColumns).
		Where("ba.user_id = ?", userID).
		Order("ba.assigned_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *assignmentRepo) ListByBook(ctx context.Context, bookID string) ([]model.AssignmentDetail, error) {
	var rows []model.AssignmentDetail
	err := r.joined(ctx, bookColumns).
		Where("ba.book_id = ?", bookID).
		Order("u.name ASC").
		Find(&rows).Error
	return rows, err
}

// ListForExport returns every matching row with all display columns.
func (r *assignmentRepo) ListForExport(ctx context.Context, filter AssignmentFilter) ([]model.AssignmentDetail, error) {
	var rows []model.AssignmentDetail
	err := r.joined(ctx, fullColumns).
		Scopes(filter.Conditions().Scope).
		Order("b.title ASC, u.name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *assignmentRepo) UpdateProgress(ctx context.Context, id string, progress int) (*model.BookAssignment, error) {
	return r.updateProgress(ctx, progress, "id = ?", id)
}

func (r *assignmentRepo) UpdateProgressByPair(ctx context.Context, bookID, userID string, progress int) (*model.BookAssignment, error) {
	return r.updateProgress(ctx, progress, "book_id = ? AND user_id = ?", bookID, userID)
}

func (r *assignmentRepo) updateProgress(ctx context.Context, progress int, where string, args ...interface{}) (*model.BookAssignment, error) {
	var a model.BookAssignment
	result := r.db.WithContext(ctx).
		Model(&a).
		Clauses(clause.Returning{}).
		Where(where, args...).
		Update("progress", progress)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (r *assignmentRepo) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, "id = ?", id)
}

func (r *assignmentRepo) DeleteByPair(ctx context.Context, bookID, userID string) error {
	return r.delete(ctx, "book_id = ? AND user_id = ?", bookID, userID)
}

func (r *assignmentRepo) delete(ctx context.Context, where string, args ...interface{}) error {
	result := r.db.WithContext(ctx).
		Where(where, args...).
		Delete(&model.BookAssignment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
