package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/maximiza-sistemas/edu-backend/internal/model"
)

// UserFilter narrows user listings. Empty fields are ignored.
type UserFilter struct {
	Role        string
	ProfessorID string
	ClassGroup  string
	Limit       int
	Offset      int
}

// Conditions renders the filter.
func (f UserFilter) Conditions() *Conditions {
	return NewConditions().
		AddIf(f.Role != "", "users.role = ?", f.Role).
		AddIf(f.ProfessorID != "", "users.professor_id = ?", f.ProfessorID).
		AddIf(f.ClassGroup != "", "users.class_group = ?", f.ClassGroup)
}

// UserRepository user data access.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*model.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter UserFilter) ([]model.User, int64, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
	ListStudentsByProfessor(ctx context.Context, professorID string) ([]model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepo creates the gorm-backed UserRepository.
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update patches the given columns and returns the stored row.
func (r *userRepo) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).
		Model(&user).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepo) List(ctx context.Context, filter UserFilter) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	conds := filter.Conditions()

	if err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Scopes(conds.Scope).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Scopes(conds.Scope, paginate(filter.Limit, filter.Offset)).
		Order("users.name ASC").
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepo) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("role = ?", string(role)).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

func (r *userRepo) ListStudentsByProfessor(ctx context.Context, professorID string) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("professor_id = ? AND role = ?", professorID, string(model.RoleStudent)).
		Order("name ASC").
		Find(&users).Error
	return users, err
}
