package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/maximiza-sistemas/edu-backend/internal/model"
)

// filterAll disables an enumerated filter.
const filterAll = "all"

// classGroupsColumn aggregates a book's tags into a sorted, deduplicated
// array literal. The ::text cast keeps scanning independent of the driver's
// array support.
const classGroupsColumn = `COALESCE((
	SELECT array_agg(DISTINCT bcg.class_group ORDER BY bcg.class_group)
	FROM book_class_groups bcg
	WHERE bcg.book_id = books.id
), ARRAY[]::varchar[])::text AS class_groups`

// BookFilter narrows book listings. Empty fields are ignored.
type BookFilter struct {
	Search              string
	CurriculumComponent string
	ClassGroup          string
	ProfessorID         string
	StudentID           string
	BookType            string
	Limit               int
	Offset              int
}

// Conditions renders the filter. "all" disables the component and class filters.
// The professor and student filters require the assigned user to hold that role.
func (f BookFilter) Conditions() *Conditions {
	c := NewConditions()
	if f.Search != "" {
		p := likePattern(f.Search)
		c.Add("books.title ILIKE ? OR books.author ILIKE ? OR books.description ILIKE ?", p, p, p)
	}
	c.AddIf(f.CurriculumComponent != "" && f.CurriculumComponent != filterAll,
		componentIs, f.CurriculumComponent)
	c.AddIf(f.ClassGroup != "" && f.ClassGroup != filterAll,
		taggedWith, f.ClassGroup)
	c.AddIf(f.ProfessorID != "",
		assignedToRole, f.ProfessorID, string(model.RoleProfessor))
	c.AddIf(f.StudentID != "",
		assignedToRole, f.StudentID, string(model.RoleStudent))
	c.AddIf(f.BookType != "" && f.BookType != filterAll,
		"books.book_type = ?", f.BookType)
	return c
}

const (
	componentIs = "books.curriculum_component = ?"
	taggedWith  = "EXISTS (SELECT 1 FROM book_class_groups bcg WHERE bcg.book_id = books.id AND bcg.class_group = ?)"
)

// componentConditions matches the component name exactly.
func componentConditions(component string) *Conditions {
	return NewConditions().Add(componentIs, component)
}

// classConditions matches books tagged with classGroup exactly.
func classConditions(classGroup string) *Conditions {
	return NewConditions().Add(taggedWith, classGroup)
}

// studentClassConditions restricts classConditions to student material.
func studentClassConditions(classGroup string) *Conditions {
	return NewConditions().
		Add("books.book_type = ?", string(model.BookTypeStudent)).
		Add(taggedWith, classGroup)
}

const assignedToRole = `EXISTS (
	SELECT 1 FROM book_assignments ba
	JOIN users u ON u.id = ba.user_id
	WHERE ba.book_id = books.id AND ba.user_id = ? AND u.role = ?
)`

// BookRepository book data access. Class-group tags are written in the
// same transaction as the book row.
type BookRepository interface {
	Create(ctx context.Context, book *model.Book, classGroups []string) (*model.Book, error)
	GetByID(ctx context.Context, id string) (*model.Book, error)
	Update(ctx context.Context, id string, fields map[string]interface{}, classGroups *[]string) (*model.Book, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter BookFilter) ([]model.Book, int64, error)
	ListByComponent(ctx context.Context, component string) ([]model.Book, error)
	ListByClass(ctx context.Context, classGroup string) ([]model.Book, error)
	ListForStudentClass(ctx context.Context, classGroup string) ([]model.Book, error)
	CountByComponent(ctx context.Context, component string) (int64, error)
	ListFileURLs(ctx context.Context) ([]string, error)
}

type bookRepo struct {
	db *gorm.DB
}

// NewBookRepo creates the gorm-backed BookRepository.
func NewBookRepo(db *gorm.DB) BookRepository {
	return &bookRepo{db: db}
}

// withClassGroups selects book columns plus the aggregated tag list.
func withClassGroups(db *gorm.DB) *gorm.DB {
	return db.Table("books").Select("books.*, " + classGroupsColumn)
}

func (r *bookRepo) Create(ctx context.Context, book *model.Book, classGroups []string) (*model.Book, error) {
	var out model.Book
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(book).Error; err != nil {
			return err
		}
		if err := insertClassGroups(tx, book.ID, classGroups); err != nil {
			return err
		}
		return tx.Scopes(withClassGroups).Where("books.id = ?", book.ID).Take(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *bookRepo) GetByID(ctx context.Context, id string) (*model.Book, error) {
	var book model.Book
	err := r.db.WithContext(ctx).
		Scopes(withClassGroups).
		Where("books.id = ?", id).
		Take(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Update patches scalar columns and, when classGroups is non-nil, replaces
// the tag set wholesale. An empty patch only verifies existence.
func (r *bookRepo) Update(ctx context.Context, id string, fields map[string]interface{}, classGroups *[]string) (*model.Book, error) {
	var out model.Book
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			result := tx.Model(&model.Book{}).Where("id = ?", id).Updates(fields)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		} else {
			var count int64
			if err := tx.Model(&model.Book{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return gorm.ErrRecordNotFound
			}
		}

		if classGroups != nil {
			if err := tx.Where("book_id = ?", id).Delete(&model.BookClassGroup{}).Error; err != nil {
				return err
			}
			if err := insertClassGroups(tx, id, *classGroups); err != nil {
				return err
			}
		}

		return tx.Scopes(withClassGroups).Where("books.id = ?", id).Take(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func insertClassGroups(tx *gorm.DB, bookID string, groups []string) error {
	if len(groups) == 0 {
		return nil
	}
	rows := make([]model.BookClassGroup, len(groups))
	for i, g := range groups {
		rows[i] = model.BookClassGroup{BookID: bookID, ClassGroup: g}
	}
	return tx.Create(&rows).Error
}

func (r *bookRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Book{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *bookRepo) List(ctx context.Context, filter BookFilter) ([]model.Book, int64, error) {
	var books []model.Book
	var total int64

	conds := filter.Conditions()

	if err := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Scopes(conds.Scope).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Scopes(withClassGroups, conds.Scope, paginate(filter.Limit, filter.Offset)).
		Order("books.title ASC").
		Find(&books).Error; err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

func (r *bookRepo) find(ctx context.Context, conds *Conditions) ([]model.Book, error) {
	var books []model.Book
	err := r.db.WithContext(ctx).
		Scopes(withClassGroups, conds.Scope).
		Order("books.title ASC").
		Find(&books).Error
	return books, err
}

func (r *bookRepo) ListByComponent(ctx context.Context, component string) ([]model.Book, error) {
	return r.find(ctx, componentConditions(component))
}

func (r *bookRepo) ListByClass(ctx context.Context, classGroup string) ([]model.Book, error) {
	return r.find(ctx, classConditions(classGroup))
}

// ListForStudentClass returns student-type books tagged with classGroup.
// Professor material is excluded regardless of tags.
func (r *bookRepo) ListForStudentClass(ctx context.Context, classGroup string) ([]model.Book, error) {
	return r.find(ctx, studentClassConditions(classGroup))
}

func (r *bookRepo) CountByComponent(ctx context.Context, component string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Where("curriculum_component = ?", component).
		Count(&count).Error
	return count, err
}

// ListFileURLs returns every non-empty cover and pdf reference.
func (r *bookRepo) ListFileURLs(ctx context.Context) ([]string, error) {
	var urls []string
	err := r.db.WithContext(ctx).Raw(`
		SELECT cover_url FROM books WHERE cover_url <> ''
		UNION
		SELECT pdf_url FROM books WHERE pdf_url IS NOT NULL AND pdf_url <> ''
	`).Scan(&urls).Error
	return urls, err
}
