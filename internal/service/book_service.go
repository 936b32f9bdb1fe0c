package service

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/maximiza-sistemas/edu-backend/internal/dto"
	"github.com/maximiza-sistemas/edu-backend/internal/model"
	"github.com/maximiza-sistemas/edu-backend/internal/repository"
	apperrors "github.com/maximiza-sistemas/edu-backend/pkg/errors"
)

// ── book errors ──

var (
	ErrBookFieldsRequired = apperrors.BadRequest("Título, autor e componente curricular são obrigatórios")
	ErrUnknownComponent   = apperrors.BadRequest("Componente curricular inválido")
	ErrInvalidBookType    = apperrors.BadRequest("Tipo de livro inválido")
)

// FileRemover deletes stored uploads by URL.
type FileRemover interface {
	Delete(url string) error
	IsLocal(url string) bool
}

// BookService book catalogue.
type BookService interface {
	List(ctx context.Context, req *dto.BookListRequest) ([]model.Book, int64, error)
	GetByID(ctx context.Context, id string) (*model.Book, error)
	Create(ctx context.Context, req *dto.CreateBookRequest) (*model.Book, error)
	Update(ctx context.Context, id string, req *dto.UpdateBookRequest) (*model.Book, error)
	Delete(ctx context.Context, id string) error
	ListByComponent(ctx context.Context, component string) ([]model.Book, error)
	ListByClass(ctx context.Context, classGroup string) ([]model.Book, error)
	// ListForStudent returns the student-type books tagged with the user's class group.
	ListForStudent(ctx context.Context, userID string) ([]model.Book, error)
}

type bookService struct {
	repo   *repository.Repository
	files  FileRemover
	logger *zap.Logger
}

// NewBookService creates a BookService. files may be nil, in which case
// replaced uploads are left on disk.
func NewBookService(repo *repository.Repository, files FileRemover, logger *zap.Logger) BookService {
	return &bookService{repo: repo, files: files, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *bookService) List(ctx context.Context, req *dto.BookListRequest) ([]model.Book, int64, error) {
	books, total, err := s.repo.Book.List(ctx, repository.BookFilter{
		Search:              strings.TrimSpace(req.Search),
		CurriculumComponent: req.CurriculumComponent,
		ClassGroup:          req.ClassGroup,
		ProfessorID:         req.ProfessorID,
		StudentID:           req.StudentID,
		BookType:            req.BookType,
		Limit:               req.GetLimit(),
		Offset:              req.GetOffset(),
	})
	if err != nil {
		s.logger.Error("failed to list books", zap.Error(err))
		return nil, 0, err
	}
	return normalizeBooks(books), total, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *bookService) GetByID(ctx context.Context, id string) (*model.Book, error) {
	book, err := s.repo.Book.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrBookNotFound)
	}
	normalizeBook(book)
	return book, nil
}

// ────────────────────── Create ──────────────────────

func (s *bookService) Create(ctx context.Context, req *dto.CreateBookRequest) (*model.Book, error) {
	title := strings.TrimSpace(req.Title)
	author := strings.TrimSpace(req.Author)
	if title == "" || author == "" || strings.TrimSpace(req.CurriculumComponent) == "" {
		return nil, ErrBookFieldsRequired
	}

	component, err := s.resolveComponent(ctx, req.CurriculumComponent)
	if err != nil {
		return nil, err
	}

	bookType := model.BookTypeStudent
	if req.BookType != nil {
		if !req.BookType.Valid() {
			return nil, ErrInvalidBookType
		}
		bookType = *req.BookType
	}

	book := &model.Book{
		Title:               title,
		Author:              author,
		Description:         req.Description,
		CoverURL:            req.CoverURL,
		PdfURL:              emptyToNil(req.PdfURL),
		CurriculumComponent: component,
		BookType:            bookType,
	}

	created, err := s.repo.Book.Create(ctx, book, normalizeClassGroups(req.ClassGroups))
	if err != nil {
		s.logger.Error("failed to create book", zap.Error(err))
		return nil, err
	}

	s.logger.Info("book created", zap.String("book_id", created.ID))
	normalizeBook(created)
	return created, nil
}

// ────────────────────── Update ──────────────────────

func (s *bookService) Update(ctx context.Context, id string, req *dto.UpdateBookRequest) (*model.Book, error) {
	fields := make(map[string]interface{})
	if req.Title != nil {
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Author != nil {
		fields["author"] = strings.TrimSpace(*req.Author)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.CoverURL != nil {
		fields["cover_url"] = *req.CoverURL
	}
	if req.PdfURL != nil {
		fields["pdf_url"] = emptyToNil(req.PdfURL)
	}
	if req.CurriculumComponent != nil {
		component, err := s.resolveComponent(ctx, *req.CurriculumComponent)
		if err != nil {
			return nil, err
		}
		fields["curriculum_component"] = component
	}
	if req.BookType != nil {
		if !req.BookType.Valid() {
			return nil, ErrInvalidBookType
		}
		fields["book_type"] = string(*req.BookType)
	}
	if (req.Title != nil && fields["title"] == "") || (req.Author != nil && fields["author"] == "") {
		return nil, ErrBookFieldsRequired
	}

	var classGroups *[]string
	if req.ClassGroups != nil {
		groups := normalizeClassGroups(*req.ClassGroups)
		classGroups = &groups
	}

	// the previous row is needed to clean up replaced uploads
	var previous *model.Book
	if req.CoverURL != nil || req.PdfURL != nil {
		prev, err := s.repo.Book.GetByID(ctx, id)
		if err != nil {
			return nil, notFound(err, ErrBookNotFound)
		}
		previous = prev
	}

	book, err := s.repo.Book.Update(ctx, id, fields, classGroups)
	if err != nil {
		return nil, notFound(err, ErrBookNotFound)
	}

	if previous != nil {
		if previous.CoverURL != book.CoverURL {
			s.removeFile(previous.CoverURL)
		}
		if previous.PdfURL != nil && (book.PdfURL == nil || *previous.PdfURL != *book.PdfURL) {
			s.removeFile(*previous.PdfURL)
		}
	}

	normalizeBook(book)
	return book, nil
}

// ────────────────────── Delete ──────────────────────

func (s *bookService) Delete(ctx context.Context, id string) error {
	book, err := s.repo.Book.GetByID(ctx, id)
	if err != nil {
		return notFound(err, ErrBookNotFound)
	}
	if err := s.repo.Book.Delete(ctx, id); err != nil {
		return notFound(err, ErrBookNotFound)
	}

	s.removeFile(book.CoverURL)
	if book.PdfURL != nil {
		s.removeFile(*book.PdfURL)
	}

	s.logger.Info("book deleted", zap.String("book_id", id))
	return nil
}

// ────────────────────── listings ──────────────────────

func (s *bookService) ListByComponent(ctx context.Context, component string) ([]model.Book, error) {
	books, err := s.repo.Book.ListByComponent(ctx, component)
	if err != nil {
		return nil, err
	}
	return normalizeBooks(books), nil
}

func (s *bookService) ListByClass(ctx context.Context, classGroup string) ([]model.Book, error) {
	books, err := s.repo.Book.ListByClass(ctx, classGroup)
	if err != nil {
		return nil, err
	}
	return normalizeBooks(books), nil
}

func (s *bookService) ListForStudent(ctx context.Context, userID string) ([]model.Book, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	if user.ClassGroup == nil || *user.ClassGroup == "" {
		return []model.Book{}, nil
	}

	books, err := s.repo.Book.ListForStudentClass(ctx, *user.ClassGroup)
	if err != nil {
		return nil, err
	}
	return normalizeBooks(books), nil
}

// ── helpers ──

// resolveComponent returns the stored spelling of a known component.
func (s *bookService) resolveComponent(ctx context.Context, name string) (string, error) {
	c, err := s.repo.CurriculumComponent.FindByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return "", notFound(err, ErrUnknownComponent)
	}
	return c.Name, nil
}

func (s *bookService) removeFile(url string) {
	if s.files == nil || url == "" || !s.files.IsLocal(url) {
		return
	}
	if err := s.files.Delete(url); err != nil {
		s.logger.Warn("failed to delete stored file", zap.String("url", url), zap.Error(err))
	}
}

// normalizeClassGroups trims, drops empties, deduplicates and sorts.
func normalizeClassGroups(groups []string) []string {
	seen := make(map[string]struct{}, len(groups))
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

func normalizeBook(b *model.Book) {
	if b.ClassGroups == nil {
		b.ClassGroups = []string{}
	}
}

func normalizeBooks(books []model.Book) []model.Book {
	if books == nil {
		return []model.Book{}
	}
	for i := range books {
		normalizeBook(&books[i])
	}
	return books
}
