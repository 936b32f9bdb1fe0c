package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/maximiza-sistemas/edu-backend/internal/dto"
	"github.com/maximiza-sistemas/edu-backend/internal/model"
	"github.com/maximiza-sistemas/edu-backend/internal/repository"
	apperrors "github.com/maximiza-sistemas/edu-backend/pkg/errors"
)

// ── assignment errors ──

var (
	ErrAssignmentFieldsRequired = apperrors.BadRequest("ID do livro e ID do usuário são obrigatórios")
	ErrAssignmentNotFound       = apperrors.NotFound("Atribuição não encontrada")
	ErrAssignmentExists         = apperrors.Conflict("Este livro já está atribuído a este usuário")
	ErrInvalidProgress          = apperrors.BadRequest("Progresso deve ser um número entre 0 e 100")
)

const (
	minProgress = 0
	maxProgress = 100
)

// AssignmentService book-to-user assignments and reading progress.
type AssignmentService interface {
	List(ctx context.Context, req *dto.AssignmentListRequest) ([]model.AssignmentDetail, int64, error)
	GetByID(ctx context.Context, id string) (*model.AssignmentDetail, error)
	ListByUser(ctx context.Context, userID string) ([]model.AssignmentDetail, error)
	ListByBook(ctx context.Context, bookID string) ([]model.AssignmentDetail, error)
	Create(ctx context.Context, req *dto.CreateAssignmentRequest) (*model.BookAssignment, error)
	UpdateProgress(ctx context.Context, id string, progress *int) (*model.BookAssignment, error)
	UpdateProgressByPair(ctx context.Context, bookID, userID string, progress *int) (*model.BookAssignment, error)
	Delete(ctx context.Context, id string) error
	DeleteByPair(ctx context.Context, bookID, userID string) error
}

type assignmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAssignmentService creates an AssignmentService.
func NewAssignmentService(repo *repository.Repository, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, logger: logger}
}

// ────────────────────── reads ──────────────────────

func (s *assignmentService) List(ctx context.Context, req *dto.AssignmentListRequest) ([]model.AssignmentDetail, int64, error) {
	rows, total, err := s.repo.Assignment.List(ctx, repository.AssignmentFilter{
		BookID: req.BookID,
		UserID: req.UserID,
		Limit:  req.GetLimit(),
		Offset: req.GetOffset(),
	})
	if err != nil {
		s.logger.Error("failed to list assignments", zap.Error(err))
		return nil, 0, err
	}
	return nonNilDetails(rows), total, nil
}

func (s *assignmentService) GetByID(ctx context.Context, id string) (*model.AssignmentDetail, error) {
	a, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrAssignmentNotFound)
	}
	return a, nil
}

func (s *assignmentService) ListByUser(ctx context.Context, userID string) ([]model.AssignmentDetail, error) {
	rows, err := s.repo.Assignment.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return nonNilDetails(rows), nil
}

func (s *assignmentService) ListByBook(ctx context.Context, bookID string) ([]model.AssignmentDetail, error) {
	rows, err := s.repo.Assignment.ListByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return nonNilDetails(rows), nil
}

// ────────────────────── Create ──────────────────────

func (s *assignmentService) Create(ctx context.Context, req *dto.CreateAssignmentRequest) (*model.BookAssignment, error) {
	if req.BookID == "" || req.UserID == "" {
		return nil, ErrAssignmentFieldsRequired
	}

	if _, err := s.repo.Book.GetByID(ctx, req.BookID); err != nil {
		return nil, notFound(err, ErrBookNotFound)
	}
	if _, err := s.repo.User.GetByID(ctx, req.UserID); err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}

	a := &model.BookAssignment{BookID: req.BookID, UserID: req.UserID}
	created, err := s.repo.Assignment.Create(ctx, a)
	if err != nil {
		s.logger.Error("failed to create assignment", zap.Error(err))
		return nil, err
	}
	if !created {
		return nil, ErrAssignmentExists
	}

	s.logger.Info("book assigned",
		zap.String("book_id", a.BookID),
		zap.String("user_id", a.UserID),
	)
	return a, nil
}

// ────────────────────── progress ──────────────────────

func validProgress(progress *int) error {
	if progress == nil || *progress < minProgress || *progress > maxProgress {
		return ErrInvalidProgress
	}
	return nil
}

func (s *assignmentService) UpdateProgress(ctx context.Context, id string, progress *int) (*model.BookAssignment, error) {
	if err := validProgress(progress); err != nil {
		return nil, err
	}
	a, err := s.repo.Assignment.UpdateProgress(ctx, id, *progress)
	if err != nil {
		return nil, notFound(err, ErrAssignmentNotFound)
	}
	return a, nil
}

func (s *assignmentService) UpdateProgressByPair(ctx context.Context, bookID, userID string, progress *int) (*model.BookAssignment, error) {
	if err := validProgress(progress); err != nil {
		return nil, err
	}
	a, err := s.repo.Assignment.UpdateProgressByPair(ctx, bookID, userID, *progress)
	if err != nil {
		return nil, notFound(err, ErrAssignmentNotFound)
	}
	return a, nil
}

// ────────────────────── Delete ──────────────────────

func (s *assignmentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Assignment.Delete(ctx, id); err != nil {
		return notFound(err, ErrAssignmentNotFound)
	}
	return nil
}

func (s *assignmentService) DeleteByPair(ctx context.Context, bookID, userID string) error {
	if err := s.repo.Assignment.DeleteByPair(ctx, bookID, userID); err != nil {
		return notFound(err, ErrAssignmentNotFound)
	}
	return nil
}

func nonNilDetails(rows []model.AssignmentDetail) []model.AssignmentDetail {
	if rows == nil {
		return []model.AssignmentDetail{}
	}
	return rows
}
