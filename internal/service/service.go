package service

import (
	"go.uber.org/zap"

	"github.com/maximiza-sistemas/edu-backend/config"
	"github.com/maximiza-sistemas/edu-backend/internal/repository"
	"github.com/maximiza-sistemas/edu-backend/pkg/jwt"
)

// Service aggregates every service.
type Service struct {
	Auth                AuthService
	User                UserService
	Book                BookService
	Assignment          AssignmentService
	CurriculumComponent CurriculumComponentService
	Series              SeriesService
	Upload              UploadService
	Export              ExportService
}

// NewService wires all services.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	files FileStore,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:                NewAuthService(repo, jwtMgr, logger),
		User:                NewUserService(repo, cfg.Auth.BcryptCost, logger),
		Book:                NewBookService(repo, files, logger),
		Assignment:          NewAssignmentService(repo, logger),
		CurriculumComponent: NewCurriculumComponentService(repo, logger),
		Series:              NewSeriesService(repo, logger),
		Upload:              NewUploadService(files, logger),
		Export:              NewExportService(repo, logger),
	}
}
