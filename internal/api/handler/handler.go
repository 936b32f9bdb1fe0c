package handler

import (
	"go.uber.org/zap"

	"github.com/maximiza-sistemas/edu-backend/internal/service"
)

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth                *AuthHandler
	User                *UserHandler
	Book                *BookHandler
	Assignment          *AssignmentHandler
	CurriculumComponent *CurriculumComponentHandler
	Series              *SeriesHandler
	Upload              *UploadHandler
	Export              *ExportHandler
	Health              *HealthHandler
}

// NewHandler wires handlers to services. exposeStack echoes stacks of
// unexpected errors in response bodies and must be false in production.
func NewHandler(svc *service.Service, ping PingFunc, logger *zap.Logger, exposeStack bool) *Handler {
	resp := NewResponder(logger, exposeStack)
	return &Handler{
		Auth:                NewAuthHandler(svc.Auth, resp),
		User:                NewUserHandler(svc.User, resp),
		Book:                NewBookHandler(svc.Book, resp),
		Assignment:          NewAssignmentHandler(svc.Assignment, resp),
		CurriculumComponent: NewCurriculumComponentHandler(svc.CurriculumComponent, resp),
		Series:              NewSeriesHandler(svc.Series, resp),
		Upload:              NewUploadHandler(svc.Upload, resp),
		Export:              NewExportHandler(svc.Export, resp),
		Health:              NewHealthHandler(ping),
	}
}
