package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/maximiza-sistemas/edu-backend/config"
	"github.com/maximiza-sistemas/edu-backend/internal/api/handler"
	"github.com/maximiza-sistemas/edu-backend/internal/api/middleware"
	"github.com/maximiza-sistemas/edu-backend/internal/model"
	"github.com/maximiza-sistemas/edu-backend/internal/service"
	apperrors "github.com/maximiza-sistemas/edu-backend/pkg/errors"
	"github.com/maximiza-sistemas/edu-backend/pkg/jwt"
	"github.com/maximiza-sistemas/edu-backend/pkg/response"
	"github.com/maximiza-sistemas/edu-backend/pkg/storage"
)

// uploadOverhead leaves room for multipart framing on top of the file limit.
const uploadOverhead = 1 << 20

// Deps are the collaborators the routes need besides the handlers.
type Deps struct {
	JWT         *jwt.Manager
	RateCounter middleware.WindowCounter
	UploadRoot  string
	Logger      *zap.Logger
}

// Setup builds the gin engine.
func Setup(cfg *config.Config, h *handler.Handler, deps Deps) (*gin.Engine, error) {
	if err := handler.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// ── global middleware ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger, !cfg.Server.IsProduction()))
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.RateLimit(deps.RateCounter, cfg.RateLimit.Max, cfg.RateLimit.Window, deps.Logger))

	// ── static uploads ──
	r.Static(storage.URLPrefix, deps.UploadRoot)

	// ── health ──
	r.GET("/health", h.Health.Check)

	api := r.Group("/api", middleware.SecurityHeaders(cfg.Server.IsProduction()))
	api.GET("/health", h.Health.Check)

	// ── uploads carry their own body limit ──
	upload := api.Group("/upload",
		middleware.BodyLimit(cfg.Storage.MaxUploadSize+uploadOverhead, service.ErrFileTooLarge.Message),
		middleware.JWTAuth(deps.JWT),
		middleware.RoleAuth(model.RoleAdmin),
	)
	{
		upload.POST("/pdf", h.Upload.UploadPDF)
		upload.POST("/image", h.Upload.UploadImage)
	}

	jsonAPI := api.Group("", middleware.BodyLimit(cfg.Server.BodyLimit, apperrors.MsgBodyTooLarge))

	// ── auth ──
	auth := jsonAPI.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", middleware.JWTAuth(deps.JWT), h.Auth.Me)
	}

	authorized := jsonAPI.Group("", middleware.JWTAuth(deps.JWT))
	adminOnly := middleware.RoleAuth(model.RoleAdmin)
	staff := middleware.RoleAuth(model.RoleAdmin, model.RoleProfessor)

	// ── users ──
	users := authorized.Group("/users")
	{
		users.GET("/role/:role", h.User.ListByRole)
		users.GET("/professor/:professorId/students", h.User.ListStudentsByProfessor)
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.POST("", adminOnly, h.User.Create)
		users.PUT("/:id", adminOnly, h.User.Update)
		users.DELETE("/:id", adminOnly, h.User.Delete)
	}

	// ── curriculum components ──
	components := authorized.Group("/curriculum-components")
	{
		components.GET("", h.CurriculumComponent.List)
		components.GET("/:id", h.CurriculumComponent.Get)
		components.POST("", adminOnly, h.CurriculumComponent.Create)
		components.PUT("/:id", adminOnly, h.CurriculumComponent.Update)
		components.DELETE("/:id", adminOnly, h.CurriculumComponent.Delete)
	}

	// ── series ──
	series := authorized.Group("/series")
	{
		series.GET("", h.Series.List)
		series.GET("/:id", h.Series.Get)
		series.POST("", adminOnly, h.Series.Create)
		series.PUT("/:id", adminOnly, h.Series.Update)
		series.DELETE("/:id", adminOnly, h.Series.Delete)
	}

	// ── books ──
	books := authorized.Group("/books")
	{
		books.GET("", h.Book.List)
		books.GET("/student/:userId", h.Book.ListForStudent)
		books.GET("/component/:component", h.Book.ListByComponent)
		books.GET("/class/:classGroup", h.Book.ListByClass)
		books.GET("/:id", h.Book.Get)
		books.POST("", adminOnly, h.Book.Create)
		books.PUT("/:id", adminOnly, h.Book.Update)
		books.DELETE("/:id", adminOnly, h.Book.Delete)
	}

	// ── assignments ──
	assignments := authorized.Group("/assignments")
	{
		assignments.GET("", h.Assignment.List)
		assignments.GET("/export", staff, h.Export.ExportAssignments)
		assignments.GET("/user/:userId", h.Assignment.ListByUser)
		assignments.GET("/book/:bookId", h.Assignment.ListByBook)
		assignments.GET("/:id", h.Assignment.Get)
		assignments.POST("", staff, h.Assignment.Create)
		assignments.PUT("/:id", h.Assignment.UpdateProgress)
		assignments.PUT("/book/:bookId/user/:userId/progress", h.Assignment.UpdateProgressByPair)
		assignments.DELETE("/:id", staff, h.Assignment.Delete)
		assignments.DELETE("/book/:bookId/user/:userId", staff, h.Assignment.DeleteByPair)
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, fmt.Sprintf("Rota %s %s não encontrada", c.Request.Method, c.Request.URL.Path))
	})

	return r, nil
}
