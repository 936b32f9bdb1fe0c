package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/maximiza-sistemas/edu-backend/config"
	"github.com/maximiza-sistemas/edu-backend/internal/api/handler"
	"github.com/maximiza-sistemas/edu-backend/internal/api/middleware"
	"github.com/maximiza-sistemas/edu-backend/internal/api/router"
	"github.com/maximiza-sistemas/edu-backend/internal/repository"
	"github.com/maximiza-sistemas/edu-backend/internal/service"
	"github.com/maximiza-sistemas/edu-backend/pkg/database"
	"github.com/maximiza-sistemas/edu-backend/pkg/jwt"
	applogger "github.com/maximiza-sistemas/edu-backend/pkg/logger"
	"github.com/maximiza-sistemas/edu-backend/pkg/redis"
	"github.com/maximiza-sistemas/edu-backend/pkg/storage"
)

func main() {
	// 1. config
	cfg, err := config.Load(os.Getenv("LIBRARY_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting server",
		zap.Int("port", cfg.Server.Port),
		zap.String("env", cfg.Server.Env),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. database; the server refuses to start without it
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("failed to get sql.DB", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	// 4. redis is optional; the rate limiter falls back to memory
	var rateCounter middleware.WindowCounter
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis unavailable, using in-process rate limiter", zap.Error(err))
		} else {
			rateCounter = rdb
		}
	}

	// 5. upload storage
	store, err := storage.NewLocalStorage(cfg.Storage.Root, cfg.Storage.MaxUploadSize)
	if err != nil {
		logger.Fatal("failed to prepare upload storage", zap.Error(err))
	}

	// 6. repository → service → handler
	jwtMgr := jwt.NewManager(&cfg.Auth)
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, store, logger)
	ping := func(ctx context.Context) error { return database.Ping(ctx, db) }
	h := handler.NewHandler(svc, ping, logger, !cfg.Server.IsProduction())

	engine, err := router.Setup(cfg, h, router.Deps{
		JWT:         jwtMgr,
		RateCounter: rateCounter,
		UploadRoot:  store.Root(),
		Logger:      logger,
	})
	if err != nil {
		logger.Fatal("failed to build router", zap.Error(err))
	}

	// 7. upload janitor
	var janitor *service.UploadJanitor
	if cfg.Janitor.Enabled {
		janitor = service.NewUploadJanitor(repo, store, cfg.Janitor.GracePeriod, logger)
		if err := janitor.Start(cfg.Janitor.Schedule); err != nil {
			logger.Fatal("failed to start upload janitor", zap.Error(err))
		}
	}

	// 8. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("http shutdown failed", zap.Error(err))
	}
	if janitor != nil {
		janitor.Stop()
	}
	if err := database.Close(db); err != nil {
		logger.Error("failed to close database", zap.Error(err))
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Error("failed to close redis", zap.Error(err))
		}
	}

	logger.Info("server stopped")
}
