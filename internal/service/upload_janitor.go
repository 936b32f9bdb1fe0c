package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/maximiza-sistemas/edu-backend/internal/repository"
	"github.com/maximiza-sistemas/edu-backend/pkg/storage"
)

// UploadJanitor periodically removes stored files no book references.
// Files younger than the grace period are kept so an upload can be
// attached to a book after it lands.
type UploadJanitor struct {
	repo   *repository.Repository
	files  FileStore
	grace  time.Duration
	logger *zap.Logger

	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
	now       func() time.Time
}

// NewUploadJanitor creates a stopped janitor.
func NewUploadJanitor(repo *repository.Repository, files FileStore, grace time.Duration, logger *zap.Logger) *UploadJanitor {
	return &UploadJanitor{
		repo:   repo,
		files:  files,
		grace:  grace,
		logger: logger,
		cron:   cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
		now:    time.Now,
	}
}

// Start schedules Sweep with a five-field cron expression.
func (j *UploadJanitor) Start(schedule string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.isRunning {
		return nil
	}

	if _, err := j.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		removed, err := j.Sweep(ctx)
		if err != nil {
			j.logger.Error("upload sweep failed", zap.Error(err))
			return
		}
		j.logger.Info("upload sweep finished", zap.Int("removed", removed))
	}); err != nil {
		return fmt.Errorf("invalid janitor schedule %q: %w", schedule, err)
	}

	j.cron.Start()
	j.isRunning = true
	j.logger.Info("upload janitor started", zap.String("schedule", schedule))
	return nil
}

// Stop waits for a running sweep to finish.
func (j *UploadJanitor) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.isRunning {
		return
	}
	<-j.cron.Stop().Done()
	j.isRunning = false
	j.logger.Info("upload janitor stopped")
}

// Sweep deletes orphaned files older than the grace period and returns how many were removed.
func (j *UploadJanitor) Sweep(ctx context.Context) (int, error) {
	urls, err := j.repo.Book.ListFileURLs(ctx)
	if err != nil {
		return 0, err
	}
	referenced := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		referenced[u] = struct{}{}
	}

	cutoff := j.now().Add(-j.grace)
	removed := 0
	for _, kind := range []storage.Kind{storage.KindPDF, storage.KindImage} {
		files, err := j.files.List(kind)
		if err != nil {
			return removed, err
		}
		for _, f := range files {
			if _, ok := referenced[f.URL]; ok || f.ModTime.After(cutoff) {
				continue
			}
			if err := ctx.Err(); err != nil {
				return removed, err
			}
			if err := j.files.Delete(f.URL); err != nil {
				j.logger.Warn("failed to remove orphaned upload", zap.String("url", f.URL), zap.Error(err))
				continue
			}
			removed++
		}
	}
	return removed, nil
}
