package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	apperrors "github.com/maximiza-sistemas/edu-backend/pkg/errors"
	"github.com/maximiza-sistemas/edu-backend/pkg/response"
)

// WindowCounter is a fixed-window hit counter, implemented by pkg/redis and MemoryCounter.
type WindowCounter interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (allowed bool, remaining int, resetIn time.Duration, err error)
}

// RateLimit limits each client IP to limit requests per fixed window.
// With a nil counter, or when the counter fails, an in-process MemoryCounter
// with the same window semantics is used.
func RateLimit(counter WindowCounter, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	if limit <= 0 || window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	local := NewMemoryCounter()
	warn := &rate.Sometimes{First: 1, Interval: time.Minute}

	return func(c *gin.Context) {
		ip := c.ClientIP()
		ctx := c.Request.Context()

		var (
			allowed   bool
			remaining int
			resetIn   time.Duration
			err       error
		)
		if counter != nil {
			allowed, remaining, resetIn, err = counter.CheckRateLimit(ctx, ip, limit, window)
			if err != nil {
				warn.Do(func() {
					logger.Warn("rate limit store unavailable, counting in process", zap.Error(err))
				})
			}
		}
		if counter == nil || err != nil {
			allowed, remaining, resetIn, _ = local.CheckRateLimit(ctx, ip, limit, window)
		}

		c.Header("RateLimit-Limit", strconv.Itoa(limit))
		c.Header("RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("RateLimit-Reset", strconv.Itoa(ceilSeconds(resetIn)))
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(ceilSeconds(resetIn)))
			response.Abort(c, http.StatusTooManyRequests, apperrors.MsgTooMany)
			return
		}
		c.Next()
	}
}

func ceilSeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}

// ── in-process store ──

// windowSweepSize is the key count above which expired windows are dropped.
const windowSweepSize = 10000

type hitWindow struct {
	count int
	reset time.Time
}

// MemoryCounter is a per-process fixed-window counter. A window opens on the
// first hit for a key and all hits until it closes share the same budget.
type MemoryCounter struct {
	mu      sync.Mutex
	windows map[string]*hitWindow
	now     func() time.Time
}

// NewMemoryCounter creates an empty MemoryCounter.
func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{
		windows: make(map[string]*hitWindow),
		now:     time.Now,
	}
}

// CheckRateLimit counts a hit for key. It never fails.
func (m *MemoryCounter) CheckRateLimit(_ context.Context, key string, limit int, window time.Duration) (bool, int, time.Duration, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.windows) >= windowSweepSize {
		for k, w := range m.windows {
			if !now.Before(w.reset) {
				delete(m.windows, k)
			}
		}
	}

	w, ok := m.windows[key]
	if !ok || !now.Before(w.reset) {
		w = &hitWindow{reset: now.Add(window)}
		m.windows[key] = w
	}
	w.count++

	remaining := limit - w.count
	if remaining < 0 {
		remaining = 0
	}
	return w.count <= limit, remaining, w.reset.Sub(now), nil
}
