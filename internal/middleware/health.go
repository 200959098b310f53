package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Checker reports whether a dependency is reachable.
type Checker interface {
	Ping(ctx context.Context) error
}

type HealthStatus struct {
	Status      string            `json:"status"`
	LastChecked time.Time         `json:"last_checked"`
	Uptime      string            `json:"uptime"`
	Version     string            `json:"version"`
	Checks      map[string]string `json:"checks,omitempty"`
}

// Health serves /health. Results are reused for cacheDuration so probes do
// not hammer the store.
type Health struct {
	mu            sync.Mutex
	checks        map[string]Checker
	version       string
	startTime     time.Time
	cacheDuration time.Duration
	last          *HealthStatus
	now           func() time.Time
}

func NewHealth(version string, checks map[string]Checker) *Health {
	return &Health{
		checks:        checks,
		version:       version,
		startTime:     time.Now(),
		cacheDuration: 5 * time.Second,
		now:           time.Now,
	}
}

func (h *Health) status(ctx context.Context) HealthStatus {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	if h.last != nil && now.Sub(h.last.LastChecked) < h.cacheDuration {
		return *h.last
	}

	status := HealthStatus{
		Status:      "ok",
		LastChecked: now,
		Uptime:      now.Sub(h.startTime).Round(time.Second).String(),
		Version:     h.version,
	}
	if len(h.checks) > 0 {
		status.Checks = make(map[string]string, len(h.checks))
	}
	for name, checker := range h.checks {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := checker.Ping(pingCtx)
		cancel()
		if err != nil {
			status.Status = "degraded"
			status.Checks[name] = err.Error()
			continue
		}
		status.Checks[name] = "ok"
	}

	h.last = &status
	return status
}

func (h *Health) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		status := h.status(c.Request.Context())
		code := http.StatusOK
		if status.Status != "ok" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	}
}
