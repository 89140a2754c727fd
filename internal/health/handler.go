// Package health provides health check endpoint handler.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clubdesk/matchday/internal/database"
)

// Timeout bounds a whole health check.
const Timeout = 5 * time.Second

// Check probes one dependency.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

// Database returns a check pinging db.
func Database(db *gorm.DB) Check {
	return Check{
		Name: "database",
		Probe: func(ctx context.Context) error {
			return database.HealthCheck(ctx, db)
		},
	}
}

// Handler handles health check requests.
type Handler struct {
	checks []Check
	logger *zap.SugaredLogger
}

// New creates a new health handler instance.
func New(logger *zap.SugaredLogger, checks ...Check) *Handler {
	return &Handler{
		checks: checks,
		logger: logger,
	}
}

// Response represents health check response.
type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Check handles GET /health request. Probes run concurrently.
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), Timeout)
	defer cancel()

	errs := make([]error, len(h.checks))
	var wg conc.WaitGroup
	for i, check := range h.checks {
		wg.Go(func() {
			errs[i] = check.Probe(ctx)
		})
	}
	wg.Wait()

	resp := Response{Status: "ok"}
	status := http.StatusOK
	if len(h.checks) > 0 {
		resp.Checks = make(map[string]string, len(h.checks))
	}
	for i, check := range h.checks {
		if errs[i] != nil {
			h.logger.Warnw("health check failed", "check", check.Name, "error", errs[i])
			resp.Checks[check.Name] = "unhealthy"
			resp.Status = "unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[check.Name] = "ok"
	}

	c.JSON(status, resp)
}
