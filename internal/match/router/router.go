// Package router provides match module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clubdesk/matchday/internal/auth"
	"github.com/clubdesk/matchday/internal/live"
	"github.com/clubdesk/matchday/internal/match/handler"
	"github.com/clubdesk/matchday/internal/match/repository"
	"github.com/clubdesk/matchday/internal/match/service"
)

// RegisterRoutes registers match module routes. Committed changes are
// published to hub, which also serves the live feed.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, hub *live.Hub, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, db, hub, logger)
	h := handler.New(svc, logger)

	matches := r.Group("/matches")
	matches.GET("", h.ListMatches)
	matches.GET("/:id", h.GetMatch)
	matches.GET("/:id/live", hub.Handler(svc))

	admin := matches.Group("", auth.RequireAdmin())
	admin.POST("", h.CreateMatch)
	admin.PUT("/:id", h.UpdateMatch)
	admin.DELETE("/:id", h.DeleteMatch)
	admin.POST("/:id/events", h.AddEvent)
	admin.DELETE("/:id/events/:eventId", h.DeleteEvent)
}
