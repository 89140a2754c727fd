// Package router provides statistics module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clubdesk/matchday/internal/statistics/handler"
	"github.com/clubdesk/matchday/internal/statistics/repository"
	"github.com/clubdesk/matchday/internal/statistics/service"
)

// RegisterRoutes registers statistics module routes.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, logger)
	h := handler.New(svc, logger)

	stats := r.Group("/stats")
	stats.GET("/leaderboard", h.GetLeaderboard)
	stats.GET("/players", h.GetPlayers)
	stats.GET("/top-teams", h.GetTopTeams)
	stats.POST("/transfer", h.Transfer)
}
