// Package router provides roster routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clubdesk/matchday/internal/auth"
	"github.com/clubdesk/matchday/internal/player/handler"
	"github.com/clubdesk/matchday/internal/player/repository"
	"github.com/clubdesk/matchday/internal/player/service"
	teamRepository "github.com/clubdesk/matchday/internal/team/repository"
)

// RegisterRoutes registers roster and transfer routes. All of them are admin only.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, teamRepository.New(db, logger), db, logger)
	h := handler.New(svc, logger)

	teams := r.Group("/teams", auth.RequireAdmin())
	teams.POST("/transfer", h.Transfer)
	teams.POST("/:id/players", h.AddPlayer)
	teams.PATCH("/:id/players/:playerId", h.UpdatePlayer)
	teams.PATCH("/:id/players/:playerId/goals", h.IncrementGoals)
	teams.DELETE("/:id/players/:playerId", h.RemovePlayer)
}
