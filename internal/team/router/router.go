// Package router provides team module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clubdesk/matchday/internal/auth"
	"github.com/clubdesk/matchday/internal/team/handler"
	"github.com/clubdesk/matchday/internal/team/repository"
	"github.com/clubdesk/matchday/internal/team/service"
)

// RegisterRoutes registers team module routes.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, db, logger)
	h := handler.New(svc, logger)

	teams := r.Group("/teams")
	teams.GET("", h.ListTeams)
	teams.GET("/:id", h.GetTeam)

	admin := teams.Group("", auth.RequireAdmin())
	admin.POST("", h.CreateTeam)
	admin.PUT("/:id", h.UpdateTeam)
	admin.DELETE("/:id", h.DeleteTeam)
}
