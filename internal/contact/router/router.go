// Package router provides contact module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clubdesk/matchday/internal/contact/handler"
	"github.com/clubdesk/matchday/internal/contact/repository"
	"github.com/clubdesk/matchday/internal/contact/service"
)

// RegisterRoutes registers contact module routes.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, logger *zap.SugaredLogger) {
	h := handler.New(service.New(repository.New(db), logger), logger)
	r.POST("/contact", h.Submit)
}
