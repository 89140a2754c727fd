// Package router provides auth routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/clubdesk/matchday/internal/config"
	"github.com/clubdesk/matchday/internal/user/handler"
	"github.com/clubdesk/matchday/internal/user/service"
)

// RegisterRoutes registers the /auth routes.
func RegisterRoutes(r gin.IRouter, svc service.Service, cookies config.SessionConfig, logger *zap.SugaredLogger) {
	h := handler.New(svc, cookies, logger)

	g := r.Group("/auth")
	g.GET("/me", h.Me)
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
}
