// Package handler provides HTTP handlers for auth endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/clubdesk/matchday/internal/auth"
	"github.com/clubdesk/matchday/internal/config"
	"github.com/clubdesk/matchday/internal/response"
	"github.com/clubdesk/matchday/internal/user/model"
	"github.com/clubdesk/matchday/internal/user/service"
)

// Handler handles HTTP requests for auth endpoints.
type Handler struct {
	service service.Service
	cookies config.SessionConfig
	logger  *zap.SugaredLogger
}

// New creates a new auth handler instance.
func New(svc service.Service, cookies config.SessionConfig, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, cookies: cookies, logger: logger}
}

// Me handles GET /api/auth/me.
func (h *Handler) Me(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context())
	if err != nil {
		response.FromError(c, h.logger, err, "error loading current user")
		return
	}
	if user == nil {
		c.JSON(http.StatusOK, model.MeResponse{})
		return
	}
	c.JSON(http.StatusOK, model.MeResponse{User: user.Public()})
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req model.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c)
		return
	}

	if _, err := h.service.Register(c.Request.Context(), &req); err != nil {
		response.FromError(c, h.logger, err, "error registering user")
		return
	}
	c.JSON(http.StatusCreated, model.MessageResponse{Message: "Registered"})
}

// Login handles POST /api/auth/login and sets the session cookie.
func (h *Handler) Login(c *gin.Context) {
	var req model.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c)
		return
	}

	user, sess, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, h.logger, err, "error logging in")
		return
	}

	auth.SetSessionCookie(c, h.cookies, sess.ID)
	c.JSON(http.StatusOK, model.LoginResponse{
		Message: "Logged in",
		User:    user.Public(),
		Role:    user.Role,
	})
}

// Logout handles POST /api/auth/logout. The cookie is cleared even for
// anonymous callers.
func (h *Handler) Logout(c *gin.Context) {
	if id, ok := auth.FromContext(c.Request.Context()); ok {
		if err := h.service.Logout(c.Request.Context(), id.SessionID); err != nil {
			response.FromError(c, h.logger, err, "error logging out", "user_id", id.UserID)
			return
		}
	}

	auth.ClearSessionCookie(c, h.cookies)
	c.JSON(http.StatusOK, model.MessageResponse{Message: "Logged out"})
}
