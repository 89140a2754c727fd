// Package handler provides HTTP handlers for contact endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/clubdesk/matchday/internal/contact/model"
	"github.com/clubdesk/matchday/internal/contact/service"
	"github.com/clubdesk/matchday/internal/response"
)

// Handler handles HTTP requests for contact endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new contact handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Submit handles POST /api/contact.
func (h *Handler) Submit(c *gin.Context) {
	var req model.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c)
		return
	}

	if _, err := h.service.Submit(c.Request.Context(), &req); err != nil {
		response.FromError(c, h.logger, err, "error storing contact message")
		return
	}
	c.JSON(http.StatusCreated, model.SubmitResponse{Message: "Message received"})
}
