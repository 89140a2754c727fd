// Package handler provides HTTP handlers for match endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	matchModel "github.com/clubdesk/matchday/internal/match/model"
	"github.com/clubdesk/matchday/internal/match/service"
	"github.com/clubdesk/matchday/internal/response"
)

// Handler handles HTTP requests for match endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new match handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// ListMatches handles GET /api/matches.
func (h *Handler) ListMatches(c *gin.Context) {
	matches, err := h.service.ListMatches(c.Request.Context())
	if err != nil {
		response.FromError(c, h.logger, err, "error listing matches")
		return
	}
	c.JSON(http.StatusOK, matches)
}

// GetMatch handles GET /api/matches/:id.
func (h *Handler) GetMatch(c *gin.Context) {
	id := c.Param("id")
	match, err := h.service.GetMatch(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, h.logger, err, "error getting match", "match_id", id)
		return
	}
	c.JSON(http.StatusOK, match)
}

// CreateMatch handles POST /api/matches.
func (h *Handler) CreateMatch(c *gin.Context) {
	var req matchModel.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c)
		return
	}

	match, err := h.service.CreateMatch(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, h.logger, err, "error creating match")
		return
	}
	c.JSON(http.StatusCreated, match)
}

// UpdateMatch handles PUT /api/matches/:id.
func (h *Handler) UpdateMatch(c *gin.Context) {
	id := c.Param("id")
	var req matchModel.UpdateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c)
		return
	}

	match, err := h.service.UpdateMatch(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, h.logger, err, "error updating match", "match_id", id)
		return
	}
	c.JSON(http.StatusOK, match)
}

// DeleteMatch handles DELETE /api/matches/:id.
func (h *Handler) DeleteMatch(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.DeleteMatch(c.Request.Context(), id); err != nil {
		response.FromError(c, h.logger, err, "error deleting match", "match_id", id)
		return
	}
	c.JSON(http.StatusOK, matchModel.DeleteMatchResponse{Message: "Match deleted"})
}

// AddEvent handles POST /api/matches/:id/events.
func (h *Handler) AddEvent(c *gin.Context) {
	id := c.Param("id")
	var req matchModel.AddEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c)
		return
	}

	match, err := h.service.AddEvent(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, h.logger, err, "error adding match event", "match_id", id)
		return
	}
	c.JSON(http.StatusCreated, match)
}

// DeleteEvent handles DELETE /api/matches/:id/events/:eventId.
func (h *Handler) DeleteEvent(c *gin.Context) {
	id, eventID := c.Param("id"), c.Param("eventId")

	match, err := h.service.DeleteEvent(c.Request.Context(), id, eventID)
	if err != nil {
		response.FromError(c, h.logger, err, "error deleting match event", "match_id", id, "event_id", eventID)
		return
	}
	c.JSON(http.StatusOK, match)
}
