// Package handler provides HTTP handlers for team endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/clubdesk/matchday/internal/response"
	teamModel "github.com/clubdesk/matchday/internal/team/model"
	"github.com/clubdesk/matchday/internal/team/service"
)

// Handler handles HTTP requests for team endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new team handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// ListTeams handles GET /api/teams.
func (h *Handler) ListTeams(c *gin.Context) {
	teams, err := h.service.ListTeams(c.Request.Context())
	if err != nil {
		response.FromError(c, h.logger, err, "error listing teams")
		return
	}
	c.JSON(http.StatusOK, teams)
}

// GetTeam handles GET /api/teams/:id.
func (h *Handler) GetTeam(c *gin.Context) {
	id := c.Param("id")
	team, err := h.service.GetTeam(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, h.logger, err, "error getting team", "team_id", id)
		return
	}
	c.JSON(http.StatusOK, team)
}

// CreateTeam handles POST /api/teams.
func (h *Handler) CreateTeam(c *gin.Context) {
	var req teamModel.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c)
		return
	}

	team, err := h.service.CreateTeam(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, h.logger, err, "error creating team", "name", req.Name)
		return
	}
	c.JSON(http.StatusCreated, team)
}

// UpdateTeam handles PUT /api/teams/:id.
func (h *Handler) UpdateTeam(c *gin.Context) {
	id := c.Param("id")
	var req teamModel.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c)
		return
	}

	team, err := h.service.UpdateTeam(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, h.logger, err, "error updating team", "team_id", id)
		return
	}
	c.JSON(http.StatusOK, team)
}

// DeleteTeam handles DELETE /api/teams/:id.
func (h *Handler) DeleteTeam(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.DeleteTeam(c.Request.Context(), id); err != nil {
		response.FromError(c, h.logger, err, "error deleting team", "team_id", id)
		return
	}
	c.JSON(http.StatusOK, teamModel.DeleteTeamResponse{Message: "Team deleted"})
}
