// Package handler provides HTTP handlers for roster endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	playerModel "github.com/clubdesk/matchday/internal/player/model"
	"github.com/clubdesk/matchday/internal/player/service"
	"github.com/clubdesk/matchday/internal/response"
)

// Handler handles HTTP requests for roster endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new roster handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// AddPlayer handles POST /api/teams/:id/players.
func (h *Handler) AddPlayer(c *gin.Context) {
	teamID := c.Param("id")
	var req playerModel.AddPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c)
		return
	}

	team, err := h.service.AddPlayer(c.Request.Context(), teamID, &req)
	if err != nil {
		response.FromError(c, h.logger, err, "error adding player", "team_id", teamID)
		return
	}
	c.JSON(http.StatusCreated, team)
}

// UpdatePlayer handles PATCH /api/teams/:id/players/:playerId.
func (h *Handler) UpdatePlayer(c *gin.Context) {
	teamID, playerID := c.Param("id"), c.Param("playerId")
	var req playerModel.UpdatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c)
		return
	}

	team, err := h.service.UpdatePlayer(c.Request.Context(), teamID, playerID, &req)
	if err != nil {
		response.FromError(c, h.logger, err, "error updating player", "team_id", teamID, "player_id", playerID)
		return
	}
	c.JSON(http.StatusOK, team)
}

// IncrementGoals handles PATCH /api/teams/:id/players/:playerId/goals.
func (h *Handler) IncrementGoals(c *gin.Context) {
	teamID, playerID := c.Param("id"), c.Param("playerId")

	team, err := h.service.IncrementGoals(c.Request.Context(), teamID, playerID)
	if err != nil {
		response.FromError(c, h.logger, err, "error incrementing goals", "team_id", teamID, "player_id", playerID)
		return
	}
	c.JSON(http.StatusOK, team)
}

// RemovePlayer handles DELETE /api/teams/:id/players/:playerId.
func (h *Handler) RemovePlayer(c *gin.Context) {
	teamID, playerID := c.Param("id"), c.Param("playerId")

	team, err := h.service.RemovePlayer(c.Request.Context(), teamID, playerID)
	if err != nil {
		response.FromError(c, h.logger, err, "error removing player", "team_id", teamID, "player_id", playerID)
		return
	}
	c.JSON(http.StatusOK, team)
}

// Transfer handles POST /api/teams/transfer.
func (h *Handler) Transfer(c *gin.Context) {
	var req playerModel.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c)
		return
	}

	resp, err := h.service.Transfer(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, h.logger, err, "error transferring player",
			"player_id", req.PlayerID, "from_team_id", req.FromTeamID, "to_team_id", req.ToTeamID)
		return
	}
	c.JSON(http.StatusOK, resp)
}
