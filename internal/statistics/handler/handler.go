// Package handler provides HTTP handlers for statistics endpoints.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/clubdesk/matchday/internal/response"
	"github.com/clubdesk/matchday/internal/statistics/model"
	"github.com/clubdesk/matchday/internal/statistics/service"
)

// TransferPath is where player transfers are served.
const TransferPath = "/api/teams/transfer"

// Handler handles HTTP requests for statistics endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new statistics handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetLeaderboard handles GET /api/stats/leaderboard.
func (h *Handler) GetLeaderboard(c *gin.Context) {
	rows, err := h.service.GetLeaderboard(c.Request.Context())
	if err != nil {
		response.FromError(c, h.logger, err, "error building leaderboard")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetPlayers handles GET /api/stats/players?sort=&order=.
func (h *Handler) GetPlayers(c *gin.Context) {
	rows, err := h.service.GetPlayers(c.Request.Context(), c.Query("sort"), c.Query("order"))
	if err != nil {
		response.FromError(c, h.logger, err, "error listing players")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetTopTeams handles GET /api/stats/top-teams?limit=&order=.
// An unparsable limit falls back to the default.
func (h *Handler) GetTopTeams(c *gin.Context) {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		limit = 0
	}

	teams, err := h.service.GetTopTeams(c.Request.Context(), limit, c.Query("order"))
	if err != nil {
		response.FromError(c, h.logger, err, "error listing top teams")
		return
	}
	c.JSON(http.StatusOK, teams)
}

// Transfer handles POST /api/stats/transfer, which moved under /api/teams.
func (h *Handler) Transfer(c *gin.Context) {
	c.JSON(http.StatusNotFound, model.MovedResponse{
		Error: "transfer endpoint moved",
		Use:   TransferPath,
	})
}
