package handlers

import (
	"context"
	"net/http"

	"escape-portal/internal/service"

	"github.com/gin-gonic/gin"
)

type ScoreboardHandler struct {
	Service *service.ScoreboardService
}

func NewScoreboardHandler(s *service.ScoreboardService) *ScoreboardHandler {
	return &ScoreboardHandler{Service: s}
}

// Leaderboard returns played sessions for a round ranked by score, with
// Gold/Silver/Bronze labels on the top three.
func (h *ScoreboardHandler) Leaderboard(c *gin.Context) {
	entries, err := h.Service.Leaderboard(context.Background(), c.Param("roundId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}
