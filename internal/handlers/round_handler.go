package handlers

import (
	"context"
	"net/http"
	"time"

	"escape-portal/internal/models"
	"escape-portal/internal/service"

	"github.com/gin-gonic/gin"
)

type RoundHandler struct {
	Service *service.RoundService
}

func NewRoundHandler(s *service.RoundService) *RoundHandler {
	return &RoundHandler{Service: s}
}

type roundRequest struct {
	OrganisationID string `json:"organisation_id"`
	RoundName      string `json:"round_name"`
	StartDate      string `json:"start_date" binding:"required"`
	EndDate        string `json:"end_date" binding:"required"`
	Timezone       string `json:"timezone"`
	GameID         string `json:"game_id"`
	PreQuizID      string `json:"pre_quiz_id"`
	PostQuizID     string `json:"post_quiz_id"`
}

func (r roundRequest) toModel() (*models.Round, error) {
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse("2006-01-02", r.EndDate)
	if err != nil {
		return nil, err
	}
	return &models.Round{
		OrganisationID: r.OrganisationID,
		RoundName:      r.RoundName,
		StartDate:      start,
		EndDate:        end,
		Timezone:       r.Timezone,
		GameID:         r.GameID,
		PreQuizID:      r.PreQuizID,
		PostQuizID:     r.PostQuizID,
	}, nil
}

func (h *RoundHandler) CreateRound(c *gin.Context) {
	var req roundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	round, err := req.toModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dates must be in YYYY-MM-DD format"})
		return
	}
	id, err := h.Service.CreateRound(context.Background(), round)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *RoundHandler) UpdateRound(c *gin.Context) {
	var req roundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	round, err := req.toModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dates must be in YYYY-MM-DD format"})
		return
	}
	if err := h.Service.UpdateRound(context.Background(), c.Param("id"), round); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// OrganisationRounds returns the round card view: rounds bucketed into
// active/upcoming/past with game and quiz names resolved.
func (h *RoundHandler) OrganisationRounds(c *gin.Context) {
	buckets, err := h.Service.OrganisationRounds(context.Background(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, buckets)
}
