package handlers

import (
	"context"
	"net/http"

	"escape-portal/internal/models"
	"escape-portal/internal/service"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	Sessions *service.SessionService
	Roster   *service.RosterService
}

func NewSessionHandler(sessions *service.SessionService, roster *service.RosterService) *SessionHandler {
	return &SessionHandler{Sessions: sessions, Roster: roster}
}

// SaveSession creates or edits a session together with its team roster.
func (h *SessionHandler) SaveSession(c *gin.Context) {
	var in service.RosterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if id := c.Param("id"); id != "" {
		in.SessionID = id
	}
	session, err := h.Roster.Save(context.Background(), in)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.Sessions.GetSession(context.Background(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *SessionHandler) SessionsByRound(c *gin.Context) {
	sessions, err := h.Sessions.SessionsByRound(context.Background(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (h *SessionHandler) SessionsByOrganisation(c *gin.Context) {
	sessions, err := h.Sessions.SessionsByOrganisation(context.Background(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (h *SessionHandler) TeamMembers(c *gin.Context) {
	members, err := h.Roster.TeamMembers(context.Background(), c.Param("id"))
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, members)
}

type resultsRequest struct {
	DurationMinutes     int `json:"duration_minutes"`
	DurationSeconds     int `json:"duration_seconds"`
	EngagementRating    int `json:"engagement_rating"`
	ParticipationRating int `json:"participation_rating"`
}

func (h *SessionHandler) RecordResults(c *gin.Context) {
	var req resultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session, err := h.Sessions.RecordResults(context.Background(), c.Param("id"), models.SessionResults{
		DurationMinutes:     req.DurationMinutes,
		DurationSeconds:     req.DurationSeconds,
		EngagementRating:    req.EngagementRating,
		ParticipationRating: req.ParticipationRating,
	})
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}
