package handlers

import (
	"context"
	"net/http"

	"escape-portal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_login_attempts_total",
			Help: "Total number of login attempts by outcome",
		},
		[]string{"outcome"},
	)
	loginDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "portal_login_duration_seconds",
			Help:    "Login request duration",
			Buckets: prometheus.DefBuckets,
		},
	)
)

type AuthHandler struct {
	Auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	timer := prometheus.NewTimer(loginDuration)
	defer timer.ObserveDuration()

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		loginAttempts.WithLabelValues("bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := h.Auth.Login(context.Background(), req.Email, req.Password)
	if err != nil {
		loginAttempts.WithLabelValues("failure").Inc()
		c.JSON(statusFromError(err), gin.H{"error": "Invalid email or password"})
		return
	}

	loginAttempts.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"uid":             user.ID.Hex(),
			"email":           user.Email,
			"first_name":      user.FirstName,
			"last_name":       user.LastName,
			"role":            user.Role,
			"organisation_id": user.OrganisationID,
		},
	})
}
