package handlers

import (
	"context"
	"net/http"

	"escape-portal/internal/models"
	"escape-portal/internal/service"

	"github.com/gin-gonic/gin"
)

type AttemptHandler struct {
	Service *service.AttemptService
}

func NewAttemptHandler(s *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{Service: s}
}

// playerQuizView is the quiz as players see it. Grading happens server-side,
// so the correct answer index never goes out on this route.
type playerQuizView struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Type      string           `json:"type"`
	Questions []playerQuestion `json:"questions"`
}

type playerQuestion struct {
	Text    string   `json:"text"`
	Answers []string `json:"answers"`
}

func playerView(quiz *models.Quiz) playerQuizView {
	view := playerQuizView{
		ID:        quiz.ID.Hex(),
		Title:     quiz.Title,
		Type:      quiz.Type,
		Questions: make([]playerQuestion, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		view.Questions = append(view.Questions, playerQuestion{Text: q.Text, Answers: q.Answers})
	}
	return view
}

// SessionQuiz returns the pre or post quiz for a session so players can take
// it. When the player already completed it, the quiz body is omitted and
// completed is true.
func (h *AttemptHandler) SessionQuiz(c *gin.Context) {
	sessionID := c.Param("sessionId")
	userID := c.Query("userId")
	quizType := c.Query("type")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId query parameter is required"})
		return
	}

	quiz, completed, err := h.Service.QuizForSession(context.Background(), userID, sessionID, quizType)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	if completed {
		c.JSON(http.StatusOK, gin.H{"completed": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"completed": false, "quiz": playerView(quiz)})
}

type submitAttemptRequest struct {
	UserID   string      `json:"user_id" binding:"required"`
	QuizType string      `json:"quiz_type" binding:"required"`
	Answers  map[int]int `json:"answers"`
}

func (h *AttemptHandler) SubmitAttempt(c *gin.Context) {
	var req submitAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Service.SubmitAttempt(context.Background(), req.UserID, c.Param("sessionId"), req.QuizType, req.Answers)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
