package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"escape-portal/internal/models"
	"escape-portal/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type attemptStoreStub struct{ attempts []*models.QuizAttempt }

func (s *attemptStoreStub) Create(ctx context.Context, attempt *models.QuizAttempt) (string, error) {
	s.attempts = append(s.attempts, attempt)
	return primitive.NewObjectID().Hex(), nil
}

func (s *attemptStoreStub) FindByTriple(ctx context.Context, userID, sessionID, quizType string) (*models.QuizAttempt, error) {
	for _, a := range s.attempts {
		if a.UserID == userID && a.SessionID == sessionID && a.QuizType == quizType {
			return a, nil
		}
	}
	return nil, nil
}

type attemptSessionStub struct{ session *models.Session }

func (s *attemptSessionStub) FindByID(ctx context.Context, id string) (*models.Session, error) {
	return s.session, nil
}

type attemptRoundStub struct{ round *models.Round }

func (s *attemptRoundStub) FindByID(ctx context.Context, id string) (*models.Round, error) {
	return s.round, nil
}

type attemptQuizStub struct{ quiz *models.Quiz }

func (s *attemptQuizStub) FindByID(ctx context.Context, id string) (*models.Quiz, error) {
	return s.quiz, nil
}

func attemptRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	quiz := &models.Quiz{
		ID:    primitive.NewObjectID(),
		Title: "Security Basics",
		Type:  models.QuizTypePre,
		Questions: []models.Question{
			{Text: "What is phishing?", Answers: []string{"a scam email", "a firewall"}, CorrectAnswerIndex: 0},
		},
	}
	svc := service.NewAttemptService(
		&attemptStoreStub{},
		&attemptSessionStub{session: &models.Session{RoundID: "round-1"}},
		&attemptRoundStub{round: &models.Round{PreQuizID: quiz.ID.Hex()}},
		&attemptQuizStub{quiz: quiz},
		nil,
	)
	h := NewAttemptHandler(svc)

	r := gin.New()
	r.GET("/public/portal/session/:sessionId/quiz", h.SessionQuiz)
	r.POST("/public/portal/session/:sessionId/quiz", h.SubmitAttempt)
	return r
}

func TestSessionQuizHidesAnswerKey(t *testing.T) {
	r := attemptRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/public/portal/session/sess-1/quiz?userId=user-1&type=pre", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "What is phishing?") {
		t.Errorf("quiz questions missing from response: %s", body)
	}
	if strings.Contains(body, "correct_answer_index") {
		t.Errorf("player response leaks the answer key: %s", body)
	}
}

func TestSessionQuizRequiresUserID(t *testing.T) {
	r := attemptRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/public/portal/session/sess-1/quiz?type=pre", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestSubmitAttemptOverRoute(t *testing.T) {
	r := attemptRouter()

	w := httptest.NewRecorder()
	body := `{"user_id":"user-1","quiz_type":"pre","answers":{"0":0}}`
	req := httptest.NewRequest(http.MethodPost, "/public/portal/session/sess-1/quiz", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"score":100`) {
		t.Errorf("unexpected submit response: %s", w.Body.String())
	}
}
