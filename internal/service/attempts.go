package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"escape-portal/internal/events"
	"escape-portal/internal/models"
)

type AttemptStore interface {
	Create(ctx context.Context, attempt *models.QuizAttempt) (string, error)
	FindByTriple(ctx context.Context, userID, sessionID, quizType string) (*models.QuizAttempt, error)
}

type AttemptSessionStore interface {
	FindByID(ctx context.Context, id string) (*models.Session, error)
}

type AttemptRoundStore interface {
	FindByID(ctx context.Context, id string) (*models.Round, error)
}

type AttemptQuizStore interface {
	FindByID(ctx context.Context, id string) (*models.Quiz, error)
}

type AttemptService struct {
	Attempts  AttemptStore
	Sessions  AttemptSessionStore
	Rounds    AttemptRoundStore
	Quizzes   AttemptQuizStore
	publisher events.Publisher
	Now       func() time.Time
}

func NewAttemptService(attempts AttemptStore, sessions AttemptSessionStore, rounds AttemptRoundStore, quizzes AttemptQuizStore, publisher events.Publisher) *AttemptService {
	return &AttemptService{
		Attempts:  attempts,
		Sessions:  sessions,
		Rounds:    rounds,
		Quizzes:   quizzes,
		publisher: publisher,
		Now:       time.Now,
	}
}

// QuizForSession resolves the pre or post quiz assigned to a session's round.
// It reports completed=true when the player already has an attempt recorded,
// so the quiz page can short-circuit to the thank-you state.
func (s *AttemptService) QuizForSession(ctx context.Context, userID, sessionID, quizType string) (*models.Quiz, bool, error) {
	if quizType != models.QuizTypePre && quizType != models.QuizTypePost {
		return nil, false, fmt.Errorf("%w: quiz type must be pre or post", ErrValidation)
	}

	existing, err := s.Attempts.FindByTriple(ctx, userID, sessionID, quizType)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check quiz attempts: %w", err)
	}
	if existing != nil {
		return nil, true, nil
	}

	session, err := s.Sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, false, fmt.Errorf("%w: session %s", ErrNotFound, sessionID)
	}
	round, err := s.Rounds.FindByID(ctx, session.RoundID)
	if err != nil {
		return nil, false, fmt.Errorf("%w: round %s", ErrNotFound, session.RoundID)
	}

	quizID := round.PreQuizID
	if quizType == models.QuizTypePost {
		quizID = round.PostQuizID
	}
	if quizID == "" {
		return nil, false, fmt.Errorf("%w: no %s quiz assigned for this round", ErrNotFound, quizType)
	}
	quiz, err := s.Quizzes.FindByID(ctx, quizID)
	if err != nil {
		return nil, false, fmt.Errorf("%w: quiz %s", ErrNotFound, quizID)
	}
	return quiz, false, nil
}

type AttemptResult struct {
	Score            int  `json:"score"`
	AlreadyCompleted bool `json:"already_completed"`
}

// SubmitAttempt grades the submitted answers against the quiz and records
// the attempt. Answers map question index to selected answer index; missing
// entries count as wrong. A second submission for the same (user, session,
// type) triple does not create a second record and returns the terminal
// already-completed state with the original score.
func (s *AttemptService) SubmitAttempt(ctx context.Context, userID, sessionID, quizType string, answers map[int]int) (*AttemptResult, error) {
	if userID == "" || sessionID == "" {
		return nil, fmt.Errorf("%w: user id and session id are required", ErrValidation)
	}

	quiz, completed, err := s.QuizForSession(ctx, userID, sessionID, quizType)
	if err != nil {
		return nil, err
	}
	if completed {
		// Terminal state, not an error: the caller shows "already
		// completed" with the first attempt's score.
		existing, err := s.Attempts.FindByTriple(ctx, userID, sessionID, quizType)
		if err != nil {
			return nil, fmt.Errorf("failed to check quiz attempts: %w", err)
		}
		return &AttemptResult{Score: existing.Score, AlreadyCompleted: true}, nil
	}
	if len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("%w: quiz has no questions", ErrValidation)
	}

	correct := 0
	for i, q := range quiz.Questions {
		if selected, ok := answers[i]; ok && selected == q.CorrectAnswerIndex {
			correct++
		}
	}
	score := int(math.Round(float64(correct) / float64(len(quiz.Questions)) * 100))

	attempt := &models.QuizAttempt{
		UserID:      userID,
		SessionID:   sessionID,
		QuizType:    quizType,
		Score:       score,
		CompletedAt: s.Now(),
	}
	if _, err := s.Attempts.Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to record quiz attempt: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishAttemptCompleted(ctx, sessionID, userID, quizType, score); err != nil {
			log.Printf("Warning: failed to publish attempt completed event: %v", err)
		}
	}

	return &AttemptResult{Score: score}, nil
}
