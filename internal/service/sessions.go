package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"escape-portal/internal/events"
	"escape-portal/internal/models"

	"go.mongodb.org/mongo-driver/bson"
)

type SessionStore interface {
	FindByID(ctx context.Context, id string) (*models.Session, error)
	FindByRound(ctx context.Context, roundID string) ([]models.Session, error)
	FindByOrganisation(ctx context.Context, organisationID string) ([]models.Session, error)
	Update(ctx context.Context, id string, update bson.M) error
}

type SessionService struct {
	Sessions  SessionStore
	publisher events.Publisher
	Now       func() time.Time
}

func NewSessionService(sessions SessionStore, publisher events.Publisher) *SessionService {
	return &SessionService{Sessions: sessions, publisher: publisher, Now: time.Now}
}

func (s *SessionService) GetSession(ctx context.Context, id string) (*models.Session, error) {
	return s.Sessions.FindByID(ctx, id)
}

func (s *SessionService) SessionsByRound(ctx context.Context, roundID string) ([]models.Session, error) {
	return s.Sessions.FindByRound(ctx, roundID)
}

func (s *SessionService) SessionsByOrganisation(ctx context.Context, organisationID string) ([]models.Session, error) {
	return s.Sessions.FindByOrganisation(ctx, organisationID)
}

// RecordResults attaches the played-session results to a session. Ratings
// are on the 0-10 scale the score formula normalizes against.
func (s *SessionService) RecordResults(ctx context.Context, sessionID string, results models.SessionResults) (*models.Session, error) {
	if err := validateResults(results); err != nil {
		return nil, err
	}
	if _, err := s.Sessions.FindByID(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("%w: session %s", ErrNotFound, sessionID)
	}

	results.SubmittedAt = s.Now()
	if err := s.Sessions.Update(ctx, sessionID, bson.M{"results": results}); err != nil {
		return nil, fmt.Errorf("failed to save results: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishResultsRecorded(ctx, sessionID, Score(results)); err != nil {
			log.Printf("Warning: failed to publish results recorded event: %v", err)
		}
	}

	return s.Sessions.FindByID(ctx, sessionID)
}

func validateResults(r models.SessionResults) error {
	if r.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration minutes must not be negative", ErrValidation)
	}
	if r.DurationSeconds < 0 || r.DurationSeconds > 59 {
		return fmt.Errorf("%w: duration seconds must be between 0 and 59", ErrValidation)
	}
	if r.EngagementRating < 1 || r.EngagementRating > 10 {
		return fmt.Errorf("%w: engagement rating must be between 1 and 10", ErrValidation)
	}
	if r.ParticipationRating < 1 || r.ParticipationRating > 10 {
		return fmt.Errorf("%w: participation rating must be between 1 and 10", ErrValidation)
	}
	return nil
}
