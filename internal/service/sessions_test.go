package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"escape-portal/internal/models"

	"go.mongodb.org/mongo-driver/bson"
)

type fakeSessionStore struct {
	session *models.Session
	updates []bson.M
}

func (f *fakeSessionStore) FindByID(ctx context.Context, id string) (*models.Session, error) {
	if f.session == nil {
		return nil, errors.New("not found")
	}
	return f.session, nil
}

func (f *fakeSessionStore) FindByRound(ctx context.Context, roundID string) ([]models.Session, error) {
	return nil, nil
}

func (f *fakeSessionStore) FindByOrganisation(ctx context.Context, organisationID string) ([]models.Session, error) {
	return nil, nil
}

func (f *fakeSessionStore) Update(ctx context.Context, id string, update bson.M) error {
	f.updates = append(f.updates, update)
	return nil
}

func TestRecordResults(t *testing.T) {
	store := &fakeSessionStore{session: &models.Session{TeamName: "Red Team"}}
	svc := NewSessionService(store, nil)
	submittedAt := time.Date(2024, time.June, 15, 14, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return submittedAt }

	_, err := svc.RecordResults(context.Background(), "sess-1", models.SessionResults{
		DurationMinutes:     12,
		DurationSeconds:     30,
		EngagementRating:    8,
		ParticipationRating: 9,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.updates) != 1 {
		t.Fatalf("expected 1 update, got %d", len(store.updates))
	}
	saved, ok := store.updates[0]["results"].(models.SessionResults)
	if !ok {
		t.Fatalf("update did not carry results: %v", store.updates[0])
	}
	if !saved.SubmittedAt.Equal(submittedAt) {
		t.Errorf("submitted at %v, want %v", saved.SubmittedAt, submittedAt)
	}
}

func TestRecordResultsValidation(t *testing.T) {
	svc := NewSessionService(&fakeSessionStore{session: &models.Session{}}, nil)

	testCases := []struct {
		name    string
		results models.SessionResults
	}{
		{"negative minutes", models.SessionResults{DurationMinutes: -1, EngagementRating: 5, ParticipationRating: 5}},
		{"seconds over 59", models.SessionResults{DurationSeconds: 60, EngagementRating: 5, ParticipationRating: 5}},
		{"engagement zero", models.SessionResults{EngagementRating: 0, ParticipationRating: 5}},
		{"engagement over ten", models.SessionResults{EngagementRating: 11, ParticipationRating: 5}},
		{"participation zero", models.SessionResults{EngagementRating: 5, ParticipationRating: 0}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RecordResults(context.Background(), "sess-1", tc.results)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRecordResultsUnknownSession(t *testing.T) {
	svc := NewSessionService(&fakeSessionStore{}, nil)
	_, err := svc.RecordResults(context.Background(), "missing", models.SessionResults{
		EngagementRating: 5, ParticipationRating: 5,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected not-found error, got %v", err)
	}
}
