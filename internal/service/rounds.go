package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"escape-portal/internal/models"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	LifecycleActive   = "active"
	LifecycleUpcoming = "upcoming"
	LifecyclePast     = "past"
)

// Classify buckets a round's date window relative to now at day granularity,
// inclusive on both ends.
func Classify(now, start, end time.Time) string {
	today := dateOnly(now)
	startDay := dateOnly(start)
	endDay := dateOnly(end)
	switch {
	case !startDay.After(today) && !endDay.Before(today):
		return LifecycleActive
	case startDay.After(today):
		return LifecycleUpcoming
	default:
		return LifecyclePast
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// RoundBuckets groups a round list into lifecycle buckets. Each bucket is
// sorted by start date ascending.
type RoundBuckets struct {
	Active   []models.RoundView `json:"active"`
	Upcoming []models.RoundView `json:"upcoming"`
	Past     []models.RoundView `json:"past"`
}

// BuildRoundViews resolves game and quiz references against pre-fetched
// catalogs. Absent or dangling references fall back to "N/A"; no lookups
// against the store happen here.
func BuildRoundViews(now time.Time, rounds []models.Round, games []models.Game, quizzes []models.Quiz) []models.RoundView {
	gameNames := make(map[string]string, len(games))
	for _, g := range games {
		gameNames[g.ID.Hex()] = g.Name
	}
	quizTitles := make(map[string]string, len(quizzes))
	for _, q := range quizzes {
		quizTitles[q.ID.Hex()] = q.Title
	}

	views := make([]models.RoundView, 0, len(rounds))
	for _, r := range rounds {
		views = append(views, models.RoundView{
			Round:         r,
			GameName:      lookupOr(gameNames, r.GameID, "N/A"),
			PreQuizTitle:  lookupOr(quizTitles, r.PreQuizID, "N/A"),
			PostQuizTitle: lookupOr(quizTitles, r.PostQuizID, "N/A"),
			Lifecycle:     Classify(now, r.StartDate, r.EndDate),
		})
	}
	return views
}

func lookupOr(m map[string]string, key, fallback string) string {
	if key == "" {
		return fallback
	}
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}

// BucketRounds splits resolved views into lifecycle buckets, each sorted by
// start date ascending for deterministic display order.
func BucketRounds(views []models.RoundView) RoundBuckets {
	var buckets RoundBuckets
	for _, v := range views {
		switch v.Lifecycle {
		case LifecycleActive:
			buckets.Active = append(buckets.Active, v)
		case LifecycleUpcoming:
			buckets.Upcoming = append(buckets.Upcoming, v)
		default:
			buckets.Past = append(buckets.Past, v)
		}
	}
	for _, group := range [][]models.RoundView{buckets.Active, buckets.Upcoming, buckets.Past} {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Round.StartDate.Before(group[j].Round.StartDate)
		})
	}
	return buckets
}

type RoundStore interface {
	Create(ctx context.Context, round *models.Round) (string, error)
	FindByID(ctx context.Context, id string) (*models.Round, error)
	FindByOrganisation(ctx context.Context, organisationID string) ([]models.Round, error)
	Update(ctx context.Context, id string, update bson.M) error
}

type GameCatalog interface {
	FindAll(ctx context.Context) ([]models.Game, error)
}

type QuizCatalog interface {
	FindAll(ctx context.Context) ([]models.Quiz, error)
}

type RoundService struct {
	Rounds  RoundStore
	Games   GameCatalog
	Quizzes QuizCatalog
	Now     func() time.Time
}

func NewRoundService(rounds RoundStore, games GameCatalog, quizzes QuizCatalog) *RoundService {
	return &RoundService{Rounds: rounds, Games: games, Quizzes: quizzes, Now: time.Now}
}

func (s *RoundService) CreateRound(ctx context.Context, round *models.Round) (string, error) {
	if err := validateRound(round); err != nil {
		return "", err
	}
	if round.RoundName == "" {
		round.RoundName = round.StartDate.Format("2006-01-02") + " Round"
	}
	if round.Status == "" {
		round.Status = "active"
	}
	return s.Rounds.Create(ctx, round)
}

func (s *RoundService) UpdateRound(ctx context.Context, id string, round *models.Round) error {
	if err := validateRound(round); err != nil {
		return err
	}
	update := bson.M{
		"round_name":   round.RoundName,
		"start_date":   round.StartDate,
		"end_date":     round.EndDate,
		"game_id":      round.GameID,
		"pre_quiz_id":  round.PreQuizID,
		"post_quiz_id": round.PostQuizID,
	}
	return s.Rounds.Update(ctx, id, update)
}

func validateRound(round *models.Round) error {
	if round.OrganisationID == "" {
		return fmt.Errorf("%w: organisation id is required", ErrValidation)
	}
	if round.StartDate.IsZero() || round.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrValidation)
	}
	if round.EndDate.Before(round.StartDate) {
		return fmt.Errorf("%w: end date is before start date", ErrValidation)
	}
	return nil
}

// OrganisationRounds builds the bucketed round card view for an
// organisation. The catalogs are fetched once, not per round.
func (s *RoundService) OrganisationRounds(ctx context.Context, organisationID string) (*RoundBuckets, error) {
	rounds, err := s.Rounds.FindByOrganisation(ctx, organisationID)
	if err != nil {
		return nil, err
	}
	games, err := s.Games.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	quizzes, err := s.Quizzes.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	views := BuildRoundViews(s.Now(), rounds, games, quizzes)
	buckets := BucketRounds(views)
	return &buckets, nil
}
