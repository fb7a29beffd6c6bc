package service

import (
	"context"
	"math"
	"sort"

	"escape-portal/internal/models"
)

// Score converts a session's recorded results into the leaderboard score.
//
// Time contributes up to 60 points, decaying linearly from a 0s finish to
// nothing at 30 minutes. Engagement and participation (0-10 scales)
// contribute up to 20 points each. Rounded to one decimal place.
func Score(r models.SessionResults) float64 {
	totalSeconds := float64(r.DurationMinutes*60 + r.DurationSeconds)
	rawTimeScore := 600 - (totalSeconds/1800)*600
	if rawTimeScore < 0 {
		rawTimeScore = 0
	}
	timeScore := rawTimeScore * 0.1
	engagementScore := float64(r.EngagementRating) / 10 * 20
	participationScore := float64(r.ParticipationRating) / 10 * 20
	return math.Round((timeScore+engagementScore+participationScore)*10) / 10
}

const (
	MedalGold   = "Gold"
	MedalSilver = "Silver"
	MedalBronze = "Bronze"
)

type LeaderboardEntry struct {
	SessionID           string  `json:"session_id"`
	TeamName            string  `json:"team_name"`
	FacilitatorName     string  `json:"facilitator_name"`
	DurationMinutes     int     `json:"duration_minutes"`
	DurationSeconds     int     `json:"duration_seconds"`
	EngagementRating    int     `json:"engagement_rating"`
	ParticipationRating int     `json:"participation_rating"`
	Score               float64 `json:"score"`
	Medal               string  `json:"medal,omitempty"`
}

// BuildLeaderboard scores every session that has results and ranks them
// descending. Sessions not yet played are excluded. The sort is stable so
// ties keep fetch order; medals go strictly by rank position.
func BuildLeaderboard(sessions []models.Session) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(sessions))
	for _, s := range sessions {
		if s.Results == nil {
			continue
		}
		teamName := s.TeamName
		if teamName == "" {
			teamName = "Unnamed Team"
		}
		facilitator := s.FacilitatorName
		if facilitator == "" {
			facilitator = "Unknown"
		}
		entries = append(entries, LeaderboardEntry{
			SessionID:           s.ID.Hex(),
			TeamName:            teamName,
			FacilitatorName:     facilitator,
			DurationMinutes:     s.Results.DurationMinutes,
			DurationSeconds:     s.Results.DurationSeconds,
			EngagementRating:    s.Results.EngagementRating,
			ParticipationRating: s.Results.ParticipationRating,
			Score:               Score(*s.Results),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	medals := []string{MedalGold, MedalSilver, MedalBronze}
	for i := range entries {
		if i < len(medals) {
			entries[i].Medal = medals[i]
		}
	}
	return entries
}

type ScoreboardSessionStore interface {
	FindByRound(ctx context.Context, roundID string) ([]models.Session, error)
}

type ScoreboardService struct {
	Sessions ScoreboardSessionStore
}

func NewScoreboardService(sessions ScoreboardSessionStore) *ScoreboardService {
	return &ScoreboardService{Sessions: sessions}
}

func (s *ScoreboardService) Leaderboard(ctx context.Context, roundID string) ([]LeaderboardEntry, error) {
	sessions, err := s.Sessions.FindByRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	return BuildLeaderboard(sessions), nil
}
