package service

import (
	"testing"

	"escape-portal/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestScore(t *testing.T) {
	testCases := []struct {
		name     string
		results  models.SessionResults
		expected float64
	}{
		{"perfect run", models.SessionResults{DurationMinutes: 0, DurationSeconds: 0, EngagementRating: 10, ParticipationRating: 10}, 100.0},
		{"full time no ratings", models.SessionResults{DurationMinutes: 30}, 0.0},
		{"overtime clamps to zero time points", models.SessionResults{DurationMinutes: 60, EngagementRating: 10, ParticipationRating: 10}, 40.0},
		{"half time mid ratings", models.SessionResults{DurationMinutes: 15, EngagementRating: 5, ParticipationRating: 5}, 50.0},
		{"seconds count", models.SessionResults{DurationMinutes: 10, DurationSeconds: 30, EngagementRating: 7, ParticipationRating: 9}, 71.0},
		{"rounded to one decimal", models.SessionResults{DurationMinutes: 0, DurationSeconds: 7, EngagementRating: 10, ParticipationRating: 10}, 99.8},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(tc.results)
			if got != tc.expected {
				t.Errorf("Score(%+v) = %.1f, want %.1f", tc.results, got, tc.expected)
			}
		})
	}
}

func TestScoreFasterNeverWorse(t *testing.T) {
	prev := Score(models.SessionResults{DurationMinutes: 0, EngagementRating: 5, ParticipationRating: 5})
	for minutes := 1; minutes <= 40; minutes++ {
		got := Score(models.SessionResults{DurationMinutes: minutes, EngagementRating: 5, ParticipationRating: 5})
		if got > prev {
			t.Fatalf("score increased from %.1f to %.1f when duration grew to %d minutes", prev, got, minutes)
		}
		prev = got
	}
}

func sessionWithResults(teamName string, results *models.SessionResults) models.Session {
	return models.Session{
		ID:       primitive.NewObjectID(),
		TeamName: teamName,
		Results:  results,
	}
}

func TestBuildLeaderboard(t *testing.T) {
	sessions := []models.Session{
		sessionWithResults("Slow Team", &models.SessionResults{DurationMinutes: 25, EngagementRating: 3, ParticipationRating: 3}),
		sessionWithResults("Not Played", nil),
		sessionWithResults("Fast Team", &models.SessionResults{DurationMinutes: 5, EngagementRating: 9, ParticipationRating: 9}),
		sessionWithResults("Mid Team", &models.SessionResults{DurationMinutes: 15, EngagementRating: 6, ParticipationRating: 6}),
	}

	entries := BuildLeaderboard(sessions)

	if len(entries) != 3 {
		t.Fatalf("expected 3 ranked entries, got %d", len(entries))
	}
	wantOrder := []string{"Fast Team", "Mid Team", "Slow Team"}
	wantMedals := []string{MedalGold, MedalSilver, MedalBronze}
	for i, entry := range entries {
		if entry.TeamName != wantOrder[i] {
			t.Errorf("rank %d: got team %q, want %q", i+1, entry.TeamName, wantOrder[i])
		}
		if entry.Medal != wantMedals[i] {
			t.Errorf("rank %d: got medal %q, want %q", i+1, entry.Medal, wantMedals[i])
		}
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Score > entries[i-1].Score {
			t.Errorf("entries not sorted descending at index %d", i)
		}
	}
}

func TestBuildLeaderboardDefaults(t *testing.T) {
	sessions := []models.Session{
		sessionWithResults("", &models.SessionResults{DurationMinutes: 10, EngagementRating: 5, ParticipationRating: 5}),
	}
	entries := BuildLeaderboard(sessions)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].TeamName != "Unnamed Team" {
		t.Errorf("got team name %q, want %q", entries[0].TeamName, "Unnamed Team")
	}
	if entries[0].FacilitatorName != "Unknown" {
		t.Errorf("got facilitator %q, want %q", entries[0].FacilitatorName, "Unknown")
	}
}

func TestBuildLeaderboardTiesKeepFetchOrder(t *testing.T) {
	same := &models.SessionResults{DurationMinutes: 10, EngagementRating: 5, ParticipationRating: 5}
	sessions := []models.Session{
		sessionWithResults("First", same),
		sessionWithResults("Second", same),
	}
	entries := BuildLeaderboard(sessions)
	if entries[0].TeamName != "First" || entries[1].TeamName != "Second" {
		t.Errorf("tie broke fetch order: got %q then %q", entries[0].TeamName, entries[1].TeamName)
	}
	if entries[0].Medal != MedalGold || entries[1].Medal != MedalSilver {
		t.Errorf("tied entries still get distinct medals by rank, got %q and %q", entries[0].Medal, entries[1].Medal)
	}
}

func TestBuildLeaderboardFourthGetsNoMedal(t *testing.T) {
	sessions := make([]models.Session, 0, 4)
	for i := 0; i < 4; i++ {
		sessions = append(sessions, sessionWithResults("Team", &models.SessionResults{
			DurationMinutes:  i * 5,
			EngagementRating: 5, ParticipationRating: 5,
		}))
	}
	entries := BuildLeaderboard(sessions)
	if entries[3].Medal != "" {
		t.Errorf("rank 4 should have no medal, got %q", entries[3].Medal)
	}
}
