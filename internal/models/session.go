package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionResults is recorded by the facilitator once the room has been played.
// A session without results has not been played yet.
type SessionResults struct {
	DurationMinutes     int       `bson:"duration_minutes" json:"duration_minutes"`
	DurationSeconds     int       `bson:"duration_seconds" json:"duration_seconds"`
	EngagementRating    int       `bson:"engagement_rating" json:"engagement_rating"`
	ParticipationRating int       `bson:"participation_rating" json:"participation_rating"`
	SubmittedAt         time.Time `bson:"submitted_at" json:"submitted_at"`
}

type Session struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrganisationID   string             `bson:"organisation_id" json:"organisation_id"`
	RoundID          string             `bson:"round_id" json:"round_id"`
	Date             string             `bson:"date" json:"date"`
	StartTime        string             `bson:"start_time" json:"start_time"`
	FacilitatorName  string             `bson:"facilitator_name" json:"facilitator_name"`
	TeamName         string             `bson:"team_name" json:"team_name"`
	TeamID           string             `bson:"team_id" json:"team_id"`
	TeamMembersCount int                `bson:"team_members_count" json:"team_members_count"`
	Results          *SessionResults    `bson:"results,omitempty" json:"results,omitempty"`
}
