package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// MaxTeamMembers is the hard cap on roster size per team.
const MaxTeamMembers = 18

type Team struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrganisationID string             `bson:"organisation_id" json:"organisation_id"`
	RoundID        string             `bson:"round_id" json:"round_id"`
	SessionID      string             `bson:"session_id" json:"session_id"`
	TeamName       string             `bson:"team_name" json:"team_name"`
}

type TeamMember struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TeamID    string             `bson:"team_id" json:"team_id"`
	FirstName string             `bson:"first_name" json:"first_name"`
	LastName  string             `bson:"last_name" json:"last_name"`
	Email     string             `bson:"email" json:"email"`
	Mobile    string             `bson:"mobile" json:"mobile"`
	IsLeader  bool               `bson:"is_leader" json:"is_leader"`
	Attended  bool               `bson:"attended" json:"attended"`
	Certified bool               `bson:"certified" json:"certified"`
}
