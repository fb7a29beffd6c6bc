package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Round struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrganisationID string             `bson:"organisation_id" json:"organisation_id"`
	RoundName      string             `bson:"round_name" json:"round_name"`
	StartDate      time.Time          `bson:"start_date" json:"start_date"`
	EndDate        time.Time          `bson:"end_date" json:"end_date"`
	Status         string             `bson:"status" json:"status"`
	Timezone       string             `bson:"timezone,omitempty" json:"timezone,omitempty"`
	GameID         string             `bson:"game_id,omitempty" json:"game_id,omitempty"`
	PreQuizID      string             `bson:"pre_quiz_id,omitempty" json:"pre_quiz_id,omitempty"`
	PostQuizID     string             `bson:"post_quiz_id,omitempty" json:"post_quiz_id,omitempty"`
}

// RoundView is the denormalized projection shown on round cards: the round
// plus the resolved names of its game and quizzes and its lifecycle bucket.
type RoundView struct {
	Round         Round  `json:"round"`
	GameName      string `json:"game_name"`
	PreQuizTitle  string `json:"pre_quiz_title"`
	PostQuizTitle string `json:"post_quiz_title"`
	Lifecycle     string `json:"lifecycle"`
}
