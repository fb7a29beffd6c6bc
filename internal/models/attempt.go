package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuizAttempt records a completed pre or post quiz. At most one attempt may
// exist per (user, session, quiz type) triple.
type QuizAttempt struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"user_id" json:"user_id"`
	SessionID   string             `bson:"session_id" json:"session_id"`
	QuizType    string             `bson:"quiz_type" json:"quiz_type"`
	Score       int                `bson:"score" json:"score"`
	CompletedAt time.Time          `bson:"completed_at" json:"completed_at"`
}
