package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	QuizTypePre  = "pre"
	QuizTypePost = "post"
)

type Question struct {
	Text               string   `bson:"text" json:"text"`
	Answers            []string `bson:"answers" json:"answers"`
	CorrectAnswerIndex int      `bson:"correct_answer_index" json:"correct_answer_index"`
}

// Quiz embeds its questions as an ordered array so question order needs no
// separate sort key.
type Quiz struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Type      string             `bson:"type" json:"type"`
	Questions []Question         `bson:"questions" json:"questions"`
}
