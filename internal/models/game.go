package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	GameStatusActive    = "Active"
	GameStatusNotActive = "Not Active"
)

type Game struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name    string             `bson:"name" json:"name"`
	Version string             `bson:"version" json:"version"`
	URL     string             `bson:"url" json:"url"`
	Status  string             `bson:"status" json:"status"`
}
