package repository

import (
	"context"

	"escape-portal/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TeamRepository struct {
	Col *mongo.Collection
}

func NewTeamRepository(db *mongo.Database) *TeamRepository {
	return &TeamRepository{Col: db.Collection("teams")}
}

func (r *TeamRepository) Create(ctx context.Context, team *models.Team) (string, error) {
	res, err := r.Col.InsertOne(ctx, team)
	if err != nil {
		return "", err
	}
	oid := res.InsertedID.(primitive.ObjectID)
	team.ID = oid
	return oid.Hex(), nil
}

func (r *TeamRepository) FindByID(ctx context.Context, id string) (*models.Team, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var team models.Team
	if err := r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *TeamRepository) UpdateName(ctx context.Context, id, teamName string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"team_name": teamName}})
	return err
}
