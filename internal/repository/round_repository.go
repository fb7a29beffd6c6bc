package repository

import (
	"context"

	"escape-portal/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type RoundRepository struct {
	Col *mongo.Collection
}

func NewRoundRepository(db *mongo.Database) *RoundRepository {
	return &RoundRepository{Col: db.Collection("rounds")}
}

func (r *RoundRepository) Create(ctx context.Context, round *models.Round) (string, error) {
	res, err := r.Col.InsertOne(ctx, round)
	if err != nil {
		return "", err
	}
	oid := res.InsertedID.(primitive.ObjectID)
	round.ID = oid
	return oid.Hex(), nil
}

func (r *RoundRepository) FindByID(ctx context.Context, id string) (*models.Round, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var round models.Round
	if err := r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&round); err != nil {
		return nil, err
	}
	return &round, nil
}

func (r *RoundRepository) FindByOrganisation(ctx context.Context, organisationID string) ([]models.Round, error) {
	cur, err := r.Col.Find(ctx, bson.M{"organisation_id": organisationID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var rounds []models.Round
	for cur.Next(ctx) {
		var round models.Round
		if err := cur.Decode(&round); err != nil {
			return nil, err
		}
		rounds = append(rounds, round)
	}
	return rounds, nil
}

func (r *RoundRepository) Update(ctx context.Context, id string, update bson.M) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update})
	return err
}
