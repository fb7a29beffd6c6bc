package repository

import (
	"context"

	"escape-portal/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type GameRepository struct {
	Col *mongo.Collection
}

func NewGameRepository(db *mongo.Database) *GameRepository {
	return &GameRepository{Col: db.Collection("games")}
}

func (r *GameRepository) Create(ctx context.Context, game *models.Game) (string, error) {
	res, err := r.Col.InsertOne(ctx, game)
	if err != nil {
		return "", err
	}
	oid := res.InsertedID.(primitive.ObjectID)
	game.ID = oid
	return oid.Hex(), nil
}

func (r *GameRepository) FindByID(ctx context.Context, id string) (*models.Game, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var game models.Game
	if err := r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *GameRepository) FindAll(ctx context.Context) ([]models.Game, error) {
	cur, err := r.Col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var games []models.Game
	if err := cur.All(ctx, &games); err != nil {
		return nil, err
	}
	return games, nil
}

func (r *GameRepository) Update(ctx context.Context, id string, update bson.M) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update})
	return err
}

func (r *GameRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.DeleteOne(ctx, bson.M{"_id": objID})
	return err
}
