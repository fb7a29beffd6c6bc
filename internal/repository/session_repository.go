package repository

import (
	"context"

	"escape-portal/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type SessionRepository struct {
	Col *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{Col: db.Collection("sessions")}
}

func (r *SessionRepository) Create(ctx context.Context, session *models.Session) (string, error) {
	res, err := r.Col.InsertOne(ctx, session)
	if err != nil {
		return "", err
	}
	oid := res.InsertedID.(primitive.ObjectID)
	session.ID = oid
	return oid.Hex(), nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (*models.Session, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var session models.Session
	if err := r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) FindByRound(ctx context.Context, roundID string) ([]models.Session, error) {
	cur, err := r.Col.Find(ctx, bson.M{"round_id": roundID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var sessions []models.Session
	for cur.Next(ctx) {
		var session models.Session
		if err := cur.Decode(&session); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func (r *SessionRepository) FindByOrganisation(ctx context.Context, organisationID string) ([]models.Session, error) {
	cur, err := r.Col.Find(ctx, bson.M{"organisation_id": organisationID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var sessions []models.Session
	if err := cur.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *SessionRepository) Update(ctx context.Context, id string, update bson.M) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update})
	return err
}
