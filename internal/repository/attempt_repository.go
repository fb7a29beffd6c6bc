package repository

import (
	"context"
	"errors"

	"escape-portal/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AttemptRepository struct {
	Col *mongo.Collection
}

func NewAttemptRepository(db *mongo.Database) *AttemptRepository {
	return &AttemptRepository{Col: db.Collection("quiz_attempts")}
}

func (r *AttemptRepository) Create(ctx context.Context, attempt *models.QuizAttempt) (string, error) {
	res, err := r.Col.InsertOne(ctx, attempt)
	if err != nil {
		return "", err
	}
	oid := res.InsertedID.(primitive.ObjectID)
	attempt.ID = oid
	return oid.Hex(), nil
}

// FindByTriple returns nil without error when no attempt exists for the
// (user, session, quiz type) triple.
func (r *AttemptRepository) FindByTriple(ctx context.Context, userID, sessionID, quizType string) (*models.QuizAttempt, error) {
	filter := bson.M{"user_id": userID, "session_id": sessionID, "quiz_type": quizType}
	var attempt models.QuizAttempt
	err := r.Col.FindOne(ctx, filter).Decode(&attempt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &attempt, nil
}

func (r *AttemptRepository) FindBySession(ctx context.Context, sessionID string) ([]models.QuizAttempt, error) {
	cur, err := r.Col.Find(ctx, bson.M{"session_id": sessionID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var attempts []models.QuizAttempt
	if err := cur.All(ctx, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}
