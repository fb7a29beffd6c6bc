package repository

import (
	"context"

	"escape-portal/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TeamMemberRepository struct {
	Col *mongo.Collection
}

func NewTeamMemberRepository(db *mongo.Database) *TeamMemberRepository {
	return &TeamMemberRepository{Col: db.Collection("team_members")}
}

func (r *TeamMemberRepository) Create(ctx context.Context, member *models.TeamMember) (string, error) {
	res, err := r.Col.InsertOne(ctx, member)
	if err != nil {
		return "", err
	}
	oid := res.InsertedID.(primitive.ObjectID)
	member.ID = oid
	return oid.Hex(), nil
}

func (r *TeamMemberRepository) Update(ctx context.Context, id string, member *models.TeamMember) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	update := bson.M{
		"team_id":    member.TeamID,
		"first_name": member.FirstName,
		"last_name":  member.LastName,
		"email":      member.Email,
		"mobile":     member.Mobile,
		"is_leader":  member.IsLeader,
		"attended":   member.Attended,
		"certified":  member.Certified,
	}
	_, err = r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update})
	return err
}

func (r *TeamMemberRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.DeleteOne(ctx, bson.M{"_id": objID})
	return err
}

func (r *TeamMemberRepository) FindByTeam(ctx context.Context, teamID string) ([]models.TeamMember, error) {
	cur, err := r.Col.Find(ctx, bson.M{"team_id": teamID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var members []models.TeamMember
	if err := cur.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}
