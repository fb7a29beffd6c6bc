package repository

import (
	"context"

	"escape-portal/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type OrganisationRepository struct {
	Col *mongo.Collection
}

func NewOrganisationRepository(db *mongo.Database) *OrganisationRepository {
	return &OrganisationRepository{Col: db.Collection("organisations")}
}

func (r *OrganisationRepository) Create(ctx context.Context, org *models.Organisation) (string, error) {
	res, err := r.Col.InsertOne(ctx, org)
	if err != nil {
		return "", err
	}
	oid := res.InsertedID.(primitive.ObjectID)
	org.ID = oid
	return oid.Hex(), nil
}

func (r *OrganisationRepository) FindByID(ctx context.Context, id string) (*models.Organisation, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var org models.Organisation
	if err := r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&org); err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *OrganisationRepository) FindAll(ctx context.Context) ([]models.Organisation, error) {
	cur, err := r.Col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var orgs []models.Organisation
	if err := cur.All(ctx, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *OrganisationRepository) Update(ctx context.Context, id string, update bson.M) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update})
	return err
}
