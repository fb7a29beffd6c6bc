package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrganisationStatusActive   = "active"
	OrganisationStatusInactive = "inactive"
)

// PrimaryContact is a point-in-time snapshot of the admin user taken when the
// organisation is provisioned. It is not kept in sync with later user edits.
type PrimaryContact struct {
	UID       string `bson:"uid" json:"uid"`
	FirstName string `bson:"first_name" json:"first_name"`
	LastName  string `bson:"last_name" json:"last_name"`
	Email     string `bson:"email" json:"email"`
}

type Organisation struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrganisationName    string             `bson:"organisation_name" json:"organisation_name"`
	OrganisationAdminID string             `bson:"organisation_admin_id" json:"organisation_admin_id"`
	Status              string             `bson:"status" json:"status"`
	Timezone            string             `bson:"timezone" json:"timezone"`
	PrimaryContact      PrimaryContact     `bson:"primary_contact" json:"primary_contact"`
	CreatedAt           time.Time          `bson:"created_at" json:"created_at"`
}
