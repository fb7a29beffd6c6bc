package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleSuperAdmin   = "super-admin"
	RoleCompanyAdmin = "company-admin"
	RoleOrganiser    = "organiser"
	RoleFacilitator  = "facilitator"
	RolePlayer       = "player"
)

type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email          string             `bson:"email" json:"email"`
	PasswordHash   string             `bson:"password_hash" json:"-"`
	FirstName      string             `bson:"first_name" json:"first_name"`
	LastName       string             `bson:"last_name" json:"last_name"`
	Role           string             `bson:"role" json:"role"`
	OrganisationID string             `bson:"organisation_id,omitempty" json:"organisation_id,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// Claims is the JWT payload carried on every authenticated request. Role and
// organisation are resolved once at sign-in, not re-fetched per page.
type Claims struct {
	jwt.RegisteredClaims
	UserID         string `json:"user_id"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	OrganisationID string `json:"organisation_id,omitempty"`
}
