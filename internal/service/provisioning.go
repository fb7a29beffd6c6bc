package service

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"time"

	"escape-portal/internal/events"
	"escape-portal/internal/models"
	"escape-portal/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type ProvisioningUserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (string, error)
	Update(ctx context.Context, id string, update bson.M) error
}

type ProvisioningOrgStore interface {
	Create(ctx context.Context, org *models.Organisation) (string, error)
	FindByID(ctx context.Context, id string) (*models.Organisation, error)
	FindAll(ctx context.Context) ([]models.Organisation, error)
	Update(ctx context.Context, id string, update bson.M) error
}

type ProvisionInput struct {
	OrgName   string `json:"org_name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Timezone  string `json:"timezone"`
}

type ProvisionResult struct {
	UserID         string `json:"uid"`
	OrganisationID string `json:"organisation_id"`
}

type OrganisationService struct {
	Users     ProvisioningUserStore
	Orgs      ProvisioningOrgStore
	publisher events.Publisher
}

func NewOrganisationService(users ProvisioningUserStore, orgs ProvisioningOrgStore, publisher events.Publisher) *OrganisationService {
	return &OrganisationService{Users: users, Orgs: orgs, publisher: publisher}
}

// Provision creates an organisation together with its company-admin account.
//
// Only super-admins may call this, checked before any write. If a user with
// the email already exists its id is reused instead of minting a second
// identity, which also makes a retry after partial failure safe on the
// identity step. Steps run sequentially with no rollback: a failure midway
// leaves the committed steps in place and is reported as one generic failure.
func (s *OrganisationService) Provision(ctx context.Context, actorRole string, in ProvisionInput) (*ProvisionResult, error) {
	if actorRole != models.RoleSuperAdmin {
		return nil, fmt.Errorf("%w: only super-admins can create organisations", ErrPermissionDenied)
	}

	if err := validateProvisionInput(in); err != nil {
		return nil, err
	}

	existing, err := s.Users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create organisation: %w", err)
	}
	// Password strength only matters when a new credential is minted, which
	// is not known until the email lookup resolves.
	if existing == nil && passwordStrength(in.Password) < 3 {
		return nil, fmt.Errorf("%w: password is too weak", ErrValidation)
	}

	var userID string
	var contact models.PrimaryContact
	if existing != nil {
		userID = existing.ID.Hex()
		contact = models.PrimaryContact{
			UID:       userID,
			FirstName: existing.FirstName,
			LastName:  existing.LastName,
			Email:     existing.Email,
		}
	} else {
		hash, err := repository.HashPassword(in.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to create organisation: %w", err)
		}
		now := time.Now()
		user := &models.User{
			Email:        in.Email,
			PasswordHash: hash,
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			Role:         models.RoleCompanyAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		userID, err = s.Users.Create(ctx, user)
		if err != nil {
			return nil, fmt.Errorf("failed to create organisation: %w", err)
		}
		log.Printf("Provisioning: created admin user %s", userID)
		contact = models.PrimaryContact{
			UID:       userID,
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Email:     in.Email,
		}
	}

	org := &models.Organisation{
		OrganisationName:    in.OrgName,
		OrganisationAdminID: userID,
		Status:              models.OrganisationStatusActive,
		Timezone:            in.Timezone,
		PrimaryContact:      contact,
		CreatedAt:           time.Now(),
	}
	orgID, err := s.Orgs.Create(ctx, org)
	if err != nil {
		return nil, fmt.Errorf("failed to create organisation: %w", err)
	}
	log.Printf("Provisioning: created organisation %s", orgID)

	// Two-phase write: the organisation id only exists now, so the user
	// document is linked last. A failure here leaves an organisation whose
	// admin user is not yet linked back.
	if err := s.Users.Update(ctx, userID, bson.M{"organisation_id": orgID, "role": models.RoleCompanyAdmin}); err != nil {
		return nil, fmt.Errorf("failed to create organisation: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrganisationProvisioned(ctx, orgID, userID); err != nil {
			log.Printf("Warning: failed to publish organisation provisioned event: %v", err)
		}
	}

	return &ProvisionResult{UserID: userID, OrganisationID: orgID}, nil
}

// validateProvisionInput checks the static form fields. It runs before any
// store access so bad input never costs a remote call.
func validateProvisionInput(in ProvisionInput) error {
	if in.OrgName == "" {
		return fmt.Errorf("%w: organisation name is required", ErrValidation)
	}
	if in.FirstName == "" {
		return fmt.Errorf("%w: first name is required", ErrValidation)
	}
	if in.LastName == "" {
		return fmt.Errorf("%w: last name is required", ErrValidation)
	}
	if !emailPattern.MatchString(in.Email) {
		return fmt.Errorf("%w: valid email is required", ErrValidation)
	}
	return nil
}

// passwordStrength counts satisfied criteria: length >= 8, an upper-case
// letter, a digit, a symbol.
func passwordStrength(password string) int {
	strength := 0
	if len(password) >= 8 {
		strength++
	}
	var hasUpper, hasDigit, hasSymbol bool
	for _, c := range password {
		switch {
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		case c >= '0' && c <= '9':
			hasDigit = true
		case c < 'a' || c > 'z':
			hasSymbol = true
		}
	}
	if hasUpper {
		strength++
	}
	if hasDigit {
		strength++
	}
	if hasSymbol {
		strength++
	}
	return strength
}

func (s *OrganisationService) GetOrganisation(ctx context.Context, id string) (*models.Organisation, error) {
	return s.Orgs.FindByID(ctx, id)
}

func (s *OrganisationService) ListOrganisations(ctx context.Context) ([]models.Organisation, error) {
	return s.Orgs.FindAll(ctx)
}

// ReassignAdmin changes the organisation's admin reference. The primary
// contact snapshot is deliberately left untouched; it is a point-in-time
// copy from provisioning.
func (s *OrganisationService) ReassignAdmin(ctx context.Context, actorRole, organisationID, newAdminID string) error {
	if actorRole != models.RoleSuperAdmin {
		return fmt.Errorf("%w: only super-admins can reassign organisation admins", ErrPermissionDenied)
	}
	if newAdminID == "" {
		return fmt.Errorf("%w: admin user id is required", ErrValidation)
	}
	if err := s.Orgs.Update(ctx, organisationID, bson.M{"organisation_admin_id": newAdminID}); err != nil {
		return err
	}
	return s.Users.Update(ctx, newAdminID, bson.M{"organisation_id": organisationID, "role": models.RoleCompanyAdmin})
}
