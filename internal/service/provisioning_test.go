package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"escape-portal/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserStore struct {
	byEmail map[string]*models.User
	created []*models.User
	updates map[string]bson.M
	lookups int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*models.User), updates: make(map[string]bson.M)}
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	f.lookups++
	return f.byEmail[email], nil
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) (string, error) {
	user.ID = primitive.NewObjectID()
	f.created = append(f.created, user)
	f.byEmail[user.Email] = user
	return user.ID.Hex(), nil
}

func (f *fakeUserStore) Update(ctx context.Context, id string, update bson.M) error {
	f.updates[id] = update
	return nil
}

type fakeOrgStore struct {
	seq     int
	created []*models.Organisation
	updates map[string]bson.M
}

func newFakeOrgStore() *fakeOrgStore {
	return &fakeOrgStore{updates: make(map[string]bson.M)}
}

func (f *fakeOrgStore) Create(ctx context.Context, org *models.Organisation) (string, error) {
	f.seq++
	f.created = append(f.created, org)
	return fmt.Sprintf("org-%d", f.seq), nil
}

func (f *fakeOrgStore) FindByID(ctx context.Context, id string) (*models.Organisation, error) {
	return nil, errors.New("not found")
}

func (f *fakeOrgStore) FindAll(ctx context.Context) ([]models.Organisation, error) {
	return nil, nil
}

func (f *fakeOrgStore) Update(ctx context.Context, id string, update bson.M) error {
	f.updates[id] = update
	return nil
}

func validProvisionInput() ProvisionInput {
	return ProvisionInput{
		OrgName:   "Acme Corp",
		FirstName: "Sam",
		LastName:  "Lee",
		Email:     "sam@acme.example.com",
		Password:  "Str0ng!pass",
		Timezone:  "Australia/Sydney",
	}
}

func TestProvisionRequiresSuperAdmin(t *testing.T) {
	users := newFakeUserStore()
	orgs := newFakeOrgStore()
	svc := NewOrganisationService(users, orgs, nil)

	for _, role := range []string{models.RoleCompanyAdmin, models.RoleOrganiser, models.RoleFacilitator, models.RolePlayer, ""} {
		_, err := svc.Provision(context.Background(), role, validProvisionInput())
		if !errors.Is(err, ErrPermissionDenied) {
			t.Errorf("role %q: expected permission denied, got %v", role, err)
		}
	}
	if len(users.created) != 0 || len(orgs.created) != 0 {
		t.Error("denied provisioning must not write anything")
	}
}

func TestProvisionNewAdmin(t *testing.T) {
	users := newFakeUserStore()
	orgs := newFakeOrgStore()
	svc := NewOrganisationService(users, orgs, nil)

	result, err := svc.Provision(context.Background(), models.RoleSuperAdmin, validProvisionInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(users.created) != 1 {
		t.Fatalf("expected 1 user created, got %d", len(users.created))
	}
	user := users.created[0]
	if user.Role != models.RoleCompanyAdmin {
		t.Errorf("new admin got role %q, want %q", user.Role, models.RoleCompanyAdmin)
	}
	if user.PasswordHash == "" || user.PasswordHash == "Str0ng!pass" {
		t.Error("password was not hashed")
	}

	if len(orgs.created) != 1 {
		t.Fatalf("expected 1 organisation created, got %d", len(orgs.created))
	}
	org := orgs.created[0]
	if org.OrganisationAdminID != result.UserID {
		t.Errorf("organisation admin id %q, want %q", org.OrganisationAdminID, result.UserID)
	}
	if org.Status != models.OrganisationStatusActive {
		t.Errorf("got status %q, want %q", org.Status, models.OrganisationStatusActive)
	}
	if org.PrimaryContact.Email != "sam@acme.example.com" || org.PrimaryContact.UID != result.UserID {
		t.Errorf("primary contact snapshot wrong: %+v", org.PrimaryContact)
	}

	update, ok := users.updates[result.UserID]
	if !ok {
		t.Fatal("user was not linked back to the organisation")
	}
	if update["organisation_id"] != result.OrganisationID {
		t.Errorf("user linked to %v, want %q", update["organisation_id"], result.OrganisationID)
	}
}

func TestProvisionReusesExistingIdentity(t *testing.T) {
	users := newFakeUserStore()
	existing := &models.User{
		ID:        primitive.NewObjectID(),
		Email:     "sam@acme.example.com",
		FirstName: "Samantha",
		LastName:  "Lee",
	}
	users.byEmail[existing.Email] = existing
	orgs := newFakeOrgStore()
	svc := NewOrganisationService(users, orgs, nil)

	in := validProvisionInput()
	in.Password = "" // no new account, so no password needed
	result, err := svc.Provision(context.Background(), models.RoleSuperAdmin, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(users.created) != 0 {
		t.Errorf("existing identity must be reused, %d users created", len(users.created))
	}
	if result.UserID != existing.ID.Hex() {
		t.Errorf("got user id %q, want existing %q", result.UserID, existing.ID.Hex())
	}
	// Snapshot comes from the stored user, not the form.
	if orgs.created[0].PrimaryContact.FirstName != "Samantha" {
		t.Errorf("snapshot first name %q, want %q", orgs.created[0].PrimaryContact.FirstName, "Samantha")
	}
}

func TestProvisionValidation(t *testing.T) {
	svc := NewOrganisationService(newFakeUserStore(), newFakeOrgStore(), nil)

	noOrg := validProvisionInput()
	noOrg.OrgName = ""
	badEmail := validProvisionInput()
	badEmail.Email = "not-an-email"
	weakPassword := validProvisionInput()
	weakPassword.Password = "short"

	testCases := []struct {
		name string
		in   ProvisionInput
	}{
		{"missing org name", noOrg},
		{"bad email", badEmail},
		{"weak password", weakPassword},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Provision(context.Background(), models.RoleSuperAdmin, tc.in)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestProvisionValidatesBeforeLookup(t *testing.T) {
	users := newFakeUserStore()
	svc := NewOrganisationService(users, newFakeOrgStore(), nil)

	in := validProvisionInput()
	in.Email = "not-an-email"
	if _, err := svc.Provision(context.Background(), models.RoleSuperAdmin, in); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if users.lookups != 0 {
		t.Errorf("static validation failure reached the user store %d times", users.lookups)
	}
}

func TestPasswordStrength(t *testing.T) {
	testCases := []struct {
		password string
		expected int
	}{
		{"", 0},
		{"short", 0},
		{"alllowercase", 1},
		{"Short1", 2},
		{"UpperAndLong", 2},
		{"Upper4ndLong", 3},
		{"l0ng&lower!", 3},
		{"Str0ng!pass", 4},
	}
	for _, tc := range testCases {
		t.Run(tc.password, func(t *testing.T) {
			if got := passwordStrength(tc.password); got != tc.expected {
				t.Errorf("passwordStrength(%q) = %d, want %d", tc.password, got, tc.expected)
			}
		})
	}
}

func TestReassignAdmin(t *testing.T) {
	users := newFakeUserStore()
	orgs := newFakeOrgStore()
	svc := NewOrganisationService(users, orgs, nil)

	if err := svc.ReassignAdmin(context.Background(), models.RoleCompanyAdmin, "org-1", "user-2"); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("expected permission denied for non super-admin, got %v", err)
	}
	if err := svc.ReassignAdmin(context.Background(), models.RoleSuperAdmin, "org-1", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for empty admin id, got %v", err)
	}

	if err := svc.ReassignAdmin(context.Background(), models.RoleSuperAdmin, "org-1", "user-2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	orgUpdate := orgs.updates["org-1"]
	if orgUpdate["organisation_admin_id"] != "user-2" {
		t.Errorf("organisation admin not updated: %v", orgUpdate)
	}
	if _, touched := orgUpdate["primary_contact"]; touched {
		t.Error("primary contact snapshot must not change on reassignment")
	}
	userUpdate := users.updates["user-2"]
	if userUpdate["organisation_id"] != "org-1" || userUpdate["role"] != models.RoleCompanyAdmin {
		t.Errorf("new admin user not updated: %v", userUpdate)
	}
}
