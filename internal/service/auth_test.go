package service

import (
	"context"
	"errors"
	"testing"

	"escape-portal/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeAuthUsers struct {
	user     *models.User
	password string
}

func (f *fakeAuthUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.user != nil && f.user.Email == email {
		return f.user, nil
	}
	return nil, nil
}

func (f *fakeAuthUsers) VerifyPassword(user *models.User, password string) bool {
	return password == f.password
}

type fakeLockStore struct {
	locks map[string]int64
}

func newFakeLockStore() *fakeLockStore {
	return &fakeLockStore{locks: make(map[string]int64)}
}

func (f *fakeLockStore) SaveInt(ctx context.Context, key string, value int64, ttlMinutes int) error {
	f.locks[key] = value
	return nil
}

func (f *fakeLockStore) GetInt(ctx context.Context, key string) int64 {
	return f.locks[key]
}

func testUser() *models.User {
	return &models.User{
		ID:             primitive.NewObjectID(),
		Email:          "admin@acme.example.com",
		Role:           models.RoleCompanyAdmin,
		OrganisationID: "org-1",
	}
}

func TestLoginIssuesToken(t *testing.T) {
	user := testUser()
	svc := NewAuthService(&fakeAuthUsers{user: user, password: "Str0ng!pass"}, newFakeLockStore(), "test-secret", 24)

	token, got, err := svc.Login(context.Background(), user.Email, "Str0ng!pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Email != user.Email {
		t.Errorf("got user %q, want %q", got.Email, user.Email)
	}

	claims := &models.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims.UserID != user.ID.Hex() {
		t.Errorf("claim user id %q, want %q", claims.UserID, user.ID.Hex())
	}
	if claims.Role != models.RoleCompanyAdmin {
		t.Errorf("claim role %q, want %q", claims.Role, models.RoleCompanyAdmin)
	}
	if claims.OrganisationID != "org-1" {
		t.Errorf("claim organisation %q, want %q", claims.OrganisationID, "org-1")
	}
	if claims.Issuer != "escape-portal" {
		t.Errorf("claim issuer %q, want %q", claims.Issuer, "escape-portal")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	user := testUser()
	svc := NewAuthService(&fakeAuthUsers{user: user, password: "Str0ng!pass"}, newFakeLockStore(), "test-secret", 24)

	_, _, err := svc.Login(context.Background(), user.Email, "wrong")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(&fakeAuthUsers{}, newFakeLockStore(), "test-secret", 24)
	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestLoginLockedUser(t *testing.T) {
	user := testUser()
	locks := newFakeLockStore()
	locks.locks[lockKeyPrefix+user.Email] = 12345
	svc := NewAuthService(&fakeAuthUsers{user: user, password: "Str0ng!pass"}, locks, "test-secret", 24)

	_, _, err := svc.Login(context.Background(), user.Email, "Str0ng!pass")
	if !errors.Is(err, ErrUserLocked) {
		t.Errorf("expected locked error even with the right password, got %v", err)
	}
}

func TestRecordFailureLocksAfterRepeatedFailures(t *testing.T) {
	locks := newFakeLockStore()
	svc := NewAuthService(&fakeAuthUsers{}, locks, "test-secret", 24)

	// Spaced failures do not lock until the count passes the limit.
	when := int64(1_000_000)
	for i := 0; i < maxFailedLogins; i++ {
		svc.recordFailure(context.Background(), "target@example.com", when)
		when += 2 * minRetryMillis
	}
	if len(locks.locks) != 0 {
		t.Fatalf("locked too early after %d failures", maxFailedLogins)
	}

	svc.recordFailure(context.Background(), "target@example.com", when)
	if locks.GetInt(context.Background(), lockKeyPrefix+"target@example.com") == 0 {
		t.Error("expected lock after exceeding the failure limit")
	}
}

func TestRecordFailureInstantLockOnFastRetry(t *testing.T) {
	locks := newFakeLockStore()
	svc := NewAuthService(&fakeAuthUsers{}, locks, "test-secret", 24)

	svc.recordFailure(context.Background(), "bot@example.com", 1_000_000)
	svc.recordFailure(context.Background(), "bot@example.com", 1_000_000+minRetryMillis/2)
	if locks.GetInt(context.Background(), lockKeyPrefix+"bot@example.com") == 0 {
		t.Error("expected instant lock on sub-second retry")
	}
}

func TestLoginSuccessClearsFailures(t *testing.T) {
	user := testUser()
	locks := newFakeLockStore()
	svc := NewAuthService(&fakeAuthUsers{user: user, password: "Str0ng!pass"}, locks, "test-secret", 24)

	svc.recordFailure(context.Background(), user.Email, 1_000_000)
	if _, _, err := svc.Login(context.Background(), user.Email, "Str0ng!pass"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc.mu.Lock()
	_, stillTracked := svc.failedAttempts[user.Email]
	svc.mu.Unlock()
	if stillTracked {
		t.Error("successful login must clear the failure counter")
	}
}
