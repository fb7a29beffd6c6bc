package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"escape-portal/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

type AuthUserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

type LoginLockStore interface {
	SaveInt(ctx context.Context, key string, value int64, ttlMinutes int) error
	GetInt(ctx context.Context, key string) int64
}

const (
	lockKeyPrefix   = "escape-portal-lock-user-"
	maxFailedLogins = 10
	lockMinutes     = 10
	minRetryMillis  = 1000
)

type failedLoginAttempt struct {
	failedAt     int64
	failedNumber int
}

type AuthService struct {
	Users          AuthUserStore
	Locks          LoginLockStore
	mu             sync.Mutex
	failedAttempts map[string]*failedLoginAttempt
	jwtSecret      string
	jwtExpiryHours int64
}

func NewAuthService(users AuthUserStore, locks LoginLockStore, jwtSecret string, jwtExpiryHours int64) *AuthService {
	return &AuthService{
		Users:          users,
		Locks:          locks,
		failedAttempts: make(map[string]*failedLoginAttempt),
		jwtSecret:      jwtSecret,
		jwtExpiryHours: jwtExpiryHours,
	}
}

// Login verifies the credential and issues a signed token carrying role and
// organisation claims. Accounts are temporarily locked after repeated or
// suspiciously fast failed attempts.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	if s.Locks != nil && s.Locks.GetInt(ctx, lockKeyPrefix+email) != 0 {
		return "", nil, ErrUserLocked
	}

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("error finding user: %w", err)
	}
	if user == nil {
		return "", nil, fmt.Errorf("%w: unknown email", ErrValidation)
	}

	loginTime := time.Now().UnixMilli()
	if !s.Users.VerifyPassword(user, password) {
		s.recordFailure(ctx, email, loginTime)
		return "", nil, fmt.Errorf("%w: incorrect password", ErrValidation)
	}

	s.mu.Lock()
	delete(s.failedAttempts, email)
	s.mu.Unlock()

	token, err := s.GenerateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string, loginTime int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempt := s.failedAttempts[email]
	if attempt == nil {
		attempt = &failedLoginAttempt{}
		s.failedAttempts[email] = attempt
	}
	if loginTime-attempt.failedAt < minRetryMillis && attempt.failedAt != 0 {
		log.Printf("WARN: suspicious login activity for %s, instant lock activated", email)
		if s.Locks != nil {
			s.Locks.SaveInt(ctx, lockKeyPrefix+email, loginTime, lockMinutes)
		}
	}
	attempt.failedAt = loginTime
	attempt.failedNumber++
	if attempt.failedNumber > maxFailedLogins {
		log.Printf("User %s failed login %d times, locked for %d minutes", email, attempt.failedNumber, lockMinutes)
		if s.Locks != nil {
			s.Locks.SaveInt(ctx, lockKeyPrefix+email, loginTime, lockMinutes)
		}
	}
}

func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	claims := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(s.jwtExpiryHours) * time.Hour)),
			Issuer:    "escape-portal",
		},
		UserID:         user.ID.Hex(),
		Email:          user.Email,
		Role:           user.Role,
		OrganisationID: user.OrganisationID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("error generating token string: %w", err)
	}
	return tokenString, nil
}
