package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tasknest/internal/auth"
	"tasknest/internal/model"
	"tasknest/internal/repository"
)

const minPasswordLength = 8

// AuthService handles registration, login and per-request authentication.
type AuthService struct {
	userRepo    *repository.UserRepository
	sessionRepo *repository.SessionRepository
	tokens      *auth.Auth
}

func NewAuthService(userRepo *repository.UserRepository, sessionRepo *repository.SessionRepository, tokens *auth.Auth) *AuthService {
	return &AuthService{userRepo: userRepo, sessionRepo: sessionRepo, tokens: tokens}
}

// Register creates a new account. Usernames are unique; a taken name is a
// conflict, not an infrastructure error.
func (s *AuthService) Register(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%w: username %q is taken", ErrConflict, username)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{Username: username, PasswordHash: string(hash)}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials, opens a session and returns a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	session := model.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.tokens.TTL()),
	}
	if err := s.sessionRepo.Create(ctx, &session); err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user.ID, session.ID, now)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Authenticate resolves the caller behind an Authorization header. The token
// must verify and its session must still exist and be unexpired, so logging
// out or purging a session revokes the token immediately.
func (s *AuthService) Authenticate(ctx context.Context, header string) (auth.Claims, error) {
	claims, err := s.tokens.ParseAuthHeader(header)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	session, err := s.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return auth.Claims{}, fmt.Errorf("%w: session revoked", ErrInvalidCredentials)
		}
		return auth.Claims{}, fmt.Errorf("find session: %w", err)
	}
	if session.UserID != claims.UserID || time.Now().After(session.ExpiresAt) {
		return auth.Claims{}, fmt.Errorf("%w: session expired", ErrInvalidCredentials)
	}

	return claims, nil
}

// Logout deletes the session behind the token.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessionRepo.Delete(ctx, sessionID)
}

// PurgeExpiredSessions drops sessions past their expiry. Run periodically.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	return s.sessionRepo.DeleteExpired(ctx, now)
}
