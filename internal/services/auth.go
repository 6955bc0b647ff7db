package services

import (
	"context"
	"time"

	"carmarket/internal/auth"
	apperrors "carmarket/internal/errors"
	"carmarket/internal/models"
	"carmarket/internal/repository"
	"carmarket/internal/session"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles account registration and session lifecycle
type AuthService struct {
	users     repository.UserRepository
	tokens    repository.TokenRepository
	jwtSecret string
}

// NewAuthService creates a new auth service.
func NewAuthService(users repository.UserRepository, tokens repository.TokenRepository, jwtSecret string) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		jwtSecret: jwtSecret,
	}
}

// Register creates a new account and signs it in, returning the session
// and its token. The display name is snapshotted onto listings at
// creation time, so it is stored with the account.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.Session, string, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", remoteErr(err)
	}
	if existing != nil {
		return nil, "", apperrors.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", remoteErr(err)
	}

	token, err := auth.GenerateToken(s.jwtSecret, user.ID, user.Name, user.Email)
	if err != nil {
		return nil, "", err
	}

	return &models.Session{UID: user.ID, Name: user.Name, Email: user.Email}, token, nil
}

// Login verifies credentials and returns the session and its token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Session, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", remoteErr(err)
	}
	if user == nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(s.jwtSecret, user.ID, user.Name, user.Email)
	if err != nil {
		return nil, "", err
	}

	return &models.Session{UID: user.ID, Name: user.Name, Email: user.Email}, token, nil
}

// Logout revokes the token so the session cannot be reused.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims.ID == "" {
		return nil
	}
	if err := s.tokens.Revoke(ctx, claims.ID); err != nil {
		return remoteErr(err)
	}
	return nil
}

// Resolve turns a raw token into a session resolution. An invalid or
// revoked token resolves to absent; a transient failure of the revocation
// check resolves to unknown so callers can avoid a wrong redirect.
func (s *AuthService) Resolve(ctx context.Context, tokenStr string) session.Resolution {
	if tokenStr == "" {
		return session.Resolution{State: session.StateAbsent}
	}

	claims, err := auth.ValidateToken(s.jwtSecret, tokenStr)
	if err != nil {
		return session.Resolution{State: session.StateAbsent}
	}

	if claims.ID != "" {
		revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
		if err != nil {
			return session.Resolution{State: session.StateUnknown}
		}
		if revoked {
			return session.Resolution{State: session.StateAbsent}
		}
	}

	return session.Resolution{
		State: session.StatePresent,
		Session: &models.Session{
			UID:   claims.UID,
			Name:  claims.Name,
			Email: claims.Email,
		},
	}
}

// Claims validates a token and returns its claims without the
// revocation check. Used for logout, where a revoked token is fine.
func (s *AuthService) Claims(tokenStr string) (*auth.Claims, error) {
	return auth.ValidateToken(s.jwtSecret, tokenStr)
}
