package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"petstock/internal/core/apperror"
	"petstock/internal/core/appctx"
	"petstock/internal/core/id"
	"petstock/pkg/logger"
)

// Service provides login and session inspection.
type Service struct {
	repo Repository
	jwt  *JWTService
}

// NewService creates a new auth service.
func NewService(repo Repository, jwt *JWTService) *Service {
	return &Service{repo: repo, jwt: jwt}
}

// Session is an issued access token with its expiry.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, apperror.NewValidation("email and password are required")
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			// Same response as a wrong password; do not leak which is which.
			return nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(u.ID.String(), u.Email)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	logger.Info(ctx, "user logged in", "user_id", u.ID, "email", u.Email)
	return &Session{Token: token, ExpiresAt: expiresAt, User: u}, nil
}

// CurrentUser resolves the session user from context. Nil user means no
// session.
func (s *Service) CurrentUser(ctx context.Context) (*User, error) {
	sessionUser := appctx.GetUser(ctx)
	if sessionUser == nil {
		return nil, apperror.NewUnauthorized("no active session")
	}

	userID, err := id.Parse(sessionUser.UserID)
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid session")
	}

	return s.repo.GetByID(ctx, userID)
}

// SignOut ends the session. Tokens are stateless; the client discards
// its copy and this is recorded for the log only.
func (s *Service) SignOut(ctx context.Context) {
	if u := appctx.GetUser(ctx); u != nil {
		logger.Info(ctx, "user signed out", "user_id", u.UserID)
	}
}

// HashPassword produces a bcrypt hash for seeding accounts.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ValidateToken exposes token validation for the HTTP middleware.
func (s *Service) ValidateToken(token string) (*appctx.User, error) {
	return s.jwt.ValidateToken(token)
}
