// internal/core/services/auth.go
package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ammerola/roadie-bag/internal/auth"
	"github.com/ammerola/roadie-bag/internal/core/domain"
	"github.com/ammerola/roadie-bag/internal/core/ports"
)

const revokedKeyPrefix = "revoked:"

// AuthService manages accounts and session tokens
type AuthService struct {
	users      ports.UserRepository
	tokens     *auth.TokenManager
	revocation ports.CacheRepository
	clock      ports.Clock
	bcryptCost int
	logger     *slog.Logger
}

var _ ports.AuthService = (*AuthService)(nil)

// NewAuthService creates a new auth service. revocation may be nil, in which
// case logout cannot invalidate a token before it expires.
func NewAuthService(
	users ports.UserRepository,
	tokens *auth.TokenManager,
	revocation ports.CacheRepository,
	clock ports.Clock,
	bcryptCost int,
	logger *slog.Logger,
) *AuthService {
	if clock == nil {
		clock = SystemClock()
	}
	return &AuthService{
		users:      users,
		tokens:     tokens,
		revocation: revocation,
		clock:      clock,
		bcryptCost: bcryptCost,
		logger:     logger.With(slog.String("service", "auth")),
	}
}

// Signup registers a new account
func (s *AuthService) Signup(ctx context.Context, username, password, confirmation string) (*domain.User, error) {
	fields := make(map[string]string)
	if strings.TrimSpace(username) == "" {
		fields["username"] = "Username can't be empty"
	}
	switch {
	case password == "":
		fields["password"] = "Password can't be empty"
	case password != confirmation:
		fields["password"] = "Passwords do not match"
	}
	if len(fields) > 0 {
		return nil, domain.ValidationFromFields(fields)
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, storageErr("find user", err)
	}
	if existing != nil {
		return nil, domain.FieldValidation("username", "Username is already taken")
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, domain.Storage("hash password", err)
	}

	rec, err := s.users.Create(ctx, username, hash)
	if err != nil {
		return nil, storageErr("create user", err)
	}

	user := rec.User()
	s.logger.InfoContext(ctx, "user signed up", slog.Int64("user_id", user.ID))
	return &user, nil
}

// Login verifies credentials and issues a session token
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	rec, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, storageErr("find user", err)
	}
	if rec == nil {
		return nil, domain.ErrBadUserPassword()
	}

	ok, err := auth.CheckPassword(rec.PasswordHash, password)
	if err != nil {
		s.logger.ErrorContext(ctx, "stored password hash is unreadable",
			slog.Int64("user_id", rec.ID), "err", err)
		return nil, domain.ErrBadUserPassword()
	}
	if !ok {
		return nil, domain.ErrBadUserPassword()
	}

	user := rec.User()
	token, claims, err := s.tokens.Issue(user)
	if err != nil {
		return nil, domain.Storage("issue token", err)
	}

	s.logger.InfoContext(ctx, "user logged in", slog.Int64("user_id", user.ID))
	return &domain.Session{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      user,
	}, nil
}

// Logout revokes a token until it would have expired anyway
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil
	}
	if s.revocation == nil {
		return nil
	}

	ttl := claims.ExpiresAt.Time.Sub(s.clock.Now())
	if ttl <= 0 {
		return nil
	}
	if err := s.revocation.SetWithTTL(ctx, revokedKeyPrefix+claims.ID, true, ttl); err != nil {
		return domain.Storage("revoke token", err)
	}

	s.logger.InfoContext(ctx, "user logged out", slog.Int64("user_id", claims.UserID))
	return nil
}

// Authenticate resolves a bearer token into the account it was issued to
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return domain.Guest(), domain.ErrUnauthorized()
	}

	if s.revocation != nil {
		revoked, err := s.revocation.Exists(ctx, revokedKeyPrefix+claims.ID)
		if err != nil {
			s.logger.WarnContext(ctx, "revocation list unavailable", "err", err)
			return domain.Guest(), domain.ErrUnauthorized()
		}
		if revoked {
			return domain.Guest(), domain.ErrUnauthorized()
		}
	}

	rec, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load token owner", "err", err)
		return domain.Guest(), domain.ErrUnauthorized()
	}
	if rec == nil {
		return domain.Guest(), domain.ErrUnauthorized()
	}
	return rec.User(), nil
}
