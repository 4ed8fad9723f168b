// internal/core/ports/auth.go
package ports

import (
	"context"

	"github.com/ammerola/roadie-bag/internal/core/domain"
)

// UserRepository defines the persistence port for accounts
type UserRepository interface {
	Create(ctx context.Context, username, passwordHash string) (*domain.UserRecord, error)
	FindByUsername(ctx context.Context, username string) (*domain.UserRecord, error)
	FindByID(ctx context.Context, id int64) (*domain.UserRecord, error)
}

// AuthService defines account and session operations
type AuthService interface {
	Signup(ctx context.Context, username, password, confirmation string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.Session, error)
	Logout(ctx context.Context, token string) error
	// Authenticate resolves a session token into an identity
	Authenticate(ctx context.Context, token string) (domain.User, error)
}
