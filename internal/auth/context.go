// internal/auth/context.go
package auth

import (
	"context"

	"github.com/ammerola/roadie-bag/internal/core/domain"
)

type contextKey int

const (
	userKey contextKey = iota
	tokenKey
)

// WithUser attaches the request identity
func WithUser(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the request identity, or the guest when none was attached
func UserFromContext(ctx context.Context) domain.User {
	if u, ok := ctx.Value(userKey).(domain.User); ok {
		return u
	}
	return domain.Guest()
}

// WithToken attaches the raw session token
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext returns the raw session token, if any
func TokenFromContext(ctx context.Context) string {
	t, _ := ctx.Value(tokenKey).(string)
	return t
}
