package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ammerola/roadie-bag/internal/auth"
	"github.com/ammerola/roadie-bag/internal/core/domain"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := auth.NewTokenManager("test-secret-key", time.Hour, func() time.Time { return now })

	token, claims, err := m.Issue(domain.User{ID: 7, Username: "ana"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, now.Add(time.Hour), claims.ExpiresAt.Time)

	parsed, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), parsed.UserID)
	assert.Equal(t, "ana", parsed.Username)
	assert.Equal(t, claims.ID, parsed.ID)
}

func TestTokenManager_Rejects(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	m := auth.NewTokenManager("secret-one", time.Hour, clock)
	token, _, err := m.Issue(domain.User{ID: 1, Username: "ana"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		mgr   *auth.TokenManager
		token string
	}{
		{
			name:  "wrong_secret",
			mgr:   auth.NewTokenManager("secret-two", time.Hour, clock),
			token: token,
		},
		{
			name:  "expired",
			mgr:   auth.NewTokenManager("secret-one", time.Hour, func() time.Time { return now.Add(2 * time.Hour) }),
			token: token,
		},
		{
			name:  "garbage",
			mgr:   m,
			token: "not-a-token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.mgr.Parse(tt.token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, auth.ErrInvalidToken))
		})
	}
}

func TestPasswords(t *testing.T) {
	hash, err := auth.HashPassword("hunter2", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	ok, err := auth.CheckPassword(hash, "hunter2")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = auth.CheckPassword(hash, "hunter3")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = auth.CheckPassword("not-a-hash", "hunter2")
	assert.Error(t, err)
}

func TestUserContext(t *testing.T) {
	ctx := context.Background()
	assert.True(t, auth.UserFromContext(ctx).IsAnonymous())
	assert.Empty(t, auth.TokenFromContext(ctx))

	ctx = auth.WithUser(ctx, domain.User{ID: 3, Username: "bo"})
	ctx = auth.WithToken(ctx, "tok")
	assert.Equal(t, int64(3), auth.UserFromContext(ctx).ID)
	assert.Equal(t, "tok", auth.TokenFromContext(ctx))
}
