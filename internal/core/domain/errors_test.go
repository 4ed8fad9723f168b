package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ammerola/roadie-bag/internal/core/domain"
)

func TestError_Kinds(t *testing.T) {
	cause := errors.New("connection refused")
	storage := domain.Storage("insert item", cause)
	wrapped := fmt.Errorf("service: %w", storage)

	assert.True(t, domain.IsKind(wrapped, domain.KindStorage))
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, domain.KindStorage, domain.KindOf(wrapped))
	assert.Equal(t, domain.ErrorKind(""), domain.KindOf(cause))
}

func TestError_IsMatchesKind(t *testing.T) {
	err := fmt.Errorf("gate: %w", domain.ErrUnauthorized())

	assert.ErrorIs(t, err, domain.ErrUnauthorized())
	assert.NotErrorIs(t, err, domain.NotFound("item", 1))
}

func TestError_Message(t *testing.T) {
	err := domain.MultiValidation(map[string]string{
		"size": "Item size must be set",
		"name": "Item name can't be empty",
	})

	assert.Equal(t, "Multiple errors (name: Item name can't be empty; size: Item size must be set)", err.Error())
	assert.Equal(t, "item 7 not found", domain.NotFound("item", 7).Error())
}

func TestGuest(t *testing.T) {
	g := domain.Guest()
	assert.True(t, g.IsAnonymous())
	assert.Equal(t, "Guest", g.Username)

	u := domain.User{ID: 3, Username: "ana"}
	assert.False(t, u.IsAnonymous())
	assert.Equal(t, "ana", domain.NormalizeUsername("  Ana "))
}
