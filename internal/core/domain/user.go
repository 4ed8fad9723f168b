// internal/core/domain/user.go
package domain

import (
	"strings"
	"time"
)

// GuestID is the id carried by the anonymous identity
const GuestID int64 = -1

// User is the identity attached to a request
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Anonymous bool   `json:"anonymous"`
}

// Guest returns the anonymous identity
func Guest() User {
	return User{ID: GuestID, Username: "Guest", Anonymous: true}
}

// IsAnonymous reports whether the identity is unauthenticated
func (u User) IsAnonymous() bool {
	return u.Anonymous || u.ID <= 0
}

// UserRecord is the stored account, including the password hash
type UserRecord struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// User strips the credentials from a stored account
func (r *UserRecord) User() User {
	return User{ID: r.ID, Username: r.Username}
}

// NormalizeUsername trims and lowercases a username for storage and lookup
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Session is the result of a successful login
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}
