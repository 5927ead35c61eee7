package domain

import (
	"context"
	"time"
)

// User represents a registered account. ID never leaves the server; UID is the
// only reference exposed to clients.
type User struct {
	ID           int64
	UID          string
	Email        string
	Username     *string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Summary returns the public author view of the user.
func (u *User) Summary() *UserSummary {
	return &UserSummary{UID: u.UID, Username: u.Username}
}

// UserSummary is the author information embedded in posts and comments.
type UserSummary struct {
	UID      string
	Username *string
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByUID(ctx context.Context, uid string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}
