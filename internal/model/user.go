package model

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name, email string) (User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// User represents a registered identity with its credential material.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NormalizeEmail lower-cases and trims an email address.
// Every store lookup and insert goes through it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignupParams contains parameters to register a user.
type SignupParams struct {
	Name     string
	Email    string
	Password string
}

// LoginParams contains login credentials.
type LoginParams struct {
	Email    string
	Password string
}

// Session is the result of a successful login.
type Session struct {
	User      User
	Token     string
	ExpiresAt time.Time
}

// ProfileParams contains editable profile fields.
type ProfileParams struct {
	Name  string
	Email string
}

// ChangePasswordParams contains parameters for a password change.
type ChangePasswordParams struct {
	CurrentPassword string
	NewPassword     string
}
