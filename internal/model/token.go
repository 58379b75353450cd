package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionClaims are the identity claims carried by a session token.
type SessionClaims struct {
	UserID    uuid.UUID
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenManager issues and validates signed session tokens.
type TokenManager interface {
	Issue(userID uuid.UUID, email string) (token string, expiresAt time.Time, err error)
	Validate(token string) (SessionClaims, error)
}

// PasswordHasher creates and verifies salted password hashes.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, storedHash string) bool
}
