package mocks

import (
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/eventhub-server/internal/model"
)

var (
	_ model.TokenManager   = (*TokenManager)(nil)
	_ model.PasswordHasher = (*PasswordHasher)(nil)
)

type TokenManager struct {
	mock.Mock
}

func (m *TokenManager) Issue(userID uuid.UUID, email string) (string, time.Time, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *TokenManager) Validate(token string) (model.SessionClaims, error) {
	args := m.Called(token)
	return args.Get(0).(model.SessionClaims), args.Error(1)
}

type PasswordHasher struct {
	mock.Mock
}

func (m *PasswordHasher) Hash(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Verify(plaintext, storedHash string) bool {
	args := m.Called(plaintext, storedHash)
	return args.Bool(0)
}
