package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	servermocks "github.com/dtroode/eventhub-server/internal/mocks"
	"github.com/dtroode/eventhub-server/internal/model"
	"github.com/dtroode/eventhub-server/internal/testutil"
)

func TestTokenService_Validate(t *testing.T) {
	claims := model.SessionClaims{UserID: uuid.New(), Email: "a@b.co", ExpiresAt: time.Now().Add(time.Hour)}

	t.Run("valid", func(t *testing.T) {
		tokMan := &servermocks.TokenManager{}
		tokMan.On("Validate", "good").Return(claims, nil)
		s := NewTokenService(tokMan, testutil.MakeNoopLogger())

		got, err := s.Validate("good")
		require.NoError(t, err)
		assert.Equal(t, claims, got)
	})

	t.Run("empty token skips manager", func(t *testing.T) {
		tokMan := &servermocks.TokenManager{}
		s := NewTokenService(tokMan, testutil.MakeNoopLogger())

		_, err := s.Validate("")
		require.ErrorIs(t, err, model.ErrInvalidToken)
		tokMan.AssertNotCalled(t, "Validate", "")
	})

	t.Run("manager error is invalid token", func(t *testing.T) {
		tokMan := &servermocks.TokenManager{}
		tokMan.On("Validate", "bad").Return(model.SessionClaims{}, errors.New("boom"))
		s := NewTokenService(tokMan, testutil.MakeNoopLogger())

		_, err := s.Validate("bad")
		require.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("panic fails closed", func(t *testing.T) {
		tokMan := &servermocks.TokenManager{}
		tokMan.On("Validate", "weird").Panic("unexpected")
		s := NewTokenService(tokMan, testutil.MakeNoopLogger())

		got, err := s.Validate("weird")
		require.ErrorIs(t, err, model.ErrInvalidToken)
		assert.Equal(t, model.SessionClaims{}, got)
	})
}
