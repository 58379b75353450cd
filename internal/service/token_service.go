package service

import (
	"fmt"
	"time"

	"github.com/dtroode/eventhub-server/internal/logger"
	"github.com/dtroode/eventhub-server/internal/model"
)

// TokenService is the single entry point for issuing and validating
// session tokens. Guard, session middleware and handlers all go through it.
type TokenService struct {
	manager model.TokenManager
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, logger: logger}
}

// Issue mints a session token for user.
func (s *TokenService) Issue(user model.User) (string, time.Time, error) {
	token, expiresAt, err := s.manager.Issue(user.ID, user.Email)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("issue session: %w", err)
	}
	return token, expiresAt, nil
}

// Validate returns the claims of a valid token. It fails closed: any
// failure, including a panicking manager, yields model.ErrInvalidToken.
func (s *TokenService) Validate(token string) (claims model.SessionClaims, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Token service: validator panicked", "panic", r)
			claims, err = model.SessionClaims{}, model.ErrInvalidToken
		}
	}()

	if token == "" {
		return model.SessionClaims{}, model.ErrInvalidToken
	}

	claims, err = s.manager.Validate(token)
	if err != nil {
		s.logger.Debug("Token service: rejected session token", "error", err.Error())
		return model.SessionClaims{}, model.ErrInvalidToken
	}

	return claims, nil
}
