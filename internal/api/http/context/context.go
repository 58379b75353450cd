package context

import (
	"context"

	"github.com/dtroode/eventhub-server/internal/model"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "auth"

type sessionKey struct{}

// Manager represents an HTTP request context manager for session claims.
// Claims live in the request context only, never in shared state.
type Manager struct{}

var _ model.ContextManager = (*Manager)(nil)

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetSessionToContext returns a copy of ctx carrying claims.
func (m *Manager) SetSessionToContext(ctx context.Context, claims model.SessionClaims) context.Context {
	return context.WithValue(ctx, sessionKey{}, claims)
}

// GetSessionFromContext returns the claims stored by SetSessionToContext.
func (m *Manager) GetSessionFromContext(ctx context.Context) (model.SessionClaims, bool) {
	claims, ok := ctx.Value(sessionKey{}).(model.SessionClaims)
	if !ok {
		return model.SessionClaims{}, false
	}
	return claims, true
}
