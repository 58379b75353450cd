package model

import "context"

// ContextManager stores and loads the authenticated session in a request context.
type ContextManager interface {
	SetSessionToContext(ctx context.Context, claims SessionClaims) context.Context
	GetSessionFromContext(ctx context.Context) (SessionClaims, bool)
}
