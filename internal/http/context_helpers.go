package httpx

import (
	"context"

	domainauth "github.com/antly/antly-api/internal/domain/auth"
)

// callerKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type callerKey struct{}

// WithCaller returns a child context that carries the resolved caller.
// If claims is nil, the original ctx is returned unchanged.
func WithCaller(ctx context.Context, claims *domainauth.Claims) context.Context {
	if claims == nil {
		return ctx
	}
	return context.WithValue(ctx, callerKey{}, claims)
}

// CallerFromContext returns the caller placed by RequireRole or OptionalAuth.
// Handlers scope ownership with claims.Subject.
func CallerFromContext(ctx context.Context) (*domainauth.Claims, bool) {
	if claims, ok := ctx.Value(callerKey{}).(*domainauth.Claims); ok && claims != nil {
		return claims, true
	}
	return nil, false
}
