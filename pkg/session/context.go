package session

import (
	"context"

	"github.com/guideshare/guideshare/pkg/token"
)

type identityContextKey struct{}

// WithIdentity adds the verified caller identity to the context.
func WithIdentity(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, identityContextKey{}, claims)
}

// IdentityFromContext retrieves the verified caller identity from the
// context. A missing identity means the caller is anonymous; there is
// no partially-trusted state in between.
func IdentityFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(identityContextKey{}).(*token.Claims)
	if !ok || claims == nil {
		return nil, false
	}
	return claims, true
}
