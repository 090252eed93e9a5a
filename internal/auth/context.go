// ABOUTME: Request-scoped access token propagation for multi-tenant adapters.
// ABOUTME: Provides WithAccessToken/AccessTokenFromContext via context keys.

package auth

import (
	"context"
)

// accessTokenKey is the key type for storing the per-request access token
// in context.Context. A context key, not a shared variable: each call's
// credential is scoped strictly to that call's lifetime.
type accessTokenKey struct{}

// WithAccessToken returns a new context carrying the caller's upstream
// access token. Used by the Google Photos adapter, where every caller
// owns their own account grant.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey{}, token)
}

// AccessTokenFromContext retrieves the access token from the context.
// Returns the empty string if no token was attached.
func AccessTokenFromContext(ctx context.Context) string {
	val := ctx.Value(accessTokenKey{})
	if val == nil {
		return ""
	}
	token, ok := val.(string)
	if !ok {
		return ""
	}
	return token
}
