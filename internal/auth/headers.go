// ABOUTME: Header builders for authenticating upstream REST calls.
// ABOUTME: Discord bot tokens and bearer access tokens share the same shape.

package auth

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingToken indicates no credential was available for an upstream call.
var ErrMissingToken = errors.New("missing credential")

// BotHeaders returns the standard headers for Discord Bot API calls.
// The token is fixed at process start; an empty token is a configuration
// error surfaced at startup, not per call.
func BotHeaders(token string) (http.Header, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: discord bot token", ErrMissingToken)
	}
	h := make(http.Header)
	h.Set("Authorization", "Bot "+token)
	h.Set("Content-Type", "application/json")
	return h, nil
}

// BearerHeaders returns headers carrying an OAuth bearer access token.
func BearerHeaders(token string) (http.Header, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: access token", ErrMissingToken)
	}
	h := make(http.Header)
	h.Set("Authorization", "Bearer "+token)
	h.Set("Content-Type", "application/json")
	return h, nil
}
