// Package auth resolves upstream API credentials for the MCP adapters.
//
// # Credential Models
//
// The two adapters authenticate differently:
//
//   - Discord: a single static bot token, fixed at process start.
//     BotHeaders builds the "Bot <token>" Authorization header; an absent
//     token is fatal at startup.
//
//   - Google Photos: a short-lived OAuth access token carried per request.
//     Clients supply it via the x-auth-token header (or an access_token
//     argument); the server attaches it to the request context with
//     WithAccessToken, and handlers read it back with
//     AccessTokenFromContext. Tokens never live in shared mutable state,
//     so concurrent calls from different accounts cannot bleed into each
//     other.
//
// Refreshing expired Google tokens from the configured client
// credentials is handled by the photos package on top of
// golang.org/x/oauth2.
package auth
