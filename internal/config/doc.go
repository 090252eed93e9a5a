// Package config handles configuration loading for the MCP adapters.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable
// expansion. Both adapters share one Config shape; LoadDiscord and
// LoadPhotos apply adapter-specific validation on top of the common
// checks.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	discord:
//	  token: "${DISCORD_TOKEN}"
//
// Syntax: ${VAR_NAME}. Unset variables expand to the empty string,
// which then fails required-field validation.
//
// # Duration Parsing
//
// Duration values use Go's time.ParseDuration syntax:
//
//	upstream:
//	  timeout: "30s"
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  addr: "0.0.0.0:8080"
//
// Discord (discord-mcp only):
//
//	discord:
//	  token: "${DISCORD_TOKEN}"   # Required
//	  api_base: ""                # Defaults to the v10 API
//
// Google (photos-mcp only):
//
//	google:
//	  client_id: "${GOOGLE_CLIENT_ID}"
//	  client_secret: "${GOOGLE_CLIENT_SECRET}"
//	  refresh_token: "${GOOGLE_REFRESH_TOKEN}"
//	  token_uri: ""               # Defaults to the Google token endpoint
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// # Validation
//
// Missing Google credential fields are reported together in one error
// rather than first-only, so a misconfigured deployment is fixed in a
// single pass.
//
// # Usage
//
//	cfg, err := config.LoadDiscord("/etc/mcp-bridge/discord.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
