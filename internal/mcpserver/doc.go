// Package mcpserver exposes a tool registry to MCP clients over HTTP.
//
// # Protocol
//
// A single POST endpoint at /mcp speaks JSON-RPC 2.0:
//
//   - initialize: handshake, advertises the tools capability
//   - ping: liveness check
//   - tools/list: the full sorted catalog with input schemas
//   - tools/call: dispatch one tool invocation
//   - notifications/*: accepted with HTTP 202 and no body
//
// JSON-RPC faults (-32700 parse error, -32601 method not found, and so
// on) are reserved for envelope problems. A failing tool never faults:
// the failure travels inside the tools/call result as a text content
// item with isError set, so MCP clients can show it to the model.
//
// # Per-request credentials
//
// tools/call reads an optional x-auth-token header (or an access_token
// argument) and places it on the request context via
// auth.WithAccessToken. Handlers that support per-request tokens, like
// the Google Photos packs, pick it up from there.
//
// # Health
//
// GET /health reports status and the catalog size for load balancers
// and the admin CLI.
package mcpserver
