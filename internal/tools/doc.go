// Package tools provides the tool catalog and dispatch pipeline for the
// MCP adapters.
//
// # Overview
//
// A tool is a named, schema-described operation exposed to MCP clients.
// Related tools ship together as a pack (e.g. the Discord message tools,
// the Google Photos picker tools). Packs are registered once at startup
// and the resulting catalog is immutable.
//
// # Architecture
//
// The package has two main components:
//
//   - Registry: flat name→handler lookup table built from each pack's
//     declarations, with global tool-name collision detection
//   - Router: dispatches a (name, arguments) call to the owning handler
//     and converts every failure into a textual error result
//
// # Tool Routing
//
// When a client calls a tool, the router:
//
//  1. Looks up the tool by name in the registry
//  2. Applies the per-call timeout
//  3. Invokes the handler with the raw JSON arguments
//  4. Wraps the handler's JSON output (or its error) as a Result
//
// Tool names are globally unique; registering a duplicate name is a
// startup configuration error.
//
// # Usage
//
// Create a registry and router:
//
//	registry := tools.NewRegistry(logger)
//	if err := registry.RegisterPack(discord.MessagePack(client)); err != nil { ... }
//	router := tools.NewRouter(tools.RouterConfig{Registry: registry, Logger: logger})
//
// Execute a tool:
//
//	result := router.Call(ctx, "send_message", args)
package tools
