// ABOUTME: MCP-compatible HTTP server speaking JSON-RPC 2.0 over POST.
// ABOUTME: Supports initialize, ping, tools/list, and tools/call.

package mcpserver

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/2389/mcp-bridge/internal/auth"
	"github.com/2389/mcp-bridge/internal/tools"
)

// protocolVersion is the MCP protocol revision we advertise in
// initialize responses.
const protocolVersion = "2024-11-05"

// MaxRequestBodySize is the maximum allowed size for request bodies (1MB).
const MaxRequestBodySize = 1 << 20

// accessTokenHeader carries the caller's per-request upstream token.
// Used by the Google Photos adapter for multi-tenant deployments.
const accessTokenHeader = "x-auth-token"

// JSON-RPC 2.0 types

// JSONRPCRequest represents a JSON-RPC 2.0 request.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC 2.0 response.
type JSONRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *JSONRPCError   `json:"error,omitempty"`
}

// JSONRPCError represents a JSON-RPC 2.0 error object.
type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Standard JSON-RPC error codes
const (
	JSONRPCParseError     = -32700
	JSONRPCInvalidRequest = -32600
	JSONRPCMethodNotFound = -32601
	JSONRPCInvalidParams  = -32602
	JSONRPCInternalError  = -32603
)

// ListToolsResult is the result for tools/list.
type ListToolsResult struct {
	Tools []tools.Definition `json:"tools"`
}

// CallToolParams are the params for tools/call.
type CallToolParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// Config holds configuration for the MCP server.
type Config struct {
	Name     string // server name advertised in initialize
	Version  string
	Registry *tools.Registry
	Router   *tools.Router
	Logger   *slog.Logger
}

// Server exposes a tool registry over the MCP Streamable HTTP
// transport. Tool failures always travel as isError text results;
// JSON-RPC faults are reserved for envelope problems.
type Server struct {
	name     string
	version  string
	registry *tools.Registry
	router   *tools.Router
	logger   *slog.Logger
}

// NewServer creates a new MCP server with the given configuration.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Registry == nil {
		return nil, errors.New("registry is required")
	}
	if cfg.Router == nil {
		return nil, errors.New("router is required")
	}
	name := cfg.Name
	if name == "" {
		name = "mcp-bridge"
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		name:     name,
		version:  version,
		registry: cfg.Registry,
		router:   cfg.Router,
		logger:   logger,
	}, nil
}

// RegisterRoutes registers the MCP endpoint and health check on the
// given ServeMux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/mcp", s.handleMCP)
	mux.HandleFunc("/health", s.handleHealth)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"name":   s.name,
		"tools":  s.registry.Len(),
	})
}

func (s *Server) handleMCP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	s.handlePost(w, r)
}

// handlePost processes JSON-RPC messages sent via HTTP POST.
func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxRequestBodySize+1))
	if err != nil {
		s.sendError(w, nil, JSONRPCParseError, "failed to read request body", nil)
		return
	}
	if int64(len(body)) > MaxRequestBodySize {
		s.sendError(w, nil, JSONRPCInvalidRequest, "request body too large", nil)
		return
	}

	var req JSONRPCRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.sendError(w, nil, JSONRPCParseError, "invalid JSON", nil)
		return
	}
	if req.JSONRPC != "2.0" {
		s.sendError(w, req.ID, JSONRPCInvalidRequest, "invalid JSON-RPC version", nil)
		return
	}

	isNotification := len(req.ID) == 0 || string(req.ID) == "null"

	s.logger.Debug("MCP request",
		"method", req.Method,
		"is_notification", isNotification,
	)

	// Notifications get HTTP 202 and no body.
	if isNotification {
		if !strings.HasPrefix(req.Method, "notifications/") {
			s.logger.Warn("received notification for non-notification method", "method", req.Method)
		}
		w.WriteHeader(http.StatusAccepted)
		return
	}

	switch req.Method {
	case "initialize":
		s.handleInitialize(w, req)
	case "ping":
		s.sendResult(w, req.ID, map[string]any{})
	case "tools/list":
		s.handleToolsList(w, req)
	case "tools/call":
		s.handleToolsCall(w, r, req)
	default:
		s.sendError(w, req.ID, JSONRPCMethodNotFound, "method not found", nil)
	}
}

// handleInitialize handles the MCP initialize handshake.
func (s *Server) handleInitialize(w http.ResponseWriter, req JSONRPCRequest) {
	s.sendResult(w, req.ID, map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    s.name,
			"version": s.version,
		},
	})
}

// handleToolsList handles tools/list requests.
func (s *Server) handleToolsList(w http.ResponseWriter, req JSONRPCRequest) {
	defs := s.registry.All()

	s.logger.Debug("tools/list", "count", len(defs))
	s.sendResult(w, req.ID, ListToolsResult{Tools: defs})
}

// handleToolsCall handles tools/call requests. Tool-level failures are
// returned inside the result with isError set; only malformed params
// produce a JSON-RPC fault.
func (s *Server) handleToolsCall(w http.ResponseWriter, r *http.Request, req JSONRPCRequest) {
	var params CallToolParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			s.sendError(w, req.ID, JSONRPCInvalidParams, "invalid params", nil)
			return
		}
	}
	if params.Name == "" {
		s.sendError(w, req.ID, JSONRPCInvalidParams, "tool name is required", nil)
		return
	}

	// The per-request token comes from the x-auth-token header, or from
	// an access_token argument for clients that cannot set headers.
	ctx := r.Context()
	token := r.Header.Get(accessTokenHeader)
	if token == "" && len(params.Arguments) > 0 {
		var embedded struct {
			AccessToken string `json:"access_token"`
		}
		if json.Unmarshal(params.Arguments, &embedded) == nil {
			token = embedded.AccessToken
		}
	}
	if token != "" {
		ctx = auth.WithAccessToken(ctx, token)
	}

	result := s.router.Call(ctx, params.Name, params.Arguments)

	s.logger.Debug("tools/call complete",
		"tool_name", params.Name,
		"is_error", result.IsError,
	)
	s.sendResult(w, req.ID, result)
}

// sendResult sends a successful JSON-RPC response.
func (s *Server) sendResult(w http.ResponseWriter, id json.RawMessage, result any) {
	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Warn("failed to encode JSON-RPC response", "error", err)
	}
}

// sendError sends a JSON-RPC error response.
func (s *Server) sendError(w http.ResponseWriter, id json.RawMessage, code int, message string, data any) {
	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &JSONRPCError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Warn("failed to encode JSON-RPC error response", "error", err)
	}
}
