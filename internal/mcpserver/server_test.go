// ABOUTME: Tests for the MCP HTTP server: handshake, listing, and dispatch.
// ABOUTME: Validates envelope error codes and per-request token propagation.

package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/2389/mcp-bridge/internal/auth"
	"github.com/2389/mcp-bridge/internal/tools"
)

// setupTestRegistry creates a registry with test tools.
func setupTestRegistry(t *testing.T) *tools.Registry {
	t.Helper()
	registry := tools.NewRegistry(slog.Default())

	pack := &tools.Pack{
		ID: "test-pack",
		Tools: []tools.Tool{
			{
				Definition: tools.Definition{
					Name:        "echo",
					Description: "Echoes its input back",
					InputSchema: json.RawMessage(`{"type":"object","properties":{"value":{"type":"string"}}}`),
				},
				Handler: func(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
					return input, nil
				},
			},
			{
				Definition: tools.Definition{
					Name:        "fail",
					Description: "Always fails",
					InputSchema: json.RawMessage(`{"type":"object"}`),
				},
				Handler: func(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
					return nil, errors.New("boom")
				},
			},
			{
				Definition: tools.Definition{
					Name:        "whoami",
					Description: "Reports the context access token",
					InputSchema: json.RawMessage(`{"type":"object"}`),
				},
				Handler: func(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
					return json.Marshal(map[string]string{"token": auth.AccessTokenFromContext(ctx)})
				},
			},
		},
	}
	if err := registry.RegisterPack(pack); err != nil {
		t.Fatalf("failed to register test pack: %v", err)
	}
	return registry
}

func setupTestServer(t *testing.T) *Server {
	t.Helper()
	registry := setupTestRegistry(t)
	router := tools.NewRouter(tools.RouterConfig{
		Registry: registry,
		Logger:   slog.Default(),
		Timeout:  5 * time.Second,
	})
	server, err := NewServer(Config{
		Name:     "test-bridge",
		Version:  "0.0.1",
		Registry: registry,
		Router:   router,
		Logger:   slog.Default(),
	})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return server
}

// postRPC sends a JSON-RPC request body and decodes the response.
func postRPC(t *testing.T, server *Server, body string, headers map[string]string) (*httptest.ResponseRecorder, JSONRPCResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/mcp", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()

	mux := http.NewServeMux()
	server.RegisterRoutes(mux)
	mux.ServeHTTP(rec, req)

	var resp JSONRPCResponse
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, resp
}

func TestInitialize(t *testing.T) {
	server := setupTestServer(t)
	_, resp := postRPC(t, server, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`, nil)

	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	result := resp.Result.(map[string]any)
	if result["protocolVersion"] != protocolVersion {
		t.Errorf("protocolVersion = %v, want %v", result["protocolVersion"], protocolVersion)
	}
	info := result["serverInfo"].(map[string]any)
	if info["name"] != "test-bridge" {
		t.Errorf("serverInfo.name = %v, want test-bridge", info["name"])
	}
}

func TestPing(t *testing.T) {
	server := setupTestServer(t)
	_, resp := postRPC(t, server, `{"jsonrpc":"2.0","id":2,"method":"ping"}`, nil)
	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
}

func TestToolsListSorted(t *testing.T) {
	server := setupTestServer(t)
	_, resp := postRPC(t, server, `{"jsonrpc":"2.0","id":3,"method":"tools/list"}`, nil)

	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	raw, _ := json.Marshal(resp.Result)
	var result ListToolsResult
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if len(result.Tools) != 3 {
		t.Fatalf("got %d tools, want 3", len(result.Tools))
	}
	want := []string{"echo", "fail", "whoami"}
	for i, name := range want {
		if result.Tools[i].Name != name {
			t.Errorf("tools[%d].Name = %q, want %q", i, result.Tools[i].Name, name)
		}
	}
}

// callResult decodes a tools/call result payload.
func callResult(t *testing.T, resp JSONRPCResponse) tools.Result {
	t.Helper()
	raw, _ := json.Marshal(resp.Result)
	var result tools.Result
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("decoding call result: %v", err)
	}
	return result
}

func TestToolsCallSuccess(t *testing.T) {
	server := setupTestServer(t)
	_, resp := postRPC(t, server, `{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"echo","arguments":{"value":"hi"}}}`, nil)

	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	result := callResult(t, resp)
	if result.IsError {
		t.Fatalf("unexpected isError, content %+v", result.Content)
	}
	if len(result.Content) != 1 || result.Content[0].Type != "text" {
		t.Fatalf("content = %+v, want one text item", result.Content)
	}
	var echoed map[string]string
	if err := json.Unmarshal([]byte(result.Content[0].Text), &echoed); err != nil {
		t.Fatalf("decoding echoed text: %v", err)
	}
	if echoed["value"] != "hi" {
		t.Errorf("echoed value = %q, want %q", echoed["value"], "hi")
	}
}

func TestToolsCallFailureIsResultNotFault(t *testing.T) {
	server := setupTestServer(t)
	_, resp := postRPC(t, server, `{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"fail","arguments":{}}}`, nil)

	if resp.Error != nil {
		t.Fatalf("tool failure must not be a JSON-RPC fault, got %+v", resp.Error)
	}
	result := callResult(t, resp)
	if !result.IsError {
		t.Fatal("expected isError result")
	}
}

func TestToolsCallUnknownTool(t *testing.T) {
	server := setupTestServer(t)
	_, resp := postRPC(t, server, `{"jsonrpc":"2.0","id":6,"method":"tools/call","params":{"name":"nope"}}`, nil)

	if resp.Error != nil {
		t.Fatalf("unknown tool must not be a JSON-RPC fault, got %+v", resp.Error)
	}
	result := callResult(t, resp)
	if !result.IsError {
		t.Fatal("expected isError result for unknown tool")
	}
}

func TestToolsCallMissingName(t *testing.T) {
	server := setupTestServer(t)
	_, resp := postRPC(t, server, `{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{}}`, nil)

	if resp.Error == nil || resp.Error.Code != JSONRPCInvalidParams {
		t.Fatalf("error = %+v, want code %d", resp.Error, JSONRPCInvalidParams)
	}
}

func TestTokenHeaderPropagation(t *testing.T) {
	server := setupTestServer(t)
	_, resp := postRPC(t, server, `{"jsonrpc":"2.0","id":8,"method":"tools/call","params":{"name":"whoami","arguments":{}}}`,
		map[string]string{"x-auth-token": "per-request-token"})

	result := callResult(t, resp)
	var payload map[string]string
	if err := json.Unmarshal([]byte(result.Content[0].Text), &payload); err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	if payload["token"] != "per-request-token" {
		t.Errorf("token = %q, want %q", payload["token"], "per-request-token")
	}
}

func TestTokenArgumentFallback(t *testing.T) {
	server := setupTestServer(t)
	_, resp := postRPC(t, server, `{"jsonrpc":"2.0","id":9,"method":"tools/call","params":{"name":"whoami","arguments":{"access_token":"arg-token"}}}`, nil)

	result := callResult(t, resp)
	var payload map[string]string
	if err := json.Unmarshal([]byte(result.Content[0].Text), &payload); err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	if payload["token"] != "arg-token" {
		t.Errorf("token = %q, want %q", payload["token"], "arg-token")
	}
}

func TestParseError(t *testing.T) {
	server := setupTestServer(t)
	_, resp := postRPC(t, server, `{not json`, nil)

	if resp.Error == nil || resp.Error.Code != JSONRPCParseError {
		t.Fatalf("error = %+v, want code %d", resp.Error, JSONRPCParseError)
	}
}

func TestInvalidVersion(t *testing.T) {
	server := setupTestServer(t)
	_, resp := postRPC(t, server, `{"jsonrpc":"1.0","id":10,"method":"ping"}`, nil)

	if resp.Error == nil || resp.Error.Code != JSONRPCInvalidRequest {
		t.Fatalf("error = %+v, want code %d", resp.Error, JSONRPCInvalidRequest)
	}
}

func TestMethodNotFound(t *testing.T) {
	server := setupTestServer(t)
	_, resp := postRPC(t, server, `{"jsonrpc":"2.0","id":11,"method":"resources/list"}`, nil)

	if resp.Error == nil || resp.Error.Code != JSONRPCMethodNotFound {
		t.Fatalf("error = %+v, want code %d", resp.Error, JSONRPCMethodNotFound)
	}
}

func TestNotificationAccepted(t *testing.T) {
	server := setupTestServer(t)
	rec, _ := postRPC(t, server, `{"jsonrpc":"2.0","method":"notifications/initialized"}`, nil)

	if rec.Code != http.StatusAccepted {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusAccepted)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("notification response must have no body, got %q", rec.Body.String())
	}
}

func TestGetMethodNotAllowed(t *testing.T) {
	server := setupTestServer(t)
	mux := http.NewServeMux()
	server.RegisterRoutes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/mcp", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestHealth(t *testing.T) {
	server := setupTestServer(t)
	mux := http.NewServeMux()
	server.RegisterRoutes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var health map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("decoding health: %v", err)
	}
	if health["status"] != "ok" {
		t.Errorf("status = %v, want ok", health["status"])
	}
	if health["tools"] != float64(3) {
		t.Errorf("tools = %v, want 3", health["tools"])
	}
}
