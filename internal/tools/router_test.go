// ABOUTME: Tests for the tool call router covering dispatch, errors, and panics.
// ABOUTME: Verifies no call path ever escapes the router as a crash.

package tools

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func newTestRouter(t *testing.T, packs ...*Pack) *Router {
	t.Helper()
	registry := NewRegistry(slog.Default())
	for _, p := range packs {
		if err := registry.RegisterPack(p); err != nil {
			t.Fatalf("register pack %s: %v", p.ID, err)
		}
	}
	return NewRouter(RouterConfig{Registry: registry, Logger: slog.Default()})
}

func TestRouterCallSuccess(t *testing.T) {
	router := newTestRouter(t, &Pack{
		ID: "test",
		Tools: []Tool{{
			Definition: Definition{Name: "echo", Description: "echo input", InputSchema: json.RawMessage(`{"type":"object"}`)},
			Handler: func(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
				return input, nil
			},
		}},
	})

	result := router.Call(context.Background(), "echo", json.RawMessage(`{"hello":"world"}`))
	if result.IsError {
		t.Fatalf("unexpected error result: %+v", result)
	}
	if len(result.Content) != 1 || result.Content[0].Type != "text" {
		t.Fatalf("unexpected content: %+v", result.Content)
	}
	if result.Content[0].Text != `{"hello":"world"}` {
		t.Errorf("unexpected text: %s", result.Content[0].Text)
	}
}

func TestRouterCallUnknownTool(t *testing.T) {
	router := newTestRouter(t)

	result := router.Call(context.Background(), "does_not_exist", nil)
	if !result.IsError {
		t.Fatal("expected error result for unknown tool")
	}
	if !strings.Contains(result.Content[0].Text, "does_not_exist") {
		t.Errorf("error text should contain the tool name, got %q", result.Content[0].Text)
	}
}

func TestRouterCallHandlerError(t *testing.T) {
	router := newTestRouter(t, &Pack{
		ID: "test",
		Tools: []Tool{{
			Definition: Definition{Name: "broken", Description: "always fails"},
			Handler: func(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
				return nil, errors.New("upstream exploded")
			},
		}},
	})

	result := router.Call(context.Background(), "broken", json.RawMessage(`{}`))
	if !result.IsError {
		t.Fatal("expected error result")
	}
	if !strings.Contains(result.Content[0].Text, "upstream exploded") {
		t.Errorf("error text should carry the handler error, got %q", result.Content[0].Text)
	}
	if !strings.HasPrefix(result.Content[0].Text, "Error: ") {
		t.Errorf("error text should be prefixed with 'Error: ', got %q", result.Content[0].Text)
	}
}

func TestRouterCallRecoversPanic(t *testing.T) {
	router := newTestRouter(t, &Pack{
		ID: "test",
		Tools: []Tool{{
			Definition: Definition{Name: "panicky", Description: "panics"},
			Handler: func(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
				panic("boom")
			},
		}},
	})

	result := router.Call(context.Background(), "panicky", json.RawMessage(`{}`))
	if !result.IsError {
		t.Fatal("expected error result from panicking handler")
	}
	if !strings.Contains(result.Content[0].Text, "boom") {
		t.Errorf("error text should mention the panic, got %q", result.Content[0].Text)
	}
}

func TestRouterCallNilInputBecomesEmptyObject(t *testing.T) {
	var got string
	router := newTestRouter(t, &Pack{
		ID: "test",
		Tools: []Tool{{
			Definition: Definition{Name: "capture", Description: "captures input"},
			Handler: func(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
				got = string(input)
				return json.RawMessage(`{}`), nil
			},
		}},
	})

	router.Call(context.Background(), "capture", nil)
	if got != "{}" {
		t.Errorf("handler received %q, want empty object", got)
	}
}

func TestRouterCallTimeout(t *testing.T) {
	registry := NewRegistry(slog.Default())
	err := registry.RegisterPack(&Pack{
		ID: "test",
		Tools: []Tool{{
			Definition: Definition{Name: "slow", Description: "blocks until cancelled"},
			Handler: func(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			},
		}},
	})
	if err != nil {
		t.Fatalf("register pack: %v", err)
	}
	router := NewRouter(RouterConfig{
		Registry: registry,
		Logger:   slog.Default(),
		Timeout:  10 * time.Millisecond,
	})

	done := make(chan *Result, 1)
	go func() { done <- router.Call(context.Background(), "slow", nil) }()

	select {
	case result := <-done:
		if !result.IsError {
			t.Fatal("expected timeout error result")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("router did not enforce per-call timeout")
	}
}
