// ABOUTME: Routes tool calls to registered handlers with timeouts and panic recovery.
// ABOUTME: Converts every handler failure into a textual error result.

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout is the default per-call timeout for tool execution.
const DefaultTimeout = 30 * time.Second

// Router dispatches tool calls against a Registry. A call never
// escalates past the router: unknown names, handler errors, timeouts,
// and panics all come back as error results.
type Router struct {
	registry *Registry
	logger   *slog.Logger
	timeout  time.Duration
}

// RouterConfig contains configuration options for the Router.
type RouterConfig struct {
	Registry *Registry
	Logger   *slog.Logger
	Timeout  time.Duration
}

// NewRouter creates a new Router with the given configuration.
func NewRouter(cfg RouterConfig) *Router {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Router{
		registry: cfg.Registry,
		logger:   cfg.Logger,
		timeout:  timeout,
	}
}

// Call looks up the named tool and invokes its handler with the given
// raw JSON arguments. The returned Result is always non-nil.
func (r *Router) Call(ctx context.Context, name string, input json.RawMessage) *Result {
	requestID := uuid.NewString()

	tool, ok := r.registry.Get(name)
	if !ok {
		r.logger.Warn("tool not found in registry",
			"tool_name", name,
			"request_id", requestID,
		)
		return ErrorResult(fmt.Sprintf("unknown tool: %s", name))
	}

	r.logger.Info("→ dispatching tool call",
		"tool_name", name,
		"request_id", requestID,
	)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	output, err := r.invoke(ctx, tool, input, name, requestID)
	if err != nil {
		r.logger.Warn("tool call failed",
			"tool_name", name,
			"request_id", requestID,
			"error", err,
		)
		return ErrorResult(fmt.Sprintf("Error: %s", err))
	}

	r.logger.Info("← tool call succeeded",
		"tool_name", name,
		"request_id", requestID,
	)
	return TextResult(string(output))
}

// invoke runs the handler, recovering panics so a misbehaving tool
// cannot take the process down.
func (r *Router) invoke(ctx context.Context, tool Tool, input json.RawMessage, name, requestID string) (output json.RawMessage, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("tool handler panicked",
				"tool_name", name,
				"request_id", requestID,
				"panic", rec,
			)
			err = fmt.Errorf("tool %s panicked: %v", name, rec)
		}
	}()

	if input == nil {
		input = json.RawMessage(`{}`)
	}
	return tool.Handler(ctx, input)
}
