// ABOUTME: Discord Bot API client wiring: base URL, bot-token headers, logging.
// ABOUTME: All Discord packs share one Client built at startup.

package discord

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/2389/mcp-bridge/internal/auth"
	"github.com/2389/mcp-bridge/internal/tools"
	"github.com/2389/mcp-bridge/internal/upstream"
)

// DefaultAPIBase is the Discord Bot API base URL.
const DefaultAPIBase = "https://discord.com/api/v10"

// Client wraps the upstream REST client with Discord bot authentication.
type Client struct {
	api    *upstream.Client
	logger *slog.Logger
}

// ClientConfig contains the options for constructing a Client.
type ClientConfig struct {
	Token   string // bot token, required
	APIBase string // defaults to DefaultAPIBase
	Timeout time.Duration
	Logger  *slog.Logger
}

// NewClient creates a Discord API client. The bot token is validated
// once here so a missing token fails at startup rather than per call.
func NewClient(cfg ClientConfig) (*Client, error) {
	headers, err := auth.BotHeaders(cfg.Token)
	if err != nil {
		return nil, err
	}

	base := cfg.APIBase
	if base == "" {
		base = DefaultAPIBase
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		api: upstream.NewClient(upstream.Config{
			BaseURL: base,
			Headers: func(ctx context.Context) (http.Header, error) { return headers, nil },
			Timeout: cfg.Timeout,
			Logger:  logger,
		}),
		logger: logger,
	}, nil
}

// Packs returns every Discord tool pack bound to the client, in
// registration order.
func Packs(c *Client) []*tools.Pack {
	return []*tools.Pack{
		ServerPack(c),
		MessagePack(c),
		ChannelPack(c),
		UserPack(c),
	}
}
