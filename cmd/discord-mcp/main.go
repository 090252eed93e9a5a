// ABOUTME: Entry point for the Discord MCP adapter.
// ABOUTME: Serves Discord guild, channel, and message tools over MCP.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"

	"github.com/2389/mcp-bridge/internal/config"
	"github.com/2389/mcp-bridge/internal/discord"
	"github.com/2389/mcp-bridge/internal/logging"
	"github.com/2389/mcp-bridge/internal/mcpserver"
	"github.com/2389/mcp-bridge/internal/tools"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
     _ _                       _
  __| (_)___  ___ ___  _ __ __| |      _ __ ___   ___ _ __
 / _' | / __|/ __/ _ \| '__/ _' |_____| '_ ' _ \ / __| '_ \
| (_| | \__ \ (_| (_) | | | (_| |_____| | | | | | (__| |_) |
 \__,_|_|___/\___\___/|_|  \__,_|     |_| |_| |_|\___| .__/
                                                     |_|
`

// getConfigPath returns the path to the adapter config file.
// Priority: DISCORD_MCP_CONFIG env var > XDG_CONFIG_HOME/mcp-bridge/discord.yaml > ~/.config/mcp-bridge/discord.yaml
func getConfigPath() string {
	if envPath := os.Getenv("DISCORD_MCP_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "discord.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "mcp-bridge", "discord.yaml")
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: discord-mcp <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve     Start the MCP server")
		fmt.Println("  version   Print the version")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "version":
		fmt.Println(version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, err := config.LoadDiscord(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.Setup(cfg.Logging)

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Config:  %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("HTTP:    %s\n", cfg.Server.Addr)
	fmt.Println()

	logger.Info("starting discord-mcp",
		"config", configPath,
		"addr", cfg.Server.Addr,
	)

	client, err := discord.NewClient(discord.ClientConfig{
		Token:   cfg.Discord.Token,
		APIBase: cfg.Discord.APIBase,
		Timeout: cfg.Upstream.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("creating discord client: %w", err)
	}

	registry := tools.NewRegistry(logger)
	for _, pack := range discord.Packs(client) {
		if err := registry.RegisterPack(pack); err != nil {
			return fmt.Errorf("registering pack %s: %w", pack.ID, err)
		}
	}

	router := tools.NewRouter(tools.RouterConfig{
		Registry: registry,
		Logger:   logger,
	})

	server, err := mcpserver.NewServer(mcpserver.Config{
		Name:     "discord-mcp",
		Version:  version,
		Registry: registry,
		Router:   router,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}

	return server.Serve(ctx, cfg.Server.Addr)
}
