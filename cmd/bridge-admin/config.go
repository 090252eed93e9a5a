// ABOUTME: Configuration loading for the bridge-admin CLI.
// ABOUTME: Loads TOML config from an XDG path with environment variable expansion.

package main

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server ServerConfig `toml:"server"`
	Auth   AuthConfig   `toml:"auth"`
}

type ServerConfig struct {
	URL string `toml:"url"`
}

type AuthConfig struct {
	// AccessToken is sent as x-auth-token on tools/call, for adapters
	// that take per-request upstream tokens.
	AccessToken string `toml:"access_token"`
}

// getConfigPath returns the path to the admin config file.
// Priority: BRIDGE_ADMIN_CONFIG env var > XDG_CONFIG_HOME/mcp-bridge/admin.toml > ~/.config/mcp-bridge/admin.toml
func getConfigPath() string {
	if envPath := os.Getenv("BRIDGE_ADMIN_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "admin.toml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "mcp-bridge", "admin.toml")
}

// loadConfig reads config from the given path, expanding environment
// variables. A missing file is not an error; defaults apply.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{URL: "http://localhost:8080"},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := expandEnvVars(string(data))
	if _, err := toml.Decode(expanded, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// expandEnvVars replaces ${VAR} with environment variable values.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		return os.Getenv(varName)
	})
}

// Validate checks that required config fields are present and valid.
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server.url is required")
	}
	u, err := url.Parse(c.Server.URL)
	if err != nil {
		return fmt.Errorf("server.url is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server.url must use http or https scheme")
	}
	return nil
}
