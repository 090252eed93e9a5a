// ABOUTME: Configuration loading and parsing for the MCP adapters.
// ABOUTME: Supports YAML files with environment variable expansion and duration parsing.

package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents an adapter configuration. Both adapters share the
// server, upstream, and logging sections; discord and google sections
// are validated only by the adapter that needs them.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Discord  DiscordConfig  `yaml:"discord"`
	Google   GoogleConfig   `yaml:"google"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds the HTTP listen address.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DiscordConfig holds the bot credentials and API base.
type DiscordConfig struct {
	Token   string `yaml:"token"`
	APIBase string `yaml:"api_base"`
}

// GoogleConfig holds the OAuth client credentials for token refresh.
type GoogleConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RefreshToken string `yaml:"refresh_token"`
	TokenURI     string `yaml:"token_uri"`
}

// UpstreamConfig holds timing configuration for upstream API calls.
type UpstreamConfig struct {
	Timeout time.Duration `yaml:"-"`

	// Raw string value for YAML unmarshaling
	TimeoutRaw string `yaml:"timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// LoadDiscord reads a discord-mcp configuration file. Environment
// variables in the format ${VAR_NAME} are expanded. Duration strings
// are parsed into time.Duration values.
func LoadDiscord(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.validateDiscord(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// LoadPhotos reads a photos-mcp configuration file with the same
// expansion and parsing rules as LoadDiscord.
func LoadPhotos(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.validatePhotos(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := parseDurations(&cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	if err := cfg.validateCommon(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// validateCommon checks the sections both adapters need.
func (c *Config) validateCommon() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be \"text\" or \"json\", got %q", c.Logging.Format)
	}
	return nil
}

// validateDiscord checks the fields the discord-mcp adapter needs.
func (c *Config) validateDiscord() error {
	if c.Discord.Token == "" {
		return fmt.Errorf("discord.token is required")
	}
	return nil
}

// validatePhotos checks the fields the photos-mcp adapter needs. All
// missing credential fields are reported together so an operator fixes
// the config in one pass.
func (c *Config) validatePhotos() error {
	var missing []string
	if c.Google.RefreshToken == "" {
		missing = append(missing, "google.refresh_token")
	}
	if c.Google.ClientID == "" {
		missing = append(missing, "google.client_id")
	}
	if c.Google.ClientSecret == "" {
		missing = append(missing, "google.client_secret")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	var err error

	if cfg.Upstream.TimeoutRaw != "" {
		cfg.Upstream.Timeout, err = time.ParseDuration(cfg.Upstream.TimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing upstream.timeout %q: %w", cfg.Upstream.TimeoutRaw, err)
		}
	}

	return nil
}
