// ABOUTME: Google Photos service wiring: OAuth credentials, token resolution, clients.
// ABOUTME: Per-request access tokens come from context; refresh is the fallback.

package photos

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/2389/mcp-bridge/internal/auth"
	"github.com/2389/mcp-bridge/internal/tools"
	"github.com/2389/mcp-bridge/internal/upstream"
)

// Packs returns every tool pack backed by the service.
func Packs(s *Service) []*tools.Pack {
	return []*tools.Pack{
		PickerPack(s),
		LibraryPack(s),
	}
}

// API base URLs.
const (
	DefaultLibraryBase = "https://photoslibrary.googleapis.com/v1"
	DefaultPickerBase  = "https://photospicker.googleapis.com/v1"
	DefaultTokenURI    = "https://oauth2.googleapis.com/token"
)

// Credentials holds the OAuth client triplet used to mint access tokens
// when a caller does not supply one per request.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	TokenURI     string
}

// Validate reports every missing required field, not just the first.
func (c Credentials) Validate() error {
	var missing []string
	if c.RefreshToken == "" {
		missing = append(missing, "refresh_token")
	}
	if c.ClientID == "" {
		missing = append(missing, "client_id")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "client_secret")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required OAuth credentials: %s", strings.Join(missing, ", "))
	}
	return nil
}

// oauthConfig builds the oauth2 client config for token refresh.
func (c Credentials) oauthConfig() *oauth2.Config {
	tokenURI := c.TokenURI
	if tokenURI == "" {
		tokenURI = DefaultTokenURI
	}
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: tokenURI},
	}
}

// Service owns the Picker and Library API clients. Both resolve the
// caller's access token from the request context on every call.
type Service struct {
	picker   *upstream.Client
	library  *upstream.Client
	creds    Credentials
	download *http.Client
	logger   *slog.Logger
}

// ServiceConfig contains the options for constructing a Service.
type ServiceConfig struct {
	Credentials Credentials
	LibraryBase string
	PickerBase  string
	Timeout     time.Duration
	Logger      *slog.Logger
}

// NewService creates a Service. Credentials are validated here so a
// misconfigured deployment fails at startup, even though tokens may
// also arrive per request.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.Credentials.Validate(); err != nil {
		return nil, err
	}

	libraryBase := cfg.LibraryBase
	if libraryBase == "" {
		libraryBase = DefaultLibraryBase
	}
	pickerBase := cfg.PickerBase
	if pickerBase == "" {
		pickerBase = DefaultPickerBase
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = upstream.DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Service{
		creds:    cfg.Credentials,
		download: &http.Client{Timeout: timeout},
		logger:   logger,
	}
	s.picker = upstream.NewClient(upstream.Config{
		BaseURL: pickerBase,
		Headers: s.headers,
		Timeout: cfg.Timeout,
		Logger:  logger,
	})
	s.library = upstream.NewClient(upstream.Config{
		BaseURL: libraryBase,
		Headers: s.headers,
		Timeout: cfg.Timeout,
		Logger:  logger,
	})
	return s, nil
}

// headers resolves the bearer token for a single upstream call: the
// per-request token from context when present, otherwise a token minted
// from the configured refresh credentials.
func (s *Service) headers(ctx context.Context) (http.Header, error) {
	token := auth.AccessTokenFromContext(ctx)
	if token == "" {
		minted, err := s.mintToken(ctx)
		if err != nil {
			return nil, err
		}
		token = minted
	}
	return auth.BearerHeaders(token)
}

// mintToken exchanges the long-lived refresh token for a fresh access
// token via the configured token endpoint.
func (s *Service) mintToken(ctx context.Context) (string, error) {
	src := s.creds.oauthConfig().TokenSource(ctx, &oauth2.Token{RefreshToken: s.creds.RefreshToken})
	tok, err := src.Token()
	if err != nil {
		return "", fmt.Errorf("refreshing access token: %w", err)
	}
	return tok.AccessToken, nil
}
