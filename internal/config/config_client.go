package config

import (
	"errors"
	"flag"
	"fmt"
	"time"
)

// ErrInvalidClientConfigs indicates an unusable client configuration.
var ErrInvalidClientConfigs = errors.New("invalid client configuration")

// ClientConfig holds the settings of the command-line client.
type ClientConfig struct {
	// ServerURL is the base URL of the HTTP API (e.g. "http://localhost:8080").
	// Env: CLIENT_SERVER_URL
	ServerURL string `env:"SERVER_URL"`

	// RequestTimeout bounds every outbound request.
	// Env: CLIENT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// TokenFile is where the client keeps the token between invocations.
	// Env: CLIENT_TOKEN_FILE
	TokenFile string `env:"TOKEN_FILE"`
}

type clientEnv struct {
	Client ClientConfig `envPrefix:"CLIENT_"`
}

const (
	defaultClientServerURL      = "http://localhost:8080"
	defaultClientRequestTimeout = 15 * time.Second
	defaultClientTokenFile      = ".storefront-token"
)

// GetClientConfig loads the client configuration from environment variables,
// then applies flags found in args. The remaining positional arguments are
// returned alongside the config.
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	var envCfg clientEnv
	if err := parseEnv(&envCfg); err != nil {
		return nil, nil, err
	}
	cfg := envCfg.Client

	fs := flag.NewFlagSet("storefront-client", flag.ContinueOnError)
	fs.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server base URL")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "Request timeout (e.g., 5s)")
	fs.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "File used to keep the token")
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing client flags: %w", err)
	}

	if cfg.ServerURL == "" {
		cfg.ServerURL = defaultClientServerURL
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = defaultClientRequestTimeout
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = defaultClientTokenFile
	}

	if cfg.RequestTimeout < 0 {
		return nil, nil, fmt.Errorf("%w: negative request timeout", ErrInvalidClientConfigs)
	}

	return &cfg, fs.Args(), nil
}
