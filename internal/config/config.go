// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// storefront-auth service. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token, password hashing, bootstrap and logging settings.
	App App `envPrefix:"APP_"`

	// Storage holds the credential store and revocation deny-list settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listener addresses and timeouts for HTTP and gRPC.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control token
// issuance, password hashing and versioning.
type App struct {
	// TokenSignKey is the HMAC secret used to sign and verify tokens.
	// Must be kept confidential and at least MinTokenSignKeyLength bytes long.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued token and
	// required on every validated one.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenAudience is the "aud" claim. Tokens minted for a different
	// audience are rejected.
	// Env: APP_TOKEN_AUDIENCE
	TokenAudience string `env:"TOKEN_AUDIENCE"`

	// TokenDuration is the single ttl applied to tokens issued at login
	// (e.g. "24h", "1h").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// LegacyTokensAcceptUntil enables the deprecated unsigned "bearer_"
	// token shape until the given RFC3339 instant. Empty keeps it disabled.
	// Env: APP_LEGACY_TOKENS_ACCEPT_UNTIL
	LegacyTokensAcceptUntil string `env:"LEGACY_TOKENS_ACCEPT_UNTIL"`

	// PasswordCost is the bcrypt cost used when hashing new passwords.
	// Env: APP_PASSWORD_COST
	PasswordCost int `env:"PASSWORD_COST"`

	// Version is exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is the zerolog level name (debug, info, warn, error).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Bootstrap describes an optional first admin account.
	Bootstrap Bootstrap `envPrefix:"BOOTSTRAP_ADMIN_"`
}

// LegacyDeadline parses LegacyTokensAcceptUntil. The zero time means the
// legacy token shape is never accepted.
func (a App) LegacyDeadline() (time.Time, error) {
	if a.LegacyTokensAcceptUntil == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, a.LegacyTokensAcceptUntil)
}

// Bootstrap holds the credentials of the admin principal created at startup
// when no principal with Username exists yet. Empty Username disables it.
type Bootstrap struct {
	// Env: APP_BOOTSTRAP_ADMIN_USERNAME
	Username string `env:"USERNAME"`
	// Env: APP_BOOTSTRAP_ADMIN_EMAIL
	Email string `env:"EMAIL"`
	// Env: APP_BOOTSTRAP_ADMIN_PASSWORD
	Password string `env:"PASSWORD"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the credential store connection settings.
	DB DB `envPrefix:"DB_"`

	// Revocation holds the optional token deny-list settings.
	Revocation Revocation `envPrefix:"REVOCATION_"`
}

// DB holds connection settings for the credential store.
type DB struct {
	// DSN selects the backend by scheme:
	//   - "postgres://..." or "postgresql://...": PostgreSQL via pgx;
	//   - "sqlite://path/to/file.db" or "file:...": SQLite;
	//   - "memory": in-process store, for development and tests.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Revocation configures the token deny-list.
type Revocation struct {
	// Backend is one of RevocationNone, RevocationMemory, RevocationRedis.
	// Env: STORAGE_REVOCATION_BACKEND
	Backend string `env:"BACKEND"`

	// RedisURL is used when Backend is RevocationRedis
	// (e.g. "redis://localhost:6379/0").
	// Env: STORAGE_REVOCATION_REDIS_URL
	RedisURL string `env:"REDIS_URL"`

	// CacheSize bounds the memory deny-list.
	// Env: STORAGE_REVOCATION_CACHE_SIZE
	CacheSize int `env:"CACHE_SIZE"`
}

// Revocation backends.
const (
	RevocationNone   = "none"
	RevocationMemory = "memory"
	RevocationRedis  = "redis"
)

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address on which the gRPC server listens,
	// in "host:port" format (e.g. "0.0.0.0:9090").
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// LoginTimeout bounds the credential store lookup performed at login.
	// Env: SERVER_LOGIN_TIMEOUT
	LoginTimeout time.Duration `env:"LOGIN_TIMEOUT"`

	// CORSAllowedOrigins enables CORS for the listed origins. Empty disables it.
	// Env: SERVER_CORS_ALLOWED_ORIGINS (comma separated)
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// GRPCPublicMethods lists full gRPC method names served without a token,
	// in addition to the health Check.
	// Env: SERVER_GRPC_PUBLIC_METHODS (comma separated)
	GRPCPublicMethods []string `env:"GRPC_PUBLIC_METHODS" envSeparator:","`

	// GRPCAdminMethods lists full gRPC method names restricted to the admin role.
	// Env: SERVER_GRPC_ADMIN_METHODS (comma separated)
	GRPCAdminMethods []string `env:"GRPC_ADMIN_METHODS" envSeparator:","`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Defaults are applied to fields left empty by every source.
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
	if err != nil {
		return nil, err
	}

	if err = cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
