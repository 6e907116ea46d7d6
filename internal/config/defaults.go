package config

import "time"

// Default values applied by [StructuredConfig.applyDefaults].
const (
	DefaultTokenIssuer    = "storefront-auth"
	DefaultTokenAudience  = "storefront"
	DefaultTokenDuration  = 24 * time.Hour
	DefaultPasswordCost   = 12
	DefaultVersion        = "dev"
	DefaultLogLevel       = "debug"
	DefaultRequestTimeout = 30 * time.Second
	DefaultLoginTimeout   = 3 * time.Second
	DefaultCacheSize      = 10000
)

// applyDefaults fills fields that no source has set.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.TokenAudience == "" {
		cfg.App.TokenAudience = DefaultTokenAudience
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}
	if cfg.App.PasswordCost == 0 {
		cfg.App.PasswordCost = DefaultPasswordCost
	}
	if cfg.App.Version == "" {
		cfg.App.Version = DefaultVersion
	}
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = DefaultLogLevel
	}
	if cfg.Storage.Revocation.Backend == "" {
		cfg.Storage.Revocation.Backend = RevocationNone
	}
	if cfg.Storage.Revocation.CacheSize == 0 {
		cfg.Storage.Revocation.CacheSize = DefaultCacheSize
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Server.LoginTimeout == 0 {
		cfg.Server.LoginTimeout = DefaultLoginTimeout
	}
}
