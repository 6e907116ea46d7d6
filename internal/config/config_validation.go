// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/mail"
	"slices"
)

// MinTokenSignKeyLength is the shortest accepted HMAC secret, in bytes.
const MinTokenSignKeyLength = 32

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// ErrInvalid* sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if len(cfg.App.TokenSignKey) < MinTokenSignKeyLength {
		return fmt.Errorf("%w: token sign key must be at least %d bytes", ErrInvalidAppConfigs, MinTokenSignKeyLength)
	}
	if cfg.App.TokenIssuer == "" || cfg.App.TokenAudience == "" {
		return fmt.Errorf("%w: token issuer and audience are required", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs)
	}
	if _, err := cfg.App.LegacyDeadline(); err != nil {
		return fmt.Errorf("%w: legacy tokens deadline: %w", ErrInvalidAppConfigs, err)
	}
	if b := cfg.App.Bootstrap; b.Username != "" {
		if b.Password == "" {
			return fmt.Errorf("%w: bootstrap admin password is required", ErrInvalidAppConfigs)
		}
		if addr, err := mail.ParseAddress(b.Email); err != nil || addr.Address != b.Email {
			return fmt.Errorf("%w: bootstrap admin email %q is invalid", ErrInvalidAppConfigs, b.Email)
		}
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}
	backends := []string{RevocationNone, RevocationMemory, RevocationRedis}
	if !slices.Contains(backends, cfg.Storage.Revocation.Backend) {
		return fmt.Errorf("%w: unknown revocation backend %q", ErrInvalidStorageConfigs, cfg.Storage.Revocation.Backend)
	}
	if cfg.Storage.Revocation.Backend == RevocationRedis && cfg.Storage.Revocation.RedisURL == "" {
		return fmt.Errorf("%w: redis URL is required for redis revocation backend", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.Revocation.CacheSize < 0 {
		return fmt.Errorf("%w: revocation cache size must not be negative", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		return fmt.Errorf("%w: at least one of HTTP or gRPC address is required", ErrInvalidServerConfigs)
	}
	if cfg.Server.RequestTimeout <= 0 || cfg.Server.LoginTimeout <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidServerConfigs)
	}

	return nil
}
