package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *StructuredConfig {
	cfg := &StructuredConfig{
		App: App{
			TokenSignKey: strings.Repeat("k", MinTokenSignKeyLength),
		},
		Storage: Storage{DB: DB{DSN: "memory"}},
		Server:  Server{HTTPAddress: "localhost:8080"},
	}
	cfg.applyDefaults()
	return cfg
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validConfig().validate())

	withAdmin := validConfig()
	withAdmin.App.Bootstrap = Bootstrap{Username: "root", Email: "root@example.com", Password: "s3cret-pass"}
	require.NoError(t, withAdmin.validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:    "short sign key",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenSignKey = "short" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "empty audience",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenAudience = "" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "negative token duration",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenDuration = -time.Second },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "malformed legacy deadline",
			mutate:  func(cfg *StructuredConfig) { cfg.App.LegacyTokensAcceptUntil = "next tuesday" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "bootstrap admin without password",
			mutate:  func(cfg *StructuredConfig) { cfg.App.Bootstrap.Username = "root" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name: "bootstrap admin without email",
			mutate: func(cfg *StructuredConfig) {
				cfg.App.Bootstrap = Bootstrap{Username: "root", Password: "s3cret-pass"}
			},
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name: "bootstrap admin with malformed email",
			mutate: func(cfg *StructuredConfig) {
				cfg.App.Bootstrap = Bootstrap{Username: "root", Email: "Root <root@example.com>", Password: "s3cret-pass"}
			},
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "empty DSN",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "unknown revocation backend",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.Revocation.Backend = "memcached" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "redis backend without URL",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.Revocation.Backend = RevocationRedis },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "no listener address",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "zero login timeout",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.LoginTimeout = 0 },
			wantErr: ErrInvalidServerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.validate(), tt.wantErr)
		})
	}
}

func TestApp_LegacyDeadline(t *testing.T) {
	t.Run("empty disables", func(t *testing.T) {
		d, err := App{}.LegacyDeadline()
		require.NoError(t, err)
		assert.True(t, d.IsZero())
	})

	t.Run("parses RFC3339", func(t *testing.T) {
		d, err := App{LegacyTokensAcceptUntil: "2026-12-31T00:00:00Z"}.LegacyDeadline()
		require.NoError(t, err)
		assert.True(t, d.Equal(time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)))
	})
}
