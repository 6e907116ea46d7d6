// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/storefront-auth/internal/config"
	"github.com/MKhiriev/storefront-auth/internal/logger"
)

// MemoryDSN selects the in-process principal store.
const MemoryDSN = "memory"

// Storages aggregates the storage components used by the service layer.
type Storages struct {
	// PrincipalRepository is the credential store.
	PrincipalRepository PrincipalRepository

	// DenyList is nil when token revocation is disabled.
	DenyList DenyList

	db    *DB
	redis *redis.Client
}

// NewStorages builds the credential store selected by the DSN scheme and the
// configured deny-list, running schema migrations for SQL backends.
//
// tokenTTL bounds how long the memory deny-list keeps an entry.
func NewStorages(ctx context.Context, cfg config.Storage, tokenTTL time.Duration, log *logger.Logger) (*Storages, error) {
	s := &Storages{}

	var err error
	switch dsn := cfg.DB.DSN; {
	case dsn == MemoryDSN:
		s.PrincipalRepository = NewMemoryPrincipalRepository(log)
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		s.db, err = NewConnectPostgres(ctx, dsn, log)
	case strings.HasPrefix(dsn, "sqlite://"):
		s.db, err = NewConnectSQLite(ctx, strings.TrimPrefix(dsn, "sqlite://"), log)
	case strings.HasPrefix(dsn, "file:"):
		s.db, err = NewConnectSQLite(ctx, dsn, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDSN, dsn)
	}
	if err != nil {
		return nil, err
	}

	if s.db != nil {
		if err = s.db.Migrate(); err != nil {
			log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
			_ = s.Close()
			return nil, err
		}
		s.PrincipalRepository = NewPrincipalRepository(s.db, log)
	}

	switch cfg.Revocation.Backend {
	case config.RevocationMemory:
		s.DenyList = NewMemoryDenyList(cfg.Revocation.CacheSize, tokenTTL, log)
	case config.RevocationRedis:
		s.redis, err = NewRedisClient(ctx, cfg.Revocation.RedisURL)
		if err != nil {
			log.Err(err).Str("func", "NewStorages").Msg("error connecting redis")
			_ = s.Close()
			return nil, err
		}
		s.DenyList = NewRedisDenyList(s.redis, log)
	}

	return s, nil
}

// Close releases the database and Redis connections, if any.
func (s *Storages) Close() error {
	var errs []error
	if s.db != nil {
		errs = append(errs, s.db.Close())
	}
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	return errors.Join(errs...)
}
