// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/storefront-auth/internal/logger"
	"github.com/MKhiriev/storefront-auth/models"
)

// principalRepository is the SQL implementation of [PrincipalRepository].
// It works against PostgreSQL and SQLite; the dialect differences are
// carried by [DB].
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type principalRepository struct {
	db  *DB
	now func() time.Time
}

// NewPrincipalRepository constructs a [PrincipalRepository] backed by db.
func NewPrincipalRepository(db *DB, logger *logger.Logger) PrincipalRepository {
	logger.Debug().Str("dialect", db.dialect).Msg("creating principal repository")
	return &principalRepository{db: db, now: time.Now}
}

// FindPrincipalByUsername implements [PrincipalRepository].
func (r *principalRepository) FindPrincipalByUsername(ctx context.Context, username string) (models.Principal, error) {
	return r.findOne(ctx, "*principalRepository.FindPrincipalByUsername", sq.Eq{"username": username})
}

// FindPrincipalByID implements [PrincipalRepository].
func (r *principalRepository) FindPrincipalByID(ctx context.Context, id int64) (models.Principal, error) {
	return r.findOne(ctx, "*principalRepository.FindPrincipalByID", sq.Eq{"id": id})
}

func (r *principalRepository) findOne(ctx context.Context, fn string, where sq.Eq) (models.Principal, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindPrincipalQuery(r.db.placeholder, where)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error building query")
		return models.Principal{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		p    models.Principal
		role string
	)
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&p.ID, &p.Username, &p.Email, &p.PasswordHash, &role, &p.CreatedAt)
	switch {
	case err == nil:
		p.Role = models.Role(role)
		return p, nil
	case errors.Is(err, sql.ErrNoRows):
		return models.Principal{}, ErrPrincipalNotFound
	case r.db.unavailable(err):
		log.Err(err).Str("func", fn).Msg("store unavailable")
		return models.Principal{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	default:
		log.Err(err).Str("func", fn).Msg("unexpected DB error")
		return models.Principal{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}

// CreatePrincipal implements [PrincipalRepository].
//
// Error handling:
//   - unique violation (PostgreSQL 23505, SQLite UNIQUE) → [ErrPrincipalExists];
//   - connection-class failures → [ErrStoreUnavailable];
//   - anything else → [ErrExecutingQuery].
func (r *principalRepository) CreatePrincipal(ctx context.Context, p models.Principal) (models.Principal, error) {
	log := logger.FromContext(ctx)

	p.CreatedAt = r.now().UTC().Truncate(time.Microsecond)

	query, args, err := buildCreatePrincipalQuery(r.db.placeholder, p)
	if err != nil {
		log.Err(err).Str("func", "*principalRepository.CreatePrincipal").Msg("error building query")
		return models.Principal{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.QueryRowContext(ctx, query, args...).Scan(&p.ID)
	if err != nil {
		switch {
		case postgresError(err) == pgerrcode.UniqueViolation, sqliteUniqueViolation(err):
			return models.Principal{}, ErrPrincipalExists
		case r.db.unavailable(err):
			log.Err(err).Str("func", "*principalRepository.CreatePrincipal").Msg("store unavailable")
			return models.Principal{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		default:
			log.Err(err).Str("func", "*principalRepository.CreatePrincipal").Msg("unexpected DB error")
			return models.Principal{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	return p, nil
}
