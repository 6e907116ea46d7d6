// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/storefront-auth/internal/crypto"
	"github.com/MKhiriev/storefront-auth/internal/logger"
	"github.com/MKhiriev/storefront-auth/internal/store"
	"github.com/MKhiriev/storefront-auth/internal/token"
	"github.com/MKhiriev/storefront-auth/models"
)

// authService is the concrete implementation of AuthService.
//
// All fields are read-only after construction, so the service is safe for
// concurrent use.
type authService struct {
	// principals is the credential store looked up at login.
	principals store.PrincipalRepository

	// denyList is nil when revocation is disabled.
	denyList store.DenyList

	passwords crypto.PasswordVerifier
	issuer    *token.Issuer
	validator *token.Validator

	// tokenTTL is the lifetime of tokens issued by CreateToken.
	tokenTTL time.Duration

	// loginTimeout bounds the store lookup performed by Login.
	loginTimeout time.Duration

	logger *logger.Logger
}

// AuthSettings carries the durations used by the auth service.
type AuthSettings struct {
	TokenTTL     time.Duration
	LoginTimeout time.Duration
}

// NewAuthService constructs an AuthService. denyList may be nil.
func NewAuthService(
	principals store.PrincipalRepository,
	denyList store.DenyList,
	passwords crypto.PasswordVerifier,
	issuer *token.Issuer,
	validator *token.Validator,
	settings AuthSettings,
	logger *logger.Logger,
) AuthService {
	return &authService{
		principals:   principals,
		denyList:     denyList,
		passwords:    passwords,
		issuer:       issuer,
		validator:    validator,
		tokenTTL:     settings.TokenTTL,
		loginTimeout: settings.LoginTimeout,
		logger:       logger,
	}
}

// Login authenticates a principal by username and password.
//
// An unknown username still costs one bcrypt comparison, and both failure
// kinds return the same ErrInvalidCredentials. Errors:
//   - ErrInvalidDataProvided if username or password is empty;
//   - ErrInvalidCredentials for an unknown username or a wrong password;
//   - ErrCorruptCredential if the stored hash cannot be parsed;
//   - ErrInfrastructure if the store is unreachable or the lookup times out.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.Principal, error) {
	log := logger.FromContext(ctx)

	if req.Username == "" || req.Password == "" {
		log.Debug().Str("func", "authService.Login").Msg("empty username or password")
		return models.Principal{}, ErrInvalidDataProvided
	}

	lookupCtx, cancel := context.WithTimeout(ctx, a.loginTimeout)
	defer cancel()

	principal, err := a.principals.FindPrincipalByUsername(lookupCtx, req.Username)
	if errors.Is(err, store.ErrPrincipalNotFound) {
		a.passwords.VerifyDummy(req.Password)
		log.Info().Str("func", "authService.Login").Str("username", req.Username).Msg("login failed: unknown username")
		return models.Principal{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "authService.Login").Str("username", req.Username).Msg("principal lookup failed")
		return models.Principal{}, storeError("principal lookup failed", err)
	}

	ok, err := a.passwords.Verify(req.Password, principal.PasswordHash)
	if err != nil {
		log.Err(err).Str("func", "authService.Login").Int64("id", principal.ID).Msg("stored password hash is unusable")
		if errors.Is(err, crypto.ErrCorruptCredential) {
			return models.Principal{}, fmt.Errorf("%w: principal %d: %w", ErrCorruptCredential, principal.ID, err)
		}
		return models.Principal{}, fmt.Errorf("password verification failed: %w", err)
	}
	if !ok {
		log.Info().Str("func", "authService.Login").Int64("id", principal.ID).Msg("login failed: wrong password")
		return models.Principal{}, ErrInvalidCredentials
	}

	return principal, nil
}

// CreateToken issues a token for principal that expires after the configured
// ttl. It never writes to the store.
func (a *authService) CreateToken(ctx context.Context, principal models.Principal) (models.Token, error) {
	issued, err := a.issuer.Issue(principal, a.tokenTTL)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "authService.CreateToken").Int64("id", principal.ID).Msg("error issuing token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return issued, nil
}

// ParseToken validates tokenString. Token errors are returned as they are so
// callers can tell token.ErrInvalidToken, token.ErrExpired and
// token.ErrForbidden apart; a deny-list outage becomes ErrInfrastructure.
func (a *authService) ParseToken(ctx context.Context, tokenString string, roles ...models.Role) (models.Claims, error) {
	claims, err := a.validator.Validate(ctx, tokenString, roles...)
	if errors.Is(err, token.ErrRevocationUnavailable) {
		return models.Claims{}, fmt.Errorf("%w: %w", ErrInfrastructure, err)
	}
	return claims, err
}

func (a *authService) Authorize(ctx context.Context, claims models.Claims, roles ...models.Role) error {
	return token.CheckRole(claims, roles...)
}

// Revoke adds the token id to the deny-list until the token's own expiry.
// Legacy tokens carry no id and cannot be revoked.
func (a *authService) Revoke(ctx context.Context, claims models.Claims) error {
	if a.denyList == nil || claims.TokenID == "" {
		return nil
	}

	if err := a.denyList.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "authService.Revoke").Str("jti", claims.TokenID).Msg("error revoking token")
		return storeError("token revocation failed", err)
	}

	return nil
}

// storeError tags store failures that mean "try again later" with
// ErrInfrastructure and wraps everything else with msg.
func storeError(msg string, err error) error {
	if errors.Is(err, store.ErrStoreUnavailable) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s: %w", ErrInfrastructure, msg, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
