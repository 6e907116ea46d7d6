// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package token

import (
	"context"
	"fmt"
	"slices"

	"github.com/MKhiriev/storefront-auth/models"
)

// Validator decides whether a presented token is accepted.
//
// Checks run in a fixed order and stop at the first failure:
//
//	decode        -> ErrInvalidToken (wraps the codec error)
//	legacy shape  -> ErrInvalidToken unless accepted until a deadline
//	issuer/aud    -> ErrInvalidToken
//	expiry        -> ErrExpired
//	deny-list     -> ErrRevoked
//	role          -> ErrForbidden
//
// Validator holds no mutable state and is safe for concurrent use.
type Validator struct {
	codec *Codec
	settings
}

// NewValidator returns a Validator that decodes with codec.
func NewValidator(codec *Codec, opts ...Option) *Validator {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return &Validator{codec: codec, settings: s}
}

// Validate runs every check on token. When requiredRoles is empty any
// non-empty role is accepted.
func (v *Validator) Validate(ctx context.Context, token string, requiredRoles ...models.Role) (models.Claims, error) {
	claims, err := v.codec.Decode(token)
	if err != nil {
		return models.Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	now := v.now()

	if claims.Shape == models.TokenShapeLegacyUnsigned {
		if v.legacyUntil.IsZero() || !now.Before(v.legacyUntil) {
			return models.Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, ErrLegacyRejected)
		}
	} else if claims.Issuer != v.codec.Issuer() || claims.Audience != v.codec.Audience() {
		return models.Claims{}, fmt.Errorf("%w: issuer or audience mismatch", ErrInvalidToken)
	}

	if !now.Before(claims.ExpiresAt) {
		return models.Claims{}, ErrExpired
	}

	if v.revocations != nil && claims.TokenID != "" {
		revoked, err := v.revocations.IsRevoked(ctx, claims.TokenID)
		if err != nil {
			return models.Claims{}, fmt.Errorf("%w: %w", ErrRevocationUnavailable, err)
		}
		if revoked {
			return models.Claims{}, ErrRevoked
		}
	}

	if err = CheckRole(claims, requiredRoles...); err != nil {
		return models.Claims{}, err
	}

	return claims, nil
}

// CheckRole returns ErrForbidden when claims carry no role or, if allowed is
// not empty, a role outside allowed.
func CheckRole(claims models.Claims, allowed ...models.Role) error {
	if claims.Role == "" {
		return fmt.Errorf("%w: token has no role", ErrForbidden)
	}
	if len(allowed) > 0 && !slices.Contains(allowed, claims.Role) {
		return fmt.Errorf("%w: role %q not allowed", ErrForbidden, claims.Role)
	}
	return nil
}
