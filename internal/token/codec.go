// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/storefront-auth/models"
	"github.com/golang-jwt/jwt/v5"
)

// LegacyPrefix marks the deprecated unsigned token envelope.
const LegacyPrefix = "bearer_"

// legacyMillisThreshold separates Unix seconds from Unix milliseconds in
// legacy exp/iat values.
const legacyMillisThreshold = 1e12

// jwtClaims is the wire form of [models.Claims] in a signed token.
type jwtClaims struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// legacyEnvelope is the JSON carried after LegacyPrefix.
type legacyEnvelope struct {
	ID       int64       `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
	IssuedAt float64     `json:"iat"`
	Expires  float64     `json:"exp"`
}

// Codec converts [models.Claims] to and from the compact token string.
//
// Encode always produces an HS256 signed token. Decode accepts both the
// signed form and the legacy envelope and reports which one it saw in
// Claims.Shape. The codec never checks expiry, issuer or audience.
type Codec struct {
	key      []byte
	issuer   string
	audience string
	parser   *jwt.Parser
}

// NewCodec returns a Codec that signs with signKey and stamps issuer and
// audience on every encoded token.
func NewCodec(signKey, issuer, audience string) (*Codec, error) {
	if signKey == "" {
		return nil, ErrEmptySignKey
	}

	return &Codec{
		key:      []byte(signKey),
		issuer:   issuer,
		audience: audience,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}, nil
}

// Issuer returns the issuer stamped on encoded tokens.
func (c *Codec) Issuer() string { return c.issuer }

// Audience returns the audience stamped on encoded tokens.
func (c *Codec) Audience() string { return c.audience }

// Encode signs claims with HS256. Issuer and Audience from claims are
// ignored in favour of the codec's own values.
func (c *Codec) Encode(claims models.Claims) (string, error) {
	wire := jwtClaims{
		Username: claims.Username,
		Email:    claims.Email,
		Role:     claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   strconv.FormatInt(claims.ID, 10),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ID:        claims.TokenID,
		},
	}
	if c.audience != "" {
		wire.Audience = jwt.ClaimStrings{c.audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, wire).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("error occurred during signing token: %w", err)
	}

	return signed, nil
}

// Decode parses token in either shape.
func (c *Codec) Decode(token string) (models.Claims, error) {
	switch {
	case token == "":
		return models.Claims{}, fmt.Errorf("%w: empty token", ErrMalformed)
	case strings.HasPrefix(token, LegacyPrefix):
		return decodeLegacy(strings.TrimPrefix(token, LegacyPrefix))
	case strings.Count(token, ".") == 2:
		return c.decodeSigned(token)
	default:
		return models.Claims{}, ErrUnknownShape
	}
}

func (c *Codec) decodeSigned(token string) (models.Claims, error) {
	wire := &jwtClaims{}
	_, err := c.parser.ParseWithClaims(token, wire, func(*jwt.Token) (any, error) {
		return c.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrTokenUnverifiable) {
			return models.Claims{}, fmt.Errorf("%w: %w", ErrBadSignature, err)
		}
		return models.Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	id, err := strconv.ParseInt(wire.Subject, 10, 64)
	if err != nil {
		return models.Claims{}, fmt.Errorf("%w: subject is not a principal id", ErrMalformed)
	}

	claims := models.Claims{
		ID:       id,
		Username: wire.Username,
		Email:    wire.Email,
		Role:     wire.Role,
		TokenID:  wire.ID,
		Issuer:   wire.Issuer,
		Shape:    models.TokenShapeSigned,
	}
	if len(wire.Audience) > 0 {
		claims.Audience = wire.Audience[0]
	}
	if wire.IssuedAt != nil {
		claims.IssuedAt = wire.IssuedAt.UTC()
	}
	if wire.ExpiresAt != nil {
		claims.ExpiresAt = wire.ExpiresAt.UTC()
	}

	return claims, nil
}

func decodeLegacy(payload string) (models.Claims, error) {
	raw, err := decodeBase64(payload)
	if err != nil {
		return models.Claims{}, fmt.Errorf("%w: legacy payload is not base64", ErrMalformed)
	}

	var env legacyEnvelope
	if err = json.Unmarshal(raw, &env); err != nil {
		return models.Claims{}, fmt.Errorf("%w: legacy payload is not JSON: %w", ErrMalformed, err)
	}

	return models.Claims{
		ID:        env.ID,
		Username:  env.Username,
		Email:     env.Email,
		Role:      env.Role,
		IssuedAt:  legacyTime(env.IssuedAt),
		ExpiresAt: legacyTime(env.Expires),
		Shape:     models.TokenShapeLegacyUnsigned,
	}, nil
}

func decodeBase64(s string) ([]byte, error) {
	var err error
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		var out []byte
		if out, err = enc.DecodeString(s); err == nil {
			return out, nil
		}
	}
	return nil, err
}

// legacyTime reads a Unix timestamp that may be in seconds or milliseconds.
// Zero stays the zero time.
func legacyTime(v float64) time.Time {
	switch {
	case v <= 0:
		return time.Time{}
	case v > legacyMillisThreshold:
		return time.UnixMilli(int64(v)).UTC()
	default:
		return time.Unix(int64(v), 0).UTC()
	}
}
