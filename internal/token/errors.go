package token

import (
	"errors"
	"fmt"
)

// Decode errors returned by [Codec.Decode].
var (
	// ErrMalformed means the token has a known shape but its content cannot
	// be parsed.
	ErrMalformed = errors.New("malformed token")

	// ErrBadSignature means the signature does not verify with the server
	// secret or was produced with a method other than HS256.
	ErrBadSignature = errors.New("token signature is invalid")

	// ErrUnknownShape means the token is neither a signed token nor a legacy
	// envelope.
	ErrUnknownShape = errors.New("unknown token shape")
)

// Validation errors returned by [Validator.Validate].
var (
	// ErrInvalidToken is the umbrella rejection for tokens that cannot be
	// trusted. Decode errors are wrapped under it.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpired means the token was authentic but its lifetime has passed.
	ErrExpired = errors.New("token expired")

	// ErrForbidden means the token is valid but its role is not allowed.
	ErrForbidden = errors.New("forbidden")

	// ErrRevoked means the token id is on the deny-list.
	ErrRevoked = fmt.Errorf("%w: token revoked", ErrInvalidToken)

	// ErrLegacyRejected means a legacy unsigned token was presented while
	// the legacy shape is not accepted.
	ErrLegacyRejected = errors.New("legacy unsigned token not accepted")

	// ErrRevocationUnavailable means the deny-list could not be consulted.
	// The token is rejected; callers should answer with a server error.
	ErrRevocationUnavailable = errors.New("revocation check unavailable")
)

// Issuer errors.
var (
	// ErrInvalidTTL is returned by [Issuer.Issue] for a non-positive ttl.
	ErrInvalidTTL = errors.New("token ttl must be positive")

	// ErrEmptySignKey is returned by [NewCodec] when no secret is given.
	ErrEmptySignKey = errors.New("token sign key is empty")
)
