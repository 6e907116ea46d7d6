package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/storefront-auth/models"
)

// PrincipalRepository is the credential store. The auth core only reads from
// it; CreatePrincipal exists for provisioning and the bootstrap admin.
type PrincipalRepository interface {
	// FindPrincipalByUsername returns the principal whose username matches
	// exactly (case-sensitive) or ErrPrincipalNotFound.
	FindPrincipalByUsername(ctx context.Context, username string) (models.Principal, error)

	// FindPrincipalByID returns the principal with id or ErrPrincipalNotFound.
	FindPrincipalByID(ctx context.Context, id int64) (models.Principal, error)

	// CreatePrincipal inserts p and returns it with ID and CreatedAt set.
	// A duplicate username or email yields ErrPrincipalExists.
	CreatePrincipal(ctx context.Context, p models.Principal) (models.Principal, error)
}

// DenyList records revoked token ids until the token would have expired
// anyway.
type DenyList interface {
	// Revoke marks tokenID as revoked until expiresAt. Revoking a token
	// that has already expired is a no-op.
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error

	// IsRevoked reports whether tokenID is on the list.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// ErrorClassificator decides whether a driver error is worth retrying.
// Retryable errors are reported to callers as ErrStoreUnavailable.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
