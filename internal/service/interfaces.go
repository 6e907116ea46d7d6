package service

import (
	"context"

	"github.com/MKhiriev/storefront-auth/internal/config"
	"github.com/MKhiriev/storefront-auth/models"
)

// AuthService orchestrates login and token checks on top of the credential
// store, the password verifier and the token package.
type AuthService interface {
	// Login checks username and password and returns the matching principal.
	// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
	Login(ctx context.Context, req models.LoginRequest) (models.Principal, error)

	// CreateToken issues a token for the principal with the configured ttl.
	CreateToken(ctx context.Context, principal models.Principal) (models.Token, error)

	// ParseToken validates token and, when roles are given, requires one of them.
	ParseToken(ctx context.Context, token string, roles ...models.Role) (models.Claims, error)

	// Authorize checks already validated claims against the allowed roles.
	Authorize(ctx context.Context, claims models.Claims, roles ...models.Role) error

	// Revoke puts the token described by claims on the deny-list.
	// It is a no-op when revocation is disabled.
	Revoke(ctx context.Context, claims models.Claims) error
}

// PrincipalService reads and provisions principals.
type PrincipalService interface {
	GetPrincipal(ctx context.Context, id int64) (models.PrincipalView, error)
	CreatePrincipal(ctx context.Context, principal models.NewPrincipal) (models.PrincipalView, error)

	// BootstrapAdmin creates the configured admin unless a principal with
	// that username already exists.
	BootstrapAdmin(ctx context.Context, admin config.Bootstrap) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
