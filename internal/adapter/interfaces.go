// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the storefront-auth HTTP API.
//
// [AuthClient] hides the transport: it attaches the bearer token to
// authenticated calls and maps HTTP status codes to the sentinel errors in
// errors.go so that callers can use [errors.Is] (e.g. [ErrUnauthorized] for
// 401, [ErrServiceUnavailable] for 503).
package adapter

import (
	"context"

	"github.com/MKhiriev/storefront-auth/models"
)

// AuthClient talks to the storefront-auth server.
type AuthClient interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or "" if none is set.
	Token() string

	// Login exchanges credentials for a token. On success the token is
	// stored via SetToken.
	Login(ctx context.Context, username, password string) (models.LoginResponse, error)

	// Me returns the principal the stored token belongs to.
	Me(ctx context.Context) (models.PrincipalView, error)

	// Logout revokes the stored token on the server and forgets it locally.
	Logout(ctx context.Context) error

	// Version returns the server version string.
	Version(ctx context.Context) (string, error)
}
