// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for carrying token claims in a context, writing JSON
// responses, HTTP client initialization and token id generation.
package utils

import (
	"context"

	"github.com/MKhiriev/storefront-auth/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// ClaimsCtxKey is the key under which validated token claims are stored.
// Use WithClaims and ClaimsFromContext rather than the key directly.
var ClaimsCtxKey = contextKey("claims")

// WithClaims returns a copy of ctx carrying claims. The access guard calls it
// after a token has been validated.
func WithClaims(ctx context.Context, claims models.Claims) context.Context {
	return context.WithValue(ctx, ClaimsCtxKey, claims)
}

// ClaimsFromContext retrieves the claims attached by WithClaims.
//
// Returns ok == false when no claims are present or the stored value has an
// unexpected type.
//
// Example usage:
//
//	claims, ok := utils.ClaimsFromContext(r.Context())
//	if !ok {
//	    // request did not pass the access guard
//	}
func ClaimsFromContext(ctx context.Context) (models.Claims, bool) {
	claims, ok := ctx.Value(ClaimsCtxKey).(models.Claims)
	return claims, ok
}
