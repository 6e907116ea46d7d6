package token

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/MKhiriev/storefront-auth/models"
)

const (
	testKey      = "0123456789abcdef0123456789abcdef"
	testIssuer   = "storefront-auth"
	testAudience = "storefront"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type staticIDs string

func (s staticIDs) Generate() string { return string(s) }

type fakeRevocations struct {
	revoked map[string]bool
	err     error
}

func (f *fakeRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.revoked[tokenID], nil
}

func adminPrincipal() models.Principal {
	return models.Principal{
		ID:           1,
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: "$2a$10$irrelevant",
		Role:         models.RoleAdmin,
	}
}

func customerPrincipal() models.Principal {
	return models.Principal{
		ID:       7,
		Username: "jane",
		Email:    "jane@example.com",
		Role:     models.RoleCustomer,
	}
}

func legacyToken(json string, enc *base64.Encoding) string {
	return LegacyPrefix + enc.EncodeToString([]byte(json))
}
