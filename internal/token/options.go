package token

import (
	"time"

	"github.com/MKhiriev/storefront-auth/internal/utils"
)

type settings struct {
	now         func() time.Time
	ids         IDGenerator
	revocations RevocationChecker
	legacyUntil time.Time
}

func defaultSettings() settings {
	return settings{
		now: time.Now,
		ids: utils.NewUUIDGenerator(),
	}
}

// Option configures an [Issuer] or a [Validator].
type Option func(*settings)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator replaces the UUIDv7 token id generator.
func WithIDGenerator(ids IDGenerator) Option {
	return func(s *settings) {
		if ids != nil {
			s.ids = ids
		}
	}
}

// WithRevocationChecker makes the validator consult a deny-list.
func WithRevocationChecker(rc RevocationChecker) Option {
	return func(s *settings) {
		s.revocations = rc
	}
}

// WithLegacyUntil accepts legacy unsigned tokens until deadline.
// The zero time keeps them rejected.
func WithLegacyUntil(deadline time.Time) Option {
	return func(s *settings) {
		s.legacyUntil = deadline
	}
}
