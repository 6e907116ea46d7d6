package token

import (
	"fmt"
	"time"

	"github.com/MKhiriev/storefront-auth/models"
)

// Issuer mints signed tokens for authenticated principals.
type Issuer struct {
	codec *Codec
	settings
}

// NewIssuer returns an Issuer that encodes with codec.
func NewIssuer(codec *Codec, opts ...Option) *Issuer {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return &Issuer{codec: codec, settings: s}
}

// Issue builds claims for principal valid for ttl and signs them.
// The role always comes from the principal record.
func (i *Issuer) Issue(principal models.Principal, ttl time.Duration) (models.Token, error) {
	if ttl <= 0 {
		return models.Token{}, fmt.Errorf("%w: %s", ErrInvalidTTL, ttl)
	}

	now := i.now().UTC().Truncate(time.Second)
	claims := models.Claims{
		ID:        principal.ID,
		Username:  principal.Username,
		Email:     principal.Email,
		Role:      principal.Role,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl).Truncate(time.Second),
		TokenID:   i.ids.Generate(),
		Issuer:    i.codec.Issuer(),
		Audience:  i.codec.Audience(),
		Shape:     models.TokenShapeSigned,
	}

	signed, err := i.codec.Encode(claims)
	if err != nil {
		return models.Token{}, err
	}

	return models.Token{SignedString: signed, Claims: claims}, nil
}
