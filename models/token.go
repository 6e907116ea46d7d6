package models

import "time"

// TokenShape tells which encoding a token arrived in.
type TokenShape string

const (
	// TokenShapeSigned is the header.payload.signature form.
	TokenShapeSigned TokenShape = "signed"

	// TokenShapeLegacyUnsigned is the deprecated "bearer_" + base64(JSON)
	// envelope. It carries no signature and cannot prove authenticity.
	TokenShapeLegacyUnsigned TokenShape = "legacy-unsigned"
)

// Claims is the set of facts about a principal carried inside a token.
// It is built on every login and never persisted on its own.
type Claims struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`

	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`

	// TokenID is the "jti" claim. Empty for legacy tokens.
	TokenID string `json:"-"`

	// Issuer and Audience scope the signature to this deployment.
	Issuer   string `json:"-"`
	Audience string `json:"-"`

	// Shape records how the token was encoded.
	Shape TokenShape `json:"-"`
}

// View returns the principal view embedded in the claims.
func (c Claims) View() PrincipalView {
	return PrincipalView{
		ID:       c.ID,
		Username: c.Username,
		Email:    c.Email,
		Role:     c.Role,
	}
}

// Token is an issued credential: the compact string handed to the client and
// the claims it was built from.
type Token struct {
	// SignedString is the compact JWS form (header.payload.signature).
	SignedString string `json:"-"`

	// Claims holds the values encoded into SignedString.
	Claims Claims `json:"-"`
}

// String implements [fmt.Stringer] and returns the compact token form.
func (t Token) String() string {
	return t.SignedString
}
