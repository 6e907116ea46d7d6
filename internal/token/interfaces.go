package token

import "context"

// RevocationChecker reports whether a token id has been revoked.
// [store.DenyList] satisfies it.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// IDGenerator produces unique token ids.
type IDGenerator interface {
	Generate() string
}
