package crypto

import "errors"

var (
	// ErrCorruptCredential is returned when a stored hash is not a valid
	// bcrypt hash.
	ErrCorruptCredential = errors.New("stored credential is corrupt")

	// ErrPasswordTooLong is returned by Hash for inputs bcrypt cannot handle
	// without truncation.
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

	// ErrInvalidCost is returned by NewPasswordVerifier for a cost outside
	// the accepted range.
	ErrInvalidCost = errors.New("invalid bcrypt cost")
)
