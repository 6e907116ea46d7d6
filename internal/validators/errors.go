package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyUsername    = errors.New("username is required")
	ErrUsernameTooLong  = errors.New("username is too long")
	ErrInvalidUsername  = errors.New("username contains whitespace or control characters")
	ErrEmptyPassword    = errors.New("password is required")
	ErrPasswordTooLong  = errors.New("password is too long")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidRole      = errors.New("invalid role")
	ErrInvalidPrincipal = errors.New("invalid principal id")
)
