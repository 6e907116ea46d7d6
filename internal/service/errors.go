package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is returned for an unknown username and for a
	// wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrCorruptCredential means the stored password hash cannot be parsed.
	ErrCorruptCredential = errors.New("stored credential is corrupt")

	// ErrInfrastructure means a backing store did not answer in time or
	// could not be reached.
	ErrInfrastructure = errors.New("infrastructure unavailable")

	ErrTokenCreationFailed = errors.New("token creation failed")

	ErrPrincipalNotFound = errors.New("principal not found")
	ErrPrincipalExists   = errors.New("principal already exists")
	ErrInvalidRole       = errors.New("invalid role")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
