// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrNoToken is returned by the auth middleware when the incoming request
	// does not include an "Authorization" header at all.
	ErrNoToken = errors.New("no `Authorization` header")

	// ErrEmptyToken is returned when the "Authorization" header carries the
	// bearer scheme but no token after it.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")

	// ErrNoClaims is returned by requireRole when it runs without auth in
	// front of it.
	ErrNoClaims = errors.New("no claims in request context")

	ErrInvalidJSON      = errors.New("invalid JSON was passed")
	ErrInvalidPrincipal = errors.New("invalid principal id")
)
