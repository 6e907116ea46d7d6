// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordCost is the lowest bcrypt cost accepted for new hashes.
const MinPasswordCost = 10

// dummyPassword seeds the hash compared against when no principal exists.
const dummyPassword = "storefront-auth-dummy-password"

// bcryptVerifier is the private implementation of [PasswordVerifier].
type bcryptVerifier struct {
	cost int

	// dummyHash has the same cost as real hashes so VerifyDummy takes the
	// same time as Verify.
	dummyHash []byte
}

// NewPasswordVerifier constructs a bcrypt-backed [PasswordVerifier].
// cost must be in [MinPasswordCost, bcrypt.MaxCost].
func NewPasswordVerifier(cost int) (PasswordVerifier, error) {
	if cost < MinPasswordCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCost, cost)
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("error generating dummy hash: %w", err)
	}

	return &bcryptVerifier{cost: cost, dummyHash: dummy}, nil
}

// Verify implements [PasswordVerifier].
func (v *bcryptVerifier) Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		// ErrHashTooShort, ErrPasswordTooLong on the stored side, invalid
		// prefix or cost: the record itself is unusable.
		return false, fmt.Errorf("%w: %w", ErrCorruptCredential, err)
	}
}

// Hash implements [PasswordVerifier].
func (v *bcryptVerifier) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), v.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(hash), nil
}

// VerifyDummy implements [PasswordVerifier].
func (v *bcryptVerifier) VerifyDummy(plaintext string) {
	_ = bcrypt.CompareHashAndPassword(v.dummyHash, []byte(plaintext))
}
