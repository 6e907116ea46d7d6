// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Role is the access level granted to a principal.
type Role string

const (
	// RoleAdmin grants access to the back-office endpoints.
	RoleAdmin Role = "admin"

	// RoleCustomer is the default storefront role.
	RoleCustomer Role = "customer"
)

// String implements [fmt.Stringer].
func (r Role) String() string {
	return string(r)
}

// Principal is a stored account record used for authentication.
// It is created by provisioning and is read-only for the auth core.
type Principal struct {
	// ID is the stable unique identifier of the principal.
	ID int64 `json:"id"`

	// Username is unique and matched case-sensitively against login input.
	Username string `json:"username"`

	// Email is unique per principal.
	Email string `json:"email"`

	// PasswordHash is the salted bcrypt hash of the password.
	// It never leaves the server.
	PasswordHash string `json:"-"`

	// Role is copied into every token issued for this principal.
	Role Role `json:"role"`

	// CreatedAt is set by the store when the record is inserted.
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the Principal model.
func (p Principal) TableName() string {
	return "principals"
}

// View returns the outward representation of the principal.
func (p Principal) View() PrincipalView {
	return PrincipalView{
		ID:       p.ID,
		Username: p.Username,
		Email:    p.Email,
		Role:     p.Role,
	}
}

// PrincipalView is the only principal shape sent to clients or attached to a
// request context. It has no password material by construction.
type PrincipalView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}
