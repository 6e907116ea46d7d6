package models

// NewPrincipal describes an account to provision. Password is plaintext and
// is hashed before it reaches the store.
type NewPrincipal struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}
