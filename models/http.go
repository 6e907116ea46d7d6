package models

// LoginRequest is the body accepted by the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	// Token is the signed bearer token.
	Token string `json:"token"`

	// User describes the authenticated principal.
	User PrincipalView `json:"user"`
}

// ErrorResponse is the body of every failed API call.
// Auth failures always carry a generic message; details are logged server-side.
type ErrorResponse struct {
	Error string `json:"error"`
}
