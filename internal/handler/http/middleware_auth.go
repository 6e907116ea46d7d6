package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/storefront-auth/internal/logger"
	"github.com/MKhiriev/storefront-auth/internal/utils"
	"github.com/MKhiriev/storefront-auth/models"
)

// bearerPrefix is matched case-insensitively. Legacy "bearer_" tokens do not
// match it because of the underscore.
const bearerPrefix = "Bearer "

// auth is an HTTP middleware that validates the token in the "Authorization"
// header and stores its claims in the request context ([utils.WithClaims]).
//
// Both "Bearer <token>" and a bare token are accepted. Rejections answer with
// 401 {"error":"unauthorized"}; the reason is only logged. A token without a
// role answers 403, and a deny-list outage answers 503.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, ErrNoToken)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			writeError(w, r, err)
			return
		}

		claims, err := h.services.AuthService.ParseToken(r.Context(), tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		log := logger.FromRequest(r).With().Int64("principal_id", claims.ID).Logger()
		ctx := log.WithContext(utils.WithClaims(r.Context(), claims))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRole must be mounted after auth. It answers 401 when no claims are
// present and 403 when the role is not in allowed.
func (h *Handler) requireRole(allowed ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := utils.ClaimsFromContext(r.Context())
			if !ok {
				writeError(w, r, ErrNoClaims)
				return
			}

			if err := h.services.AuthService.Authorize(r.Context(), claims, allowed...); err != nil {
				writeError(w, r, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getTokenFromAuthHeader strips an optional "Bearer " scheme from the header
// value. An empty remainder yields [ErrEmptyToken].
func getTokenFromAuthHeader(authHeader string) (string, error) {
	tokenString := authHeader
	if len(authHeader) >= len(bearerPrefix) && strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		tokenString = authHeader[len(bearerPrefix):]
	}

	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
