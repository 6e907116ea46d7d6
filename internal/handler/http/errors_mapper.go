package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/storefront-auth/internal/logger"
	"github.com/MKhiriev/storefront-auth/internal/service"
	"github.com/MKhiriev/storefront-auth/internal/store"
	"github.com/MKhiriev/storefront-auth/internal/token"
	"github.com/MKhiriev/storefront-auth/internal/utils"
	"github.com/MKhiriev/storefront-auth/internal/validators"
)

// Messages sent to clients. Auth failures never say why a token or a
// password was rejected.
const (
	msgUnauthorized       = "unauthorized"
	msgInvalidCredentials = "invalid credentials"
	msgForbidden          = "forbidden"
	msgNotFound           = "not found"
	msgConflict           = "principal already exists"
	msgInternal           = "internal server error"
	msgUnavailable        = "service unavailable"
)

var errorStatusMap = map[error]int{
	ErrNoToken:          http.StatusUnauthorized,
	ErrEmptyToken:       http.StatusUnauthorized,
	ErrNoClaims:         http.StatusUnauthorized,
	ErrInvalidJSON:      http.StatusBadRequest,
	ErrInvalidPrincipal: http.StatusBadRequest,

	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrInvalidRole:         http.StatusBadRequest,
	service.ErrInvalidCredentials:  http.StatusUnauthorized,
	service.ErrCorruptCredential:   http.StatusInternalServerError,
	service.ErrTokenCreationFailed: http.StatusInternalServerError,
	service.ErrInfrastructure:      http.StatusServiceUnavailable,
	service.ErrPrincipalNotFound:   http.StatusNotFound,
	service.ErrPrincipalExists:     http.StatusConflict,

	token.ErrInvalidToken:          http.StatusUnauthorized,
	token.ErrExpired:               http.StatusUnauthorized,
	token.ErrForbidden:             http.StatusForbidden,
	token.ErrRevocationUnavailable: http.StatusServiceUnavailable,

	store.ErrStoreUnavailable: http.StatusServiceUnavailable,
	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,

	validators.ErrEmptyUsername:    http.StatusBadRequest,
	validators.ErrUsernameTooLong:  http.StatusBadRequest,
	validators.ErrInvalidUsername:  http.StatusBadRequest,
	validators.ErrEmptyPassword:    http.StatusBadRequest,
	validators.ErrPasswordTooLong:  http.StatusBadRequest,
	validators.ErrInvalidEmail:     http.StatusBadRequest,
	validators.ErrInvalidRole:      http.StatusBadRequest,
	validators.ErrInvalidPrincipal: http.StatusBadRequest,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError picks the client-facing message for err. Bad requests
// echo the validation error; everything else gets a fixed text per status.
func messageFromError(err error, status int) string {
	switch status {
	case http.StatusBadRequest:
		return err.Error()
	case http.StatusUnauthorized:
		if errors.Is(err, service.ErrInvalidCredentials) {
			return msgInvalidCredentials
		}
		return msgUnauthorized
	case http.StatusForbidden:
		return msgForbidden
	case http.StatusNotFound:
		return msgNotFound
	case http.StatusConflict:
		return msgConflict
	case http.StatusServiceUnavailable:
		return msgUnavailable
	default:
		return msgInternal
	}
}

// writeError logs err with the request logger and writes the mapped status
// with an {"error": ...} body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Info().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteError(w, messageFromError(err, status), status)
}
