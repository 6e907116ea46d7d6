// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/storefront-auth/internal/logger"
	"github.com/MKhiriev/storefront-auth/internal/utils"
	"github.com/MKhiriev/storefront-auth/models"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.validator.Validate(ctx, req); err != nil {
		writeError(w, r, err)
		return
	}

	principal, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	issued, err := h.services.AuthService.CreateToken(ctx, principal)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("id", principal.ID).Str("role", principal.Role.String()).Msg("principal logged in")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", issued.SignedString))
	utils.WriteJSON(w, models.LoginResponse{
		Token: issued.SignedString,
		User:  principal.View(),
	}, http.StatusOK)
}

// logout revokes the presented token when a deny-list is configured. Without
// one the token stays valid until it expires.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := utils.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoClaims)
		return
	}

	if err := h.services.AuthService.Revoke(r.Context(), claims); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := utils.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoClaims)
		return
	}

	utils.WriteJSON(w, claims.View(), http.StatusOK)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}
