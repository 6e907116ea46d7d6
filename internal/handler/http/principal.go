package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/storefront-auth/internal/utils"
	"github.com/MKhiriev/storefront-auth/models"
)

func (h *Handler) getPrincipal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, r, ErrInvalidPrincipal)
		return
	}

	if err = h.validator.Validate(r.Context(), models.PrincipalView{ID: id}); err != nil {
		writeError(w, r, err)
		return
	}

	view, err := h.services.PrincipalService.GetPrincipal(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, view, http.StatusOK)
}

func (h *Handler) createPrincipal(w http.ResponseWriter, r *http.Request) {
	var np models.NewPrincipal
	if err := decodeJSON(w, r, &np); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.validator.Validate(r.Context(), np); err != nil {
		writeError(w, r, err)
		return
	}

	view, err := h.services.PrincipalService.CreatePrincipal(r.Context(), np)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, view, http.StatusCreated)
}
