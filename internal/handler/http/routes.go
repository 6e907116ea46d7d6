package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MKhiriev/storefront-auth/internal/utils"
	"github.com/MKhiriev/storefront-auth/models"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}
	if len(h.cfg.CORSAllowedOrigins) > 0 {
		router.Use(h.withCORS())
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/login", h.login)
		r.Get("/api/version", h.getServerVersion)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/api/auth/logout", h.logout)
		r.Get("/api/auth/me", h.me)

		r.Group(func(r chi.Router) {
			r.Use(h.requireRole(models.RoleAdmin))
			r.Get("/api/admin/principals/{id}", h.getPrincipal)
			r.Post("/api/admin/principals", h.createPrincipal)
		})
	})

	router.NotFound(notFound)
	// an unsupported method on a known route looks the same as an unknown route
	router.MethodNotAllowed(notFound)

	return router
}

func (h *Handler) withCORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", traceIDHeader},
		ExposedHeaders:   []string{"Authorization", traceIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteError(w, msgNotFound, http.StatusNotFound)
}
