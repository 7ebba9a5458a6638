package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/oxmics/metics-site/internal/config"
	"github.com/oxmics/metics-site/internal/contact"
	"github.com/oxmics/metics-site/internal/pkg/httputil"
)

// NewRouter configures the gateway's routes and middleware.
func NewRouter(cfg *config.Config, gateway *contact.Handler, health *HealthChecker) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS: allowed origins are echoed back, everything else gets no
	// permission header but the request is still processed (the browser
	// does the blocking). OPTIONS passes through so the explicit route
	// below can answer preflights with 204 and no body.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:     cfg.CORS.AllowedOrigins,
		AllowedMethods:     []string{"POST", "OPTIONS"},
		AllowedHeaders:     []string{"Content-Type", "Accept"},
		MaxAge:             300,
		OptionsPassthrough: true,
	}))

	// Wrong-method and unknown-path responses keep the JSON envelope.
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.MethodNotAllowed(w)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.Error(w, http.StatusNotFound, "Not found")
	})

	// Health (no CORS requirements, infrastructure probes only)
	r.Get("/health", health.HandleHealth)
	r.Get("/health/live", health.HandleLiveness)
	r.Get("/health/ready", health.HandleReadiness)

	r.Route("/api", func(r chi.Router) {
		r.Post("/contact", gateway.HandleSubmit)
		r.Options("/contact", func(w http.ResponseWriter, _ *http.Request) {
			httputil.NoContent(w)
		})
	})

	return r
}
