package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Kariaki58/favfareclinic/internal/booking"
	"github.com/Kariaki58/favfareclinic/internal/contact"
	"github.com/Kariaki58/favfareclinic/internal/http/handlers"
	httpmiddleware "github.com/Kariaki58/favfareclinic/internal/http/middleware"
	"github.com/Kariaki58/favfareclinic/internal/optimizer"
	"github.com/Kariaki58/favfareclinic/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	CatalogHandler     *handlers.CatalogHandler
	BookingHandler     *booking.Handler
	ContactHandler     *contact.Handler
	WizardHandler      *handlers.WizardHandler
	OptimizerHandler   *optimizer.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
	// Extra request headers browsers may send. Empty keeps the middleware default.
	CORSAllowedHeaders []string

	// Per-IP limit on form and optimizer endpoints. Zero disables it.
	RateLimitRPS   float64
	RateLimitBurst int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httpmiddleware.Recoverer(cfg.Logger))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(httpmiddleware.CORSOptions{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			// The wizard API is the only PATCH/DELETE surface.
			AllowedMethods: corsMethods(cfg),
			AllowedHeaders: cfg.CORSAllowedHeaders,
		}))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	limited := func(next http.Handler) http.Handler { return next }
	if cfg.RateLimitRPS > 0 {
		limited = httpmiddleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	r.Get("/health", handlers.HealthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		if cfg.CatalogHandler != nil {
			api.Get("/catalog", cfg.CatalogHandler.Catalog)
			api.Get("/services", cfg.CatalogHandler.Services)
			api.Get("/time-slots", cfg.CatalogHandler.TimeSlots)
		}

		api.Group(func(forms chi.Router) {
			forms.Use(limited)
			if cfg.BookingHandler != nil {
				forms.Post("/bookings", cfg.BookingHandler.Create)
			}
			if cfg.ContactHandler != nil {
				forms.Post("/contact", cfg.ContactHandler.Create)
			}
			if cfg.OptimizerHandler != nil {
				forms.Post("/optimizer/hero-copy", cfg.OptimizerHandler.HeroCopy)
			}
			if cfg.WizardHandler != nil {
				forms.Route("/booking-wizard", cfg.WizardHandler.Routes)
			}
		})
	})

	return r
}

func corsMethods(cfg *Config) []string {
	methods := []string{http.MethodGet, http.MethodPost}
	if cfg.WizardHandler != nil {
		methods = append(methods, http.MethodPatch, http.MethodDelete)
	}
	return methods
}
