// ABOUTME: Shared HTTP router construction for trends services
// ABOUTME: Wires CORS, request logging, and rate limiting middleware

package api

import (
	"trends-shared/api/middleware"
	"trends-shared/core/interfaces"
	"trends-shared/pkg/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// RouterConfig holds configuration for the shared router
type RouterConfig struct {
	Logger         interfaces.Logger
	AllowedOrigins []string
	RateLimit      config.RateLimitConfig
}

// NewRouter creates a Chi router with the shared middleware stack applied.
// Services mount their own routes on the returned router.
func NewRouter(cfg RouterConfig) chi.Router {
	router := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// CORS should be the first middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLogging(cfg.Logger))
	}

	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit)
		router.Use(middleware.RateLimit(limiter))
	}

	return router
}
