// internal/httpapi/router.go

// Package httpapi exposes the agent's HTTP surface.
package httpapi

import (
	"net/http"

	"SpudsBot-Go/internal/app"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter configures all routes and middleware for the application.
func NewRouter(a *app.App) http.Handler {
	h := &Handler{
		store:    a.Store,
		search:   a.SearchClient,
		composer: a.Composer,
		validate: a.Validate,
		logger:   a.Logger,
	}
	// Assigned only when configured; a nil *S3Sink must not reach the
	// interface field.
	if a.InteractionLog != nil {
		h.interactions = a.InteractionLog
	}

	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(a.Logger))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Use(rateLimit(a.RateLimiter, a.UsageCache))

	router.Get("/", h.Root)
	router.Get("/health", h.Health)
	router.Get("/test/route", h.TestRoute)

	router.Post("/user/info", h.CollectUserInfo)
	router.Get("/fishing-conditions/{firstName}", h.FishingConditions)

	router.Route("/agent", func(r chi.Router) {
		r.Post("/take-note", h.TakeNote)
		r.Post("/search", h.Search)
		r.Get("/get-note", h.GetNote)
	})

	return router
}
