package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/lingo/internal/api"
	apiMiddleware "github.com/phrazzld/lingo/internal/api/middleware"
)

// setupRouter creates the router with the HTML shell at the root, the JSON
// API under /api and a health check.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(app.logger))

	shellHandler := api.NewShellHandler(app.sessions, app.templates, app.logger)
	lessonHandler := api.NewLessonHandler(app.sessions, app.logger)

	shellHandler.RegisterRoutes(r)
	r.Route("/api", lessonHandler.RegisterRoutes)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
