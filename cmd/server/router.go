package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lexa-app/lexa-api/internal/api"
	apiMiddleware "github.com/lexa-app/lexa-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	progressHandler := api.NewProgressHandler(app.progressService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Word-scoped learning actions
			r.Post("/progress/words/{id}/view", progressHandler.RecordView)
			r.Post("/progress/words/{id}/recall", progressHandler.RecordRecall)
			r.Post("/progress/words/{id}/production", progressHandler.RecordProduction)
			r.Post("/progress/words/{id}/mastered", progressHandler.RecordMastered)
			r.Post("/progress/words/{id}/swipe", progressHandler.RecordSwipe)
			r.Post("/progress/words/{id}/bookmark", progressHandler.SetBookmark)

			// Day-scoped operations
			r.Post("/progress/session", progressHandler.RecordSession)
			r.Put("/progress/goal", progressHandler.SetDailyGoal)

			// Read model
			r.Get("/dashboard", progressHandler.GetDashboard)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
