package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"knowledgeagent/internal/api"
	apiMiddleware "knowledgeagent/internal/api/middleware"
	"knowledgeagent/internal/migrate"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Create API handlers using the application's services
	statusHandler := api.NewStatusHandler(app.config, app.db, migrate.Version, app.logger)
	userHandler := api.NewUserHandler()
	collectionHandler := api.NewCollectionHandler(app.collectionStore, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenVerifier)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/status", statusHandler.Status)
		r.Get("/users", userHandler.ListUsers)
		r.Get("/users/{id}", userHandler.GetUser)

		// Admin routes (bearer token required)
		r.Route("/admin", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/collections", collectionHandler.ListCollections)
			r.Post("/collections", collectionHandler.CreateCollection)
			r.Get("/collections/{name}", collectionHandler.GetCollection)
			r.Delete("/collections/{name}", collectionHandler.DeleteCollection)
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
