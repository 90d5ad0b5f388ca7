package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/lexilearn-api/internal/api"
	apiMiddleware "github.com/phrazzld/lexilearn-api/internal/api/middleware"
	"github.com/phrazzld/lexilearn-api/internal/api/shared"
)

const (
	maxRequestBodyBytes = 1 << 20
	healthCheckTimeout  = 2 * time.Second
)

// setupRouter builds the request pipeline and registers every route.
// Paths outside /user, /vocab and /health require a bearer token; an
// unknown path with a valid token is a 404.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.StaticFiles(app.config.Server.StaticDir))
	r.Use(middleware.RequestSize(maxRequestBodyBytes))

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	authHandler := api.NewAuthHandler(app.authService)
	vocabHandler := api.NewVocabHandler(app.catalogService)

	r.Route("/user", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/register", authHandler.Register)
		r.Post("/verify", authHandler.Verify)
		r.Post("/login", authHandler.Login)
		r.NotFound(notFound)
		r.MethodNotAllowed(methodNotAllowed)
	})

	r.Route("/vocab", func(r chi.Router) {
		r.Use(authMiddleware.OptionalAuthenticate)
		r.Get("/", vocabHandler.ListVocabs)
		r.Get("/{id}", vocabHandler.DownloadVocab)
		r.NotFound(notFound)
		r.MethodNotAllowed(methodNotAllowed)
	})

	r.With(authMiddleware.Authenticate).Get("/me/downloads", vocabHandler.ListDownloads)

	r.Get("/health", app.health)

	r.NotFound(authMiddleware.Authenticate(http.HandlerFunc(notFound)).ServeHTTP)
	r.MethodNotAllowed(authMiddleware.Authenticate(http.HandlerFunc(methodNotAllowed)).ServeHTTP)

	return r
}

func notFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusNotFound, api.MsgNotFound)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
}

// health reports whether the database answers a ping.
func (app *application) health(w http.ResponseWriter, r *http.Request) {
	if app.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()
		if err := app.db.PingContext(ctx); err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, "Database unavailable", err)
			return
		}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
