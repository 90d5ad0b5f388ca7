package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/lexilearn-api/internal/config"
	"github.com/phrazzld/lexilearn-api/internal/platform/mail"
	"github.com/phrazzld/lexilearn-api/internal/platform/postgres"
	"github.com/phrazzld/lexilearn-api/internal/service/auth"
	"github.com/phrazzld/lexilearn-api/internal/service/catalog"
	"github.com/phrazzld/lexilearn-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService     auth.JWTService
	authService    auth.Service
	catalogService catalog.Service
}

// newApplication wires the stores, mailer and services around an open database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Duration("token_lifetime", cfg.Auth.TokenLifetime))

	mailer, err := mail.NewSMTPMailer(cfg.Mail, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mailer: %w", err)
	}

	userStore := postgres.NewPostgresUserStore(db, logger)
	codeStore := postgres.NewPostgresVerificationCodeStore(db, logger)
	vocabStore := postgres.NewPostgresVocabStore(db, logger)

	app.authService, err = auth.NewService(auth.Options{
		Users:   userStore,
		Codes:   codeStore,
		Tx:      store.SQLTxRunner{DB: db},
		Mailer:  mailer,
		Hasher:  auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		Tokens:  app.jwtService,
		CodeTTL: cfg.Auth.CodeTTL,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	app.catalogService, err = catalog.NewService(vocabStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is cancelled, then releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		closeDB(app.db, app.logger)
	}
	app.logger.Info("Application shutdown completed")
}
