package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/tasktrack/tasktrack-api/internal/config"
	"github.com/tasktrack/tasktrack-api/internal/platform/postgres"
	"github.com/tasktrack/tasktrack-api/internal/service/auth"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

// application holds the shared application dependencies so wiring happens in
// one place and cleanup is straightforward on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore
	taskStore store.TaskStore

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
}

// newApplication wires the stores and services on top of the given database
// connection.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) *application {
	verifier := auth.NewBcryptVerifier()

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		// Config validation already enforced the secret length; reaching
		// this means Load and NewJWTService disagree.
		panic(fmt.Sprintf("jwt service misconfigured: %v", err))
	}

	return &application{
		config:           cfg,
		logger:           logger,
		db:               db,
		userStore:        postgres.NewUserStore(db, verifier, logger),
		taskStore:        postgres.NewTaskStore(db, logger),
		jwtService:       jwtService,
		passwordVerifier: verifier,
	}
}
