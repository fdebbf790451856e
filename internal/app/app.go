package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/Shoyas/chatline-server/internal/config"
	"github.com/Shoyas/chatline-server/internal/core"
	"github.com/Shoyas/chatline-server/internal/roster"
	"github.com/Shoyas/chatline-server/internal/roster/sqlite"
	transporthttp "github.com/Shoyas/chatline-server/internal/transport/http"
)

// App wires together core and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	hub             *core.Hub
	roster          roster.Store
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	rosterStore, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init roster: %w", err)
	}

	users, err := rosterStore.ListUsers(context.Background())
	if err != nil {
		rosterStore.Close()
		return nil, fmt.Errorf("load roster: %w", err)
	}

	dirUsers := make([]core.User, 0, len(users))
	for _, u := range users {
		dirUsers = append(dirUsers, core.User{ID: u.ID, DisplayName: u.DisplayName})
	}

	logger.Info().Str("db_path", cfg.DatabasePath).Int("users", len(users)).Msg("roster loaded")

	svc := core.NewService(core.NewDirectory(dirUsers))
	hub := core.NewHub(svc, logger)
	server := transporthttp.NewServer(hub, svc, cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		hub:             hub,
		roster:          rosterStore,
		log:             logger,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go a.hub.Run(ctx)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		a.cleanup()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.cleanup()
			return err
		}

		a.cleanup()
		return <-serverErr
	}
}

// cleanup closes the roster store and other resources.
func (a *App) cleanup() {
	if a.roster != nil {
		if err := a.roster.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close roster store")
		} else {
			a.log.Info().Msg("roster store closed")
		}
	}
}
