// Package server initializes and runs the application: it opens the
// database, applies migrations, wires the service layer, and serves the
// HTTP API until a shutdown signal arrives. A background sweeper prunes
// expired refresh tokens on a configured interval.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/investrack/server/internal/auth"
	"github.com/investrack/server/internal/config"
	"github.com/investrack/server/internal/httpapi"
	"github.com/investrack/server/internal/logging"
	"github.com/investrack/server/internal/repositories/repomanager"
	"github.com/investrack/server/internal/services"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	repos    repomanager.RepositoryManager
	sessions *services.SessionService
	users    *services.UserService
	roles    *services.RoleService
	assets   *services.AssetService
	ports    *services.PortfolioService
	tokens   *auth.JWTManager
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := repomanager.OpenDB(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	repos := repomanager.NewPostgresRepositoryManager()
	tokens := auth.NewJWTManager(cfg.SecretKey, cfg.AccessTokenValidityDuration)
	verifier := services.NewBcryptVerifier(db, repos)

	return &App{
		config:   cfg,
		logger:   logger,
		db:       db,
		repos:    repos,
		sessions: services.NewSessionService(db, repos, verifier, tokens, logger, cfg),
		users:    services.NewUserService(db, repos, cfg.BcryptCost),
		roles:    services.NewRoleService(db, repos),
		assets:   services.NewAssetService(db, repos),
		ports:    services.NewPortfolioService(db, repos),
		tokens:   tokens,
	}, nil
}

func (app *App) initSignalHandler(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancel()
	}()
}

// startHTTPServer serves the API until ctx is canceled, then drains
// in-flight requests before returning.
func (app *App) startHTTPServer(ctx context.Context, cancel context.CancelFunc) {
	api := httpapi.NewServer(app.logger, app.sessions, app.users, app.roles, app.assets, app.ports, app.tokens)

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: api.Handler(),
	}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "error during shutdown", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", app.config.EndpointAddr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancel()
	}
}

// startTokenSweeper periodically removes expired refresh tokens so a
// dormant account does not keep a stale row forever.
func (app *App) startTokenSweeper(ctx context.Context) {
	ticker := time.NewTicker(app.config.TokenCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := app.repos.RefreshTokens(app.db).DeleteExpired(ctx)
			if err != nil {
				app.logger.Error(ctx, "error sweeping expired refresh tokens", "error", err)
				continue
			}
			if n > 0 {
				app.logger.Info(ctx, "swept expired refresh tokens", "count", n)
			}
		}
	}
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.logger.Info(ctx, "Starting app...")

	if err := app.repos.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	app.initSignalHandler(cancel)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancel)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startTokenSweeper(ctx)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing db", "error", err)
	}

	return nil
}
