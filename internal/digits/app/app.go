package app

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/digits/internal/digits/http"
	"github.com/aussiebroadwan/digits/internal/digits/service"
	redisstore "github.com/aussiebroadwan/digits/internal/digits/store/drivers/redis"
	"github.com/aussiebroadwan/digits/internal/digits/store/drivers/sqlite"
	"github.com/aussiebroadwan/digits/pkg/cryptox"
	"github.com/aussiebroadwan/digits/pkg/httpx"
	"github.com/aussiebroadwan/digits/pkg/jwtx"
	"github.com/aussiebroadwan/digits/pkg/slogx"
	"github.com/redis/go-redis/v9"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"

	secretSize = 32
)

// Application holds the digits service and everything it depends on.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       *sqlite.Store
	rdb      *redis.Client // nil unless sessions live in redis
	sessions *redisstore.Sessions
	signer   *jwtx.CommitSigner

	entryService *service.EntryService
	authService  *service.AuthService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "digits",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	pepper, err := cryptox.LoadOrGenerateSecret(cfg.PepperFile, secretSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}
	cryptox.SetPepper(base64.RawURLEncoding.EncodeToString(pepper))

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initSessions(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initSigner(); err != nil {
		app.closeStores()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the router, mostly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the server and blocks until it fails or a shutdown signal arrives.
func (app *Application) Run() error {
	app.logger.Info("digits service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"session_backend", app.cfg.SessionBackend,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.closeStores()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests, then closes redis and the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down digits service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.closeStores(); err != nil {
		return err
	}

	app.logger.Info("digits service stopped")
	return nil
}

func (app *Application) closeStores() error {
	if app.rdb != nil {
		if err := app.rdb.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}

func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initSessions() error {
	switch app.cfg.SessionBackend {
	case SessionBackendSQLite:
		return nil
	case SessionBackendRedis:
	default:
		return fmt.Errorf("unknown session backend %q", app.cfg.SessionBackend)
	}

	app.rdb = redis.NewClient(&redis.Options{
		Addr:     app.cfg.RedisAddr,
		Password: app.cfg.RedisPassword,
		DB:       app.cfg.RedisDB,
	})
	app.sessions = redisstore.NewSessions(app.rdb, redisstore.DefaultPrefix)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.sessions.Ping(ctx); err != nil {
		_ = app.rdb.Close()
		app.rdb = nil
		return fmt.Errorf("failed to connect to redis at %s: %w", app.cfg.RedisAddr, err)
	}

	app.logger.Info("redis session store connected", "addr", app.cfg.RedisAddr)
	return nil
}

func (app *Application) initSigner() error {
	key, err := cryptox.LoadOrGenerateSecret(app.cfg.SigningKeyFile, secretSize)
	if err != nil {
		return fmt.Errorf("failed to load signing key: %w", err)
	}

	signer, err := jwtx.NewCommitSigner(key, jwtx.DefaultCommitTTL)
	if err != nil {
		return fmt.Errorf("failed to create commit signer: %w", err)
	}
	app.signer = signer
	return nil
}

func (app *Application) initServices() {
	app.entryService = &service.EntryService{
		Store:  app.db,
		Signer: app.signer,
	}

	app.authService = &service.AuthService{
		Store:      app.db,
		SessionTTL: app.cfg.SessionTTL,
	}
	if app.sessions != nil {
		app.authService.Sessions = app.sessions
	}
}

func (app *Application) initHTTP() {
	cookie := httpx.SessionCookie{
		Name:   httpapi.SessionCookieName,
		Secure: app.cfg.CookieSecure,
		TTL:    app.cfg.SessionTTL,
	}

	router := httpapi.NewRouter(BuildVersion, app.db, cookie, app.logger)
	router.EntryService = app.entryService
	router.AuthService = app.authService
	if app.sessions != nil {
		router.SessionStore = app.sessions
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
