// Package server initializes and runs the application: it wires the
// configuration, the lazy store connection manager, the credential and item
// services, and the HTTP endpoint, and handles graceful shutdown on OS
// signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/itemvault/internal/dbx"
	"github.com/dmitrijs2005/itemvault/internal/logging"
	"github.com/dmitrijs2005/itemvault/internal/server/config"
	"github.com/dmitrijs2005/itemvault/internal/server/db"
	"github.com/dmitrijs2005/itemvault/internal/server/httpapi"
	"github.com/dmitrijs2005/itemvault/internal/server/items"
	"github.com/dmitrijs2005/itemvault/internal/server/users"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	manager     *db.Manager
	userService *users.Service
	itemService *items.Service
}

func NewApp(cfg *config.Config) (*App, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	manager, err := db.NewManager(cfg.DatabaseDSN, cfg.DatabaseName, cfg.ConnectAttempts, logger)
	if err != nil {
		return nil, err
	}

	userRepo, err := newUserRepository(cfg, manager.Provider())
	if err != nil {
		return nil, err
	}

	us, err := users.NewService(userRepo, cfg)
	if err != nil {
		return nil, err
	}

	is := items.NewService(items.NewPostgresRepository(manager.Provider()))

	return &App{
		config:      cfg,
		logger:      logger,
		manager:     manager,
		userService: us,
		itemService: is,
	}, nil
}

// newUserRepository selects the credential backend. The in-memory store is
// the default and keeps accounts for the lifetime of the process only.
func newUserRepository(cfg *config.Config, conn dbx.Provider) (users.Repository, error) {
	switch cfg.UserStore {
	case config.UserStoreMemory:
		return users.NewMemoryRepository(), nil
	case config.UserStorePostgres:
		return users.NewPostgresRepository(conn), nil
	}
	return nil, fmt.Errorf("unknown user store %q", cfg.UserStore)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewHTTPServer(app.config.EndpointAddr, app.logger,
		app.userService, app.itemService, app.manager, app.config.CORSOrigins)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	// best-effort warm-up so the retry loop runs before the first request
	go func() {
		if _, err := app.manager.Conn(ctx); err != nil {
			app.logger.Warn(ctx, "store warm-up failed", "error", err)
		}
	}()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.manager.Close(); err != nil {
		app.logger.Warn(ctx, "error closing store connection", "error", err)
	}
}
