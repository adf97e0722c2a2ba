package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/stocktake/internal/inventory/events/mqtt"
	httpapi "github.com/aussiebroadwan/stocktake/internal/inventory/http"
	"github.com/aussiebroadwan/stocktake/internal/inventory/service"
	"github.com/aussiebroadwan/stocktake/internal/inventory/store/drivers/sqlite"
	"github.com/aussiebroadwan/stocktake/pkg/httpx"
	"github.com/aussiebroadwan/stocktake/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X".
var BuildVersion = "v0.1.0"

// Application wires the inventory service together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db   *sqlite.Store
	keys SessionKeys

	// events is nil when no broker is configured.
	events *mqtt.Publisher

	userService         *service.UserService
	sessionService      *service.SessionService
	inventoryService    *service.InventoryService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "inventory-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keys, err := InitSessionKeys(cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.keys = keys

	if err := app.initEvents(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		app.closeDeps()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler exposes the HTTP handler, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("inventory service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			app.closeDeps()
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

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down inventory service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.closeDeps(); err != nil {
		return err
	}

	app.logger.Info("inventory service stopped")
	return nil
}

func (app *Application) closeDeps() error {
	if app.events != nil {
		if err := app.events.Close(); err != nil {
			app.logger.Warn("error closing mqtt client", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}

func (app *Application) initDatabase() error {
	dsn := sqlite.FileDSN(app.cfg.DatabaseFile)
	if app.cfg.DatabaseFile == sqlite.MemoryDSN {
		dsn = sqlite.MemoryDSN
	}

	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "path", app.cfg.DatabaseFile)
	return nil
}

func (app *Application) initEvents() error {
	if app.cfg.MQTT.BrokerURL == "" {
		app.logger.Info("mqtt broker not configured, device events disabled")
		return nil
	}

	pub, err := mqtt.Connect(mqtt.Config{
		BrokerURL:   app.cfg.MQTT.BrokerURL,
		ClientID:    app.cfg.MQTT.ClientID,
		Username:    app.cfg.MQTT.Username,
		Password:    app.cfg.MQTT.Password,
		TopicPrefix: app.cfg.MQTT.TopicPrefix,
		QoS:         byte(app.cfg.MQTT.QoS),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to mqtt broker: %w", err)
	}
	app.events = pub

	app.logger.Info("mqtt publisher connected",
		"broker", app.cfg.MQTT.BrokerURL,
		"registered_topic", pub.RegisteredTopic(),
		"notes_topic", pub.NotesTopic(),
	)
	return nil
}

func (app *Application) initServices() error {
	hasher, err := InitPasswordHasher(app.cfg)
	if err != nil {
		return err
	}

	app.userService = &service.UserService{Store: app.db, Hasher: hasher}
	app.sessionService = &service.SessionService{
		Store:    app.db,
		Users:    app.userService,
		Signer:   app.keys.Signer,
		Verifier: app.keys.Verifier,
		Issuer:   app.cfg.SessionIssuer,
		TTL:      app.cfg.SessionTTL,
	}

	var events service.EventPublisher = service.NopPublisher{}
	if app.events != nil {
		events = app.events
	}
	app.inventoryService = &service.InventoryService{
		Store:     app.db,
		Allocator: service.NewDeviceIDAllocator(app.db, app.cfg.SequenceWidth),
		Events:    events,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys.KeySet,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.UserService = app.userService
	router.SessionService = app.sessionService
	router.InventoryService = app.inventoryService
	router.CookieSecure = app.cfg.CookieSecure
	if app.events != nil {
		router.Events = app.events
	}

	if app.cfg.RateLimitEnabled {
		router.StrictLimit = app.cfg.StrictLimit.limit()
		router.ModerateLimit = app.cfg.ModerateLimit.limit()
	} else {
		router.StrictLimit = httpx.RateLimitConfig{}
		router.ModerateLimit = httpx.RateLimitConfig{}
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
