package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-services/config"
	"clinic-services/internal/client"
	"clinic-services/internal/infrastructure/database"
	"clinic-services/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies of one service process
type App struct {
	Service      string
	Config       *config.Config
	Log          *logrus.Logger
	DB           *gorm.DB
	RedisClient  *redis.Client
	IndexService *service.DocumentIndexService
	Server       *http.Server

	accounts *client.ServiceClient
}

// Open loads configuration and connects the stores owned by service.
// It does not build the HTTP server; commands such as seed and reindex use it directly.
func Open(serviceName string) (*App, error) {
	if !config.IsKnownService(serviceName) {
		return nil, fmt.Errorf("unknown service %q", serviceName)
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	app := &App{
		Service: serviceName,
		Config:  cfg,
		Log:     setupLogger(cfg.App.LogLevel),
	}
	app.Log.WithField("service", serviceName).Info("Configuration loaded successfully")

	if serviceName == config.ServiceAccount && cfg.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required for the account service")
	}

	// Initialize database
	db, err := database.NewConnection(cfg.DB, cfg.IsProduction())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	app.Log.Info("Database connected successfully")

	if serviceName == config.ServiceDocument {
		if err := app.initializeIndexing(); err != nil {
			app.Close()
			return nil, err
		}
	}

	return app, nil
}

// New creates a ready-to-run App for one service
func New(serviceName string) (*App, error) {
	app, err := Open(serviceName)
	if err != nil {
		return nil, err
	}

	server, err := app.initializeServer()
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) *logrus.Logger {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	return logrus.StandardLogger()
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	if app.IndexService != nil {
		app.IndexService.Start()
	}

	// Start server in goroutine
	go func() {
		app.Log.Infof("%s service starting on port %s", app.Service, app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close stops background workers and closes all connections
func (app *App) Close() {
	if app.IndexService != nil {
		app.IndexService.Stop()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
