package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/swcatalog/location-server/internal/api"
	"github.com/swcatalog/location-server/internal/config"
	"github.com/swcatalog/location-server/internal/processing"
	"github.com/swcatalog/location-server/internal/service"
	"github.com/swcatalog/location-server/internal/store"
	"github.com/swcatalog/location-server/internal/store/inmemory"
	"github.com/swcatalog/location-server/internal/store/postgres"
	"github.com/swcatalog/location-server/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the location API server",
	Long: `Start the location API server to manage catalog-metadata source registrations.

With a database section in the configuration file, locations are persisted to
PostgreSQL. Without one the server falls back to an in-memory store, which is
only suitable for local development.`,
	RunE: runServe,
}

const (
	defaultGracefulTimeout = 30 * time.Second
	serverRequestTimeout   = 10 * time.Second
	serverReadTimeout      = 10 * time.Second
	// Must be > serverRequestTimeout to let the timeout middleware answer first.
	serverWriteTimeout = 15 * time.Second
	serverIdleTimeout  = 60 * time.Second
)

func init() {
	serveCmd.Flags().String("address", "", "Address to listen on (overrides server.address in config)")
	serveCmd.Flags().String("config", "", "Path to configuration file (YAML format)")

	if err := viper.BindPFlag("address", serveCmd.Flags().Lookup("address")); err != nil {
		logger.Fatalf("Failed to bind address flag: %v", err)
	}
	if err := viper.BindPFlag("config", serveCmd.Flags().Lookup("config")); err != nil {
		logger.Fatalf("Failed to bind config flag: %v", err)
	}
}

func loadServeConfig() (*config.Config, error) {
	configPath := viper.GetString("config")
	if configPath == "" {
		logger.Warn("No configuration file provided, using defaults")
		return config.Default(), nil
	}

	cfg, err := config.LoadConfig(config.WithConfigPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Infof("Loaded configuration from %s (allowed location types: %v)",
		configPath, cfg.AllowedLocationTypes())
	return cfg, nil
}

// newStore builds the location store from the configuration. The returned
// cleanup function releases the underlying connection pool, if any.
func newStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	if cfg.Database == nil {
		logger.Warn("No database configured, using in-memory location store")
		return inmemory.New(), func() {}, nil
	}

	connString, err := cfg.Database.GetConnectionString()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build connection string: %w", err)
	}

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s, err := postgres.New(postgres.WithConnectionPool(pool))
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to create location store: %w", err)
	}

	logger.Infof("Connected to database %s@%s:%d/%s",
		cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)
	return s, pool.Close, nil
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadServeConfig()
	if err != nil {
		return err
	}

	address := viper.GetString("address")
	if address == "" {
		address = cfg.Server.Address
	}

	locationStore, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	svc, err := service.New(
		service.WithStore(locationStore),
		service.WithOrchestrator(processing.NewPassthrough()),
		service.WithConfig(cfg),
	)
	if err != nil {
		return fmt.Errorf("failed to create location service: %w", err)
	}

	router := api.NewServer(svc,
		api.WithMiddlewares(
			middleware.RequestID,
			middleware.RealIP,
			middleware.Recoverer,
			middleware.Timeout(serverRequestTimeout),
			api.LoggingMiddleware,
		),
	)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	go func() {
		logger.Infof("Server listening on %s", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultGracefulTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	logger.Info("Server shutdown complete")
	return nil
}
