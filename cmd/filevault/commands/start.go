package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/marmos91/filevault/internal/api"
	"github.com/marmos91/filevault/internal/logger"
	"github.com/marmos91/filevault/pkg/auth"
	"github.com/marmos91/filevault/pkg/config"
	"github.com/marmos91/filevault/pkg/content"
	"github.com/marmos91/filevault/pkg/files"
	"github.com/marmos91/filevault/pkg/metrics"
	"github.com/marmos91/filevault/pkg/session"
	"github.com/marmos91/filevault/pkg/store"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the FileVault server",
	Long: `Start the FileVault server with the specified configuration.

Use --config to specify a custom configuration file, or it will use the
default location at $XDG_CONFIG_HOME/filevault/config.yaml.

Examples:
  # Start with default config location
  filevault start

  # Start with custom config file
  filevault start --config /etc/filevault/config.yaml

  # Start with environment variable overrides
  FILEVAULT_LOGGING_LEVEL=DEBUG filevault start`,
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	// Initialize the structured logger
	if err := InitLogger(cfg); err != nil {
		return err
	}

	// Create cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("Log level", "level", cfg.Logging.Level, "format", cfg.Logging.Format)
	logger.Info("Configuration loaded", "source", getConfigSource(GetConfigFile()))

	// Initialize metrics FIRST so IsEnabled() holds when the router is built
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
	}

	// Metadata store (SQLite or Postgres)
	metaStore, err := store.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize metadata store: %w", err)
	}
	defer func() { _ = metaStore.Close() }()
	logger.Info("Metadata store initialized", "type", cfg.Database.Type)

	// Session store (Redis)
	sessions, err := session.NewRedisStore(&cfg.Session)
	if err != nil {
		return fmt.Errorf("failed to connect to session store: %w", err)
	}
	defer func() { _ = sessions.Close() }()
	logger.Info("Session store connected", "host", cfg.Session.Host, "port", cfg.Session.Port)

	// Content store (filesystem or S3)
	contentStore, err := content.New(&cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize content store: %w", err)
	}
	logger.Info("Content store initialized", "backend", cfg.Storage.Backend)

	gate := auth.NewGate(sessions, metaStore)
	svc := files.NewService(metaStore, contentStore)

	apiServer := api.NewServer(cfg.API, gate, svc, metaStore, sessions)
	apiServer.SetShutdownTimeout(cfg.ShutdownTimeout)
	logger.Info("API server configured", "port", apiServer.Port())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return apiServer.Start(gctx)
	})

	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewServer(cfg.Metrics)
		metricsServer.SetShutdownTimeout(cfg.ShutdownTimeout)
		logger.Info("Metrics enabled", "port", cfg.Metrics.Port)
		g.Go(func() error {
			return metricsServer.Start(gctx)
		})
	} else {
		logger.Info("Metrics collection disabled")
	}

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- g.Wait()
	}()

	logger.Info("Server is running. Press Ctrl+C to stop.")

	select {
	case <-sigChan:
		logger.Info("Shutdown signal received, initiating graceful shutdown")
		cancel()

		if err := <-serverDone; err != nil {
			logger.Error("Server shutdown error", "error", err)
			return err
		}
		logger.Info("Server stopped gracefully")

	case err := <-serverDone:
		if err != nil {
			logger.Error("Server error", "error", err)
			return err
		}
		logger.Info("Server stopped")
	}

	return nil
}

// getConfigSource returns a description of where the config was loaded from
func getConfigSource(configFile string) string {
	if configFile != "" {
		return configFile
	}
	if config.DefaultConfigExists() {
		return config.GetDefaultConfigPath()
	}
	return "defaults"
}
