package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/clinic-dashboard/internal/app"
	"github.com/jwalitptl/clinic-dashboard/internal/config"
	"github.com/jwalitptl/clinic-dashboard/internal/worker"
	"github.com/jwalitptl/clinic-dashboard/pkg/logger"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:          "clinic",
		Short:        "Clinic dashboard scheduling and search service",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yml")

	root.AddCommand(newServeCmd(), newAgendaCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration and installs the process logger.
func setup() (*config.Config, *logger.Logger, error) {
	logCfg, err := logger.ConfigFromEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read logger config: %w", err)
	}
	lg := logger.NewLogger(logCfg)
	log.Logger = lg.Zerolog()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, lg, nil
}

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, lg, err := setup()
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Server.Port = port
			}
			return serve(cfg, lg)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides config)")
	return cmd
}

func serve(cfg *config.Config, lg *logger.Logger) error {
	a, err := app.New(cfg, lg)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           a.Router.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	cleanup := worker.NewAuditCleanupWorker(a.Audit, lg, cfg.Audit.Retention(), cfg.Audit.CleanupInterval())
	go cleanup.Start(workerCtx)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}
	log.Info().Msg("shutting down server...")
	stopWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownSeconds)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server exited properly")
	return nil
}
