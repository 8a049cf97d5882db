package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/gcbaptista/inverted-index/api"
	"github.com/gcbaptista/inverted-index/config"
	"github.com/gcbaptista/inverted-index/internal/metrics"
)

func newServeCmd() *cobra.Command {
	var port int
	var preload []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Example: `  inverted_index serve
  inverted_index serve --port 9000 --config config.yaml
  inverted_index serve --index ./books.json --index https://example.com/more.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, preload)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to run the server on (overrides config)")
	cmd.Flags().StringArrayVar(&preload, "index", nil, "Location to index before serving (repeatable)")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, preload []string) error {
	logger := setupLogging(os.Stderr, cfg)
	m := metrics.New()
	eng, err := newEngine(cfg, m)
	if err != nil {
		return err
	}
	defer eng.Close()

	if len(preload) > 0 {
		if err := eng.CreateIndexes(ctx, preload...); err != nil {
			return err
		}
		logger.Info("preloaded indexes", "count", len(preload))
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	opts := api.Options{
		MaxRequestBytes:     cfg.Server.MaxRequestBytes,
		CreateRatePerSecond: cfg.Server.CreateRatePerSecond,
		CreateBurst:         cfg.Server.CreateBurst,
	}
	if cfg.Metrics.Enabled {
		opts.Metrics = m
		opts.MetricsPath = cfg.Metrics.Path
	}
	api.SetupRoutes(router, eng, opts)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
