// Package cmd provides the CLI commands for inverted_index.
package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gcbaptista/inverted-index/config"
	"github.com/gcbaptista/inverted-index/internal/engine"
	"github.com/gcbaptista/inverted-index/internal/logging"
	"github.com/gcbaptista/inverted-index/internal/metrics"
	"github.com/gcbaptista/inverted-index/internal/source"
)

// Version is the CLI version reported by --version.
var Version = "1.0.0"

// NewRootCmd creates the root command for the inverted_index CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inverted_index",
		Short: "Build inverted indexes from JSON document collections and search them",
		Long: `inverted_index builds an inverted index from a JSON object of documents
({"id": {"title": "...", "text": "..."}}) read from a local file or an
HTTP URL, and answers word lookups with the first matching document id.

Run 'inverted_index serve' for the HTTP API or 'inverted_index search'
for a one-shot lookup.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.SetVersionTemplate("inverted_index version {{.Version}}\n")
	cmd.PersistentFlags().String("config", "", "Path to a YAML config file")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newSearchCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

// newEngine wires the document sources and the engine from cfg.
// Call setupLogging first: component loggers derive from the default logger.
func newEngine(cfg *config.Config, m *metrics.Metrics) (*engine.Engine, error) {
	remote := source.NewHTTPSource(
		source.WithTimeout(cfg.Source.HTTPTimeout),
		source.WithMaxBodyBytes(cfg.Source.MaxBodyBytes),
	)
	guard, err := source.NewGuardSource(source.NewRouter(source.NewFileSource(), remote), source.Policy{
		AllowedRoots: cfg.Source.AllowedRoots,
		AllowRemote:  cfg.Source.AllowRemote,
		AllowedHosts: cfg.Source.AllowedHosts,
	})
	if err != nil {
		return nil, fmt.Errorf("source policy: %w", err)
	}
	src := source.NewLoggingSource(guard, logging.WithComponent("source"))

	return engine.NewEngine(src,
		engine.WithMetrics(m),
		engine.WithLogger(logging.WithComponent("engine")),
		engine.WithCacheSize(cfg.Search.CacheSize),
		engine.WithMaxConcurrentBuilds(cfg.Indexing.MaxConcurrentBuilds),
	), nil
}

func setupLogging(w io.Writer, cfg *config.Config) *slog.Logger {
	return logging.SetupWriter(w, cfg.Logging.Level, cfg.Logging.Format)
}
