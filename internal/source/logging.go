package source

import (
	"context"
	"log/slog"
	"time"

	"github.com/gcbaptista/inverted-index/model"
	"github.com/gcbaptista/inverted-index/services"
)

// Ensure LoggingSource implements services.DocumentSource at compile time.
var _ services.DocumentSource = (*LoggingSource)(nil)

// LoggingSource wraps a DocumentSource with logging of every fetch.
type LoggingSource struct {
	next   services.DocumentSource
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next services.DocumentSource, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Fetch delegates to the wrapped source and logs the outcome.
func (s *LoggingSource) Fetch(ctx context.Context, location string) (model.Collection, error) {
	begin := time.Now()
	docs, err := s.next.Fetch(ctx, location)
	remote := IsRemote(location)
	if err != nil {
		s.logger.Warn("fetch",
			"location", location,
			"remote", remote,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}
	s.logger.Info("fetch",
		"location", location,
		"remote", remote,
		"docs", len(docs),
		"duration", time.Since(begin),
	)
	return docs, nil
}
