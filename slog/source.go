// Package slog provides logging decorators for docdex services using the
// standard library's structured logger.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docdex"
)

// Ensure LoggingSource implements docdex.URLSource.
var _ docdex.URLSource = (*LoggingSource)(nil)

// LoggingSource wraps a URLSource with discovery logging.
type LoggingSource struct {
	next   docdex.URLSource
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next docdex.URLSource, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Discover delegates to the wrapped source and logs the operation.
func (s *LoggingSource) Discover(ctx context.Context, sourceURL string, filter *docdex.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("page discovery",
			"source", sourceURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Discover(ctx, sourceURL, filter)
}
