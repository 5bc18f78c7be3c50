package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/catalogo"
)

// Ensure LoggingQueryEngine implements catalogo.QueryEngine.
var _ catalogo.QueryEngine = (*LoggingQueryEngine)(nil)

// LoggingQueryEngine wraps a QueryEngine with debug logging.
type LoggingQueryEngine struct {
	next   catalogo.QueryEngine
	logger *slog.Logger
}

// NewLoggingQueryEngine creates a new LoggingQueryEngine.
func NewLoggingQueryEngine(next catalogo.QueryEngine, logger *slog.Logger) *LoggingQueryEngine {
	return &LoggingQueryEngine{next: next, logger: logger}
}

// Resolve delegates to the wrapped engine and logs the criteria and the
// page size.
func (e *LoggingQueryEngine) Resolve(ctx context.Context, c catalogo.Criteria) (page *catalogo.Page, err error) {
	defer func(begin time.Time) {
		var n int
		if page != nil {
			n = len(page.Records)
		}
		e.logger.Debug("resolve page",
			"term", c.Term(),
			"type", string(c.Type),
			"group", c.Group,
			"class", c.Class,
			"family", c.Family,
			"page", c.Page,
			"count", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Resolve(ctx, c)
}
