package observability

import (
	"log/slog"
)

// ComponentLogger tags logger with component=name. A nil logger yields one
// that discards everything, so callers never need nil checks.
func ComponentLogger(logger *slog.Logger, name string) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger.With(slog.String("component", name))
}
