package application

import "log/slog"

// ResolveLogger returns slog.Default when a use case was wired without a logger.
func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
