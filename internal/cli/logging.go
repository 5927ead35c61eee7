package cli

import (
	"log/slog"
	"os"
)

// setupLogger installs the default logger: human-readable text on stdout and
// JSON on stderr, both at level.
func setupLogger(level slog.Level) {
	opts := &slog.HandlerOptions{Level: level}
	slog.SetDefault(slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, opts),
		slog.NewJSONHandler(os.Stderr, opts),
	)))
}
