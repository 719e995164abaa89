// Package telemetry provides logging and metrics for the agentden runtime.
package telemetry

import (
	"io"
	"log/slog"
	"os"

	"github.com/szaher/agentden/internal/secrets"
)

// NewLogger creates a structured JSON logger. Every resolved secret value
// registered on the returned redact handler is scrubbed from output, so
// wire the handler's AddSecret into the snapshot preparer's tracker.
func NewLogger(w io.Writer, level slog.Level) (*slog.Logger, *secrets.RedactHandler) {
	if w == nil {
		w = os.Stderr
	}
	redact := secrets.NewRedactHandler(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	return slog.New(redact), redact
}
