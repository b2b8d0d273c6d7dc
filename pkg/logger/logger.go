package logger

import (
	"context"
	"log/slog"
	"os"
)

// Handler is the application slog handler: JSON on stdout with the
// request id promoted to a top-level attribute when present.
type Handler struct {
	inner slog.Handler
}

// NewHandler creates a Handler. A nil opts uses Info level defaults.
func NewHandler(opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{Level: slog.LevelInfo}
	}

	return &Handler{
		inner: slog.NewJSONHandler(os.Stdout, opts),
	}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if requestID, ok := requestIDFromContext(ctx); ok {
		record.AddAttrs(slog.String("request_id", requestID))
	}

	return h.inner.Handle(ctx, record)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{inner: h.inner.WithAttrs(attrs)}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{inner: h.inner.WithGroup(name)}
}
