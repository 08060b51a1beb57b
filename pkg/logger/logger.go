package logger

import (
	"context"
	"log/slog"
	"os"
)

// Handler is a slog handler that attaches service-wide attributes to
// every record before delegating to a JSON handler.
type Handler struct {
	inner slog.Handler
}

// NewHandler creates a new Handler. Passing nil options enables debug
// level when ECOM_ENV is "local".
func NewHandler(opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		level := slog.LevelInfo
		if os.Getenv("ECOM_ENV") == "local" {
			level = slog.LevelDebug
		}
		opts = &slog.HandlerOptions{Level: level}
	}

	return &Handler{
		inner: slog.NewJSONHandler(os.Stdout, opts),
	}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	record.AddAttrs(slog.String("service", "ecommerce-api"))

	return h.inner.Handle(ctx, record)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{inner: h.inner.WithAttrs(attrs)}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{inner: h.inner.WithGroup(name)}
}
