package telemetry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// NewLogger returns a JSON logger that stamps every record with the active trace and span ids.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	base := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(&traceHandler{baseHandler: base})
}

// ParseLevel maps debug, info, warn and error to slog levels. Empty means info.
func ParseLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", value)
	}
}

type traceHandler struct {
	baseHandler slog.Handler
	groups      []string
	attrs       []slog.Attr
}

func (h *traceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.baseHandler.Enabled(ctx, level)
}

// Handle adds trace ids at the top level, ahead of any groups opened on the logger.
func (h *traceHandler) Handle(ctx context.Context, r slog.Record) error {
	handler := h.baseHandler

	var traceAttrs []slog.Attr
	if traceID := TraceID(ctx); traceID != "" {
		traceAttrs = append(traceAttrs, slog.String("trace_id", traceID))
	}
	if spanID := SpanID(ctx); spanID != "" {
		traceAttrs = append(traceAttrs, slog.String("span_id", spanID))
	}
	if len(traceAttrs) > 0 {
		handler = handler.WithAttrs(traceAttrs)
	}
	if len(h.attrs) > 0 {
		handler = handler.WithAttrs(h.attrs)
	}
	for _, group := range h.groups {
		handler = handler.WithGroup(group)
	}

	return handler.Handle(ctx, r)
}

func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceHandler{
		baseHandler: h.baseHandler,
		groups:      h.groups,
		attrs:       append(append([]slog.Attr(nil), h.attrs...), attrs...),
	}
}

func (h *traceHandler) WithGroup(name string) slog.Handler {
	return &traceHandler{
		baseHandler: h.baseHandler,
		groups:      append(append([]string(nil), h.groups...), name),
		attrs:       h.attrs,
	}
}
