package logging

import (
	"context"
	"errors"
	"log/slog"
)

// Fanout returns a handler that delivers each record to every handler that
// accepts its level. Delivery errors are joined rather than short-circuiting,
// so a failing sink (the PG handler, say) never starves stdout.
func Fanout(handlers ...slog.Handler) slog.Handler {
	return fanout{sinks: handlers}
}

type fanout struct {
	sinks []slog.Handler
}

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.sinks {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, h := range f.sinks {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	sinks := make([]slog.Handler, len(f.sinks))
	for i, h := range f.sinks {
		sinks[i] = h.WithAttrs(attrs)
	}
	return fanout{sinks: sinks}
}

func (f fanout) WithGroup(name string) slog.Handler {
	sinks := make([]slog.Handler, len(f.sinks))
	for i, h := range f.sinks {
		sinks[i] = h.WithGroup(name)
	}
	return fanout{sinks: sinks}
}
