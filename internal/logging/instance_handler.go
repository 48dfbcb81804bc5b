package logging

import (
	"context"
	"log/slog"
)

// instanceHandler stamps every record with the server instance identifier so
// log lines from overlapping restarts can be told apart.
type instanceHandler struct {
	base slog.Handler
	id   string
}

func newInstanceHandler(base slog.Handler, id string) slog.Handler {
	if base == nil {
		return NoopHandler{}
	}
	if id == "" {
		return base
	}
	return &instanceHandler{base: base, id: id}
}

func (h *instanceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h *instanceHandler) Handle(ctx context.Context, record slog.Record) error {
	record.AddAttrs(slog.String(FieldInstanceID, h.id))
	return h.base.Handle(ctx, record)
}

func (h *instanceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &instanceHandler{base: h.base.WithAttrs(attrs), id: h.id}
}

func (h *instanceHandler) WithGroup(name string) slog.Handler {
	return &instanceHandler{base: h.base.WithGroup(name), id: h.id}
}
