package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/npmwrap/internal/ui/output"
	"go.trai.ch/npmwrap/internal/ui/style"
)

// PrettyHandler renders records as a single colored line:
// an optional level icon, the message, then key=value attributes.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	// fixed holds attributes bound with WithAttrs, already rendered.
	fixed string
	group string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	return NewPrettyHandlerWithProfile(w, opts, output.ColorProfile)
}

// NewPrettyHandlerWithProfile creates a PrettyHandler whose colors are limited
// to the profile returned by profileFn.
func NewPrettyHandlerWithProfile(w io.Writer, opts *slog.HandlerOptions, profileFn func() termenv.Profile) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &PrettyHandler{
		out:   output.NewWithProfile(w, profileFn),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes one line for r.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var line strings.Builder
	color := style.Slate
	switch {
	case r.Level >= slog.LevelError:
		line.WriteString(style.Cross + " ")
		color = style.Red
	case r.Level >= slog.LevelWarn:
		line.WriteString(style.Warning + " ")
		color = style.Yellow
	}
	line.WriteString(r.Message)
	line.WriteString(h.fixed)
	r.Attrs(func(attr slog.Attr) bool {
		writeAttr(&line, h.group, attr)
		return true
	})

	_, err := h.out.WriteString(style.Paint(h.out, color, line.String()) + "\n")
	return err
}

// WithAttrs returns a handler that appends attrs to every record, qualified
// by the group open at this point.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var fixed strings.Builder
	fixed.WriteString(h.fixed)
	for _, attr := range attrs {
		writeAttr(&fixed, h.group, attr)
	}
	next := *h
	next.fixed = fixed.String()
	return &next
}

// WithGroup returns a handler that qualifies later attributes with name.
// Nested groups are joined with dots.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.group = qualify(h.group, name)
	return &next
}

// writeAttr appends " key=value" for attr, flattening groups into dotted keys.
func writeAttr(b *strings.Builder, group string, attr slog.Attr) {
	value := attr.Value.Resolve()
	key := qualify(group, attr.Key)
	if value.Kind() == slog.KindGroup {
		for _, inner := range value.Group() {
			writeAttr(b, key, inner)
		}
		return
	}
	b.WriteString(" " + key + "=" + value.String())
}

func qualify(group, key string) string {
	if group == "" {
		return key
	}
	return group + "." + key
}
