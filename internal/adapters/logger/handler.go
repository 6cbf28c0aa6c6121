package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/chore/internal/ui/output"
	"go.trai.ch/chore/internal/ui/style"
)

// TaskKey is the attribute key rendered as a "[task]" prefix instead of key=value.
const TaskKey = "task"

// PrettyHandler is a slog.Handler that writes one colored line per record.
//
// A top-level "task" attribute prefixes the line the same way task output is prefixed.
// Remaining attributes follow the message in muted key=value form, with values quoted
// when they contain whitespace or quotes, so commands stay readable.
type PrettyHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	msg := r.Message
	var color termenv.Color

	switch {
	case r.Level >= slog.LevelError:
		msg = style.Cross + " " + msg
		color = h.out.Color(string(style.Red))
	case r.Level >= slog.LevelWarn:
		msg = style.Warning + " " + msg
		color = h.out.Color(string(style.Yellow))
	default:
		color = h.out.Color(string(style.Slate))
	}

	var task string
	fields := make([]string, 0, len(h.attrs)+r.NumAttrs())
	for _, attr := range h.attrs {
		if attr.Key == TaskKey {
			task = attr.Value.Resolve().String()
			continue
		}
		fields = appendAttr(fields, "", attr)
	}
	prefix := h.prefix()
	r.Attrs(func(attr slog.Attr) bool {
		if prefix == "" && attr.Key == TaskKey {
			task = attr.Value.Resolve().String()
			return true
		}
		fields = appendAttr(fields, prefix, attr)
		return true
	})

	var b strings.Builder
	if task != "" {
		b.WriteString(h.out.String("[" + task + "]").Faint().String())
		b.WriteByte(' ')
	}
	b.WriteString(h.out.String(msg).Foreground(color).String())
	if len(fields) > 0 {
		b.WriteByte(' ')
		b.WriteString(h.out.String(strings.Join(fields, " ")).Foreground(h.out.Color(string(style.Slate))).String())
	}
	b.WriteByte('\n')

	_, err := h.out.WriteString(b.String())
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
// Attributes added inside a group are stored already qualified.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	newAttrs := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	for _, attr := range attrs {
		if prefix := h.prefix(); prefix != "" {
			attr.Key = prefix + attr.Key
		}
		newAttrs = append(newAttrs, attr)
	}

	return &PrettyHandler{
		out:    h.out,
		level:  h.level,
		attrs:  newAttrs,
		groups: h.groups,
	}
}

// WithGroup returns a new Handler qualifying later attributes with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	return &PrettyHandler{
		out:    h.out,
		level:  h.level,
		attrs:  h.attrs,
		groups: append(h.groups[:len(h.groups):len(h.groups)], name),
	}
}

func (h *PrettyHandler) prefix() string {
	if len(h.groups) == 0 {
		return ""
	}
	return strings.Join(h.groups, ".") + "."
}

// appendAttr renders attr as key=value, flattening groups into dotted keys.
func appendAttr(fields []string, prefix string, attr slog.Attr) []string {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return fields
	}

	if attr.Value.Kind() == slog.KindGroup {
		if attr.Key != "" {
			prefix += attr.Key + "."
		}
		for _, member := range attr.Value.Group() {
			fields = appendAttr(fields, prefix, member)
		}
		return fields
	}

	return append(fields, prefix+attr.Key+"="+quoteValue(attr.Value.String()))
}

func quoteValue(v string) string {
	if v == "" || strings.ContainsAny(v, " \t\n\"=") {
		return strconv.Quote(v)
	}
	return v
}
