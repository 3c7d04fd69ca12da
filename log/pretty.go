package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used by prettyHandler. Styles come from a renderer
// bound to the output, so nothing is colored unless the output is a
// terminal.
type palette struct {
	key, text, number, truth, falsity, duration, timestamp lipgloss.Style
	levels                                                 map[Level]lipgloss.Style
}

func newPalette(w io.Writer) *palette {
	r := lipgloss.NewRenderer(w)
	fg := func(color string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(color))
	}

	return &palette{
		key:       fg("8"),
		text:      fg("6"),
		number:    fg("3"),
		truth:     fg("2"),
		falsity:   fg("1"),
		duration:  fg("5"),
		timestamp: fg("4"),
		levels: map[Level]lipgloss.Style{
			LevelTrace: fg("8"),
			LevelDebug: fg("4"),
			LevelInfo:  fg("2"),
			LevelWarn:  fg("3").Bold(true),
			LevelError: fg("1").Bold(true),
		},
	}
}

func (p *palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.levels[LevelError]
	case l >= slog.LevelWarn:
		return p.levels[LevelWarn]
	case l >= slog.LevelInfo:
		return p.levels[LevelInfo]
	case l >= slog.LevelDebug:
		return p.levels[LevelDebug]
	default:
		return p.levels[LevelTrace]
	}
}

// prettyHandler writes colorized records for human readers.
//
// In text format a record is one line of key=value pairs. In JSON format it
// is an indented object with unquoted values. Groups are flattened into
// dotted keys.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	colors *palette
	group  string      // dotted prefix for keys added after WithGroup
	attrs  []slog.Attr // attributes added with WithAttrs, already qualified
	format Format
}

func newPrettyHandler(
	w io.Writer,
	format Format,
	opts *slog.HandlerOptions,
) *prettyHandler {
	return &prettyHandler{
		opts:   *opts,
		mu:     &sync.Mutex{},
		w:      w,
		colors: newPalette(w),
		format: format,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs()+4)

	if !r.Time.IsZero() {
		fields = h.appendReplaced(fields, slog.Time(slog.TimeKey, r.Time))
	}

	fields = h.appendReplaced(fields, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			fields = append(fields,
				slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	fields = append(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		fields = append(fields, h.qualify(a))

		return true
	})

	var buf bytes.Buffer

	switch h.format {
	case FormatJSON:
		h.writeJSON(&buf, r.Level, fields)
	default:
		h.writeText(&buf, r.Level, fields)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = slices.Clip(c.attrs)

	for _, a := range attrs {
		c.attrs = append(c.attrs, h.qualify(a))
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	if c.group != "" {
		c.group += "."
	}

	c.group += name

	return &c
}

// appendReplaced applies the ReplaceAttr option to a built-in attribute.
// Attributes replaced with an empty key are dropped.
func (h *prettyHandler) appendReplaced(fields []slog.Attr, a slog.Attr) []slog.Attr {
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, a)
	}

	if a.Key == "" {
		return fields
	}

	return append(fields, a)
}

func (h *prettyHandler) qualify(a slog.Attr) slog.Attr {
	if h.group != "" {
		a.Key = h.group + "." + a.Key
	}

	return a
}

func (h *prettyHandler) writeText(buf *bytes.Buffer, level slog.Level, fields []slog.Attr) {
	flatten(fields, "", func(key string, v slog.Value) {
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.colors.key.Render(key))
		buf.WriteByte('=')
		buf.WriteString(h.renderValue(key, level, v))
	})

	buf.WriteByte('\n')
}

func (h *prettyHandler) writeJSON(buf *bytes.Buffer, level slog.Level, fields []slog.Attr) {
	buf.WriteString("{")

	first := true

	flatten(fields, "", func(key string, v slog.Value) {
		if !first {
			buf.WriteByte(',')
		}

		first = false

		buf.WriteString("\n  ")
		buf.WriteString(h.colors.key.Render(key))
		buf.WriteString(": ")
		buf.WriteString(h.renderValue(key, level, v))
	})

	buf.WriteString("\n}\n")
}

// flatten calls fn for every leaf attribute, joining group keys with dots.
// Empty attributes and empty groups are skipped.
func flatten(attrs []slog.Attr, prefix string, fn func(string, slog.Value)) {
	for _, a := range attrs {
		v := a.Value.Resolve()
		if a.Equal(slog.Attr{}) {
			continue
		}

		key := a.Key
		if prefix != "" && key != "" {
			key = prefix + "." + key
		} else if key == "" {
			key = prefix
		}

		if v.Kind() == slog.KindGroup {
			flatten(v.Group(), key, fn)

			continue
		}

		fn(key, v)
	}
}

func (h *prettyHandler) renderValue(key string, level slog.Level, v slog.Value) string {
	p := h.colors

	if key == slog.LevelKey {
		return p.level(level).Render(v.String())
	}

	switch v.Kind() {
	case slog.KindString:
		return p.text.Render(v.String())
	case slog.KindInt64:
		return p.number.Render(strconv.FormatInt(v.Int64(), 10))
	case slog.KindUint64:
		return p.number.Render(strconv.FormatUint(v.Uint64(), 10))
	case slog.KindFloat64:
		return p.number.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))
	case slog.KindBool:
		if v.Bool() {
			return p.truth.Render("true")
		}

		return p.falsity.Render("false")
	case slog.KindDuration:
		return p.duration.Render(v.Duration().String())
	case slog.KindTime:
		return p.timestamp.Render(v.Time().Format(time.RFC3339))
	default:
		return p.text.Render(v.String())
	}
}
