package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// prettyStyles holds the lipgloss styles of a pretty handler. Styles are
// bound to a renderer that detects the color profile of the output, so
// nothing is colorized when writing to a file or pipe.
type prettyStyles struct {
	time   lipgloss.Style
	source lipgloss.Style
	msg    lipgloss.Style
	key    lipgloss.Style
	value  lipgloss.Style
	level  map[Level]lipgloss.Style
}

func makePrettyStyles(w io.Writer) prettyStyles {
	r := lipgloss.NewRenderer(w)

	return prettyStyles{
		time:   r.NewStyle().Faint(true),
		source: r.NewStyle().Faint(true).Italic(true),
		msg:    r.NewStyle().Bold(true),
		key:    r.NewStyle().Foreground(lipgloss.Color("6")),
		value:  r.NewStyle(),
		level: map[Level]lipgloss.Style{
			LevelTrace: r.NewStyle().Foreground(lipgloss.Color("8")),
			LevelDebug: r.NewStyle().Foreground(lipgloss.Color("4")),
			LevelInfo:  r.NewStyle().Foreground(lipgloss.Color("2")),
			LevelWarn:  r.NewStyle().Foreground(lipgloss.Color("3")),
			LevelError: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		},
	}
}

// prettyHandler is a human-oriented [slog.Handler] that writes one line per
// record: time, level, message, then key=value attributes.
type prettyHandler struct {
	mu     *sync.Mutex
	out    io.Writer
	opts   slog.HandlerOptions
	styles prettyStyles
	attrs  string   // preformatted attributes from WithAttrs
	groups []string // open groups from WithGroup
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	h := &prettyHandler{
		mu:     &sync.Mutex{},
		out:    w,
		styles: makePrettyStyles(w),
	}

	if opts != nil {
		h.opts = *opts
	}

	return h
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	var buf bytes.Buffer

	for _, a := range attrs {
		h.appendAttr(&buf, h.groups, a)
	}

	c := *h
	c.attrs = h.attrs + buf.String()

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(slices.Clip(h.groups), name)

	return &c
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() {
		if a := h.replace(nil, slog.Time(slog.TimeKey, r.Time)); a.Key != "" {
			buf.WriteString(h.styles.time.Render(a.Value.String()))
			buf.WriteByte(' ')
		}
	}

	level := Level(r.Level)
	name := strings.ToUpper(level.String())

	if a := h.replace(nil, slog.Any(slog.LevelKey, r.Level)); a.Key != "" {
		name = a.Value.String()
	}

	style, ok := h.styles.level[level]
	if !ok {
		style = h.styles.value
	}

	buf.WriteString(style.Render(fmt.Sprintf("%-5s", name)))
	buf.WriteByte(' ')

	if h.opts.AddSource && r.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{r.PC})
		f, _ := frames.Next()

		if f.File != "" {
			loc := f.File[strings.LastIndexByte(f.File, '/')+1:] + ":" +
				strconv.Itoa(f.Line)
			buf.WriteString(h.styles.source.Render(loc))
			buf.WriteByte(' ')
		}
	}

	buf.WriteString(h.styles.msg.Render(r.Message))
	buf.WriteString(h.attrs)

	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&buf, h.groups, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.out.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) replace(groups []string, a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(groups, a)
}

func (h *prettyHandler) appendAttr(buf *bytes.Buffer, groups []string, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() != slog.KindGroup {
		a = h.replace(groups, a)
	}

	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		sub := groups
		if a.Key != "" {
			sub = append(slices.Clip(groups), a.Key)
		}

		for _, ga := range a.Value.Group() {
			h.appendAttr(buf, sub, ga)
		}

		return
	}

	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}

	val := a.Value.String()
	if val == "" || strings.ContainsAny(val, " \t\"=") {
		val = strconv.Quote(val)
	}

	buf.WriteByte(' ')
	buf.WriteString(h.styles.key.Render(key))
	buf.WriteByte('=')
	buf.WriteString(h.styles.value.Render(val))
}
