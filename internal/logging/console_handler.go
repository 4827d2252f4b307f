package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

type levelStyles struct {
	debug, info, ok, warn, err lipgloss.Style
	key, faint                 lipgloss.Style
}

func newLevelStyles(w io.Writer) *levelStyles {
	r := lipgloss.NewRenderer(w)
	return &levelStyles{
		debug: r.NewStyle().Foreground(lipgloss.Color("8")),
		info:  r.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		ok:    r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		warn:  r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		err:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		key:   r.NewStyle().Foreground(lipgloss.Color("6")),
		faint: r.NewStyle().Faint(true),
	}
}

// consoleHandler renders one human-readable line per record:
//
//	15:04:05 INFO  message key=value
type consoleHandler struct {
	mu        *sync.Mutex
	writer    io.Writer
	level     *slog.LevelVar
	pre       []kv
	groups    []string
	addSource bool
	styles    *levelStyles
}

func newConsoleHandler(w io.Writer, lvl *slog.LevelVar, addSource, color bool) slog.Handler {
	h := &consoleHandler{mu: &sync.Mutex{}, writer: w, level: lvl, addSource: addSource}
	if color {
		h.styles = newLevelStyles(w)
	}
	return h
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	kvs := make([]kv, 0, record.NumAttrs()+len(h.pre))
	kvs = append(kvs, h.pre...)
	record.Attrs(func(attr slog.Attr) bool {
		flattenAttr(&kvs, h.groups, attr)
		return true
	})

	success := false
	filtered := kvs[:0]
	for _, kv := range kvs {
		if kv.key == FieldStatus && kv.value.String() == StatusOK {
			success = true
			continue
		}
		filtered = append(filtered, kv)
	}

	var buf bytes.Buffer
	buf.Grow(96 + len(filtered)*24)

	buf.WriteString(h.paint(h.faintStyle(), ts.Format(time.TimeOnly)))
	buf.WriteByte(' ')
	buf.WriteString(h.levelBadge(record.Level, success))
	buf.WriteByte(' ')

	if msg := strings.TrimSpace(record.Message); msg != "" {
		buf.WriteString(msg)
	} else {
		buf.WriteString("(no message)")
	}

	if h.addSource {
		if src := record.Source(); src != nil && src.File != "" {
			buf.WriteString(" [")
			buf.WriteString(filepath.Base(src.File))
			buf.WriteByte(':')
			buf.WriteString(strconv.Itoa(src.Line))
			buf.WriteByte(']')
		}
	}

	for _, kv := range filtered {
		if kv.key == "" {
			continue
		}
		buf.WriteByte(' ')
		buf.WriteString(h.paint(h.keyStyle(), kv.key))
		buf.WriteByte('=')
		buf.WriteString(formatValue(kv.value))
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf.Bytes())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := h.clone()
	flattenAttrs(&clone.pre, clone.groups, attrs)
	return clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := h.clone()
	clone.groups = append(clone.groups, name)
	return clone
}

func (h *consoleHandler) clone() *consoleHandler {
	clone := *h
	clone.pre = append([]kv(nil), h.pre...)
	clone.groups = append([]string(nil), h.groups...)
	return &clone
}

func (h *consoleHandler) levelBadge(level slog.Level, success bool) string {
	label := levelLabel(level)
	if success && level == slog.LevelInfo {
		label = "OK"
	}
	label = fmt.Sprintf("%-5s", label)
	if h.styles == nil {
		return label
	}
	switch {
	case success && level == slog.LevelInfo:
		return h.styles.ok.Render(label)
	case level >= slog.LevelError:
		return h.styles.err.Render(label)
	case level >= slog.LevelWarn:
		return h.styles.warn.Render(label)
	case level >= slog.LevelInfo:
		return h.styles.info.Render(label)
	default:
		return h.styles.debug.Render(label)
	}
}

func (h *consoleHandler) keyStyle() *lipgloss.Style {
	if h.styles == nil {
		return nil
	}
	return &h.styles.key
}

func (h *consoleHandler) faintStyle() *lipgloss.Style {
	if h.styles == nil {
		return nil
	}
	return &h.styles.faint
}

func (h *consoleHandler) paint(style *lipgloss.Style, s string) string {
	if style == nil {
		return s
	}
	return style.Render(s)
}

type kv struct {
	key   string
	value slog.Value
}

func flattenAttrs(dst *[]kv, prefix []string, attrs []slog.Attr) {
	for _, attr := range attrs {
		flattenAttr(dst, prefix, attr)
	}
}

func flattenAttr(dst *[]kv, prefix []string, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	attr.Value = attr.Value.Resolve()
	if attr.Value.Kind() == slog.KindGroup {
		next := prefix
		if attr.Key != "" {
			next = append(append([]string(nil), prefix...), attr.Key)
		}
		flattenAttrs(dst, next, attr.Value.Group())
		return
	}
	key := attr.Key
	if len(prefix) > 0 {
		key = strings.Join(append(append([]string(nil), prefix...), key), ".")
	}
	*dst = append(*dst, kv{key: key, value: attr.Value})
}

func formatValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindString:
		s = v.String()
	case slog.KindTime:
		s = v.Time().UTC().Format(time.RFC3339)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = fmt.Sprint(v.Any())
		}
	default:
		s = v.String()
	}
	if needsQuotes(s) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuotes(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r <= ' ' || r == '=' || r == '"' {
			return true
		}
	}
	return false
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
