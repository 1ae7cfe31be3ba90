package assets

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Additional log levels matching the engine log sink.
const (
	// LevelVerbose sits between debug and info.
	LevelVerbose = slog.Level(-2)

	// LevelCritical sits above error.
	LevelCritical = slog.Level(12)
)

// DefaultTimeFormat is the timestamp layout written by LineHandler.
const DefaultTimeFormat = "2006-01-02 15:04:05"

// LineHandlerOptions configures a LineHandler.
type LineHandlerOptions struct {
	// Level is the minimum level written. Nil means slog.LevelInfo.
	Level slog.Leveler

	// TimeFormat overrides DefaultTimeFormat.
	TimeFormat string
}

// LineHandler is a slog.Handler writing one line per record in the form
//
//	[2006-01-02 15:04:05][LEVEL] message key=value
//
// Timestamps use local time. LineHandler is safe for concurrent use; handlers
// derived with WithAttrs or WithGroup share the writer lock.
type LineHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Leveler
	layout string
	prefix string // group prefix for attrs added after WithGroup
	attrs  string // preformatted attrs from WithAttrs
}

// NewLineHandler creates a LineHandler writing to w.
// A nil opts uses the defaults.
func NewLineHandler(w io.Writer, opts *LineHandlerOptions) *LineHandler {
	h := &LineHandler{
		mu:     &sync.Mutex{},
		w:      w,
		level:  slog.LevelInfo,
		layout: DefaultTimeFormat,
	}
	if opts != nil {
		if opts.Level != nil {
			h.level = opts.Level
		}
		if opts.TimeFormat != "" {
			h.layout = opts.TimeFormat
		}
	}
	return h
}

// Enabled reports whether records at level are written.
func (h *LineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats r as a single line and writes it.
func (h *LineHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(ts.Local().Format(h.layout))
	b.WriteString("][")
	b.WriteString(LevelName(r.Level))
	b.WriteString("] ")
	b.WriteString(r.Message)
	b.WriteString(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&b, h.prefix, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

// WithAttrs returns a handler that appends attrs to every line.
func (h *LineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var b strings.Builder
	b.WriteString(h.attrs)
	for _, a := range attrs {
		appendAttr(&b, h.prefix, a)
	}
	h2 := *h
	h2.attrs = b.String()
	return &h2
}

// WithGroup returns a handler that qualifies subsequent attr keys with name.
func (h *LineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}

// LevelName returns the engine name of level: DEBUG, VERBOSE, INFO,
// WARNING, ERROR or CRITICAL.
func LevelName(level slog.Level) string {
	switch {
	case level < LevelVerbose:
		return "DEBUG"
	case level < slog.LevelInfo:
		return "VERBOSE"
	case level < slog.LevelWarn:
		return "INFO"
	case level < slog.LevelError:
		return "WARNING"
	case level < LevelCritical:
		return "ERROR"
	default:
		return "CRITICAL"
	}
}

func appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range group {
			appendAttr(b, prefix, ga)
		}
		return
	}
	b.WriteByte(' ')
	b.WriteString(prefix)
	b.WriteString(a.Key)
	b.WriteByte('=')
	s := a.Value.String()
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		s = strconv.Quote(s)
	}
	b.WriteString(s)
}
