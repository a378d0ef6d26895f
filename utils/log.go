package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/lumepay/lumepay/constants"
)

type PrettyHandlerOptions struct {
	slog.HandlerOptions
	NoColor bool
}

// PrettyTextLogHandler prints one line per record followed by its attributes
// as indented key=value lines. Fields meant for machine consumption only
// (see constants.LOG_TOP_LEVEL_HIDDEN_FIELDS) are skipped.
type PrettyTextLogHandler struct {
	opts   PrettyHandlerOptions
	out    io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
}

func NewPrettyTextLogHandler(out io.Writer, opts PrettyHandlerOptions) *PrettyTextLogHandler {
	if opts.Level == nil {
		opts.Level = slog.LevelInfo
	}
	return &PrettyTextLogHandler{
		opts: opts,
		out:  out,
		mu:   &sync.Mutex{},
	}
}

func (h *PrettyTextLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *PrettyTextLogHandler) levelColor(level slog.Level) *color.Color {
	var c *color.Color
	switch {
	case level >= slog.LevelError:
		c = color.New(color.FgRed, color.Bold)
	case level >= slog.LevelWarn:
		c = color.New(color.FgYellow)
	case level >= slog.LevelInfo:
		c = color.New(color.FgGreen)
	default:
		c = color.New(color.FgHiBlack)
	}
	if h.opts.NoColor {
		c.DisableColor()
	}
	return c
}

func (h *PrettyTextLogHandler) appendAttr(sb *strings.Builder, prefix string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}
	if prefix == "" {
		if _, hidden := slices.BinarySearch(constants.LOG_TOP_LEVEL_HIDDEN_FIELDS, attr.Key); hidden {
			return
		}
	}
	key := attr.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	if attr.Value.Kind() == slog.KindGroup {
		for _, nested := range attr.Value.Group() {
			h.appendAttr(sb, key, nested)
		}
		return
	}
	fmt.Fprintf(sb, "    %s=%v\n", key, attr.Value.Any())
}

func (h *PrettyTextLogHandler) Handle(_ context.Context, record slog.Record) error {
	sb := strings.Builder{}
	sb.WriteString(record.Time.Format("15:04:05"))
	sb.WriteString(" ")
	sb.WriteString(h.levelColor(record.Level).Sprintf("[%s]", record.Level.String()))
	sb.WriteString(" ")
	sb.WriteString(record.Message)
	sb.WriteString("\n")

	prefix := strings.Join(h.groups, ".")
	for _, attr := range h.attrs {
		h.appendAttr(&sb, prefix, attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		h.appendAttr(&sb, prefix, attr)
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, sb.String())
	return err
}

func (h *PrettyTextLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = append(slices.Clone(h.attrs), attrs...)
	return &clone
}

func (h *PrettyTextLogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(slices.Clone(h.groups), name)
	return &clone
}

// MultiWriter writes to every writer even if some of them fail
type MultiWriter struct {
	writers []io.Writer
}

func NewMultiWriter(writers ...io.Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

func (w *MultiWriter) Write(p []byte) (int, error) {
	var errs error
	for _, writer := range w.writers {
		if _, err := writer.Write(p); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return len(p), errs
}
