// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

const timeFormat = "2006-01-02T15:04:05-0700"

// NewLogfmtHandler returns a handler printing records in logfmt, an easy
// machine-parseable but human-readable format for key/value pairs.
func NewLogfmtHandler(wr io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(wr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.TimeKey:
				if attr.Value.Kind() == slog.KindTime {
					return slog.String("t", attr.Value.Time().Format(timeFormat))
				}
			case slog.LevelKey:
				if l, ok := attr.Value.Any().(slog.Level); ok {
					return slog.String("lvl", levelString(l))
				}
			}
			return attr
		},
	})
}

// TerminalHandler formats records for human readability on a terminal:
//
//	[LEVEL] [TIME] MESSAGE key=value key=value ...
type TerminalHandler struct {
	mu       sync.Mutex
	wr       io.Writer
	level    slog.Level
	useColor bool
	attrs    []slog.Attr
}

// NewTerminalHandler returns a terminal handler with color-coded levels when
// useColor is set. Only records at or above level are written.
func NewTerminalHandler(wr io.Writer, level slog.Level, useColor bool) *TerminalHandler {
	return &TerminalHandler{
		wr:       wr,
		level:    level,
		useColor: useColor,
	}
}

func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	lvl := levelString(r.Level)
	if h.useColor {
		lvl = fmt.Sprintf("\x1b[%dm%s\x1b[0m", levelColor(r.Level), lvl)
	}
	fmt.Fprintf(h.wr, "[%s] [%s] %s", lvl, r.Time.Format(time.StampMilli), r.Message)

	emit := func(a slog.Attr) bool {
		fmt.Fprintf(h.wr, " %s=%v", a.Key, a.Value)
		return true
	}
	for _, a := range h.attrs {
		emit(a)
	}
	r.Attrs(emit)
	fmt.Fprintln(h.wr)
	return nil
}

func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TerminalHandler{
		wr:       h.wr,
		level:    h.level,
		useColor: h.useColor,
		attrs:    append(append([]slog.Attr(nil), h.attrs...), attrs...),
	}
}

func (h *TerminalHandler) WithGroup(_ string) slog.Handler {
	panic("not implemented")
}

// DiscardHandler returns a no-op handler, for tests.
func DiscardHandler() slog.Handler {
	return &discardHandler{}
}

type discardHandler struct{}

func (h *discardHandler) Handle(_ context.Context, _ slog.Record) error  { return nil }
func (h *discardHandler) Enabled(_ context.Context, _ slog.Level) bool   { return false }
func (h *discardHandler) WithAttrs(_ []slog.Attr) slog.Handler           { return h }
func (h *discardHandler) WithGroup(_ string) slog.Handler                { return h }

func levelString(l slog.Level) string {
	switch {
	case l <= LevelTrace:
		return "TRCE"
	case l <= LevelDebug:
		return "DBUG"
	case l <= LevelInfo:
		return "INFO"
	case l <= LevelWarn:
		return "WARN"
	default:
		return "EROR"
	}
}

func levelColor(l slog.Level) int {
	switch {
	case l >= LevelError:
		return 31 // red
	case l >= LevelWarn:
		return 33 // yellow
	case l >= LevelInfo:
		return 32 // green
	default:
		return 36 // cyan
	}
}
