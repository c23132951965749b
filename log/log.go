// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log provides the structured logger of the repo, a thin wrapper
// around log/slog with an extra trace level and a swappable root handler.
package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

const (
	LevelTrace = slog.Level(-8)
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Logger writes key/value structured records.
type Logger interface {
	With(ctx ...interface{}) Logger

	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})
}

type logger struct {
	inner *slog.Logger
}

func (l *logger) With(ctx ...interface{}) Logger {
	return &logger{l.inner.With(ctx...)}
}

func (l *logger) write(level slog.Level, msg string, ctx []interface{}) {
	l.inner.Log(context.Background(), level, msg, ctx...)
}

func (l *logger) Trace(msg string, ctx ...interface{}) { l.write(LevelTrace, msg, ctx) }
func (l *logger) Debug(msg string, ctx ...interface{}) { l.write(LevelDebug, msg, ctx) }
func (l *logger) Info(msg string, ctx ...interface{})  { l.write(LevelInfo, msg, ctx) }
func (l *logger) Warn(msg string, ctx ...interface{})  { l.write(LevelWarn, msg, ctx) }
func (l *logger) Error(msg string, ctx ...interface{}) { l.write(LevelError, msg, ctx) }

var root atomic.Pointer[logger]

func init() {
	root.Store(&logger{slog.New(NewLogfmtHandler(os.Stderr, LevelInfo))})
}

// SetRootHandler replaces the handler behind the root logger and every
// logger derived from it afterwards.
func SetRootHandler(h slog.Handler) {
	root.Store(&logger{slog.New(h)})
}

// Root returns the root logger.
func Root() Logger {
	return root.Load()
}

// WithContext returns a logger derived from root with the given context
// attached. The common use is a package-level
// `var logger = log.WithContext("pkg", "...")`.
func WithContext(ctx ...interface{}) Logger {
	return Root().With(ctx...)
}

// LevelFromVerbosity maps the legacy 0..4 verbosity scale of the CLI onto
// slog levels.
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return LevelError
	case v == 1:
		return LevelWarn
	case v == 2:
		return LevelInfo
	case v == 3:
		return LevelDebug
	default:
		return LevelTrace
	}
}
