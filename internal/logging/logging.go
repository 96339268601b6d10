// Package logging configures the diagnostics logger.
package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where diagnostics go.
type Options struct {
	// Path is the rotating log file. Empty disables the file.
	Path string
	// Console receives records at ConsoleLevel when set.
	Console io.Writer
	// ConsoleLevel defaults to slog.LevelWarn.
	ConsoleLevel slog.Leveler
	// Level applies to the file. Defaults to slog.LevelInfo.
	Level slog.Level
}

// Setup returns a logger writing to a rotating file and, optionally, the
// console. The closer flushes and closes the file.
func Setup(opts Options) (*slog.Logger, io.Closer, error) {
	var handlers []slog.Handler
	var closer io.Closer = nopCloser{}

	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, nil, err
		}
		rotator := &lumberjack.Logger{
			Filename:   opts.Path,
			MaxSize:    5,
			MaxBackups: 3,
			MaxAge:     30,
		}
		closer = rotator
		handlers = append(handlers, slog.NewTextHandler(rotator, &slog.HandlerOptions{Level: opts.Level}))
	}
	if opts.Console != nil {
		level := opts.ConsoleLevel
		if level == nil {
			level = slog.LevelWarn
		}
		handlers = append(handlers, slog.NewTextHandler(opts.Console, &slog.HandlerOptions{
			Level: level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if len(groups) == 0 && a.Key == slog.TimeKey {
					return slog.Attr{}
				}
				return a
			},
		}))
	}

	switch len(handlers) {
	case 0:
		return slog.New(slog.NewTextHandler(io.Discard, nil)), closer, nil
	case 1:
		return slog.New(handlers[0]), closer, nil
	}
	return slog.New(fanout(handlers)), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// fanout forwards each record to every handler that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, lvl slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, lvl) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, rec slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, rec.Level) {
			if err := h.Handle(ctx, rec.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
