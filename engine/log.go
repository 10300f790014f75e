// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
)

// NewLogger returns a logger that writes every record at or above
// level to the log file at path (truncating it) and, if console is
// non-nil, to console with colored levels. The returned closer closes
// the log file. An empty path logs to the console only.
func NewLogger(path string, level slog.Level, console io.Writer) (*slog.Logger, io.Closer, error) {
	var hs multiHandler
	var closer io.Closer = nopCloser{}
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, nil, err
		}
		closer = f
		hs = append(hs, slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	if console != nil {
		hs = append(hs, NewConsoleHandler(console, level))
	}
	return slog.New(hs), closer, nil
}

// NewConsoleHandler returns a text handler for terminal output that
// omits the time and colors the level according to the terminal profile
// of w.
func NewConsoleHandler(w io.Writer, level slog.Level) slog.Handler {
	out := termenv.NewOutput(w)
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				return slog.Attr{}
			case slog.LevelKey:
				lv, ok := a.Value.Any().(slog.Level)
				if !ok {
					return a
				}
				return slog.String(slog.LevelKey, out.String(lv.String()).Foreground(out.Color(levelColor(lv))).String())
			}
			return a
		},
	})
}

// levelColor returns the ANSI color number for the given level.
func levelColor(lv slog.Level) string {
	switch {
	case lv >= slog.LevelError:
		return "1"
	case lv >= slog.LevelWarn:
		return "3"
	case lv >= slog.LevelInfo:
		return "6"
	default:
		return "8"
	}
}

// multiHandler sends each record to all handlers that are enabled for it.
type multiHandler []slog.Handler

func (mh multiHandler) Enabled(ctx context.Context, lv slog.Level) bool {
	for _, h := range mh {
		if h.Enabled(ctx, lv) {
			return true
		}
	}
	return false
}

func (mh multiHandler) Handle(ctx context.Context, rec slog.Record) error {
	var errs []error
	for _, h := range mh {
		if h.Enabled(ctx, rec.Level) {
			errs = append(errs, h.Handle(ctx, rec.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (mh multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(multiHandler, len(mh))
	for i, h := range mh {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (mh multiHandler) WithGroup(name string) slog.Handler {
	out := make(multiHandler, len(mh))
	for i, h := range mh {
		out[i] = h.WithGroup(name)
	}
	return out
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
