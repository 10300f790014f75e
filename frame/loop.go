// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frame runs the main loop: it pumps window events, renders
// frames while the window is visible, and sleeps while it is not.
package frame

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// DefaultMinimizedSleep is how long the loop sleeps per iteration
// while the window is not visible.
const DefaultMinimizedSleep = 500 * time.Millisecond

// DefaultMaxFrameTime is the largest frame time in seconds passed to
// the renderer, so that a resumed loop does not jump ahead.
const DefaultMaxFrameTime = 1.0

// Window is the part of a render window the loop drives.
type Window interface {
	PumpEvents()
	IsVisible() bool
	IsClosed() bool
}

// Renderer renders one frame given the seconds since the last one.
type Renderer interface {
	RenderOneFrame(dt float64) error
}

// Clock returns the monotonic time since some fixed point.
type Clock interface {
	Now() time.Duration
}

// Loop is the main loop. Window, Renderer and Clock are required.
type Loop struct {
	Window   Window
	Renderer Renderer
	Clock    Clock

	// Sleep waits for d or until ctx is done. If nil, a timer is used.
	Sleep func(ctx context.Context, d time.Duration)

	// MinimizedSleep defaults to [DefaultMinimizedSleep].
	MinimizedSleep time.Duration

	// MaxFrameTime in seconds defaults to [DefaultMaxFrameTime].
	MaxFrameTime float64

	// MaxFrames stops the loop after that many rendered frames, if positive.
	MaxFrames uint64

	// Logger defaults to discarding.
	Logger *slog.Logger

	// Iterations and Rendered count loop iterations and rendered frames.
	Iterations uint64
	Rendered   uint64
}

// Run runs the loop until the window is closed, ctx is done, or
// MaxFrames frames are rendered, returning nil in those cases. A render
// error stops the loop and is returned.
func (l *Loop) Run(ctx context.Context) error {
	l.defaults()
	dt := 1.0 / 60.0
	start := l.Clock.Now()
	for {
		if ctx.Err() != nil {
			l.Logger.Info("frame loop canceled", "frames", l.Rendered)
			return nil
		}
		l.Window.PumpEvents()
		if l.Window.IsClosed() {
			l.Logger.Info("window closed", "frames", l.Rendered)
			return nil
		}
		l.Iterations++
		if !l.Window.IsVisible() {
			l.Sleep(ctx, l.MinimizedSleep)
		}
		if l.Window.IsVisible() {
			if err := l.Renderer.RenderOneFrame(dt); err != nil {
				return err
			}
			l.Rendered++
			if l.MaxFrames > 0 && l.Rendered >= l.MaxFrames {
				l.Logger.Info("frame limit reached", "frames", l.Rendered)
				return nil
			}
		}
		end := l.Clock.Now()
		dt = Clamp((end - start).Seconds(), l.MaxFrameTime)
		start = end
	}
}

func (l *Loop) defaults() {
	if l.Sleep == nil {
		l.Sleep = sleep
	}
	if l.MinimizedSleep <= 0 {
		l.MinimizedSleep = DefaultMinimizedSleep
	}
	if l.MaxFrameTime <= 0 {
		l.MaxFrameTime = DefaultMaxFrameTime
	}
	if l.Logger == nil {
		l.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}

// Clamp limits a frame time in seconds to [0, maxFrameTime].
func Clamp(dt, maxFrameTime float64) float64 {
	return min(max(dt, 0), maxFrameTime)
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
