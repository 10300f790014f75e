// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build offscreen || !((darwin && !ios) || windows || (linux && !android))

package gpurs

import (
	"errors"
	"image"

	"cogentcore.org/minimal/engine"
)

// ErrNoWindowSystem is returned by CreateWindow on platforms without glfw.
var ErrNoWindowSystem = errors.New("gpurs: no window system on this platform")

// Window is not available on this platform.
type Window struct{}

func (rs *System) CreateWindow(title string) (engine.Window, error) {
	return nil, ErrNoWindowSystem
}

func (w *Window) PumpEvents()       {}
func (w *Window) IsVisible() bool   { return false }
func (w *Window) IsClosed() bool    { return true }
func (w *Window) Size() image.Point { return image.Point{} }
func (w *Window) Destroy()          {}

func terminate() {}
