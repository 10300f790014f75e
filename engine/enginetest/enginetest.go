// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package enginetest provides in-memory render systems and windows
// for testing code that drives an [engine.Root].
package enginetest

import (
	"errors"
	"image"

	"cogentcore.org/minimal/engine"
)

// RenderSystem is a render system that creates [Window]s without a GPU.
type RenderSystem struct {
	SystemName string
	Options    engine.OptionSet

	// Attributes are returned by CustomAttribute.
	Attributes map[string]any

	// InvalidReason makes ValidateConfigOptions fail if non-empty.
	InvalidReason string

	// NewWindow, if set, creates the windows; otherwise a plain [Window] is made.
	NewWindow func(title string) (engine.Window, error)

	Windows  []engine.Window
	ShutDown int
}

// NewRenderSystem returns a render system with the given name and a
// "Video Mode" option.
func NewRenderSystem(name string) *RenderSystem {
	rs := &RenderSystem{SystemName: name, Attributes: map[string]any{}}
	rs.Options.Add("Video Mode", "800 x 600", "800 x 600", "1280 x 720")
	rs.Options.Add("Full Screen", "No", "Yes", "No")
	return rs
}

func (rs *RenderSystem) Name() string                         { return rs.SystemName }
func (rs *RenderSystem) ConfigOptions() []engine.ConfigOption { return rs.Options.List() }

func (rs *RenderSystem) SetConfigOption(name, value string) error {
	return rs.Options.Set(name, value)
}

func (rs *RenderSystem) ValidateConfigOptions() error {
	if rs.InvalidReason != "" {
		return errors.New(rs.InvalidReason)
	}
	return nil
}

func (rs *RenderSystem) CustomAttribute(name string) (any, bool) {
	v, ok := rs.Attributes[name]
	return v, ok
}

func (rs *RenderSystem) CreateWindow(title string) (engine.Window, error) {
	var w engine.Window
	if rs.NewWindow != nil {
		var err error
		if w, err = rs.NewWindow(title); err != nil {
			return nil, err
		}
	} else {
		w = &Window{Title: title, Visible: true, WindowSize: image.Point{800, 600}}
	}
	rs.Windows = append(rs.Windows, w)
	return w, nil
}

func (rs *RenderSystem) Shutdown() error {
	rs.ShutDown++
	return nil
}

// Plugin returns a plugin with the given name that installs the given
// render systems.
func Plugin(name string, systems ...engine.RenderSystem) engine.Plugin {
	return &engine.PluginFunc{PluginName: name, InstallFunc: func(r *engine.Root) error {
		for _, rs := range systems {
			r.AddRenderSystem(rs)
		}
		return nil
	}}
}

// Window is a scriptable window. VisibleAt and CloseAfter control
// its state as a function of the number of PumpEvents calls.
type Window struct {
	Title      string
	WindowSize image.Point
	Visible    bool
	Closed     bool
	Destroyed  bool

	// Pumps counts PumpEvents calls.
	Pumps int

	// VisibleAt, if set, is called after each pump to set Visible.
	VisibleAt func(pump int) bool

	// CloseAfter closes the window once Pumps reaches it, if positive.
	CloseAfter int
}

func (w *Window) PumpEvents() {
	w.Pumps++
	if w.VisibleAt != nil {
		w.Visible = w.VisibleAt(w.Pumps)
	}
	if w.CloseAfter > 0 && w.Pumps >= w.CloseAfter {
		w.Closed = true
	}
}

func (w *Window) IsVisible() bool   { return w.Visible }
func (w *Window) IsClosed() bool    { return w.Closed }
func (w *Window) Size() image.Point { return w.WindowSize }
func (w *Window) Destroy()          { w.Destroyed = true }

// Dialog is a config dialog that returns a fixed answer.
type Dialog struct {

	// Choose picks the render system; nil cancels.
	Choose func(systems []engine.RenderSystem) engine.RenderSystem

	Shown int
}

func (d *Dialog) Display(systems []engine.RenderSystem, current engine.RenderSystem) (engine.RenderSystem, bool) {
	d.Shown++
	if d.Choose == nil {
		return nil, false
	}
	rs := d.Choose(systems)
	return rs, rs != nil
}
