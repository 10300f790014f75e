// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine provides the root object of the rendering engine glue:
// it loads render system plugins, restores or interactively selects the
// render system configuration, creates the render window, and drives
// per-frame rendering through frame listeners and the compositor.
//
// The render systems themselves (see package gpurs) and everything they
// draw are provided by Cogent Core.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"cogentcore.org/core/base/ordmap"
	"cogentcore.org/minimal/cfgfile"
)

var (
	// ErrConfigCanceled is returned when the user declines the
	// configuration dialog.
	ErrConfigCanceled = errors.New("engine: configuration canceled")

	// ErrNoRenderSystem is returned when no render system is active.
	ErrNoRenderSystem = errors.New("engine: no render system selected")

	// ErrNotInitialised is returned when rendering before Initialise.
	ErrNotInitialised = errors.New("engine: root not initialised")

	// ErrUnknownPlugin is returned for plugins file entries that name
	// no available plugin.
	ErrUnknownPlugin = errors.New("engine: unknown plugin")

	// ErrUnknownOption is returned when setting an option a render
	// system does not have.
	ErrUnknownOption = errors.New("engine: unknown config option")

	// ErrInvalidOptionValue is returned for option values that are not
	// among the possible values.
	ErrInvalidOptionValue = errors.New("engine: invalid config option value")
)

// RenderSystemKey is the engine configuration file setting that names
// the active render system.
const RenderSystemKey = "Render System"

// DefaultWindowTitle is the title used when Initialise is given none.
const DefaultWindowTitle = "Render Window"

// Options are the file paths and logging settings for a [Root].
type Options struct {

	// PluginsFile lists the plugins to install.
	PluginsFile string

	// ConfigFile holds the saved render system configuration.
	ConfigFile string

	// LogFile receives all log records; empty disables the file log.
	LogFile string

	// LogLevel is the minimum level written to Console.
	LogLevel slog.Level

	// Console receives colored log output if non-nil.
	Console io.Writer
}

// FrameEvent describes the frame being rendered.
type FrameEvent struct {

	// TimeSinceLastFrame is the clamped time in seconds since the previous frame.
	TimeSinceLastFrame float64

	// Frame is the number of frames rendered before this one.
	Frame uint64
}

// FrameListener is notified around every rendered frame.
// A returned error aborts the frame.
type FrameListener interface {
	FrameStarted(ev FrameEvent) error
	FrameEnded(ev FrameEvent) error
}

// Compositor updates all render targets once per frame.
type Compositor interface {
	Update() error
}

// ConfigDialog lets the user choose and configure a render system.
type ConfigDialog interface {

	// Display shows the dialog, starting from current (which may be nil),
	// and returns the chosen render system with its options set, or false
	// if the user canceled.
	Display(systems []RenderSystem, current RenderSystem) (RenderSystem, bool)
}

// Root is the engine root object. It owns the render systems, the
// render window, and the log, and is released with [Root.Close].
type Root struct {
	opts Options

	log       *slog.Logger
	logCloser io.Closer

	plugins       ordmap.Map[string, Plugin]
	renderSystems ordmap.Map[string, RenderSystem]
	active        RenderSystem

	window      Window
	initialised bool
	closed      bool

	compositor Compositor
	listeners  []FrameListener
	frames     uint64

	timer *Timer
}

// NewRoot opens the log, then installs the plugins named in the plugins
// file from the given available plugins.
func NewRoot(opts Options, available ...Plugin) (*Root, error) {
	log, closer, err := NewLogger(opts.LogFile, opts.LogLevel, opts.Console)
	if err != nil {
		return nil, fmt.Errorf("engine: opening log: %w", err)
	}
	r := &Root{opts: opts, log: log, logCloser: closer, timer: NewTimer()}
	r.plugins.Init()
	r.renderSystems.Init()
	r.log.Info("creating root", "plugins", opts.PluginsFile, "config", opts.ConfigFile, "log", opts.LogFile)
	if err := r.loadPlugins(available); err != nil {
		r.logCloser.Close()
		return nil, fmt.Errorf("engine: loading plugins: %w", err)
	}
	return r, nil
}

// Logger returns the engine logger.
func (r *Root) Logger() *slog.Logger {
	return r.log
}

// Timer returns the root timer, which is reset by Initialise.
func (r *Root) Timer() *Timer {
	return r.timer
}

// AddRenderSystem makes a render system available for selection.
// It is called by plugins from [Plugin.Install].
func (r *Root) AddRenderSystem(rs RenderSystem) {
	r.renderSystems.Add(rs.Name(), rs)
	r.log.Info("render system available", "name", rs.Name())
}

// RenderSystems returns the available render systems in install order.
func (r *Root) RenderSystems() []RenderSystem {
	return r.renderSystems.Values()
}

// RenderSystemByName returns the named render system, or nil.
func (r *Root) RenderSystemByName(name string) RenderSystem {
	rs, _ := r.renderSystems.ValueByKeyTry(name)
	return rs
}

// RenderSystem returns the active render system, or nil.
func (r *Root) RenderSystem() RenderSystem {
	return r.active
}

// SetRenderSystem makes rs the active render system.
func (r *Root) SetRenderSystem(rs RenderSystem) {
	r.active = rs
}

// RestoreConfig loads the render system selection and its options from
// the config file. It returns false if there is no usable stored
// configuration, in which case the caller should show a config dialog.
func (r *Root) RestoreConfig() bool {
	cf, err := cfgfile.Load(r.opts.ConfigFile)
	if err != nil {
		r.log.Info("no stored configuration", "file", r.opts.ConfigFile, "err", err)
		return false
	}
	name := cf.Setting(RenderSystemKey, "", "")
	rs := r.RenderSystemByName(name)
	if rs == nil {
		r.log.Warn("stored render system not available", "name", name)
		return false
	}
	for _, s := range cf.Settings(name) {
		if err := rs.SetConfigOption(s.Key, s.Value); err != nil {
			r.log.Warn("invalid stored option", "system", name, "option", s.Key, "err", err)
			return false
		}
	}
	if err := rs.ValidateConfigOptions(); err != nil {
		r.log.Warn("stored configuration is not valid", "system", name, "err", err)
		return false
	}
	r.active = rs
	r.log.Info("restored configuration", "system", name)
	return true
}

// SaveConfig writes the active render system and the options of every
// available render system to the config file.
func (r *Root) SaveConfig() error {
	if r.active == nil {
		return ErrNoRenderSystem
	}
	cf := cfgfile.New()
	cf.Set("", RenderSystemKey, r.active.Name())
	for _, rs := range r.RenderSystems() {
		for _, opt := range rs.ConfigOptions() {
			cf.Add(rs.Name(), opt.Name, opt.CurrentValue)
		}
	}
	return cf.Save(r.opts.ConfigFile)
}

// ShowConfigDialog runs the given dialog. If the user accepts a valid
// configuration it becomes active, is saved, and true is returned.
func (r *Root) ShowConfigDialog(d ConfigDialog) bool {
	if d == nil {
		r.log.Warn("no stored configuration and no configuration dialog")
		return false
	}
	rs, ok := d.Display(r.RenderSystems(), r.active)
	if !ok || rs == nil {
		r.log.Warn("configuration dialog canceled")
		return false
	}
	if err := rs.ValidateConfigOptions(); err != nil {
		r.log.Error("chosen configuration is not valid", "system", rs.Name(), "err", err)
		return false
	}
	r.active = rs
	if err := r.SaveConfig(); err != nil {
		r.log.Warn("could not save configuration", "file", r.opts.ConfigFile, "err", err)
	}
	return true
}

// Initialise starts the active render system and, if autoCreateWindow,
// creates and returns the render window.
func (r *Root) Initialise(autoCreateWindow bool, title string) (Window, error) {
	if r.active == nil {
		return nil, ErrNoRenderSystem
	}
	if title == "" {
		title = DefaultWindowTitle
	}
	if autoCreateWindow {
		w, err := r.active.CreateWindow(title)
		if err != nil {
			return nil, fmt.Errorf("engine: creating window with %s: %w", r.active.Name(), err)
		}
		r.window = w
		r.log.Info("created render window", "title", title, "size", w.Size())
	}
	r.initialised = true
	r.timer.Reset()
	return r.window, nil
}

// SetCompositor sets the compositor that is updated every frame.
func (r *Root) SetCompositor(c Compositor) {
	r.compositor = c
}

// AddFrameListener adds a listener notified around every frame.
func (r *Root) AddFrameListener(l FrameListener) {
	r.listeners = append(r.listeners, l)
}

// RemoveFrameListener removes a listener added with AddFrameListener.
func (r *Root) RemoveFrameListener(l FrameListener) {
	for i, fl := range r.listeners {
		if fl == l {
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return
		}
	}
}

// RenderOneFrame notifies the frame listeners and updates the compositor.
// dt is the time in seconds since the last frame.
func (r *Root) RenderOneFrame(dt float64) error {
	if !r.initialised {
		return ErrNotInitialised
	}
	ev := FrameEvent{TimeSinceLastFrame: dt, Frame: r.frames}
	for _, l := range r.listeners {
		if err := l.FrameStarted(ev); err != nil {
			return err
		}
	}
	if r.compositor != nil {
		if err := r.compositor.Update(); err != nil {
			return err
		}
	}
	for _, l := range r.listeners {
		if err := l.FrameEnded(ev); err != nil {
			return err
		}
	}
	r.frames++
	return nil
}

// Frames returns the number of frames rendered.
func (r *Root) Frames() uint64 {
	return r.frames
}

// Close destroys the render window, shuts down all render systems,
// and closes the log. It is safe to call more than once.
func (r *Root) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.window != nil {
		r.window.Destroy()
		r.window = nil
	}
	var errs []error
	for _, rs := range r.RenderSystems() {
		if err := rs.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("shutting down %s: %w", rs.Name(), err))
		}
	}
	r.log.Info("root shut down", "frames", r.frames)
	errs = append(errs, r.logCloser.Close())
	return errors.Join(errs...)
}
