// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpurs provides WebGPU render systems that open glfw windows
// and draw [xyz.Scene]s into them.
package gpurs

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"cogentcore.org/core/xyz"
	"cogentcore.org/minimal/engine"
	"cogentcore.org/minimal/hlms"
	"github.com/cogentcore/webgpu/wgpu"
)

// Vulkan is the name of the Vulkan render system. The others are
// named by [hlms.Direct3D11], [hlms.Metal] and [hlms.OpenGL3].
const Vulkan = "Vulkan Rendering Subsystem"

// Config option names.
const (
	VideoMode    = "Video Mode"
	FullScreen   = "Full Screen"
	FeatureLevel = "Min Feature Level"
)

// BackendAttr is the [System.CustomAttribute] holding the [wgpu.BackendType].
const BackendAttr = "Backend"

// VideoModes are the selectable window sizes.
var VideoModes = []string{"800 x 600", "1024 x 768", "1280 x 720", "1600 x 900", "1920 x 1080"}

// System is a render system backed by one WebGPU backend.
type System struct {
	name    string
	backend wgpu.BackendType
	opts    engine.OptionSet
	log     *slog.Logger

	windows []*Window
	started bool
}

// New returns the render system with the given name. A nil logger discards.
func New(name string, log *slog.Logger) (*System, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	rs := &System{name: name, log: log}
	switch name {
	case Vulkan:
		rs.backend = wgpu.BackendTypeVulkan
	case hlms.Direct3D11:
		rs.backend = wgpu.BackendTypeD3D11
	case hlms.Metal:
		rs.backend = wgpu.BackendTypeMetal
	case hlms.OpenGL3:
		rs.backend = wgpu.BackendTypeOpenGL
	default:
		return nil, fmt.Errorf("gpurs: unknown render system %q", name)
	}
	rs.opts.Add(VideoMode, "1280 x 720", VideoModes...)
	rs.opts.Add(FullScreen, "No", "Yes", "No")
	if name == hlms.Direct3D11 {
		rs.opts.Add(FeatureLevel, "11.1", "11.0", "11.1")
	}
	return rs, nil
}

// Plugins returns the plugins that install each render system, named
// the way plugin list files name them. A plugin for a render system
// that does not run on p installs nothing.
func Plugins(p Platform) []engine.Plugin {
	plugin := func(pluginName, name string) engine.Plugin {
		return &engine.PluginFunc{PluginName: pluginName, InstallFunc: func(r *engine.Root) error {
			if err := p.Supports(name); err != nil {
				r.Logger().Warn("render system not available", "plugin", pluginName, "err", err)
				return nil
			}
			rs, err := New(name, r.Logger())
			if err != nil {
				return err
			}
			r.AddRenderSystem(rs)
			return nil
		}}
	}
	return []engine.Plugin{
		plugin("RenderSystem_Vulkan", Vulkan),
		plugin("RenderSystem_Direct3D11", hlms.Direct3D11),
		plugin("RenderSystem_Metal", hlms.Metal),
		plugin("RenderSystem_GL3Plus", hlms.OpenGL3),
	}
}

func (rs *System) Name() string                         { return rs.name }
func (rs *System) ConfigOptions() []engine.ConfigOption { return rs.opts.List() }

func (rs *System) SetConfigOption(name, value string) error {
	return rs.opts.Set(name, value)
}

func (rs *System) ValidateConfigOptions() error {
	_, err := parseVideoMode(rs.opts.Value(VideoMode))
	return err
}

// CustomAttribute reports [hlms.MapNoOverwriteAttr] on Direct3D11,
// which requires feature level 11.1, and [BackendAttr] on all systems.
func (rs *System) CustomAttribute(name string) (any, bool) {
	switch name {
	case BackendAttr:
		return rs.backend, true
	case hlms.MapNoOverwriteAttr:
		if rs.name != hlms.Direct3D11 {
			return nil, false
		}
		return rs.opts.Value(FeatureLevel) == "11.1", true
	}
	return nil, false
}

// Shutdown destroys all open windows.
func (rs *System) Shutdown() error {
	for _, w := range rs.windows {
		w.Destroy()
	}
	rs.windows = nil
	if rs.started {
		terminate()
		rs.started = false
	}
	return nil
}

// releaseScenes releases the renderers of scenes attached to a window
// surface. The surface belongs to the window and is detached first, so
// the window releases it after the scenes.
func releaseScenes(scs []*xyz.Scene) {
	for _, sc := range scs {
		sc.Frame = nil
		sc.Destroy()
	}
}

// parseVideoMode parses a "W x H" video mode.
func parseVideoMode(mode string) (image.Point, error) {
	var sz image.Point
	// modes may carry a colour depth, as in "800 x 600 @ 32-bit colour"
	res, _, _ := strings.Cut(mode, "@")
	w, h, ok := strings.Cut(res, "x")
	if !ok {
		return sz, fmt.Errorf("gpurs: invalid video mode %q", mode)
	}
	var err error
	if sz.X, err = strconv.Atoi(strings.TrimSpace(w)); err != nil {
		return sz, fmt.Errorf("gpurs: invalid video mode %q: %w", mode, err)
	}
	if sz.Y, err = strconv.Atoi(strings.TrimSpace(h)); err != nil {
		return sz, fmt.Errorf("gpurs: invalid video mode %q: %w", mode, err)
	}
	if sz.X <= 0 || sz.Y <= 0 {
		return sz, fmt.Errorf("gpurs: invalid video mode %q", mode)
	}
	return sz, nil
}
