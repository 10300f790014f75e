// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !offscreen && ((darwin && !ios) || windows || (linux && !android))

package gpurs

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"cogentcore.org/core/colors"
	"cogentcore.org/core/gpu"
	"cogentcore.org/core/gpu/phong"
	"cogentcore.org/core/xyz"
	"cogentcore.org/minimal/engine"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window is a glfw window with a WebGPU surface. It must only be used
// from the main thread.
type Window struct {
	win     *glfw.Window
	gpu     *gpu.GPU
	surface *gpu.Surface
	size    image.Point
	log     *slog.Logger

	// scenes render into surface.
	scenes []*xyz.Scene

	destroyed bool
}

// CreateWindow opens a window of the configured video mode, on the
// primary monitor if full screen.
func (rs *System) CreateWindow(title string) (engine.Window, error) {
	size, err := parseVideoMode(rs.opts.Value(VideoMode))
	if err != nil {
		return nil, err
	}
	if !rs.started {
		if err := gpu.Init(); err != nil {
			return nil, fmt.Errorf("gpurs: initializing glfw: %w", err)
		}
		rs.started = true
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	var mon *glfw.Monitor
	if rs.opts.Value(FullScreen) == "Yes" {
		mon = glfw.GetPrimaryMonitor()
	}
	win, err := glfw.CreateWindow(size.X, size.Y, title, mon, nil)
	if err != nil {
		return nil, fmt.Errorf("gpurs: creating window: %w", err)
	}
	wsurf := gpu.Instance().CreateSurface(wgpuglfw.GetSurfaceDescriptor(win))
	gp := gpu.NewGPU(wsurf)
	fw, fh := win.GetFramebufferSize()
	w := &Window{win: win, gpu: gp, size: image.Point{fw, fh}, log: rs.log}
	w.surface = gpu.NewSurface(gp, wsurf, w.size, 4, gpu.Depth32)
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.resize(image.Point{width, height})
	})
	rs.windows = append(rs.windows, w)
	rs.log.Info("opened window", "system", rs.name, "backend", rs.backend, "size", w.size, "fullscreen", mon != nil)
	return w, nil
}

func (w *Window) resize(size image.Point) {
	w.size = size
	if size.X > 0 && size.Y > 0 {
		w.surface.SetSize(size)
	}
}

func (w *Window) PumpEvents() { glfw.PollEvents() }

func (w *Window) IsVisible() bool {
	return w.win.GetAttrib(glfw.Visible) == glfw.True && w.win.GetAttrib(glfw.Iconified) == glfw.False
}

func (w *Window) IsClosed() bool    { return w.destroyed || w.win.ShouldClose() }
func (w *Window) Size() image.Point { return w.size }

func (w *Window) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	releaseScenes(w.scenes)
	w.scenes = nil
	w.surface.Release()
	w.gpu.Release()
	w.win.Destroy()
}

// RenderScene renders sc into the window surface, attaching the scene
// to the surface on first use.
func (w *Window) RenderScene(sc *xyz.Scene, clear color.RGBA) error {
	if w.destroyed {
		return fmt.Errorf("gpurs: rendering to a destroyed window")
	}
	if w.size.X <= 0 || w.size.Y <= 0 {
		return nil
	}
	if sc.Frame == nil {
		sc.Background = colors.Uniform(clear)
		sc.Frame = w.surface
		sc.Phong = phong.NewPhong(w.gpu, w.surface)
		sc.ConfigNewPhong()
		w.scenes = append(w.scenes, sc)
	}
	sc.SetSize(w.size)
	sc.Render()
	return nil
}

func terminate() { gpu.Terminate() }
