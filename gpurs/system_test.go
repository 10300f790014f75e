// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpurs

import (
	"image"
	"path/filepath"
	"runtime"
	"testing"

	"cogentcore.org/core/gpu"
	"cogentcore.org/core/xyz"
	"cogentcore.org/minimal/engine"
	"cogentcore.org/minimal/hlms"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for name, backend := range map[string]wgpu.BackendType{
		Vulkan:          wgpu.BackendTypeVulkan,
		hlms.Direct3D11: wgpu.BackendTypeD3D11,
		hlms.Metal:      wgpu.BackendTypeMetal,
		hlms.OpenGL3:    wgpu.BackendTypeOpenGL,
	} {
		rs, err := New(name, nil)
		require.NoError(t, err, name)
		assert.Equal(t, name, rs.Name())
		v, ok := rs.CustomAttribute(BackendAttr)
		assert.True(t, ok)
		assert.Equal(t, backend, v)
		assert.NoError(t, rs.ValidateConfigOptions())
	}
	_, err := New("Software Rasterizer", nil)
	assert.ErrorContains(t, err, "unknown render system")
}

func TestConfigOptions(t *testing.T) {
	rs, err := New(Vulkan, nil)
	require.NoError(t, err)
	names := []string{}
	for _, opt := range rs.ConfigOptions() {
		names = append(names, opt.Name)
	}
	assert.Equal(t, []string{VideoMode, FullScreen}, names)

	require.NoError(t, rs.SetConfigOption(VideoMode, "1920 x 1080"))
	assert.Equal(t, "1920 x 1080", rs.ConfigOptions()[0].CurrentValue)
	assert.ErrorIs(t, rs.SetConfigOption(VideoMode, "640 x 480"), engine.ErrInvalidOptionValue)
	assert.ErrorIs(t, rs.SetConfigOption(FeatureLevel, "11.0"), engine.ErrUnknownOption)
}

func TestMapNoOverwrite(t *testing.T) {
	d3d, err := New(hlms.Direct3D11, nil)
	require.NoError(t, err)
	v, ok := d3d.CustomAttribute(hlms.MapNoOverwriteAttr)
	assert.True(t, ok)
	assert.Equal(t, true, v)

	require.NoError(t, d3d.SetConfigOption(FeatureLevel, "11.0"))
	v, ok = d3d.CustomAttribute(hlms.MapNoOverwriteAttr)
	assert.True(t, ok)
	assert.Equal(t, false, v)

	gl, err := New(hlms.OpenGL3, nil)
	require.NoError(t, err)
	_, ok = gl.CustomAttribute(hlms.MapNoOverwriteAttr)
	assert.False(t, ok)
	_, ok = gl.CustomAttribute("RenderDoc")
	assert.False(t, ok)
}

func TestParseVideoMode(t *testing.T) {
	sz, err := parseVideoMode("1280 x 720")
	require.NoError(t, err)
	assert.Equal(t, image.Point{1280, 720}, sz)
	sz, err = parseVideoMode("800x600")
	require.NoError(t, err)
	assert.Equal(t, image.Point{800, 600}, sz)
	sz, err = parseVideoMode("1024 x 768 @ 32-bit colour")
	require.NoError(t, err)
	assert.Equal(t, image.Point{1024, 768}, sz)

	for _, bad := range []string{"", "wide", "0 x 600", "800 x -1", "800 x", "x 600 @ 16-bit colour"} {
		_, err := parseVideoMode(bad)
		assert.Error(t, err, bad)
	}
}

func TestPlugins(t *testing.T) {
	dir := t.TempDir()
	r, err := engine.NewRoot(engine.Options{LogFile: filepath.Join(dir, "test.log")})
	require.NoError(t, err)
	defer r.Close()
	for _, p := range Plugins(Platform{OS: "windows", Arch: "amd64"}) {
		require.NoError(t, r.InstallPlugin(p))
	}
	assert.Equal(t, []string{"RenderSystem_Vulkan", "RenderSystem_Direct3D11", "RenderSystem_Metal", "RenderSystem_GL3Plus"}, r.Plugins())
	assert.NotNil(t, r.RenderSystemByName(Vulkan))
	assert.NotNil(t, r.RenderSystemByName(hlms.Direct3D11))
	assert.Nil(t, r.RenderSystemByName(hlms.Metal))
	assert.NotNil(t, r.RenderSystemByName(hlms.OpenGL3))
	assert.Len(t, r.RenderSystems(), 3)
}

func TestPlatform(t *testing.T) {
	var p Platform
	require.NoError(t, p.SetString("darwin/arm64"))
	assert.Equal(t, Platform{OS: "darwin", Arch: "arm64"}, p)
	assert.Equal(t, "darwin/arm64", p.String())
	require.NoError(t, p.SetString("linux"))
	assert.Equal(t, Platform{OS: "linux", Arch: "*"}, p)
	assert.Error(t, p.SetString("/amd64"))

	assert.NoError(t, p.Supports(Vulkan))
	assert.NoError(t, p.Supports(hlms.OpenGL3))
	assert.ErrorContains(t, p.Supports(hlms.Direct3D11), "not supported on linux/*")
	assert.ErrorContains(t, p.Supports(hlms.Metal), "not supported")
	assert.ErrorContains(t, p.Supports("Software"), "could not find render system")

	assert.ErrorContains(t, Platform{OS: "openbsd", Arch: "amd64"}.Supports(hlms.OpenGL3), "not supported on openbsd/amd64")

	assert.Equal(t, runtime.GOOS, Current().OS)
}

func TestReleaseScenes(t *testing.T) {
	sc := xyz.NewScene()
	sc.Frame = &gpu.Surface{}
	releaseScenes([]*xyz.Scene{sc})
	assert.Nil(t, sc.Frame)
	assert.False(t, sc.IsLive())
}

func TestShutdownWithoutWindows(t *testing.T) {
	rs, err := New(Vulkan, nil)
	require.NoError(t, err)
	assert.NoError(t, rs.Shutdown())
	assert.NoError(t, rs.Shutdown())
}
