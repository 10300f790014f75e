// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hlms

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"cogentcore.org/core/colors"
	"cogentcore.org/minimal/engine"
	"cogentcore.org/minimal/engine/enginetest"
	"cogentcore.org/minimal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShaderSyntax(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{Direct3D11, "HLSL"},
		{Metal, "Metal"},
		{OpenGL3, "GLSL"},
		{"Vulkan Rendering Subsystem", "GLSL"},
		{"", "GLSL"},
		{"direct3d11 rendering subsystem", "GLSL"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ShaderSyntax(tt.name), tt.name)
	}
}

// writeMedia creates the Hlms folders for the given syntaxes under a
// temporary data folder and returns it.
func writeMedia(t *testing.T, syntaxes ...string) string {
	t.Helper()
	dir := t.TempDir()
	files := []string{
		"Hlms/Common/Any/Cubemap_piece_all.any",
		"Hlms/Common/Any/Matrix_piece_vs.any",
	}
	for _, s := range syntaxes {
		files = append(files,
			"Hlms/Common/"+s+"/QuaternionCode_piece_all.txt",
			"Hlms/Common/"+s+"/Matrix_piece_vs.any",
			"Hlms/Unlit/"+s+"/VertexShader_vs.txt",
			"Hlms/Unlit/"+s+"/PixelShader_ps.txt",
			"Hlms/Unlit/"+s+"/Structs_piece_vs_piece_ps.txt",
			"Hlms/Pbs/"+s+"/VertexShader_vs.txt",
			"Hlms/Pbs/"+s+"/PixelShader_ps.txt",
			"Hlms/Pbs/"+s+"/BRDFs_piece_ps.txt",
			"Hlms/Pbs/"+s+"/Forward3D/Forward3D_piece_ps.txt",
			"Hlms/Pbs/"+s+"/README.md",
		)
	}
	for _, f := range files {
		p := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0777))
		require.NoError(t, os.WriteFile(p, []byte("@piece"), 0666))
	}
	return dir
}

func TestRegister(t *testing.T) {
	dir := writeMedia(t, "GLSL")
	rs := enginetest.NewRenderSystem("Vulkan Rendering Subsystem")
	am := resource.NewArchiveManager()
	defer am.Close()
	m := NewManager(nil)

	unlit, pbs, err := Register(rs, am, m, dir)
	require.NoError(t, err)
	assert.Same(t, unlit, m.Get(Unlit))
	assert.Same(t, pbs, m.Get(Pbs))
	assert.Equal(t, []*Hlms{unlit, pbs}, m.Systems())
	assert.Equal(t, DefaultTextureBufferSize, unlit.TextureBufferDefaultSize)
	assert.Equal(t, DefaultTextureBufferSize, pbs.TextureBufferDefaultSize)

	assert.Equal(t, filepath.Join(dir, "Hlms", "Pbs", "GLSL"), pbs.DataFolder.Name())
	require.Len(t, pbs.Library, 2)
	assert.Equal(t, filepath.Join(dir, "Hlms", "Common", "GLSL"), pbs.Library[0].Name())
	assert.Equal(t, filepath.Join(dir, "Hlms", "Common", "Any"), pbs.Library[1].Name())
	assert.Same(t, pbs.Library[0], unlit.Library[0])

	assert.Equal(t, []string{"PixelShader_ps.txt", "VertexShader_vs.txt"}, pbs.Templates())
	assert.Equal(t, []string{
		"BRDFs_piece_ps.txt",
		"Cubemap_piece_all.any",
		"Forward3D/Forward3D_piece_ps.txt",
		"Matrix_piece_vs.any",
		"QuaternionCode_piece_all.txt",
	}, pbs.Pieces())

	db := m.DefaultDatablock(Pbs)
	require.NotNil(t, db)
	assert.Equal(t, Pbs, db.Kind)
	assert.Equal(t, colors.White, db.Diffuse)
	assert.Equal(t, float32(1), db.Roughness)
	assert.Nil(t, m.DefaultDatablock(numKinds))

	_, _, err = Register(rs, am, m, dir)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegisterDirect3D11(t *testing.T) {
	tests := []struct {
		name  string
		attr  any
		set   bool
		bytes int
	}{
		{"supported", true, true, DefaultTextureBufferSize},
		{"unsupported", false, true, LowTextureBufferSize},
		{"missing", nil, false, LowTextureBufferSize},
	}
	dir := writeMedia(t, "HLSL")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := enginetest.NewRenderSystem(Direct3D11)
			if tt.set {
				rs.Attributes[MapNoOverwriteAttr] = tt.attr
			}
			unlit, pbs, err := Register(rs, resource.NewArchiveManager(), NewManager(nil), dir)
			require.NoError(t, err)
			assert.Equal(t, tt.bytes, unlit.TextureBufferDefaultSize)
			assert.Equal(t, tt.bytes, pbs.TextureBufferDefaultSize)
			assert.Equal(t, filepath.Join(dir, "Hlms", "Unlit", "HLSL"), unlit.DataFolder.Name())
		})
	}
}

func TestRegisterOtherSystemsKeepDefault(t *testing.T) {
	dir := writeMedia(t, "Metal")
	rs := enginetest.NewRenderSystem(Metal)
	rs.Attributes[MapNoOverwriteAttr] = false
	unlit, _, err := Register(rs, resource.NewArchiveManager(), NewManager(nil), dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultTextureBufferSize, unlit.TextureBufferDefaultSize)
}

func TestRegisterMissingFolder(t *testing.T) {
	dir := writeMedia(t, "GLSL")
	_, _, err := Register(enginetest.NewRenderSystem(Direct3D11), resource.NewArchiveManager(), NewManager(nil), dir)
	assert.ErrorContains(t, err, "loading library")
}

func TestManagerReload(t *testing.T) {
	dir := writeMedia(t, "GLSL")
	m := NewManager(nil)
	_, pbs, err := Register(enginetest.NewRenderSystem(OpenGL3), resource.NewArchiveManager(), m, dir)
	require.NoError(t, err)

	var reloaded []Kind
	m.OnReload(func(h *Hlms) { reloaded = append(reloaded, h.Kind) })
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Hlms", "Pbs", "GLSL", "Shadow_piece_ps.txt"), nil, 0666))
	require.NoError(t, m.Reload(Pbs))
	assert.Equal(t, []Kind{Pbs}, reloaded)
	assert.Contains(t, pbs.Pieces(), "Shadow_piece_ps.txt")
}

func TestWatcher(t *testing.T) {
	dir := writeMedia(t, "GLSL")
	m := NewManager(nil)
	unlit, pbs, err := Register(enginetest.NewRenderSystem(OpenGL3), resource.NewArchiveManager(), m, dir)
	require.NoError(t, err)

	var reloaded []Kind
	m.OnReload(func(h *Hlms) { reloaded = append(reloaded, h.Kind) })

	w, err := NewWatcher(m)
	require.NoError(t, err)
	defer w.Close()

	var _ engine.FrameListener = w
	require.NoError(t, w.FrameStarted(engine.FrameEvent{}))
	assert.Empty(t, reloaded)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Hlms", "Pbs", "GLSL", "Forward3D", "Extra_piece_ps.txt"), nil, 0666))
	require.Eventually(t, w.Pending, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, w.FrameStarted(engine.FrameEvent{Frame: 1}))
	assert.Equal(t, []Kind{Pbs}, reloaded)
	assert.Contains(t, pbs.Pieces(), "Forward3D/Extra_piece_ps.txt")

	// library changes reload both systems
	reloaded = nil
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Hlms", "Common", "Any", "New_piece_all.any"), nil, 0666))
	require.Eventually(t, func() bool {
		w.Apply()
		return slices.Contains(reloaded, Unlit)
	}, 5*time.Second, 10*time.Millisecond)
	assert.Contains(t, reloaded, Pbs)
	assert.Contains(t, unlit.Pieces(), "New_piece_all.any")
	assert.Contains(t, pbs.Pieces(), "New_piece_all.any")
}

func TestWatcherNewFolder(t *testing.T) {
	dir := writeMedia(t, "GLSL")
	m := NewManager(nil)
	_, pbs, err := Register(enginetest.NewRenderSystem(OpenGL3), resource.NewArchiveManager(), m, dir)
	require.NoError(t, err)
	w, err := NewWatcher(m)
	require.NoError(t, err)
	defer w.Close()

	sub := filepath.Join(dir, "Hlms", "Pbs", "GLSL", "Deferred")
	require.NoError(t, os.Mkdir(sub, 0777))
	require.Eventually(t, w.Pending, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, w.Apply())

	require.NoError(t, os.WriteFile(filepath.Join(sub, "Gbuffer_piece_ps.txt"), nil, 0666))
	require.Eventually(t, w.Pending, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, w.Apply())
	assert.Contains(t, pbs.Pieces(), "Deferred/Gbuffer_piece_ps.txt")
}

func TestWatcherCloseTwice(t *testing.T) {
	dir := writeMedia(t, "GLSL")
	m := NewManager(nil)
	_, _, err := Register(enginetest.NewRenderSystem(OpenGL3), resource.NewArchiveManager(), m, dir)
	require.NoError(t, err)
	w, err := NewWatcher(m)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
