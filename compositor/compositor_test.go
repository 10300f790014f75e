// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compositor

import (
	"errors"
	"image/color"
	"testing"

	"cogentcore.org/core/xyz"
	"cogentcore.org/minimal/engine"
	"cogentcore.org/minimal/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type target struct {
	scenes []*xyz.Scene
	clears []color.RGBA
	err    error
}

func (tg *target) RenderScene(sc *xyz.Scene, clear color.RGBA) error {
	tg.scenes = append(tg.scenes, sc)
	tg.clears = append(tg.clears, clear)
	return tg.err
}

func newScene(t *testing.T) (*scene.Manager, *scene.Camera) {
	sm := scene.NewManager("SceneManager", scene.DefaultOptions(), scene.NewMeshManager(), nil, nil)
	require.NoError(t, scene.CreateScene(sm))
	cam, err := scene.SetupCamera(sm)
	require.NoError(t, err)
	return sm, cam
}

func TestDefinitions(t *testing.T) {
	m := NewManager(nil)
	assert.False(t, m.HasDefinition("PbsMaterialsWorkspace"))
	def, err := m.CreateBasicWorkspaceDef("PbsMaterialsWorkspace", color.RGBA{51, 102, 153, 255})
	require.NoError(t, err)
	assert.True(t, m.HasDefinition("PbsMaterialsWorkspace"))
	assert.Same(t, def, m.Definition("PbsMaterialsWorkspace"))

	_, err = m.CreateBasicWorkspaceDef("PbsMaterialsWorkspace", color.RGBA{})
	assert.ErrorIs(t, err, ErrDuplicateDefinition)
}

func TestAddWorkspace(t *testing.T) {
	m := NewManager(nil)
	sm, cam := newScene(t)
	tg := &target{}

	_, err := m.AddWorkspace(sm, tg, cam, "PbsMaterialsWorkspace", true)
	assert.ErrorIs(t, err, ErrUnknownDefinition)

	clear := color.RGBA{51, 102, 153, 255}
	_, err = m.CreateBasicWorkspaceDef("PbsMaterialsWorkspace", clear)
	require.NoError(t, err)
	_, err = m.AddWorkspace(sm, nil, cam, "PbsMaterialsWorkspace", true)
	assert.Error(t, err)

	ws, err := m.AddWorkspace(sm, tg, cam, "PbsMaterialsWorkspace", true)
	require.NoError(t, err)
	assert.Equal(t, []*Workspace{ws}, m.Workspaces())

	var _ engine.Compositor = m
	require.NoError(t, m.Update())
	require.Len(t, tg.scenes, 1)
	assert.Same(t, sm.Scene(), tg.scenes[0])
	assert.Equal(t, clear, tg.clears[0])
	assert.Equal(t, 4, sm.Scene().Lights.Len())

	ws.Enabled = false
	require.NoError(t, m.Update())
	assert.Len(t, tg.scenes, 1)

	ws.Enabled = true
	tg.err = errors.New("device lost")
	assert.ErrorContains(t, m.Update(), "device lost")

	m.RemoveWorkspace(ws)
	assert.Empty(t, m.Workspaces())
}
