// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compositor connects scenes, cameras and render targets
// through workspaces, and renders the enabled workspaces every frame.
package compositor

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"slices"

	"cogentcore.org/core/base/ordmap"
	"cogentcore.org/core/xyz"
	"cogentcore.org/minimal/scene"
)

var (
	// ErrUnknownDefinition is returned when adding a workspace for a
	// definition that does not exist.
	ErrUnknownDefinition = errors.New("compositor: unknown workspace definition")

	// ErrDuplicateDefinition is returned when a definition name is taken.
	ErrDuplicateDefinition = errors.New("compositor: duplicate workspace definition")
)

// Target is something a scene can be rendered to, such as a window.
type Target interface {
	RenderScene(sc *xyz.Scene, clear color.RGBA) error
}

// WorkspaceDef describes how a workspace renders: a single scene pass
// after clearing to ClearColour.
type WorkspaceDef struct {
	Name        string
	ClearColour color.RGBA
}

// Workspace renders a scene from a camera into a target.
type Workspace struct {
	Def     *WorkspaceDef
	Scene   *scene.Manager
	Target  Target
	Camera  *scene.Camera
	Enabled bool
}

// Update renders the workspace if it is enabled.
func (ws *Workspace) Update() error {
	if !ws.Enabled {
		return nil
	}
	if err := ws.Scene.Prepare(ws.Camera); err != nil {
		return fmt.Errorf("workspace %q: %w", ws.Def.Name, err)
	}
	return ws.Target.RenderScene(ws.Scene.Scene(), ws.Def.ClearColour)
}

// Manager holds workspace definitions and workspaces.
type Manager struct {
	defs       ordmap.Map[string, *WorkspaceDef]
	workspaces []*Workspace
	log        *slog.Logger
}

// NewManager returns an empty manager. A nil logger discards.
func NewManager(log *slog.Logger) *Manager {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := &Manager{log: log}
	m.defs.Init()
	return m
}

// CreateBasicWorkspaceDef defines a workspace that clears to clear and
// renders the scene.
func (m *Manager) CreateBasicWorkspaceDef(name string, clear color.RGBA) (*WorkspaceDef, error) {
	if m.HasDefinition(name) {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateDefinition, name)
	}
	def := &WorkspaceDef{Name: name, ClearColour: clear}
	m.defs.Add(name, def)
	return def, nil
}

// HasDefinition returns whether a workspace definition exists.
func (m *Manager) HasDefinition(name string) bool {
	_, ok := m.defs.ValueByKeyTry(name)
	return ok
}

// Definition returns the named definition, or nil.
func (m *Manager) Definition(name string) *WorkspaceDef {
	def, _ := m.defs.ValueByKeyTry(name)
	return def
}

// AddWorkspace adds a workspace rendering sm from cam into target
// using the named definition.
func (m *Manager) AddWorkspace(sm *scene.Manager, target Target, cam *scene.Camera, defName string, enabled bool) (*Workspace, error) {
	def := m.Definition(defName)
	if def == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDefinition, defName)
	}
	if sm == nil || target == nil || cam == nil {
		return nil, errors.New("compositor: workspace needs a scene, a target and a camera")
	}
	ws := &Workspace{Def: def, Scene: sm, Target: target, Camera: cam, Enabled: enabled}
	m.workspaces = append(m.workspaces, ws)
	m.log.Info("added workspace", "definition", defName, "scene", sm.Name, "camera", cam.Name, "enabled", enabled)
	return ws, nil
}

// RemoveWorkspace removes a workspace added with AddWorkspace.
func (m *Manager) RemoveWorkspace(ws *Workspace) {
	m.workspaces = slices.DeleteFunc(m.workspaces, func(w *Workspace) bool { return w == ws })
}

// Workspaces returns the workspaces in the order they render.
func (m *Manager) Workspaces() []*Workspace {
	return m.workspaces
}

// Update renders every enabled workspace in order.
func (m *Manager) Update() error {
	for _, ws := range m.workspaces {
		if err := ws.Update(); err != nil {
			return err
		}
	}
	return nil
}
