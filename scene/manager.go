// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene builds scenes of nodes, items, lights and cameras, and
// realizes them as a Cogent Core [xyz.Scene] for rendering.
package scene

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"cogentcore.org/core/base/ordmap"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/xyz"
	"cogentcore.org/minimal/hlms"
)

// ErrDuplicateCamera is returned when creating a camera whose name is taken.
var ErrDuplicateCamera = errors.New("scene: duplicate camera name")

// Options configure a [Manager].
type Options struct {

	// Threads used for culling and updates.
	Threads int

	// ShadowFarDistance is the distance beyond which no shadows are cast.
	ShadowFarDistance float32

	// ShadowDirectionalLightExtrusionDistance is how far directional
	// light shadow volumes are extruded.
	ShadowDirectionalLightExtrusionDistance float32
}

// DefaultOptions returns single threaded options with shadow
// distances suited to scenes a few hundred units across.
func DefaultOptions() Options {
	return Options{Threads: 1, ShadowFarDistance: 500, ShadowDirectionalLightExtrusionDistance: 500}
}

// Ambient is a hemisphere ambient light: Upper lights surfaces facing
// Direction and Lower those facing away from it.
type Ambient struct {
	Upper, Lower Colour
	Direction    math32.Vector3
}

// Manager owns the scene graph and realizes it in an [xyz.Scene].
type Manager struct {
	Name    string
	Options Options

	meshes *MeshManager
	hlms   *hlms.Manager
	sc     *xyz.Scene
	log    *slog.Logger

	root    Node
	cameras ordmap.Map[string, *Camera]
	lights  []*Light
	items   []*Item
	ambient Ambient

	// dirty is set when lights, items or materials change.
	dirty bool

	// lightPoses are the light poses of the last build.
	lightPoses []lightPose
}

type lightPose struct {
	pos, dir math32.Vector3
}

// NewManager returns a scene manager that takes meshes from meshes and
// materials from hm. A nil logger discards.
func NewManager(name string, opts Options, meshes *MeshManager, hm *hlms.Manager, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Threads < 1 {
		opts.Threads = 1
	}
	sm := &Manager{Name: name, Options: opts, meshes: meshes, hlms: hm, log: log, sc: xyz.NewScene()}
	sm.sc.SetName(name)
	sm.cameras.Init()
	if hm != nil {
		hm.OnReload(func(h *hlms.Hlms) { sm.dirty = true })
	}
	log.Info("created scene manager", "name", name, "threads", opts.Threads,
		"shadowFar", opts.ShadowFarDistance, "shadowExtrusion", opts.ShadowDirectionalLightExtrusionDistance)
	return sm
}

// Scene returns the realized scene.
func (sm *Manager) Scene() *xyz.Scene { return sm.sc }

// Meshes returns the mesh manager.
func (sm *Manager) Meshes() *MeshManager { return sm.meshes }

// RootNode returns the root scene node.
func (sm *Manager) RootNode() *Node { return &sm.root }

// CreateCamera creates a camera with a unique name.
func (sm *Manager) CreateCamera(name string) (*Camera, error) {
	if _, ok := sm.cameras.ValueByKeyTry(name); ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateCamera, name)
	}
	c := newCamera(name)
	sm.cameras.Add(name, c)
	return c, nil
}

// Camera returns the named camera, or nil.
func (sm *Manager) Camera(name string) *Camera {
	c, _ := sm.cameras.ValueByKeyTry(name)
	return c
}

// CreateItem creates an item showing mesh.
func (sm *Manager) CreateItem(mesh *Mesh, dynamic bool) (*Item, error) {
	if mesh == nil {
		return nil, errors.New("scene: creating item with nil mesh")
	}
	it := &Item{Name: mesh.Name, Mesh: mesh, Dynamic: dynamic}
	sm.items = append(sm.items, it)
	sm.dirty = true
	return it, nil
}

// Items returns the items in creation order.
func (sm *Manager) Items() []*Item { return sm.items }

// CreateLight creates a point light. Lights are named in creation order.
func (sm *Manager) CreateLight() *Light {
	l := NewLight(fmt.Sprintf("light-%d", len(sm.lights)))
	sm.lights = append(sm.lights, l)
	sm.dirty = true
	return l
}

// Lights returns the lights in creation order.
func (sm *Manager) Lights() []*Light { return sm.lights }

// SetAmbientLight sets the hemisphere ambient light.
func (sm *Manager) SetAmbientLight(upper, lower Colour, dir math32.Vector3) {
	sm.ambient = Ambient{Upper: upper, Lower: lower, Direction: dir.Normal()}
	sm.dirty = true
}

// AmbientLight returns the hemisphere ambient light.
func (sm *Manager) AmbientLight() Ambient { return sm.ambient }

// Invalidate makes the next Prepare rebuild lights and materials, which
// is needed after changing them directly.
func (sm *Manager) Invalidate() { sm.dirty = true }

// Prepare updates the realized scene for rendering from cam.
// Item poses follow their nodes on every call. Lights and materials are
// rebuilt only when they changed or a light moved.
func (sm *Manager) Prepare(cam *Camera) error {
	if cam == nil {
		return errors.New("scene: no camera")
	}
	xc := &sm.sc.Camera
	xc.Pose.Pos = cam.Position
	xc.LookAt(cam.Target, upFor(cam.Direction()))
	xc.FOV = cam.FOV
	xc.Near = cam.Near
	xc.Far = cam.Far
	if !sm.dirty && sm.lightsMoved() {
		sm.dirty = true
	}
	if !sm.dirty {
		if sm.updatePoses() {
			sm.sc.SetNeedsUpdate()
		}
		return nil
	}
	sm.buildLights()
	if err := sm.buildItems(); err != nil {
		return err
	}
	sm.dirty = false
	if sm.sc.IsLive() {
		sm.sc.Rebuild()
	}
	return nil
}

// updatePoses moves the solids of built items to their node positions,
// reporting whether any moved.
func (sm *Manager) updatePoses() bool {
	moved := false
	for _, it := range sm.items {
		if it.solid == nil {
			continue
		}
		if pos := it.Position(); it.solid.Pose.Pos != pos {
			it.solid.Pose.Pos = pos
			moved = true
		}
	}
	return moved
}

// lightsMoved reports whether a light position or direction differs
// from the last build.
func (sm *Manager) lightsMoved() bool {
	if len(sm.lightPoses) != len(sm.lights) {
		return true
	}
	for i, l := range sm.lights {
		if sm.lightPoses[i] != (lightPose{l.Position(), l.Direction()}) {
			return true
		}
	}
	return false
}

// buildLights replaces the scene lights. Intensities are divided by Pi,
// as the Phong model does not normalize diffuse reflection.
func (sm *Manager) buildLights() {
	sc := sm.sc
	sc.Lights.Reset()
	sm.lightPoses = sm.lightPoses[:0]
	if amb := sm.ambient; amb.Upper.Max() > 0 || amb.Lower.Max() > 0 {
		al := xyz.NewAmbient(sc, "ambient", 1, xyz.DirectSun)
		al.Color = amb.Upper.Add(amb.Lower).Scale(0.5).RGBA()
	}
	for _, l := range sm.lights {
		lumens := l.PowerScale / math32.Pi
		pos := l.Position()
		sm.lightPoses = append(sm.lightPoses, lightPose{pos, l.Direction()})
		switch l.Type {
		case Directional:
			dl := xyz.NewDirectional(sc, l.Name, lumens, xyz.DirectSun)
			dl.Color = l.Diffuse.RGBA()
			dl.Pos = l.Direction().Negate()
		case Point:
			pl := xyz.NewPoint(sc, l.Name, lumens, xyz.DirectSun)
			pl.Color = l.Diffuse.RGBA()
			pl.Pos = pos
			pl.LinDecay = l.AttenuationLinear
			pl.QuadDecay = l.AttenuationQuadratic
		case Spot:
			sl := xyz.NewSpot(sc, l.Name, lumens, xyz.DirectSun)
			sl.Color = l.Diffuse.RGBA()
			sl.Pose.Pos = pos
			sl.LookAt(pos.Add(l.Direction()), upFor(l.Direction()))
			sl.CutoffAngle = math32.Clamp(l.SpotOuter/2, 1, 90)
			sl.LinDecay = l.AttenuationLinear
			sl.QuadDecay = l.AttenuationQuadratic
		}
	}
}

func (sm *Manager) buildItems() error {
	for _, it := range sm.items {
		ms, err := it.Mesh.build(sm.sc)
		if err != nil {
			return err
		}
		if it.solid == nil {
			it.solid = xyz.NewSolid(sm.sc)
			it.solid.SetName(it.Name)
			it.solid.SetMesh(ms)
		}
		it.solid.Pose.Pos = it.Position()
		it.solid.Material.Tiling.Repeat = it.Mesh.Tiling()
		db := it.Datablock
		if db == nil && sm.hlms != nil {
			db = sm.hlms.DefaultDatablock(hlms.Pbs)
		}
		applyDatablock(it.solid, db)
	}
	return nil
}

// upFor returns an up vector that is not parallel to dir.
func upFor(dir math32.Vector3) math32.Vector3 {
	if math32.Abs(dir.Normal().Y) > 0.999 {
		return math32.Vec3(0, 0, -1)
	}
	return math32.Vec3(0, 1, 0)
}
