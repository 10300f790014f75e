// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"errors"
	"fmt"

	"cogentcore.org/core/base/ordmap"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/xyz"
)

var (
	// ErrDuplicateMesh is returned when creating a mesh whose name is taken.
	ErrDuplicateMesh = errors.New("scene: duplicate mesh name")

	// ErrUnsupportedPlane is returned for planes that are not axis aligned.
	ErrUnsupportedPlane = errors.New("scene: plane normal must be axis aligned")
)

// Plane is the infinite plane Normal·p = Distance.
type Plane struct {
	Normal   math32.Vector3
	Distance float32
}

// PlaneV1 describes a legacy plane mesh.
type PlaneV1 struct {
	Plane Plane

	Width, Height        float32
	XSegments, YSegments int
	Normals              bool
	NumTexCoordSets      int
	UTile, VTile         float32
	Up                   math32.Vector3
}

// MeshV1 is a mesh in the legacy format, as produced by
// [MeshManager.CreatePlaneV1]. It must be imported into a [Mesh] to be
// rendered.
type MeshV1 struct {
	Name  string
	Group string
	Plane PlaneV1
}

// Mesh is a renderable mesh. Its geometry is built in the
// [xyz.Scene] of the manager that first renders an item using it.
type Mesh struct {
	Name  string
	Group string

	// Source is the imported legacy mesh, nil until ImportV1.
	Source *MeshV1

	// HalfPos, HalfUVs and QTangents record the import vertex formats.
	HalfPos, HalfUVs, QTangents bool
}

// ImportV1 imports the geometry of a legacy mesh.
func (m *Mesh) ImportV1(v1 *MeshV1, halfPos, halfUVs, qTangents bool) error {
	if _, err := planeAxis(v1.Plane.Plane.Normal); err != nil {
		return fmt.Errorf("importing %q into %q: %w", v1.Name, m.Name, err)
	}
	m.Source = v1
	m.HalfPos, m.HalfUVs, m.QTangents = halfPos, halfUVs, qTangents
	return nil
}

// Tiling returns the texture repeat of the mesh.
func (m *Mesh) Tiling() math32.Vector2 {
	if m.Source == nil {
		return math32.Vec2(1, 1)
	}
	return math32.Vec2(m.Source.Plane.UTile, m.Source.Plane.VTile)
}

// build adds the mesh geometry to sc unless it is already there.
func (m *Mesh) build(sc *xyz.Scene) (xyz.Mesh, error) {
	if ms, err := sc.MeshByName(m.Name); err == nil {
		return ms, nil
	}
	if m.Source == nil {
		return nil, fmt.Errorf("scene: mesh %q has no geometry", m.Name)
	}
	p := m.Source.Plane
	ax, err := planeAxis(p.Plane.Normal)
	if err != nil {
		return nil, err
	}
	pl := xyz.NewPlane(sc, m.Name, p.Width, p.Height)
	pl.NormAxis = ax.dim
	pl.NormalNeg = ax.neg
	pl.Segs.Set(int32(max(p.XSegments, 1)), int32(max(p.YSegments, 1)))
	pl.Offset = p.Plane.Distance
	sc.SetMesh(pl)
	return pl, nil
}

type axis struct {
	dim math32.Dims
	neg bool
}

func planeAxis(n math32.Vector3) (axis, error) {
	switch n.Normal() {
	case math32.Vec3(1, 0, 0):
		return axis{math32.X, false}, nil
	case math32.Vec3(-1, 0, 0):
		return axis{math32.X, true}, nil
	case math32.Vec3(0, 1, 0):
		return axis{math32.Y, false}, nil
	case math32.Vec3(0, -1, 0):
		return axis{math32.Y, true}, nil
	case math32.Vec3(0, 0, 1):
		return axis{math32.Z, false}, nil
	case math32.Vec3(0, 0, -1):
		return axis{math32.Z, true}, nil
	}
	return axis{}, ErrUnsupportedPlane
}

// MeshManager holds meshes by name, in both formats.
type MeshManager struct {
	v1     ordmap.Map[string, *MeshV1]
	meshes ordmap.Map[string, *Mesh]
}

// NewMeshManager returns an empty mesh manager.
func NewMeshManager() *MeshManager {
	mm := &MeshManager{}
	mm.v1.Init()
	mm.meshes.Init()
	return mm
}

// CreatePlaneV1 creates a legacy plane mesh.
func (mm *MeshManager) CreatePlaneV1(name, group string, p PlaneV1) (*MeshV1, error) {
	if _, ok := mm.v1.ValueByKeyTry(name); ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateMesh, name)
	}
	if _, err := planeAxis(p.Plane.Normal); err != nil {
		return nil, err
	}
	m := &MeshV1{Name: name, Group: group, Plane: p}
	mm.v1.Add(name, m)
	return m, nil
}

// CreateManual creates an empty mesh to be filled by an import.
func (mm *MeshManager) CreateManual(name, group string) (*Mesh, error) {
	if _, ok := mm.meshes.ValueByKeyTry(name); ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateMesh, name)
	}
	m := &Mesh{Name: name, Group: group}
	mm.meshes.Add(name, m)
	return m, nil
}

// Mesh returns the named mesh, or nil.
func (mm *MeshManager) Mesh(name string) *Mesh {
	m, _ := mm.meshes.ValueByKeyTry(name)
	return m
}

// MeshV1 returns the named legacy mesh, or nil.
func (mm *MeshManager) MeshV1(name string) *MeshV1 {
	m, _ := mm.v1.ValueByKeyTry(name)
	return m
}
