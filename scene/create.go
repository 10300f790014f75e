// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/minimal/resource"
)

// MainCameraName is the name of the camera made by [SetupCamera].
const MainCameraName = "Main Camera"

// SetupCamera creates the main camera at (0, 5, 30) looking back along
// -Z at the origin.
func SetupCamera(sm *Manager) (*Camera, error) {
	cam, err := sm.CreateCamera(MainCameraName)
	if err != nil {
		return nil, err
	}
	cam.SetPosition(math32.Vec3(0, 5, 30))
	cam.LookAt(math32.Vec3(0, 0, 0))
	cam.SetNearClipDistance(1)
	cam.SetFarClipDistance(1000)
	cam.SetAutoAspectRatio(true)
	return cam, nil
}

// CreateScene fills sm with a 50x50 ground plane, one directional and
// two spot lights, and a hemisphere ambient light.
func CreateScene(sm *Manager) error {
	mm := sm.Meshes()
	planeV1, err := mm.CreatePlaneV1("Plane v1", resource.DefaultGroupName, PlaneV1{
		Plane:           Plane{Normal: math32.Vec3(0, 1, 0), Distance: 1},
		Width:           50,
		Height:          50,
		XSegments:       1,
		YSegments:       1,
		Normals:         true,
		NumTexCoordSets: 1,
		UTile:           4,
		VTile:           4,
		Up:              math32.Vec3(0, 0, 1),
	})
	if err != nil {
		return err
	}
	plane, err := mm.CreateManual("Plane", resource.DefaultGroupName)
	if err != nil {
		return err
	}
	if err := plane.ImportV1(planeV1, true, true, true); err != nil {
		return err
	}
	item, err := sm.CreateItem(plane, true)
	if err != nil {
		return err
	}
	root := sm.RootNode()
	node := root.CreateChildSceneNode()
	node.SetPosition(0, -1, 0)
	if err := node.Attach(item); err != nil {
		return err
	}

	sun := sm.CreateLight()
	if err := root.CreateChildSceneNode().Attach(sun); err != nil {
		return err
	}
	sun.SetPowerScale(1)
	sun.SetType(Directional)
	sun.SetDirection(math32.Vec3(-1, -1, -1))

	sm.SetAmbientLight(RGB(0.3, 0.5, 0.7).Scale(0.1*0.75),
		RGB(0.6, 0.45, 0.3).Scale(0.065*0.75),
		sun.Direction().Negate().Add(math32.Vec3(0, 0.2, 0)))

	spot := func(r, g, b float32, pos, dir math32.Vector3) error {
		l := sm.CreateLight()
		n := root.CreateChildSceneNode()
		if err := n.Attach(l); err != nil {
			return err
		}
		l.SetDiffuseColour(r, g, b)
		l.SetSpecularColour(r, g, b)
		l.SetPowerScale(math32.Pi)
		l.SetType(Spot)
		n.SetPosition(pos.X, pos.Y, pos.Z)
		l.SetDirection(dir)
		l.SetAttenuationBasedOnRadius(50, 0.01)
		return nil
	}
	// warm
	if err := spot(0.8, 0.4, 0.2, math32.Vec3(-30, 30, 30), math32.Vec3(1, -1, -1)); err != nil {
		return err
	}
	// cold
	return spot(0.2, 0.4, 0.8, math32.Vec3(30, 30, -30), math32.Vec3(-1, -1, 1))
}
