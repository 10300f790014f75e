// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "cogentcore.org/core/math32"

// Camera is a perspective camera.
type Camera struct {
	Name string

	Position math32.Vector3
	Target   math32.Vector3

	// FOV is the vertical field of view in degrees.
	FOV float32

	Near float32
	Far  float32

	// AutoAspect makes the aspect ratio follow the render target size.
	AutoAspect bool
}

func newCamera(name string) *Camera {
	return &Camera{Name: name, FOV: 45, Near: 100, Far: 100000, Target: math32.Vec3(0, 0, -1)}
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(p math32.Vector3) { c.Position = p }

// LookAt points the camera at target.
func (c *Camera) LookAt(target math32.Vector3) { c.Target = target }

// SetNearClipDistance sets the near clip plane distance.
func (c *Camera) SetNearClipDistance(d float32) { c.Near = d }

// SetFarClipDistance sets the far clip plane distance.
func (c *Camera) SetFarClipDistance(d float32) { c.Far = d }

// SetAutoAspectRatio sets whether the aspect ratio follows the target.
func (c *Camera) SetAutoAspectRatio(auto bool) { c.AutoAspect = auto }

// Direction returns the normalized view direction.
func (c *Camera) Direction() math32.Vector3 {
	return c.Target.Sub(c.Position).Normal()
}
