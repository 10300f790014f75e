// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// LightType is the kind of a [Light].
type LightType int32

const (
	// Directional lights shine along their direction from infinitely far.
	Directional LightType = iota

	// Point lights shine in all directions from their node.
	Point

	// Spot lights shine a cone along their direction from their node.
	Spot
)

func (lt LightType) String() string {
	switch lt {
	case Directional:
		return "Directional"
	case Point:
		return "Point"
	case Spot:
		return "Spot"
	}
	return fmt.Sprintf("LightType(%d)", int32(lt))
}

// Light is a light source. Its position comes from the node it is
// attached to.
type Light struct {
	Name string
	Type LightType

	Diffuse  Colour
	Specular Colour

	// PowerScale multiplies the light intensity. A power of Pi makes
	// a light as bright as its diffuse color on a white surface.
	PowerScale float32

	// Attenuation: range and constant, linear and quadratic factors.
	AttenuationRange     float32
	AttenuationConst     float32
	AttenuationLinear    float32
	AttenuationQuadratic float32

	// SpotInner and SpotOuter are the full cone angles in degrees.
	SpotInner float32
	SpotOuter float32

	direction math32.Vector3
	node      *Node
}

// NewLight returns a white point light pointing down -Z.
func NewLight(name string) *Light {
	return &Light{
		Name:             name,
		Type:             Point,
		Diffuse:          RGB(1, 1, 1),
		Specular:         RGB(1, 1, 1),
		PowerScale:       1,
		AttenuationRange: 100000,
		AttenuationConst: 1,
		SpotInner:        30,
		SpotOuter:        40,
		direction:        math32.Vec3(0, 0, -1),
	}
}

func (l *Light) ParentNode() *Node     { return l.node }
func (l *Light) setParentNode(n *Node) { l.node = n }

// SetType sets the light type.
func (l *Light) SetType(t LightType) { l.Type = t }

// SetPowerScale sets the power scale.
func (l *Light) SetPowerScale(p float32) { l.PowerScale = p }

// SetDiffuseColour sets the diffuse color.
func (l *Light) SetDiffuseColour(r, g, b float32) { l.Diffuse = RGB(r, g, b) }

// SetSpecularColour sets the specular color.
func (l *Light) SetSpecularColour(r, g, b float32) { l.Specular = RGB(r, g, b) }

// SetDirection sets the normalized direction the light shines in.
func (l *Light) SetDirection(d math32.Vector3) {
	l.direction = d.Normal()
}

// Direction returns the normalized direction the light shines in.
func (l *Light) Direction() math32.Vector3 { return l.direction }

// Position returns the world position of the light.
func (l *Light) Position() math32.Vector3 { return worldPosition(l) }

// SetAttenuationBasedOnRadius sets the attenuation so that the light
// behaves like a sphere of the given radius, and sets the range to the
// distance at which the luminance drops below lumThreshold.
func (l *Light) SetAttenuationBasedOnRadius(radius, lumThreshold float32) {
	lumThreshold = max(lumThreshold, 1e-6)
	l.AttenuationConst = 0.5
	l.AttenuationLinear = 0
	l.AttenuationQuadratic = 0.5 / (radius * radius)

	// luminance / (c + l*d + q*d*d) = lumThreshold, solved for d
	luminance := max(l.Diffuse.Max(), 1e-6)
	a := lumThreshold * l.AttenuationQuadratic
	b := lumThreshold * l.AttenuationLinear
	c := lumThreshold*l.AttenuationConst - luminance
	disc := b*b - 4*a*c
	if disc >= 0 {
		l.AttenuationRange = (-b + math32.Sqrt(disc)) / (2 * a)
	} else {
		l.AttenuationRange = math32.Infinity
	}
}
