// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"image/color"

	"cogentcore.org/core/math32"
)

// Colour is a linear floating point color with components nominally
// in [0, 1]. Scaled colors may exceed 1 before conversion.
type Colour struct {
	R, G, B, A float32
}

// RGB returns an opaque Colour.
func RGB(r, g, b float32) Colour {
	return Colour{r, g, b, 1}
}

// Scale multiplies the color components, leaving alpha unchanged.
func (c Colour) Scale(f float32) Colour {
	return Colour{c.R * f, c.G * f, c.B * f, c.A}
}

// Add returns the component sum, with alpha from c.
func (c Colour) Add(o Colour) Colour {
	return Colour{c.R + o.R, c.G + o.G, c.B + o.B, c.A}
}

// Max returns the largest of the color components.
func (c Colour) Max() float32 {
	return max(c.R, c.G, c.B)
}

// RGBA converts to 8 bit color, clamping to [0, 1].
func (c Colour) RGBA() color.RGBA {
	return color.RGBA{to8(c.R), to8(c.G), to8(c.B), to8(c.A)}
}

func to8(v float32) uint8 {
	return uint8(math32.Round(math32.Clamp(v, 0, 1) * 255))
}
