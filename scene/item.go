// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/core/xyz"
	"cogentcore.org/minimal/hlms"
)

// Item is an instance of a [Mesh] with a material.
type Item struct {
	Name string
	Mesh *Mesh

	// Datablock is the material; nil uses the default PBS material.
	Datablock *hlms.Datablock

	// Dynamic items may move every frame.
	Dynamic bool

	node  *Node
	solid *xyz.Solid
}

func (it *Item) ParentNode() *Node     { return it.node }
func (it *Item) setParentNode(n *Node) { it.node = n }

// Position returns the world position of the item.
func (it *Item) Position() math32.Vector3 { return worldPosition(it) }

// Solid returns the solid rendering the item, nil before the first
// [Manager.Prepare].
func (it *Item) Solid() *xyz.Solid { return it.solid }

// applyDatablock sets the solid material from a datablock. Roughness
// maps to Phong shininess and metalness to reflectivity.
func applyDatablock(sld *xyz.Solid, db *hlms.Datablock) {
	if db == nil {
		return
	}
	smooth := 1 - math32.Clamp(db.Roughness, 0, 1)
	sld.SetColor(db.Diffuse).SetEmissive(db.Emissive)
	if db.Kind == hlms.Unlit {
		sld.SetShiny(0).SetReflective(0)
		return
	}
	sld.SetShiny(1 + 127*smooth*smooth).
		SetReflective(0.25 + 0.75*max(smooth, math32.Clamp(db.Metalness, 0, 1)))
}
