// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"errors"

	"cogentcore.org/core/math32"
)

// ErrAttached is returned when attaching an object that is already
// attached to a node.
var ErrAttached = errors.New("scene: object already attached")

// Movable is an object that can be attached to a [Node]: an [*Item]
// or a [*Light].
type Movable interface {
	ParentNode() *Node
	setParentNode(n *Node)
}

// Node is a scene node: it has a position relative to its parent,
// child nodes, and attached objects.
type Node struct {
	parent   *Node
	children []*Node
	attached []Movable
	position math32.Vector3
}

// CreateChildSceneNode adds and returns a new child node.
func (n *Node) CreateChildSceneNode() *Node {
	c := &Node{parent: n}
	n.children = append(n.children, c)
	return c
}

// Parent returns the parent node, nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child nodes.
func (n *Node) Children() []*Node { return n.children }

// Attached returns the attached objects.
func (n *Node) Attached() []Movable { return n.attached }

// SetPosition sets the position relative to the parent.
func (n *Node) SetPosition(x, y, z float32) {
	n.position = math32.Vec3(x, y, z)
}

// Position returns the position relative to the parent.
func (n *Node) Position() math32.Vector3 { return n.position }

// WorldPosition returns the position in world space.
func (n *Node) WorldPosition() math32.Vector3 {
	p := n.position
	for a := n.parent; a != nil; a = a.parent {
		p = p.Add(a.position)
	}
	return p
}

// Attach attaches obj to the node. An object can only be attached to
// one node.
func (n *Node) Attach(obj Movable) error {
	if obj.ParentNode() != nil {
		return ErrAttached
	}
	obj.setParentNode(n)
	n.attached = append(n.attached, obj)
	return nil
}

// worldPosition returns the world position of obj's node, or the origin
// when it is detached.
func worldPosition(obj Movable) math32.Vector3 {
	if n := obj.ParentNode(); n != nil {
		return n.WorldPosition()
	}
	return math32.Vector3{}
}
