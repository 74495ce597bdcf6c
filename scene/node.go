// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cogentcore.org/core/math32"
)

const (
	// Continue tells Walk to descend into the children of the current node.
	Continue = true

	// Break tells Walk to skip the children of the current node.
	Break = false
)

// Node is the interface for all elements of the scenegraph.
type Node interface {
	// AsNode returns the [NodeBase] for this node, which holds the
	// pose and the tree structure.
	AsNode() *NodeBase

	// IsSolid returns true if this is a [Solid] node.
	IsSolid() bool
}

// Cloner is a [Node] that can make an independent copy of itself
// (and its children), with no parent.
type Cloner interface {
	Node
	Clone() Node
}

// NodeBase is the base type for all scene nodes.
type NodeBase struct {

	// Name is the name of the node, used for lookup and logging.
	Name string

	// Pose is the position, rotation and scale relative to the parent.
	Pose Pose

	// Invisible turns off rendering for this node and all of its children.
	Invisible bool

	// NoFrustumCull disables skipping this node when its bounds fall
	// outside of the camera view.
	NoFrustumCull bool

	// Parent is set when the node is added to another node.
	Parent Node `copier:"-"`

	// Children are the nodes owned by this node.
	Children []Node `copier:"-"`
}

func (nb *NodeBase) AsNode() *NodeBase {
	return nb
}

func (nb *NodeBase) IsSolid() bool {
	return false
}

// Defaults sets the pose defaults.
func (nb *NodeBase) Defaults() {
	nb.Pose.Defaults()
}

// NumChildren returns the number of direct children.
func (nb *NodeBase) NumChildren() int {
	return len(nb.Children)
}

// SetPos sets the [Pose.Pos] position of the node.
func (nb *NodeBase) SetPos(x, y, z float32) {
	nb.Pose.Pos.Set(x, y, z)
}

// SetScale sets the [Pose.Scale] scale of the node.
func (nb *NodeBase) SetScale(x, y, z float32) {
	nb.Pose.Scale.Set(x, y, z)
}

// SetRot sets the [Pose.Rot] Euler rotation of the node, in radians.
func (nb *NodeBase) SetRot(x, y, z float32) {
	nb.Pose.Rot.Set(x, y, z)
}

// WorldPos returns the position of the node in world coordinates,
// as of the last [Scene.UpdateWorld].
func (nb *NodeBase) WorldPos() math32.Vector3 {
	return math32.Vector3{}.MulMatrix4(&nb.Pose.WorldMatrix)
}

// AddChild adds kid as the last child of parent. If kid already
// has a parent, it is removed from it first.
func AddChild(parent, kid Node) {
	kb := kid.AsNode()
	if kb.Parent != nil {
		removeChild(kb.Parent, kid)
	}
	pb := parent.AsNode()
	pb.Children = append(pb.Children, kid)
	kb.Parent = parent
}

func removeChild(parent, kid Node) {
	pb := parent.AsNode()
	for i, k := range pb.Children {
		if k == kid {
			pb.Children = append(pb.Children[:i], pb.Children[i+1:]...)
			break
		}
	}
	kid.AsNode().Parent = nil
}

// Walk calls fun on n and then, in order, on all of its descendants
// (pre-order). If fun returns [Break], the children of that node are
// skipped.
func Walk(n Node, fun func(n Node) bool) {
	if !fun(n) {
		return
	}
	for _, k := range n.AsNode().Children {
		Walk(k, fun)
	}
}

// Count returns the number of descendants of n, not including n.
func Count(n Node) int {
	c := -1
	Walk(n, func(Node) bool {
		c++
		return Continue
	})
	return c
}

// IsAncestor returns true if anc is on the parent chain of n.
func IsAncestor(anc, n Node) bool {
	for p := n.AsNode().Parent; p != nil; p = p.AsNode().Parent {
		if p == anc {
			return true
		}
	}
	return false
}

// cloneChildren clones each child of src that supports it
// and adds it to dst.
func cloneChildren(dst, src Node) {
	for _, k := range src.AsNode().Children {
		cl, ok := k.(Cloner)
		if !ok {
			continue
		}
		AddChild(dst, cl.Clone())
	}
}
