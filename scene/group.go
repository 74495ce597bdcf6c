// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cogentcore.org/core/base/errors"
	"github.com/jinzhu/copier"
)

// Group collects individual elements in a scene but does not have a Mesh or Material of
// its own.  It does have a transform that applies to all nodes under it.
type Group struct {
	NodeBase
}

// NewGroup returns a new Group with the given name, added to parent
// if parent is non-nil.
func NewGroup(parent Node, name string) *Group {
	gp := &Group{}
	gp.Name = name
	gp.Defaults()
	if parent != nil {
		AddChild(parent, gp)
	}
	return gp
}

// Clone returns a deep copy of the group and all of its cloneable
// children, with no parent. Meshes and textures are shared.
func (gp *Group) Clone() Node {
	nw := &Group{}
	errors.Log(copier.CopyWithOption(nw, gp, copier.Option{DeepCopy: true}))
	nw.Parent = nil
	nw.Children = nil
	cloneChildren(nw, gp)
	return nw
}

// Solids returns all of the solids at or below this group.
func (gp *Group) Solids() []*Solid {
	var sds []*Solid
	Walk(gp, func(n Node) bool {
		if sd, ok := n.(*Solid); ok {
			sds = append(sds, sd)
		}
		return Continue
	})
	return sds
}

// test for impl
var _ Cloner = &Group{}
