// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"image/color"

	"cogentcore.org/core/base/errors"
	"github.com/jinzhu/copier"
)

// Solid represents an individual 3D solid element.
// It has its own unique spatial transforms and material properties,
// and points to a mesh structure defining the shape of the solid.
type Solid struct {
	NodeBase

	// Mesh is the shape of the solid. Meshes are stored on the [Scene]
	// and shared by any number of solids.
	Mesh Mesh `copier:"-"`

	// Material contains the material properties of the surface (color, shininess, texture, etc).
	Material Material
}

// NewSolid returns a new Solid with the given name and mesh, added to
// parent if parent is non-nil.
func NewSolid(parent Node, name string, ms Mesh) *Solid {
	sld := &Solid{}
	sld.Name = name
	sld.Mesh = ms
	sld.Defaults()
	if parent != nil {
		AddChild(parent, sld)
	}
	return sld
}

func (sld *Solid) IsSolid() bool {
	return true
}

// Defaults sets default initial settings for solid params.
func (sld *Solid) Defaults() {
	sld.Pose.Defaults()
	sld.Material.Defaults()
}

// SetColor sets the [Material.Color].
func (sld *Solid) SetColor(v color.RGBA) *Solid {
	sld.Material.Color = v
	return sld
}

// SetTexture sets the [Material.Texture].
func (sld *Solid) SetTexture(tx *Texture) *Solid {
	sld.Material.Texture = tx
	return sld
}

// Clone returns a copy of the solid with its own pose and material,
// sharing the mesh and texture.
func (sld *Solid) Clone() Node {
	nw := &Solid{}
	errors.Log(copier.CopyWithOption(nw, sld, copier.Option{DeepCopy: true}))
	nw.Parent = nil
	nw.Children = nil
	nw.Mesh = sld.Mesh
	nw.Material.Texture = sld.Material.Texture
	cloneChildren(nw, sld)
	return nw
}

// test for impl
var _ Cloner = &Solid{}
