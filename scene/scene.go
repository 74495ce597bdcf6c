// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"image/color"

	"cogentcore.org/core/base/ordmap"
	"cogentcore.org/core/math32"
)

// Scene is the overall scenegraph containing nodes as children.
// It owns the meshes, textures and lights used by those nodes,
// and the camera that views them.
type Scene struct {
	NodeBase

	// Camera is the camera viewing the scene.
	Camera Camera

	// Background is drawn behind everything, stretched to the canvas,
	// when set and loaded.
	Background *Texture

	// BackgroundColor is used when there is no loaded Background.
	BackgroundColor color.RGBA

	// Meshes are all the meshes used by solids, by name.
	Meshes ordmap.Map[string, Mesh] `display:"-"`

	// Textures are all the textures used by materials, by name.
	Textures ordmap.Map[string, *Texture] `display:"-"`

	// Lights are all the lights in the scene tree, by name.
	Lights ordmap.Map[string, Light] `display:"-"`
}

// NewScene returns a new empty Scene with a default camera.
func NewScene(name string) *Scene {
	sc := &Scene{}
	sc.Name = name
	sc.Defaults()
	sc.Camera.Defaults()
	sc.BackgroundColor = color.RGBA{0, 0, 0, 255}
	return sc
}

// Add adds the node as a direct child of the scene.
func (sc *Scene) Add(n Node) {
	AddChild(sc, n)
}

// Contains returns true if n is in the scene tree.
func (sc *Scene) Contains(n Node) bool {
	return IsAncestor(sc, n)
}

// NumNodes returns the total number of nodes below the scene,
// at all depths.
func (sc *Scene) NumNodes() int {
	return Count(sc)
}

// UpdateWorld updates the local and world matrices of all nodes.
func (sc *Scene) UpdateWorld() {
	updateWorld(sc, nil)
	sc.Camera.UpdateMatrix()
}

func updateWorld(n Node, parWorld *math32.Matrix4) {
	nb := n.AsNode()
	nb.Pose.UpdateMatrix()
	nb.Pose.UpdateWorldMatrix(parWorld)
	for _, k := range nb.Children {
		updateWorld(k, &nb.Pose.WorldMatrix)
	}
}

// SolidsByName returns all solids in the scene with the given name.
func (sc *Scene) SolidsByName(name string) []*Solid {
	var sds []*Solid
	Walk(sc, func(n Node) bool {
		if sd, ok := n.(*Solid); ok && sd.Name == name {
			sds = append(sds, sd)
		}
		return Continue
	})
	return sds
}
