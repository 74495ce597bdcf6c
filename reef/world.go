// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reef builds and animates the underwater scene: lights and
// their tweak panel, textured decorations, seaweed, bubbles and cloned
// models, all placed with an injected random generator.
package reef

import (
	"errors"
	"io/fs"
	"log/slog"

	"cogentcore.org/lab/base/randx"
	"cogentcore.org/undersea/assets"
	"cogentcore.org/undersea/frame"
	"cogentcore.org/undersea/orbit"
	"cogentcore.org/undersea/render"
	"cogentcore.org/undersea/scene"
	"cogentcore.org/undersea/tweak"
)

// MinSeaweedRadius is the smallest radius of a seaweed segment;
// the upper segments of tall stalks would otherwise have a zero or
// negative radius.
const MinSeaweedRadius = 0.01

// ErrNoMesh is returned by [World.SpawnModel] for a model with no solids.
var ErrNoMesh = errors.New("reef: no mesh found in model")

// Viewport is the size of the output in logical pixels, and the
// number of device pixels per logical pixel.
type Viewport struct {
	Width, Height int
	PixelRatio    float32
}

// Aspect returns the width / height ratio.
func (vp Viewport) Aspect() float32 {
	if vp.Height == 0 {
		return 1
	}
	return float32(vp.Width) / float32(vp.Height)
}

// Options are the inputs to [Setup] beyond the canvas, viewport and
// random generator.
type Options struct {

	// Assets holds the texture images and the model. If nil, textures
	// are registered but never loaded, and no model is loaded.
	Assets fs.FS

	// Model is the model file within Assets; none is loaded if empty.
	Model string

	// ModelScale is the uniform scale of each model copy.
	ModelScale float32

	// ModelCount is the total number of model copies.
	ModelCount int

	// Loop runs the animation and the load completions.
	// A 60 fps loop is made if nil.
	Loop *frame.Loop

	// Log receives load errors and warnings; slog.Default if nil.
	Log *slog.Logger

	// Progress, if set, is advanced as each asset finishes loading.
	Progress assets.Progress
}

// DefaultOptions returns the options for the standard scene,
// loading from the given assets.
func DefaultOptions(fsys fs.FS) Options {
	return Options{Assets: fsys, Model: "ducky.glb", ModelScale: 0.1, ModelCount: 8}
}

// NumLoads returns the number of asset loads [Setup] starts.
func (o *Options) NumLoads() int {
	if o.Assets == nil {
		return 0
	}
	n := len(Textures)
	if o.Model != "" {
		n++
	}
	return n
}

// Lights are the four scene lights.
type Lights struct {
	Ambient     *scene.AmbientLight
	Directional *scene.DirLight
	Point       *scene.PointLight
	Hemisphere  *scene.HemisphereLight
}

// World is the underwater scene and everything that drives it.
// All of its state belongs to the [frame.Loop]: it is only touched by
// frame callbacks and posted tasks.
type World struct {

	// Scene is the scene graph.
	Scene *scene.Scene

	// Camera is the scene camera.
	Camera *scene.Camera

	// Controls move the camera.
	Controls *orbit.Controls

	// Renderer draws the scene to the canvas.
	Renderer *render.Renderer

	// Panel exposes the light colors and intensities.
	Panel *tweak.Panel

	// Lights are the scene lights.
	Lights Lights

	// Rotating are the spinning cubes followed by the spheres.
	Rotating []*scene.Solid

	// Bubbles rise and wrap around.
	Bubbles []*scene.Solid

	// Seaweed are the swaying seaweed stalks.
	Seaweed []*scene.Group

	// Clones are the model copies, added when the model has loaded.
	Clones []*scene.Group

	// Landmark is the fixed cube above the origin.
	Landmark *scene.Solid

	// Rand places everything.
	Rand randx.Rand

	// Log receives errors and warnings.
	Log *slog.Logger

	// Loop runs the animation.
	Loop *frame.Loop

	// Loader loads textures and models; nil without assets.
	Loader *assets.Loader
}

// Tracked returns all of the nodes that are animated by [World.Update].
func (w *World) Tracked() []scene.Node {
	var ns []scene.Node
	for _, s := range w.Rotating {
		ns = append(ns, s)
	}
	for _, s := range w.Bubbles {
		ns = append(ns, s)
	}
	for _, g := range w.Seaweed {
		ns = append(ns, g)
	}
	for _, g := range w.Clones {
		ns = append(ns, g)
	}
	return ns
}

// uniform returns a random value in [lo, hi).
func (w *World) uniform(lo, hi float32) float32 {
	return lo + (hi-lo)*w.Rand.Float32()
}
