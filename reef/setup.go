// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reef

import (
	"fmt"
	"image/color"
	"log/slog"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/lab/base/randx"
	"cogentcore.org/undersea/assets"
	"cogentcore.org/undersea/frame"
	"cogentcore.org/undersea/orbit"
	"cogentcore.org/undersea/render"
	"cogentcore.org/undersea/scene"
	"cogentcore.org/undersea/tweak"
)

// TextureSpec names a texture and the file it is loaded from.
type TextureSpec struct {
	Name string
	File string

	// SRGB marks images meant for direct display.
	SRGB bool
}

// Textures are the textures registered by [Setup].
var Textures = []TextureSpec{
	{Name: "pufferfish", File: "pufferfish1.jpg"},
	{Name: "coral", File: "coral.jpg"},
	{Name: "jellyfish", File: "jellyfish.jpg", SRGB: true},
	{Name: "flower", File: "flower.jpg", SRGB: true},
	{Name: "underwater", File: "underwater.jpg", SRGB: true},
	{Name: "seaweed", File: "seaweed.jpg", SRGB: true},
}

// Spawn counts.
const (
	NumCubes     = 7
	NumSpheres   = 7
	NumCylinders = 5
	NumPebbles   = 20
	NumBubbles   = 50
	NumSeaweed   = 15
)

// Setup builds the scene for the viewport, rendering to cv, with all
// random placement drawn from rng. Textures and the model load in the
// background and are applied on the loop; nothing is rendered until the
// first frame runs (see [World.Start]).
func Setup(cv *render.Canvas, vp Viewport, rng randx.Rand, opts Options) *World {
	w := &World{Rand: rng, Log: opts.Log, Loop: opts.Loop}
	if w.Log == nil {
		w.Log = slog.Default()
	}
	if w.Loop == nil {
		w.Loop = frame.NewLoop(60)
	}

	w.Renderer = render.NewRenderer(cv)
	w.Renderer.SetSize(vp.Width, vp.Height)
	w.Renderer.SetPixelRatio(vp.PixelRatio)

	sc := scene.NewScene("undersea")
	w.Scene = sc
	w.Camera = &sc.Camera
	w.Camera.SetPerspective(75, vp.Aspect(), 0.5, 500)
	w.Camera.Pose.Pos.Set(0, 2, 10)
	w.Camera.LookAtOrigin()
	w.Controls = orbit.New(w.Camera)
	w.Controls.EnableDamping = true
	w.Controls.DampingFactor = 0.05

	w.addLights()
	w.addPanel()

	if opts.Assets != nil {
		w.Loader = assets.NewLoader(opts.Assets, w.Loop, w.Log)
		w.Loader.Progress = opts.Progress
	}
	w.addTextures()

	w.addShapes()
	w.addBubbles()
	w.addSeaweed()

	if w.Loader != nil && opts.Model != "" {
		w.LoadModel(opts.Model, opts.ModelScale, opts.ModelCount)
	}

	w.Landmark = scene.NewSolid(sc, "landmark", errors.Log1(sc.MeshByName("cube")))
	w.Landmark.SetTexture(w.texture("flower"))
	w.Landmark.SetPos(0, 4, 0)
	return w
}

func (w *World) addLights() {
	sc := w.Scene
	lt := &w.Lights
	lt.Ambient = scene.NewAmbientLight(sc, "ambient", scene.Hex(0x404040), 2)

	lt.Directional = scene.NewDirLight(sc, "directional", scene.Hex(0xffffff), 1)
	lt.Directional.SetPos(-5, 5, 5)

	lt.Point = scene.NewPointLight(sc, "point", scene.Hex(0xff0000), 1, 50)
	lt.Point.SetPos(5, 5, 5)

	lt.Hemisphere = scene.NewHemisphereLight(sc, "hemisphere", scene.Hex(0xffffff), scene.Hex(0x444444), 1)
	lt.Hemisphere.SetPos(0, 20, 0)
}

func (w *World) addPanel() {
	pn := tweak.NewPanel("Lights")
	w.Panel = pn
	lt := &w.Lights
	addColor := func(label string, target tweak.ColorProperties, prop string) {
		_, err := pn.AddColor(label, target, prop)
		errors.Log(err)
	}
	addIntensity := func(label string, l scene.Light) {
		pn.AddSlider(label, &l.AsLightBase().Intensity, 0, 5, 0.01)
	}
	addColor("Ambient Color", lt.Ambient, "color")
	addIntensity("Ambient Intensity", lt.Ambient)
	addColor("Directional Color", lt.Directional, "color")
	addIntensity("Directional Intensity", lt.Directional)
	addColor("Point Color", lt.Point, "color")
	addIntensity("Point Intensity", lt.Point)
	addColor("Hemisphere Sky", lt.Hemisphere, "color")
	addColor("Hemisphere Ground", lt.Hemisphere, "groundColor")
	addIntensity("Hemisphere Intensity", lt.Hemisphere)
}

// addTextures registers all textures and starts loading them.
func (w *World) addTextures() {
	for _, ts := range Textures {
		tx := scene.NewTexture(w.Scene, ts.Name, ts.File)
		tx.SRGB = ts.SRGB
		if w.Loader != nil {
			w.Loader.Texture(tx)
		}
	}
	w.Scene.Background = w.texture("underwater")
}

func (w *World) texture(name string) *scene.Texture {
	return errors.Log1(w.Scene.TextureByName(name))
}

// addShapes adds the rotating cubes and spheres, and the resting
// cylinders and pebbles.
func (w *World) addShapes() {
	sc := w.Scene
	cube := scene.NewBox(sc, "cube", 1, 1, 1)
	for i := range NumCubes {
		sld := scene.NewSolid(sc, fmt.Sprintf("cube_%d", i), cube).SetTexture(w.texture("jellyfish"))
		sld.SetPos(w.uniform(-10, 10), w.uniform(0, 5), w.uniform(-10, 10))
		w.Rotating = append(w.Rotating, sld)
	}

	sphere := scene.NewSphere(sc, "sphere", 0.75, 32)
	for i := range NumSpheres {
		sld := scene.NewSolid(sc, fmt.Sprintf("sphere_%d", i), sphere).SetTexture(w.texture("pufferfish"))
		sld.SetPos(w.uniform(-10, 10), w.uniform(0, 5), w.uniform(-10, 10))
		w.Rotating = append(w.Rotating, sld)
	}

	cyl := scene.NewCylinder(sc, "cylinder", 2, 0.5, 32)
	for i := range NumCylinders {
		sld := scene.NewSolid(sc, fmt.Sprintf("cylinder_%d", i), cyl).SetTexture(w.texture("coral"))
		sld.SetPos(w.uniform(-10, 10), 0.2, w.uniform(-10, 10))
	}

	pebble := scene.NewSphere(sc, "pebble", 0.3, 16)
	for i := range NumPebbles {
		sld := scene.NewSolid(sc, fmt.Sprintf("pebble_%d", i), pebble).SetColor(scene.Hex(0xaaaaaa))
		sld.Pose.Scale.Y = 0.5
		sld.SetPos(w.uniform(-10, 10), 0.2, w.uniform(-10, 10))
	}
}

func (w *World) addBubbles() {
	bubble := scene.NewSphere(w.Scene, "bubble", 0.2, 16)
	for i := range NumBubbles {
		sld := scene.NewSolid(w.Scene, fmt.Sprintf("bubble_%d", i), bubble)
		sld.SetColor(color.RGBA{0x99, 0xcc, 0xff, 128})
		sld.SetPos(w.uniform(-10, 10), w.uniform(2, 10), w.uniform(-10, 10))
		w.Bubbles = append(w.Bubbles, sld)
	}
}

// addSeaweed adds stalks of 6 to 8 stacked cones, narrowing upward,
// each slightly tilted.
func (w *World) addSeaweed() {
	sc := w.Scene
	tex := w.texture("seaweed")
	for i := range NumSeaweed {
		gp := scene.NewGroup(nil, fmt.Sprintf("seaweed_%d", i))
		segs := 6 + w.Rand.Intn(3)
		y := float32(0)
		for j := range segs {
			name := fmt.Sprintf("seaweed_%d_%d", i, j)
			height := w.uniform(1, 1.5)
			cone := scene.NewCone(sc, name, height, SeaweedRadius(j), 8)
			sld := scene.NewSolid(gp, name, cone).SetTexture(tex)
			sld.Pose.Pos.Y = y
			sld.Pose.Rot.Z = w.uniform(-0.1, 0.1)
			sld.Pose.Rot.X = w.uniform(-0.05, 0.05)
			y += height
		}
		gp.SetPos(w.uniform(-10, 10), 0, w.uniform(-10, 10))
		sc.Add(gp)
		w.Seaweed = append(w.Seaweed, gp)
	}
}

// SeaweedRadius returns the radius of seaweed segment j, counting
// from the bottom.
func SeaweedRadius(j int) float32 {
	return max(0.25-0.06*float32(j), MinSeaweedRadius)
}
