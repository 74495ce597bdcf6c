// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reef

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/undersea/frame"
	"cogentcore.org/undersea/scene"
)

// BubbleTop is the height above which bubbles wrap back to 0.
const BubbleTop = 15

// LoadModel starts loading the model file. When it has loaded,
// [World.SpawnModel] adds count copies of it at the given scale, on the
// loop. Load errors are logged by the loader.
func (w *World) LoadModel(fname string, scale float32, count int) *frame.Future[*scene.Group] {
	return w.Loader.Model(w.Scene, fname).Then(func(tmpl *scene.Group) {
		w.SpawnModel(tmpl, scale, count)
	}, nil)
}

// SpawnModel collects the solids of the template into a new group, with
// frustum culling off and both sides drawn, and adds that group and
// count-1 clones of it to the scene and to Clones. The first copy is
// placed near the center and the clones are scattered further out with
// a random heading. If the template has no solids, a warning is logged,
// nothing is added and [ErrNoMesh] is returned.
func (w *World) SpawnModel(tmpl *scene.Group, scale float32, count int) (*scene.Group, error) {
	sds := tmpl.Solids()
	if len(sds) == 0 {
		w.Log.Warn("no mesh found in model", "model", tmpl.Name)
		return nil, ErrNoMesh
	}
	gp := scene.NewGroup(nil, tmpl.Name)
	for _, sd := range sds {
		cl := sd.Clone().(*scene.Solid)
		cl.NoFrustumCull = true
		cl.Material.SetDoubleSided()
		scene.AddChild(gp, cl)
	}
	gp.SetScale(scale, scale, scale)
	gp.SetPos(w.uniform(-10, 10), w.uniform(0, 5), w.uniform(-10, 10))
	w.Scene.Add(gp)
	w.Clones = append(w.Clones, gp)

	for range count - 1 {
		cl := gp.Clone().(*scene.Group)
		cl.SetPos(w.uniform(-30, 30), w.uniform(0, 10), w.uniform(-30, 30))
		cl.Pose.Rot.Y = w.uniform(0, 2*math32.Pi)
		w.Scene.Add(cl)
		w.Clones = append(w.Clones, cl)
	}
	w.Log.Info("model spawned", "model", tmpl.Name, "solids", len(sds), "copies", max(count, 1))
	return gp, nil
}

// Update advances the animation to time t, in seconds.
func (w *World) Update(t float32) {
	for i, sd := range w.Rotating {
		rot := t * (1 + 0.1*float32(i))
		sd.Pose.Rot.X = rot
		sd.Pose.Rot.Y = rot
	}
	for i, gp := range w.Clones {
		ph := 0.6*t + float32(i)
		gp.Pose.Pos.X += math32.Sin(ph) * 0.02
		gp.Pose.Pos.Z += math32.Cos(ph) * 0.02
	}
	for _, sd := range w.Bubbles {
		sd.Pose.Pos.Y += 0.02
		if sd.Pose.Pos.Y > BubbleTop {
			sd.Pose.Pos.Y = 0
		}
	}
	for i, gp := range w.Seaweed {
		gp.Pose.Rot.Z = math32.Sin(t+float32(i)) * 0.4
	}
	for i, sd := range w.Rotating {
		ph := 0.5*t + float32(i)
		sd.Pose.Pos.X += math32.Sin(ph) * 0.01
		sd.Pose.Pos.Z += math32.Cos(ph) * 0.01
		sd.Pose.Rot.Y += 0.005
	}
}

// Animate is the frame callback: it updates the scene for the frame
// time in milliseconds, advances the camera controls, renders, and
// requests the next frame.
func (w *World) Animate(ms float64) {
	w.Update(float32(ms * 0.001))
	w.Controls.Update()
	w.Renderer.Render(w.Scene)
	w.Loop.RequestFrame(w.Animate)
}

// Start requests the first animation frame.
func (w *World) Start() {
	w.Loop.RequestFrame(w.Animate)
}
