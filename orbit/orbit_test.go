// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package orbit

import (
	"testing"

	"cogentcore.org/core/math32"
	"cogentcore.org/undersea/scene"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-4

func newCamera() *scene.Camera {
	cm := &scene.Camera{}
	cm.Defaults()
	cm.Pose.Pos.Set(0, 2, 10)
	cm.SetPerspective(75, 1.5, 0.5, 500)
	cm.LookAtOrigin()
	return cm
}

func TestUpdateWithoutInput(t *testing.T) {
	cm := newCamera()
	oc := New(cm)
	oc.EnableDamping = true
	assert.False(t, oc.Pending())
	assert.False(t, oc.Update())
	assert.InDelta(t, 0, cm.Pose.Pos.X, tol)
	assert.InDelta(t, 2, cm.Pose.Pos.Y, tol)
	assert.InDelta(t, 10, cm.Pose.Pos.Z, tol)
}

func TestRotateNoDamping(t *testing.T) {
	cm := newCamera()
	oc := New(cm)
	dist := cm.ViewVector().Length()
	oc.Rotate(math32.Pi/2, 0)
	assert.True(t, oc.Update())
	assert.InDelta(t, dist, cm.ViewVector().Length(), tol)
	assert.InDelta(t, 10, cm.Pose.Pos.X, tol)
	assert.InDelta(t, 0, cm.Pose.Pos.Z, tol)
	assert.False(t, oc.Pending())
	assert.False(t, oc.Update())
}

func TestDampingDecays(t *testing.T) {
	cm := newCamera()
	oc := New(cm)
	oc.EnableDamping = true
	dist := cm.ViewVector().Length()
	start := math32.Atan2(cm.Pose.Pos.X, cm.Pose.Pos.Z)

	const total = 0.5
	oc.Rotate(total, 0)
	df := oc.DampingFactor
	rest := float32(total)
	for i := 1; i <= 40; i++ {
		oc.Update()
		rest *= 1 - df
		assert.InDelta(t, rest, oc.theta, tol)
		assert.InDelta(t, dist, cm.ViewVector().Length(), tol)
	}
	turned := math32.Atan2(cm.Pose.Pos.X, cm.Pose.Pos.Z) - start
	assert.InDelta(t, total-rest, turned, tol)
	assert.True(t, oc.Pending())
}

func TestPolarClamp(t *testing.T) {
	cm := newCamera()
	oc := New(cm)
	oc.Rotate(0, -10)
	oc.Update()
	// stays just short of the pole
	assert.Greater(t, cm.Pose.Pos.Y, float32(0))
	assert.InDelta(t, 0, math32.Sqrt(cm.Pose.Pos.X*cm.Pose.Pos.X+cm.Pose.Pos.Z*cm.Pose.Pos.Z), 1e-3)
}

func TestZoomAndLimits(t *testing.T) {
	cm := newCamera()
	oc := New(cm)
	dist := cm.ViewVector().Length()
	oc.Zoom(1)
	oc.Update()
	assert.InDelta(t, dist*0.95, cm.ViewVector().Length(), tol)

	oc.MaxDistance = 12
	oc.Zoom(-100)
	oc.Update()
	assert.InDelta(t, 12, cm.ViewVector().Length(), tol)

	oc.Enabled = false
	oc.Zoom(5)
	assert.False(t, oc.Update())
}

func TestPanMovesTarget(t *testing.T) {
	cm := newCamera()
	oc := New(cm)
	before := cm.ViewVector()
	oc.Pan(100, 0, 600)
	oc.Update()
	// dragging right moves the scene right, so the camera goes left
	assert.Less(t, cm.Target.X, float32(0))
	assert.InDelta(t, before.X, cm.ViewVector().X, tol)
	assert.InDelta(t, before.Y, cm.ViewVector().Y, tol)
	assert.InDelta(t, before.Z, cm.ViewVector().Z, tol)
}

func TestPanVertical(t *testing.T) {
	cm := newCamera()
	oc := New(cm)
	oc.Pan(0, 100, 600)
	oc.Update()
	// dragging down moves the camera up
	assert.Greater(t, cm.Target.Y, float32(0))
	assert.InDelta(t, 0, cm.Target.X, tol)
}
