// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package orbit provides camera controls that orbit, zoom and pan around
// a target point, with optional inertial damping. Input events only
// accumulate deltas; [Controls.Update] applies them once per frame.
package orbit

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/undersea/scene"
)

// eps is the smallest change that counts as camera movement.
const eps = 1e-6

// Controls orbit a [scene.Camera] around its Target, with the Y axis up.
type Controls struct {

	// Camera is the camera being controlled.
	Camera *scene.Camera

	// Enabled turns input handling on and off. Update still runs.
	Enabled bool

	// EnableDamping makes motion continue and decay after input stops.
	EnableDamping bool

	// DampingFactor is the fraction of the pending motion applied
	// each frame when damping is enabled.
	DampingFactor float32 `min:"0" max:"1"`

	// RotateSpeed scales pointer rotation.
	RotateSpeed float32

	// ZoomSpeed scales zoom steps.
	ZoomSpeed float32

	// PanSpeed scales pointer panning.
	PanSpeed float32

	// MinDistance and MaxDistance bound the distance to the target.
	MinDistance, MaxDistance float32

	// MinPolar and MaxPolar bound the angle from the up axis, in radians.
	MinPolar, MaxPolar float32

	// pending motion, in spherical coordinates and world units
	theta, phi float32
	scale      float32
	pan        math32.Vector3
}

// New returns controls for the camera with unit speeds
// and no damping.
func New(cam *scene.Camera) *Controls {
	return &Controls{
		Camera:        cam,
		Enabled:       true,
		DampingFactor: 0.05,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		PanSpeed:      1,
		MinDistance:   0,
		MaxDistance:   math32.Inf(1),
		MinPolar:      0,
		MaxPolar:      math32.Pi,
		scale:         1,
	}
}

// Rotate adds an orbit of dTheta radians around the up axis and dPhi
// radians toward it (negative) or away from it (positive).
func (oc *Controls) Rotate(dTheta, dPhi float32) {
	if !oc.Enabled {
		return
	}
	oc.theta += dTheta
	oc.phi += dPhi
}

// Drag rotates for a pointer drag of dx, dy pixels on a canvas of the
// given height: dragging the full height turns a full circle.
func (oc *Controls) Drag(dx, dy float32, height int) {
	if height <= 0 {
		return
	}
	h := float32(height)
	oc.Rotate(-2*math32.Pi*dx/h*oc.RotateSpeed, -2*math32.Pi*dy/h*oc.RotateSpeed)
}

// Zoom moves toward the target for positive steps and away for
// negative ones, by a factor of 0.95 per step.
func (oc *Controls) Zoom(steps float32) {
	if !oc.Enabled {
		return
	}
	oc.scale *= math32.Pow(0.95, steps*oc.ZoomSpeed)
}

// Pan moves the camera and target by dx, dy pixels on a canvas of the
// given height, in the camera plane, so that the point at the target
// follows the pointer.
func (oc *Controls) Pan(dx, dy float32, height int) {
	if !oc.Enabled || height <= 0 {
		return
	}
	cm := oc.Camera
	dist := cm.ViewVector().Length() * math32.Tan(math32.DegToRad(cm.FOV/2))
	h := float32(height)
	fwd := cm.Target.Sub(cm.Pose.Pos).Normal()
	right := fwd.Cross(cm.UpDir).Normal()
	left := right.MulScalar(-2 * dx * dist / h * oc.PanSpeed)
	up := right.Cross(fwd).MulScalar(2 * dy * dist / h * oc.PanSpeed)
	oc.pan.SetAdd(left.Add(up))
}

// Pending returns true if there is motion left to apply.
func (oc *Controls) Pending() bool {
	return math32.Abs(oc.theta) > eps || math32.Abs(oc.phi) > eps ||
		oc.pan.Length() > eps || math32.Abs(oc.scale-1) > eps
}

// Update applies the pending motion to the camera, and must be called
// once per frame. With damping, only DampingFactor of the pending
// rotation and pan is applied, and the rest decays geometrically.
// It returns true if the camera moved.
func (oc *Controls) Update() bool {
	if !oc.Pending() {
		oc.scale = 1
		return false
	}
	cm := oc.Camera
	offset := cm.Pose.Pos.Sub(cm.Target)
	radius := offset.Length()
	theta := math32.Atan2(offset.X, offset.Z)
	phi := float32(0)
	if radius > 0 {
		phi = math32.Acos(math32.Clamp(offset.Y/radius, -1, 1))
	}

	f := float32(1)
	if oc.EnableDamping {
		f = oc.DampingFactor
	}
	theta += oc.theta * f
	phi += oc.phi * f
	phi = math32.Clamp(phi, oc.MinPolar, oc.MaxPolar)
	phi = math32.Clamp(phi, eps, math32.Pi-eps)
	radius = math32.Clamp(radius*oc.scale, oc.MinDistance, oc.MaxDistance)
	target := cm.Target.Add(oc.pan.MulScalar(f))

	sr := math32.Sin(phi) * radius
	noff := math32.Vec3(sr*math32.Sin(theta), math32.Cos(phi)*radius, sr*math32.Cos(theta))
	npos := target.Add(noff)
	moved := npos.Sub(cm.Pose.Pos).Length() > eps || target.Sub(cm.Target).Length() > eps

	cm.Pose.Pos = npos
	cm.LookAt(target, math32.Vec3(0, 1, 0))

	if oc.EnableDamping {
		oc.theta *= 1 - f
		oc.phi *= 1 - f
		oc.pan = oc.pan.MulScalar(1 - f)
	} else {
		oc.theta, oc.phi = 0, 0
		oc.pan = math32.Vector3{}
	}
	oc.scale = 1
	return moved
}
