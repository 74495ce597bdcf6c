// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cogentcore.org/core/math32"
)

// Camera defines the properties of a perspective camera.
type Camera struct {

	// Pose is the overall orientation and direction of the camera, relative to
	// pointing at negative Z axis with up (positive Y) direction.
	Pose Pose

	// Target is where the camera is pointing. It is reset by LookAt and
	// moved by panning.
	Target math32.Vector3

	// UpDir is the up direction for the camera.
	UpDir math32.Vector3

	// FOV is the vertical field of view in degrees.
	FOV float32

	// Aspect is the aspect ratio (width/height).
	Aspect float32

	// Near is the near clipping plane distance.
	Near float32

	// Far is the far clipping plane distance.
	Far float32

	// ViewMatrix is the view matrix (inverse of the Pose matrix).
	ViewMatrix math32.Matrix4 `display:"-"`

	// ProjectionMatrix is the perspective projection matrix.
	ProjectionMatrix math32.Matrix4 `display:"-"`

	// ViewProjection is ProjectionMatrix * ViewMatrix.
	ViewProjection math32.Matrix4 `display:"-"`
}

// Defaults sets a 30 degree camera at 0,0,10 looking at the origin.
func (cm *Camera) Defaults() {
	cm.FOV = 30
	cm.Aspect = 1.5
	cm.Near = .01
	cm.Far = 1000
	cm.Pose.Scale.Set(1, 1, 1)
	cm.Pose.Pos.Set(0, 0, 10)
	cm.LookAtOrigin()
}

// SetPerspective sets the projection parameters, with fov in degrees.
func (cm *Camera) SetPerspective(fov, aspect, near, far float32) {
	cm.FOV = fov
	cm.Aspect = aspect
	cm.Near = near
	cm.Far = far
	cm.UpdateMatrix()
}

// LookAt points the camera at given target location, using given up direction,
// and sets the Target, UpDir fields for future camera movements.
func (cm *Camera) LookAt(target, upDir math32.Vector3) {
	cm.Target = target
	if upDir == (math32.Vector3{}) {
		upDir = math32.Vec3(0, 1, 0)
	}
	cm.UpDir = upDir
	cm.UpdateMatrix()
}

// LookAtOrigin points the camera at origin with Y axis pointing Up (i.e., standard)
func (cm *Camera) LookAtOrigin() {
	cm.LookAt(math32.Vector3{}, math32.Vec3(0, 1, 0))
}

// LookAtTarget points the camera at current target using current up direction
func (cm *Camera) LookAtTarget() {
	cm.LookAt(cm.Target, cm.UpDir)
}

// ViewVector is the vector between the camera position and target
func (cm *Camera) ViewVector() math32.Vector3 {
	return cm.Pose.Pos.Sub(cm.Target)
}

// UpdateMatrix updates the view and projection matrices.
func (cm *Camera) UpdateMatrix() {
	var lookq math32.Quat
	lookq.SetFromRotationMatrix(math32.NewLookAt(cm.Pose.Pos, cm.Target, cm.UpDir))
	var cview math32.Matrix4
	cview.SetTransform(cm.Pose.Pos, lookq, math32.Vec3(1, 1, 1))
	if view, err := cview.Inverse(); err == nil {
		cm.ViewMatrix = *view
	}
	cm.ProjectionMatrix.SetPerspective(cm.FOV, cm.Aspect, cm.Near, cm.Far)
	cm.ViewProjection.MulMatrices(&cm.ProjectionMatrix, &cm.ViewMatrix)
}
