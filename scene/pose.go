// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cogentcore.org/core/math32"
)

// Pose contains the full specification of position, orientation and scale,
// always relative to the parent element.
type Pose struct {

	// Pos is the position of the center of the element, relative to the parent.
	Pos math32.Vector3

	// Rot is the rotation as Euler angles in radians, applied in X, Y, Z order.
	Rot math32.Vector3

	// Scale is the scale relative to the parent.
	Scale math32.Vector3

	// Matrix is the local matrix computed from Pos, Rot and Scale.
	Matrix math32.Matrix4 `display:"-"`

	// WorldMatrix contains all absolute position, rotation and scale information,
	// relative to the scene root.
	WorldMatrix math32.Matrix4 `display:"-"`
}

// Defaults sets defaults only if current values are nil
func (ps *Pose) Defaults() {
	if ps.Scale == (math32.Vector3{}) {
		ps.Scale.Set(1, 1, 1)
	}
}

// Quat returns the rotation as a quaternion.
func (ps *Pose) Quat() math32.Quat {
	return math32.NewQuatEuler(ps.Rot)
}

// UpdateMatrix updates the local transform matrix from Pos, Rot and Scale.
func (ps *Pose) UpdateMatrix() {
	ps.Matrix.SetTransform(ps.Pos, ps.Quat(), ps.Scale)
}

// UpdateWorldMatrix updates the world matrix from the local Matrix
// and the parent's world matrix. A nil parent is the identity.
func (ps *Pose) UpdateWorldMatrix(parWorld *math32.Matrix4) {
	if parWorld == nil {
		ps.WorldMatrix = ps.Matrix
		return
	}
	ps.WorldMatrix.MulMatrices(parWorld, &ps.Matrix)
}

// MoveOnAxisAbs moves (translates) the given distance along the given
// axis, in absolute X,Y,Z coordinates.
func (ps *Pose) MoveOnAxisAbs(x, y, z, dist float32) {
	ps.Pos.SetAdd(math32.Vec3(x, y, z).Normal().MulScalar(dist))
}

// LookAt sets the rotation so the element points at target
// (along its -Z axis) with the given up direction.
func (ps *Pose) LookAt(target, upDir math32.Vector3) {
	var q math32.Quat
	q.SetFromRotationMatrix(math32.NewLookAt(ps.Pos, target, upDir))
	ps.Rot = q.ToEuler()
}
