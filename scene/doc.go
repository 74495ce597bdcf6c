// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package scene provides a small 3D scenegraph: a [Scene] root owning a
tree of [Group], [Solid] and light nodes, each with its own [Pose]
relative to its parent.

Meshes and textures are stored by name on the Scene and shared by any
number of Solids. Lights are regular nodes in the tree and are also
registered by name on the Scene so that they can be found and tweaked.

Rotations are stored as Euler angles in radians (X, then Y, then Z),
which allows individual axes to be assigned directly from animation code.
*/
package scene
