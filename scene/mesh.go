// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// Mesh parametrizes the shape used for rendering a [Solid].
// Only indexed triangle meshes are supported. The vertex data is
// generated on demand by [Mesh.Make], via [MeshData].
type Mesh interface {

	// AsMeshBase returns the [MeshBase] for this Mesh,
	// which provides the core functionality of a mesh.
	AsMeshBase() *MeshBase

	// Make generates the vertex data from the shape parameters.
	Make()
}

// MeshBase provides the core implementation of the [Mesh] interface.
type MeshBase struct {

	// Name is the name of the mesh. Meshes are stored on the Scene by name.
	Name string

	// Vertex holds the X,Y,Z positions of each vertex.
	Vertex []float32 `display:"-"`

	// Normal holds the X,Y,Z normal of each vertex.
	Normal []float32 `display:"-"`

	// TexCoord holds the U,V texture coordinates of each vertex.
	TexCoord []float32 `display:"-"`

	// Index holds three vertex indexes per triangle.
	Index []uint32 `display:"-"`

	// BBox is the bounding box of all vertexes.
	BBox math32.Box3

	made bool
}

func (ms *MeshBase) AsMeshBase() *MeshBase {
	return ms
}

// Reset clears all of the vertex data.
func (ms *MeshBase) Reset() {
	ms.Vertex = ms.Vertex[:0]
	ms.Normal = ms.Normal[:0]
	ms.TexCoord = ms.TexCoord[:0]
	ms.Index = ms.Index[:0]
	ms.BBox.SetEmpty()
}

// NumVertex returns the number of vertexes.
func (ms *MeshBase) NumVertex() int {
	return len(ms.Vertex) / 3
}

// NumTriangles returns the number of triangles.
func (ms *MeshBase) NumTriangles() int {
	return len(ms.Index) / 3
}

// Position returns the position of vertex i.
func (ms *MeshBase) Position(i int) math32.Vector3 {
	return math32.Vec3(ms.Vertex[3*i], ms.Vertex[3*i+1], ms.Vertex[3*i+2])
}

// Norm returns the normal of vertex i.
func (ms *MeshBase) Norm(i int) math32.Vector3 {
	return math32.Vec3(ms.Normal[3*i], ms.Normal[3*i+1], ms.Normal[3*i+2])
}

// UV returns the texture coordinates of vertex i.
func (ms *MeshBase) UV(i int) (u, v float32) {
	if 2*i+1 >= len(ms.TexCoord) {
		return 0, 0
	}
	return ms.TexCoord[2*i], ms.TexCoord[2*i+1]
}

// AddVertex appends a vertex and returns its index.
func (ms *MeshBase) AddVertex(pt, norm math32.Vector3, u, v float32) uint32 {
	idx := uint32(ms.NumVertex())
	ms.Vertex = append(ms.Vertex, pt.X, pt.Y, pt.Z)
	ms.Normal = append(ms.Normal, norm.X, norm.Y, norm.Z)
	ms.TexCoord = append(ms.TexCoord, u, v)
	ms.BBox.ExpandByPoint(pt)
	return idx
}

// AddTriangle appends a triangle of three vertex indexes.
func (ms *MeshBase) AddTriangle(a, b, c uint32) {
	ms.Index = append(ms.Index, a, b, c)
}

// ComputeNormals sets each vertex normal to the normalized sum of the
// normals of the triangles that use it. Triangles with out of range
// indexes are skipped.
func (ms *MeshBase) ComputeNormals() {
	nv := ms.NumVertex()
	ms.Normal = make([]float32, 3*nv)
	acc := make([]math32.Vector3, nv)
	for t := 0; t+2 < len(ms.Index); t += 3 {
		ai, bi, ci := int(ms.Index[t]), int(ms.Index[t+1]), int(ms.Index[t+2])
		if ai >= nv || bi >= nv || ci >= nv {
			continue
		}
		a, b, c := ms.Position(ai), ms.Position(bi), ms.Position(ci)
		fn := b.Sub(a).Cross(c.Sub(a))
		acc[ai].SetAdd(fn)
		acc[bi].SetAdd(fn)
		acc[ci].SetAdd(fn)
	}
	for i, n := range acc {
		n = n.Normal()
		ms.Normal[3*i], ms.Normal[3*i+1], ms.Normal[3*i+2] = n.X, n.Y, n.Z
	}
}

// MeshData returns the [MeshBase] of ms, calling [Mesh.Make]
// the first time so that the vertex data is available.
func MeshData(ms Mesh) *MeshBase {
	mb := ms.AsMeshBase()
	if !mb.made {
		mb.Reset()
		ms.Make()
		mb.made = true
	}
	return mb
}

////////////////////////////////////////////////////////////////////////
// Scene management

// SetMesh sets / updates the given mesh, updating any existing
// mesh of the same name.
func (sc *Scene) SetMesh(ms Mesh) {
	sc.Meshes.Add(ms.AsMeshBase().Name, ms)
}

// MeshByName looks for mesh by name, returning error if not found.
func (sc *Scene) MeshByName(name string) (Mesh, error) {
	ms, ok := sc.Meshes.ValueByKeyTry(name)
	if ok {
		return ms, nil
	}
	return nil, fmt.Errorf("Mesh named: %v not found in Scene: %v", name, sc.Name)
}

///////////////////////////////////////////////////////////////
// GenMesh

// GenMesh is a generic, arbitrary Mesh, storing its values directly,
// as produced by model importers.
type GenMesh struct {
	MeshBase
}

// NewGenMesh returns a new GenMesh with the given name,
// added to the scene if sc is non-nil.
func NewGenMesh(sc *Scene, name string) *GenMesh {
	ms := &GenMesh{}
	ms.Name = name
	ms.made = true
	ms.BBox.SetEmpty()
	if sc != nil {
		sc.SetMesh(ms)
	}
	return ms
}

// Make is a no-op: the data is set directly.
func (ms *GenMesh) Make() {}
