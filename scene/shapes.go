// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cogentcore.org/core/math32"
)

// Box is a rectangular-shaped solid (cuboid), centered at the origin.
type Box struct {
	MeshBase

	// Size is the size of each dimension.
	Size math32.Vector3
}

// NewBox adds a Box mesh with the given size to the scene.
func NewBox(sc *Scene, name string, width, height, depth float32) *Box {
	bx := &Box{}
	bx.Name = name
	bx.Size.Set(width, height, depth)
	sc.SetMesh(bx)
	return bx
}

func (bx *Box) Make() {
	hs := bx.Size.MulScalar(0.5)
	// each face: normal, and the u and v axes in the plane of the face
	faces := []struct{ n, u, v math32.Vector3 }{
		{math32.Vec3(1, 0, 0), math32.Vec3(0, 0, -1), math32.Vec3(0, 1, 0)},
		{math32.Vec3(-1, 0, 0), math32.Vec3(0, 0, 1), math32.Vec3(0, 1, 0)},
		{math32.Vec3(0, 1, 0), math32.Vec3(1, 0, 0), math32.Vec3(0, 0, -1)},
		{math32.Vec3(0, -1, 0), math32.Vec3(1, 0, 0), math32.Vec3(0, 0, 1)},
		{math32.Vec3(0, 0, 1), math32.Vec3(1, 0, 0), math32.Vec3(0, 1, 0)},
		{math32.Vec3(0, 0, -1), math32.Vec3(-1, 0, 0), math32.Vec3(0, 1, 0)},
	}
	for _, f := range faces {
		c := f.n.Mul(hs)
		du := f.u.Mul(hs)
		dv := f.v.Mul(hs)
		v0 := bx.AddVertex(c.Sub(du).Sub(dv), f.n, 0, 1)
		v1 := bx.AddVertex(c.Add(du).Sub(dv), f.n, 1, 1)
		v2 := bx.AddVertex(c.Add(du).Add(dv), f.n, 1, 0)
		v3 := bx.AddVertex(c.Sub(du).Add(dv), f.n, 0, 0)
		bx.AddTriangle(v0, v1, v2)
		bx.AddTriangle(v0, v2, v3)
	}
}

// Sphere is a sphere mesh, centered at the origin.
type Sphere struct {
	MeshBase

	// Radius is the radius of the sphere.
	Radius float32

	// WidthSegs is the number of segments around the width of the sphere.
	WidthSegs int `min:"3"`

	// HeightSegs is the number of height segments.
	HeightSegs int `min:"2"`
}

// NewSphere adds a Sphere mesh with the given radius and number of
// segments (resolution) in each direction to the scene.
func NewSphere(sc *Scene, name string, radius float32, segs int) *Sphere {
	sp := &Sphere{}
	sp.Name = name
	sp.Radius = radius
	sp.WidthSegs = segs
	sp.HeightSegs = segs
	sc.SetMesh(sp)
	return sp
}

func (sp *Sphere) Make() {
	ws := max(sp.WidthSegs, 3)
	hs := max(sp.HeightSegs, 2)
	rows := make([][]uint32, hs+1)
	for y := 0; y <= hs; y++ {
		v := float32(y) / float32(hs)
		elev := v * math32.Pi
		for x := 0; x <= ws; x++ {
			u := float32(x) / float32(ws)
			ang := u * 2 * math32.Pi
			norm := math32.Vec3(-math32.Cos(ang)*math32.Sin(elev), math32.Cos(elev), math32.Sin(ang)*math32.Sin(elev))
			rows[y] = append(rows[y], sp.AddVertex(norm.MulScalar(sp.Radius), norm, u, v))
		}
	}
	for y := 0; y < hs; y++ {
		for x := 0; x < ws; x++ {
			v1 := rows[y][x+1]
			v2 := rows[y][x]
			v3 := rows[y+1][x]
			v4 := rows[y+1][x+1]
			if y != 0 {
				sp.AddTriangle(v1, v2, v4)
			}
			if y != hs-1 {
				sp.AddTriangle(v2, v3, v4)
			}
		}
	}
}

// Cylinder is a generalized cylinder shape, including a cone
// or truncated cone by having different size circles at either end.
// Height is up along the Y axis, centered at the origin.
type Cylinder struct {
	MeshBase

	// Height is the height of the cylinder.
	Height float32

	// TopRad is the radius of the top; 0 for a cone.
	TopRad float32

	// BotRad is the radius of the bottom.
	BotRad float32

	// RadialSegs is the number of segments around the circumference.
	RadialSegs int `min:"3"`

	// Top renders the top disc.
	Top bool

	// Bottom renders the bottom disc.
	Bottom bool
}

// NewCylinder adds a capped Cylinder mesh with the given radius, height
// and number of radial segments to the scene.
func NewCylinder(sc *Scene, name string, height, radius float32, radialSegs int) *Cylinder {
	cy := &Cylinder{}
	cy.Name = name
	cy.Height = height
	cy.TopRad = radius
	cy.BotRad = radius
	cy.RadialSegs = radialSegs
	cy.Top = true
	cy.Bottom = true
	sc.SetMesh(cy)
	return cy
}

// NewCone adds a Cone mesh with the given base radius, height and
// number of radial segments to the scene, with a bottom cap.
func NewCone(sc *Scene, name string, height, radius float32, radialSegs int) *Cylinder {
	cy := NewCylinder(sc, name, height, radius, radialSegs)
	cy.TopRad = 0
	cy.Top = false
	return cy
}

func (cy *Cylinder) Make() {
	segs := max(cy.RadialSegs, 3)
	hh := cy.Height / 2
	slope := float32(0)
	if cy.Height > 0 {
		slope = (cy.BotRad - cy.TopRad) / cy.Height
	}
	for x := 0; x < segs; x++ {
		u0 := float32(x) / float32(segs)
		u1 := float32(x+1) / float32(segs)
		a0 := u0 * 2 * math32.Pi
		a1 := u1 * 2 * math32.Pi
		n0 := math32.Vec3(-math32.Cos(a0), slope, math32.Sin(a0)).Normal()
		n1 := math32.Vec3(-math32.Cos(a1), slope, math32.Sin(a1)).Normal()
		t0 := cy.AddVertex(math32.Vec3(-cy.TopRad*math32.Cos(a0), hh, cy.TopRad*math32.Sin(a0)), n0, u0, 0)
		t1 := cy.AddVertex(math32.Vec3(-cy.TopRad*math32.Cos(a1), hh, cy.TopRad*math32.Sin(a1)), n1, u1, 0)
		b0 := cy.AddVertex(math32.Vec3(-cy.BotRad*math32.Cos(a0), -hh, cy.BotRad*math32.Sin(a0)), n0, u0, 1)
		b1 := cy.AddVertex(math32.Vec3(-cy.BotRad*math32.Cos(a1), -hh, cy.BotRad*math32.Sin(a1)), n1, u1, 1)
		if cy.TopRad > 0 {
			cy.AddTriangle(t0, b0, t1)
		}
		if cy.BotRad > 0 {
			cy.AddTriangle(b0, b1, t1)
		}
	}
	if cy.Top && cy.TopRad > 0 {
		cy.addCap(hh, cy.TopRad, segs, math32.Vec3(0, 1, 0))
	}
	if cy.Bottom && cy.BotRad > 0 {
		cy.addCap(-hh, cy.BotRad, segs, math32.Vec3(0, -1, 0))
	}
}

// addCap adds a disc at height y as a triangle fan.
func (cy *Cylinder) addCap(y, radius float32, segs int, norm math32.Vector3) {
	ctr := cy.AddVertex(math32.Vec3(0, y, 0), norm, 0.5, 0.5)
	var ring []uint32
	for x := 0; x <= segs; x++ {
		a := float32(x) / float32(segs) * 2 * math32.Pi
		cs, sn := math32.Cos(a), math32.Sin(a)
		ring = append(ring, cy.AddVertex(math32.Vec3(-radius*cs, y, radius*sn), norm, 0.5-0.5*cs, 0.5+0.5*sn))
	}
	for x := 0; x < segs; x++ {
		if norm.Y > 0 {
			cy.AddTriangle(ctr, ring[x], ring[x+1])
		} else {
			cy.AddTriangle(ctr, ring[x+1], ring[x])
		}
	}
}
