// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"
	"slices"

	"cogentcore.org/core/math32"
	"cogentcore.org/undersea/scene"
	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/draw"
)

// Stats counts the work done by the last [Renderer.Render].
type Stats struct {

	// Solids is the number of visible solids with a mesh.
	Solids int

	// Culled is the number of those solids skipped by frustum culling.
	Culled int

	// Triangles is the number of triangles rasterized (after culling faces).
	Triangles int
}

// Renderer draws a [scene.Scene] into a [Canvas] with a z-buffered
// software rasterizer: per-vertex lighting from ambient, hemisphere,
// directional and point lights, perspective-correct texturing, and
// back-to-front blending of transparent solids after all opaque ones.
type Renderer struct {

	// Canvas receives each finished frame.
	Canvas *Canvas

	// Stats are the counts for the last frame.
	Stats Stats

	width, height int
	ratio         float32

	color *image.RGBA
	depth []float32

	// cached background, resized to the frame
	bgSrc *image.RGBA
	bg    *image.RGBA

	eye    math32.Vector3
	lights []lightInfo
	poly   []rvert
	tmp    []rvert
}

// NewRenderer returns a renderer bound to the canvas.
func NewRenderer(cv *Canvas) *Renderer {
	return &Renderer{Canvas: cv, ratio: 1}
}

// SetSize sets the logical size of the output, which is also the
// canvas size; the frame is that size times the pixel ratio.
func (r *Renderer) SetSize(width, height int) {
	r.width, r.height = width, height
	r.resize()
}

// SetPixelRatio sets the number of frame pixels per logical pixel.
func (r *Renderer) SetPixelRatio(ratio float32) {
	if ratio <= 0 {
		ratio = 1
	}
	r.ratio = ratio
	r.resize()
}

// Size returns the logical output size.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// PixelRatio returns the pixel ratio.
func (r *Renderer) PixelRatio() float32 {
	return r.ratio
}

func (r *Renderer) resize() {
	rect := r.Canvas.resize(r.width, r.height, r.ratio)
	if r.color != nil && r.color.Rect == rect {
		return
	}
	r.color = image.NewRGBA(rect)
	r.depth = make([]float32, rect.Dx()*rect.Dy())
	r.bg = nil
}

type drawItem struct {
	solid *scene.Solid
	mesh  *scene.MeshBase
	dist  float32
}

// Render draws the scene from its camera and publishes the frame to
// the canvas. World matrices are updated first.
func (r *Renderer) Render(sc *scene.Scene) {
	if r.color == nil || r.color.Rect.Empty() {
		return
	}
	sc.UpdateWorld()
	r.Stats = Stats{}
	r.clear(sc)
	r.setLights(sc)
	cam := &sc.Camera
	r.eye = cam.Pose.Pos

	var opaque, transparent []drawItem
	scene.Walk(sc, func(n scene.Node) bool {
		nb := n.AsNode()
		if nb.Invisible {
			return scene.Break
		}
		sld, ok := n.(*scene.Solid)
		if !ok || sld.Mesh == nil {
			return scene.Continue
		}
		ms := scene.MeshData(sld.Mesh)
		if ms.NumTriangles() == 0 {
			return scene.Continue
		}
		r.Stats.Solids++
		center := ms.BBox.Center().MulMatrix4(&nb.Pose.WorldMatrix)
		if !nb.NoFrustumCull && !inFrustum(cam, center, boundRadius(ms, &nb.Pose.WorldMatrix)) {
			r.Stats.Culled++
			return scene.Continue
		}
		it := drawItem{solid: sld, mesh: ms, dist: center.Sub(r.eye).Length()}
		if sld.Material.IsTransparent() {
			transparent = append(transparent, it)
		} else {
			opaque = append(opaque, it)
		}
		return scene.Continue
	})
	for _, it := range opaque {
		r.drawSolid(cam, it)
	}
	slices.SortStableFunc(transparent, func(a, b drawItem) int {
		switch {
		case a.dist > b.dist:
			return -1
		case a.dist < b.dist:
			return 1
		}
		return 0
	})
	for _, it := range transparent {
		r.drawSolid(cam, it)
	}
	r.Canvas.publish(r.color)
}

// clear fills the frame with the background and resets the depth buffer.
func (r *Renderer) clear(sc *scene.Scene) {
	for i := range r.depth {
		r.depth[i] = 1
	}
	if bg := sc.Background; bg != nil && bg.IsLoaded() {
		src := bg.Image()
		if r.bg == nil || r.bgSrc != src {
			r.bgSrc = src
			r.bg = transform.Resize(src, r.color.Rect.Dx(), r.color.Rect.Dy(), transform.Linear)
		}
		draw.Draw(r.color, r.color.Rect, r.bg, image.Point{}, draw.Src)
		return
	}
	draw.Draw(r.color, r.color.Rect, image.NewUniform(sc.BackgroundColor), image.Point{}, draw.Src)
}

// boundRadius returns the radius of a sphere around the mesh bounds
// in world units.
func boundRadius(ms *scene.MeshBase, world *math32.Matrix4) float32 {
	sx := math32.Vec3(world[0], world[1], world[2]).Length()
	sy := math32.Vec3(world[4], world[5], world[6]).Length()
	sz := math32.Vec3(world[8], world[9], world[10]).Length()
	return ms.BBox.Size().Length() / 2 * math32.Max(sx, math32.Max(sy, sz))
}

// inFrustum returns true if a sphere in world coordinates is at least
// partly inside the camera view volume.
func inFrustum(cam *scene.Camera, center math32.Vector3, radius float32) bool {
	vc := center.MulMatrix4(&cam.ViewMatrix)
	z := -vc.Z
	if z+radius < cam.Near || z-radius > cam.Far {
		return false
	}
	tanY := math32.Tan(math32.DegToRad(cam.FOV / 2))
	tanX := tanY * cam.Aspect
	if (math32.Abs(vc.X)-z*tanX)/math32.Sqrt(1+tanX*tanX) > radius {
		return false
	}
	if (math32.Abs(vc.Y)-z*tanY)/math32.Sqrt(1+tanY*tanY) > radius {
		return false
	}
	return true
}

// normalMatrix returns the inverse of the world matrix, whose transpose
// transforms normals.
func normalMatrix(world *math32.Matrix4) *math32.Matrix4 {
	inv, err := world.Inverse()
	if err != nil {
		return world
	}
	return inv
}

// transformNormal applies the transpose of the inverse matrix to n.
func transformNormal(inv *math32.Matrix4, n math32.Vector3) math32.Vector3 {
	return math32.Vec3(
		inv[0]*n.X+inv[1]*n.Y+inv[2]*n.Z,
		inv[4]*n.X+inv[5]*n.Y+inv[6]*n.Z,
		inv[8]*n.X+inv[9]*n.Y+inv[10]*n.Z,
	).Normal()
}

// surface holds the per-solid values used for each pixel.
type surface struct {
	base     math32.Vector3
	emissive math32.Vector3
	opacity  float32
	tex      *image.RGBA
	srgb     bool
	blend    bool
}

func (r *Renderer) drawSolid(cam *scene.Camera, it drawItem) {
	sld, ms := it.solid, it.mesh
	world := &sld.Pose.WorldMatrix
	inv := normalMatrix(world)
	mat := &sld.Material
	sf := surface{
		base:     linearColor(mat.Color),
		emissive: linearColor(mat.Emissive),
		opacity:  mat.Opacity(),
		blend:    mat.IsTransparent(),
	}
	if tx := mat.Texture; tx != nil && tx.IsLoaded() {
		sf.tex = tx.Image()
		sf.srgb = tx.SRGB
	}

	nv := ms.NumVertex()
	pos := make([]math32.Vector3, nv)
	nrm := make([]math32.Vector3, nv)
	clip := make([]math32.Vector4, nv)
	for i := range nv {
		pos[i] = ms.Position(i).MulMatrix4(world)
		nrm[i] = transformNormal(inv, ms.Norm(i))
		clip[i] = math32.Vector4FromVector3(pos[i], 1).MulMatrix4(&cam.ViewProjection)
	}
	for t := 0; t+2 < len(ms.Index); t += 3 {
		ix := [3]uint32{ms.Index[t], ms.Index[t+1], ms.Index[t+2]}
		pa, pb, pc := pos[ix[0]], pos[ix[1]], pos[ix[2]]
		fn := pb.Sub(pa).Cross(pc.Sub(pa))
		front := fn.Dot(r.eye.Sub(pa)) > 0
		if (front && mat.CullFront) || (!front && mat.CullBack) {
			continue
		}
		r.poly = r.poly[:0]
		for _, vi := range ix {
			n := nrm[vi]
			if !front {
				n = n.Negate()
			}
			diff, spec := r.shade(pos[vi], n, mat)
			u, v := ms.UV(int(vi))
			r.poly = append(r.poly, rvert{clip: clip[vi], u: u, v: v, diff: diff, spec: spec})
		}
		r.poly = r.clipNear(r.poly)
		if len(r.poly) < 3 {
			continue
		}
		r.Stats.Triangles++
		for k := 2; k < len(r.poly); k++ {
			r.rasterize(&sf, r.poly[0], r.poly[k-1], r.poly[k])
		}
	}
}
