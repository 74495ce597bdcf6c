// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/undersea/scene"
)

type lightKind int

const (
	ambientLight lightKind = iota
	hemisphereLight
	directionalLight
	pointLight
)

// lightInfo is a light reduced to world space and linear color,
// premultiplied by intensity.
type lightInfo struct {
	kind     lightKind
	color    math32.Vector3
	ground   math32.Vector3
	dir      math32.Vector3
	pos      math32.Vector3
	distance float32
	decay    float32
}

func (r *Renderer) setLights(sc *scene.Scene) {
	r.lights = r.lights[:0]
	for _, lt := range sc.Lights.Values() {
		lb := lt.AsLightBase()
		if lb.Off || lb.Invisible {
			continue
		}
		li := lightInfo{color: linearColor(lb.Color).MulScalar(lb.Intensity)}
		pos := lb.WorldPos()
		switch l := lt.(type) {
		case *scene.AmbientLight:
			li.kind = ambientLight
		case *scene.HemisphereLight:
			li.kind = hemisphereLight
			li.ground = linearColor(l.GroundColor).MulScalar(lb.Intensity)
			li.dir = pos.Normal()
		case *scene.DirLight:
			li.kind = directionalLight
			li.dir = pos.Normal()
		case *scene.PointLight:
			li.kind = pointLight
			li.pos = pos
			li.distance = l.Distance
			li.decay = l.Decay
		default:
			continue
		}
		r.lights = append(r.lights, li)
	}
}

// shade returns the diffuse light multiplier and the specular color at
// world position p with unit normal n.
func (r *Renderer) shade(p, n math32.Vector3, mat *scene.Material) (diff, spec math32.Vector3) {
	view := r.eye.Sub(p).Normal()
	direct := func(l, c math32.Vector3) {
		nl := n.Dot(l)
		if nl <= 0 {
			return
		}
		diff.SetAdd(c.MulScalar(nl))
		if mat.Reflective > 0 {
			nh := math32.Max(n.Dot(l.Add(view).Normal()), 0)
			spec.SetAdd(c.MulScalar(mat.Reflective * math32.Pow(nh, mat.Shiny)))
		}
	}
	for i := range r.lights {
		li := &r.lights[i]
		switch li.kind {
		case ambientLight:
			diff.SetAdd(li.color)
		case hemisphereLight:
			w := 0.5*n.Dot(li.dir) + 0.5
			diff.SetAdd(li.ground.MulScalar(1 - w).Add(li.color.MulScalar(w)))
		case directionalLight:
			direct(li.dir, li.color)
		case pointLight:
			lv := li.pos.Sub(p)
			d := lv.Length()
			if d == 0 {
				continue
			}
			att := 1 / math32.Max(math32.Pow(d, li.decay), 0.01)
			if li.distance > 0 {
				f := math32.Clamp(1-math32.Pow(d/li.distance, 4), 0, 1)
				att *= f * f
			}
			if att > 0 {
				direct(lv.DivScalar(d), li.color.MulScalar(att))
			}
		}
	}
	return diff, spec
}

// rvert is a vertex in clip space with its interpolated attributes.
type rvert struct {
	clip       math32.Vector4
	u, v       float32
	diff, spec math32.Vector3
}

func lerpVert(a, b rvert, t float32) rvert {
	return rvert{
		clip: math32.Vector4{
			X: a.clip.X + (b.clip.X-a.clip.X)*t,
			Y: a.clip.Y + (b.clip.Y-a.clip.Y)*t,
			Z: a.clip.Z + (b.clip.Z-a.clip.Z)*t,
			W: a.clip.W + (b.clip.W-a.clip.W)*t,
		},
		u:    a.u + (b.u-a.u)*t,
		v:    a.v + (b.v-a.v)*t,
		diff: a.diff.Add(b.diff.Sub(a.diff).MulScalar(t)),
		spec: a.spec.Add(b.spec.Sub(a.spec).MulScalar(t)),
	}
}

// clipNear clips the polygon to the near plane (z >= -w in clip space),
// returning the clipped polygon, which may be empty.
func (r *Renderer) clipNear(poly []rvert) []rvert {
	r.tmp = r.tmp[:0]
	n := len(poly)
	for i := range n {
		a, b := poly[i], poly[(i+1)%n]
		da, db := a.clip.Z+a.clip.W, b.clip.Z+b.clip.W
		if da >= 0 {
			r.tmp = append(r.tmp, a)
		}
		if (da >= 0) != (db >= 0) {
			r.tmp = append(r.tmp, lerpVert(a, b, da/(da-db)))
		}
	}
	r.poly, r.tmp = r.tmp, r.poly
	return r.poly
}

// screen is a vertex after the perspective divide, in frame pixels.
type screen struct {
	x, y, z, invW float32
}

// rasterize fills a triangle using barycentric coordinates, with a
// depth test and perspective-correct attribute interpolation.
func (r *Renderer) rasterize(sf *surface, a, b, c rvert) {
	w := float32(r.color.Rect.Dx())
	h := float32(r.color.Rect.Dy())
	vs := [3]rvert{a, b, c}
	var sv [3]screen
	for i, v := range vs {
		iw := 1 / v.clip.W
		sv[i] = screen{
			x:    (v.clip.X*iw + 1) * 0.5 * w,
			y:    (1 - v.clip.Y*iw) * 0.5 * h,
			z:    v.clip.Z * iw,
			invW: iw,
		}
	}
	area := edge(sv[0], sv[1], sv[2].x, sv[2].y)
	if area == 0 {
		return
	}
	minX := max(0, int(math32.Floor(min(sv[0].x, sv[1].x, sv[2].x))))
	maxX := min(int(w)-1, int(math32.Ceil(max(sv[0].x, sv[1].x, sv[2].x))))
	minY := max(0, int(math32.Floor(min(sv[0].y, sv[1].y, sv[2].y))))
	maxY := min(int(h)-1, int(math32.Ceil(max(sv[0].y, sv[1].y, sv[2].y))))

	stride := r.color.Stride
	pix := r.color.Pix
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float32(x)+0.5, float32(y)+0.5
			b0 := edge(sv[1], sv[2], px, py) / area
			b1 := edge(sv[2], sv[0], px, py) / area
			b2 := 1 - b0 - b1
			if b0 < 0 || b1 < 0 || b2 < 0 {
				continue
			}
			z := b0*sv[0].z + b1*sv[1].z + b2*sv[2].z
			di := y*int(w) + x
			if z < -1 || z >= r.depth[di] {
				continue
			}
			p0, p1, p2 := b0*sv[0].invW, b1*sv[1].invW, b2*sv[2].invW
			sum := p0 + p1 + p2
			if sum == 0 {
				continue
			}
			p0, p1, p2 = p0/sum, p1/sum, p2/sum

			albedo := sf.base
			alpha := sf.opacity
			if sf.tex != nil {
				u := p0*a.u + p1*b.u + p2*c.u
				v := p0*a.v + p1*b.v + p2*c.v
				tc, ta := sample(sf.tex, u, v, sf.srgb)
				albedo = albedo.Mul(tc)
				alpha *= ta
			}
			if alpha <= 0 {
				continue
			}
			diff := a.diff.MulScalar(p0).Add(b.diff.MulScalar(p1)).Add(c.diff.MulScalar(p2))
			spec := a.spec.MulScalar(p0).Add(b.spec.MulScalar(p1)).Add(c.spec.MulScalar(p2))
			lit := albedo.Mul(diff).Add(spec).Add(sf.emissive)

			r.depth[di] = z
			o := y*stride + 4*x
			cr, cg, cb := encode(lit.X), encode(lit.Y), encode(lit.Z)
			if sf.blend && alpha < 1 {
				pix[o] = blend(cr, pix[o], alpha)
				pix[o+1] = blend(cg, pix[o+1], alpha)
				pix[o+2] = blend(cb, pix[o+2], alpha)
			} else {
				pix[o], pix[o+1], pix[o+2] = cr, cg, cb
			}
			pix[o+3] = 255
		}
	}
}

// edge is the signed area function for the edge a-b and point p.
func edge(a, b screen, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

func blend(src, dst uint8, alpha float32) uint8 {
	return uint8(float32(src)*alpha + float32(dst)*(1-alpha) + 0.5)
}
