// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"

	"cogentcore.org/core/math32"
)

// sample returns the linear color and alpha of the texel at u, v, with
// nearest filtering and repeat wrapping. V runs down the image, so 0 is
// the top row. Texels of srgb images are decoded to linear.
func sample(img *image.RGBA, u, v float32, srgb bool) (math32.Vector3, float32) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == 0 || h == 0 {
		return math32.Vec3(1, 1, 1), 1
	}
	u -= math32.Floor(u)
	v -= math32.Floor(v)
	x := min(int(u*float32(w)), w-1)
	y := min(int(v*float32(h)), h-1)
	o := y*img.Stride + 4*x
	p := img.Pix[o : o+4 : o+4]
	a := float32(p[3]) / 255
	if srgb {
		return math32.Vec3(srgbToLinear[p[0]], srgbToLinear[p[1]], srgbToLinear[p[2]]), a
	}
	return math32.Vec3(float32(p[0])/255, float32(p[1])/255, float32(p[2])/255), a
}
