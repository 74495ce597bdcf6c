// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image/color"

	"cogentcore.org/core/math32"
)

// Lighting is computed on linear values. Display colors, color
// textures and the canvas are sRGB encoded.

var (
	// srgbToLinear maps an 8-bit sRGB value to linear 0-1.
	srgbToLinear [256]float32

	// linearToSRGB maps linear 0-1, quantized to linearSteps, to 8-bit sRGB.
	linearToSRGB [linearSteps + 1]uint8
)

const linearSteps = 4095

func init() {
	for i := range srgbToLinear {
		srgbToLinear[i] = SRGBToLinear(float32(i) / 255)
	}
	for i := range linearToSRGB {
		linearToSRGB[i] = uint8(LinearToSRGB(float32(i)/linearSteps)*255 + 0.5)
	}
}

// SRGBToLinear converts an sRGB encoded value in 0-1 to linear.
func SRGBToLinear(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math32.Pow((v+0.055)/1.055, 2.4)
}

// LinearToSRGB converts a linear value in 0-1 to sRGB encoding.
func LinearToSRGB(v float32) float32 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math32.Pow(v, 1/2.4) - 0.055
}

// encode converts a linear value to clamped 8-bit sRGB.
func encode(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return linearToSRGB[int(v*linearSteps+0.5)]
}

// linearColor returns the linear RGB of an sRGB display color.
func linearColor(c color.RGBA) math32.Vector3 {
	return math32.Vec3(srgbToLinear[c.R], srgbToLinear[c.G], srgbToLinear[c.B])
}
