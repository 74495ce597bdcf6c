// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"image/color"
)

// Material describes the material properties of a surface (colors, shininess, texture)
// i.e., phong lighting parameters.
// Main color is used for both ambient and diffuse color, and alpha component
// is used for opacity.  The Emissive color is only for glowing objects.
// The Specular color is always white (multiplied by light color).
type Material struct {

	// Color is the main color of surface, used for both ambient and diffuse color.
	// The alpha component determines transparency.
	Color color.RGBA

	// Emissive is the color that surface emits independent of any lighting.
	Emissive color.RGBA

	// Shiny is the specular shininess exponent.
	Shiny float32

	// Reflective is the specular reflectiveness factor.
	Reflective float32

	// CullBack indicates to cull the back-facing surfaces.
	CullBack bool

	// CullFront indicates to cull the front-facing surfaces.
	CullFront bool

	// Texture provides the surface color when set. Textures are shared
	// between materials and never copied.
	Texture *Texture `copier:"-"`
}

// Defaults sets default surface parameters
func (mt *Material) Defaults() {
	mt.Color = color.RGBA{255, 255, 255, 255}
	mt.Emissive = color.RGBA{}
	mt.Shiny = 30
	mt.Reflective = 0.5
	mt.CullBack = true
	mt.CullFront = false
}

// SetDoubleSided turns off face culling so both sides are drawn.
func (mt *Material) SetDoubleSided() {
	mt.CullBack = false
	mt.CullFront = false
}

// IsDoubleSided returns true if neither side is culled.
func (mt *Material) IsDoubleSided() bool {
	return !mt.CullBack && !mt.CullFront
}

// IsTransparent returns true if the color has alpha < 255
// or the texture has transparency.
func (mt *Material) IsTransparent() bool {
	if mt.Texture != nil && mt.Texture.Transparent {
		return true
	}
	return mt.Color.A < 255
}

// Opacity returns the color alpha in the 0-1 range.
func (mt *Material) Opacity() float32 {
	return float32(mt.Color.A) / 255
}
