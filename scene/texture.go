// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Texture is a named image that provides surface color for materials.
// The image is typically decoded asynchronously after the texture has
// been registered on the [Scene], so it may be nil for some time (or
// forever, if loading failed); renderers must tolerate that.
type Texture struct {

	// Name is the name of the texture; textures are registered on the Scene by name.
	Name string

	// File is the path the texture is loaded from, if any.
	File string

	// SRGB marks the stored image values as display-ready (gamma encoded),
	// so they are converted to linear before lighting. Textures without it
	// are used as linear data.
	SRGB bool

	// Transparent is whether the texture has transparency.
	Transparent bool

	// Err is the error from loading the image, if any.
	Err error

	// rgba is the decoded image.
	rgba *image.RGBA
}

// NewTexture adds a new texture with the given name and source file
// to the scene. The image is not loaded.
func NewTexture(sc *Scene, name, file string) *Texture {
	tx := &Texture{Name: name, File: file}
	sc.SetTexture(tx)
	return tx
}

// Image returns the decoded image, or nil if not (yet) available.
func (tx *Texture) Image() *image.RGBA {
	return tx.rgba
}

// IsLoaded returns true if the texture has an image.
func (tx *Texture) IsLoaded() bool {
	return tx.rgba != nil
}

// SetImage sets the image for the texture, converting it to RGBA,
// and updates Transparent from the image alpha.
func (tx *Texture) SetImage(img image.Image) {
	rgba, ok := img.(*image.RGBA)
	if !ok {
		b := img.Bounds()
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	tx.rgba = rgba
	tx.Err = nil
	tx.Transparent = false
	for i := 3; i < len(rgba.Pix); i += 4 {
		if rgba.Pix[i] < 255 {
			tx.Transparent = true
			break
		}
	}
}

func (tx *Texture) String() string {
	return fmt.Sprintf("Texture %q (%s) srgb: %v loaded: %v", tx.Name, tx.File, tx.SRGB, tx.IsLoaded())
}

// SetTexture adds the given texture to the scene, replacing any
// existing texture of the same name.
func (sc *Scene) SetTexture(tx *Texture) {
	sc.Textures.Add(tx.Name, tx)
}

// TextureByName looks for texture by name, returning error if not found.
func (sc *Scene) TextureByName(name string) (*Texture, error) {
	tx, ok := sc.Textures.ValueByKeyTry(name)
	if ok {
		return tx, nil
	}
	return nil, fmt.Errorf("Texture named: %v not found in Scene: %v", name, sc.Name)
}
