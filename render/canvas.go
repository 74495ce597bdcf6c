// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"sync"
)

// Canvas is the drawing surface that a [Renderer] presents frames to.
// It has a logical size and a pixel ratio; the backing image is the
// logical size times the ratio. Frames are published whole, so readers
// on other goroutines always see a complete frame.
type Canvas struct {
	mu     sync.RWMutex
	width  int
	height int
	ratio  float32
	img    *image.RGBA
	frame  uint64
}

// NewCanvas returns a new empty canvas with a pixel ratio of 1.
func NewCanvas() *Canvas {
	return &Canvas{ratio: 1, img: image.NewRGBA(image.Rectangle{})}
}

// Size returns the logical size of the canvas.
func (cv *Canvas) Size() (width, height int) {
	cv.mu.RLock()
	defer cv.mu.RUnlock()
	return cv.width, cv.height
}

// PixelRatio returns the number of backing pixels per logical pixel.
func (cv *Canvas) PixelRatio() float32 {
	cv.mu.RLock()
	defer cv.mu.RUnlock()
	return cv.ratio
}

// Bounds returns the bounds of the backing image.
func (cv *Canvas) Bounds() image.Rectangle {
	cv.mu.RLock()
	defer cv.mu.RUnlock()
	return cv.img.Bounds()
}

// Frame returns the number of frames published so far.
func (cv *Canvas) Frame() uint64 {
	cv.mu.RLock()
	defer cv.mu.RUnlock()
	return cv.frame
}

// Snapshot returns a copy of the latest published frame.
func (cv *Canvas) Snapshot() *image.RGBA {
	cv.mu.RLock()
	defer cv.mu.RUnlock()
	cp := image.NewRGBA(cv.img.Rect)
	copy(cp.Pix, cv.img.Pix)
	return cp
}

// EncodeJPEG writes the latest frame as a JPEG image.
func (cv *Canvas) EncodeJPEG(w io.Writer, quality int) error {
	return jpeg.Encode(w, cv.Snapshot(), &jpeg.Options{Quality: quality})
}

// EncodePNG writes the latest frame as a PNG image.
func (cv *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, cv.Snapshot())
}

// resize sets the logical size and ratio and reallocates the backing
// image if its size changed.
func (cv *Canvas) resize(width, height int, ratio float32) image.Rectangle {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	cv.width, cv.height, cv.ratio = width, height, ratio
	r := image.Rect(0, 0, scaled(width, ratio), scaled(height, ratio))
	if r != cv.img.Rect {
		cv.img = image.NewRGBA(r)
	}
	return r
}

// publish copies a finished frame into the canvas.
func (cv *Canvas) publish(img *image.RGBA) {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	if img.Rect != cv.img.Rect {
		cv.img = image.NewRGBA(img.Rect)
	}
	copy(cv.img.Pix, img.Pix)
	cv.frame++
}

func scaled(v int, ratio float32) int {
	return int(float32(v)*ratio + 0.5)
}
