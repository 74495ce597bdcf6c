// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package assets loads textures and 3D models for a scene. File reading
// and decoding happen on background goroutines; the results are applied
// to the scene on the [frame.Loop], between frames.
package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/undersea/frame"
	"cogentcore.org/undersea/scene"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Progress is notified once per finished load, successful or not.
// A *progressbar.ProgressBar satisfies it.
type Progress interface {
	Add(num int) error
}

// Loader loads assets from a filesystem on behalf of a scene.
type Loader struct {

	// FS is the filesystem that asset names are resolved in.
	FS fs.FS

	// Loop is where loaded results are applied.
	Loop *frame.Loop

	// Log receives load errors and completions.
	Log *slog.Logger

	// Progress, if set, is advanced as each load finishes.
	Progress Progress
}

// NewLoader returns a new loader for the given filesystem and loop.
// A nil logger uses [slog.Default].
func NewLoader(fsys fs.FS, lp *frame.Loop, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{FS: fsys, Loop: lp, Log: log}
}

func (ld *Loader) finished() {
	if ld.Progress != nil {
		errors.Log(ld.Progress.Add(1))
	}
}

// Texture starts loading the image for tx from its File. On success the
// image is set on the texture; on failure the error is logged and stored
// in [scene.Texture.Err], and the texture stays without an image.
// Either way this happens on the loop.
func (ld *Loader) Texture(tx *scene.Texture) *frame.Future[image.Image] {
	file := tx.File
	f := frame.Go(ld.Loop, func() (image.Image, error) {
		return ReadImage(ld.FS, file)
	})
	f.Then(func(img image.Image) {
		tx.SetImage(img)
		b := img.Bounds()
		ld.Log.Debug("texture loaded", "name", tx.Name, "file", file, "width", b.Dx(), "height", b.Dy())
		ld.finished()
	}, func(err error) {
		tx.Err = err
		ld.Log.Error("texture load failed", "name", tx.Name, "file", file, "error", err)
		ld.finished()
	})
	return f
}

// ReadImage reads and decodes the named image file. The content type is
// sniffed first so that non-image files fail with a clear error.
func ReadImage(fsys fs.FS, fname string) (image.Image, error) {
	data, err := fs.ReadFile(fsys, fname)
	if err != nil {
		return nil, err
	}
	if !filetype.IsImage(data) {
		kind, _ := filetype.Match(data)
		return nil, fmt.Errorf("assets.ReadImage: %v is not an image (found %q)", fname, kind.Extension)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("assets.ReadImage: %v: %w", fname, err)
	}
	return img, nil
}

// Model starts loading the named model file. On success a new group
// holding the imported objects, named for the file and not attached to
// any parent, resolves the returned future; its meshes are registered on
// sc. On failure the error is logged.
func (ld *Loader) Model(sc *scene.Scene, fname string) *frame.Future[*scene.Group] {
	res := frame.NewFuture[*scene.Group](ld.Loop)
	frame.Go(ld.Loop, func() (Decoder, error) {
		return DecodeFile(ld.FS, fname)
	}).Then(func(dec Decoder) {
		gp := scene.NewGroup(nil, strings.TrimSuffix(path.Base(fname), path.Ext(fname)))
		dec.SetGroup(sc, gp)
		ld.Log.Debug("model loaded", "file", fname, "solids", len(gp.Solids()))
		ld.finished()
		res.Resolve(gp, nil)
	}, func(err error) {
		ld.Log.Error("model load failed", "file", fname, "error", err)
		ld.finished()
		res.Resolve(nil, err)
	})
	return res
}
