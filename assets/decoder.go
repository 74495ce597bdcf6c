// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"bufio"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"cogentcore.org/undersea/scene"
	"github.com/h2non/filetype"
)

// Decoder parses a 3D object file and imports it into a Group.
// Decoding only reads the file into the decoder; nothing touches a
// Scene until [Decoder.SetGroup], so Decode can run off the loop.
type Decoder interface {

	// New returns a new instance of the decoder used for a specific decoding.
	New() Decoder

	// Desc returns the description of this decoder.
	Desc() string

	// SetFile sets the filesystem and file name being decoded, so that
	// other files (buffers, materials) can be found relative to it.
	SetFile(fsys fs.FS, fname string)

	// Decode reads the given data into the decoder.
	Decode(r *bufio.Reader) error

	// SetGroup adds the decoded objects to gp, registering their
	// meshes on sc.
	SetGroup(sc *scene.Scene, gp *scene.Group)
}

// Decoders is the master list of decoders, indexed by the primary extension.
var Decoders = map[string]Decoder{}

// glbType is the binary glTF container type, for content sniffing.
var glbType = filetype.NewType("glb", "model/gltf-binary")

func init() {
	filetype.AddMatcher(glbType, func(buf []byte) bool {
		return len(buf) >= 4 && string(buf[:4]) == "glTF"
	})
}

// DecodeFile decodes the given file from fsys using a decoder based on the
// file extension, returning the decoder instance with the decoded state.
// Binary formats are checked against their content signature first.
func DecodeFile(fsys fs.FS, fname string) (Decoder, error) {
	ext := strings.ToLower(path.Ext(fname))
	dt, has := Decoders[ext]
	if !has {
		return nil, fmt.Errorf("assets.DecodeFile: file extension: %v not found in Decoders list for file %v", ext, fname)
	}
	f, err := fsys.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	br := bufio.NewReader(f)
	if ext == ".glb" {
		head, _ := br.Peek(262)
		if kind, _ := filetype.Match(head); kind != glbType {
			return nil, fmt.Errorf("assets.DecodeFile: %v is not a binary glTF file (found %q)", fname, kind.Extension)
		}
	}
	dec := dt.New()
	dec.SetFile(fsys, fname)
	if err := dec.Decode(br); err != nil {
		return nil, fmt.Errorf("assets.DecodeFile: %v: %w", fname, err)
	}
	return dec, nil
}
