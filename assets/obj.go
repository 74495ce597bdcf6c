// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"cogentcore.org/core/math32"
	"cogentcore.org/undersea/scene"
)

func init() {
	Decoders[".obj"] = &OBJ{}
}

// OBJ decodes the Wavefront OBJ file format (*.obj). Only geometry is
// supported: positions, normals, texture coordinates and polygon faces,
// grouped by "o" and "g" lines. Materials (.mtl) are ignored.
type OBJ struct {

	// File is the .obj file name (without path).
	File string

	// Objects are the decoded objects, in file order.
	Objects []OBJObject

	// Warnings are the unsupported lines that were skipped.
	Warnings []string

	verts []math32.Vector3
	norms []math32.Vector3
	uvs   []math32.Vector2
	cur   *OBJObject
	line  int
}

// OBJObject is one decoded object: a list of polygon faces.
type OBJObject struct {
	Name  string
	Faces []OBJFace
}

// OBJFace is one polygon face, with zero-based indexes into the decoder
// arrays; -1 means absent.
type OBJFace struct {
	Vertices []int
	UVs      []int
	Normals  []int
}

func (dec *OBJ) New() Decoder {
	return &OBJ{}
}

func (dec *OBJ) Desc() string {
	return ".obj = Wavefront OBJ format, geometry only. Materials are not supported."
}

func (dec *OBJ) SetFile(fsys fs.FS, fname string) {
	dec.File = path.Base(fname)
}

func (dec *OBJ) Decode(r *bufio.Reader) error {
	dec.line = 0
	for {
		ln, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		dec.line++
		if perr := dec.parseLine(strings.TrimSpace(ln)); perr != nil {
			return fmt.Errorf("line %d: %w", dec.line, perr)
		}
		if err == io.EOF {
			return nil
		}
	}
}

func (dec *OBJ) parseLine(ln string) error {
	fields := strings.Fields(ln)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	args := fields[1:]
	switch fields[0] {
	case "o", "g":
		name := dec.File
		if len(args) > 0 {
			name = args[0]
		}
		dec.Objects = append(dec.Objects, OBJObject{Name: name})
		dec.cur = &dec.Objects[len(dec.Objects)-1]
	case "v":
		v, err := parseFloats(args, 3)
		if err != nil {
			return err
		}
		dec.verts = append(dec.verts, math32.Vec3(v[0], v[1], v[2]))
	case "vn":
		v, err := parseFloats(args, 3)
		if err != nil {
			return err
		}
		dec.norms = append(dec.norms, math32.Vec3(v[0], v[1], v[2]))
	case "vt":
		v, err := parseFloats(args, 2)
		if err != nil {
			return err
		}
		dec.uvs = append(dec.uvs, math32.Vec2(v[0], v[1]))
	case "f":
		return dec.parseFace(args)
	default:
		dec.Warnings = append(dec.Warnings, fmt.Sprintf("line %d: %q not supported", dec.line, fields[0]))
	}
	return nil
}

func parseFloats(args []string, n int) ([]float32, error) {
	if len(args) < n {
		return nil, fmt.Errorf("need %d values, have %d", n, len(args))
	}
	vals := make([]float32, n)
	for i := range vals {
		v, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return nil, err
		}
		vals[i] = float32(v)
	}
	return vals, nil
}

// parseFace parses a face line:
// f v1[/vt1[/vn1]] v2[/vt2[/vn2]] v3[/vt3[/vn3]] ...
func (dec *OBJ) parseFace(args []string) error {
	if len(args) < 3 {
		return errors.New("face with less than 3 vertices")
	}
	if dec.cur == nil {
		dec.Objects = append(dec.Objects, OBJObject{Name: dec.File})
		dec.cur = &dec.Objects[len(dec.Objects)-1]
	}
	var fc OBJFace
	for _, a := range args {
		parts := strings.Split(a, "/")
		vi, err := dec.index(parts[0], len(dec.verts))
		if err != nil {
			return err
		}
		if vi < 0 {
			return fmt.Errorf("face vertex %q has no position", a)
		}
		ti, ni := -1, -1
		if len(parts) > 1 && parts[1] != "" {
			if ti, err = dec.index(parts[1], len(dec.uvs)); err != nil {
				return err
			}
		}
		if len(parts) > 2 && parts[2] != "" {
			if ni, err = dec.index(parts[2], len(dec.norms)); err != nil {
				return err
			}
		}
		fc.Vertices = append(fc.Vertices, vi)
		fc.UVs = append(fc.UVs, ti)
		fc.Normals = append(fc.Normals, ni)
	}
	dec.cur.Faces = append(dec.cur.Faces, fc)
	return nil
}

// index converts a one-based (or negative, relative) OBJ index into
// a zero-based index, checking it against n.
func (dec *OBJ) index(s string, n int) (int, error) {
	if s == "" {
		return -1, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return -1, err
	}
	if i < 0 {
		i = n + i
	} else {
		i--
	}
	if i < 0 || i >= n {
		return -1, fmt.Errorf("index %s out of range (%d)", s, n)
	}
	return i, nil
}

// SetGroup adds a group with one solid per object that has faces.
// Polygons are triangulated as fans.
func (dec *OBJ) SetGroup(sc *scene.Scene, gp *scene.Group) {
	for oi := range dec.Objects {
		ob := &dec.Objects[oi]
		if len(ob.Faces) == 0 {
			continue
		}
		name := fmt.Sprintf("%s_%s_%d", dec.File, ob.Name, oi)
		ms := scene.NewGenMesh(sc, name)
		hasNorms := true
		for fi := range ob.Faces {
			fc := &ob.Faces[fi]
			idx := make([]uint32, len(fc.Vertices))
			for k := range fc.Vertices {
				idx[k] = dec.copyVertex(ms, fc, k)
				if fc.Normals[k] < 0 {
					hasNorms = false
				}
			}
			for k := 2; k < len(idx); k++ {
				ms.AddTriangle(idx[0], idx[k-1], idx[k])
			}
		}
		if !hasNorms {
			ms.ComputeNormals()
		}
		sld := scene.NewSolid(gp, ob.Name, ms)
		// obj files do not reliably use a consistent winding
		sld.Material.SetDoubleSided()
	}
}

func (dec *OBJ) copyVertex(ms *scene.GenMesh, fc *OBJFace, k int) uint32 {
	var n math32.Vector3
	if ni := fc.Normals[k]; ni >= 0 {
		n = dec.norms[ni]
	}
	var uv math32.Vector2
	if ti := fc.UVs[k]; ti >= 0 {
		// obj v runs up the image
		uv = dec.uvs[ti]
		uv.Y = 1 - uv.Y
	}
	return ms.AddVertex(dec.verts[fc.Vertices[k]], n, uv.X, uv.Y)
}
