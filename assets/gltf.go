// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"bufio"
	"fmt"
	"image/color"
	"io/fs"
	"path"

	"cogentcore.org/core/math32"
	"cogentcore.org/undersea/scene"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

func init() {
	Decoders[".glb"] = &GLTF{}
	Decoders[".gltf"] = &GLTF{}
}

// GLTF decodes glTF 2.0 files, binary (.glb) or JSON (.gltf) with
// external or embedded buffers. The node hierarchy and triangle meshes
// with their base colors are imported; animations, skins, cameras and
// lights are not.
type GLTF struct {

	// File is the name of the file being decoded.
	File string

	// Meshes holds the decoded primitives of each glTF mesh.
	Meshes [][]Primitive

	// Warnings are the problems found that did not stop decoding.
	Warnings []string

	fsys fs.FS
	doc  *gltf.Document
}

// Primitive is one decoded triangle list of a glTF mesh.
type Primitive struct {
	Mesh  *scene.GenMesh
	Color color.RGBA
}

func (dec *GLTF) New() Decoder {
	return &GLTF{}
}

func (dec *GLTF) Desc() string {
	return ".glb, .gltf = glTF 2.0, binary or JSON. Imports the node hierarchy with triangle meshes and base colors."
}

func (dec *GLTF) SetFile(fsys fs.FS, fname string) {
	dec.File = fname
	dec.fsys = fsys
}

func (dec *GLTF) Decode(r *bufio.Reader) error {
	var rfs fs.FS
	if dec.fsys != nil {
		sub, err := fs.Sub(dec.fsys, path.Dir(dec.File))
		if err == nil {
			rfs = sub
		}
	}
	doc := new(gltf.Document)
	if err := gltf.NewDecoderFS(r, rfs).Decode(doc); err != nil {
		return err
	}
	dec.doc = doc
	dec.Meshes = make([][]Primitive, len(doc.Meshes))
	for mi, m := range doc.Meshes {
		for pi, p := range m.Primitives {
			if p.Mode != gltf.PrimitiveTriangles {
				dec.Warnings = append(dec.Warnings, fmt.Sprintf("mesh %d primitive %d: mode %v not supported", mi, pi, p.Mode))
				continue
			}
			pr, err := dec.primitive(fmt.Sprintf("%s_%d_%d", path.Base(dec.File), mi, pi), p)
			if err != nil {
				return fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			dec.Meshes[mi] = append(dec.Meshes[mi], pr)
		}
	}
	return nil
}

func (dec *GLTF) primitive(name string, p *gltf.Primitive) (Primitive, error) {
	doc := dec.doc
	pr := Primitive{Color: color.RGBA{255, 255, 255, 255}}
	pidx, ok := p.Attributes[gltf.POSITION]
	if !ok {
		return pr, fmt.Errorf("no POSITION attribute")
	}
	pacc, err := dec.accessor(pidx)
	if err != nil {
		return pr, err
	}
	pos, err := modeler.ReadPosition(doc, pacc, nil)
	if err != nil {
		return pr, err
	}
	var norms [][3]float32
	if ni, ok := p.Attributes[gltf.NORMAL]; ok {
		acc, err := dec.accessor(ni)
		if err != nil {
			return pr, err
		}
		if norms, err = modeler.ReadNormal(doc, acc, nil); err != nil {
			return pr, err
		}
	}
	var uvs [][2]float32
	if ti, ok := p.Attributes[gltf.TEXCOORD_0]; ok {
		acc, err := dec.accessor(ti)
		if err != nil {
			return pr, err
		}
		if uvs, err = modeler.ReadTextureCoord(doc, acc, nil); err != nil {
			return pr, err
		}
	}
	var idx []uint32
	if p.Indices != nil {
		acc, err := dec.accessor(*p.Indices)
		if err != nil {
			return pr, err
		}
		if idx, err = modeler.ReadIndices(doc, acc, nil); err != nil {
			return pr, err
		}
		for i, v := range idx {
			if int(v) >= len(pos) {
				return pr, fmt.Errorf("index %d is %d, past the %d vertices", i, v, len(pos))
			}
		}
	} else {
		idx = make([]uint32, len(pos))
		for i := range idx {
			idx[i] = uint32(i)
		}
	}

	ms := scene.NewGenMesh(nil, name)
	for i, v := range pos {
		var n math32.Vector3
		if i < len(norms) {
			n = math32.Vec3(norms[i][0], norms[i][1], norms[i][2])
		}
		var u, tv float32
		if i < len(uvs) {
			u, tv = uvs[i][0], uvs[i][1]
		}
		ms.AddVertex(math32.Vec3(v[0], v[1], v[2]), n, u, tv)
	}
	for t := 0; t+2 < len(idx); t += 3 {
		ms.AddTriangle(idx[t], idx[t+1], idx[t+2])
	}
	if len(norms) == 0 {
		ms.ComputeNormals()
	}
	pr.Mesh = ms

	if p.Material != nil && *p.Material < len(doc.Materials) {
		if pbr := doc.Materials[*p.Material].PBRMetallicRoughness; pbr != nil && pbr.BaseColorFactor != nil {
			bc := pbr.BaseColorFactor
			pr.Color = color.RGBA{unit8(bc[0]), unit8(bc[1]), unit8(bc[2]), unit8(bc[3])}
		}
	}
	return pr, nil
}

// accessor returns accessor i, or an error if there is none.
func (dec *GLTF) accessor(i int) (*gltf.Accessor, error) {
	if i < 0 || i >= len(dec.doc.Accessors) || dec.doc.Accessors[i] == nil {
		return nil, fmt.Errorf("accessor %d not found (%d accessors)", i, len(dec.doc.Accessors))
	}
	return dec.doc.Accessors[i], nil
}

func unit8(v float64) uint8 {
	return uint8(math32.Clamp(float32(v), 0, 1)*255 + 0.5)
}

// roots returns the top-level nodes of the default scene, or of the
// whole document if there are no scenes.
func (dec *GLTF) roots() []int {
	doc := dec.doc
	if len(doc.Scenes) > 0 {
		si := 0
		if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
			si = *doc.Scene
		}
		return doc.Scenes[si].Nodes
	}
	child := make(map[int]bool)
	for _, nd := range doc.Nodes {
		for _, c := range nd.Children {
			child[c] = true
		}
	}
	var rs []int
	for i := range doc.Nodes {
		if !child[i] {
			rs = append(rs, i)
		}
	}
	return rs
}

func (dec *GLTF) SetGroup(sc *scene.Scene, gp *scene.Group) {
	if dec.doc == nil {
		return
	}
	for _, ni := range dec.roots() {
		dec.setNode(sc, gp, ni, 0)
	}
}

// maxDepth guards against cyclic node references in malformed files.
const maxDepth = 64

func (dec *GLTF) setNode(sc *scene.Scene, parent scene.Node, ni, depth int) {
	if ni < 0 || ni >= len(dec.doc.Nodes) || depth > maxDepth {
		return
	}
	nd := dec.doc.Nodes[ni]
	name := nd.Name
	if name == "" {
		name = fmt.Sprintf("node_%d", ni)
	}
	ng := scene.NewGroup(parent, name)
	setNodePose(&ng.Pose, nd)
	if nd.Mesh != nil && *nd.Mesh < len(dec.Meshes) {
		for i, pr := range dec.Meshes[*nd.Mesh] {
			sc.SetMesh(pr.Mesh)
			sld := scene.NewSolid(ng, fmt.Sprintf("%s_%d", name, i), pr.Mesh)
			sld.SetColor(pr.Color)
		}
	}
	for _, c := range nd.Children {
		dec.setNode(sc, ng, c, depth+1)
	}
}

// setNodePose sets the pose from the node transform, which is either
// a full matrix or separate translation, rotation and scale.
func setNodePose(ps *scene.Pose, nd *gltf.Node) {
	if nd.Matrix != gltf.DefaultMatrix && nd.Matrix != [16]float64{} {
		var m math32.Matrix4
		for i, v := range nd.Matrix {
			m[i] = float32(v)
		}
		ps.Pos.Set(m[12], m[13], m[14])
		sx := math32.Vec3(m[0], m[1], m[2]).Length()
		sy := math32.Vec3(m[4], m[5], m[6]).Length()
		sz := math32.Vec3(m[8], m[9], m[10]).Length()
		ps.Scale.Set(sx, sy, sz)
		rm := m
		for i := 0; i < 3; i++ {
			rm[i] /= sx
			rm[4+i] /= sy
			rm[8+i] /= sz
		}
		var q math32.Quat
		q.SetFromRotationMatrix(&rm)
		ps.Rot = q.ToEuler()
		return
	}
	t := nd.TranslationOrDefault()
	r := nd.RotationOrDefault()
	s := nd.ScaleOrDefault()
	ps.Pos.Set(float32(t[0]), float32(t[1]), float32(t[2]))
	ps.Scale.Set(float32(s[0]), float32(s[1]), float32(s[2]))
	q := math32.NewQuat(float32(r[0]), float32(r[1]), float32(r[2]), float32(r[3]))
	ps.Rot = q.ToEuler()
}
