// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"bufio"
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"cogentcore.org/undersea/frame"
	"cogentcore.org/undersea/scene"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{uint8(x * 10), uint8(y * 10), 200, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func triangleGLB(t *testing.T) []byte {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	doc.Materials = []*gltf.Material{{
		Name:                 "yellow",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{BaseColorFactor: &[4]float64{1, 1, 0, 1}},
	}}
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{gltf.POSITION: pos},
			Material:   gltf.Index(0),
		}},
	}}
	doc.Nodes = []*gltf.Node{
		{Name: "body", Children: []int{1}, Translation: [3]float64{1, 2, 3}},
		{Name: "head", Mesh: gltf.Index(0)},
	}
	doc.Scenes[0].Nodes = []int{0}
	var buf bytes.Buffer
	enc := gltf.NewEncoder(&buf)
	enc.AsBinary = true
	require.NoError(t, enc.Encode(doc))
	return buf.Bytes()
}

// runUntil steps the loop's tasks until done is closed.
func runUntil(t *testing.T, lp *frame.Loop, done <-chan struct{}) {
	require.Eventually(t, func() bool {
		lp.RunTasks()
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, 5*time.Second, time.Millisecond)
}

type counter struct{ n int }

func (c *counter) Add(num int) error {
	c.n += num
	return nil
}

type closedProgress struct{}

func (closedProgress) Add(int) error {
	return errors.New("progress bar closed")
}

func TestLoaderProgressError(t *testing.T) {
	var logs bytes.Buffer
	old := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	defer slog.SetDefault(old)

	lp := frame.NewLoop(60)
	ld := NewLoader(fstest.MapFS{"a.png": {Data: pngBytes(t, 2, 2)}}, lp, slog.New(slog.DiscardHandler))
	ld.Progress = closedProgress{}
	tx := scene.NewTexture(scene.NewScene("sc"), "a", "a.png")
	f := ld.Texture(tx)
	runUntil(t, lp, f.Done())
	// the load still completes and the progress error is logged
	assert.True(t, tx.IsLoaded())
	assert.Contains(t, logs.String(), "progress bar closed")
}

func TestReadImage(t *testing.T) {
	fsys := fstest.MapFS{
		"tex/a.png":   {Data: pngBytes(t, 4, 3)},
		"tex/bad.jpg": {Data: []byte("this is not a jpeg")},
	}
	img, err := ReadImage(fsys, "tex/a.png")
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())

	_, err = ReadImage(fsys, "tex/bad.jpg")
	assert.ErrorContains(t, err, "not an image")

	_, err = ReadImage(fsys, "tex/missing.jpg")
	assert.Error(t, err)
}

func TestLoaderTexture(t *testing.T) {
	fsys := fstest.MapFS{"a.png": {Data: pngBytes(t, 2, 2)}}
	var logs bytes.Buffer
	lp := frame.NewLoop(60)
	ld := NewLoader(fsys, lp, slog.New(slog.NewTextHandler(&logs, nil)))
	prog := &counter{}
	ld.Progress = prog
	sc := scene.NewScene("sc")

	good := scene.NewTexture(sc, "good", "a.png")
	bad := scene.NewTexture(sc, "bad", "none.png")
	fg := ld.Texture(good)
	fb := ld.Texture(bad)
	assert.False(t, good.IsLoaded())

	runUntil(t, lp, fg.Done())
	runUntil(t, lp, fb.Done())
	assert.True(t, good.IsLoaded())
	assert.NoError(t, good.Err)
	assert.False(t, bad.IsLoaded())
	assert.Error(t, bad.Err)
	assert.Equal(t, 2, prog.n)
	assert.Contains(t, logs.String(), "texture load failed")
	assert.Contains(t, logs.String(), "none.png")
}

func TestOBJ(t *testing.T) {
	src := `# a quad and a triangle
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 1
f 1/1 2/2 3 4
g tri
f -1 -2 -3
s off
`
	dec := (&OBJ{}).New().(*OBJ)
	dec.SetFile(nil, "models/shape.obj")
	require.NoError(t, dec.Decode(bufio.NewReader(strings.NewReader(src))))
	require.Len(t, dec.Objects, 2)
	assert.Equal(t, "quad", dec.Objects[0].Name)
	assert.Equal(t, []int{3, 2, 1}, dec.Objects[1].Faces[0].Vertices)
	assert.Len(t, dec.Warnings, 1)

	sc := scene.NewScene("sc")
	gp := scene.NewGroup(nil, "shape")
	dec.SetGroup(sc, gp)
	sds := gp.Solids()
	require.Len(t, sds, 2)
	quad := scene.MeshData(sds[0].Mesh)
	assert.Equal(t, 4, quad.NumVertex())
	assert.Equal(t, 2, quad.NumTriangles())
	assert.InDelta(t, 1, quad.Norm(0).Z, 1e-5)
	assert.True(t, sds[0].Material.IsDoubleSided())
	assert.Equal(t, 2, sc.Meshes.Len())

	bad := (&OBJ{}).New()
	err := bad.Decode(bufio.NewReader(strings.NewReader("v 0 0 0\nf 1 2 3\n")))
	assert.ErrorContains(t, err, "line 2")
}

func TestDecodeFileGLB(t *testing.T) {
	fsys := fstest.MapFS{
		"ducky.glb": {Data: triangleGLB(t)},
		"fake.glb":  {Data: pngBytes(t, 1, 1)},
		"x.fbx":     {Data: []byte("FBX")},
	}
	dec, err := DecodeFile(fsys, "ducky.glb")
	require.NoError(t, err)
	gd := dec.(*GLTF)
	require.Len(t, gd.Meshes, 1)
	require.Len(t, gd.Meshes[0], 1)
	assert.Equal(t, color.RGBA{255, 255, 0, 255}, gd.Meshes[0][0].Color)

	sc := scene.NewScene("sc")
	gp := scene.NewGroup(nil, "ducky")
	dec.SetGroup(sc, gp)
	require.Len(t, gp.Children, 1)
	body := gp.Children[0].AsNode()
	assert.Equal(t, "body", body.Name)
	assert.InDelta(t, 2, body.Pose.Pos.Y, 1e-6)
	sds := gp.Solids()
	require.Len(t, sds, 1)
	ms := scene.MeshData(sds[0].Mesh)
	assert.Equal(t, 3, ms.NumVertex())
	assert.Equal(t, 1, ms.NumTriangles())
	assert.InDelta(t, 1, ms.Norm(0).Z, 1e-5)

	_, err = DecodeFile(fsys, "fake.glb")
	assert.ErrorContains(t, err, "not a binary glTF")
	_, err = DecodeFile(fsys, "x.fbx")
	assert.ErrorContains(t, err, "not found in Decoders")
}

// badGLB returns a one-triangle GLB whose index or position accessor
// is set by the caller.
func badGLB(t *testing.T, indices []uint16, posAccessor int) []byte {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	idx := modeler.WriteIndices(doc, indices)
	if posAccessor >= 0 {
		pos = posAccessor
	}
	doc.Meshes = []*gltf.Mesh{{
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{gltf.POSITION: pos},
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: "tri", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = []int{0}
	var buf bytes.Buffer
	enc := gltf.NewEncoder(&buf)
	enc.AsBinary = true
	require.NoError(t, enc.Encode(doc))
	return buf.Bytes()
}

func TestDecodeFileGLBOutOfRange(t *testing.T) {
	fsys := fstest.MapFS{
		"index.glb":    {Data: badGLB(t, []uint16{0, 1, 7}, -1)},
		"accessor.glb": {Data: badGLB(t, []uint16{0, 1, 2}, 42)},
	}
	var err error
	assert.NotPanics(t, func() { _, err = DecodeFile(fsys, "index.glb") })
	assert.ErrorContains(t, err, "past the 3 vertices")
	assert.NotPanics(t, func() { _, err = DecodeFile(fsys, "accessor.glb") })
	assert.ErrorContains(t, err, "accessor 42 not found")

	var logs bytes.Buffer
	lp := frame.NewLoop(60)
	ld := NewLoader(fsys, lp, slog.New(slog.NewTextHandler(&logs, nil)))
	f := ld.Model(scene.NewScene("sc"), "index.glb")
	runUntil(t, lp, f.Done())
	_, err = f.Result()
	assert.Error(t, err)
	assert.Contains(t, logs.String(), "model load failed")
}

func TestLoaderModel(t *testing.T) {
	fsys := fstest.MapFS{"ducky.glb": {Data: triangleGLB(t)}}
	var logs bytes.Buffer
	lp := frame.NewLoop(60)
	ld := NewLoader(fsys, lp, slog.New(slog.NewTextHandler(&logs, nil)))
	sc := scene.NewScene("sc")

	f := ld.Model(sc, "ducky.glb")
	runUntil(t, lp, f.Done())
	gp, err := f.Result()
	require.NoError(t, err)
	assert.Equal(t, "ducky", gp.Name)
	assert.Nil(t, gp.Parent)
	assert.Len(t, gp.Solids(), 1)
	assert.Equal(t, 0, sc.NumChildren())

	f = ld.Model(sc, "missing.glb")
	runUntil(t, lp, f.Done())
	_, err = f.Result()
	assert.Error(t, err)
	assert.Contains(t, logs.String(), "model load failed")
}
