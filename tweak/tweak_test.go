// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tweak

import (
	"context"
	"encoding/json"
	"image/jpeg"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cogentcore.org/undersea/frame"
	"cogentcore.org/undersea/orbit"
	"cogentcore.org/undersea/render"
	"cogentcore.org/undersea/scene"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorAdapter(t *testing.T) {
	sc := scene.NewScene("sc")
	hl := scene.NewHemisphereLight(sc, "hemi", scene.Hex(0xffffff), scene.Hex(0x444444), 1)

	sky, err := NewColorAdapter(hl, "color")
	require.NoError(t, err)
	ground, err := NewColorAdapter(hl, "groundColor")
	require.NoError(t, err)
	assert.Equal(t, "#ffffff", sky.Get())
	assert.Equal(t, "#444444", ground.Get())

	for _, tc := range []struct{ in, out string }{
		{"#FFAA00", "#ffaa00"},
		{"#0a0b0c", "#0a0b0c"},
		{"abc", "#aabbcc"},
		{" #123456", "#123456"},
	} {
		require.NoError(t, sky.Set(tc.in), tc.in)
		assert.Equal(t, tc.out, sky.Get(), tc.in)
		// the normalized form reads back unchanged
		require.NoError(t, sky.Set(sky.Get()))
		assert.Equal(t, tc.out, sky.Get())
	}
	assert.Equal(t, uint8(255), hl.Color.A)

	for _, bad := range []string{"", "#12345", "zzzzzz", "#12345g", "#1234567890"} {
		assert.Error(t, sky.Set(bad), bad)
	}
	assert.Equal(t, "#123456", sky.Get())

	_, err = NewColorAdapter(hl, "emissive")
	assert.Error(t, err)
}

func TestSlider(t *testing.T) {
	v := float32(1)
	sr := NewSlider(&v, 0, 5, 0.01)
	assert.Equal(t, float32(5), sr.SetValue(7))
	assert.Equal(t, float32(5), v)
	assert.Equal(t, float32(0), sr.SetValue(-1))
	assert.InDelta(t, 1.23, sr.SetValue(1.234), 1e-6)
	assert.InDelta(t, 1.24, sr.SetValue(1.236), 1e-6)

	sr.Step = 0.5
	assert.Equal(t, float32(1.5), sr.SetValue(1.3))
	assert.Equal(t, float32(1), sr.SetValue(1.2))

	sr = NewSlider(&v, 1, 2, 0.3)
	// steps count from Min
	assert.InDelta(t, 1.9, sr.SetValue(2), 1e-6)
	assert.InDelta(t, 1.6, sr.SetValue(1.5), 1e-6)

	sr = NewSlider(&v, 0, 1, 0.6)
	// snapping never leaves the bounds
	assert.Equal(t, float32(1), sr.SetValue(1))

	sr.Step = 0
	assert.Equal(t, float32(0.37), sr.SetValue(0.37))
}

func newTestPanel(t *testing.T) (*Panel, *scene.AmbientLight) {
	sc := scene.NewScene("sc")
	al := scene.NewAmbientLight(sc, "ambient", scene.Hex(0x404040), 2)
	pn := NewPanel("Lights")
	_, err := pn.AddColor("Ambient Color", al, "color")
	require.NoError(t, err)
	pn.AddSlider("Ambient Intensity", &al.Intensity, 0, 5, 0.01)
	return pn, al
}

func TestPanel(t *testing.T) {
	pn, al := newTestPanel(t)
	assert.Equal(t, 2, pn.Len())
	assert.Equal(t, []string{"Ambient Color", "Ambient Intensity"}, pn.Labels())

	var changed []string
	pn.OnChange = func(label string) { changed = append(changed, label) }

	require.NoError(t, pn.Set("Ambient Color", "#FF0000"))
	require.NoError(t, pn.Set("Ambient Intensity", 9.0))
	assert.Equal(t, scene.Hex(0xff0000), al.Color)
	assert.Equal(t, float32(5), al.Intensity)
	assert.Equal(t, []string{"Ambient Color", "Ambient Intensity"}, changed)

	v, err := pn.Get("Ambient Color")
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", v)

	assert.Error(t, pn.Set("Ambient Color", 3))
	assert.Error(t, pn.Set("Ambient Intensity", "lots"))
	assert.Error(t, pn.Set("Nope", 1))
	assert.Len(t, changed, 2)

	err = pn.Apply(map[string]any{"Ambient Intensity": "1.5", "Other": 1})
	assert.ErrorContains(t, err, "Other")
	assert.Equal(t, float32(1.5), al.Intensity)

	sts := pn.Snapshot()
	require.Len(t, sts, 2)
	assert.Equal(t, State{Label: "Ambient Intensity", Kind: KindSlider, Value: float32(1.5), Min: 0, Max: 5, Step: 0.01}, sts[1])
	assert.Equal(t, map[string]any{"Ambient Color": "#ff0000", "Ambient Intensity": float32(1.5)}, pn.Values())

	b, err := json.Marshal(pn)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"title":"Lights"`)
	assert.Contains(t, string(b), `"kind":"color","value":"#ff0000"`)
}

func newTestServer(t *testing.T) (*Server, *orbit.Controls, *scene.AmbientLight) {
	pn, al := newTestPanel(t)
	sc := scene.NewScene("view")
	sc.Camera.Pose.Pos.Set(0, 0, 10)
	sc.Camera.LookAtOrigin()
	oc := orbit.New(&sc.Camera)
	cv := render.NewCanvas()
	rd := render.NewRenderer(cv)
	rd.SetSize(16, 8)
	rd.Render(sc)

	lp := frame.NewLoop(120)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go lp.Run(ctx)
	return NewServer(pn, cv, oc, lp, slog.New(slog.DiscardHandler)), oc, al
}

func TestServerHandle(t *testing.T) {
	sv, oc, al := newTestServer(t)
	ctx := context.Background()

	rep := sv.Handle(ctx, Message{Type: "set", Name: "Ambient Intensity", Value: 2.5})
	assert.Equal(t, "state", rep.Type)
	assert.Equal(t, "Lights", rep.Title)
	assert.Equal(t, float32(2.5), rep.Controls[1].Value)

	rep = sv.Handle(ctx, Message{Type: "set", Name: "Ambient Color", Value: "nothex"})
	assert.Equal(t, "error", rep.Type)
	assert.Contains(t, rep.Error, "Ambient Color")
	// state unchanged and still reported
	assert.Equal(t, "#404040", rep.Controls[0].Value)
	assert.Equal(t, float32(2.5), al.Intensity)

	rep = sv.Handle(ctx, Message{Type: "fly"})
	assert.Equal(t, "error", rep.Type)

	assert.False(t, oc.Pending())
	rep = sv.Handle(ctx, Message{Type: "zoom", Delta: 1})
	assert.Equal(t, "state", rep.Type)
	assert.True(t, oc.Pending())
}

func TestServerHTTP(t *testing.T) {
	sv, _, _ := newTestServer(t)
	ts := httptest.NewServer(sv.Handler())
	defer ts.Close()

	res, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Type"), "text/html")

	res, err = http.Get(ts.URL + "/frame.jpg")
	require.NoError(t, err)
	cfg, err := jpeg.DecodeConfig(res.Body)
	res.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Width)
	assert.Equal(t, 8, cfg.Height)

	res, err = http.Get(ts.URL + "/controls")
	require.NoError(t, err)
	var state struct {
		Title    string
		Controls []State
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&state))
	res.Body.Close()
	assert.Equal(t, "Lights", state.Title)
	assert.Len(t, state.Controls, 2)

	res, err = http.Get(ts.URL + "/nothing")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestServerWebSocket(t *testing.T) {
	sv, _, al := newTestServer(t)
	ts := httptest.NewServer(sv.Handler())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(Message{Type: "set", Name: "Ambient Color", Value: "#00FF00"}))
	var rep Reply
	require.NoError(t, conn.ReadJSON(&rep))
	assert.Equal(t, "state", rep.Type)
	assert.Equal(t, "#00ff00", rep.Controls[0].Value)

	require.NoError(t, conn.WriteJSON(Message{Type: "set", Name: "Ambient Intensity", Value: "x"}))
	rep = Reply{}
	require.NoError(t, conn.ReadJSON(&rep))
	assert.Equal(t, "error", rep.Type)
	assert.NotEmpty(t, rep.Error)

	require.NoError(t, conn.WriteJSON(Message{Type: "get"}))
	rep = Reply{}
	require.NoError(t, conn.ReadJSON(&rep))
	assert.Equal(t, "state", rep.Type)

	var clr string
	require.NoError(t, frame.Do(context.Background(), sv.Loop, func() {
		v, _ := sv.Panel.Get("Ambient Color")
		clr = v.(string)
	}))
	assert.Equal(t, "#00ff00", clr)
	assert.Equal(t, scene.Hex(0x00ff00), al.Color)
}
