// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cogentcore.org/undersea/frame"
	"cogentcore.org/undersea/scene"
	"cogentcore.org/undersea/tweak"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	c := New()
	assert.Equal(t, "assets", c.Assets)
	assert.Equal(t, "ducky.glb", c.Model)
	assert.Equal(t, float32(0.1), c.ModelScale)
	assert.Equal(t, 8, c.ModelCount)
	assert.Equal(t, 960, c.Width)
	assert.Equal(t, 540, c.Height)
	assert.Equal(t, float32(1), c.PixelRatio)
	assert.Equal(t, 60, c.FPS)
	assert.Equal(t, "undersea.png", c.Output)
	assert.False(t, c.Headless())

	assert.Equal(t, slog.LevelWarn, c.Level())
	c.Verbose = true
	assert.Equal(t, slog.LevelInfo, c.Level())

	c.Seed = 42
	assert.Equal(t, int64(42), c.RandSeed())
	c.Seed = 0
	assert.NotZero(t, c.RandSeed())
}

func newTestPanel() (*tweak.Panel, *scene.HemisphereLight) {
	sc := scene.NewScene("sc")
	hl := scene.NewHemisphereLight(sc, "hemisphere", scene.Hex(0xffffff), scene.Hex(0x444444), 1)
	pn := tweak.NewPanel("Lights")
	pn.AddColor("Hemisphere Sky", hl, "color")
	pn.AddColor("Hemisphere Ground", hl, "groundColor")
	pn.AddSlider("Hemisphere Intensity", &hl.Intensity, 0, 5, 0.01)
	return pn, hl
}

func TestLoadPreset(t *testing.T) {
	dir := t.TempDir()
	tf := filepath.Join(dir, "lights.toml")
	require.NoError(t, os.WriteFile(tf, []byte(`"Hemisphere Sky" = "#336699"
"Hemisphere Intensity" = 2.5
`), 0o644))
	yf := filepath.Join(dir, "lights.yaml")
	require.NoError(t, os.WriteFile(yf, []byte(`Hemisphere Ground: "#112233"
Hemisphere Intensity: 3
`), 0o644))

	pn, hl := newTestPanel()
	ps, err := LoadPreset(tf)
	require.NoError(t, err)
	require.NoError(t, pn.Apply(ps))
	assert.Equal(t, scene.Hex(0x336699), hl.Color)
	assert.Equal(t, float32(2.5), hl.Intensity)

	ps, err = LoadPreset(yf)
	require.NoError(t, err)
	require.NoError(t, pn.Apply(ps))
	assert.Equal(t, scene.Hex(0x112233), hl.GroundColor)
	assert.Equal(t, float32(3), hl.Intensity)

	_, err = LoadPreset(filepath.Join(dir, "lights.json"))
	assert.Error(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.toml"), []byte("= ="), 0o644))
	_, err = LoadPreset(filepath.Join(dir, "bad.toml"))
	assert.ErrorContains(t, err, "bad.toml")
}

func TestSavePreset(t *testing.T) {
	pn, hl := newTestPanel()
	require.NoError(t, pn.Set("Hemisphere Sky", "#abcdef"))
	require.NoError(t, pn.Set("Hemisphere Intensity", 0.75))

	for _, fn := range []string{"saved.toml", "saved.yml"} {
		fname := filepath.Join(t.TempDir(), fn)
		require.NoError(t, SavePreset(fname, pn.Values()))

		other, ohl := newTestPanel()
		ps, err := LoadPreset(fname)
		require.NoError(t, err)
		require.NoError(t, other.Apply(ps))
		assert.Equal(t, hl.Color, ohl.Color, fn)
		assert.Equal(t, hl.GroundColor, ohl.GroundColor, fn)
		assert.Equal(t, float32(0.75), ohl.Intensity, fn)
	}
	assert.Error(t, SavePreset(filepath.Join(t.TempDir(), "saved.ini"), pn.Values()))
}

func TestApplyPreset(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	lp := frame.NewLoop(120)
	go lp.Run(ctx)

	pn, hl := newTestPanel()
	fname := filepath.Join(t.TempDir(), "lights.yaml")
	require.NoError(t, os.WriteFile(fname, []byte("Hemisphere Intensity: 4\nSpotlight: 1\n"), 0o644))
	err := ApplyPreset(ctx, lp, pn, fname)
	assert.ErrorContains(t, err, "Spotlight")

	var in float32
	require.NoError(t, frame.Do(ctx, lp, func() { in = hl.Intensity }))
	assert.Equal(t, float32(4), in)
}

func TestWatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fname := filepath.Join(t.TempDir(), "lights.toml")
	require.NoError(t, os.WriteFile(fname, []byte(`"Hemisphere Intensity" = 1`), 0o644))

	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, fname, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	// keep writing until the watcher, which starts asynchronously, sees it
	timeout := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
loop:
	for {
		select {
		case <-changed:
			break loop
		case <-tick.C:
			require.NoError(t, os.WriteFile(fname, []byte(`"Hemisphere Intensity" = 2`), 0o644))
		case <-timeout:
			t.Fatal("no change seen")
		}
	}
	cancel()
	assert.NoError(t, <-done)
}
