// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/undersea/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProgress(t *testing.T) {
	lp := newLoadProgress(2)
	require.NoError(t, lp.Add(1))
	select {
	case <-lp.done:
		t.Fatal("done after one of two loads")
	default:
	}
	require.NoError(t, lp.Add(1))
	<-lp.done

	<-newLoadProgress(0).done
}

func TestRunHeadless(t *testing.T) {
	dir := t.TempDir()
	presets := filepath.Join(dir, "lights.toml")
	require.NoError(t, os.WriteFile(presets, []byte(`"Ambient Intensity" = 0.5`), 0o644))

	c := config.New()
	// missing textures are logged and leave the shapes untextured
	c.Assets = dir
	c.Model = ""
	c.Seed = 7
	c.Width, c.Height = 32, 24
	c.Frames = 3
	c.Output = filepath.Join(dir, "out.png")
	c.Presets = presets
	c.Save = filepath.Join(dir, "saved.yaml")
	c.Quiet = true
	require.NoError(t, Run(c))

	f, err := os.Open(c.Output)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Width)
	assert.Equal(t, 24, cfg.Height)

	ps, err := config.LoadPreset(c.Save)
	require.NoError(t, err)
	assert.Equal(t, 0.5, ps["Ambient Intensity"])
	assert.Equal(t, "#404040", ps["Ambient Color"])
}
