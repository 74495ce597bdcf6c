// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the run configuration of the undersea
// command, and the light presets that can be loaded into, saved from,
// and watched for its tweak panel.
package config

import (
	"log/slog"
	"time"

	"cogentcore.org/core/base/logx"
	"cogentcore.org/core/cli"
)

// Config is the configuration of the undersea command.
type Config struct {

	// Assets is the directory holding the textures and the model.
	Assets string `default:"assets"`

	// Model is the model file within Assets; none is loaded if empty.
	Model string `default:"ducky.glb"`

	// ModelScale is the uniform scale of each model copy.
	ModelScale float32 `default:"0.1"`

	// ModelCount is the total number of model copies.
	ModelCount int `default:"8"`

	// Seed seeds all random placement. If 0, the current time is used.
	Seed int64

	// Width is the viewport width in logical pixels.
	Width int `default:"960"`

	// Height is the viewport height in logical pixels.
	Height int `default:"540"`

	// PixelRatio is the number of device pixels per logical pixel.
	PixelRatio float32 `default:"1"`

	// FPS is the animation frame rate.
	FPS int `default:"60"`

	// Addr is the address the viewer is served on.
	Addr string `default:"localhost:8080"`

	// Presets is a TOML or YAML file of light settings, applied at
	// startup and again whenever it changes.
	Presets string

	// Save is a TOML or YAML file that the final light settings are
	// written to on exit.
	Save string

	// Frames, if positive, renders that many frames without serving
	// and writes the last one to Output.
	Frames int

	// Output is the PNG file written after a headless run.
	Output string `default:"undersea.png"`

	// LoadTimeout is how many seconds a headless run waits for assets.
	LoadTimeout int `default:"30"`

	// VeryVerbose shows debug messages.
	VeryVerbose bool

	// Verbose shows info messages.
	Verbose bool

	// Quiet shows only errors.
	Quiet bool
}

// New returns a new config with all of the defaults set.
func New() *Config {
	c := &Config{}
	cli.SetFromDefaults(c)
	return c
}

// Level returns the log level selected by the verbosity flags.
func (c *Config) Level() slog.Level {
	return logx.LevelFromFlags(c.VeryVerbose, c.Verbose, c.Quiet)
}

// RandSeed returns Seed, or the current time if it is 0.
func (c *Config) RandSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// Headless returns whether the run renders Frames frames without serving.
func (c *Config) Headless() bool {
	return c.Frames > 0
}
