// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/undersea/frame"
	"cogentcore.org/undersea/tweak"
	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Preset maps panel control labels to values, as in [tweak.Panel.Values].
type Preset = map[string]any

// LoadPreset reads a preset from the given TOML (.toml) or YAML
// (.yaml, .yml) file.
func LoadPreset(fname string) (Preset, error) {
	b, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	ps := Preset{}
	switch ext := strings.ToLower(filepath.Ext(fname)); ext {
	case ".toml":
		err = toml.Unmarshal(b, &ps)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &ps)
	default:
		return nil, fmt.Errorf("config.LoadPreset: %v: unsupported preset format %q", fname, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("config.LoadPreset: %v: %w", fname, err)
	}
	return ps, nil
}

// SavePreset writes the preset to the given TOML or YAML file,
// chosen by extension as in [LoadPreset].
func SavePreset(fname string, ps Preset) error {
	var b []byte
	var err error
	switch ext := strings.ToLower(filepath.Ext(fname)); ext {
	case ".toml":
		b, err = toml.Marshal(ps)
	case ".yaml", ".yml":
		b, err = yaml.Marshal(ps)
	default:
		return fmt.Errorf("config.SavePreset: %v: unsupported preset format %q", fname, ext)
	}
	if err != nil {
		return fmt.Errorf("config.SavePreset: %v: %w", fname, err)
	}
	return os.WriteFile(fname, b, 0o644)
}

// ApplyPreset loads the preset file and applies it to the panel on the
// loop, waiting until that is done.
func ApplyPreset(ctx context.Context, lp *frame.Loop, pn *tweak.Panel, fname string) error {
	ps, err := LoadPreset(fname)
	if err != nil {
		return err
	}
	var aerr error
	if err := frame.Do(ctx, lp, func() { aerr = pn.Apply(ps) }); err != nil {
		return err
	}
	return aerr
}

// Watch calls fn each time the named file is written or re-created,
// until ctx is done. The enclosing directory is watched so that files
// replaced by an editor are still seen.
func Watch(ctx context.Context, fname string, fn func()) error {
	wt, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer wt.Close()
	fname = filepath.Clean(fname)
	if err := wt.Add(filepath.Dir(fname)); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-wt.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != fname {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				fn()
			}
		case err, ok := <-wt.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("config.Watch: %v: %w", fname, err)
		}
	}
}
