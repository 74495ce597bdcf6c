// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tweak

import (
	"cogentcore.org/core/math32"
)

// Slider edits a float32 value within [Min, Max].
type Slider struct {

	// Min is the minimum value.
	Min float32

	// Max is the maximum value.
	Max float32

	// Step is the increment that values snap to, relative to Min.
	// 0 means no snapping.
	Step float32

	value *float32
}

// NewSlider returns a slider bound to the value.
func NewSlider(value *float32, min, max, step float32) *Slider {
	return &Slider{Min: min, Max: max, Step: step, value: value}
}

// Value returns the current value.
func (sr *Slider) Value() float32 {
	return *sr.value
}

// SetValue sets the value clamped to the bounds and snapped to the
// step, and returns the value actually set.
func (sr *Slider) SetValue(v float32) float32 {
	v = math32.Clamp(v, sr.Min, sr.Max)
	if sr.Step > 0 {
		v = sr.Min + sr.Step*math32.Round((v-sr.Min)/sr.Step)
		v = math32.Clamp(v, sr.Min, sr.Max)
	}
	*sr.value = v
	return v
}
