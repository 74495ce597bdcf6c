// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tweak

import (
	"encoding/json"
	"errors"
	"fmt"

	"cogentcore.org/core/base/ordmap"
	"cogentcore.org/core/base/reflectx"
)

// Control kinds.
const (
	KindColor  = "color"
	KindSlider = "slider"
)

// Control is one labeled entry in a [Panel]: either a color or a slider.
type Control struct {

	// Label is the unique name shown for the control.
	Label string

	// Color is set for color controls.
	Color *ColorAdapter

	// Slider is set for slider controls.
	Slider *Slider
}

// State is the serializable state of a [Control].
type State struct {
	Label string  `json:"label"`
	Kind  string  `json:"kind"`
	Value any     `json:"value"`
	Min   float32 `json:"min,omitempty"`
	Max   float32 `json:"max,omitempty"`
	Step  float32 `json:"step,omitempty"`
}

// Kind returns [KindColor] or [KindSlider].
func (ct *Control) Kind() string {
	if ct.Color != nil {
		return KindColor
	}
	return KindSlider
}

// Get returns the value: a hex string for colors and a float32
// for sliders.
func (ct *Control) Get() any {
	if ct.Color != nil {
		return ct.Color.Get()
	}
	return ct.Slider.Value()
}

// Set sets the value from a string (colors) or any number or numeric
// string (sliders).
func (ct *Control) Set(value any) error {
	if ct.Color != nil {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%s: color value must be a string, not %T", ct.Label, value)
		}
		if err := ct.Color.Set(s); err != nil {
			return fmt.Errorf("%s: %w", ct.Label, err)
		}
		return nil
	}
	v, err := reflectx.ToFloat32(value)
	if err != nil {
		return fmt.Errorf("%s: %w", ct.Label, err)
	}
	ct.Slider.SetValue(v)
	return nil
}

// State returns the current state.
func (ct *Control) State() State {
	st := State{Label: ct.Label, Kind: ct.Kind(), Value: ct.Get()}
	if ct.Slider != nil {
		st.Min, st.Max, st.Step = ct.Slider.Min, ct.Slider.Max, ct.Slider.Step
	}
	return st
}

// Panel is an ordered set of labeled controls editing values in place.
// It is not safe for concurrent use: like the values it edits, it
// belongs to the frame loop.
type Panel struct {

	// Title is the panel title.
	Title string

	// OnChange, if set, is called with the label of each control
	// after it is successfully set.
	OnChange func(label string)

	controls ordmap.Map[string, *Control]
}

// NewPanel returns a new empty panel.
func NewPanel(title string) *Panel {
	return &Panel{Title: title}
}

// AddColor adds a color control for the named color property of target.
func (pn *Panel) AddColor(label string, target ColorProperties, prop string) (*ColorAdapter, error) {
	ca, err := NewColorAdapter(target, prop)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	pn.controls.Add(label, &Control{Label: label, Color: ca})
	return ca, nil
}

// AddSlider adds a slider control bound to the value.
func (pn *Panel) AddSlider(label string, value *float32, min, max, step float32) *Slider {
	sr := NewSlider(value, min, max, step)
	pn.controls.Add(label, &Control{Label: label, Slider: sr})
	return sr
}

// Len returns the number of controls.
func (pn *Panel) Len() int {
	return pn.controls.Len()
}

// Labels returns the control labels in order.
func (pn *Panel) Labels() []string {
	return pn.controls.Keys()
}

// Control returns the control with the given label.
func (pn *Panel) Control(label string) (*Control, error) {
	ct, ok := pn.controls.ValueByKeyTry(label)
	if !ok {
		return nil, fmt.Errorf("control %q not found in panel %q", label, pn.Title)
	}
	return ct, nil
}

// Get returns the value of the labeled control.
func (pn *Panel) Get(label string) (any, error) {
	ct, err := pn.Control(label)
	if err != nil {
		return nil, err
	}
	return ct.Get(), nil
}

// Set sets the value of the labeled control.
func (pn *Panel) Set(label string, value any) error {
	ct, err := pn.Control(label)
	if err != nil {
		return err
	}
	if err := ct.Set(value); err != nil {
		return err
	}
	if pn.OnChange != nil {
		pn.OnChange(label)
	}
	return nil
}

// Apply sets each labeled value, in panel order. Every value is tried;
// the errors are joined. Labels not in the panel are errors.
func (pn *Panel) Apply(values map[string]any) error {
	var errs []error
	for _, label := range pn.controls.Keys() {
		if v, ok := values[label]; ok {
			errs = append(errs, pn.Set(label, v))
		}
	}
	for label := range values {
		if _, ok := pn.controls.ValueByKeyTry(label); !ok {
			errs = append(errs, fmt.Errorf("control %q not found in panel %q", label, pn.Title))
		}
	}
	return errors.Join(errs...)
}

// Snapshot returns the state of all controls, in order.
func (pn *Panel) Snapshot() []State {
	sts := make([]State, 0, pn.controls.Len())
	for _, ct := range pn.controls.Values() {
		sts = append(sts, ct.State())
	}
	return sts
}

// Values returns the current values by label.
func (pn *Panel) Values() map[string]any {
	vals := make(map[string]any, pn.controls.Len())
	for _, ct := range pn.controls.Values() {
		vals[ct.Label] = ct.Get()
	}
	return vals
}

// MarshalJSON encodes the panel title and control states.
func (pn *Panel) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Title    string  `json:"title"`
		Controls []State `json:"controls"`
	}{pn.Title, pn.Snapshot()})
}
