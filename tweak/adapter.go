// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tweak

import (
	"fmt"
	"image/color"
	"strings"

	"cogentcore.org/core/colors"
)

// ColorProperties is implemented by values with named color fields,
// such as the lights in a scene.
type ColorProperties interface {
	ColorProperty(name string) (*color.RGBA, error)
}

// ColorAdapter gets and sets a named color property as a hex string,
// the form used by color pickers.
type ColorAdapter struct {

	// Name is the property name.
	Name string

	clr *color.RGBA
}

// NewColorAdapter returns an adapter for the named color property of
// the target, or an error if there is no such property.
func NewColorAdapter(target ColorProperties, name string) (*ColorAdapter, error) {
	clr, err := target.ColorProperty(name)
	if err != nil {
		return nil, err
	}
	return &ColorAdapter{Name: name, clr: clr}, nil
}

// Get returns the color as lowercase "#rrggbb".
func (ca *ColorAdapter) Get() string {
	return strings.ToLower(colors.AsHex(*ca.clr)[:7])
}

// Set sets the color from a "#rgb" or "#rrggbb" string (the # is
// optional, case is ignored). The alpha is left unchanged.
// On error the color is not modified.
func (ca *ColorAdapter) Set(hex string) error {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) != 3 && len(h) != 6 {
		return fmt.Errorf("color %q: need 3 or 6 hex digits", hex)
	}
	for _, r := range h {
		if !isHexDigit(r) {
			return fmt.Errorf("color %q: invalid hex digit %q", hex, r)
		}
	}
	c, err := colors.FromHex(h)
	if err != nil {
		return err
	}
	c.A = ca.clr.A
	*ca.clr = c
	return nil
}

func isHexDigit(r rune) bool {
	return ('0' <= r && r <= '9') || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}
