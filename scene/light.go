// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"image/color"
)

// Light represents a light that illuminates a scene.
// Lights are nodes in the scene tree (so they have a [Pose]), and are
// also registered by name on the [Scene].
type Light interface {
	Node

	// AsLightBase returns the [LightBase] for this Light,
	// which provides the core functionality of a light.
	AsLightBase() *LightBase
}

// LightBase provides the core implementation of the [Light] interface.
type LightBase struct {
	NodeBase

	// Off turns the light off.
	Off bool

	// Color is the color of the light at full intensity.
	Color color.RGBA

	// Intensity multiplies the color.
	Intensity float32 `min:"0" max:"5" step:"0.01"`
}

func (lb *LightBase) AsLightBase() *LightBase {
	return lb
}

// ColorProperty returns the color property of the given name:
// "color" is the main light color.
func (lb *LightBase) ColorProperty(name string) (*color.RGBA, error) {
	if name == "color" {
		return &lb.Color, nil
	}
	return nil, fmt.Errorf("light %q has no color property %q", lb.Name, name)
}

func (lb *LightBase) init(name string, clr color.RGBA, intensity float32) {
	lb.Name = name
	lb.Color = clr
	lb.Intensity = intensity
	lb.Defaults()
}

/////////////////////////////////////////////////////////////////////////////
//  Light types

// AmbientLight provides diffuse uniform lighting.
type AmbientLight struct {
	LightBase
}

// NewAmbientLight adds an ambient light to the scene.
func NewAmbientLight(sc *Scene, name string, clr color.RGBA, intensity float32) *AmbientLight {
	lt := &AmbientLight{}
	lt.init(name, clr, intensity)
	sc.AddLight(lt)
	return lt
}

// DirLight is directional light, which is assumed to project light toward
// the origin based on its position, with no attenuation, like the Sun.
type DirLight struct {
	LightBase
}

// NewDirLight adds a directional light to the scene.
// By default it is located overhead and toward the default camera (0, 1, 1).
func NewDirLight(sc *Scene, name string, clr color.RGBA, intensity float32) *DirLight {
	lt := &DirLight{}
	lt.init(name, clr, intensity)
	lt.SetPos(0, 1, 1)
	sc.AddLight(lt)
	return lt
}

// PointLight is an omnidirectional light with a position.
// Its contribution fades to zero at Distance (if > 0).
type PointLight struct {
	LightBase

	// Distance is the range of the light; 0 means no limit.
	Distance float32

	// Decay is the exponent of the distance falloff.
	Decay float32
}

// NewPointLight adds a point light with the given range to the scene.
// By default it is located at 0,5,5.
func NewPointLight(sc *Scene, name string, clr color.RGBA, intensity, distance float32) *PointLight {
	lt := &PointLight{}
	lt.init(name, clr, intensity)
	lt.Distance = distance
	lt.Decay = 2
	lt.SetPos(0, 5, 5)
	sc.AddLight(lt)
	return lt
}

// HemisphereLight lights from above with the sky Color and from below
// with GroundColor, blending by surface orientation.
type HemisphereLight struct {
	LightBase

	// GroundColor is the color of light coming from below.
	GroundColor color.RGBA
}

// NewHemisphereLight adds a hemisphere light to the scene.
// By default it is located straight up at 0,1,0.
func NewHemisphereLight(sc *Scene, name string, sky, ground color.RGBA, intensity float32) *HemisphereLight {
	lt := &HemisphereLight{}
	lt.init(name, sky, intensity)
	lt.GroundColor = ground
	lt.SetPos(0, 1, 0)
	sc.AddLight(lt)
	return lt
}

// ColorProperty adds "groundColor" to the [LightBase] properties.
func (lt *HemisphereLight) ColorProperty(name string) (*color.RGBA, error) {
	if name == "groundColor" {
		return &lt.GroundColor, nil
	}
	return lt.LightBase.ColorProperty(name)
}

/////////////////////////////////////////////////////////////////////////
//  Scene code

// AddLight adds the given light as a child of the scene and
// registers it by name.
func (sc *Scene) AddLight(lt Light) {
	AddChild(sc, lt)
	sc.Lights.Add(lt.AsLightBase().Name, lt)
}

// LightByName looks for light by name, returning error if not found.
func (sc *Scene) LightByName(name string) (Light, error) {
	lt, ok := sc.Lights.ValueByKeyTry(name)
	if ok {
		return lt, nil
	}
	return nil, fmt.Errorf("Light named: %v not found in Scene: %v", name, sc.Name)
}

// Hex returns the opaque color for a 0xRRGGBB value.
func Hex(v uint32) color.RGBA {
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}
}
