package types

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/chewxy/math32"
	"golang.org/x/image/colornames"
)

// Common linear-light colors.
var (
	Black = Vec3{0, 0, 0}
	White = Vec3{1, 1, 1}
)

// Convert a linear-light channel value to its sRGB encoded value.
func LinearToSRGB(c float32) float32 {
	if c <= 0.0031308 {
		return 12.92 * c
	}
	return 1.055*math32.Pow(c, 1/2.4) - 0.055
}

// Convert an sRGB encoded channel value to linear light.
func SRGBToLinear(c float32) float32 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math32.Pow((c+0.055)/1.055, 2.4)
}

// Gamma encode all channels of a linear color.
func (v Vec3) LinearToSRGB() Vec3 {
	return Vec3{LinearToSRGB(v[0]), LinearToSRGB(v[1]), LinearToSRGB(v[2])}
}

// Gamma decode all channels of an sRGB color.
func (v Vec3) SRGBToLinear() Vec3 {
	return Vec3{SRGBToLinear(v[0]), SRGBToLinear(v[1]), SRGBToLinear(v[2])}
}

// Clamp all components to the [lo, hi] range.
func (v Vec3) Clamp(lo, hi float32) Vec3 {
	return Vec3{
		math32.Max(lo, math32.Min(hi, v[0])),
		math32.Max(lo, math32.Min(hi, v[1])),
		math32.Max(lo, math32.Min(hi, v[2])),
	}
}

// Convert a linear color to an 8-bit display color. If gammaCorrect is set
// the channels are sRGB encoded before quantization.
func ToRGBA(c Vec3, gammaCorrect bool) color.RGBA {
	if c.IsInvalid() {
		c = Black
	}
	if gammaCorrect {
		c = c.Clamp(0, 1).LinearToSRGB()
	}
	c = c.Clamp(0, 1)
	return color.RGBA{
		R: uint8(c[0]*255 + 0.5),
		G: uint8(c[1]*255 + 0.5),
		B: uint8(c[2]*255 + 0.5),
		A: 255,
	}
}

// Convert an sRGB encoded color to a linear-light color.
func FromRGBA(c color.Color) Vec3 {
	r, g, b, _ := c.RGBA()
	return Vec3{float32(r) / 0xffff, float32(g) / 0xffff, float32(b) / 0xffff}.SRGBToLinear()
}

// Lookup a named SVG 1.1 color (e.g. "lightcyan") and return it in linear light.
func ColorFromName(name string) (Vec3, error) {
	c, ok := colornames.Map[strings.ToLower(name)]
	if !ok {
		return Vec3{}, fmt.Errorf("types: unknown color name %q", name)
	}
	return FromRGBA(c), nil
}

// Like ColorFromName but panics if the color name is unknown. Intended for
// static scene definitions.
func MustColor(name string) Vec3 {
	c, err := ColorFromName(name)
	if err != nil {
		panic(err)
	}
	return c
}
