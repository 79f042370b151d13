package state

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor parses an sRGB hex color such as "#ff8800" into a linear
// RGBA with alpha 1.
func ParseColor(hex string) (RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return RGBA{}, fmt.Errorf("state: parse color %q: %w", hex, err)
	}
	r, g, b := c.LinearRgb()
	return RGBA{float32(r), float32(g), float32(b), 1}, nil
}

// MustParseColor is like ParseColor but panics on error.
func MustParseColor(hex string) RGBA {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the color channels as an sRGB "#rrggbb" string, ignoring alpha.
func (c RGBA) Hex() string {
	return colorful.LinearRgb(float64(c[0]), float64(c[1]), float64(c[2])).Clamped().Hex()
}
