package content

import (
	"fmt"
	"strconv"
	"strings"
)

// Color represents an RGB color.
type Color struct {
	R, G, B float64 // 0.0 to 1.0
}

// Black returns black color.
func Black() *Color {
	return &Color{0, 0, 0}
}

// White returns white color.
func White() *Color {
	return &Color{1, 1, 1}
}

// Gray returns a gray color.
func Gray(level float64) *Color {
	return &Color{level, level, level}
}

// RGB creates a color from components in the 0.0 to 1.0 range.
func RGB(r, g, b float64) *Color {
	return &Color{R: r, G: g, B: b}
}

// RGB255 creates a color from 0-255 components.
func RGB255(r, g, b int) *Color {
	return &Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
}

// ParseHex parses "#RRGGBB" or "RRGGBB".
func ParseHex(s string) (*Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return nil, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return RGB255(int(v>>16&0xFF), int(v>>8&0xFF), int(v&0xFF)), nil
}

func (c *Color) fill() Operator {
	if c == nil {
		return SetFillRGB(0, 0, 0)
	}
	return SetFillRGB(c.R, c.G, c.B)
}

func (c *Color) stroke() Operator {
	if c == nil {
		return SetStrokeRGB(0, 0, 0)
	}
	return SetStrokeRGB(c.R, c.G, c.B)
}
