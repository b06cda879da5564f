// Package fonts provides the font metrics used to embed fonts: the
// Standard-14 metrics table and a TrueType collaborator.
package fonts

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Common errors
var (
	ErrInvalidFont  = errors.New("invalid font data")
	ErrFontNotFound = errors.New("font not found")
)

// FontType represents the subtype of a PDF font dictionary.
type FontType string

const (
	FontTypeType1    FontType = "Type1"
	FontTypeTrueType FontType = "TrueType"
)

// Simple fonts address the WinAnsi code range.
const (
	FirstChar = 32
	LastChar  = 255
)

// Flags are the font descriptor flags.
type Flags struct {
	FixedPitch  bool
	Serif       bool
	Symbolic    bool
	Script      bool
	Nonsymbolic bool
	Italic      bool
	AllCap      bool
	SmallCap    bool
	ForceBold   bool
}

// DefaultFlags returns the flags used when a caller supplies none.
func DefaultFlags() Flags {
	return Flags{Nonsymbolic: true}
}

// Value returns the /Flags integer.
func (f Flags) Value() int {
	bits := []struct {
		set bool
		bit int
	}{
		{f.FixedPitch, 1 << 0},
		{f.Serif, 1 << 1},
		{f.Symbolic, 1 << 2},
		{f.Script, 1 << 3},
		{f.Nonsymbolic, 1 << 5},
		{f.Italic, 1 << 6},
		{f.AllCap, 1 << 16},
		{f.SmallCap, 1 << 17},
		{f.ForceBold, 1 << 18},
	}
	v := 0
	for _, b := range bits {
		if b.set {
			v |= b.bit
		}
	}
	return v
}

// Metrics holds font metrics scaled to 1000-unit glyph space.
type Metrics struct {
	// Name is the PostScript name used as /BaseFont.
	Name string
	// UnitsPerEm of the source font; 1000 for Standard-14 fonts.
	UnitsPerEm int

	Ascent      float64
	Descent     float64 // negative below the baseline
	CapHeight   float64
	XHeight     float64
	ItalicAngle float64
	StemV       float64
	BBox        [4]float64

	// Widths are advance widths by rune. Runes without an entry use
	// DefaultWidth.
	Widths       map[rune]float64
	DefaultWidth float64
}

// WidthOf returns the advance width of r in glyph space.
func (m *Metrics) WidthOf(r rune) float64 {
	if w, ok := m.Widths[r]; ok {
		return w
	}
	return m.DefaultWidth
}

// WidthOfTextAtSize returns the width of s in points at the given size.
func (m *Metrics) WidthOfTextAtSize(s string, size float64) float64 {
	var width float64
	for _, r := range s {
		width += m.WidthOf(r)
	}
	return width * size / 1000
}

// HeightAtSize returns the ascent-to-descent height in points.
func (m *Metrics) HeightAtSize(size float64) float64 {
	return (m.Ascent - m.Descent) * size / 1000
}

// CodeWidths returns the /Widths array values for FirstChar through
// LastChar.
func (m *Metrics) CodeWidths() []float64 {
	widths := make([]float64, 0, LastChar-FirstChar+1)
	for code := FirstChar; code <= LastChar; code++ {
		widths = append(widths, m.WidthOf(WinAnsiRune(byte(code))))
	}
	return widths
}

// EncodeWinAnsi encodes s in WinAnsiEncoding (Windows-1252). Runes with no
// code are written as '?'.
func EncodeWinAnsi(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r == utf8.RuneError {
			out = append(out, '?')
			continue
		}
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return out
}

// WinAnsiRune returns the rune a WinAnsiEncoding code stands for.
func WinAnsiRune(code byte) rune {
	return charmap.Windows1252.DecodeByte(code)
}
