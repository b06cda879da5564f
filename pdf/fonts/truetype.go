package fonts

import (
	"fmt"
	"math"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// TrueType is a parsed TrueType or OpenType font program.
type TrueType struct {
	// Metrics covers the WinAnsi code range.
	Metrics *Metrics
	// Data is the unmodified font program, embedded as /FontFile2.
	Data []byte
	// FixedPitch is set from the post table.
	FixedPitch bool
}

// ParseTrueType extracts units-per-em, vertical metrics and the advance
// widths of every rune WinAnsiEncoding can address.
func ParseTrueType(data []byte) (*TrueType, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty font data", ErrInvalidFont)
	}
	font, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFont, err)
	}
	unitsPerEm := font.UnitsPerEm()
	if unitsPerEm == 0 {
		return nil, fmt.Errorf("%w: zero unitsPerEm", ErrInvalidFont)
	}

	buf := &sfnt.Buffer{}
	ppem := fixed.Int26_6(unitsPerEm << 6)

	name := "CustomTT"
	if ps, _ := font.Name(buf, sfnt.NameIDPostScript); ps != "" {
		name = ps
	}

	vm, err := font.Metrics(buf, ppem, xfont.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("%w: metrics: %v", ErrInvalidFont, err)
	}
	bounds, err := font.Bounds(buf, ppem, xfont.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("%w: bounds: %v", ErrInvalidFont, err)
	}

	m := &Metrics{
		Name:       name,
		UnitsPerEm: int(unitsPerEm),
		Ascent:     scaleFixed(vm.Ascent, unitsPerEm),
		Descent:    -scaleFixed(vm.Descent, unitsPerEm),
		CapHeight:  scaleFixed(vm.CapHeight, unitsPerEm),
		XHeight:    scaleFixed(vm.XHeight, unitsPerEm),
		StemV:      80,
		// sfnt's y axis points down.
		BBox: [4]float64{
			scaleFixed(bounds.Min.X, unitsPerEm),
			-scaleFixed(bounds.Max.Y, unitsPerEm),
			scaleFixed(bounds.Max.X, unitsPerEm),
			-scaleFixed(bounds.Min.Y, unitsPerEm),
		},
		Widths: make(map[rune]float64),
	}
	if m.CapHeight == 0 {
		m.CapHeight = m.Ascent
	}

	fixedPitch := false
	if post := font.PostTable(); post != nil {
		m.ItalicAngle = post.ItalicAngle
		fixedPitch = post.IsFixedPitch
	}

	// Glyph 0 is .notdef, drawn for unmapped runes.
	if adv, err := font.GlyphAdvance(buf, 0, ppem, xfont.HintingNone); err == nil {
		m.DefaultWidth = roundWidth(scaleFixed(adv, unitsPerEm))
	}
	for code := FirstChar; code <= LastChar; code++ {
		r := WinAnsiRune(byte(code))
		gid, err := font.GlyphIndex(buf, r)
		if err != nil || gid == 0 {
			continue
		}
		adv, err := font.GlyphAdvance(buf, gid, ppem, xfont.HintingNone)
		if err != nil {
			continue
		}
		m.Widths[r] = roundWidth(scaleFixed(adv, unitsPerEm))
	}

	return &TrueType{Metrics: m, Data: data, FixedPitch: fixedPitch}, nil
}

func scaleFixed(val fixed.Int26_6, unitsPerEm sfnt.Units) float64 {
	return float64(val) * 1000.0 / (64.0 * float64(unitsPerEm))
}

func roundWidth(w float64) float64 {
	return math.Round(w)
}
