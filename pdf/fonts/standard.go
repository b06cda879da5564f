package fonts

import "fmt"

// StandardFont represents a PDF standard font name.
type StandardFont string

// Standard 14 fonts available in all PDF readers
const (
	Helvetica            StandardFont = "Helvetica"
	HelveticaBold        StandardFont = "Helvetica-Bold"
	HelveticaOblique     StandardFont = "Helvetica-Oblique"
	HelveticaBoldOblique StandardFont = "Helvetica-BoldOblique"
	Times                StandardFont = "Times-Roman"
	TimesBold            StandardFont = "Times-Bold"
	TimesItalic          StandardFont = "Times-Italic"
	TimesBoldItalic      StandardFont = "Times-BoldItalic"
	Courier              StandardFont = "Courier"
	CourierBold          StandardFont = "Courier-Bold"
	CourierOblique       StandardFont = "Courier-Oblique"
	CourierBoldOblique   StandardFont = "Courier-BoldOblique"
	Symbol               StandardFont = "Symbol"
	ZapfDingbats         StandardFont = "ZapfDingbats"
)

// IsStandardFont checks if a font name is a standard font.
func IsStandardFont(name string) bool {
	switch StandardFont(name) {
	case Helvetica, HelveticaBold, HelveticaOblique, HelveticaBoldOblique,
		Times, TimesBold, TimesItalic, TimesBoldItalic,
		Courier, CourierBold, CourierOblique, CourierBoldOblique,
		Symbol, ZapfDingbats:
		return true
	}
	return false
}

// UsesStandardEncoding reports whether the font ignores WinAnsiEncoding
// and keeps its built-in encoding.
func (s StandardFont) UsesStandardEncoding() bool {
	return s == Symbol || s == ZapfDingbats
}

// ASCII advance widths for codes 32 through 126, from the Adobe core AFM
// files (WinAnsi quotesingle and grave at 39 and 96).
var (
	helveticaASCII = [95]uint16{
		278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333, 278, 278,
		556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 278, 278, 584, 584, 584, 556,
		1015, 667, 667, 722, 722, 667, 611, 778, 722, 278, 500, 667, 556, 833, 722, 778,
		667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 278, 278, 278, 469, 556,
		333, 556, 556, 500, 556, 556, 278, 556, 556, 222, 222, 500, 222, 833, 556, 556,
		556, 556, 333, 500, 278, 556, 500, 722, 500, 500, 500, 334, 260, 334, 584,
	}
	helveticaBoldASCII = [95]uint16{
		278, 333, 474, 556, 556, 889, 722, 238, 333, 333, 389, 584, 278, 333, 278, 278,
		556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 333, 333, 584, 584, 584, 611,
		975, 722, 722, 722, 722, 667, 611, 778, 722, 278, 556, 722, 611, 833, 722, 778,
		667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 333, 278, 333, 584, 556,
		333, 556, 611, 556, 611, 556, 333, 611, 611, 278, 278, 556, 278, 889, 611, 611,
		611, 611, 389, 556, 333, 611, 556, 778, 556, 556, 500, 389, 280, 389, 584,
	}
	timesASCII = [95]uint16{
		250, 333, 408, 500, 500, 833, 778, 180, 333, 333, 500, 564, 250, 333, 250, 278,
		500, 500, 500, 500, 500, 500, 500, 500, 500, 500, 278, 278, 564, 564, 564, 444,
		921, 722, 667, 667, 722, 611, 556, 722, 722, 333, 389, 722, 611, 889, 722, 722,
		556, 722, 667, 556, 611, 722, 722, 944, 722, 722, 611, 333, 278, 333, 469, 500,
		333, 444, 500, 444, 500, 444, 333, 500, 500, 278, 278, 500, 278, 778, 500, 500,
		500, 500, 333, 389, 278, 500, 500, 722, 500, 500, 444, 480, 200, 480, 541,
	}
	timesBoldASCII = [95]uint16{
		250, 333, 555, 500, 500, 1000, 833, 278, 333, 333, 500, 570, 250, 333, 250, 278,
		500, 500, 500, 500, 500, 500, 500, 500, 500, 500, 333, 333, 570, 570, 570, 500,
		930, 722, 667, 722, 722, 667, 611, 778, 778, 389, 500, 778, 667, 944, 722, 778,
		611, 778, 722, 556, 667, 722, 722, 1000, 722, 722, 667, 333, 278, 333, 581, 500,
		333, 500, 556, 444, 556, 444, 333, 500, 556, 278, 333, 556, 278, 833, 556, 500,
		556, 556, 444, 389, 333, 556, 500, 722, 500, 500, 444, 394, 220, 394, 520,
	}
	timesItalicASCII = [95]uint16{
		250, 333, 420, 500, 500, 833, 778, 214, 333, 333, 500, 675, 250, 333, 250, 278,
		500, 500, 500, 500, 500, 500, 500, 500, 500, 500, 333, 333, 675, 675, 675, 500,
		920, 611, 611, 667, 722, 611, 611, 722, 722, 333, 444, 667, 556, 833, 667, 722,
		611, 722, 611, 500, 556, 722, 611, 833, 611, 556, 556, 389, 278, 389, 422, 500,
		333, 500, 500, 444, 500, 444, 278, 500, 500, 278, 278, 444, 278, 722, 500, 500,
		500, 500, 389, 389, 278, 500, 444, 667, 444, 444, 389, 400, 275, 400, 541,
	}
	timesBoldItalicASCII = [95]uint16{
		250, 389, 555, 500, 500, 833, 778, 278, 333, 333, 500, 570, 250, 333, 250, 278,
		500, 500, 500, 500, 500, 500, 500, 500, 500, 500, 333, 333, 570, 570, 570, 500,
		832, 667, 667, 667, 722, 667, 667, 722, 778, 389, 500, 667, 611, 889, 722, 722,
		611, 722, 667, 556, 611, 722, 667, 889, 667, 611, 611, 333, 278, 333, 570, 500,
		333, 500, 500, 444, 500, 444, 333, 500, 556, 278, 278, 500, 278, 778, 556, 500,
		500, 500, 389, 389, 278, 556, 444, 667, 500, 444, 389, 348, 220, 348, 570,
	}
)

type standardEntry struct {
	ascent, descent, capHeight, xHeight float64
	italicAngle, stemV                  float64
	bbox                                [4]float64
	ascii                               *[95]uint16
	// fixed is the width of every glyph of a monospaced font.
	fixed        float64
	defaultWidth float64
}

var standardTable = map[StandardFont]standardEntry{
	Helvetica:            {718, -207, 718, 523, 0, 88, [4]float64{-166, -225, 1000, 931}, &helveticaASCII, 0, 556},
	HelveticaOblique:     {718, -207, 718, 523, -12, 88, [4]float64{-170, -225, 1116, 931}, &helveticaASCII, 0, 556},
	HelveticaBold:        {718, -207, 718, 532, 0, 140, [4]float64{-170, -228, 1003, 962}, &helveticaBoldASCII, 0, 556},
	HelveticaBoldOblique: {718, -207, 718, 532, -12, 140, [4]float64{-174, -228, 1114, 962}, &helveticaBoldASCII, 0, 556},
	Times:                {683, -217, 662, 450, 0, 84, [4]float64{-168, -218, 1000, 898}, &timesASCII, 0, 500},
	TimesBold:            {683, -217, 676, 461, 0, 139, [4]float64{-168, -218, 1000, 935}, &timesBoldASCII, 0, 500},
	TimesItalic:          {683, -217, 653, 441, -15.5, 76, [4]float64{-169, -217, 1010, 883}, &timesItalicASCII, 0, 500},
	TimesBoldItalic:      {683, -217, 669, 462, -15, 121, [4]float64{-200, -218, 996, 921}, &timesBoldItalicASCII, 0, 500},
	Courier:              {629, -157, 562, 426, 0, 51, [4]float64{-23, -250, 715, 805}, nil, 600, 600},
	CourierOblique:       {629, -157, 562, 426, -12, 51, [4]float64{-27, -250, 849, 805}, nil, 600, 600},
	CourierBold:          {629, -157, 562, 439, 0, 106, [4]float64{-113, -250, 749, 801}, nil, 600, 600},
	CourierBoldOblique:   {629, -157, 562, 439, -12, 106, [4]float64{-57, -250, 869, 801}, nil, 600, 600},
	Symbol:               {1010, -293, 800, 500, 0, 85, [4]float64{-180, -293, 1090, 1010}, nil, 0, 500},
	ZapfDingbats:         {820, -143, 800, 500, 0, 90, [4]float64{-1, -143, 981, 820}, nil, 0, 788},
}

// StandardMetrics returns the bundled metrics of a Standard-14 font.
func StandardMetrics(name StandardFont) (*Metrics, error) {
	entry, ok := standardTable[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a standard font", ErrFontNotFound, name)
	}

	m := &Metrics{
		Name:         string(name),
		UnitsPerEm:   1000,
		Ascent:       entry.ascent,
		Descent:      entry.descent,
		CapHeight:    entry.capHeight,
		XHeight:      entry.xHeight,
		ItalicAngle:  entry.italicAngle,
		StemV:        entry.stemV,
		BBox:         entry.bbox,
		Widths:       make(map[rune]float64),
		DefaultWidth: entry.defaultWidth,
	}

	switch {
	case entry.fixed != 0:
		for code := FirstChar; code <= LastChar; code++ {
			m.Widths[WinAnsiRune(byte(code))] = entry.fixed
		}
	case entry.ascii != nil:
		for i, w := range entry.ascii {
			m.Widths[rune(FirstChar+i)] = float64(w)
		}
	default:
		// Symbolic fonts only carry a space width here.
		m.Widths[' '] = map[StandardFont]float64{Symbol: 250, ZapfDingbats: 278}[name]
	}
	return m, nil
}
