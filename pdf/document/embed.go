package document

import (
	"github.com/georgepadayatti/pdfgen/pdf/filters"
	"github.com/georgepadayatti/pdfgen/pdf/fonts"
	"github.com/georgepadayatti/pdfgen/pdf/generic"
	"github.com/georgepadayatti/pdfgen/pdf/images"
)

// FontMetadata describes an embedded font for layout and text encoding.
// Metric values are in 1000-unit glyph space.
type FontMetadata struct {
	metrics  *fonts.Metrics
	encoding string
}

// Name returns the PostScript name.
func (f *FontMetadata) Name() string { return f.metrics.Name }

// UnitsPerEm returns the units per em of the source font.
func (f *FontMetadata) UnitsPerEm() int { return f.metrics.UnitsPerEm }

// Ascent returns the ascent.
func (f *FontMetadata) Ascent() float64 { return f.metrics.Ascent }

// Descent returns the descent, negative below the baseline.
func (f *FontMetadata) Descent() float64 { return f.metrics.Descent }

// Metrics returns the underlying metrics.
func (f *FontMetadata) Metrics() *fonts.Metrics { return f.metrics }

// WidthOf returns the advance width of r.
func (f *FontMetadata) WidthOf(r rune) float64 { return f.metrics.WidthOf(r) }

// WidthOfTextAtSize returns the width of text in points.
func (f *FontMetadata) WidthOfTextAtSize(text string, size float64) float64 {
	return f.metrics.WidthOfTextAtSize(text, size)
}

// HeightAtSize returns the ascent-to-descent height in points.
func (f *FontMetadata) HeightAtSize(size float64) float64 {
	return f.metrics.HeightAtSize(size)
}

// EncodeText encodes text as a string operand for this font.
func (f *FontMetadata) EncodeText(text string) generic.PdfObject {
	if f.encoding == "" {
		// Built-in encodings: pass single-byte codes through.
		raw := make([]byte, 0, len(text))
		for _, r := range text {
			if r > 0xFF {
				r = '?'
			}
			raw = append(raw, byte(r))
		}
		return &generic.StringObject{Value: raw}
	}
	return &generic.StringObject{Value: fonts.EncodeWinAnsi(text)}
}

// ImageMetadata holds the pixel dimensions of an embedded image.
type ImageMetadata struct {
	Width  float64
	Height float64
}

// Scale returns the dimensions multiplied by factor.
func (m ImageMetadata) Scale(factor float64) ImageMetadata {
	return ImageMetadata{Width: m.Width * factor, Height: m.Height * factor}
}

const winAnsi = "WinAnsiEncoding"

// EmbedFont embeds a TrueType font program. With nil flags the descriptor
// is marked nonsymbolic. The returned reference is the font dictionary;
// the font program stream is registered alongside it.
func (d *Document) EmbedFont(data []byte, flags *fonts.Flags) (generic.Reference, *FontMetadata, error) {
	tt, err := fonts.ParseTrueType(data)
	if err != nil {
		return generic.Reference{}, nil, &generic.EmbeddingError{Resource: "truetype font", Cause: err}
	}
	if flags == nil {
		defaults := fonts.DefaultFlags()
		flags = &defaults
	}
	m := tt.Metrics

	program := tt.Data
	fileDict := generic.NewDictionary()
	fileDict.Set("Length1", generic.IntegerObject(len(tt.Data)))
	if d.compress {
		encoded, filterObj, err := filters.EncodeStream(tt.Data, "FlateDecode")
		if err != nil {
			return generic.Reference{}, nil, &generic.EmbeddingError{Resource: "truetype font", Cause: err}
		}
		program = encoded
		fileDict.Set("Filter", filterObj)
	}

	descriptor := generic.NewDictionary()
	descriptor.Set("Type", generic.NameObject("FontDescriptor"))
	descriptor.Set("FontName", generic.NameObject(m.Name))
	descriptor.Set("Flags", generic.IntegerObject(flags.Value()))
	descriptor.Set("FontBBox", generic.NumberArray(m.BBox[:]...))
	descriptor.Set("ItalicAngle", generic.Number(m.ItalicAngle))
	descriptor.Set("Ascent", generic.Number(m.Ascent))
	descriptor.Set("Descent", generic.Number(m.Descent))
	descriptor.Set("CapHeight", generic.Number(m.CapHeight))
	descriptor.Set("StemV", generic.Number(m.StemV))

	font := generic.NewDictionary()
	font.Set("Type", generic.NameObject("Font"))
	font.Set("Subtype", generic.NameObject(fonts.FontTypeTrueType))
	font.Set("BaseFont", generic.NameObject(m.Name))
	font.Set("FirstChar", generic.IntegerObject(fonts.FirstChar))
	font.Set("LastChar", generic.IntegerObject(fonts.LastChar))
	font.Set("Widths", generic.NumberArray(m.CodeWidths()...))
	font.Set("Encoding", generic.NameObject(winAnsi))
	font.Set("FontDescriptor", descriptor)

	// Nothing is registered until every object is built.
	descriptor.Set("FontFile2", d.index.Register(generic.NewStream(fileDict, program)))
	ref := d.index.Register(font)

	d.logger.Debug("font embedded",
		"font", m.Name,
		"ref", ref.String(),
		"bytes", len(tt.Data),
		"compressed", d.compress)
	return ref, &FontMetadata{metrics: m, encoding: winAnsi}, nil
}

// EmbedStandardFont references one of the Standard-14 fonts. No font
// program is embedded.
func (d *Document) EmbedStandardFont(name fonts.StandardFont) (generic.Reference, *FontMetadata, error) {
	m, err := fonts.StandardMetrics(name)
	if err != nil {
		return generic.Reference{}, nil, &generic.EmbeddingError{Resource: "standard font", Cause: err}
	}

	font := generic.NewDictionary()
	font.Set("Type", generic.NameObject("Font"))
	font.Set("Subtype", generic.NameObject(fonts.FontTypeType1))
	font.Set("BaseFont", generic.NameObject(m.Name))
	meta := &FontMetadata{metrics: m}
	if !name.UsesStandardEncoding() {
		font.Set("Encoding", generic.NameObject(winAnsi))
		meta.encoding = winAnsi
	}
	ref := d.index.Register(font)

	d.logger.Debug("standard font embedded", "font", m.Name, "ref", ref.String())
	return ref, meta, nil
}

func imageDictionary(img *images.Image) *generic.DictionaryObject {
	dict := generic.NewDictionary()
	dict.Set("Type", generic.NameObject("XObject"))
	dict.Set("Subtype", generic.NameObject("Image"))
	dict.Set("Width", generic.IntegerObject(img.Width))
	dict.Set("Height", generic.IntegerObject(img.Height))
	dict.Set("ColorSpace", generic.NameObject(img.ColorSpace))
	dict.Set("BitsPerComponent", generic.IntegerObject(img.BitsPerComponent))
	return dict
}

// EmbedJPG embeds a JPEG as a DCTDecode image XObject. The compressed data
// is stored unchanged.
func (d *Document) EmbedJPG(data []byte) (generic.Reference, ImageMetadata, error) {
	img, err := images.DecodeJPEG(data)
	if err != nil {
		return generic.Reference{}, ImageMetadata{}, &generic.EmbeddingError{Resource: "jpeg image", Cause: err}
	}

	dict := imageDictionary(img)
	dict.Set("Filter", generic.NameObject("DCTDecode"))
	if img.InvertedCMYK {
		dict.Set("Decode", generic.NumberArray(1, 0, 1, 0, 1, 0, 1, 0))
	}
	ref := d.index.Register(generic.NewStream(dict, img.Data))

	d.logger.Debug("jpeg embedded",
		"ref", ref.String(),
		"width", img.Width,
		"height", img.Height,
		"colorspace", string(img.ColorSpace))
	return ref, ImageMetadata{Width: float64(img.Width), Height: float64(img.Height)}, nil
}

// EmbedPNG embeds a PNG as a FlateDecode image XObject. An alpha channel
// becomes a grayscale soft mask.
func (d *Document) EmbedPNG(data []byte) (generic.Reference, ImageMetadata, error) {
	img, err := images.DecodePNG(data)
	if err != nil {
		return generic.Reference{}, ImageMetadata{}, &generic.EmbeddingError{Resource: "png image", Cause: err}
	}

	samples, filterObj, err := filters.EncodeStream(img.Data, "FlateDecode")
	if err != nil {
		return generic.Reference{}, ImageMetadata{}, &generic.EmbeddingError{Resource: "png image", Cause: err}
	}
	dict := imageDictionary(img)
	dict.Set("Filter", filterObj)

	var mask *generic.StreamObject
	if img.HasAlpha() {
		alpha, alphaFilter, err := filters.EncodeStream(img.Alpha, "FlateDecode")
		if err != nil {
			return generic.Reference{}, ImageMetadata{}, &generic.EmbeddingError{Resource: "png alpha", Cause: err}
		}
		maskDict := imageDictionary(&images.Image{
			Width:            img.Width,
			Height:           img.Height,
			ColorSpace:       images.ColorSpaceGray,
			BitsPerComponent: 8,
		})
		maskDict.Set("Filter", alphaFilter)
		mask = generic.NewStream(maskDict, alpha)
	}

	if mask != nil {
		dict.Set("SMask", d.index.Register(mask))
	}
	ref := d.index.Register(generic.NewStream(dict, samples))

	d.logger.Debug("png embedded",
		"ref", ref.String(),
		"width", img.Width,
		"height", img.Height,
		"alpha", mask != nil)
	return ref, ImageMetadata{Width: float64(img.Width), Height: float64(img.Height)}, nil
}
