package content

import (
	"math"

	"github.com/georgepadayatti/pdfgen/pdf/generic"
)

// Builder provides a fluent interface for collecting operators.
type Builder struct {
	ops []Operator
}

// NewBuilder creates a new builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends arbitrary operators.
func (b *Builder) Add(ops ...Operator) *Builder {
	b.ops = append(b.ops, ops...)
	return b
}

// SaveState saves the graphics state.
func (b *Builder) SaveState() *Builder {
	return b.Add(SaveState())
}

// RestoreState restores the graphics state.
func (b *Builder) RestoreState() *Builder {
	return b.Add(RestoreState())
}

// Transform applies a transformation matrix.
func (b *Builder) Transform(a, bb, c, d, e, f float64) *Builder {
	return b.Add(ConcatMatrix(a, bb, c, d, e, f))
}

// Translate moves the origin.
func (b *Builder) Translate(tx, ty float64) *Builder {
	return b.Transform(1, 0, 0, 1, tx, ty)
}

// Scale scales the coordinate system.
func (b *Builder) Scale(sx, sy float64) *Builder {
	return b.Transform(sx, 0, 0, sy, 0, 0)
}

// Rotate rotates the coordinate system by angle radians.
func (b *Builder) Rotate(angle float64) *Builder {
	sin, cos := math.Sincos(angle)
	return b.Transform(cos, sin, -sin, cos, 0, 0)
}

// MoveTo moves to a point.
func (b *Builder) MoveTo(x, y float64) *Builder {
	return b.Add(MoveTo(x, y))
}

// LineTo draws a line to a point.
func (b *Builder) LineTo(x, y float64) *Builder {
	return b.Add(LineTo(x, y))
}

// CurveTo appends a cubic Bézier segment.
func (b *Builder) CurveTo(x1, y1, x2, y2, x3, y3 float64) *Builder {
	return b.Add(CurveTo(x1, y1, x2, y2, x3, y3))
}

// Rectangle draws a rectangle.
func (b *Builder) Rectangle(x, y, width, height float64) *Builder {
	return b.Add(Rectangle(x, y, width, height))
}

// ClosePath closes the current path.
func (b *Builder) ClosePath() *Builder {
	return b.Add(ClosePath())
}

// Stroke strokes the path.
func (b *Builder) Stroke() *Builder {
	return b.Add(Stroke())
}

// Fill fills the path.
func (b *Builder) Fill() *Builder {
	return b.Add(Fill())
}

// FillAndStroke fills and strokes the path.
func (b *Builder) FillAndStroke() *Builder {
	return b.Add(FillAndStroke())
}

// Clip sets the clipping path.
func (b *Builder) Clip(evenOdd bool) *Builder {
	return b.Add(Clip(evenOdd))
}

// BeginText begins a text object.
func (b *Builder) BeginText() *Builder {
	return b.Add(BeginText())
}

// EndText ends a text object.
func (b *Builder) EndText() *Builder {
	return b.Add(EndText())
}

// SetFont sets the font and size.
func (b *Builder) SetFont(font string, size float64) *Builder {
	return b.Add(SetFont(font, size))
}

// TextPosition sets the text position.
func (b *Builder) TextPosition(x, y float64) *Builder {
	return b.Add(MoveText(x, y))
}

// ShowText shows an encoded string.
func (b *Builder) ShowText(text generic.PdfObject) *Builder {
	return b.Add(ShowText(text))
}

// SetStrokeColor sets the stroke color (RGB).
func (b *Builder) SetStrokeColor(r, g, bl float64) *Builder {
	return b.Add(SetStrokeRGB(r, g, bl))
}

// SetFillColor sets the fill color (RGB).
func (b *Builder) SetFillColor(r, g, bl float64) *Builder {
	return b.Add(SetFillRGB(r, g, bl))
}

// SetStrokeGray sets the stroke color (grayscale).
func (b *Builder) SetStrokeGray(gray float64) *Builder {
	return b.Add(SetStrokeGray(gray))
}

// SetFillGray sets the fill color (grayscale).
func (b *Builder) SetFillGray(gray float64) *Builder {
	return b.Add(SetFillGray(gray))
}

// SetLineWidth sets the line width.
func (b *Builder) SetLineWidth(width float64) *Builder {
	return b.Add(SetLineWidth(width))
}

// PaintXObject paints an XObject.
func (b *Builder) PaintXObject(name string) *Builder {
	return b.Add(PaintXObject(name))
}

// Operators returns a copy of the collected operators.
func (b *Builder) Operators() []Operator {
	return append([]Operator(nil), b.ops...)
}

// Build returns a new content stream holding the collected operators.
func (b *Builder) Build() *ContentStream {
	return NewContentStream(b.ops...)
}

// Render renders the collected operators to bytes.
func (b *Builder) Render() []byte {
	return EncodeOperators(b.ops)
}
