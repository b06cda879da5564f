package content

import (
	"math"

	"github.com/georgepadayatti/pdfgen/pdf/generic"
)

// kappa places Bézier control points so four curves approximate an ellipse.
var kappa = 4 * (math.Sqrt2 - 1) / 3

// paintOperator picks the painting operator for the colors actually
// supplied. With neither color the path is only closed.
func paintOperator(fill, stroke *Color) Operator {
	switch {
	case fill != nil && stroke != nil:
		return FillAndStroke()
	case fill != nil:
		return Fill()
	case stroke != nil:
		return Stroke()
	default:
		return ClosePath()
	}
}

// RectangleOptions configures DrawRectangle. A nil color is not supplied.
type RectangleOptions struct {
	X, Y          float64
	Width, Height float64
	BorderWidth   float64
	Color         *Color
	BorderColor   *Color
}

// DefaultRectangleOptions returns a 150x100 rectangle at the origin with a
// 15 point border and no colors.
func DefaultRectangleOptions() RectangleOptions {
	return RectangleOptions{
		Width:       150,
		Height:      100,
		BorderWidth: 15,
	}
}

// DrawRectangle returns the operators drawing a rectangle inside its own
// graphics state. Fill and stroke colors are always set, black when not
// supplied.
func DrawRectangle(opts RectangleOptions) []Operator {
	return []Operator{
		SaveState(),
		opts.Color.fill(),
		opts.BorderColor.stroke(),
		SetLineWidth(opts.BorderWidth),
		Rectangle(opts.X, opts.Y, opts.Width, opts.Height),
		paintOperator(opts.Color, opts.BorderColor),
		RestoreState(),
	}
}

// TextOptions configures DrawText and DrawLinesOfText.
type TextOptions struct {
	X, Y float64
	// Font is the font resource name on the page.
	Font string
	Size float64
	// LineHeight is the leading between lines; zero uses 1.2 times Size.
	LineHeight float64
	Color      *Color
}

// DefaultTextOptions returns 24 point text in font F1 at the origin.
func DefaultTextOptions() TextOptions {
	return TextOptions{
		Font: "F1",
		Size: 24,
	}
}

// Leading returns LineHeight, or 1.2 times Size when unset.
func (o TextOptions) Leading() float64 {
	if o.LineHeight != 0 {
		return o.LineHeight
	}
	return o.Size * 1.2
}

func (o TextOptions) prologue() []Operator {
	ops := []Operator{SaveState(), BeginText()}
	if o.Color != nil {
		ops = append(ops, o.Color.fill())
	}
	return append(ops, SetFont(o.Font, o.Size), MoveText(o.X, o.Y))
}

// DrawText returns the operators showing one encoded string.
func DrawText(text generic.PdfObject, opts TextOptions) []Operator {
	ops := opts.prologue()
	return append(ops, ShowText(text), EndText(), RestoreState())
}

// DrawLinesOfText shows each encoded line below the previous one.
func DrawLinesOfText(lines []generic.PdfObject, opts TextOptions) []Operator {
	ops := opts.prologue()
	ops = append(ops, SetLeading(opts.Leading()))
	for i, line := range lines {
		if i == 0 {
			ops = append(ops, ShowText(line))
			continue
		}
		ops = append(ops, MoveAndShowText(line))
	}
	return append(ops, EndText(), RestoreState())
}

// ImageOptions places an image XObject.
type ImageOptions struct {
	X, Y          float64
	Width, Height float64
}

// DefaultImageOptions returns a 100x100 placement at the origin.
func DefaultImageOptions() ImageOptions {
	return ImageOptions{Width: 100, Height: 100}
}

// DrawImage returns the operators painting the named XObject scaled to the
// placement box.
func DrawImage(name string, opts ImageOptions) []Operator {
	return []Operator{
		SaveState(),
		ConcatMatrix(opts.Width, 0, 0, opts.Height, opts.X, opts.Y),
		PaintXObject(name),
		RestoreState(),
	}
}

// LineOptions configures DrawLine.
type LineOptions struct {
	Start, End [2]float64
	Thickness  float64
	Color      *Color
}

// DefaultLineOptions returns a 1 point black line of zero length.
func DefaultLineOptions() LineOptions {
	return LineOptions{Thickness: 1}
}

// DrawLine returns the operators stroking a single segment.
func DrawLine(opts LineOptions) []Operator {
	return []Operator{
		SaveState(),
		opts.Color.stroke(),
		SetLineWidth(opts.Thickness),
		MoveTo(opts.Start[0], opts.Start[1]),
		LineTo(opts.End[0], opts.End[1]),
		Stroke(),
		RestoreState(),
	}
}

// EllipseOptions configures DrawEllipse. X and Y are the center; XScale and
// YScale are the radii.
type EllipseOptions struct {
	X, Y           float64
	XScale, YScale float64
	BorderWidth    float64
	Color          *Color
	BorderColor    *Color
}

// DefaultEllipseOptions returns a circle of radius 100 at the origin.
func DefaultEllipseOptions() EllipseOptions {
	return EllipseOptions{
		XScale:      100,
		YScale:      100,
		BorderWidth: 15,
	}
}

// DrawEllipse returns the operators drawing an ellipse from four Bézier
// curves. Colors follow the same policy as DrawRectangle.
func DrawEllipse(opts EllipseOptions) []Operator {
	cx, cy := opts.X, opts.Y
	a, b := opts.XScale, opts.YScale
	ox, oy := a*kappa, b*kappa

	return []Operator{
		SaveState(),
		opts.Color.fill(),
		opts.BorderColor.stroke(),
		SetLineWidth(opts.BorderWidth),
		MoveTo(cx-a, cy),
		CurveTo(cx-a, cy+oy, cx-ox, cy+b, cx, cy+b),
		CurveTo(cx+ox, cy+b, cx+a, cy+oy, cx+a, cy),
		CurveTo(cx+a, cy-oy, cx+ox, cy-b, cx, cy-b),
		CurveTo(cx-ox, cy-b, cx-a, cy-oy, cx-a, cy),
		paintOperator(opts.Color, opts.BorderColor),
		RestoreState(),
	}
}
