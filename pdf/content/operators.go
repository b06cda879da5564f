// Package content provides PDF content stream operators, content streams
// and drawing helpers.
package content

import (
	"bytes"
	"fmt"
	"io"

	"github.com/georgepadayatti/pdfgen/pdf/generic"
)

// Operator keywords.
const (
	// Graphics state operators
	OpSaveState     = "q"
	OpRestoreState  = "Q"
	OpSetCTM        = "cm"
	OpSetLineWidth  = "w"
	OpSetLineCap    = "J"
	OpSetLineJoin   = "j"
	OpSetMiterLimit = "M"
	OpSetDash       = "d"
	OpSetIntent     = "ri"
	OpSetFlatness   = "i"
	OpSetGState     = "gs"

	// Path construction operators
	OpMoveTo    = "m"
	OpLineTo    = "l"
	OpCurveTo   = "c"
	OpCurveToV  = "v"
	OpCurveToY  = "y"
	OpClosePath = "h"
	OpRectangle = "re"

	// Path painting operators
	OpStroke                    = "S"
	OpCloseAndStroke            = "s"
	OpFill                      = "f"
	OpFillCompat                = "F"
	OpFillEvenOdd               = "f*"
	OpFillAndStroke             = "B"
	OpFillAndStrokeEvenOdd      = "B*"
	OpCloseFillAndStroke        = "b"
	OpCloseFillAndStrokeEvenOdd = "b*"
	OpEndPath                   = "n"

	// Clipping operators
	OpClip        = "W"
	OpClipEvenOdd = "W*"

	// Text object operators
	OpBeginText = "BT"
	OpEndText   = "ET"

	// Text state operators
	OpSetCharSpacing = "Tc"
	OpSetWordSpacing = "Tw"
	OpSetHScale      = "Tz"
	OpSetLeading     = "TL"
	OpSetFont        = "Tf"
	OpSetRenderMode  = "Tr"
	OpSetTextRise    = "Ts"

	// Text positioning operators
	OpTextMove      = "Td"
	OpTextMoveSet   = "TD"
	OpSetTextMatrix = "Tm"
	OpTextNextLine  = "T*"

	// Text showing operators
	OpShowText      = "Tj"
	OpShowTextArray = "TJ"
	OpMoveShowText  = "'"
	OpMoveSetShow   = "\""

	// Color operators
	OpSetStrokeColorSpace = "CS"
	OpSetFillColorSpace   = "cs"
	OpSetStrokeColor      = "SC"
	OpSetStrokeColorN     = "SCN"
	OpSetFillColor        = "sc"
	OpSetFillColorN       = "scn"
	OpSetStrokeGray       = "G"
	OpSetFillGray         = "g"
	OpSetStrokeRGB        = "RG"
	OpSetFillRGB          = "rg"
	OpSetStrokeCMYK       = "K"
	OpSetFillCMYK         = "k"

	// XObject and shading operators
	OpPaintXObject = "Do"
	OpPaintShading = "sh"

	// Marked content operators
	OpMarkPoint              = "MP"
	OpMarkPointDict          = "DP"
	OpBeginMarkedContent     = "BMC"
	OpBeginMarkedContentDict = "BDC"
	OpEndMarkedContent       = "EMC"
)

// Operand signatures, one letter per operand:
//
//	n number, N name, s string, a array, d dictionary or name, * anything
//
// A trailing '+' repeats the preceding letter one or more times.
var signatures = map[string]string{
	OpSaveState:     "",
	OpRestoreState:  "",
	OpSetCTM:        "nnnnnn",
	OpSetLineWidth:  "n",
	OpSetLineCap:    "n",
	OpSetLineJoin:   "n",
	OpSetMiterLimit: "n",
	OpSetDash:       "an",
	OpSetIntent:     "N",
	OpSetFlatness:   "n",
	OpSetGState:     "N",

	OpMoveTo:    "nn",
	OpLineTo:    "nn",
	OpCurveTo:   "nnnnnn",
	OpCurveToV:  "nnnn",
	OpCurveToY:  "nnnn",
	OpClosePath: "",
	OpRectangle: "nnnn",

	OpStroke:                    "",
	OpCloseAndStroke:            "",
	OpFill:                      "",
	OpFillCompat:                "",
	OpFillEvenOdd:               "",
	OpFillAndStroke:             "",
	OpFillAndStrokeEvenOdd:      "",
	OpCloseFillAndStroke:        "",
	OpCloseFillAndStrokeEvenOdd: "",
	OpEndPath:                   "",

	OpClip:        "",
	OpClipEvenOdd: "",

	OpBeginText: "",
	OpEndText:   "",

	OpSetCharSpacing: "n",
	OpSetWordSpacing: "n",
	OpSetHScale:      "n",
	OpSetLeading:     "n",
	OpSetFont:        "Nn",
	OpSetRenderMode:  "n",
	OpSetTextRise:    "n",

	OpTextMove:      "nn",
	OpTextMoveSet:   "nn",
	OpSetTextMatrix: "nnnnnn",
	OpTextNextLine:  "",

	OpShowText:      "s",
	OpShowTextArray: "a",
	OpMoveShowText:  "s",
	OpMoveSetShow:   "nns",

	OpSetStrokeColorSpace: "N",
	OpSetFillColorSpace:   "N",
	OpSetStrokeColor:      "n+",
	OpSetStrokeColorN:     "*+",
	OpSetFillColor:        "n+",
	OpSetFillColorN:       "*+",
	OpSetStrokeGray:       "n",
	OpSetFillGray:         "n",
	OpSetStrokeRGB:        "nnn",
	OpSetFillRGB:          "nnn",
	OpSetStrokeCMYK:       "nnnn",
	OpSetFillCMYK:         "nnnn",

	OpPaintXObject: "N",
	OpPaintShading: "N",

	OpMarkPoint:              "N",
	OpMarkPointDict:          "Nd",
	OpBeginMarkedContent:     "N",
	OpBeginMarkedContentDict: "Nd",
	OpEndMarkedContent:       "",
}

// Operator is a single content stream instruction: a keyword and its
// operands. Operators are immutable once constructed.
type Operator struct {
	keyword  string
	operands []generic.PdfObject
	err      error
}

// NewOperator validates operands against the keyword's signature. Unknown
// keywords and mismatched operands fail with generic.ErrTypeValidation.
func NewOperator(keyword string, operands ...generic.PdfObject) (Operator, error) {
	sig, ok := signatures[keyword]
	if !ok {
		return Operator{}, &generic.TypeError{Expected: "content stream operator", Got: keyword}
	}
	if err := checkOperands(keyword, sig, operands); err != nil {
		return Operator{}, err
	}
	return newOperator(keyword, operands...), nil
}

func newOperator(keyword string, operands ...generic.PdfObject) Operator {
	return Operator{
		keyword:  keyword,
		operands: append([]generic.PdfObject(nil), operands...),
	}
}

// checkedOperator builds an operator from caller-supplied objects. On a
// signature mismatch the operator keeps the error and drops its operands;
// it is rejected wherever operators are collected.
func checkedOperator(keyword string, operands ...generic.PdfObject) Operator {
	if err := checkOperands(keyword, signatures[keyword], operands); err != nil {
		return Operator{keyword: keyword, err: err}
	}
	return newOperator(keyword, operands...)
}

func checkOperands(keyword, sig string, operands []generic.PdfObject) error {
	variadic := len(sig) > 0 && sig[len(sig)-1] == '+'
	if variadic {
		sig = sig[:len(sig)-1]
	}
	if variadic && len(operands) < len(sig) || !variadic && len(operands) != len(sig) {
		return fmt.Errorf("%w: %s takes %s operands, got %d", generic.ErrTypeValidation, keyword, arityString(sig, variadic), len(operands))
	}
	for i, operand := range operands {
		class := sig[min(i, len(sig)-1)]
		if operand == nil || !matchesClass(class, operand) {
			return &generic.TypeError{
				Expected: fmt.Sprintf("%s operand %d of %s", className(class), i, keyword),
				Got:      operand,
			}
		}
	}
	return nil
}

func arityString(sig string, variadic bool) string {
	if variadic {
		return fmt.Sprintf("at least %d", len(sig))
	}
	return fmt.Sprintf("%d", len(sig))
}

func matchesClass(class byte, obj generic.PdfObject) bool {
	switch class {
	case 'n':
		return obj.Kind() == generic.KindInteger || obj.Kind() == generic.KindReal
	case 'N':
		return obj.Kind() == generic.KindName
	case 's':
		return obj.Kind() == generic.KindString || obj.Kind() == generic.KindHexString
	case 'a':
		arr, ok := obj.(generic.ArrayObject)
		if !ok {
			return false
		}
		for _, item := range arr {
			if item == nil {
				return false
			}
		}
		return true
	case 'd':
		return obj.Kind() == generic.KindDictionary || obj.Kind() == generic.KindName
	}
	return true
}

func className(class byte) string {
	switch class {
	case 'n':
		return "numeric"
	case 'N':
		return "name"
	case 's':
		return "string"
	case 'a':
		return "array"
	case 'd':
		return "dictionary"
	}
	return "any"
}

// Keyword returns the operator keyword.
func (o Operator) Keyword() string { return o.keyword }

// Operands returns a copy of the operands.
func (o Operator) Operands() []generic.PdfObject {
	return append([]generic.PdfObject(nil), o.operands...)
}

// IsZero reports whether o is the zero Operator.
func (o Operator) IsZero() bool { return o.keyword == "" }

// Err returns the operand validation error of o, if any.
func (o Operator) Err() error { return o.err }

// Validate fails with generic.ErrTypeValidation for the zero Operator and
// for operators built from invalid operands.
func (o Operator) Validate() error {
	if o.IsZero() {
		return &generic.TypeError{Expected: "content stream operator", Got: o}
	}
	return o.err
}

func validateAll(ops []Operator) error {
	for _, op := range ops {
		if err := op.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ByteSize returns the encoded size, including the trailing newline.
func (o Operator) ByteSize() int {
	size := len(o.keyword) + 1
	for _, operand := range o.operands {
		size += operand.ByteSize() + 1
	}
	return size
}

// WriteTo writes "operand operand ... keyword\n".
func (o Operator) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, operand := range o.operands {
		n, err := operand.WriteTo(w)
		total += n
		if err != nil {
			return total, err
		}
		c, err := io.WriteString(w, " ")
		total += int64(c)
		if err != nil {
			return total, err
		}
	}
	c, err := io.WriteString(w, o.keyword+"\n")
	return total + int64(c), err
}

// String returns the encoded operator without the trailing newline.
func (o Operator) String() string {
	var buf bytes.Buffer
	o.WriteTo(&buf)
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}

func nums(values ...float64) []generic.PdfObject {
	out := make([]generic.PdfObject, len(values))
	for i, v := range values {
		out[i] = generic.Number(v)
	}
	return out
}

// LineCapStyle is the operand of the J operator.
type LineCapStyle int

const (
	LineCapButt LineCapStyle = iota
	LineCapRound
	LineCapProjectingSquare
)

// LineJoinStyle is the operand of the j operator.
type LineJoinStyle int

const (
	LineJoinMiter LineJoinStyle = iota
	LineJoinRound
	LineJoinBevel
)

// TextRenderingMode is the operand of the Tr operator.
type TextRenderingMode int

const (
	TextRenderFill TextRenderingMode = iota
	TextRenderStroke
	TextRenderFillStroke
	TextRenderInvisible
	TextRenderFillClip
	TextRenderStrokeClip
	TextRenderFillStrokeClip
	TextRenderClip
)

// SaveState returns q.
func SaveState() Operator { return newOperator(OpSaveState) }

// RestoreState returns Q.
func RestoreState() Operator { return newOperator(OpRestoreState) }

// ConcatMatrix returns cm.
func ConcatMatrix(a, b, c, d, e, f float64) Operator {
	return newOperator(OpSetCTM, nums(a, b, c, d, e, f)...)
}

// SetLineWidth returns w.
func SetLineWidth(width float64) Operator { return newOperator(OpSetLineWidth, nums(width)...) }

// SetLineCap returns J.
func SetLineCap(style LineCapStyle) Operator {
	return newOperator(OpSetLineCap, generic.IntegerObject(style))
}

// SetLineJoin returns j.
func SetLineJoin(style LineJoinStyle) Operator {
	return newOperator(OpSetLineJoin, generic.IntegerObject(style))
}

// SetMiterLimit returns M.
func SetMiterLimit(limit float64) Operator { return newOperator(OpSetMiterLimit, nums(limit)...) }

// SetDash returns d. An empty pattern selects a solid line.
func SetDash(pattern []float64, phase float64) Operator {
	return newOperator(OpSetDash, generic.NumberArray(pattern...), generic.Number(phase))
}

// SetRenderingIntent returns ri.
func SetRenderingIntent(intent string) Operator {
	return newOperator(OpSetIntent, generic.NameObject(intent))
}

// SetFlatness returns i.
func SetFlatness(tolerance float64) Operator { return newOperator(OpSetFlatness, nums(tolerance)...) }

// SetGraphicsState returns gs for a named ExtGState resource.
func SetGraphicsState(name string) Operator {
	return newOperator(OpSetGState, generic.NameObject(name))
}

// MoveTo returns m.
func MoveTo(x, y float64) Operator { return newOperator(OpMoveTo, nums(x, y)...) }

// LineTo returns l.
func LineTo(x, y float64) Operator { return newOperator(OpLineTo, nums(x, y)...) }

// CurveTo returns c.
func CurveTo(x1, y1, x2, y2, x3, y3 float64) Operator {
	return newOperator(OpCurveTo, nums(x1, y1, x2, y2, x3, y3)...)
}

// CurveToV returns v, whose first control point is the current point.
func CurveToV(x2, y2, x3, y3 float64) Operator {
	return newOperator(OpCurveToV, nums(x2, y2, x3, y3)...)
}

// CurveToY returns y, whose second control point is the end point.
func CurveToY(x1, y1, x3, y3 float64) Operator {
	return newOperator(OpCurveToY, nums(x1, y1, x3, y3)...)
}

// ClosePath returns h.
func ClosePath() Operator { return newOperator(OpClosePath) }

// Rectangle returns re.
func Rectangle(x, y, width, height float64) Operator {
	return newOperator(OpRectangle, nums(x, y, width, height)...)
}

// Stroke returns S.
func Stroke() Operator { return newOperator(OpStroke) }

// CloseAndStroke returns s.
func CloseAndStroke() Operator { return newOperator(OpCloseAndStroke) }

// Fill returns f.
func Fill() Operator { return newOperator(OpFill) }

// FillCompat returns F, the obsolete synonym of f.
func FillCompat() Operator { return newOperator(OpFillCompat) }

// FillEvenOdd returns f*.
func FillEvenOdd() Operator { return newOperator(OpFillEvenOdd) }

// FillAndStroke returns B.
func FillAndStroke() Operator { return newOperator(OpFillAndStroke) }

// FillAndStrokeEvenOdd returns B*.
func FillAndStrokeEvenOdd() Operator { return newOperator(OpFillAndStrokeEvenOdd) }

// CloseFillAndStroke returns b.
func CloseFillAndStroke() Operator { return newOperator(OpCloseFillAndStroke) }

// CloseFillAndStrokeEvenOdd returns b*.
func CloseFillAndStrokeEvenOdd() Operator { return newOperator(OpCloseFillAndStrokeEvenOdd) }

// EndPath returns n.
func EndPath() Operator { return newOperator(OpEndPath) }

// Clip returns W, or W* when evenOdd is set.
func Clip(evenOdd bool) Operator {
	if evenOdd {
		return newOperator(OpClipEvenOdd)
	}
	return newOperator(OpClip)
}

// BeginText returns BT.
func BeginText() Operator { return newOperator(OpBeginText) }

// EndText returns ET.
func EndText() Operator { return newOperator(OpEndText) }

// SetCharacterSpacing returns Tc.
func SetCharacterSpacing(spacing float64) Operator {
	return newOperator(OpSetCharSpacing, nums(spacing)...)
}

// SetWordSpacing returns Tw.
func SetWordSpacing(spacing float64) Operator {
	return newOperator(OpSetWordSpacing, nums(spacing)...)
}

// SetHorizontalScale returns Tz. scale is a percentage.
func SetHorizontalScale(scale float64) Operator {
	return newOperator(OpSetHScale, nums(scale)...)
}

// SetLeading returns TL.
func SetLeading(leading float64) Operator { return newOperator(OpSetLeading, nums(leading)...) }

// SetFont returns Tf for a font resource name.
func SetFont(name string, size float64) Operator {
	return newOperator(OpSetFont, generic.NameObject(name), generic.Number(size))
}

// SetTextRenderingMode returns Tr.
func SetTextRenderingMode(mode TextRenderingMode) Operator {
	return newOperator(OpSetRenderMode, generic.IntegerObject(mode))
}

// SetTextRise returns Ts.
func SetTextRise(rise float64) Operator { return newOperator(OpSetTextRise, nums(rise)...) }

// MoveText returns Td.
func MoveText(tx, ty float64) Operator { return newOperator(OpTextMove, nums(tx, ty)...) }

// MoveTextSetLeading returns TD.
func MoveTextSetLeading(tx, ty float64) Operator {
	return newOperator(OpTextMoveSet, nums(tx, ty)...)
}

// SetTextMatrix returns Tm.
func SetTextMatrix(a, b, c, d, e, f float64) Operator {
	return newOperator(OpSetTextMatrix, nums(a, b, c, d, e, f)...)
}

// NextLine returns T*.
func NextLine() Operator { return newOperator(OpTextNextLine) }

// ShowText returns Tj. text is a literal or hex string, usually produced
// by a font's EncodeText.
func ShowText(text generic.PdfObject) Operator { return checkedOperator(OpShowText, text) }

// ShowTextArray returns TJ.
func ShowTextArray(items generic.ArrayObject) Operator {
	return checkedOperator(OpShowTextArray, items)
}

// MoveAndShowText returns '.
func MoveAndShowText(text generic.PdfObject) Operator {
	return checkedOperator(OpMoveShowText, text)
}

// MoveSetSpacingShowText returns ".
func MoveSetSpacingShowText(wordSpacing, charSpacing float64, text generic.PdfObject) Operator {
	return checkedOperator(OpMoveSetShow, generic.Number(wordSpacing), generic.Number(charSpacing), text)
}

// SetStrokeColorSpace returns CS.
func SetStrokeColorSpace(name string) Operator {
	return newOperator(OpSetStrokeColorSpace, generic.NameObject(name))
}

// SetFillColorSpace returns cs.
func SetFillColorSpace(name string) Operator {
	return newOperator(OpSetFillColorSpace, generic.NameObject(name))
}

// SetStrokeColor returns SC.
func SetStrokeColor(components ...float64) Operator {
	return newOperator(OpSetStrokeColor, nums(components...)...)
}

// SetFillColor returns sc.
func SetFillColor(components ...float64) Operator {
	return newOperator(OpSetFillColor, nums(components...)...)
}

// SetStrokeColorN returns SCN. A non-empty pattern name follows the
// components.
func SetStrokeColorN(pattern string, components ...float64) Operator {
	return newOperator(OpSetStrokeColorN, colorN(pattern, components)...)
}

// SetFillColorN returns scn. A non-empty pattern name follows the
// components.
func SetFillColorN(pattern string, components ...float64) Operator {
	return newOperator(OpSetFillColorN, colorN(pattern, components)...)
}

func colorN(pattern string, components []float64) []generic.PdfObject {
	operands := nums(components...)
	if pattern != "" {
		operands = append(operands, generic.NameObject(pattern))
	}
	return operands
}

// SetStrokeGray returns G.
func SetStrokeGray(gray float64) Operator { return newOperator(OpSetStrokeGray, nums(gray)...) }

// SetFillGray returns g.
func SetFillGray(gray float64) Operator { return newOperator(OpSetFillGray, nums(gray)...) }

// SetStrokeRGB returns RG.
func SetStrokeRGB(r, g, b float64) Operator { return newOperator(OpSetStrokeRGB, nums(r, g, b)...) }

// SetFillRGB returns rg.
func SetFillRGB(r, g, b float64) Operator { return newOperator(OpSetFillRGB, nums(r, g, b)...) }

// SetStrokeCMYK returns K.
func SetStrokeCMYK(c, m, y, k float64) Operator {
	return newOperator(OpSetStrokeCMYK, nums(c, m, y, k)...)
}

// SetFillCMYK returns k.
func SetFillCMYK(c, m, y, k float64) Operator {
	return newOperator(OpSetFillCMYK, nums(c, m, y, k)...)
}

// PaintXObject returns Do for an XObject resource name.
func PaintXObject(name string) Operator {
	return newOperator(OpPaintXObject, generic.NameObject(name))
}

// PaintShading returns sh for a shading resource name.
func PaintShading(name string) Operator {
	return newOperator(OpPaintShading, generic.NameObject(name))
}

// MarkPoint returns MP.
func MarkPoint(tag string) Operator { return newOperator(OpMarkPoint, generic.NameObject(tag)) }

// MarkPointWithProperties returns DP. properties is an inline dictionary or
// a property list resource name.
func MarkPointWithProperties(tag string, properties generic.PdfObject) Operator {
	return checkedOperator(OpMarkPointDict, generic.NameObject(tag), properties)
}

// BeginMarkedContent returns BMC.
func BeginMarkedContent(tag string) Operator {
	return newOperator(OpBeginMarkedContent, generic.NameObject(tag))
}

// BeginMarkedContentWithProperties returns BDC.
func BeginMarkedContentWithProperties(tag string, properties generic.PdfObject) Operator {
	return checkedOperator(OpBeginMarkedContentDict, generic.NameObject(tag), properties)
}

// EndMarkedContent returns EMC.
func EndMarkedContent() Operator { return newOperator(OpEndMarkedContent) }

// Flatten collapses nested operator groupings into a single sequence.
// Accepted elements are Operator, []Operator, []any and *Builder; any other
// element, the zero Operator, or an operator built from invalid operands
// fails the whole call with generic.ErrTypeValidation.
func Flatten(items ...any) ([]Operator, error) {
	var out []Operator
	if err := flattenInto(&out, items); err != nil {
		return nil, err
	}
	return out, nil
}

func flattenInto(out *[]Operator, items []any) error {
	for _, item := range items {
		switch v := item.(type) {
		case Operator:
			if err := v.Validate(); err != nil {
				return err
			}
			*out = append(*out, v)
		case []Operator:
			if err := validateAll(v); err != nil {
				return err
			}
			*out = append(*out, v...)
		case []any:
			if err := flattenInto(out, v); err != nil {
				return err
			}
		case *Builder:
			if v == nil {
				return &generic.TypeError{Expected: "content stream operator", Got: item}
			}
			if err := validateAll(v.ops); err != nil {
				return err
			}
			*out = append(*out, v.ops...)
		default:
			return &generic.TypeError{Expected: "content stream operator", Got: item}
		}
	}
	return nil
}

// EncodeOperators concatenates the encodings of ops.
func EncodeOperators(ops []Operator) []byte {
	size := 0
	for _, op := range ops {
		size += op.ByteSize()
	}
	var buf bytes.Buffer
	buf.Grow(size)
	for _, op := range ops {
		op.WriteTo(&buf)
	}
	return buf.Bytes()
}
