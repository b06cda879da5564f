package content

import (
	"math"
	"testing"

	"github.com/georgepadayatti/pdfgen/pdf/generic"
)

func opStrings(ops []Operator) []string {
	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = op.String()
	}
	return out
}

func assertOps(t *testing.T, got []Operator, expected []string) {
	t.Helper()
	strs := opStrings(got)
	if len(strs) != len(expected) {
		t.Fatalf("Expected %d operators %v, got %d %v", len(expected), expected, len(strs), strs)
	}
	for i := range expected {
		if strs[i] != expected[i] {
			t.Errorf("ops[%d] = %q, expected %q", i, strs[i], expected[i])
		}
	}
}

func TestDrawRectangleDefaults(t *testing.T) {
	ops := DrawRectangle(DefaultRectangleOptions())
	assertOps(t, ops, []string{
		"q",
		"0 0 0 rg",
		"0 0 0 RG",
		"15 w",
		"0 0 150 100 re",
		"h",
		"Q",
	})
}

func TestDrawRectanglePaintPolicy(t *testing.T) {
	tests := []struct {
		name   string
		fill   *Color
		stroke *Color
		paint  string
	}{
		{"both", RGB(1, 0, 0), RGB(0, 0, 1), "B"},
		{"fill only", RGB(1, 0, 0), nil, "f"},
		{"stroke only", nil, RGB(0, 0, 1), "S"},
		{"neither", nil, nil, "h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultRectangleOptions()
			opts.Color = tt.fill
			opts.BorderColor = tt.stroke
			ops := opStrings(DrawRectangle(opts))
			if ops[5] != tt.paint {
				t.Errorf("Expected paint %q, got %q", tt.paint, ops[5])
			}
		})
	}

	opts := RectangleOptions{X: 10, Y: 20, Width: 30, Height: 40, BorderWidth: 2, Color: RGB(1, 0, 0), BorderColor: RGB(0, 0, 1)}
	assertOps(t, DrawRectangle(opts), []string{
		"q",
		"1 0 0 rg",
		"0 0 1 RG",
		"2 w",
		"10 20 30 40 re",
		"B",
		"Q",
	})
}

func TestDrawText(t *testing.T) {
	opts := DefaultTextOptions()
	opts.X, opts.Y, opts.Size = 50, 700, 12
	assertOps(t, DrawText(generic.NewLiteralString("Hello"), opts), []string{
		"q",
		"BT",
		"/F1 12 Tf",
		"50 700 Td",
		"(Hello) Tj",
		"ET",
		"Q",
	})

	opts.Color = RGB(0, 0.5, 0)
	ops := opStrings(DrawText(generic.NewLiteralString("Hello"), opts))
	if ops[2] != "0 0.5 0 rg" {
		t.Errorf("Expected fill color after BT, got %q", ops[2])
	}
}

func TestDrawLinesOfText(t *testing.T) {
	opts := TextOptions{Font: "F2", Size: 10, LineHeight: 14, X: 72, Y: 720}
	lines := []generic.PdfObject{
		generic.NewLiteralString("one"),
		generic.NewLiteralString("two"),
		generic.NewLiteralString("three"),
	}
	assertOps(t, DrawLinesOfText(lines, opts), []string{
		"q",
		"BT",
		"/F2 10 Tf",
		"72 720 Td",
		"14 TL",
		"(one) Tj",
		"(two) '",
		"(three) '",
		"ET",
		"Q",
	})

	if got := (TextOptions{Size: 10}).Leading(); math.Abs(got-12) > 1e-9 {
		t.Errorf("Expected default leading 12, got %f", got)
	}
}

func TestDrawImage(t *testing.T) {
	assertOps(t, DrawImage("Im1", ImageOptions{X: 10, Y: 20, Width: 200, Height: 100}), []string{
		"q",
		"200 0 0 100 10 20 cm",
		"/Im1 Do",
		"Q",
	})
}

func TestDrawLine(t *testing.T) {
	opts := DefaultLineOptions()
	opts.Start = [2]float64{0, 0}
	opts.End = [2]float64{100, 50}
	assertOps(t, DrawLine(opts), []string{
		"q",
		"0 0 0 RG",
		"1 w",
		"0 0 m",
		"100 50 l",
		"S",
		"Q",
	})
}

func TestDrawEllipse(t *testing.T) {
	opts := DefaultEllipseOptions()
	opts.X, opts.Y = 200, 300
	ops := DrawEllipse(opts)

	strs := opStrings(ops)
	if strs[4] != "100 300 m" {
		t.Errorf("Expected start at the left of the ellipse, got %q", strs[4])
	}
	curves := 0
	for _, op := range ops {
		if op.Keyword() == OpCurveTo {
			curves++
		}
	}
	if curves != 4 {
		t.Errorf("Expected 4 curves, got %d", curves)
	}

	last := ops[8].Operands()
	if last[4] != generic.IntegerObject(100) || last[5] != generic.IntegerObject(300) {
		t.Errorf("Last curve should close at the start point, got %v", strs[8])
	}
	if strs[9] != "h" {
		t.Errorf("Expected h without colors, got %q", strs[9])
	}

	opts.Color = Gray(0.5)
	if got := opStrings(DrawEllipse(opts))[9]; got != "f" {
		t.Errorf("Expected f with fill color, got %q", got)
	}
}

func TestBuilder(t *testing.T) {
	b := NewBuilder().
		SaveState().
		Translate(10, 20).
		Rotate(0).
		SetFillColor(1, 0, 0).
		Rectangle(0, 0, 50, 50).
		Fill().
		RestoreState()

	expected := "q\n1 0 0 1 10 20 cm\n1 0 0 1 0 0 cm\n1 0 0 rg\n0 0 50 50 re\nf\nQ\n"
	if got := string(b.Render()); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}

	cs := b.Build()
	if cs.Len() != 7 || cs.Length() != len(expected) {
		t.Errorf("Build produced %d operators, Length %d", cs.Len(), cs.Length())
	}

	b.Stroke()
	if cs.Len() != 7 {
		t.Error("Builder and built stream should not share operators")
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#FF8000")
	if err != nil {
		t.Fatalf("ParseHex failed: %v", err)
	}
	if c.R != 1 || c.G != 128.0/255.0 || c.B != 0 {
		t.Errorf("Unexpected color %+v", c)
	}
	if _, err := ParseHex("12345"); err == nil {
		t.Error("Expected error for short hex")
	}
	if _, err := ParseHex("zzzzzz"); err == nil {
		t.Error("Expected error for invalid hex")
	}
}
