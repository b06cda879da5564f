package generic

import (
	"bytes"
	"math"
	"testing"
)

func render(t *testing.T, obj PdfObject) string {
	t.Helper()
	var buf bytes.Buffer
	n, err := obj.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if int(n) != buf.Len() {
		t.Errorf("WriteTo reported %d bytes, buffer holds %d", n, buf.Len())
	}
	if obj.ByteSize() != buf.Len() {
		t.Errorf("ByteSize %d does not match %d written bytes (%q)", obj.ByteSize(), buf.Len(), buf.String())
	}
	return buf.String()
}

func TestPrimitiveEncoding(t *testing.T) {
	tests := []struct {
		name     string
		obj      PdfObject
		expected string
	}{
		{"null", NullObject{}, "null"},
		{"true", BooleanObject(true), "true"},
		{"false", BooleanObject(false), "false"},
		{"zero", IntegerObject(0), "0"},
		{"positive int", IntegerObject(42), "42"},
		{"negative int", IntegerObject(-123), "-123"},
		{"real", RealObject(3.14159), "3.14159"},
		{"negative real", RealObject(-2.5), "-2.5"},
		{"negative zero", RealObject(math.Copysign(0, -1)), "0"},
		{"tiny real", RealObject(0.000001), "0.000001"},
		{"nan", RealObject(math.NaN()), "0"},
		{"name", NameObject("Type"), "/Type"},
		{"name with space", NameObject("A B"), "/A#20B"},
		{"name with delimiter", NameObject("a/b#c"), "/a#2Fb#23c"},
		{"name with high byte", NameObject("caf\xe9"), "/caf#E9"},
		{"literal", NewLiteralString("Hello World"), "(Hello World)"},
		{"literal escapes", NewLiteralString("a(b)c\\d\n"), "(a\\(b\\)c\\\\d\\n)"},
		{"literal octal", &StringObject{Value: []byte{0x01, 0xff}}, "(\\001\\377)"},
		{"hex", NewHexString([]byte{0xDE, 0xAD, 0xBE, 0xEF}), "<deadbeef>"},
		{"empty hex", NewHexString(nil), "<>"},
		{"reference", NewReference(10, 0), "10 0 R"},
		{"empty array", NewArray(), "[]"},
		{"array", NewArray(IntegerObject(1), IntegerObject(2), IntegerObject(3)), "[1 2 3]"},
		{"nested array", NewArray(NewArray(NameObject("X")), RealObject(0.5)), "[[/X] 0.5]"},
		{"empty dict", NewDictionary(), "<<\n>>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := render(t, tt.obj); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestNumber(t *testing.T) {
	if _, ok := Number(600).(IntegerObject); !ok {
		t.Errorf("Expected IntegerObject for 600, got %T", Number(600))
	}
	if _, ok := Number(0.25).(RealObject); !ok {
		t.Errorf("Expected RealObject for 0.25, got %T", Number(0.25))
	}
	if got := render(t, NumberArray(0, 0, 612, 792.5)); got != "[0 0 612 792.5]" {
		t.Errorf("Unexpected number array %q", got)
	}
}

func TestDictionaryPreservesInsertionOrder(t *testing.T) {
	dict := NewDictionary()
	dict.Set("Type", NameObject("Page"))
	dict.Set("MediaBox", NumberArray(0, 0, 600, 400))
	dict.Set("Count", IntegerObject(5))
	dict.Set("Alpha", BooleanObject(true))

	expected := "<<\n/Type /Page\n/MediaBox [0 0 600 400]\n/Count 5\n/Alpha true\n>>"
	if got := render(t, dict); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}

	// Overwriting keeps the original position.
	dict.Set("Type", NameObject("Pages"))
	keys := dict.Keys()
	if keys[0] != "Type" || keys[3] != "Alpha" {
		t.Errorf("Unexpected key order after overwrite: %v", keys)
	}

	dict.Delete("MediaBox")
	dict.Set("MediaBox", NumberArray(1))
	keys = dict.Keys()
	if keys[len(keys)-1] != "MediaBox" {
		t.Errorf("Re-added key should be last, got %v", keys)
	}

	dict.Set("Count", nil)
	if dict.Has("Count") {
		t.Error("Setting nil should remove the key")
	}
	if dict.Len() != 3 {
		t.Errorf("Expected length 3, got %d", dict.Len())
	}
}

func TestDictionaryAccessors(t *testing.T) {
	dict := NewDictionary()
	dict.Set("Type", NameObject("Page"))
	dict.Set("Count", IntegerObject(5))
	dict.Set("Kids", NewArray(NewReference(3, 0)))
	sub := NewDictionary()
	dict.Set("Resources", sub)

	if dict.GetName("Type") != "Page" {
		t.Errorf("Expected 'Page', got '%s'", dict.GetName("Type"))
	}
	if count, ok := dict.GetInt("Count"); !ok || count != 5 {
		t.Errorf("Expected 5, got %d", count)
	}
	if len(dict.GetArray("Kids")) != 1 {
		t.Error("GetArray failed")
	}
	if dict.GetDict("Resources") != sub {
		t.Error("GetDict should return the stored dictionary")
	}
	if dict.GetName("Count") != "" {
		t.Error("GetName on a non-name should return empty")
	}
}

func TestStreamLengthTracksPayload(t *testing.T) {
	dict := NewDictionary()
	dict.Set("Filter", NameObject("FlateDecode"))
	stream := NewStream(dict, []byte("Hello, World!"))

	expected := "<<\n/Filter /FlateDecode\n/Length 13\n>>\nstream\nHello, World!\nendstream"
	if got := render(t, stream); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}

	stream.Data = append(stream.Data, []byte(" And more bytes to cross a digit boundary......................................................................")...)
	if stream.Length() != len(stream.Data) {
		t.Errorf("Length %d does not follow payload %d", stream.Length(), len(stream.Data))
	}
	render(t, stream)

	stream.SetData(nil)
	if got := render(t, stream); got != "<<\n/Filter /FlateDecode\n/Length 0\n>>\nstream\n\nendstream" {
		t.Errorf("Unexpected empty stream %q", got)
	}
}

func TestIndirectObject(t *testing.T) {
	indirect := NewIndirectObject(5, 0, IntegerObject(42))
	if got := render(t, indirect); got != "5 0 obj\n42\nendobj\n" {
		t.Errorf("Unexpected indirect object %q", got)
	}
	if indirect.GetReference() != NewReference(5, 0) {
		t.Error("GetReference mismatch")
	}

	withStream := NewIndirectObject(12, 0, NewStream(nil, []byte("q Q")))
	render(t, withStream)
}

func TestTextString(t *testing.T) {
	ascii := NewTextString("Test")
	if s, ok := ascii.(*StringObject); !ok || s.Text() != "Test" {
		t.Errorf("Expected literal text string, got %T", ascii)
	}

	latin := NewTextString("café")
	if s, ok := latin.(*StringObject); !ok || !bytes.Equal(s.Value, []byte("caf\xe9")) {
		t.Errorf("Expected Latin-1 bytes, got %#v", latin)
	}

	unicode := NewTextString("Ωmega 😀")
	hexStr, ok := unicode.(*HexStringObject)
	if !ok {
		t.Fatalf("Expected hex string, got %T", unicode)
	}
	if !bytes.HasPrefix(hexStr.Value, []byte{0xFE, 0xFF}) {
		t.Error("Expected UTF-16BE byte order mark")
	}
	if hexStr.Text() != "Ωmega 😀" {
		t.Errorf("Round trip failed: %q", hexStr.Text())
	}
	render(t, unicode)
}

func TestClone(t *testing.T) {
	dict := NewDictionary()
	dict.Set("Key", IntegerObject(42))
	dict.Set("Arr", NewArray(IntegerObject(1)))

	cloned := dict.Clone().(*DictionaryObject)
	cloned.Set("Key", IntegerObject(100))
	cloned.GetArray("Arr")[0] = IntegerObject(7)

	if v, _ := dict.GetInt("Key"); v != 42 {
		t.Error("Original dict should not be modified")
	}
	if dict.GetArray("Arr")[0].(IntegerObject) != 1 {
		t.Error("Original nested array should not be modified")
	}

	stream := NewStream(nil, []byte("abc"))
	sc := stream.Clone().(*StreamObject)
	sc.Data[0] = 'x'
	if stream.Data[0] != 'a' {
		t.Error("Stream clone shares payload")
	}
}

func TestRectangle(t *testing.T) {
	rect, err := NewRectangle(ArrayObject{RealObject(0), IntegerObject(0), RealObject(612), IntegerObject(792)})
	if err != nil {
		t.Fatalf("NewRectangle failed: %v", err)
	}
	if rect.Width() != 612 || rect.Height() != 792 {
		t.Errorf("Unexpected size %fx%f", rect.Width(), rect.Height())
	}
	if got := render(t, rect.ToArray()); got != "[0 0 612 792]" {
		t.Errorf("Unexpected array %q", got)
	}

	if _, err := NewRectangle(ArrayObject{IntegerObject(1)}); err == nil {
		t.Error("Expected error for short array")
	}
	if _, err := NewRectangle(ArrayObject{NameObject("a"), IntegerObject(0), IntegerObject(0), IntegerObject(0)}); err == nil {
		t.Error("Expected error for non-numeric element")
	}
}

func TestKindTags(t *testing.T) {
	tests := []struct {
		obj  PdfObject
		kind Kind
	}{
		{NullObject{}, KindNull},
		{BooleanObject(true), KindBoolean},
		{IntegerObject(1), KindInteger},
		{RealObject(1.5), KindReal},
		{NewLiteralString("a"), KindString},
		{NewHexString(nil), KindHexString},
		{NameObject("a"), KindName},
		{NewArray(), KindArray},
		{NewDictionary(), KindDictionary},
		{NewStream(nil, nil), KindStream},
		{NewReference(1, 0), KindReference},
		{NewIndirectObject(1, 0, NullObject{}), KindIndirect},
	}
	for _, tt := range tests {
		if tt.obj.Kind() != tt.kind {
			t.Errorf("%T: expected kind %s, got %s", tt.obj, tt.kind, tt.obj.Kind())
		}
	}
	if KindStream.String() != "stream" {
		t.Errorf("Unexpected kind name %q", KindStream.String())
	}
}
