package filters

import (
	"bytes"
	"errors"
	"testing"

	"github.com/georgepadayatti/pdfgen/pdf/generic"
)

func TestFlateRoundTrip(t *testing.T) {
	filter := &FlateDecodeFilter{}
	original := bytes.Repeat([]byte("0 0 150 100 re\nf\n"), 50)

	encoded, err := filter.Encode(original)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(encoded) >= len(original) {
		t.Errorf("Expected compression, got %d >= %d", len(encoded), len(original))
	}

	decoded, err := filter.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(decoded, original) {
		t.Error("Round trip mismatch")
	}
}

func TestFlateDecodeInvalid(t *testing.T) {
	_, err := (&FlateDecodeFilter{}).Decode([]byte("not zlib"))
	if !errors.Is(err, ErrDecodeFailed) {
		t.Errorf("Expected ErrDecodeFailed, got %v", err)
	}
}

func TestASCIIHexFilter(t *testing.T) {
	filter := &ASCIIHexDecodeFilter{}
	encoded, _ := filter.Encode([]byte("Hello"))
	if string(encoded) != "48656c6c6f>" {
		t.Errorf("Expected '48656c6c6f>', got '%s'", encoded)
	}
	decoded, err := filter.Decode([]byte("48 65 6C 6C 6F>"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if string(decoded) != "Hello" {
		t.Errorf("Expected 'Hello', got '%s'", decoded)
	}
}

func TestASCII85RoundTrip(t *testing.T) {
	filter := &ASCII85DecodeFilter{}
	original := []byte("The quick brown fox")
	encoded, err := filter.Encode(original)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !bytes.HasSuffix(encoded, []byte("~>")) {
		t.Error("Expected end marker")
	}
	decoded, err := filter.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(decoded, original) {
		t.Errorf("Expected %q, got %q", original, decoded)
	}
}

func TestGetFilter(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"FlateDecode", "FlateDecode"},
		{"Fl", "FlateDecode"},
		{"AHx", "ASCIIHexDecode"},
		{"A85", "ASCII85Decode"},
	}
	for _, tt := range tests {
		f, err := GetFilter(tt.name)
		if err != nil {
			t.Fatalf("GetFilter(%s) failed: %v", tt.name, err)
		}
		if f.Name() != tt.expected {
			t.Errorf("Expected %s, got %s", tt.expected, f.Name())
		}
	}

	if _, err := GetFilter("JBIG2Decode"); !errors.Is(err, ErrUnsupportedFilter) {
		t.Errorf("Expected ErrUnsupportedFilter, got %v", err)
	}
}

func TestEncodeStream(t *testing.T) {
	data := []byte("BT /F1 12 Tf (Hi) Tj ET")

	same, filterObj, err := EncodeStream(data)
	if err != nil || filterObj != nil || !bytes.Equal(same, data) {
		t.Errorf("No filters should pass data through, got %v %v", filterObj, err)
	}

	encoded, filterObj, err := EncodeStream(data, "FlateDecode")
	if err != nil {
		t.Fatalf("EncodeStream failed: %v", err)
	}
	if filterObj != generic.NameObject("FlateDecode") {
		t.Errorf("Expected /FlateDecode, got %v", filterObj)
	}
	decoded, err := DecodeStream(encoded, "FlateDecode")
	if err != nil || !bytes.Equal(decoded, data) {
		t.Errorf("DecodeStream mismatch: %v", err)
	}

	chained, filterObj, err := EncodeStream(data, "ASCIIHexDecode", "FlateDecode")
	if err != nil {
		t.Fatalf("Chained EncodeStream failed: %v", err)
	}
	arr, ok := filterObj.(generic.ArrayObject)
	if !ok || len(arr) != 2 || arr[0] != generic.NameObject("ASCIIHexDecode") {
		t.Errorf("Expected filter array in decode order, got %v", filterObj)
	}
	decoded, err = DecodeStream(chained, "ASCIIHexDecode", "FlateDecode")
	if err != nil || !bytes.Equal(decoded, data) {
		t.Errorf("Chained DecodeStream mismatch: %v", err)
	}

	if _, _, err := EncodeStream(data, "Nope"); !errors.Is(err, ErrUnsupportedFilter) {
		t.Errorf("Expected ErrUnsupportedFilter, got %v", err)
	}
}
