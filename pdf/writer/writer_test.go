package writer

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/georgepadayatti/pdfgen/pdf/generic"
)

// newTestIndex builds a catalog, an empty page tree and one stream.
func newTestIndex() (*generic.ObjectIndex, generic.Reference) {
	index := generic.NewObjectIndex()
	catalog := generic.NewDictionary()
	catalog.Set("Type", generic.NameObject("Catalog"))
	root := index.Register(catalog)

	pages := generic.NewDictionary()
	pages.Set("Type", generic.NameObject("Pages"))
	pages.Set("Kids", generic.ArrayObject{})
	pages.Set("Count", generic.IntegerObject(0))
	catalog.Set("Pages", index.Register(pages))

	index.Register(generic.NewStream(nil, []byte("0 0 1 1 re\nf\n")))
	return index, root
}

func TestWriteHeader(t *testing.T) {
	index, root := newTestIndex()
	var buf bytes.Buffer
	if _, err := NewSerializer(index, root, WithVersion("1.4")).Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-1.4\n%\xE2\xE3\xCF\xD3\n")) {
		t.Errorf("Unexpected header %q", buf.Bytes()[:15])
	}
	if !bytes.HasSuffix(buf.Bytes(), []byte("%%EOF\n")) {
		t.Errorf("Expected %%EOF trailer")
	}
}

func TestWriteOffsets(t *testing.T) {
	index, root := newTestIndex()
	s := NewSerializer(index, root)
	layout, err := s.ComputeOffsets()
	if err != nil {
		t.Fatalf("ComputeOffsets failed: %v", err)
	}

	var buf bytes.Buffer
	n, err := s.Write(&buf)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("Expected %d bytes reported, got %d", buf.Len(), n)
	}
	out := buf.Bytes()

	if len(layout.Entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(layout.Entries))
	}
	for _, entry := range layout.Entries {
		prefix := fmt.Sprintf("%d 0 obj\n", entry.Ref.ObjectNumber)
		if !bytes.HasPrefix(out[entry.Offset:], []byte(prefix)) {
			t.Errorf("Offset %d does not point at %q", entry.Offset, prefix)
		}
		end := entry.Offset + int64(entry.Size)
		if !bytes.HasSuffix(out[:end], []byte("endobj\n")) {
			t.Errorf("Object %d does not end at %d", entry.Ref.ObjectNumber, end)
		}
	}

	if !bytes.HasPrefix(out[layout.XrefOffset:], []byte("xref\n0 4\n0000000000 65535 f \n")) {
		t.Errorf("xref not at %d", layout.XrefOffset)
	}
	if !bytes.Contains(out, []byte(fmt.Sprintf("startxref\n%d\n", layout.XrefOffset))) {
		t.Error("startxref does not match the xref offset")
	}

	// Each xref line lists the offset of its object.
	xref := string(out[layout.XrefOffset:])
	lines := strings.Split(xref, "\n")
	for i, entry := range layout.Entries {
		expected := fmt.Sprintf("%010d 00000 n ", entry.Offset)
		if lines[3+i] != expected {
			t.Errorf("Expected xref line %q, got %q", expected, lines[3+i])
		}
	}
}

func TestWriteTrailer(t *testing.T) {
	index, root := newTestIndex()
	info := generic.NewDictionary()
	info.Set("Title", generic.NewTextString("Test"))
	infoRef := index.Register(info)

	var buf bytes.Buffer
	if _, err := NewSerializer(index, root, WithInfo(infoRef)).Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()
	for _, expected := range []string{
		"trailer\n<<\n/Size 5\n/Root 1 0 R\n/Info 4 0 R\n/ID [<",
		"\n>>\nstartxref\n",
	} {
		if !strings.Contains(out, expected) {
			t.Errorf("Expected trailer to contain %q", expected)
		}
	}
}

func TestWriteWithoutInfo(t *testing.T) {
	index, root := newTestIndex()
	var buf bytes.Buffer
	if _, err := NewSerializer(index, root).Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if strings.Contains(buf.String(), "/Info") {
		t.Error("Info should be omitted when unset")
	}
}

func TestWriteDeterministic(t *testing.T) {
	var outputs [2][]byte
	for i := range outputs {
		index, root := newTestIndex()
		var buf bytes.Buffer
		if _, err := NewSerializer(index, root).Write(&buf); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		outputs[i] = buf.Bytes()
	}
	if !bytes.Equal(outputs[0], outputs[1]) {
		t.Error("Identical indexes should serialize identically")
	}
}

func TestWriteFixedID(t *testing.T) {
	index, root := newTestIndex()
	var buf bytes.Buffer
	id := []byte{0xde, 0xad, 0xbe, 0xef}
	if _, err := NewSerializer(index, root, WithID(id)).Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.Contains(buf.String(), "/ID [<deadbeef> <deadbeef>]") {
		t.Error("Expected the fixed identifier in the trailer")
	}
}

func TestWriteComputedIDLength(t *testing.T) {
	index, root := newTestIndex()
	var buf bytes.Buffer
	if _, err := NewSerializer(index, root).Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()
	start := strings.Index(out, "/ID [<")
	if start < 0 {
		t.Fatal("Missing /ID")
	}
	hexID := out[start+len("/ID [<"):]
	hexID = hexID[:strings.IndexByte(hexID, '>')]
	if len(hexID) != 2*idSize {
		t.Errorf("Expected %d hex digits, got %d", 2*idSize, len(hexID))
	}
}

func TestWriteMissingRoot(t *testing.T) {
	index := generic.NewObjectIndex()
	_, err := NewSerializer(index, generic.NewReference(1, 0)).Write(&bytes.Buffer{})
	if !errors.Is(err, generic.ErrUnresolvedReference) {
		t.Errorf("Expected ErrUnresolvedReference, got %v", err)
	}

	index, root := newTestIndex()
	_, err = NewSerializer(index, root, WithInfo(generic.NewReference(99, 0))).Write(&bytes.Buffer{})
	if !errors.Is(err, generic.ErrUnresolvedReference) {
		t.Errorf("Expected ErrUnresolvedReference for info, got %v", err)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteError(t *testing.T) {
	index, root := newTestIndex()
	if _, err := NewSerializer(index, root).Write(failingWriter{}); err == nil {
		t.Error("Expected write error")
	}
}

func TestFormatDate(t *testing.T) {
	loc := time.FixedZone("test", -(5*3600 + 30*60))
	got := FormatDate(time.Date(2024, time.March, 7, 9, 5, 3, 0, loc))
	if got != "D:20240307090503-05'30'" {
		t.Errorf("Expected D:20240307090503-05'30', got %s", got)
	}
	if got := FormatDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)); got != "D:20240101000000+00'00'" {
		t.Errorf("Unexpected UTC date %s", got)
	}
}
