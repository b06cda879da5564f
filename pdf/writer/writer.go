// Package writer serializes an object index into a complete PDF file:
// header, body, cross-reference table and trailer.
package writer

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/georgepadayatti/pdfgen/pdf/generic"
)

// DefaultVersion is written in the header when no version is configured.
const DefaultVersion = "1.7"

// Binary comment following the version line.
var binaryMarker = []byte{0x25, 0xE2, 0xE3, 0xCF, 0xD3, 0x0A}

const (
	xrefFreeHead = "0000000000 65535 f \n"
	// xref entries are fixed at 20 bytes.
	xrefEntrySize = 20
	idSize        = 16
)

// Serializer writes every object of an index as one PDF file.
type Serializer struct {
	Version string
	Root    generic.Reference
	// Info is omitted from the trailer when zero.
	Info generic.Reference
	// ID overrides the computed file identifier.
	ID     []byte
	Logger *slog.Logger

	index *generic.ObjectIndex
}

// Option configures a Serializer.
type Option func(*Serializer)

// WithVersion sets the header version.
func WithVersion(version string) Option {
	return func(s *Serializer) {
		if version != "" {
			s.Version = version
		}
	}
}

// WithInfo references a document information dictionary from the trailer.
func WithInfo(ref generic.Reference) Option {
	return func(s *Serializer) { s.Info = ref }
}

// WithID fixes the file identifier instead of hashing the body.
func WithID(id []byte) Option {
	return func(s *Serializer) { s.ID = bytes.Clone(id) }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Serializer) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// NewSerializer creates a serializer for index with root as the catalog.
func NewSerializer(index *generic.ObjectIndex, root generic.Reference, opts ...Option) *Serializer {
	s := &Serializer{
		Version: DefaultVersion,
		Root:    root,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		index:   index,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Entry is the location of one object in the output.
type Entry struct {
	Ref    generic.Reference
	Offset int64
	Size   int
}

// Layout is the result of the offset pass.
type Layout struct {
	HeaderSize int
	Entries    []Entry
	// XrefOffset is the position of the "xref" keyword.
	XrefOffset int64
}

func (s *Serializer) header() string {
	return "%PDF-" + s.Version + "\n" + string(binaryMarker)
}

func (s *Serializer) indirect(ref generic.Reference) (*generic.IndirectObject, error) {
	obj, err := s.index.Lookup(ref)
	if err != nil {
		return nil, err
	}
	return generic.NewIndirectObject(ref.ObjectNumber, ref.GenerationNumber, obj), nil
}

// ComputeOffsets runs the first pass: it sizes every object in ascending
// object-number order without writing anything.
func (s *Serializer) ComputeOffsets() (*Layout, error) {
	if s.index == nil {
		return nil, fmt.Errorf("writer: nil object index")
	}
	if !s.index.Has(s.Root) {
		return nil, fmt.Errorf("writer: catalog: %w", &generic.ReferenceError{Ref: s.Root})
	}
	if !s.Info.IsZero() && !s.index.Has(s.Info) {
		return nil, fmt.Errorf("writer: info: %w", &generic.ReferenceError{Ref: s.Info})
	}

	header := s.header()
	layout := &Layout{HeaderSize: len(header)}
	offset := int64(len(header))

	// Object numbers are dense: the index never frees a number.
	for _, ref := range s.index.Refs() {
		ind, err := s.indirect(ref)
		if err != nil {
			return nil, err
		}
		size := ind.ByteSize()
		layout.Entries = append(layout.Entries, Entry{Ref: ref, Offset: offset, Size: size})
		offset += int64(size)
	}
	layout.XrefOffset = offset
	return layout, nil
}

// Write emits the file to w in a single write and returns the number of
// bytes written.
func (s *Serializer) Write(w io.Writer) (int64, error) {
	start := time.Now()
	layout, err := s.ComputeOffsets()
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	buf.Grow(int(layout.XrefOffset) + xrefEntrySize*(len(layout.Entries)+1) + 256)
	buf.WriteString(s.header())

	for _, entry := range layout.Entries {
		ind, err := s.indirect(entry.Ref)
		if err != nil {
			return 0, err
		}
		if _, err := ind.WriteTo(&buf); err != nil {
			return 0, fmt.Errorf("writer: object %s: %w", entry.Ref, err)
		}
	}

	id := s.ID
	if len(id) == 0 {
		id, err = digest(buf.Bytes()[layout.HeaderSize:])
		if err != nil {
			return 0, err
		}
	}

	count := len(layout.Entries)
	buf.WriteString("xref\n0 ")
	buf.WriteString(strconv.Itoa(count + 1))
	buf.WriteString("\n")
	buf.WriteString(xrefFreeHead)
	for _, entry := range layout.Entries {
		fmt.Fprintf(&buf, "%010d %05d n \n", entry.Offset, entry.Ref.GenerationNumber)
	}

	trailer := generic.NewDictionary()
	trailer.Set("Size", generic.IntegerObject(count+1))
	trailer.Set("Root", s.Root)
	if !s.Info.IsZero() {
		trailer.Set("Info", s.Info)
	}
	trailer.Set("ID", generic.NewArray(generic.NewHexString(id), generic.NewHexString(id)))

	buf.WriteString("trailer\n")
	if _, err := trailer.WriteTo(&buf); err != nil {
		return 0, err
	}
	fmt.Fprintf(&buf, "\nstartxref\n%d\n%%%%EOF\n", layout.XrefOffset)

	n, err := w.Write(buf.Bytes())
	if err != nil {
		return int64(n), fmt.Errorf("writer: %w", err)
	}
	s.Logger.Debug("pdf written",
		"objects", count,
		"bytes", n,
		"version", s.Version,
		"elapsed", time.Since(start))
	return int64(n), nil
}

// digest returns the 16-byte BLAKE2b hash used as the file identifier.
func digest(body []byte) ([]byte, error) {
	h, err := blake2b.New(idSize, nil)
	if err != nil {
		return nil, err
	}
	h.Write(body)
	return h.Sum(nil), nil
}

// FormatDate formats a time as a PDF date string.
func FormatDate(t time.Time) string {
	_, offset := t.Zone()
	offsetHours := offset / 3600
	offsetMinutes := (offset % 3600) / 60

	sign := "+"
	if offset < 0 {
		sign = "-"
		offsetHours = -offsetHours
		offsetMinutes = -offsetMinutes
	}

	return fmt.Sprintf("D:%04d%02d%02d%02d%02d%02d%s%02d'%02d'",
		t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second(),
		sign, offsetHours, offsetMinutes)
}
