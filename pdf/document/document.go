// Package document assembles PDF documents: it owns the object index, the
// catalog and page tree, and the factories that embed fonts and images.
package document

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/georgepadayatti/pdfgen/pdf/content"
	"github.com/georgepadayatti/pdfgen/pdf/generic"
	"github.com/georgepadayatti/pdfgen/pdf/writer"
)

// Info holds the document information dictionary entries. Zero fields are
// omitted.
type Info struct {
	Title        string
	Author       string
	Subject      string
	Keywords     string
	Creator      string
	Producer     string
	CreationDate time.Time
}

func (i Info) isZero() bool {
	return i == Info{}
}

func (i Info) dictionary() *generic.DictionaryObject {
	dict := generic.NewDictionary()
	for _, entry := range []struct{ key, value string }{
		{"Title", i.Title},
		{"Author", i.Author},
		{"Subject", i.Subject},
		{"Keywords", i.Keywords},
		{"Creator", i.Creator},
		{"Producer", i.Producer},
	} {
		if entry.value != "" {
			dict.Set(entry.key, generic.NewTextString(entry.value))
		}
	}
	if !i.CreationDate.IsZero() {
		dict.Set("CreationDate", generic.NewLiteralString(writer.FormatDate(i.CreationDate)))
	}
	return dict
}

// Option configures a Document.
type Option func(*Document)

// WithVersion sets the header version. Defaults to 1.7.
func WithVersion(version string) Option {
	return func(d *Document) {
		if version != "" {
			d.version = version
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Document) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithCompression compresses content streams and embedded font programs
// with FlateDecode.
func WithCompression(compress bool) Option {
	return func(d *Document) { d.compress = compress }
}

// WithInfo adds a document information dictionary.
func WithInfo(info Info) Option {
	return func(d *Document) { d.info = info }
}

// Document is an in-memory PDF. The zero value is not usable; create one
// with New.
//
// A Document is not safe for concurrent use.
type Document struct {
	index   *generic.ObjectIndex
	catalog *generic.DictionaryObject
	tree    *generic.DictionaryObject

	catalogRef generic.Reference
	treeRef    generic.Reference
	infoRef    generic.Reference

	// pages holds the page order.
	pages   []generic.Reference
	handles map[int]*Page

	version  string
	compress bool
	info     Info
	logger   *slog.Logger
}

// New creates a document with a registered catalog and an empty page tree.
func New(opts ...Option) *Document {
	d := &Document{
		index:   generic.NewObjectIndex(),
		handles: make(map[int]*Page),
		version: writer.DefaultVersion,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.catalog = generic.NewDictionary()
	d.catalog.Set("Type", generic.NameObject("Catalog"))
	d.catalogRef = d.index.Register(d.catalog)

	d.tree = generic.NewDictionary()
	d.tree.Set("Type", generic.NameObject("Pages"))
	d.tree.Set("Kids", generic.ArrayObject{})
	d.tree.Set("Count", generic.IntegerObject(0))
	d.treeRef = d.index.Register(d.tree)
	d.catalog.Set("Pages", d.treeRef)

	if !d.info.isZero() {
		d.infoRef = d.index.Register(d.info.dictionary())
	}

	d.logger.Debug("document created",
		"version", d.version,
		"compress", d.compress,
		"objects", d.index.Len())
	return d
}

// Version returns the header version.
func (d *Document) Version() string { return d.version }

// Catalog returns the document catalog and its reference.
func (d *Document) Catalog() (*generic.DictionaryObject, generic.Reference) {
	return d.catalog, d.catalogRef
}

// PageTree returns the page tree root and its reference.
func (d *Document) PageTree() (*generic.DictionaryObject, generic.Reference) {
	return d.tree, d.treeRef
}

// Info returns the information dictionary reference, zero when the
// document has none.
func (d *Document) Info() generic.Reference { return d.infoRef }

// ObjectCount returns the number of registered objects.
func (d *Document) ObjectCount() int { return d.index.Len() }

// Register adds obj to the document's index.
func (d *Document) Register(obj generic.PdfObject) generic.Reference {
	return d.index.Register(obj)
}

// Lookup resolves ref against the document's index.
func (d *Document) Lookup(ref generic.Reference) (generic.PdfObject, error) {
	return d.index.Lookup(ref)
}

// CreateContentStream flattens items into a new, unregistered content
// stream. Items may be operators, operator slices, nested []any groupings
// and builders.
func (d *Document) CreateContentStream(items ...any) (*content.ContentStream, error) {
	ops, err := content.Flatten(items...)
	if err != nil {
		return nil, err
	}
	cs := content.NewContentStream(ops...)
	if d.compress {
		if err := cs.SetFilters("FlateDecode"); err != nil {
			return nil, err
		}
	}
	return cs, nil
}

// Write serializes the document to w.
func (d *Document) Write(w io.Writer) error {
	_, err := d.serializer().Write(w)
	return err
}

// Bytes returns the serialized document.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		return nil, fmt.Errorf("serialize document: %w", err)
	}
	return buf.Bytes(), nil
}

func (d *Document) serializer() *writer.Serializer {
	return writer.NewSerializer(d.index, d.catalogRef,
		writer.WithVersion(d.version),
		writer.WithInfo(d.infoRef),
		writer.WithLogger(d.logger))
}
