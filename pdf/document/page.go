package document

import (
	"errors"
	"fmt"

	"github.com/georgepadayatti/pdfgen/pdf/generic"
)

// Common page sizes in points.
var (
	PageSizeA4     = [2]float64{595.28, 841.89}
	PageSizeA3     = [2]float64{841.89, 1190.55}
	PageSizeLetter = [2]float64{612, 792}
	PageSizeLegal  = [2]float64{612, 1008}
)

// ErrForeignPage is returned when a page attached to one document is
// inserted into another.
var ErrForeignPage = errors.New("page belongs to another document")

// PageIndexError reports a page position outside the page order.
type PageIndexError struct {
	Op        string
	Index     int
	PageCount int
}

func (e *PageIndexError) Error() string {
	return fmt.Sprintf("%s: %v: page %d of %d", e.Op, generic.ErrIndexOutOfRange, e.Index, e.PageCount)
}

// Unwrap returns ErrIndexOutOfRange.
func (e *PageIndexError) Unwrap() error {
	return generic.ErrIndexOutOfRange
}

// Page is a handle on a page dictionary. It has no reference until it is
// attached to a document.
type Page struct {
	dict  *generic.DictionaryObject
	ref   generic.Reference
	owner *Document
}

// Ref returns the page's reference, zero while the page is unattached.
func (p *Page) Ref() generic.Reference { return p.ref }

// Dict returns the page dictionary.
func (p *Page) Dict() *generic.DictionaryObject { return p.dict }

// Size returns the width and height of the media box.
func (p *Page) Size() (width, height float64) {
	rect, err := generic.NewRectangle(p.dict.GetArray("MediaBox"))
	if err != nil {
		return 0, 0
	}
	return rect.Width(), rect.Height()
}

// SetMediaBox replaces the media box.
func (p *Page) SetMediaBox(rect generic.Rectangle) {
	p.dict.Set("MediaBox", rect.ToArray())
}

// resources returns the page's resource dictionary, creating it when
// missing.
func (p *Page) resources() *generic.DictionaryObject {
	res := p.dict.GetDict("Resources")
	if res == nil {
		res = generic.NewDictionary()
		p.dict.Set("Resources", res)
	}
	return res
}

func (p *Page) addResource(category, name string, ref generic.Reference) {
	res := p.resources()
	entries := res.GetDict(category)
	if entries == nil {
		entries = generic.NewDictionary()
		res.Set(category, entries)
	}
	entries.Set(name, ref)
}

// AddFont makes the font at ref available as /name in content streams.
func (p *Page) AddFont(name string, ref generic.Reference) *Page {
	p.addResource("Font", name, ref)
	return p
}

// AddXObject makes the XObject at ref available as /name.
func (p *Page) AddXObject(name string, ref generic.Reference) *Page {
	p.addResource("XObject", name, ref)
	return p
}

// AddContentStreams appends content stream references to /Contents.
func (p *Page) AddContentStreams(refs ...generic.Reference) *Page {
	var contents generic.ArrayObject
	switch existing := p.dict.Get("Contents").(type) {
	case generic.ArrayObject:
		contents = existing
	case generic.Reference:
		contents = generic.ArrayObject{existing}
	}
	for _, ref := range refs {
		contents = append(contents, ref)
	}
	p.dict.Set("Contents", contents)
	return p
}

// ContentStreams returns the references listed in /Contents.
func (p *Page) ContentStreams() []generic.Reference {
	var refs []generic.Reference
	switch contents := p.dict.Get("Contents").(type) {
	case generic.Reference:
		refs = append(refs, contents)
	case generic.ArrayObject:
		for _, item := range contents {
			if ref, ok := item.(generic.Reference); ok {
				refs = append(refs, ref)
			}
		}
	}
	return refs
}

// CreatePage returns a freestanding page of the given size. It is neither
// registered nor part of the page order until attached. A nil resources
// dictionary is replaced by an empty one.
func (d *Document) CreatePage(size [2]float64, resources *generic.DictionaryObject) *Page {
	if resources == nil {
		resources = generic.NewDictionary()
	}
	dict := generic.NewDictionary()
	dict.Set("Type", generic.NameObject("Page"))
	dict.Set("MediaBox", generic.NumberArray(0, 0, size[0], size[1]))
	dict.Set("Resources", resources)
	return &Page{dict: dict}
}

// attach registers the page with the document and points it at the page
// tree.
func (d *Document) attach(p *Page) generic.Reference {
	if p.owner == nil {
		p.ref = d.index.Register(p.dict)
		p.owner = d
		d.handles[p.ref.ObjectNumber] = p
	}
	p.dict.Set("Parent", d.treeRef)
	return p.ref
}

// syncPageTree rewrites /Kids and /Count from the page order.
func (d *Document) syncPageTree() {
	kids := make(generic.ArrayObject, len(d.pages))
	for i, ref := range d.pages {
		kids[i] = ref
	}
	d.tree.Set("Kids", kids)
	d.tree.Set("Count", generic.IntegerObject(len(d.pages)))
}

// AddPage appends page to the page order. A nil page, or one attached to
// another document, is not added; use InsertPage to see the error.
func (d *Document) AddPage(page *Page) *Document {
	if _, err := d.InsertPage(len(d.pages), page); err != nil {
		d.logger.Warn("page not added", "error", err)
	}
	return d
}

// InsertPage places page at index, shifting later pages. Valid indexes are
// 0 through PageCount.
func (d *Document) InsertPage(index int, page *Page) (*Document, error) {
	if index < 0 || index > len(d.pages) {
		return d, &PageIndexError{Op: "insert page", Index: index, PageCount: len(d.pages)}
	}
	if page == nil {
		return d, &generic.TypeError{Expected: "page", Got: page}
	}
	if page.owner != nil && page.owner != d {
		return d, fmt.Errorf("insert page %s: %w", page.ref, ErrForeignPage)
	}

	ref := d.attach(page)
	d.pages = append(d.pages, generic.Reference{})
	copy(d.pages[index+1:], d.pages[index:])
	d.pages[index] = ref
	d.syncPageTree()

	d.logger.Debug("page inserted", "index", index, "ref", ref.String(), "count", len(d.pages))
	return d, nil
}

// RemovePage drops the page at index from the page order. The page object
// stays in the index.
func (d *Document) RemovePage(index int) (*Document, error) {
	if index < 0 || index >= len(d.pages) {
		return d, &PageIndexError{Op: "remove page", Index: index, PageCount: len(d.pages)}
	}

	ref := d.pages[index]
	d.pages = append(d.pages[:index], d.pages[index+1:]...)
	d.syncPageTree()

	d.logger.Debug("page removed", "index", index, "ref", ref.String(), "count", len(d.pages))
	return d, nil
}

// PageCount returns the number of pages in the page order.
func (d *Document) PageCount() int { return len(d.pages) }

// Pages resolves the page order through the index.
func (d *Document) Pages() ([]*Page, error) {
	pages := make([]*Page, 0, len(d.pages))
	for _, ref := range d.pages {
		dict, err := d.index.LookupDict(ref)
		if err != nil {
			return nil, fmt.Errorf("resolve page %s: %w", ref, err)
		}
		if handle, ok := d.handles[ref.ObjectNumber]; ok && handle.dict == dict {
			pages = append(pages, handle)
			continue
		}
		pages = append(pages, &Page{dict: dict, ref: ref, owner: d})
	}
	return pages, nil
}

// Page returns the page at index.
func (d *Document) Page(index int) (*Page, error) {
	if index < 0 || index >= len(d.pages) {
		return nil, &PageIndexError{Op: "get page", Index: index, PageCount: len(d.pages)}
	}
	pages, err := d.Pages()
	if err != nil {
		return nil, err
	}
	return pages[index], nil
}
