// Package generic provides PDF object types and the object index.
package generic

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Kind tags each PdfObject variant.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindInteger
	KindReal
	KindString
	KindHexString
	KindName
	KindArray
	KindDictionary
	KindStream
	KindReference
	KindIndirect
)

var kindNames = [...]string{
	KindNull:       "null",
	KindBoolean:    "boolean",
	KindInteger:    "integer",
	KindReal:       "real",
	KindString:     "string",
	KindHexString:  "hexstring",
	KindName:       "name",
	KindArray:      "array",
	KindDictionary: "dictionary",
	KindStream:     "stream",
	KindReference:  "reference",
	KindIndirect:   "indirect",
}

// String returns the lower-case variant name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// PdfObject is the base interface for all PDF objects.
//
// ByteSize must always equal the number of bytes WriteTo emits; the
// serializer computes cross-reference offsets from it before writing.
type PdfObject interface {
	// Kind returns the variant tag.
	Kind() Kind
	// ByteSize returns the serialized size in bytes.
	ByteSize() int
	// WriteTo serializes the object to PDF syntax.
	WriteTo(w io.Writer) (int64, error)
	// Clone creates a deep copy of the object.
	Clone() PdfObject

	isPdfObject()
}

// objectWriter accumulates bytes written and the first error.
type objectWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (ow *objectWriter) writeString(s string) {
	if ow.err != nil {
		return
	}
	n, err := io.WriteString(ow.w, s)
	ow.n += int64(n)
	ow.err = err
}

func (ow *objectWriter) write(p []byte) {
	if ow.err != nil {
		return
	}
	n, err := ow.w.Write(p)
	ow.n += int64(n)
	ow.err = err
}

func (ow *objectWriter) writeObject(obj PdfObject) {
	if ow.err != nil {
		return
	}
	n, err := obj.WriteTo(ow.w)
	ow.n += n
	ow.err = err
}

// ObjectBytes serializes obj into a fresh byte slice.
func ObjectBytes(obj PdfObject) []byte {
	var buf bytes.Buffer
	buf.Grow(obj.ByteSize())
	obj.WriteTo(&buf)
	return buf.Bytes()
}

// Reference represents an indirect reference to a PDF object.
type Reference struct {
	ObjectNumber     int
	GenerationNumber int
}

// NewReference creates a new reference.
func NewReference(objNum, genNum int) Reference {
	return Reference{ObjectNumber: objNum, GenerationNumber: genNum}
}

func (Reference) isPdfObject() {}

// Kind implements PdfObject.
func (Reference) Kind() Kind { return KindReference }

// ByteSize implements PdfObject.
func (r Reference) ByteSize() int { return len(r.String()) }

// WriteTo implements PdfObject.
func (r Reference) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.String())
	return int64(n), err
}

// Clone implements PdfObject.
func (r Reference) Clone() PdfObject { return r }

// IsZero reports whether r was never assigned an object number.
func (r Reference) IsZero() bool { return r.ObjectNumber == 0 }

// String returns the string representation.
func (r Reference) String() string {
	return strconv.Itoa(r.ObjectNumber) + " " + strconv.Itoa(r.GenerationNumber) + " R"
}

// IndirectObject wraps a PDF object with its object and generation numbers.
type IndirectObject struct {
	ObjectNumber     int
	GenerationNumber int
	Object           PdfObject
}

// NewIndirectObject creates a new indirect object.
func NewIndirectObject(objNum, genNum int, obj PdfObject) *IndirectObject {
	return &IndirectObject{
		ObjectNumber:     objNum,
		GenerationNumber: genNum,
		Object:           obj,
	}
}

const endObj = "\nendobj\n"

func (*IndirectObject) isPdfObject() {}

// Kind implements PdfObject.
func (*IndirectObject) Kind() Kind { return KindIndirect }

func (i *IndirectObject) header() string {
	return strconv.Itoa(i.ObjectNumber) + " " + strconv.Itoa(i.GenerationNumber) + " obj\n"
}

// ByteSize implements PdfObject.
func (i *IndirectObject) ByteSize() int {
	size := len(i.header()) + len(endObj)
	if i.Object != nil {
		size += i.Object.ByteSize()
	}
	return size
}

// WriteTo implements PdfObject.
func (i *IndirectObject) WriteTo(w io.Writer) (int64, error) {
	ow := &objectWriter{w: w}
	ow.writeString(i.header())
	if i.Object != nil {
		ow.writeObject(i.Object)
	}
	ow.writeString(endObj)
	return ow.n, ow.err
}

// Clone implements PdfObject.
func (i *IndirectObject) Clone() PdfObject {
	var obj PdfObject
	if i.Object != nil {
		obj = i.Object.Clone()
	}
	return &IndirectObject{
		ObjectNumber:     i.ObjectNumber,
		GenerationNumber: i.GenerationNumber,
		Object:           obj,
	}
}

// GetReference returns a reference to this indirect object.
func (i *IndirectObject) GetReference() Reference {
	return Reference{ObjectNumber: i.ObjectNumber, GenerationNumber: i.GenerationNumber}
}

// NullObject represents the PDF null value.
type NullObject struct{}

func (NullObject) isPdfObject() {}

// Kind implements PdfObject.
func (NullObject) Kind() Kind { return KindNull }

// ByteSize implements PdfObject.
func (NullObject) ByteSize() int { return 4 }

// WriteTo implements PdfObject.
func (NullObject) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, "null")
	return int64(n), err
}

// Clone implements PdfObject.
func (NullObject) Clone() PdfObject { return NullObject{} }

// BooleanObject represents a PDF boolean value.
type BooleanObject bool

func (BooleanObject) isPdfObject() {}

// Kind implements PdfObject.
func (BooleanObject) Kind() Kind { return KindBoolean }

func (b BooleanObject) String() string {
	if b {
		return "true"
	}
	return "false"
}

// ByteSize implements PdfObject.
func (b BooleanObject) ByteSize() int { return len(b.String()) }

// WriteTo implements PdfObject.
func (b BooleanObject) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// Clone implements PdfObject.
func (b BooleanObject) Clone() PdfObject { return b }

// IntegerObject represents a PDF integer value.
type IntegerObject int64

func (IntegerObject) isPdfObject() {}

// Kind implements PdfObject.
func (IntegerObject) Kind() Kind { return KindInteger }

func (i IntegerObject) String() string { return strconv.FormatInt(int64(i), 10) }

// ByteSize implements PdfObject.
func (i IntegerObject) ByteSize() int { return len(i.String()) }

// WriteTo implements PdfObject.
func (i IntegerObject) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, i.String())
	return int64(n), err
}

// Clone implements PdfObject.
func (i IntegerObject) Clone() PdfObject { return i }

// RealObject represents a PDF real (floating point) value.
type RealObject float64

func (RealObject) isPdfObject() {}

// Kind implements PdfObject.
func (RealObject) Kind() Kind { return KindReal }

// String formats the value in PDF numeric syntax. PDF has no exponent
// notation and no representation for NaN or infinities, which are written
// as 0.
func (r RealObject) String() string {
	v := float64(r)
	if math.IsNaN(v) || math.IsInf(v, 0) || v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ByteSize implements PdfObject.
func (r RealObject) ByteSize() int { return len(r.String()) }

// WriteTo implements PdfObject.
func (r RealObject) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.String())
	return int64(n), err
}

// Clone implements PdfObject.
func (r RealObject) Clone() PdfObject { return r }

// Number returns an IntegerObject when v is integral and a RealObject
// otherwise.
func Number(v float64) PdfObject {
	if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
		return IntegerObject(int64(v))
	}
	return RealObject(v)
}

// NameObject represents a PDF name object (e.g., /Type).
type NameObject string

func (NameObject) isPdfObject() {}

// Kind implements PdfObject.
func (NameObject) Kind() Kind { return KindName }

const nameDelimiters = "#%/[]()<>{}"

// escaped returns the name with irregular bytes written as #XX.
func (n NameObject) escaped() string {
	var buf bytes.Buffer
	buf.Grow(len(n))
	for i := 0; i < len(n); i++ {
		b := n[i]
		if b < '!' || b > '~' || strings.IndexByte(nameDelimiters, b) >= 0 {
			fmt.Fprintf(&buf, "#%02X", b)
			continue
		}
		buf.WriteByte(b)
	}
	return buf.String()
}

// ByteSize implements PdfObject.
func (n NameObject) ByteSize() int { return 1 + len(n.escaped()) }

// WriteTo implements PdfObject.
func (n NameObject) WriteTo(w io.Writer) (int64, error) {
	c, err := io.WriteString(w, "/"+n.escaped())
	return int64(c), err
}

// Clone implements PdfObject.
func (n NameObject) Clone() PdfObject { return n }

// String returns the name without the leading slash.
func (n NameObject) String() string { return string(n) }

// StringObject represents a PDF literal string object.
type StringObject struct {
	Value []byte
}

// NewLiteralString creates a new literal string.
func NewLiteralString(s string) *StringObject {
	return &StringObject{Value: []byte(s)}
}

func (*StringObject) isPdfObject() {}

// Kind implements PdfObject.
func (*StringObject) Kind() Kind { return KindString }

// encoded returns the parenthesised, escaped form of the value.
func (s *StringObject) encoded() []byte {
	var buf bytes.Buffer
	buf.Grow(len(s.Value) + 2)
	buf.WriteByte('(')
	for _, b := range s.Value {
		switch b {
		case '\\':
			buf.WriteString("\\\\")
		case '(':
			buf.WriteString("\\(")
		case ')':
			buf.WriteString("\\)")
		case '\n':
			buf.WriteString("\\n")
		case '\r':
			buf.WriteString("\\r")
		case '\t':
			buf.WriteString("\\t")
		default:
			if b < 32 || b > 126 {
				fmt.Fprintf(&buf, "\\%03o", b)
			} else {
				buf.WriteByte(b)
			}
		}
	}
	buf.WriteByte(')')
	return buf.Bytes()
}

// ByteSize implements PdfObject.
func (s *StringObject) ByteSize() int { return len(s.encoded()) }

// WriteTo implements PdfObject.
func (s *StringObject) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s.encoded())
	return int64(n), err
}

// Clone implements PdfObject.
func (s *StringObject) Clone() PdfObject {
	return &StringObject{Value: bytes.Clone(s.Value)}
}

// Text returns the value decoded as text.
func (s *StringObject) Text() string { return decodeText(s.Value) }

// HexStringObject represents a PDF hexadecimal string object.
type HexStringObject struct {
	Value []byte
}

// NewHexString creates a new hex string.
func NewHexString(data []byte) *HexStringObject {
	return &HexStringObject{Value: data}
}

func (*HexStringObject) isPdfObject() {}

// Kind implements PdfObject.
func (*HexStringObject) Kind() Kind { return KindHexString }

// ByteSize implements PdfObject.
func (s *HexStringObject) ByteSize() int { return 2 + hex.EncodedLen(len(s.Value)) }

// WriteTo implements PdfObject.
func (s *HexStringObject) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, "<"+hex.EncodeToString(s.Value)+">")
	return int64(n), err
}

// Clone implements PdfObject.
func (s *HexStringObject) Clone() PdfObject {
	return &HexStringObject{Value: bytes.Clone(s.Value)}
}

// Text returns the value decoded as text.
func (s *HexStringObject) Text() string { return decodeText(s.Value) }

// NewTextString creates a PDF text string. Text containing runes above
// U+00FF is stored as UTF-16BE with a byte order mark in a hex string.
func NewTextString(s string) PdfObject {
	needsUnicode := false
	for _, r := range s {
		if r > 255 {
			needsUnicode = true
			break
		}
	}
	if !needsUnicode {
		latin := make([]byte, 0, len(s))
		for _, r := range s {
			latin = append(latin, byte(r))
		}
		return &StringObject{Value: latin}
	}

	var buf bytes.Buffer
	buf.Write([]byte{0xFE, 0xFF})
	for _, r := range s {
		if r > 0xFFFF {
			r -= 0x10000
			hi, lo := 0xD800+(r>>10), 0xDC00+(r&0x3FF)
			buf.Write([]byte{byte(hi >> 8), byte(hi), byte(lo >> 8), byte(lo)})
			continue
		}
		buf.WriteByte(byte(r >> 8))
		buf.WriteByte(byte(r & 0xFF))
	}
	return &HexStringObject{Value: buf.Bytes()}
}

func decodeText(value []byte) string {
	if len(value) < 2 || value[0] != 0xFE || value[1] != 0xFF {
		runes := make([]rune, len(value))
		for i, b := range value {
			runes[i] = rune(b)
		}
		return string(runes)
	}
	var runes []rune
	for i := 2; i+1 < len(value); i += 2 {
		u := rune(value[i])<<8 | rune(value[i+1])
		if u >= 0xD800 && u < 0xDC00 && i+3 < len(value) {
			lo := rune(value[i+2])<<8 | rune(value[i+3])
			u = 0x10000 + (u-0xD800)<<10 + (lo - 0xDC00)
			i += 2
		}
		runes = append(runes, u)
	}
	return string(runes)
}

// ArrayObject represents a PDF array.
type ArrayObject []PdfObject

// NewArray creates a new array.
func NewArray(items ...PdfObject) ArrayObject {
	return ArrayObject(items)
}

// NumberArray creates an array of numbers.
func NumberArray(values ...float64) ArrayObject {
	arr := make(ArrayObject, len(values))
	for i, v := range values {
		arr[i] = Number(v)
	}
	return arr
}

func (ArrayObject) isPdfObject() {}

// Kind implements PdfObject.
func (ArrayObject) Kind() Kind { return KindArray }

// ByteSize implements PdfObject.
func (a ArrayObject) ByteSize() int {
	size := 2
	for i, item := range a {
		if i > 0 {
			size++
		}
		size += item.ByteSize()
	}
	return size
}

// WriteTo implements PdfObject.
func (a ArrayObject) WriteTo(w io.Writer) (int64, error) {
	ow := &objectWriter{w: w}
	ow.writeString("[")
	for i, item := range a {
		if i > 0 {
			ow.writeString(" ")
		}
		ow.writeObject(item)
	}
	ow.writeString("]")
	return ow.n, ow.err
}

// Clone implements PdfObject.
func (a ArrayObject) Clone() PdfObject {
	result := make(ArrayObject, len(a))
	for i, item := range a {
		result[i] = item.Clone()
	}
	return result
}

// Get returns the item at the given index.
func (a ArrayObject) Get(index int) PdfObject {
	if index < 0 || index >= len(a) {
		return nil
	}
	return a[index]
}

// DictionaryObject represents a PDF dictionary. Keys are written in
// insertion order.
type DictionaryObject struct {
	entries map[string]PdfObject
	order   []string
}

// NewDictionary creates a new dictionary.
func NewDictionary() *DictionaryObject {
	return &DictionaryObject{
		entries: make(map[string]PdfObject),
		order:   make([]string, 0),
	}
}

func (*DictionaryObject) isPdfObject() {}

// Kind implements PdfObject.
func (*DictionaryObject) Kind() Kind { return KindDictionary }

// ByteSize implements PdfObject.
func (d *DictionaryObject) ByteSize() int {
	size := len("<<") + len("\n>>")
	for _, key := range d.order {
		size += 1 + NameObject(key).ByteSize() + 1 + d.entries[key].ByteSize()
	}
	return size
}

// WriteTo implements PdfObject.
func (d *DictionaryObject) WriteTo(w io.Writer) (int64, error) {
	ow := &objectWriter{w: w}
	ow.writeString("<<")
	for _, key := range d.order {
		ow.writeString("\n")
		ow.writeObject(NameObject(key))
		ow.writeString(" ")
		ow.writeObject(d.entries[key])
	}
	ow.writeString("\n>>")
	return ow.n, ow.err
}

// Clone implements PdfObject.
func (d *DictionaryObject) Clone() PdfObject {
	result := NewDictionary()
	for _, key := range d.order {
		result.Set(key, d.entries[key].Clone())
	}
	return result
}

// Set sets a key-value pair. An existing key keeps its position; a nil
// value removes the key.
func (d *DictionaryObject) Set(key string, value PdfObject) {
	if value == nil {
		d.Delete(key)
		return
	}
	if d.entries == nil {
		d.entries = make(map[string]PdfObject)
	}
	if _, exists := d.entries[key]; !exists {
		d.order = append(d.order, key)
	}
	d.entries[key] = value
}

// Get returns the value for a key.
func (d *DictionaryObject) Get(key string) PdfObject {
	return d.entries[key]
}

// GetName returns a name value.
func (d *DictionaryObject) GetName(key string) string {
	if name, ok := d.Get(key).(NameObject); ok {
		return string(name)
	}
	return ""
}

// GetInt returns an integer value.
func (d *DictionaryObject) GetInt(key string) (int64, bool) {
	if i, ok := d.Get(key).(IntegerObject); ok {
		return int64(i), true
	}
	return 0, false
}

// GetArray returns an array value.
func (d *DictionaryObject) GetArray(key string) ArrayObject {
	if arr, ok := d.Get(key).(ArrayObject); ok {
		return arr
	}
	return nil
}

// GetDict returns a dictionary value.
func (d *DictionaryObject) GetDict(key string) *DictionaryObject {
	if dict, ok := d.Get(key).(*DictionaryObject); ok {
		return dict
	}
	return nil
}

// Delete removes a key.
func (d *DictionaryObject) Delete(key string) {
	if _, exists := d.entries[key]; !exists {
		return
	}
	delete(d.entries, key)
	for i, k := range d.order {
		if k == key {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Has returns true if the key exists.
func (d *DictionaryObject) Has(key string) bool {
	_, exists := d.entries[key]
	return exists
}

// Keys returns all keys in insertion order.
func (d *DictionaryObject) Keys() []string {
	return append([]string(nil), d.order...)
}

// Len returns the number of entries.
func (d *DictionaryObject) Len() int {
	return len(d.order)
}

// StreamObject represents a PDF stream. Data holds the payload exactly as
// it is written, after any filters.
type StreamObject struct {
	Dictionary *DictionaryObject
	Data       []byte
}

const (
	streamStart = "\nstream\n"
	streamEnd   = "\nendstream"
)

// NewStream creates a new stream.
func NewStream(dict *DictionaryObject, data []byte) *StreamObject {
	if dict == nil {
		dict = NewDictionary()
	}
	s := &StreamObject{Dictionary: dict, Data: data}
	s.syncLength()
	return s
}

func (*StreamObject) isPdfObject() {}

// Kind implements PdfObject.
func (*StreamObject) Kind() Kind { return KindStream }

func (s *StreamObject) syncLength() {
	if s.Dictionary == nil {
		s.Dictionary = NewDictionary()
	}
	s.Dictionary.Set("Length", IntegerObject(len(s.Data)))
}

// SetData replaces the payload and updates Length.
func (s *StreamObject) SetData(data []byte) {
	s.Data = data
	s.syncLength()
}

// Length returns the Length entry after synchronising it with the payload.
func (s *StreamObject) Length() int {
	s.syncLength()
	n, _ := s.Dictionary.GetInt("Length")
	return int(n)
}

// ByteSize implements PdfObject.
func (s *StreamObject) ByteSize() int {
	s.syncLength()
	return s.Dictionary.ByteSize() + len(streamStart) + len(s.Data) + len(streamEnd)
}

// WriteTo implements PdfObject.
func (s *StreamObject) WriteTo(w io.Writer) (int64, error) {
	s.syncLength()
	ow := &objectWriter{w: w}
	ow.writeObject(s.Dictionary)
	ow.writeString(streamStart)
	ow.write(s.Data)
	ow.writeString(streamEnd)
	return ow.n, ow.err
}

// Clone implements PdfObject.
func (s *StreamObject) Clone() PdfObject {
	return &StreamObject{
		Dictionary: s.Dictionary.Clone().(*DictionaryObject),
		Data:       bytes.Clone(s.Data),
	}
}

// Rectangle represents a PDF rectangle (lower-left and upper-right coordinates).
type Rectangle struct {
	LLX, LLY float64 // Lower-left
	URX, URY float64 // Upper-right
}

// NewRectangle creates a rectangle from an array.
func NewRectangle(arr ArrayObject) (*Rectangle, error) {
	if len(arr) != 4 {
		return nil, &TypeError{Expected: "4-element rectangle array", Got: arr}
	}

	var values [4]float64
	for i, obj := range arr {
		switch v := obj.(type) {
		case IntegerObject:
			values[i] = float64(v)
		case RealObject:
			values[i] = float64(v)
		default:
			return nil, &TypeError{Expected: fmt.Sprintf("numeric rectangle element %d", i), Got: obj}
		}
	}

	return &Rectangle{
		LLX: values[0],
		LLY: values[1],
		URX: values[2],
		URY: values[3],
	}, nil
}

// ToArray converts the rectangle to a PDF array.
func (r *Rectangle) ToArray() ArrayObject {
	return NumberArray(r.LLX, r.LLY, r.URX, r.URY)
}

// Width returns the rectangle width.
func (r *Rectangle) Width() float64 {
	return r.URX - r.LLX
}

// Height returns the rectangle height.
func (r *Rectangle) Height() float64 {
	return r.URY - r.LLY
}
