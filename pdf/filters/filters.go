// Package filters provides PDF stream filter implementations.
package filters

import (
	"bytes"
	"compress/zlib"
	"encoding/ascii85"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/georgepadayatti/pdfgen/pdf/generic"
)

// Common errors
var (
	ErrUnsupportedFilter = errors.New("unsupported filter")
	ErrDecodeFailed      = errors.New("decode failed")
)

// Filter represents a PDF stream filter.
type Filter interface {
	// Encode encodes the data.
	Encode(data []byte) ([]byte, error)
	// Decode decodes the data.
	Decode(data []byte) ([]byte, error)
	// Name returns the filter name used in a stream's /Filter entry.
	Name() string
}

// FlateDecodeFilter implements the FlateDecode filter (zlib compression).
type FlateDecodeFilter struct {
	// Level is a compress/zlib level; zero selects zlib.DefaultCompression.
	Level int
}

// Name implements Filter.
func (f *FlateDecodeFilter) Name() string {
	return "FlateDecode"
}

// Encode implements Filter.
func (f *FlateDecodeFilter) Encode(data []byte) ([]byte, error) {
	level := f.Level
	if level == 0 {
		level = zlib.DefaultCompression
	}
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("flate encode failed: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("flate encode failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("flate encode failed: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode implements Filter.
func (f *FlateDecodeFilter) Decode(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	defer r.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	return buf.Bytes(), nil
}

// ASCIIHexDecodeFilter implements the ASCIIHexDecode filter.
type ASCIIHexDecodeFilter struct{}

// Name implements Filter.
func (f *ASCIIHexDecodeFilter) Name() string {
	return "ASCIIHexDecode"
}

// Encode implements Filter.
func (f *ASCIIHexDecodeFilter) Encode(data []byte) ([]byte, error) {
	return []byte(hex.EncodeToString(data) + ">"), nil
}

// Decode implements Filter.
func (f *ASCIIHexDecodeFilter) Decode(data []byte) ([]byte, error) {
	var cleaned bytes.Buffer
	for _, b := range data {
		if b == '>' {
			break
		}
		if b != ' ' && b != '\t' && b != '\n' && b != '\r' {
			cleaned.WriteByte(b)
		}
	}

	hexStr := cleaned.String()
	if len(hexStr)%2 != 0 {
		hexStr += "0"
	}
	out, err := hex.DecodeString(hexStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	return out, nil
}

// ASCII85DecodeFilter implements the ASCII85Decode filter.
type ASCII85DecodeFilter struct{}

// Name implements Filter.
func (f *ASCII85DecodeFilter) Name() string {
	return "ASCII85Decode"
}

// Encode implements Filter.
func (f *ASCII85DecodeFilter) Encode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	encoder := ascii85.NewEncoder(&buf)
	if _, err := encoder.Write(data); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	buf.WriteString("~>")
	return buf.Bytes(), nil
}

// Decode implements Filter.
func (f *ASCII85DecodeFilter) Decode(data []byte) ([]byte, error) {
	if end := bytes.Index(data, []byte("~>")); end != -1 {
		data = data[:end]
	}

	var cleaned bytes.Buffer
	for _, b := range data {
		if b != ' ' && b != '\t' && b != '\n' && b != '\r' {
			cleaned.WriteByte(b)
		}
	}

	decoder := ascii85.NewDecoder(bytes.NewReader(cleaned.Bytes()))
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, decoder); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	return buf.Bytes(), nil
}

// Registry maps filter names and their abbreviations to implementations.
var Registry = map[string]Filter{
	"FlateDecode":    &FlateDecodeFilter{},
	"Fl":             &FlateDecodeFilter{},
	"ASCIIHexDecode": &ASCIIHexDecodeFilter{},
	"AHx":            &ASCIIHexDecodeFilter{},
	"ASCII85Decode":  &ASCII85DecodeFilter{},
	"A85":            &ASCII85DecodeFilter{},
}

// GetFilter returns a filter by name.
func GetFilter(name string) (Filter, error) {
	if f, ok := Registry[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFilter, name)
}

// EncodeStream applies filters so that a reader decoding them in the listed
// order recovers data. It returns the encoded bytes and the value for the
// stream's /Filter entry (nil when no filter is given).
func EncodeStream(data []byte, names ...string) ([]byte, generic.PdfObject, error) {
	if len(names) == 0 {
		return data, nil, nil
	}

	result := data
	for i := len(names) - 1; i >= 0; i-- {
		filter, err := GetFilter(names[i])
		if err != nil {
			return nil, nil, err
		}
		result, err = filter.Encode(result)
		if err != nil {
			return nil, nil, fmt.Errorf("filter %s encode failed: %w", names[i], err)
		}
	}

	if len(names) == 1 {
		return result, generic.NameObject(names[0]), nil
	}
	arr := make(generic.ArrayObject, len(names))
	for i, name := range names {
		arr[i] = generic.NameObject(name)
	}
	return result, arr, nil
}

// DecodeStream decodes data that was encoded with the listed filters.
func DecodeStream(data []byte, names ...string) ([]byte, error) {
	result := data
	for _, name := range names {
		filter, err := GetFilter(name)
		if err != nil {
			return nil, err
		}
		result, err = filter.Decode(result)
		if err != nil {
			return nil, fmt.Errorf("filter %s decode failed: %w", name, err)
		}
	}
	return result, nil
}
