package content

import (
	"io"

	"github.com/georgepadayatti/pdfgen/pdf/filters"
	"github.com/georgepadayatti/pdfgen/pdf/generic"
)

// ContentStream is a stream whose payload is derived from an ordered
// operator sequence. Mutations mark the payload dirty; the payload, Length
// and Filter entries are rebuilt before the stream is sized or written.
type ContentStream struct {
	*generic.StreamObject

	ops     []Operator
	filters []string
	dirty   bool
	err     error
}

// NewContentStream creates an unregistered content stream holding ops.
// Invalid operators are reported by Err and make WriteTo fail.
func NewContentStream(ops ...Operator) *ContentStream {
	return &ContentStream{
		StreamObject: generic.NewStream(nil, nil),
		ops:          append([]Operator(nil), ops...),
		dirty:        true,
	}
}

// SetFilters selects the filters applied to the encoded operators, in
// /Filter order. An unknown filter name leaves the stream unchanged.
func (cs *ContentStream) SetFilters(names ...string) error {
	for _, name := range names {
		if _, err := filters.GetFilter(name); err != nil {
			return err
		}
	}
	cs.filters = append([]string(nil), names...)
	cs.dirty = true
	return nil
}

// Filters returns the configured filter names.
func (cs *ContentStream) Filters() []string {
	return append([]string(nil), cs.filters...)
}

// Operators returns a copy of the operator sequence.
func (cs *ContentStream) Operators() []Operator {
	return append([]Operator(nil), cs.ops...)
}

// Len returns the number of operators.
func (cs *ContentStream) Len() int { return len(cs.ops) }

// Push appends ops. An invalid operator rejects the whole call.
func (cs *ContentStream) Push(ops ...Operator) error {
	if err := validateAll(ops); err != nil {
		return err
	}
	cs.ops = append(cs.ops, ops...)
	cs.dirty = true
	return nil
}

// Insert places ops before position index; index may equal Len.
func (cs *ContentStream) Insert(index int, ops ...Operator) error {
	if err := generic.CheckIndex("insert operator", index, 0, len(cs.ops)); err != nil {
		return err
	}
	if err := validateAll(ops); err != nil {
		return err
	}
	next := make([]Operator, 0, len(cs.ops)+len(ops))
	next = append(next, cs.ops[:index]...)
	next = append(next, ops...)
	next = append(next, cs.ops[index:]...)
	cs.ops = next
	cs.dirty = true
	return nil
}

// Remove deletes the operator at index.
func (cs *ContentStream) Remove(index int) error {
	if err := generic.CheckIndex("remove operator", index, 0, len(cs.ops)-1); err != nil {
		return err
	}
	cs.ops = append(cs.ops[:index:index], cs.ops[index+1:]...)
	cs.dirty = true
	return nil
}

// Replace swaps the operator at index for op.
func (cs *ContentStream) Replace(index int, op Operator) error {
	if err := generic.CheckIndex("replace operator", index, 0, len(cs.ops)-1); err != nil {
		return err
	}
	if err := op.Validate(); err != nil {
		return err
	}
	cs.ops[index] = op
	cs.dirty = true
	return nil
}

// Reset replaces the whole sequence with ops.
func (cs *ContentStream) Reset(ops ...Operator) {
	cs.ops = append([]Operator(nil), ops...)
	cs.dirty = true
}

// Decoded returns the encoded operators before any filter is applied.
func (cs *ContentStream) Decoded() []byte {
	return EncodeOperators(cs.ops)
}

func (cs *ContentStream) refresh() {
	if !cs.dirty {
		return
	}
	raw := EncodeOperators(cs.ops)
	data, filterObj, err := filters.EncodeStream(raw, cs.filters...)
	if err != nil {
		data, filterObj = raw, nil
	}
	// Operators handed to NewContentStream or Reset are checked here.
	cs.err = validateAll(cs.ops)
	if cs.err == nil {
		cs.err = err
	}
	cs.Dictionary.Set("Filter", filterObj)
	cs.SetData(data)
	cs.dirty = false
}

// Err returns the error that keeps the stream from being written, if any.
func (cs *ContentStream) Err() error {
	cs.refresh()
	return cs.err
}

// Length returns the payload length after rebuilding a dirty payload.
func (cs *ContentStream) Length() int {
	cs.refresh()
	return cs.StreamObject.Length()
}

// ByteSize implements generic.PdfObject.
func (cs *ContentStream) ByteSize() int {
	cs.refresh()
	return cs.StreamObject.ByteSize()
}

// WriteTo implements generic.PdfObject.
func (cs *ContentStream) WriteTo(w io.Writer) (int64, error) {
	cs.refresh()
	if cs.err != nil {
		return 0, cs.err
	}
	return cs.StreamObject.WriteTo(w)
}

// Clone implements generic.PdfObject.
func (cs *ContentStream) Clone() generic.PdfObject {
	cs.refresh()
	return &ContentStream{
		StreamObject: cs.StreamObject.Clone().(*generic.StreamObject),
		ops:          cs.Operators(),
		filters:      cs.Filters(),
		err:          cs.err,
	}
}
