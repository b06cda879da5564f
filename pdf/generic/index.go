package generic

import "sort"

// ObjectIndex is the arena of indirect objects of one document. It is the
// only place object numbers are allocated. Numbers start at 1, grow
// monotonically and are never reused.
//
// An ObjectIndex is not safe for concurrent use.
type ObjectIndex struct {
	objects map[int]PdfObject
	next    int
}

// NewObjectIndex creates an empty index.
func NewObjectIndex() *ObjectIndex {
	return &ObjectIndex{
		objects: make(map[int]PdfObject),
		next:    1,
	}
}

// Register stores obj under the next unused object number and returns a
// reference to it.
func (x *ObjectIndex) Register(obj PdfObject) Reference {
	num := x.next
	x.next++
	if obj == nil {
		obj = NullObject{}
	}
	x.objects[num] = obj
	return Reference{ObjectNumber: num, GenerationNumber: 0}
}

// Lookup resolves ref.
func (x *ObjectIndex) Lookup(ref Reference) (PdfObject, error) {
	obj, ok := x.objects[ref.ObjectNumber]
	if !ok || ref.GenerationNumber != 0 {
		return nil, &ReferenceError{Ref: ref}
	}
	return obj, nil
}

// LookupDict resolves ref and requires a dictionary.
func (x *ObjectIndex) LookupDict(ref Reference) (*DictionaryObject, error) {
	obj, err := x.Lookup(ref)
	if err != nil {
		return nil, err
	}
	dict, ok := obj.(*DictionaryObject)
	if !ok {
		return nil, &TypeError{Expected: "dictionary at " + ref.String(), Got: obj}
	}
	return dict, nil
}

// Assign replaces the object stored under an already allocated number.
func (x *ObjectIndex) Assign(ref Reference, obj PdfObject) error {
	if _, ok := x.objects[ref.ObjectNumber]; !ok {
		return &ReferenceError{Ref: ref}
	}
	if obj == nil {
		obj = NullObject{}
	}
	x.objects[ref.ObjectNumber] = obj
	return nil
}

// Has reports whether ref resolves.
func (x *ObjectIndex) Has(ref Reference) bool {
	_, err := x.Lookup(ref)
	return err == nil
}

// Len returns the number of registered objects.
func (x *ObjectIndex) Len() int {
	return len(x.objects)
}

// Refs returns every registered reference in ascending object-number order.
func (x *ObjectIndex) Refs() []Reference {
	nums := make([]int, 0, len(x.objects))
	for num := range x.objects {
		nums = append(nums, num)
	}
	sort.Ints(nums)
	refs := make([]Reference, len(nums))
	for i, num := range nums {
		refs[i] = Reference{ObjectNumber: num}
	}
	return refs
}
