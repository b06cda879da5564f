package generic

import (
	"errors"
	"testing"
)

func TestObjectIndexRegister(t *testing.T) {
	idx := NewObjectIndex()

	const k = 25
	last := 0
	seen := make(map[int]bool)
	for i := 0; i < k; i++ {
		ref := idx.Register(IntegerObject(i))
		if ref.ObjectNumber <= last {
			t.Fatalf("Object number %d not greater than previous %d", ref.ObjectNumber, last)
		}
		if seen[ref.ObjectNumber] {
			t.Fatalf("Object number %d reused", ref.ObjectNumber)
		}
		if ref.GenerationNumber != 0 {
			t.Errorf("Expected generation 0, got %d", ref.GenerationNumber)
		}
		seen[ref.ObjectNumber] = true
		last = ref.ObjectNumber
	}

	if idx.Len() != k {
		t.Errorf("Expected %d objects, got %d", k, idx.Len())
	}

	refs := idx.Refs()
	for i, ref := range refs {
		if ref.ObjectNumber != i+1 {
			t.Errorf("Refs()[%d] = %s, expected ascending numbering", i, ref)
		}
	}
}

func TestObjectIndexLookup(t *testing.T) {
	idx := NewObjectIndex()
	ref := idx.Register(NameObject("Hello"))

	obj, err := idx.Lookup(ref)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if obj.(NameObject) != "Hello" {
		t.Errorf("Unexpected object %v", obj)
	}

	_, err = idx.Lookup(NewReference(99, 0))
	if !errors.Is(err, ErrUnresolvedReference) {
		t.Errorf("Expected ErrUnresolvedReference, got %v", err)
	}
	var refErr *ReferenceError
	if !errors.As(err, &refErr) || refErr.Ref.ObjectNumber != 99 {
		t.Errorf("Expected *ReferenceError for 99, got %v", err)
	}

	if _, err := idx.Lookup(NewReference(ref.ObjectNumber, 1)); !errors.Is(err, ErrUnresolvedReference) {
		t.Errorf("Unknown generation should not resolve, got %v", err)
	}
}

func TestObjectIndexIndependentCounters(t *testing.T) {
	a := NewObjectIndex()
	b := NewObjectIndex()
	a.Register(NullObject{})
	a.Register(NullObject{})
	if ref := b.Register(NullObject{}); ref.ObjectNumber != 1 {
		t.Errorf("Indexes must not share counters, got %d", ref.ObjectNumber)
	}
}

func TestObjectIndexAssign(t *testing.T) {
	idx := NewObjectIndex()
	ref := idx.Register(NewDictionary())

	replacement := NewDictionary()
	replacement.Set("Type", NameObject("Catalog"))
	if err := idx.Assign(ref, replacement); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	dict, err := idx.LookupDict(ref)
	if err != nil || dict.GetName("Type") != "Catalog" {
		t.Errorf("Assign did not replace object: %v", err)
	}

	if err := idx.Assign(NewReference(5, 0), NullObject{}); !errors.Is(err, ErrUnresolvedReference) {
		t.Errorf("Assign to unallocated number should fail, got %v", err)
	}
	if idx.Len() != 1 {
		t.Errorf("Failed Assign must not add entries, got %d", idx.Len())
	}

	intRef := idx.Register(IntegerObject(1))
	if _, err := idx.LookupDict(intRef); !errors.Is(err, ErrTypeValidation) {
		t.Errorf("Expected ErrTypeValidation, got %v", err)
	}
}

func TestCheckIndex(t *testing.T) {
	if err := CheckIndex("insert", 3, 0, 3); err != nil {
		t.Errorf("Unexpected error %v", err)
	}
	err := CheckIndex("remove", -1, 0, 2)
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Expected ErrIndexOutOfRange, got %v", err)
	}
	if err.Error() != "remove: index out of range: -1 not in [0, 2]" {
		t.Errorf("Unexpected message %q", err.Error())
	}
}

func TestEmbeddingErrorUnwrap(t *testing.T) {
	cause := errors.New("bad header")
	err := error(&EmbeddingError{Resource: "font", Cause: cause})
	if !errors.Is(err, ErrMalformedEmbedding) || !errors.Is(err, cause) {
		t.Errorf("EmbeddingError should match both kinds, got %v", err)
	}
}
