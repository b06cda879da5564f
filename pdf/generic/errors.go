package generic

import (
	"errors"
	"fmt"
)

// Error kinds shared by every package of the module. Check with errors.Is.
var (
	ErrTypeValidation      = errors.New("type validation failed")
	ErrIndexOutOfRange     = errors.New("index out of range")
	ErrUnresolvedReference = errors.New("unresolved reference")
	ErrMalformedEmbedding  = errors.New("malformed embedding")
)

// TypeError reports a value of the wrong type where an object or operator
// was expected.
type TypeError struct {
	Expected string
	Got      any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%v: expected %s, got %T", ErrTypeValidation, e.Expected, e.Got)
}

// Unwrap returns ErrTypeValidation.
func (e *TypeError) Unwrap() error {
	return ErrTypeValidation
}

// RangeError reports an index outside [Min, Max].
type RangeError struct {
	Op    string
	Index int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %v: %d not in [%d, %d]", e.Op, ErrIndexOutOfRange, e.Index, e.Min, e.Max)
}

// Unwrap returns ErrIndexOutOfRange.
func (e *RangeError) Unwrap() error {
	return ErrIndexOutOfRange
}

// CheckIndex returns a *RangeError unless min <= index <= max.
func CheckIndex(op string, index, min, max int) error {
	if index < min || index > max {
		return &RangeError{Op: op, Index: index, Min: min, Max: max}
	}
	return nil
}

// ReferenceError reports a reference with no entry in the index.
type ReferenceError struct {
	Ref Reference
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%v: %s", ErrUnresolvedReference, e.Ref)
}

// Unwrap returns ErrUnresolvedReference.
func (e *ReferenceError) Unwrap() error {
	return ErrUnresolvedReference
}

// EmbeddingError reports font or image bytes a collaborator could not use.
type EmbeddingError struct {
	Resource string
	Cause    error
}

func (e *EmbeddingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v: %s: %v", ErrMalformedEmbedding, e.Resource, e.Cause)
	}
	return fmt.Sprintf("%v: %s", ErrMalformedEmbedding, e.Resource)
}

// Unwrap returns ErrMalformedEmbedding and the collaborator's error.
func (e *EmbeddingError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrMalformedEmbedding}
	}
	return []error{ErrMalformedEmbedding, e.Cause}
}
