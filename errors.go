package embset

import (
	"errors"
	"fmt"
)

var (
	// ErrZeroVector is returned when projecting onto or comparing against a
	// vector with zero norm.
	ErrZeroVector = errors.New("zero-norm vector")

	// ErrInvalidN is returned when a similarity query requests a result count
	// that is not positive or exceeds the set size.
	ErrInvalidN = errors.New("invalid result count")

	// ErrEmptySet is returned when an aggregate is requested over a set with
	// zero members.
	ErrEmptySet = errors.New("empty embedding set")
)

// ErrDimensionMismatch indicates operands or entries with differing vector
// dimensions.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrDuplicateName indicates that a set was constructed from a list of
// embeddings containing a repeated name.
type ErrDuplicateName struct {
	Name string
}

func (e *ErrDuplicateName) Error() string {
	return fmt.Sprintf("duplicate embedding name: %q", e.Name)
}

// ErrLengthMismatch indicates parallel name/vector slices of unequal length.
type ErrLengthMismatch struct {
	Names   int
	Vectors int
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("length mismatch: %d names, %d vectors", e.Names, e.Vectors)
}

// ErrUnknownName indicates a lookup or query referencing a name absent from
// the set.
type ErrUnknownName struct {
	Name string
}

func (e *ErrUnknownName) Error() string {
	return fmt.Sprintf("unknown embedding name: %q", e.Name)
}

// ErrUnknownProperty indicates a property key absent from a member embedding.
type ErrUnknownProperty struct {
	Key  string
	Name string
}

func (e *ErrUnknownProperty) Error() string {
	return fmt.Sprintf("embedding %q has no property %q", e.Name, e.Key)
}

func checkDim(expected, actual int) error {
	if expected != actual {
		return &ErrDimensionMismatch{Expected: expected, Actual: actual}
	}
	return nil
}
