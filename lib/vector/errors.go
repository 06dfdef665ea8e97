// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package vector

import (
	"errors"
	"fmt"
)

var (
	// ErrIncomparable is returned by a Comparator (and by the
	// structural Compare) when two values have no ordering.
	ErrIncomparable = errors.New("values are not comparable")

	// ErrRecursive is returned by operations that cannot give a
	// meaningful result for a vector that contains itself.
	ErrRecursive = errors.New("recursive structure")
)

// ArgumentError is a negative size or count where a non-negative one
// is required, or some other malformed argument.  The operation that
// returned it had no side effects.
type ArgumentError struct {
	Op  string
	Msg string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("vector.%s: %s", e.Op, e.Msg)
}

// IndexError is an index that is out of bounds even after
// negative-index normalization.  The operation that returned it had no
// side effects.
type IndexError struct {
	Op    string
	Index int
	Len   int
	// Msg overrides the default message.
	Msg string
}

func (e *IndexError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("vector.%s: %s", e.Op, e.Msg)
	}
	return fmt.Sprintf("vector.%s: index %d out of bounds (length %d)", e.Op, e.Index, e.Len)
}

// RangeError is a value that is outside of the range that an
// operation can handle: a random index outside of [0,n), or a result
// that would be too large to represent.
type RangeError struct {
	Op  string
	Msg string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("vector.%s: %s", e.Op, e.Msg)
}

// TypeError is returned by the conversion boundary when a value
// cannot be coerced to the requested type.
type TypeError struct {
	Op    string
	Value any
	Want  string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("vector.%s: cannot convert %T into %s", e.Op, e.Value, e.Want)
}

// SortError is an ordering failure: a Comparator that returned an
// error (or panicked) for the pair A, B.
type SortError struct {
	A, B any
	Err  error
}

func (e *SortError) Error() string {
	return fmt.Sprintf("comparison of %v with %v failed: %v", e.A, e.B, e.Err)
}

func (e *SortError) Unwrap() error { return e.Err }
