// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package vector implements a resizable ordered sequence container:
// a window (start, length) onto a fixed-capacity tuple.Tuple.
//
// Every structural mutation (indexed write, insertion, deletion,
// range-replace, append) is a particular shape of a single splice
// operation.  Appends grow the tuple geometrically; removing from the
// head slides the window forward instead of copying; large deletions
// shrink the tuple.
//
// A Vector is not safe for concurrent use.
package vector

import (
	"fmt"
	"math"

	"github.com/charygao/rubinius/lib/tuple"
)

const defaultCapacity = 8

// MaxLen is the largest length that a vector may have.  It leaves
// enough headroom that size arithmetic cannot overflow an int.  An
// operation that would need a longer vector fails with an
// *ArgumentError and has no side effects.
const MaxLen = math.MaxInt / 4

func tooBig(op string) error {
	return &ArgumentError{Op: op, Msg: "argument too big"}
}

// Vector is a sequence of T.  The zero value is an empty vector ready
// to use.
//
// Logical element i lives at tuple slot start+i.  Every slot outside
// of [start, start+total) is empty.
type Vector[T any] struct {
	tuple *tuple.Tuple[T]
	start int
	total int

	// how many times the vector has moved to a new tuple
	reallocs int
}

// New returns an empty vector with the default capacity.
func New[T any]() *Vector[T] {
	return &Vector[T]{
		tuple: tuple.New[T](defaultCapacity),
	}
}

// Of returns a vector holding the given items.
func Of[T any](items ...T) *Vector[T] {
	return From(items)
}

// From returns a vector holding a copy of the given slice.
func From[T any](items []T) *Vector[T] {
	ret := &Vector[T]{
		tuple: tuple.New[T](len(items)),
		total: len(items),
	}
	ret.tuple.CopyIn(items, 0)
	return ret
}

// Make returns a vector of the given size with every element set to
// fill.
func Make[T any](size int, fill T) (*Vector[T], error) {
	if size < 0 {
		return nil, &ArgumentError{Op: "Make", Msg: fmt.Sprintf("negative size (%d)", size)}
	}
	if size > MaxLen {
		return nil, tooBig("Make")
	}
	return &Vector[T]{
		tuple: tuple.Pattern(size, fill),
		total: size,
	}, nil
}

// Generate returns a vector of the given size with element i set to
// fn(i).
func Generate[T any](size int, fn func(int) T) (*Vector[T], error) {
	if size < 0 {
		return nil, &ArgumentError{Op: "Generate", Msg: fmt.Sprintf("negative size (%d)", size)}
	}
	if size > MaxLen {
		return nil, tooBig("Generate")
	}
	ret := &Vector[T]{
		tuple: tuple.New[T](size),
	}
	for i := 0; i < size; i++ {
		ret.tuple.Put(i, fn(i))
		ret.total++
	}
	return ret, nil
}

// Dup returns a vector with a duplicate of v's tuple and the same
// window.  The elements themselves are not copied.
func (v *Vector[T]) Dup() *Vector[T] {
	ret := &Vector[T]{
		start: v.start,
		total: v.total,
	}
	if v.tuple != nil {
		ret.tuple = v.tuple.Dup()
	}
	return ret
}

// Replace makes v a duplicate of other.  A nil other empties v.
func (v *Vector[T]) Replace(other *Vector[T]) {
	if other == v {
		return
	}
	reallocs := v.reallocs + 1
	if other == nil {
		*v = Vector[T]{}
	} else {
		*v = *other.Dup()
	}
	v.reallocs = reallocs
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int {
	return v.total
}

// Cap returns the capacity of the underlying tuple.
func (v *Vector[T]) Cap() int {
	if v.tuple == nil {
		return 0
	}
	return v.tuple.Len()
}

// Layout describes where a vector's window sits in its tuple.
type Layout struct {
	Start int
	Len   int
	Cap   int
}

// Layout returns the current start offset, length, and capacity.
func (v *Vector[T]) Layout() Layout {
	return Layout{
		Start: v.start,
		Len:   v.total,
		Cap:   v.Cap(),
	}
}

// Reallocs returns how many times v has moved its elements to a new
// tuple, whatever the new capacity.  A Dup starts counting from 0.
func (v *Vector[T]) Reallocs() int {
	return v.reallocs
}

func (v *Vector[T]) IsEmpty() bool {
	return v.total == 0
}

// normalize resolves a possibly-negative index against the length,
// without bounds-checking the result.
func (v *Vector[T]) normalize(i int) int {
	if i < 0 {
		i += v.total
	}
	return i
}

// At returns element i; a negative i counts from the end.  An index
// that is out of range is "not found" rather than an error.
func (v *Vector[T]) At(i int) (T, bool) {
	var zero T
	i = v.normalize(i)
	if i < 0 || i >= v.total {
		return zero, false
	}
	return v.tuple.At(v.start + i), true
}

// Fetch is like At, but an out-of-range index is an *IndexError.
func (v *Vector[T]) Fetch(i int) (T, error) {
	val, ok := v.At(i)
	if !ok {
		return val, &IndexError{Op: "Fetch", Index: i, Len: v.total}
	}
	return val, nil
}

func (v *Vector[T]) First() (T, bool) { return v.At(0) }
func (v *Vector[T]) Last() (T, bool)  { return v.At(-1) }

// FirstN returns a vector of the first n elements (or fewer, if there
// are fewer than n).
func (v *Vector[T]) FirstN(n int) (*Vector[T], error) {
	if n < 0 {
		return nil, &ArgumentError{Op: "FirstN", Msg: fmt.Sprintf("negative count (%d)", n)}
	}
	return v.window(0, min(n, v.total)), nil
}

// LastN returns a vector of the last n elements (or fewer, if there
// are fewer than n).
func (v *Vector[T]) LastN(n int) (*Vector[T], error) {
	if n < 0 {
		return nil, &ArgumentError{Op: "LastN", Msg: fmt.Sprintf("negative count (%d)", n)}
	}
	n = min(n, v.total)
	return v.window(v.total-n, n), nil
}

// Drop returns a vector of all but the first n elements.
func (v *Vector[T]) Drop(n int) (*Vector[T], error) {
	if n < 0 {
		return nil, &ArgumentError{Op: "Drop", Msg: fmt.Sprintf("attempt to drop negative size (%d)", n)}
	}
	n = min(n, v.total)
	return v.window(n, v.total-n), nil
}

// window returns a fresh vector holding a copy of logical elements
// [off, off+cnt).  The arguments must already be in-bounds.
func (v *Vector[T]) window(off, cnt int) *Vector[T] {
	if cnt == 0 {
		return New[T]()
	}
	return From(v.tuple.CopyOut(v.start+off, cnt))
}

// Slice returns a copy of count elements starting at start.
//
//   - A negative start counts from the end; if it is still negative,
//     the result is "not found".
//   - A negative count is "not found".
//   - A start exactly at Len() is an empty vector, but a start past
//     Len() is "not found".
//   - count is clamped to the number of elements available.
func (v *Vector[T]) Slice(start, count int) (*Vector[T], bool) {
	start, count, ok := v.resolveSlice(start, count)
	if !ok {
		return nil, false
	}
	return v.window(start, count), true
}

func (v *Vector[T]) resolveSlice(start, count int) (int, int, bool) {
	if count < 0 {
		return 0, 0, false
	}
	start = v.normalize(start)
	if start < 0 || start > v.total {
		return 0, 0, false
	}
	return start, min(count, v.total-start), true
}

// Interval is a range of indexes, either of which may be negative to
// count from the end.  The End is included unless Exclusive is set.
type Interval struct {
	Begin, End int
	Exclusive  bool
}

// resolve converts the Interval to a (start, count) pair for a
// sequence of the given length.  The start is normalized but not
// otherwise bounds-checked; the count is never negative.
func (r Interval) resolve(length int) (start, count int) {
	start, end := r.Begin, r.End
	if start < 0 {
		start += length
	}
	if end < 0 {
		end += length
	}
	if start < 0 {
		return start, 0
	}
	if !r.Exclusive && end < math.MaxInt {
		end++
	}
	return start, max(end-start, 0)
}

// SliceInterval is Slice with the bounds given as an Interval.
func (v *Vector[T]) SliceInterval(r Interval) (*Vector[T], bool) {
	start, count := r.resolve(v.total)
	if start < 0 {
		return nil, false
	}
	return v.Slice(start, count)
}

// Values returns a copy of the elements as a plain slice.
func (v *Vector[T]) Values() []T {
	if v.total == 0 {
		return []T{}
	}
	return v.tuple.CopyOut(v.start, v.total)
}

// Range calls fn for each element in order, stopping early if fn
// returns false.
//
// fn may modify v; iteration continues by index over whatever v holds
// at that point.
func (v *Vector[T]) Range(fn func(int, T) bool) {
	for i := 0; i < v.total; i++ {
		if !fn(i, v.tuple.At(v.start+i)) {
			return
		}
	}
}

// ReverseRange is like Range, but goes from the last element to the
// first.
func (v *Vector[T]) ReverseRange(fn func(int, T) bool) {
	for i := v.total - 1; i >= 0; i-- {
		if i >= v.total {
			// fn shrank the vector.
			i = v.total
			continue
		}
		if !fn(i, v.tuple.At(v.start+i)) {
			return
		}
	}
}

// Index returns the index of the first element for which fn returns
// true.
func (v *Vector[T]) Index(fn func(T) bool) (int, bool) {
	for i := 0; i < v.total; i++ {
		if fn(v.tuple.At(v.start + i)) {
			return i, true
		}
	}
	return 0, false
}

// RIndex returns the index of the last element for which fn returns
// true.
func (v *Vector[T]) RIndex(fn func(T) bool) (int, bool) {
	for i := v.total - 1; i >= 0; i-- {
		if fn(v.tuple.At(v.start + i)) {
			return i, true
		}
	}
	return 0, false
}

func (v *Vector[T]) ContainsFunc(fn func(T) bool) bool {
	_, ok := v.Index(fn)
	return ok
}

func Contains[T comparable](v *Vector[T], needle T) bool {
	return v.ContainsFunc(func(straw T) bool {
		return straw == needle
	})
}

// ValuesAt returns a vector of the elements at each of the given
// indexes; an index that is out of range contributes a zero value.
func (v *Vector[T]) ValuesAt(idxs ...int) *Vector[T] {
	ret := &Vector[T]{
		tuple: tuple.New[T](len(idxs)),
		total: len(idxs),
	}
	for i, idx := range idxs {
		val, _ := v.At(idx)
		ret.tuple.Put(i, val)
	}
	return ret
}

// String implements fmt.Stringer using fmt's %v for each element.
func (v *Vector[T]) String() string {
	return v.Inspect(func(x T) string {
		return fmt.Sprintf("%v", x)
	})
}
