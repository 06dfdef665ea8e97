// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package vector

import (
	"fmt"

	"github.com/charygao/rubinius/lib/tuple"
)

// minShrinkable is the smallest capacity that the shrink policy will
// bother reallocating.
const minShrinkable = 16

// A growthFunc decides the capacity of a new tuple, given the number
// of elements that it must hold and the capacity of the old tuple.
type growthFunc func(need, oldCap int) int

// growSplice is the growth policy for general splices.
func growSplice(need, oldCap int) int {
	return max(min(need+oldCap/2, MaxLen), need)
}

// growDouble is the growth policy for appends; doubling keeps a long
// run of appends amortized O(1).
func growDouble(need, oldCap int) int {
	return max(min(2*oldCap, MaxLen), need, defaultCapacity)
}

// Splice replaces count elements starting at index with items.
//
//   - A negative index counts from the end; if it is still negative,
//     that is an *IndexError.
//   - A negative count is an *IndexError.
//   - count is clamped to the number of elements from index to the
//     end.
//   - An index past the end pads the gap with zero values.
//   - A result longer than MaxLen is an *ArgumentError.
//
// After a successful Splice the length is
//
//	max(index, Len()) + len(items) - count
//
// and the content is prefix + items + suffix.  On error, v is
// unchanged.
func (v *Vector[T]) Splice(index, count int, items ...T) error {
	return v.splice("Splice", index, count, items, growSplice)
}

// splice is the single implementation of every structural mutation.
func (v *Vector[T]) splice(op string, index, count int, items []T, grow growthFunc) error {
	if index < 0 {
		if index+v.total < 0 {
			return &IndexError{Op: op, Index: index, Len: v.total}
		}
		index += v.total
	}
	if count < 0 {
		return &IndexError{Op: op, Index: index, Len: v.total,
			Msg: fmt.Sprintf("negative length (%d)", count)}
	}
	count = max(min(count, v.total-index), 0)
	if len(items) > MaxLen || max(index, v.total)-count > MaxLen-len(items) {
		return tooBig(op)
	}
	newTotal := max(index, v.total) + len(items) - count

	oldTotal := v.total
	if v.start+newTotal > v.Cap() {
		if !v.slideForward(newTotal) {
			v.rebuild(grow(newTotal, v.Cap()), index, count, items, newTotal)
			return nil
		}
	}

	if index < v.total {
		tail := v.total - index - count
		v.tuple.CopyFrom(v.tuple, v.start+index+count, tail, v.start+index+len(items))
		if newTotal < v.total {
			v.tuple.Clear(v.start+newTotal, v.total-newTotal)
		}
	}
	// Any gap between the old end and index is already empty.
	if len(items) > 0 {
		v.tuple.CopyIn(items, v.start+index)
	}
	v.total = newTotal

	if newTotal < oldTotal {
		v.shrink()
	}
	return nil
}

// slideForward moves the window to the front of the tuple, if that
// would make room for newTotal elements and there is enough slack at
// the front to make the copy worthwhile.  It returns whether it did
// so.
//
// "Enough" is at least an eighth of the length, so each O(n) slide is
// paid for by n/8 shifts.  A full tuple with less front slack than
// that (a single Shift, say) grows instead; after that one growth,
// interleaved Shift and Push at a steady length never reallocate.
func (v *Vector[T]) slideForward(newTotal int) bool {
	if v.start == 0 || newTotal > v.Cap() || v.start*8 < v.total {
		return false
	}
	v.tuple.CopyFrom(v.tuple, v.start, v.total, 0)
	if v.start >= v.total {
		v.tuple.Clear(v.start, v.total)
	} else {
		v.tuple.Clear(v.total, v.start)
	}
	v.start = 0
	return true
}

// rebuild performs a splice into a brand new tuple of the given
// capacity.
func (v *Vector[T]) rebuild(capacity, index, count int, items []T, newTotal int) {
	nt := tuple.New[T](capacity)
	if head := min(index, v.total); head > 0 {
		nt.CopyFrom(v.tuple, v.start, head, 0)
	}
	nt.CopyIn(items, index)
	if tail := v.total - index - count; tail > 0 {
		nt.CopyFrom(v.tuple, v.start+index+count, tail, index+len(items))
	}
	v.tuple, v.start, v.total = nt, 0, newTotal
	v.reallocs++
}

// shrink reallocates to a smaller tuple if the vector is using less
// than a third of its capacity; the new capacity is halved repeatedly
// while utilization would stay under a sixth, and the window is
// centered in the new tuple.
func (v *Vector[T]) shrink() {
	oldCap := v.Cap()
	if oldCap <= minShrinkable || v.total*3 >= oldCap {
		return
	}
	newCap := oldCap / 2
	for newCap/2 >= minShrinkable && v.total*6 < newCap {
		newCap /= 2
	}
	nt := tuple.New[T](newCap)
	start := (newCap - v.total) / 2
	nt.CopyFrom(v.tuple, v.start, v.total, start)
	v.tuple, v.start = nt, start
	v.reallocs++
}

// Set sets element i, growing the vector if i is past the end.
func (v *Vector[T]) Set(i int, val T) error {
	return v.splice("Set", i, 1, []T{val}, growSplice)
}

// SetSlice replaces count elements starting at start with items.  It
// is Splice by another name.
func (v *Vector[T]) SetSlice(start, count int, items ...T) error {
	return v.splice("SetSlice", start, count, items, growSplice)
}

// SetInterval replaces the elements in the interval with items.
func (v *Vector[T]) SetInterval(r Interval, items ...T) error {
	start, count := r.resolve(v.total)
	if start < 0 {
		return &RangeError{Op: "SetInterval", Msg: fmt.Sprintf("%d..%d out of range", r.Begin, r.End)}
	}
	return v.splice("SetInterval", start, count, items, growSplice)
}

// Insert inserts items before index.  A negative index counts from
// the end such that -1 appends.
func (v *Vector[T]) Insert(index int, items ...T) error {
	if len(items) == 0 {
		return nil
	}
	if index < 0 {
		index += v.total + 1
		if index < 0 {
			return &IndexError{Op: "Insert", Index: index - v.total - 1, Len: v.total}
		}
	}
	return v.splice("Insert", index, 0, items, growSplice)
}

// Push appends items to the end.
func (v *Vector[T]) Push(items ...T) {
	if len(items) == 0 {
		return
	}
	// Appending cannot fail.
	_ = v.splice("Push", v.total, 0, items, growDouble)
}

// Concat appends the elements of each of the others.  Any of the
// others may be v itself.
func (v *Vector[T]) Concat(others ...*Vector[T]) {
	for _, other := range others {
		v.Push(other.Values()...)
	}
}

// Pop removes and returns the last element.
func (v *Vector[T]) Pop() (T, bool) {
	var zero T
	if v.total == 0 {
		return zero, false
	}
	idx := v.start + v.total - 1
	ret := v.tuple.At(idx)
	v.tuple.Put(idx, zero)
	v.total--
	v.shrink()
	return ret, true
}

// PopN removes and returns the last n elements (or fewer, if there are
// fewer than n).
func (v *Vector[T]) PopN(n int) (*Vector[T], error) {
	if n < 0 {
		return nil, &ArgumentError{Op: "PopN", Msg: "negative array size"}
	}
	n = min(n, v.total)
	ret := v.window(v.total-n, n)
	if n > 0 {
		v.tuple.Clear(v.start+v.total-n, n)
		v.total -= n
		v.shrink()
	}
	return ret, nil
}

// Shift removes and returns the first element.  It does not move any
// other elements; it advances the start of the window.
func (v *Vector[T]) Shift() (T, bool) {
	var zero T
	if v.total == 0 {
		return zero, false
	}
	ret := v.tuple.At(v.start)
	v.tuple.Put(v.start, zero)
	v.start++
	v.total--
	v.shrink()
	return ret, true
}

// ShiftN removes and returns the first n elements (or fewer, if there
// are fewer than n).
func (v *Vector[T]) ShiftN(n int) (*Vector[T], error) {
	if n < 0 {
		return nil, &ArgumentError{Op: "ShiftN", Msg: "negative array size"}
	}
	n = min(n, v.total)
	ret := v.window(0, n)
	if n > 0 {
		v.tuple.Clear(v.start, n)
		v.start += n
		v.total -= n
		v.shrink()
	}
	return ret, nil
}

// Unshift prepends items.  If there is enough room in front of the
// window they are written there; otherwise the vector is rebuilt in
// a tuple that exactly fits.
func (v *Vector[T]) Unshift(items ...T) {
	n := len(items)
	if n == 0 {
		return
	}
	if v.start >= n {
		v.start -= n
		v.tuple.CopyIn(items, v.start)
		v.total += n
		return
	}
	nt := tuple.New[T](v.total + n)
	nt.CopyIn(items, 0)
	if v.total > 0 {
		nt.CopyFrom(v.tuple, v.start, v.total, n)
	}
	v.tuple, v.start, v.total = nt, 0, v.total+n
	v.reallocs++
}

// DeleteAt removes and returns element i; a negative i counts from the
// end.
func (v *Vector[T]) DeleteAt(i int) (T, bool) {
	i = v.normalize(i)
	switch {
	case i < 0 || i >= v.total:
		var zero T
		return zero, false
	case i == 0:
		return v.Shift()
	default:
		ret := v.tuple.At(v.start + i)
		_ = v.splice("DeleteAt", i, 1, nil, growSplice)
		return ret, true
	}
}

// SliceDelete removes count elements starting at start, returning
// them.  The arguments are interpreted as for Slice.
func (v *Vector[T]) SliceDelete(start, count int) (*Vector[T], bool) {
	start, count, ok := v.resolveSlice(start, count)
	if !ok {
		return nil, false
	}
	ret := v.window(start, count)
	if count > 0 {
		_ = v.splice("SliceDelete", start, count, nil, growSplice)
	}
	return ret, true
}

// SliceDeleteInterval is SliceDelete with the bounds given as an
// Interval.
func (v *Vector[T]) SliceDeleteInterval(r Interval) (*Vector[T], bool) {
	start, count := r.resolve(v.total)
	if start < 0 {
		return nil, false
	}
	return v.SliceDelete(start, count)
}

// Clear removes every element, and releases the tuple.
func (v *Vector[T]) Clear() {
	*v = Vector[T]{
		tuple:    tuple.New[T](defaultCapacity),
		reallocs: v.reallocs + 1,
	}
}
