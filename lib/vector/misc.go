// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package vector

import (
	"fmt"

	"github.com/charygao/rubinius/lib/tuple"
)

// RandFunc returns a random integer in [0, n).  Results outside of
// that range are reported as a *RangeError by the operation that
// called it.
type RandFunc func(n int) int

func (rng RandFunc) index(op string, n int) (int, error) {
	i := rng(n)
	switch {
	case i < 0:
		return 0, &RangeError{Op: op, Msg: fmt.Sprintf("random value must be >= 0 (got %d)", i)}
	case i >= n:
		return 0, &RangeError{Op: op, Msg: fmt.Sprintf("random value must be less than Array size (got %d, size %d)", i, n)}
	default:
		return i, nil
	}
}

// Fill sets every element to val.
func (v *Vector[T]) Fill(val T) {
	for i := 0; i < v.total; i++ {
		v.tuple.Put(v.start+i, val)
	}
}

// FillRange sets count elements starting at start to val, growing the
// vector if the range extends past the end.  A negative start counts
// from the end (and is clamped to 0).
func (v *Vector[T]) FillRange(val T, start, count int) error {
	return v.FillFunc(func(int) T { return val }, start, count)
}

// FillFunc is like FillRange, but sets element i to fn(i).
func (v *Vector[T]) FillFunc(fn func(int) T, start, count int) error {
	if count < 0 {
		return &ArgumentError{Op: "Fill", Msg: fmt.Sprintf("negative count (%d)", count)}
	}
	start = max(v.normalize(start), 0)
	if start > MaxLen || count > MaxLen-start {
		return tooBig("Fill")
	}
	if end := start + count; end > v.total {
		if err := v.splice("Fill", v.total, 0, make([]T, end-v.total), growSplice); err != nil {
			return err
		}
	}
	for i := start; i < start+count; i++ {
		v.tuple.Put(v.start+i, fn(i))
	}
	return nil
}

// Reverse reverses v in place.
func (v *Vector[T]) Reverse() {
	if v.total > 1 {
		v.tuple.Reverse(v.start, v.total)
	}
}

// Reversed returns a reversed copy of v.
func (v *Vector[T]) Reversed() *Vector[T] {
	ret := From(v.Values())
	ret.Reverse()
	return ret
}

// RotateInPlace rotates v so that element n becomes the first; a
// negative n rotates the other way.
func (v *Vector[T]) RotateInPlace(n int) {
	if v.total < 2 {
		return
	}
	n %= v.total
	if n < 0 {
		n += v.total
	}
	if n == 0 {
		return
	}
	v.tuple.Reverse(v.start, n)
	v.tuple.Reverse(v.start+n, v.total-n)
	v.tuple.Reverse(v.start, v.total)
}

// Rotate returns a rotated copy of v.
func (v *Vector[T]) Rotate(n int) *Vector[T] {
	ret := From(v.Values())
	ret.RotateInPlace(n)
	return ret
}

// Repeat returns v concatenated with itself n times.
func (v *Vector[T]) Repeat(n int) (*Vector[T], error) {
	if n < 0 {
		return nil, &ArgumentError{Op: "Repeat", Msg: fmt.Sprintf("negative argument (%d)", n)}
	}
	if n > 0 && v.total > MaxLen/n {
		return nil, tooBig("Repeat")
	}
	vals := v.Values()
	ret := &Vector[T]{
		tuple: tuple.New[T](len(vals) * n),
		total: len(vals) * n,
	}
	for i := 0; i < n; i++ {
		ret.tuple.CopyIn(vals, i*len(vals))
	}
	return ret, nil
}

// Shuffle shuffles v in place, using rng as the source of randomness.
// If rng misbehaves, v is unchanged.
func (v *Vector[T]) Shuffle(rng RandFunc) error {
	vals := v.Values()
	for i := len(vals) - 1; i > 0; i-- {
		j, err := rng.index("Shuffle", i+1)
		if err != nil {
			return err
		}
		vals[i], vals[j] = vals[j], vals[i]
	}
	if len(vals) > 0 {
		v.tuple.CopyIn(vals, v.start)
	}
	return nil
}

// Sample returns a random element, or false if v is empty.
func (v *Vector[T]) Sample(rng RandFunc) (T, bool, error) {
	var zero T
	if v.total == 0 {
		return zero, false, nil
	}
	i, err := rng.index("Sample", v.total)
	if err != nil {
		return zero, false, err
	}
	return v.tuple.At(v.start + i), true, nil
}

// SampleN returns n distinct elements (by position) chosen at random,
// or all of them in random order if there are fewer than n.
func (v *Vector[T]) SampleN(n int, rng RandFunc) (*Vector[T], error) {
	if n < 0 {
		return nil, &ArgumentError{Op: "SampleN", Msg: "negative sample number"}
	}
	vals := v.Values()
	n = min(n, len(vals))
	// Partial Fisher-Yates from the front.
	for i := 0; i < n; i++ {
		j, err := rng.index("SampleN", len(vals)-i)
		if err != nil {
			return nil, err
		}
		j += i
		vals[i], vals[j] = vals[j], vals[i]
	}
	return From(vals[:n]), nil
}

// Delete removes every element for which match returns true, and
// returns the last one removed.
func (v *Vector[T]) Delete(match func(T) bool) (T, bool) {
	var last T
	found := false
	v.DeleteIf(func(x T) bool {
		if match(x) {
			last, found = x, true
			return true
		}
		return false
	})
	return last, found
}

// DeleteIf removes every element for which match returns true,
// returning how many were removed.
func (v *Vector[T]) DeleteIf(match func(T) bool) int {
	if v.total == 0 {
		return 0
	}
	removed := v.tuple.Compact(v.start, v.total, match)
	if removed > 0 {
		v.total -= removed
		v.shrink()
	}
	return removed
}

// KeepIf removes every element for which keep returns false,
// returning how many were removed.
func (v *Vector[T]) KeepIf(keep func(T) bool) int {
	return v.DeleteIf(func(x T) bool {
		return !keep(x)
	})
}

// Compact removes every zero-valued element (nil, for reference
// types), returning how many were removed.
func Compact[T comparable](v *Vector[T]) int {
	var zero T
	return v.DeleteIf(func(x T) bool {
		return x == zero
	})
}

// Zip returns a vector of rows, one per element of v, where row i is
// [v[i], others[0][i], others[1][i], ...].  Others that are too short
// contribute zero values.
//
// Zip (like Transpose and Product) is a function rather than a method,
// because a method on Vector[T] may not mention Vector[*Vector[T]].
func Zip[T any](v *Vector[T], others ...*Vector[T]) *Vector[*Vector[T]] {
	ret := &Vector[*Vector[T]]{
		tuple: tuple.New[*Vector[T]](v.total),
		total: v.total,
	}
	for i := 0; i < v.total; i++ {
		row := &Vector[T]{
			tuple: tuple.New[T](len(others) + 1),
			total: len(others) + 1,
		}
		row.tuple.Put(0, v.tuple.At(v.start+i))
		for j, other := range others {
			val, _ := other.At(i)
			row.tuple.Put(j+1, val)
		}
		ret.tuple.Put(i, row)
	}
	return ret
}

// Transpose turns rows in to columns.  Every row must be the same
// length; a ragged input is an *IndexError.
func Transpose[T any](rows *Vector[*Vector[T]]) (*Vector[*Vector[T]], error) {
	if rows.total == 0 {
		return New[*Vector[T]](), nil
	}
	width := rows.tuple.At(rows.start).total
	for i := 1; i < rows.total; i++ {
		if l := rows.tuple.At(rows.start + i).total; l != width {
			return nil, &IndexError{Op: "Transpose", Index: i, Len: l,
				Msg: fmt.Sprintf("element size differs (%d should be %d)", l, width)}
		}
	}
	ret := &Vector[*Vector[T]]{
		tuple: tuple.New[*Vector[T]](width),
		total: width,
	}
	for c := 0; c < width; c++ {
		col := &Vector[T]{
			tuple: tuple.New[T](rows.total),
			total: rows.total,
		}
		for r := 0; r < rows.total; r++ {
			row := rows.tuple.At(rows.start + r)
			col.tuple.Put(r, row.tuple.At(row.start+c))
		}
		ret.tuple.Put(c, col)
	}
	return ret, nil
}
