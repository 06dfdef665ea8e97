// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package tuple implements a fixed-capacity, index-addressable slot
// array.  A Tuple never changes capacity once created; growing or
// shrinking means building a new Tuple and copying into it.
//
// An "empty" slot holds the zero value of T.
//
// Out-of-range access is a programmer error, and panics.  Callers are
// expected to have bounds-checked before calling in.
package tuple

import (
	"fmt"
)

type Tuple[T any] struct {
	slots []T
}

// BoundsError is the value that a Tuple panics with when asked to
// touch slots outside of its capacity.
type BoundsError struct {
	Op       string
	Off, Cnt int
	Cap      int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("tuple.%s: range [%d,%d) exceeds capacity %d",
		e.Op, e.Off, e.Off+e.Cnt, e.Cap)
}

// New returns a Tuple with the given capacity and every slot empty.
func New[T any](capacity int) *Tuple[T] {
	if capacity < 0 {
		panic(&BoundsError{Op: "New", Cnt: capacity})
	}
	return &Tuple[T]{
		slots: make([]T, capacity),
	}
}

// Pattern returns a Tuple with the given capacity and every slot set
// to val.  It is the same val in every slot; for reference types
// that means the slots alias each other.
func Pattern[T any](capacity int, val T) *Tuple[T] {
	t := New[T](capacity)
	for i := range t.slots {
		t.slots[i] = val
	}
	return t
}

// Len returns the capacity of the Tuple.
func (t *Tuple[T]) Len() int {
	return len(t.slots)
}

func (t *Tuple[T]) At(i int) T {
	return t.slots[i]
}

func (t *Tuple[T]) Put(i int, val T) {
	t.slots[i] = val
}

func (t *Tuple[T]) check(op string, off, cnt int) {
	if off < 0 || cnt < 0 || off+cnt > len(t.slots) {
		panic(&BoundsError{Op: op, Off: off, Cnt: cnt, Cap: len(t.slots)})
	}
}

// CopyFrom copies cnt slots from src (starting at srcOff) into t
// (starting at dstOff).
//
// src may be t itself, and the ranges may overlap in either
// direction; the result is as if the source range were first copied
// to a temporary.
func (t *Tuple[T]) CopyFrom(src *Tuple[T], srcOff, cnt, dstOff int) {
	if cnt == 0 {
		return
	}
	src.check("CopyFrom", srcOff, cnt)
	t.check("CopyFrom", dstOff, cnt)
	// The builtin copy has memmove semantics.
	copy(t.slots[dstOff:dstOff+cnt], src.slots[srcOff:srcOff+cnt])
}

// CopyIn copies a plain Go slice in to the Tuple at dstOff.
func (t *Tuple[T]) CopyIn(src []T, dstOff int) {
	t.check("CopyIn", dstOff, len(src))
	copy(t.slots[dstOff:], src)
}

// CopyOut copies cnt slots starting at off out in to a new Go slice.
func (t *Tuple[T]) CopyOut(off, cnt int) []T {
	t.check("CopyOut", off, cnt)
	ret := make([]T, cnt)
	copy(ret, t.slots[off:off+cnt])
	return ret
}

func (t *Tuple[T]) Swap(i, j int) {
	t.slots[i], t.slots[j] = t.slots[j], t.slots[i]
}

// Reverse reverses the order of the cnt slots starting at off.
func (t *Tuple[T]) Reverse(off, cnt int) {
	t.check("Reverse", off, cnt)
	for i, j := off, off+cnt-1; i < j; i, j = i+1, j-1 {
		t.slots[i], t.slots[j] = t.slots[j], t.slots[i]
	}
}

// Clear resets cnt slots starting at off to empty, so that the Tuple
// stops holding references to whatever was there.
func (t *Tuple[T]) Clear(off, cnt int) {
	t.check("Clear", off, cnt)
	var zero T
	for i := off; i < off+cnt; i++ {
		t.slots[i] = zero
	}
}

// Dup returns a new Tuple of the same capacity holding the same
// values.  The values themselves are not copied.
func (t *Tuple[T]) Dup() *Tuple[T] {
	ret := New[T](len(t.slots))
	copy(ret.slots, t.slots)
	return ret
}

// Compact removes every slot in [off, off+cnt) for which isSentinel
// returns true, sliding the survivors down toward off and clearing
// the vacated slots at the end of the range.  It returns the number
// of slots removed.
func (t *Tuple[T]) Compact(off, cnt int, isSentinel func(T) bool) int {
	t.check("Compact", off, cnt)
	end := off + cnt
	pos := off
	for i := off; i < end; i++ {
		if isSentinel(t.slots[i]) {
			continue
		}
		if pos != i {
			t.slots[pos] = t.slots[i]
		}
		pos++
	}
	removed := end - pos
	t.Clear(pos, removed)
	return removed
}
