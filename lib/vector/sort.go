// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package vector

import (
	"github.com/datawire/dlib/derror"
	"golang.org/x/exp/constraints"

	"github.com/charygao/rubinius/lib/tuple"
)

const (
	// Ranges shorter than this are insertion-sorted.
	isortThreshold = 13
	// The merge sort insertion-sorts runs of this width before it
	// starts merging.
	mergeRunWidth = 7
)

// A Comparator returns a negative number if a < b, zero if a == b,
// and a positive number if a > b.  If a and b have no ordering, it
// returns an error (conventionally wrapping ErrIncomparable).
type Comparator[T any] func(a, b T) (int, error)

// NativeCompare compares two values by Go's < and > operators.
func NativeCompare[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Natural returns a Comparator implementing the natural ordering of
// T.  It never fails.
func Natural[T constraints.Ordered]() Comparator[T] {
	return func(a, b T) (int, error) {
		return NativeCompare(a, b), nil
	}
}

// Reversed returns a Comparator that orders the opposite way from
// cmp.
func (cmp Comparator[T]) Reversed() Comparator[T] {
	return func(a, b T) (int, error) {
		n, err := cmp(a, b)
		return -n, err
	}
}

type sorter[T any] struct {
	cmp Comparator[T]
}

// compare calls the Comparator, turning any failure (including a
// panic) into a *SortError for the pair.
func (s sorter[T]) compare(a, b T) (n int, err error) {
	defer func() {
		if perr := derror.PanicToError(recover()); perr != nil {
			n, err = 0, &SortError{A: a, B: b, Err: perr}
		}
	}()
	n, err = s.cmp(a, b)
	if err != nil {
		return 0, &SortError{A: a, B: b, Err: err}
	}
	return n, nil
}

// Sort sorts v in place.  The sort is not stable.
//
// If cmp fails, Sort stops and returns a *SortError; v then holds
// the same elements in an unspecified order.
func (v *Vector[T]) Sort(cmp Comparator[T]) error {
	if v.total < 2 {
		return nil
	}
	s := sorter[T]{cmp: cmp}
	if v.total < isortThreshold {
		return s.isort(v.tuple, v.start, v.total)
	}
	return s.mergesort(v)
}

// Sorted returns a sorted copy of v.
func (v *Vector[T]) Sorted(cmp Comparator[T]) (*Vector[T], error) {
	ret := v.Dup()
	if err := ret.Sort(cmp); err != nil {
		return nil, err
	}
	return ret, nil
}

// SortOrdered sorts v in place by the natural ordering of T.
func SortOrdered[T constraints.Ordered](v *Vector[T]) {
	// The natural ordering cannot fail.
	_ = v.Sort(Natural[T]())
}

// SortByKey sorts v in place by the natural ordering of key(elem).
// key is called exactly once per element.
func SortByKey[T any, K constraints.Ordered](v *Vector[T], key func(T) K) {
	type keyed struct {
		key K
		val T
	}
	pairs := &Vector[keyed]{
		tuple: tuple.New[keyed](v.total),
		total: v.total,
	}
	for i := 0; i < v.total; i++ {
		val := v.tuple.At(v.start + i)
		pairs.tuple.Put(i, keyed{key: key(val), val: val})
	}
	_ = pairs.Sort(func(a, b keyed) (int, error) {
		return NativeCompare(a.key, b.key), nil
	})
	for i := 0; i < v.total; i++ {
		v.tuple.Put(v.start+i, pairs.tuple.At(i).val)
	}
}

// isort insertion-sorts the cnt slots of tup starting at off.
func (s sorter[T]) isort(tup *tuple.Tuple[T], off, cnt int) error {
	for i := off + 1; i < off+cnt; i++ {
		cur := tup.At(i)
		j := i - 1
		for ; j >= off; j-- {
			prev := tup.At(j)
			c, err := s.compare(prev, cur)
			if err != nil {
				// Fill the hole so that the range is still a
				// permutation of its input.
				tup.Put(j+1, cur)
				return err
			}
			if c <= 0 {
				break
			}
			tup.Put(j+1, prev)
		}
		tup.Put(j+1, cur)
	}
	return nil
}

// mergesort is a bottom-up merge sort: insertion-sort runs of
// mergeRunWidth, then merge pairs of runs of doubling width back and
// forth between the vector's tuple and a scratch tuple the size of the
// window.
func (s sorter[T]) mergesort(v *Vector[T]) error {
	n := v.total
	for off := 0; off < n; off += mergeRunWidth {
		if err := s.isort(v.tuple, v.start+off, min(mergeRunWidth, n-off)); err != nil {
			return err
		}
	}

	src, srcOff := v.tuple, v.start
	dst, dstOff := tuple.New[T](n), 0
	for width := mergeRunWidth; width < n; width *= 2 {
		for lo := 0; lo < n; lo += 2 * width {
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			if err := s.merge(src, srcOff, dst, dstOff, lo, mid, hi); err != nil {
				// merge only writes to dst, so src is
				// still whole.
				if src != v.tuple {
					v.tuple.CopyFrom(src, srcOff, n, v.start)
				}
				return err
			}
		}
		src, srcOff, dst, dstOff = dst, dstOff, src, srcOff
	}
	if src != v.tuple {
		v.tuple.CopyFrom(src, srcOff, n, v.start)
	}
	return nil
}

// merge merges the sorted runs [lo,mid) and [mid,hi) of src in to
// [lo,hi) of dst.
func (s sorter[T]) merge(src *tuple.Tuple[T], srcOff int, dst *tuple.Tuple[T], dstOff int, lo, mid, hi int) error {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		a, b := src.At(srcOff+i), src.At(srcOff+j)
		c, err := s.compare(a, b)
		if err != nil {
			return err
		}
		if c <= 0 {
			dst.Put(dstOff+k, a)
			i++
		} else {
			dst.Put(dstOff+k, b)
			j++
		}
		k++
	}
	dst.CopyFrom(src, srcOff+i, mid-i, dstOff+k)
	k += mid - i
	dst.CopyFrom(src, srcOff+j, hi-j, dstOff+k)
	return nil
}

// Search searches a sorted vector for an element for which
// `fn(elem) == 0`, returning its index.
//
//	: + + + 0 0 0 - - -
//	:       ^ ^ ^
//	:       any of
//
// You can conceptualize `fn` as subtraction:
//
//	func(straw T) int {
//	    return needle - straw
//	}
func (v *Vector[T]) Search(fn func(T) int) (int, bool) {
	beg, end := 0, v.total
	for beg < end {
		midpoint := int(uint(beg+end) >> 1)
		direction := fn(v.tuple.At(v.start + midpoint))
		switch {
		case direction < 0:
			end = midpoint
		case direction > 0:
			beg = midpoint + 1
		default:
			return midpoint, true
		}
	}
	return 0, false
}

// Min returns the least element according to cmp.  It returns false
// if v is empty.
func (v *Vector[T]) Min(cmp Comparator[T]) (T, bool, error) {
	return v.extreme(cmp, -1)
}

// Max returns the greatest element according to cmp.  It returns
// false if v is empty.
func (v *Vector[T]) Max(cmp Comparator[T]) (T, bool, error) {
	return v.extreme(cmp, 1)
}

func (v *Vector[T]) extreme(cmp Comparator[T], sign int) (T, bool, error) {
	var best T
	if v.total == 0 {
		return best, false, nil
	}
	s := sorter[T]{cmp: cmp}
	best = v.tuple.At(v.start)
	for i := 1; i < v.total; i++ {
		cur := v.tuple.At(v.start + i)
		c, err := s.compare(cur, best)
		if err != nil {
			return best, false, err
		}
		if c*sign > 0 {
			best = cur
		}
	}
	return best, true, nil
}
