// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package vector

import (
	"fmt"
	"strings"

	"github.com/charygao/rubinius/lib/recguard"
)

// The operations in this file recurse in to elements that are
// themselves *Vector[T] (which is only possible when T is an interface
// type), and so must cope with a vector that contains itself.  Each
// top-level call makes a recguard.Guard and threads it through the
// recursion.
//
// The per-element callbacks (eq, cmp, h, str) are only ever called on
// elements that are not nested vectors.

func nested[T any](x T) (*Vector[T], bool) {
	xv, ok := any(x).(*Vector[T])
	return xv, ok && xv != nil
}

// Equal returns whether v and other have the same length and equal
// elements.  A pair of vectors that is already being compared further
// up the stack is treated as equal.  A nil other is equal only to a
// nil v.
func (v *Vector[T]) Equal(other *Vector[T], eq func(a, b T) bool) bool {
	return v.equal(recguard.New(), other, eq)
}

func (v *Vector[T]) equal(g *recguard.Guard, other *Vector[T], eq func(a, b T) bool) bool {
	if v == other {
		return true
	}
	if v == nil || other == nil {
		return false
	}
	if v.total != other.total {
		return false
	}
	if !g.EnterPair(v, other) {
		return true
	}
	defer g.LeavePair(v, other)
	for i := 0; i < v.total; i++ {
		a, b := v.tuple.At(v.start+i), other.tuple.At(other.start+i)
		av, aok := nested(a)
		bv, bok := nested(b)
		switch {
		case aok && bok:
			if !av.equal(g, bv, eq) {
				return false
			}
		case aok || bok:
			return false
		default:
			if !eq(a, b) {
				return false
			}
		}
	}
	return true
}

// Compare is a three-way lexicographic comparison of v and other; if
// one is a prefix of the other, the shorter one is less.  A pair of
// vectors that is already being compared further up the stack is
// compared by length only.
//
// A failure of cmp is returned as a *SortError; a nil other is an
// *ArgumentError.
func (v *Vector[T]) Compare(other *Vector[T], cmp Comparator[T]) (int, error) {
	if other == nil {
		return 0, &ArgumentError{Op: "Compare", Msg: "nil vector"}
	}
	return v.compare(recguard.New(), other, sorter[T]{cmp: cmp})
}

func (v *Vector[T]) compare(g *recguard.Guard, other *Vector[T], s sorter[T]) (int, error) {
	if v == other {
		return 0, nil
	}
	if g.EnterPair(v, other) {
		defer g.LeavePair(v, other)
		for i, n := 0, min(v.total, other.total); i < n; i++ {
			a, b := v.tuple.At(v.start+i), other.tuple.At(other.start+i)
			var c int
			var err error
			av, aok := nested(a)
			bv, bok := nested(b)
			if aok && bok {
				c, err = av.compare(g, bv, s)
			} else {
				c, err = s.compare(a, b)
			}
			if err != nil {
				return 0, err
			}
			if c != 0 {
				return c, nil
			}
		}
	}
	return NativeCompare(v.total, other.total), nil
}

const hashMask = 1<<63 - 1

// Hash combines h of each element in to a hash of the whole vector.
// If v contains itself (at any depth), the hash is just Len().
func (v *Vector[T]) Hash(h func(T) uint64) uint64 {
	ret, ok := v.hash(recguard.New(), h)
	if !ok {
		return uint64(v.total)
	}
	return ret
}

// hash returns false if it ran in to a vector that was already in
// progress; that unwinds all the way to the outermost call.
func (v *Vector[T]) hash(g *recguard.Guard, h func(T) uint64) (uint64, bool) {
	if !g.Enter(v) {
		return 0, false
	}
	defer g.Leave(v)
	ret := uint64(v.total)
	for i := 0; i < v.total; i++ {
		x := v.tuple.At(v.start + i)
		var xh uint64
		if xv, ok := nested(x); ok {
			if xh, ok = xv.hash(g, h); !ok {
				return 0, false
			}
		} else {
			xh = h(x)
		}
		ret = ((ret & hashMask) << 1) ^ xh
	}
	return ret, true
}

// Inspect renders v as "[a, b, c]", using str for each element.  A
// vector that contains itself renders the inner reference as "[...]".
func (v *Vector[T]) Inspect(str func(T) string) string {
	var buf strings.Builder
	v.inspect(recguard.New(), str, &buf)
	return buf.String()
}

func (v *Vector[T]) inspect(g *recguard.Guard, str func(T) string, buf *strings.Builder) {
	if !g.Enter(v) {
		buf.WriteString("[...]")
		return
	}
	defer g.Leave(v)
	buf.WriteByte('[')
	for i := 0; i < v.total; i++ {
		if i > 0 {
			buf.WriteString(", ")
		}
		x := v.tuple.At(v.start + i)
		if xv, ok := nested(x); ok {
			xv.inspect(g, str, buf)
		} else {
			buf.WriteString(str(x))
		}
	}
	buf.WriteByte(']')
}

// Join renders each element with str and joins them with sep.  Nested
// vectors are joined in place with the same sep.  A vector that
// contains itself is an error wrapping ErrRecursive.
func (v *Vector[T]) Join(sep string, str func(T) string) (string, error) {
	var buf strings.Builder
	if err := v.join(recguard.New(), sep, str, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (v *Vector[T]) join(g *recguard.Guard, sep string, str func(T) string, buf *strings.Builder) error {
	if !g.Enter(v) {
		return fmt.Errorf("vector.Join: recursive array join: %w", ErrRecursive)
	}
	defer g.Leave(v)
	for i := 0; i < v.total; i++ {
		if i > 0 {
			buf.WriteString(sep)
		}
		x := v.tuple.At(v.start + i)
		if xv, ok := nested(x); ok {
			if err := xv.join(g, sep, str, buf); err != nil {
				return err
			}
		} else {
			buf.WriteString(str(x))
		}
	}
	return nil
}

// Flatten returns a copy of v with nested vectors replaced by their
// elements, recursing level levels deep; a negative level flattens
// completely.  Recursing in to a vector that contains itself is an
// error wrapping ErrRecursive.
func (v *Vector[T]) Flatten(level int) (*Vector[T], error) {
	ret := New[T]()
	if _, err := v.flattenInto(recguard.New(), ret, level); err != nil {
		return nil, err
	}
	return ret, nil
}

// FlattenInPlace is like Flatten, but modifies v.  It returns whether
// there was anything to flatten.  On error, v is unchanged.
func (v *Vector[T]) FlattenInPlace(level int) (bool, error) {
	ret := New[T]()
	modified, err := v.flattenInto(recguard.New(), ret, level)
	if err != nil {
		return false, err
	}
	if modified {
		v.Replace(ret)
	}
	return modified, nil
}

func (v *Vector[T]) flattenInto(g *recguard.Guard, out *Vector[T], level int) (bool, error) {
	if level == 0 {
		out.Concat(v)
		return false, nil
	}
	level--
	if !g.Enter(v) {
		return false, fmt.Errorf("vector.Flatten: tried to flatten recursive array: %w", ErrRecursive)
	}
	defer g.Leave(v)
	modified := false
	for i := 0; i < v.total; i++ {
		x := v.tuple.At(v.start + i)
		if xv, ok := nested(x); ok {
			modified = true
			if _, err := xv.flattenInto(g, out, level); err != nil {
				return false, err
			}
		} else {
			out.Push(x)
		}
	}
	return modified, nil
}
