// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package vector

import (
	"reflect"

	"github.com/charygao/rubinius/lib/identmap"
)

// The set operations below all preserve the order of first occurrence
// in the left operand (and then, for Union, the right operand).
//
// The plain forms use the element's own == for equality.  The ...Func
// forms take a key function; two elements are equal if their keys are.
// Passing IdentityKey as the key function gives identity semantics for
// reference types.

func self[T comparable](v T) T { return v }

// Union returns the distinct elements of a, followed by the distinct
// elements of b that are not in a.
func Union[T comparable](a, b *Vector[T]) *Vector[T] {
	return UnionFunc(a, b, self[T])
}

func UnionFunc[T any, K comparable](a, b *Vector[T], key func(T) K) *Vector[T] {
	return From(identmap.From(key, a.Values(), b.Values()).Values())
}

// Intersect returns the elements of a that match an element of b.
// Each element of b can be matched at most once, so
//
//	Intersect([1,1,2], [1,2]) == [1,2]
func Intersect[T comparable](a, b *Vector[T]) *Vector[T] {
	return IntersectFunc(a, b, self[T])
}

func IntersectFunc[T any, K comparable](a, b *Vector[T], key func(T) K) *Vector[T] {
	supply := identmap.From(key, b.Values())
	ret := New[T]()
	a.Range(func(_ int, x T) bool {
		if supply.Delete(x) {
			ret.Push(x)
		}
		return true
	})
	return ret
}

// Difference returns the elements of a that have no equal element
// anywhere in b.  Duplicates within a are kept.
func Difference[T comparable](a, b *Vector[T]) *Vector[T] {
	return DifferenceFunc(a, b, self[T])
}

func DifferenceFunc[T any, K comparable](a, b *Vector[T], key func(T) K) *Vector[T] {
	exclude := identmap.From(key, b.Values())
	ret := New[T]()
	a.Range(func(_ int, x T) bool {
		if !exclude.Has(x) {
			ret.Push(x)
		}
		return true
	})
	return ret
}

// Uniq returns the elements of v with duplicates removed, keeping the
// first occurrence of each.
func Uniq[T comparable](v *Vector[T]) *Vector[T] {
	return UniqFunc(v, self[T])
}

func UniqFunc[T any, K comparable](v *Vector[T], key func(T) K) *Vector[T] {
	return From(identmap.From(key, v.Values()).Values())
}

// UniqInPlace removes duplicates from v, keeping the first occurrence
// of each.  It returns whether anything was removed.
func UniqInPlace[T comparable](v *Vector[T]) bool {
	return UniqInPlaceFunc(v, self[T])
}

func UniqInPlaceFunc[T any, K comparable](v *Vector[T], key func(T) K) bool {
	uniq := identmap.From(key, v.Values())
	if uniq.Len() == v.total {
		return false
	}
	v.Replace(From(uniq.Values()))
	return true
}

// IdentityKey returns a key for v that is its identity rather than
// its value: for pointers, maps, channels, funcs, and slices it is the
// address that v refers to (and the type, so that differently-typed
// references to the same address are distinct); for anything else it
// is v itself, so v must be comparable.
func IdentityKey[T any](v T) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return identity{typ: rv.Type(), ptr: rv.Pointer()}
	case reflect.Slice:
		return identity{typ: rv.Type(), ptr: rv.Pointer(), len: rv.Len()}
	default:
		return any(v)
	}
}

type identity struct {
	typ reflect.Type
	ptr uintptr
	len int
}
