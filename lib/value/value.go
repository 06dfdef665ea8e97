// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package value implements the element contract (ordering, equality,
// hashing, rendering, and set-algebra keys) for the dynamically typed
// values that come out of decoding JSON in to a *vector.Vector[any].
//
// A value is one of: nil, bool, float64, string, map[string]any, or a
// nested *vector.Vector[any].  Go integer types are also accepted and
// are treated as the equivalent float64.
package value

import (
	"fmt"
	"hash/maphash"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/charygao/rubinius/lib/vector"
)

type Vector = vector.Vector[any]

func asNumber(x any) (float64, bool) {
	switch x := x.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	default:
		return 0, false
	}
}

// Compare is a vector.Comparator[any].  Numbers compare numerically,
// strings lexically, and vectors element-wise.  nil is equal to nil.
// Anything else (including a mix of types) is an error wrapping
// vector.ErrIncomparable.
func Compare(a, b any) (int, error) {
	if an, ok := asNumber(a); ok {
		if bn, ok := asNumber(b); ok {
			if math.IsNaN(an) || math.IsNaN(bn) {
				return 0, fmt.Errorf("%w: NaN", vector.ErrIncomparable)
			}
			return vector.NativeCompare(an, bn), nil
		}
	}
	switch a := a.(type) {
	case nil:
		if b == nil {
			return 0, nil
		}
	case string:
		if b, ok := b.(string); ok {
			return strings.Compare(a, b), nil
		}
	case *Vector:
		if b, ok := b.(*Vector); ok {
			return a.Compare(b, Compare)
		}
	}
	return 0, fmt.Errorf("%w: %s and %s", vector.ErrIncomparable, typeName(a), typeName(b))
}

// Equal reports whether a and b are the same value.  1 and 1.0 are
// equal.
func Equal(a, b any) bool {
	if an, ok := asNumber(a); ok {
		bn, ok := asNumber(b)
		return ok && an == bn
	}
	switch a := a.(type) {
	case *Vector:
		b, ok := b.(*Vector)
		return ok && a.Equal(b, Equal)
	case map[string]any:
		b, ok := b.(map[string]any)
		if !ok || len(a) != len(b) {
			return false
		}
		for k, av := range a {
			bv, ok := b[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return reflect.DeepEqual(a, b)
	}
	return a == b
}

var seed = maphash.MakeSeed()

// Hash returns a hash of x that is consistent with Equal within a
// single run of the program.
func Hash(x any) uint64 {
	if n, ok := asNumber(x); ok {
		if n == 0 {
			n = 0 // fold -0 in to +0
		}
		return maphash.String(seed, "n"+strconv.FormatUint(math.Float64bits(n), 16))
	}
	switch x := x.(type) {
	case nil:
		return 0
	case bool:
		if x {
			return 1
		}
		return 2
	case string:
		return maphash.String(seed, "s"+x)
	case *Vector:
		return x.Hash(Hash)
	default:
		return maphash.String(seed, "?"+Inspect(x))
	}
}

// Inspect renders x in a JSON-like syntax.  A vector that contains
// itself renders the inner reference as "[...]".
func Inspect(x any) string {
	if n, ok := asNumber(x); ok {
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	switch x := x.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(x)
	case string:
		return strconv.Quote(x)
	case *Vector:
		return x.Inspect(Inspect)
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sorted := vector.From(keys)
		vector.SortOrdered(sorted)
		var buf strings.Builder
		buf.WriteByte('{')
		sorted.Range(func(i int, k string) bool {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(strconv.Quote(k))
			buf.WriteString(": ")
			buf.WriteString(Inspect(x[k]))
			return true
		})
		buf.WriteByte('}')
		return buf.String()
	default:
		return fmt.Sprintf("%#v", x)
	}
}

// ToString renders x the way Join wants it: strings are not quoted.
func ToString(x any) string {
	if s, ok := x.(string); ok {
		return s
	}
	return Inspect(x)
}

type compositeKey string

// Key returns a comparable key for x such that Key(a) == Key(b) iff
// Equal(a, b); it is suitable as the key function for the vector set
// operations.
func Key(x any) any {
	if n, ok := asNumber(x); ok {
		if n == 0 {
			n = 0
		}
		return n
	}
	switch x := x.(type) {
	case nil, bool, string:
		return x
	default:
		return compositeKey(Inspect(x))
	}
}

func typeName(x any) string {
	switch x.(type) {
	case nil:
		return "null"
	case *Vector:
		return "array"
	case map[string]any:
		return "object"
	default:
		if _, ok := asNumber(x); ok {
			return "number"
		}
		return fmt.Sprintf("%T", x)
	}
}
