// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package vector

import (
	"encoding/json"
	"math"
)

// IntConverter is implemented by values that know how to convert
// themselves to an int.
type IntConverter interface {
	ToInt() (int, error)
}

// Converter is implemented by values that know how to convert
// themselves to a vector.
type Converter[T any] interface {
	ToVector() (*Vector[T], error)
}

// CoerceInt converts x to an int: any Go integer type, a float64 or
// float32 with no fractional part, a json.Number, or an IntConverter.
// Anything else is a *TypeError.  Errors from an IntConverter are
// returned unchanged.
func CoerceInt(x any) (int, error) {
	switch x := x.(type) {
	case int:
		return x, nil
	case int8:
		return int(x), nil
	case int16:
		return int(x), nil
	case int32:
		return int(x), nil
	case int64:
		if x < math.MinInt || x > math.MaxInt {
			return 0, &RangeError{Op: "CoerceInt", Msg: "integer out of range"}
		}
		return int(x), nil
	case uint:
		if x > math.MaxInt {
			return 0, &RangeError{Op: "CoerceInt", Msg: "integer out of range"}
		}
		return int(x), nil
	case uint8:
		return int(x), nil
	case uint16:
		return int(x), nil
	case uint32:
		return int(x), nil
	case uint64:
		if x > math.MaxInt {
			return 0, &RangeError{Op: "CoerceInt", Msg: "integer out of range"}
		}
		return int(x), nil
	case float32:
		return CoerceInt(float64(x))
	case float64:
		if x != math.Trunc(x) || x < math.MinInt || x >= math.MaxInt {
			return 0, &TypeError{Op: "CoerceInt", Value: x, Want: "int"}
		}
		return int(x), nil
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return 0, &TypeError{Op: "CoerceInt", Value: x, Want: "int"}
		}
		return CoerceInt(n)
	case IntConverter:
		return x.ToInt()
	default:
		return 0, &TypeError{Op: "CoerceInt", Value: x, Want: "int"}
	}
}

// Coerce converts x to a vector: a *Vector[T] is duplicated, a []T is
// copied, and a Converter[T] is asked to convert itself.  Anything else
// is a *TypeError.  Errors from a Converter are returned unchanged.
func Coerce[T any](x any) (*Vector[T], error) {
	switch x := x.(type) {
	case *Vector[T]:
		if x == nil {
			break
		}
		return x.Dup(), nil
	case []T:
		return From(x), nil
	case Converter[T]:
		return x.ToVector()
	}
	return nil, &TypeError{Op: "Coerce", Value: x, Want: "vector"}
}
