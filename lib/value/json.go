// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package value

import (
	"fmt"
	"io"
	"unicode"

	"git.lukeshu.com/go/lowmemjson"

	"github.com/charygao/rubinius/lib/recguard"
	"github.com/charygao/rubinius/lib/vector"
)

// Array is a JSON array held in a *vector.Vector[any]; nested arrays
// become nested vectors (including arrays that are object members).
//
// Encoding a vector that contains itself fails with an error wrapping
// vector.ErrRecursive.
type Array struct {
	V *Vector
}

var (
	_ lowmemjson.Encodable = Array{}
	_ lowmemjson.Decodable = (*Array)(nil)
)

func (a Array) EncodeJSON(w io.Writer) error {
	if a.V == nil {
		_, err := io.WriteString(w, "null")
		return err
	}
	return encodeValue(recguard.New(), w, a.V)
}

func encodeValue(g *recguard.Guard, w io.Writer, x any) error {
	switch x := x.(type) {
	case *Vector:
		if x == nil {
			_, err := io.WriteString(w, "null")
			return err
		}
		if !g.Enter(x) {
			return fmt.Errorf("value.Array: cannot encode recursive array: %w", vector.ErrRecursive)
		}
		defer g.Leave(x)
		if _, err := w.Write([]byte{'['}); err != nil {
			return err
		}
		var err error
		x.Range(func(i int, elem any) bool {
			if i > 0 {
				if _, err = w.Write([]byte{','}); err != nil {
					return false
				}
			}
			err = encodeValue(g, w, elem)
			return err == nil
		})
		if err != nil {
			return err
		}
		_, err = w.Write([]byte{']'})
		return err
	case map[string]any:
		if x == nil {
			_, err := io.WriteString(w, "null")
			return err
		}
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sorted := vector.From(keys)
		vector.SortOrdered(sorted)
		if _, err := w.Write([]byte{'{'}); err != nil {
			return err
		}
		var err error
		sorted.Range(func(i int, k string) bool {
			if i > 0 {
				if _, err = w.Write([]byte{','}); err != nil {
					return false
				}
			}
			if err = lowmemjson.NewEncoder(w).Encode(k); err != nil {
				return false
			}
			if _, err = w.Write([]byte{':'}); err != nil {
				return false
			}
			err = encodeValue(g, w, x[k])
			return err == nil
		})
		if err != nil {
			return err
		}
		_, err = w.Write([]byte{'}'})
		return err
	default:
		return lowmemjson.NewEncoder(w).Encode(x)
	}
}

// peek returns the next non-whitespace rune without consuming it.
func peek(r io.RuneScanner) (rune, error) {
	for {
		c, _, err := r.ReadRune()
		if err != nil {
			return 0, err
		}
		if !unicode.IsSpace(c) {
			return c, r.UnreadRune()
		}
	}
}

func (a *Array) DecodeJSON(r io.RuneScanner) error {
	c, err := peek(r)
	if err != nil {
		return err
	}
	if c == 'n' {
		var null any
		if err := lowmemjson.NewDecoder(r).Decode(&null); err != nil {
			return err
		}
		a.V = nil
		return nil
	}
	a.V = vector.New[any]()
	return lowmemjson.DecodeArray(r, func(r io.RuneScanner) error {
		val, err := decodeValue(r)
		if err != nil {
			return err
		}
		a.V.Push(val)
		return nil
	})
}

func decodeValue(r io.RuneScanner) (any, error) {
	c, err := peek(r)
	if err != nil {
		return nil, err
	}
	switch c {
	case '[':
		var sub Array
		if err := sub.DecodeJSON(r); err != nil {
			return nil, err
		}
		return sub.V, nil
	case '{':
		obj := make(map[string]any)
		var name string
		err := lowmemjson.DecodeObject(r,
			func(r io.RuneScanner) error {
				return lowmemjson.NewDecoder(r).Decode(&name)
			},
			func(r io.RuneScanner) error {
				val, err := decodeValue(r)
				if err != nil {
					return err
				}
				obj[name] = val
				return nil
			})
		if err != nil {
			return nil, err
		}
		return obj, nil
	default:
		var val any
		if err := lowmemjson.NewDecoder(r).Decode(&val); err != nil {
			return nil, err
		}
		return val, nil
	}
}

// Decode reads exactly one JSON array from r.  Any other top-level
// value is a *vector.TypeError.
func Decode(r io.RuneScanner) (*Vector, error) {
	c, err := peek(r)
	if err != nil {
		return nil, err
	}
	if c != '[' {
		val, err := decodeValue(r)
		if err != nil {
			return nil, err
		}
		return nil, &vector.TypeError{Op: "Decode", Value: val, Want: "array"}
	}
	var ret Array
	if err := lowmemjson.NewDecoder(r).DecodeThenEOF(&ret); err != nil {
		return nil, err
	}
	return ret.V, nil
}

// Encode writes v to w as a compact JSON array.
func Encode(w io.Writer, v *Vector) error {
	return lowmemjson.NewEncoder(w).Encode(Array{V: v})
}
