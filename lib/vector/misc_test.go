// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package vector

import (
	"encoding/json"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFill(t *testing.T) {
	t.Parallel()
	v := Of(1, 2, 3)
	v.Fill(0)
	assert.Equal(t, []int{0, 0, 0}, v.Values())

	require.NoError(t, v.FillRange(7, 1, 4))
	assert.Equal(t, []int{0, 7, 7, 7, 7}, v.Values())

	require.NoError(t, v.FillRange(9, -2, 1))
	assert.Equal(t, []int{0, 7, 7, 9, 7}, v.Values())

	require.NoError(t, v.FillFunc(func(i int) int { return i * 10 }, -100, 2))
	assert.Equal(t, []int{0, 10, 7, 9, 7}, v.Values())

	var argErr *ArgumentError
	assert.ErrorAs(t, v.FillRange(1, 0, -1), &argErr)
	checkLayout(t, v)
}

func TestReverseRotate(t *testing.T) {
	t.Parallel()
	v := Of(1, 2, 3, 4, 5)
	assert.Equal(t, []int{5, 4, 3, 2, 1}, v.Reversed().Values())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, v.Values())

	assert.Equal(t, []int{3, 4, 5, 1, 2}, v.Rotate(2).Values())
	assert.Equal(t, []int{4, 5, 1, 2, 3}, v.Rotate(-2).Values())
	assert.Equal(t, []int{2, 3, 4, 5, 1}, v.Rotate(11).Values())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, v.Rotate(0).Values())

	v.Shift()
	v.RotateInPlace(1)
	assert.Equal(t, []int{3, 4, 5, 2}, v.Values())
	v.Reverse()
	assert.Equal(t, []int{2, 5, 4, 3}, v.Values())
	checkLayout(t, v)
}

func TestRepeat(t *testing.T) {
	t.Parallel()
	got, err := Of(1, 2).Repeat(3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 1, 2, 1, 2}, got.Values())

	got, err = Of(1, 2).Repeat(0)
	require.NoError(t, err)
	assert.Equal(t, []int{}, got.Values())

	var argErr *ArgumentError
	_, err = Of(1).Repeat(-1)
	assert.ErrorAs(t, err, &argErr)
}

func TestRandom(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(1))
	good := RandFunc(rng.Intn)

	v := Of(1, 2, 3, 4, 5, 6, 7, 8)
	require.NoError(t, v.Shuffle(good))
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, v.Values())

	x, ok, err := v.Sample(good)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, Contains(v, x))

	sample, err := v.SampleN(3, good)
	require.NoError(t, err)
	assert.Equal(t, 3, sample.Len())
	assert.Equal(t, 3, Uniq(sample).Len())
	sample, err = v.SampleN(20, good)
	require.NoError(t, err)
	assert.ElementsMatch(t, v.Values(), sample.Values())

	_, ok, err = New[int]().Sample(good)
	assert.NoError(t, err)
	assert.False(t, ok)

	// A misbehaving source of randomness.
	var rangeErr *RangeError
	before := v.Values()
	assert.ErrorAs(t, v.Shuffle(func(n int) int { return n }), &rangeErr)
	assert.Equal(t, before, v.Values())
	_, _, err = v.Sample(func(int) int { return -1 })
	assert.ErrorAs(t, err, &rangeErr)
	assert.Contains(t, err.Error(), "random value must be >= 0")
	_, err = v.SampleN(2, func(n int) int { return n })
	assert.ErrorAs(t, err, &rangeErr)
	assert.Contains(t, err.Error(), "random value must be less than Array size")
}

func TestDeleteFamily(t *testing.T) {
	t.Parallel()
	v := Of(1, 2, 3, 2, 4, 2)
	last, ok := v.Delete(func(x int) bool { return x == 2 })
	assert.True(t, ok)
	assert.Equal(t, 2, last)
	assert.Equal(t, []int{1, 3, 4}, v.Values())

	_, ok = v.Delete(func(x int) bool { return x == 9 })
	assert.False(t, ok)

	assert.Equal(t, 1, v.DeleteIf(func(x int) bool { return x > 3 }))
	assert.Equal(t, []int{1, 3}, v.Values())
	assert.Equal(t, 1, v.KeepIf(func(x int) bool { return x == 3 }))
	assert.Equal(t, []int{3}, v.Values())
	checkLayout(t, v)

	a, b := 1, 2
	ptrs := Of(&a, nil, &b, nil)
	assert.Equal(t, 2, Compact(ptrs))
	assert.Equal(t, []*int{&a, &b}, ptrs.Values())
	assert.Equal(t, 0, Compact(New[*int]()))
}

func TestZipTranspose(t *testing.T) {
	t.Parallel()
	zipped := Zip(Of(1, 2, 3), Of(4, 5, 6), Of(7))
	var rows [][]int
	zipped.Range(func(_ int, row *Vector[int]) bool {
		rows = append(rows, row.Values())
		return true
	})
	assert.Equal(t, [][]int{{1, 4, 7}, {2, 5, 0}, {3, 6, 0}}, rows)

	transposed, err := Transpose(zipped)
	require.NoError(t, err)
	rows = nil
	transposed.Range(func(_ int, row *Vector[int]) bool {
		rows = append(rows, row.Values())
		return true
	})
	assert.Equal(t, [][]int{{1, 2, 3}, {4, 5, 6}, {7, 0, 0}}, rows)

	empty, err := Transpose(New[*Vector[int]]())
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	_, err = Transpose(Of(Of(1, 2), Of(3)))
	var idxErr *IndexError
	assert.ErrorAs(t, err, &idxErr)
	assert.EqualError(t, err, "vector.Transpose: element size differs (1 should be 2)")
}

type intish int

func (i intish) ToInt() (int, error) { return int(i) * 2, nil }

type failingConverter struct{}

var errNope = errors.New("nope")

func (failingConverter) ToInt() (int, error)                { return 0, errNope }
func (failingConverter) ToVector() (*Vector[string], error) { return nil, errNope }

type csv string

func (c csv) ToVector() (*Vector[string], error) { return Of(string(c), string(c)), nil }

func TestCoerceInt(t *testing.T) {
	t.Parallel()
	type tc struct {
		In  any
		Exp int
		Err bool
	}
	testcases := map[string]tc{
		"int":       {In: 5, Exp: 5},
		"int8":      {In: int8(-3), Exp: -3},
		"uint16":    {In: uint16(7), Exp: 7},
		"float":     {In: 4.0, Exp: 4},
		"fraction":  {In: 4.5, Err: true},
		"number":    {In: json.Number("12"), Exp: 12},
		"bad-num":   {In: json.Number("1e3"), Err: true},
		"converter": {In: intish(4), Exp: 8},
		"string":    {In: "5", Err: true},
		"nil":       {In: nil, Err: true},
	}
	for tcName, tc := range testcases {
		tc := tc
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			got, err := CoerceInt(tc.In)
			if tc.Err {
				var typeErr *TypeError
				assert.ErrorAs(t, err, &typeErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.Exp, got)
		})
	}

	_, err := CoerceInt(failingConverter{})
	assert.ErrorIs(t, err, errNope)
}

func TestCoerce(t *testing.T) {
	t.Parallel()
	orig := Of("a", "b")
	got, err := Coerce[string](orig)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got.Values())
	assert.NotSame(t, orig, got)

	got, err = Coerce[string]([]string{"c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, got.Values())

	got, err = Coerce[string](csv("x"))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "x"}, got.Values())

	_, err = Coerce[string](failingConverter{})
	assert.ErrorIs(t, err, errNope)

	var typeErr *TypeError
	_, err = Coerce[string]([]int{1})
	assert.ErrorAs(t, err, &typeErr)
	assert.EqualError(t, err, "vector.Coerce: cannot convert []int into vector")
	_, err = Coerce[string]((*Vector[string])(nil))
	assert.ErrorAs(t, err, &typeErr)
}
