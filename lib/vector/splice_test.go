// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplice(t *testing.T) {
	t.Parallel()
	type tc struct {
		Index, Count int
		Items        []int
		Exp          []int
		ExpErr       string
	}
	testcases := map[string]tc{
		"replace-grow":   {Index: 1, Count: 2, Items: []int{10, 11, 12}, Exp: []int{0, 10, 11, 12, 3, 4}},
		"replace-shrink": {Index: 1, Count: 3, Items: []int{10}, Exp: []int{0, 10, 4}},
		"delete-last":    {Index: -1, Count: 1, Exp: []int{0, 1, 2, 3}},
		"pad-gap":        {Index: 7, Count: 0, Items: []int{9}, Exp: []int{0, 1, 2, 3, 4, 0, 0, 9}},
		"clamp-count":    {Index: 2, Count: 100, Exp: []int{0, 1}},
		"append":         {Index: 5, Count: 0, Items: []int{5}, Exp: []int{0, 1, 2, 3, 4, 5}},
		"prepend":        {Index: 0, Count: 0, Items: []int{-1}, Exp: []int{-1, 0, 1, 2, 3, 4}},
		"noop":           {Index: 3, Count: 0, Exp: []int{0, 1, 2, 3, 4}},
		"too-negative": {Index: -6, Count: 0, Items: []int{1},
			ExpErr: "vector.Splice: index -6 out of bounds (length 5)"},
		"negative-count": {Index: 0, Count: -1,
			ExpErr: "vector.Splice: negative length (-1)"},
	}
	for tcName, tc := range testcases {
		tc := tc
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			v := Of(0, 1, 2, 3, 4)
			err := v.Splice(tc.Index, tc.Count, tc.Items...)
			if tc.ExpErr != "" {
				var idxErr *IndexError
				assert.ErrorAs(t, err, &idxErr)
				assert.EqualError(t, err, tc.ExpErr)
				assert.Equal(t, []int{0, 1, 2, 3, 4}, v.Values())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.Exp, v.Values())
			checkLayout(t, v)
		})
	}
}

func TestTooBig(t *testing.T) {
	t.Parallel()
	type tc struct {
		Op     func(v *Vector[int]) error
		ExpErr string
	}
	testcases := map[string]tc{
		"splice-maxint": {
			Op:     func(v *Vector[int]) error { return v.Splice(math.MaxInt, 0, 1) },
			ExpErr: "vector.Splice: argument too big",
		},
		"set-maxint": {
			Op:     func(v *Vector[int]) error { return v.Set(math.MaxInt-1, 1) },
			ExpErr: "vector.Set: argument too big",
		},
		"set-maxlen": {
			Op:     func(v *Vector[int]) error { return v.Set(MaxLen, 1) },
			ExpErr: "vector.Set: argument too big",
		},
		"insert-maxlen": {
			Op:     func(v *Vector[int]) error { return v.Insert(MaxLen, 1, 2) },
			ExpErr: "vector.Insert: argument too big",
		},
		"fill-wraps": {
			Op:     func(v *Vector[int]) error { return v.FillRange(1, 0, math.MaxInt) },
			ExpErr: "vector.Fill: argument too big",
		},
		"fill-start": {
			Op:     func(v *Vector[int]) error { return v.FillRange(1, math.MaxInt, 1) },
			ExpErr: "vector.Fill: argument too big",
		},
		"repeat": {
			Op: func(v *Vector[int]) error {
				_, err := v.Repeat(math.MaxInt/2 + 1)
				return err
			},
			ExpErr: "vector.Repeat: argument too big",
		},
		"make": {
			Op: func(*Vector[int]) error {
				_, err := Make(MaxLen+1, 0)
				return err
			},
			ExpErr: "vector.Make: argument too big",
		},
	}
	for tcName, tc := range testcases {
		tc := tc
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			v := Of(0, 1, 2, 3, 4)
			err := tc.Op(v)
			var argErr *ArgumentError
			assert.ErrorAs(t, err, &argErr)
			assert.EqualError(t, err, tc.ExpErr)
			assert.Equal(t, []int{0, 1, 2, 3, 4}, v.Values())
			assert.Equal(t, 5, v.Cap())
		})
	}
}

func TestIntervalEndAtMaxInt(t *testing.T) {
	t.Parallel()
	v := Of(0, 1, 2, 3, 4)
	got, ok := v.SliceInterval(Interval{Begin: 2, End: math.MaxInt})
	require.True(t, ok)
	assert.Equal(t, []int{2, 3, 4}, got.Values())

	require.NoError(t, v.SetInterval(Interval{Begin: 3, End: math.MaxInt}, 9))
	assert.Equal(t, []int{0, 1, 2, 9}, v.Values())
}

func TestGrowthIsLogarithmic(t *testing.T) {
	t.Parallel()
	const n = 100000
	v := New[int]()
	reallocs := 0
	prev := v.tuple
	for i := 0; i < n; i++ {
		v.Push(i)
		if v.tuple != prev {
			reallocs++
			prev = v.tuple
		}
	}
	// 8 doubled 14 times is 131072.
	assert.LessOrEqual(t, reallocs, 14)
	assert.Equal(t, n, v.Len())
	for i := 0; i < n; i += 997 {
		val, _ := v.At(i)
		assert.Equal(t, i, val)
	}
}

func TestShrinkDoesNotThrash(t *testing.T) {
	t.Parallel()
	v := New[int]()
	for i := 0; i < 1000; i++ {
		v.Push(i)
	}
	require.Equal(t, 1024, v.Cap())

	// Pop until the shrink policy kicks in.
	prev := v.tuple
	for v.tuple == prev {
		_, ok := v.Pop()
		require.True(t, ok)
	}
	checkLayout(t, v)
	assert.Equal(t, 341, v.Len())
	assert.Equal(t, 512, v.Cap())
	assert.Equal(t, (512-341)/2, v.start, "window should be centered")

	// Now sit right at the threshold and flap.
	prev = v.tuple
	for i := 0; i < 1000; i++ {
		v.Push(i)
		v.Pop()
		v.Push(i)
		v.Shift()
	}
	assert.Same(t, prev, v.tuple)
	checkLayout(t, v)
}

func TestShrinkHalvesRepeatedly(t *testing.T) {
	t.Parallel()
	v := New[int]()
	for i := 0; i < 1024; i++ {
		v.Push(i)
	}
	require.Equal(t, 1024, v.Cap())
	require.NoError(t, v.Splice(10, 1014))
	// 10 elements: halve 1024->512, and keep halving while
	// 10 < cap/6, stopping at the minimum shrinkable capacity.
	assert.Equal(t, 32, v.Cap())
	assert.Equal(t, 11, v.start)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, v.Values())
	checkLayout(t, v)
}

func TestHeadSlide(t *testing.T) {
	t.Parallel()
	v := New[int]()
	for i := 0; i < 64; i++ {
		v.Push(i)
	}
	require.Equal(t, 64, v.Cap())
	tup := v.tuple

	for i := 0; i < 32; i++ {
		val, ok := v.Shift()
		require.True(t, ok)
		require.Equal(t, i, val)
	}
	assert.Same(t, tup, v.tuple)
	assert.Equal(t, Layout{Start: 32, Len: 32, Cap: 64}, v.Layout())
	checkLayout(t, v)

	for i := 64; i < 96; i++ {
		v.Push(i)
	}
	assert.Same(t, tup, v.tuple, "appending in to front slack should not reallocate")
	assert.Equal(t, 0, v.start)
	assert.Equal(t, 64, v.Len())
	val, _ := v.First()
	assert.Equal(t, 32, val)
	val, _ = v.Last()
	assert.Equal(t, 95, val)
	checkLayout(t, v)
}

func TestHeadSlideThreshold(t *testing.T) {
	t.Parallel()
	full := func() *Vector[int] {
		v := New[int]()
		for i := 0; i < 64; i++ {
			v.Push(i)
		}
		require.Equal(t, 64, v.Cap())
		return v
	}

	v := full()
	tup := v.tuple
	for i := 0; i < 8; i++ {
		v.Shift()
	}
	v.Push(64)
	assert.Same(t, tup, v.tuple, "an eighth of the length in front slack is enough to slide")
	assert.Equal(t, Layout{Start: 0, Len: 57, Cap: 64}, v.Layout())
	checkLayout(t, v)

	v = full()
	tup = v.tuple
	v.Shift()
	v.Push(64)
	assert.NotSame(t, tup, v.tuple)
	assert.Equal(t, Layout{Start: 0, Len: 64, Cap: 128}, v.Layout())
	checkLayout(t, v)
}

func TestReallocs(t *testing.T) {
	t.Parallel()
	v := Of(1, 2, 3, 4, 5)
	v.Pop()
	require.Equal(t, Layout{Start: 0, Len: 4, Cap: 5}, v.Layout())
	tup := v.tuple

	// An exact-fit rebuild that happens to keep the same capacity
	// still counts.
	v.Unshift(0)
	assert.NotSame(t, tup, v.tuple)
	assert.Equal(t, Layout{Start: 0, Len: 5, Cap: 5}, v.Layout())
	assert.Equal(t, 1, v.Reallocs())

	v.Shift()
	v.Push(5)
	assert.Equal(t, 1, v.Reallocs(), "sliding within the tuple is not a reallocation")

	v.Push(6)
	assert.Equal(t, 2, v.Reallocs())
	assert.Equal(t, 0, v.Dup().Reallocs())

	v.Clear()
	assert.Equal(t, 3, v.Reallocs())
}

func TestQueueSteadyState(t *testing.T) {
	t.Parallel()
	v := New[int]()
	for i := 0; i < 10; i++ {
		v.Push(i)
	}
	tup := v.tuple
	for i := 10; i < 10000; i++ {
		v.Push(i)
		val, ok := v.Shift()
		require.True(t, ok)
		require.Equal(t, i-10, val)
	}
	assert.Same(t, tup, v.tuple)
	checkLayout(t, v)
}

func TestUnshift(t *testing.T) {
	t.Parallel()
	v := Of(1, 2, 3, 4)
	v.Shift()
	v.Shift()
	tup := v.tuple

	// Fits in front slack.
	v.Unshift(0, 1)
	assert.Same(t, tup, v.tuple)
	assert.Equal(t, []int{0, 1, 3, 4}, v.Values())

	// Doesn't fit; exact-fit reallocation.
	v.Unshift(-2, -1)
	assert.NotSame(t, tup, v.tuple)
	assert.Equal(t, 6, v.Cap())
	assert.Equal(t, []int{-2, -1, 0, 1, 3, 4}, v.Values())
	checkLayout(t, v)

	var zero Vector[int]
	zero.Unshift(7)
	assert.Equal(t, []int{7}, zero.Values())
}

func TestInsert(t *testing.T) {
	t.Parallel()
	v := Of(1, 2, 3)
	require.NoError(t, v.Insert(1, 10, 11))
	assert.Equal(t, []int{1, 10, 11, 2, 3}, v.Values())
	require.NoError(t, v.Insert(-1, 99))
	assert.Equal(t, []int{1, 10, 11, 2, 3, 99}, v.Values())
	require.NoError(t, v.Insert(-2, 98))
	assert.Equal(t, []int{1, 10, 11, 2, 3, 98, 99}, v.Values())
	require.NoError(t, v.Insert(9, 5))
	assert.Equal(t, []int{1, 10, 11, 2, 3, 98, 99, 0, 0, 5}, v.Values())
	require.NoError(t, v.Insert(0))

	err := v.Insert(-12, 1)
	var idxErr *IndexError
	assert.ErrorAs(t, err, &idxErr)
	assert.Equal(t, -12, idxErr.Index)
	assert.Equal(t, 10, v.Len())
	checkLayout(t, v)
}

func TestSetAndSetInterval(t *testing.T) {
	t.Parallel()
	v := Of(0, 1, 2)
	require.NoError(t, v.Set(-1, 20))
	require.NoError(t, v.Set(4, 40))
	assert.Equal(t, []int{0, 1, 20, 0, 40}, v.Values())
	var idxErr *IndexError
	assert.ErrorAs(t, v.Set(-6, 0), &idxErr)

	require.NoError(t, v.SetSlice(1, 2, 7, 8, 9))
	assert.Equal(t, []int{0, 7, 8, 9, 0, 40}, v.Values())

	require.NoError(t, v.SetInterval(Interval{Begin: 1, End: -2}, 5))
	assert.Equal(t, []int{0, 5, 40}, v.Values())
	require.NoError(t, v.SetInterval(Interval{Begin: 3, End: 3, Exclusive: true}, 6))
	assert.Equal(t, []int{0, 5, 40, 6}, v.Values())

	var rangeErr *RangeError
	assert.ErrorAs(t, v.SetInterval(Interval{Begin: -10, End: 1}, 1), &rangeErr)
	assert.Equal(t, []int{0, 5, 40, 6}, v.Values())
}

func TestPopShift(t *testing.T) {
	t.Parallel()
	v := Of(1, 2, 3, 4, 5, 6)

	val, ok := v.Pop()
	assert.True(t, ok)
	assert.Equal(t, 6, val)

	got, err := v.PopN(2)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5}, got.Values())

	got, err = v.ShiftN(2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got.Values())
	assert.Equal(t, []int{3}, v.Values())

	got, err = v.PopN(5)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, got.Values())
	assert.True(t, v.IsEmpty())
	checkLayout(t, v)

	_, ok = v.Pop()
	assert.False(t, ok)
	_, ok = v.Shift()
	assert.False(t, ok)

	var argErr *ArgumentError
	_, err = v.PopN(-1)
	assert.ErrorAs(t, err, &argErr)
	_, err = v.ShiftN(-1)
	assert.ErrorAs(t, err, &argErr)
	assert.EqualError(t, err, "vector.ShiftN: negative array size")
}

func TestDeleteAt(t *testing.T) {
	t.Parallel()
	v := Of(0, 1, 2, 3, 4)

	val, ok := v.DeleteAt(0)
	assert.True(t, ok)
	assert.Equal(t, 0, val)
	assert.Equal(t, 1, v.start, "deleting the head should slide the window")

	val, ok = v.DeleteAt(-2)
	assert.True(t, ok)
	assert.Equal(t, 3, val)
	assert.Equal(t, []int{1, 2, 4}, v.Values())

	_, ok = v.DeleteAt(3)
	assert.False(t, ok)
	_, ok = v.DeleteAt(-4)
	assert.False(t, ok)
	checkLayout(t, v)
}

func TestSliceDelete(t *testing.T) {
	t.Parallel()
	v := Of(0, 1, 2, 3, 4)

	got, ok := v.SliceDelete(1, 2)
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, got.Values())
	assert.Equal(t, []int{0, 3, 4}, v.Values())

	got, ok = v.SliceDelete(3, 1)
	require.True(t, ok)
	assert.Equal(t, []int{}, got.Values())
	_, ok = v.SliceDelete(4, 1)
	assert.False(t, ok)

	got, ok = v.SliceDeleteInterval(Interval{Begin: -2, End: -1})
	require.True(t, ok)
	assert.Equal(t, []int{3, 4}, got.Values())
	assert.Equal(t, []int{0}, v.Values())
	checkLayout(t, v)
}

func TestConcatSelf(t *testing.T) {
	t.Parallel()
	v := Of(1, 2)
	v.Concat(v, Of(3))
	assert.Equal(t, []int{1, 2, 1, 2, 3}, v.Values())
	v.Clear()
	assert.True(t, v.IsEmpty())
	assert.Equal(t, defaultCapacity, v.Cap())
}

// refSplice is the obvious implementation of Splice on a plain slice.
func refSplice(s []int, index, count int, items []int) ([]int, bool) {
	if index < 0 {
		if index+len(s) < 0 {
			return s, false
		}
		index += len(s)
	}
	if count < 0 {
		return s, false
	}
	for len(s) < index {
		s = append(s, 0)
	}
	count = min(count, len(s)-index)
	ret := make([]int, 0, len(s)+len(items))
	ret = append(ret, s[:index]...)
	ret = append(ret, items...)
	ret = append(ret, s[index+count:]...)
	return ret, true
}

func FuzzSplice(f *testing.F) {
	f.Add([]byte{0, 2, 1, 3, 1, 9, 0, 0, 2, 0, 0, 0, 0, 250, 3, 2})
	f.Add([]byte{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 0, 0, 0, 2, 0, 0, 0, 4, 3, 0, 0})
	f.Fuzz(func(t *testing.T, dat []byte) {
		v := New[int]()
		var ref []int
		next := 1
		mkItems := func(n int) []int {
			items := make([]int, n)
			for i := range items {
				items[i] = next
				next++
			}
			return items
		}
		for len(dat) >= 4 {
			op, a, b, c := dat[0], int(int8(dat[1])), int(int8(dat[2])), int(dat[3]%8)
			dat = dat[4:]
			switch op % 6 {
			case 0: // splice
				items := mkItems(c)
				err := v.Splice(a, b, items...)
				var ok bool
				ref, ok = refSplice(ref, a, b, items)
				require.Equal(t, ok, err == nil, "splice(%d, %d, %v): %v", a, b, items, err)
			case 1: // push
				items := mkItems(c)
				v.Push(items...)
				ref = append(ref, items...)
			case 2: // shift
				val, ok := v.Shift()
				require.Equal(t, len(ref) > 0, ok)
				if ok {
					require.Equal(t, ref[0], val)
					ref = ref[1:]
				}
			case 3: // pop
				val, ok := v.Pop()
				require.Equal(t, len(ref) > 0, ok)
				if ok {
					require.Equal(t, ref[len(ref)-1], val)
					ref = ref[:len(ref)-1]
				}
			case 4: // unshift
				items := mkItems(c)
				v.Unshift(items...)
				ref = append(append([]int{}, items...), ref...)
			case 5: // delete-at
				val, ok := v.DeleteAt(a)
				idx := a
				if idx < 0 {
					idx += len(ref)
				}
				require.Equal(t, idx >= 0 && idx < len(ref), ok)
				if ok {
					require.Equal(t, ref[idx], val)
					ref = append(ref[:idx:idx], ref[idx+1:]...)
				}
			}
			if ref == nil {
				ref = []int{}
			}
			require.Equal(t, ref, v.Values())
			checkLayout(t, v)
		}
	})
}
