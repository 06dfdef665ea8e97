// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package vector

import (
	"math"
	"math/big"

	"github.com/bits-and-blooms/bitset"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/charygao/rubinius/lib/tuple"
)

// The generators below each call fn once per selection, in order,
// with a freshly allocated vector that fn may keep.  Returning false
// from fn stops the generator.  They iterate over a private duplicate
// of v, so fn may modify v without disturbing the iteration.

// pick returns a new vector of the elements at the given indexes,
// which must be in-bounds.
func (v *Vector[T]) pick(idxs []int) *Vector[T] {
	ret := &Vector[T]{
		tuple: tuple.New[T](len(idxs)),
		total: len(idxs),
	}
	for i, idx := range idxs {
		ret.tuple.Put(i, v.tuple.At(v.start+idx))
	}
	return ret
}

// Combinations calls fn with every length-k subsequence of v, in
// index order.  A k of 0 gives exactly one empty selection; a k
// outside of [0, Len()] gives none.
func (v *Vector[T]) Combinations(k int, fn func(*Vector[T]) bool) {
	n := v.total
	if k < 0 || k > n {
		return
	}
	src := v.Dup()
	// stack[i] is the index chosen for position i.
	stack := make([]int, k)
	for i := range stack {
		stack[i] = i
	}
	for {
		if !fn(src.pick(stack)) {
			return
		}
		// Advance the rightmost position that still has room,
		// carrying leftward.
		i := k - 1
		for i >= 0 && stack[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		stack[i]++
		for j := i + 1; j < k; j++ {
			stack[j] = stack[j-1] + 1
		}
	}
}

// Permutations calls fn with every length-k arrangement of distinct
// elements of v.  A k of 0 gives exactly one empty selection; a k
// outside of [0, Len()] gives none.
func (v *Vector[T]) Permutations(k int, fn func(*Vector[T]) bool) {
	if k < 0 || k > v.total {
		return
	}
	src := v.Dup()
	used := bitset.New(uint(src.total))
	src.permute(k, used, make([]int, 0, k), fn)
}

// AllPermutations is Permutations(v.Len(), fn).
func (v *Vector[T]) AllPermutations(fn func(*Vector[T]) bool) {
	v.Permutations(v.total, fn)
}

func (v *Vector[T]) permute(k int, used *bitset.BitSet, chosen []int, fn func(*Vector[T]) bool) bool {
	if len(chosen) == k {
		return fn(v.pick(chosen))
	}
	for i := 0; i < v.total; i++ {
		if used.Test(uint(i)) {
			continue
		}
		used.Set(uint(i))
		cont := v.permute(k, used, append(chosen, i), fn)
		used.Clear(uint(i))
		if !cont {
			return false
		}
	}
	return true
}

// RepeatedCombinations calls fn with every length-k multiset of
// elements of v (indexes non-decreasing).  A k of 0 gives exactly one
// empty selection; a negative k gives none.
func (v *Vector[T]) RepeatedCombinations(k int, fn func(*Vector[T]) bool) {
	if k < 0 {
		return
	}
	v.Dup().repeated(k, true, 0, make([]int, 0, k), fn)
}

// RepeatedPermutations calls fn with every length-k sequence of
// elements of v, with repetition.  A k of 0 gives exactly one empty
// selection; a negative k gives none.
func (v *Vector[T]) RepeatedPermutations(k int, fn func(*Vector[T]) bool) {
	if k < 0 {
		return
	}
	v.Dup().repeated(k, false, 0, make([]int, 0, k), fn)
}

func (v *Vector[T]) repeated(k int, nondecreasing bool, from int, chosen []int, fn func(*Vector[T]) bool) bool {
	if len(chosen) == k {
		return fn(v.pick(chosen))
	}
	if !nondecreasing {
		from = 0
	}
	for i := from; i < v.total; i++ {
		if !v.repeated(k, nondecreasing, i, append(chosen, i), fn) {
			return false
		}
	}
	return true
}

func tooManyToCount(op string) error {
	return &RangeError{Op: op, Msg: "result is too large to count"}
}

// binomial returns C(n, k) for 0 <= k <= n, or a *RangeError if that
// does not fit in an int.
func binomial(op string, n, k int) (int, error) {
	// C(n, k) >= C(2k, k), which is past MaxInt for k >= 34.
	if min(k, n-k) >= 34 {
		return 0, tooManyToCount(op)
	}
	exact := new(big.Int).Binomial(int64(n), int64(k))
	if !exact.IsInt64() || exact.Int64() > math.MaxInt {
		return 0, tooManyToCount(op)
	}
	return int(exact.Int64()), nil
}

// CountCombinations returns how many selections Combinations(k) would
// produce, or a *RangeError if that does not fit in an int.
func (v *Vector[T]) CountCombinations(k int) (int, error) {
	if k < 0 || k > v.total {
		return 0, nil
	}
	return binomial("CountCombinations", v.total, k)
}

// CountPermutations returns how many selections Permutations(k) would
// produce, or a *RangeError if that does not fit in an int.
func (v *Vector[T]) CountPermutations(k int) (int, error) {
	if k < 0 || k > v.total {
		return 0, nil
	}
	ret := 1
	for i := 0; i < k; i++ {
		if ret > math.MaxInt/(v.total-i) {
			return 0, tooManyToCount("CountPermutations")
		}
		ret *= v.total - i
	}
	return combin.NumPermutations(v.total, k), nil
}

// CountRepeatedCombinations returns how many selections
// RepeatedCombinations(k) would produce, or a *RangeError if that does
// not fit in an int.
func (v *Vector[T]) CountRepeatedCombinations(k int) (int, error) {
	switch {
	case k < 0:
		return 0, nil
	case k == 0:
		return 1, nil
	case v.total == 0:
		return 0, nil
	case k > math.MaxInt-v.total:
		return 0, tooManyToCount("CountRepeatedCombinations")
	default:
		return binomial("CountRepeatedCombinations", v.total+k-1, k)
	}
}

// CountRepeatedPermutations returns how many selections
// RepeatedPermutations(k) would produce, or a *RangeError if that does
// not fit in an int.
func (v *Vector[T]) CountRepeatedPermutations(k int) (int, error) {
	switch {
	case k < 0:
		return 0, nil
	case k == 0 || v.total == 1:
		return 1, nil
	case v.total == 0:
		return 0, nil
	}
	ret := 1
	for i := 0; i < k; i++ {
		if ret > math.MaxInt/v.total {
			return 0, tooManyToCount("CountRepeatedPermutations")
		}
		ret *= v.total
	}
	return ret, nil
}

// Product returns the cartesian product of v and the others: every
// vector [v[i], others[0][j], others[1][k], ...], with the last index
// varying fastest.  It is a *RangeError if there would be more than
// MaxLen results.
func Product[T any](v *Vector[T], others ...*Vector[T]) (*Vector[*Vector[T]], error) {
	seqs := make([][]T, 0, len(others)+1)
	seqs = append(seqs, v.Values())
	for _, other := range others {
		seqs = append(seqs, other.Values())
	}

	lens := make([]int, len(seqs))
	rows := 1
	for i, seq := range seqs {
		lens[i] = len(seq)
		if lens[i] == 0 {
			return New[*Vector[T]](), nil
		}
		if rows > MaxLen/lens[i] {
			return nil, &RangeError{Op: "Product", Msg: "product result is too large"}
		}
		rows *= lens[i]
	}

	ret := &Vector[*Vector[T]]{
		tuple: tuple.New[*Vector[T]](rows),
	}
	gen := combin.NewCartesianGenerator(lens)
	sub := make([]int, len(lens))
	for gen.Next() {
		sub = gen.Product(sub)
		row := &Vector[T]{
			tuple: tuple.New[T](len(sub)),
			total: len(sub),
		}
		for j, idx := range sub {
			row.tuple.Put(j, seqs[j][idx])
		}
		ret.tuple.Put(ret.total, row)
		ret.total++
	}
	return ret, nil
}

// Cycle calls fn for each element, repeating the whole sequence n
// times.  A negative n repeats until fn returns false.  It stops early
// if v is or becomes empty.
func (v *Vector[T]) Cycle(n int, fn func(T) bool) {
	for pass := 0; n < 0 || pass < n; pass++ {
		if v.total == 0 {
			return
		}
		stopped := false
		v.Range(func(_ int, x T) bool {
			if !fn(x) {
				stopped = true
				return false
			}
			return true
		})
		if stopped {
			return
		}
	}
}
