// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package identmap implements an insertion-ordered membership
// structure: a mapping from a canonical key to the first-seen
// representative element having that key.
//
// It is the bookkeeping behind order-preserving union, intersection,
// difference, and de-duplication.
package identmap

import (
	"git.lukeshu.com/go/typedsync"
)

type entry[K comparable, V any] struct {
	older, newer *entry[K, V]
	key          K
	val          V
}

// Map is an insertion-ordered map from K to the first V that was
// inserted with that key.
//
// Rather than "head/tail", the internal list has "oldest" and
// "newest" ends; iteration goes oldest-to-newest, which is
// first-seen order.
type Map[K comparable, V any] struct {
	// KeyFn derives the canonical key of a value.  It must be set
	// before the Map is used.
	KeyFn func(V) K

	index          map[K]*entry[K, V]
	oldest, newest *entry[K, V]
	pool           typedsync.Pool[*entry[K, V]]
}

// New returns an empty Map that uses keyFn to derive keys.
func New[K comparable, V any](keyFn func(V) K) *Map[K, V] {
	return &Map[K, V]{
		KeyFn: keyFn,
	}
}

// From returns a Map built by inserting every value of every one of
// the given sequences, in order.
func From[K comparable, V any](keyFn func(V) K, seqs ...[]V) *Map[K, V] {
	m := New[K, V](keyFn)
	for _, seq := range seqs {
		for _, v := range seq {
			m.Insert(v)
		}
	}
	return m
}

// Len returns the number of distinct keys in the Map.
func (m *Map[K, V]) Len() int {
	return len(m.index)
}

// Has returns whether a value with the same key as v is present.
func (m *Map[K, V]) Has(v V) bool {
	_, ok := m.index[m.KeyFn(v)]
	return ok
}

// Insert adds v if no value with the same key is present yet.  It
// returns whether v was added; an existing representative is never
// replaced.
func (m *Map[K, V]) Insert(v V) bool {
	key := m.KeyFn(v)
	if _, ok := m.index[key]; ok {
		return false
	}
	if m.index == nil {
		m.index = make(map[K]*entry[K, V])
	}
	ent, ok := m.pool.Get()
	if !ok {
		ent = new(entry[K, V])
	}
	*ent = entry[K, V]{
		older: m.newest,
		key:   key,
		val:   v,
	}
	m.newest = ent
	if ent.older == nil {
		m.oldest = ent
	} else {
		ent.older.newer = ent
	}
	m.index[key] = ent
	return true
}

// Delete removes the value having the same key as v, returning
// whether there was one to remove.
//
// Used as a membership test, Delete "consumes" the match: a second
// Delete with an equal value returns false.
func (m *Map[K, V]) Delete(v V) bool {
	key := m.KeyFn(v)
	ent, ok := m.index[key]
	if !ok {
		return false
	}
	delete(m.index, key)

	if ent.newer == nil {
		m.newest = ent.older
	} else {
		ent.newer.older = ent.older
	}
	if ent.older == nil {
		m.oldest = ent.newer
	} else {
		ent.older.newer = ent.newer
	}

	*ent = entry[K, V]{} // no memory leaks
	m.pool.Put(ent)
	return true
}

// Range calls fn for each representative in first-seen order,
// stopping early if fn returns false.  fn must not modify the Map.
func (m *Map[K, V]) Range(fn func(V) bool) {
	for ent := m.oldest; ent != nil; ent = ent.newer {
		if !fn(ent.val) {
			return
		}
	}
}

// Values returns the representatives in first-seen order.
func (m *Map[K, V]) Values() []V {
	ret := make([]V, 0, len(m.index))
	m.Range(func(v V) bool {
		ret = append(ret, v)
		return true
	})
	return ret
}
