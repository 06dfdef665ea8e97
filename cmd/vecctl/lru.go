// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	lru "github.com/hashicorp/golang-lru"
)

// lruCache is a typed wrapper around an ARC cache.  A zero lruCache
// is not usable; it must be initialized with newLRUCache.
type lruCache[K comparable, V any] struct {
	inner *lru.ARCCache
}

func newLRUCache[K comparable, V any](size int) *lruCache[K, V] {
	c := new(lruCache[K, V])
	c.inner, _ = lru.NewARC(size)
	return c
}

func (c *lruCache[K, V]) Add(key K, value V) {
	c.inner.Add(key, value)
}

func (c *lruCache[K, V]) Get(key K) (value V, ok bool) {
	_value, ok := c.inner.Get(key)
	if ok {
		//nolint:forcetypeassert // Typed wrapper around untyped lib.
		value = _value.(V)
	}
	return value, ok
}

func (c *lruCache[K, V]) Len() int {
	return c.inner.Len()
}
