// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package recguard implements a reentrancy detector for walks over
// structures that may contain themselves.
//
// A Guard is keyed by identity (pointer equality), never by value: two
// distinct containers that happen to be equal are different entries.
// A Guard is not global state; a top-level operation creates one and
// passes it down through its recursive calls.
package recguard

type pair struct {
	a, b any
}

// Guard is the set of identities (and ordered pairs of identities)
// that are currently "in progress".  The zero value is ready to use.
type Guard struct {
	active map[any]struct{}
}

// New returns an empty Guard.
func New() *Guard {
	return &Guard{}
}

func (g *Guard) enter(key any) bool {
	if _, busy := g.active[key]; busy {
		return false
	}
	if g.active == nil {
		g.active = make(map[any]struct{})
	}
	g.active[key] = struct{}{}
	return true
}

// Enter marks id as in-progress.  It returns false (and changes
// nothing) if id is already in-progress; that is, if the caller is
// re-entering itself.  A true return must be paired with a call to
// Leave, usually deferred.
//
// id should be a pointer.
func (g *Guard) Enter(id any) bool {
	return g.enter(id)
}

// Leave un-marks id.
func (g *Guard) Leave(id any) {
	delete(g.active, id)
}

// EnterPair is like Enter, but for binary walks (equality,
// comparison) that are keyed on the pair of operands.  The pair is
// ordered; (a,b) and (b,a) are tracked separately.
func (g *Guard) EnterPair(a, b any) bool {
	return g.enter(pair{a, b})
}

// LeavePair un-marks the pair (a,b).
func (g *Guard) LeavePair(a, b any) {
	delete(g.active, pair{a, b})
}

// Depth returns how many entries are currently in-progress.
func (g *Guard) Depth() int {
	return len(g.active)
}

// Do runs fn with id marked as in-progress, unmarking it on every
// exit path (including a panic).  It returns false without calling
// fn if id is already in progress.
func (g *Guard) Do(id any, fn func()) bool {
	if !g.Enter(id) {
		return false
	}
	defer g.Leave(id)
	fn()
	return true
}
