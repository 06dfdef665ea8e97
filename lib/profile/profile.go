// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package profile implements a uniform interface for getting
// profiling information from the Go runtime.
package profile

import (
	"fmt"
	"io"
	"runtime/pprof"
	"runtime/trace"
)

type StopFunc = func() error

type startFunc = func(io.Writer) (StopFunc, error)

// CPU arranges to write a CPU profile to the given Writer, and
// returns a function to be called on shutdown.
func CPU(w io.Writer) (StopFunc, error) {
	if err := pprof.StartCPUProfile(w); err != nil {
		return nil, err
	}
	return func() error {
		pprof.StopCPUProfile()
		return nil
	}, nil
}

var _ startFunc = CPU

// Named arranges to write the named runtime/pprof profile (such as
// "heap" or "allocs") to the given Writer when the returned function
// is called.
func Named(name string) startFunc {
	return func(w io.Writer) (StopFunc, error) {
		prof := pprof.Lookup(name)
		if prof == nil {
			return nil, fmt.Errorf("profile: no such profile %q", name)
		}
		return func() error {
			return prof.WriteTo(w, 0)
		}, nil
	}
}

// Trace arranges to write a runtime/trace to the given Writer, and
// returns a function to be called on shutdown.
func Trace(w io.Writer) (StopFunc, error) {
	if err := trace.Start(w); err != nil {
		return nil, err
	}
	return func() error {
		trace.Stop()
		return nil
	}, nil
}

var _ startFunc = Trace
