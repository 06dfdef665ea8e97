// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package profile

import (
	"os"

	"github.com/datawire/dlib/derror"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type profileFlag struct {
	start    startFunc
	filename string
}

// Flags is a set of "--{prefix}{kind}=FILENAME" flags.  Nothing is
// opened or started when the flags are parsed; that happens in Start,
// so that a command that fails argument validation doesn't leave
// empty profile files behind.
type Flags struct {
	flags []*profileFlag
}

type flagValue struct {
	*profileFlag
}

var _ pflag.Value = flagValue{}

// String implements pflag.Value.
func (fv flagValue) String() string { return fv.filename }

// Set implements pflag.Value.
func (fv flagValue) Set(filename string) error {
	fv.filename = filename
	return nil
}

// Type implements pflag.Value.
func (flagValue) Type() string { return "filename" }

// AddFlags adds flags to a pflag.FlagSet to write any (or all) of the
// CPU, heap, allocs, and trace profiles.
func AddFlags(flags *pflag.FlagSet, prefix string) *Flags {
	ret := new(Flags)
	add := func(name string, start startFunc, usage string) {
		pf := &profileFlag{start: start}
		ret.flags = append(ret.flags, pf)
		flags.Var(flagValue{pf}, prefix+name, usage)
		_ = cobra.MarkFlagFilename(flags, prefix+name)
	}
	add("cpu", CPU, "Write a CPU profile to the file `cpu.pprof`")
	add("heap", Named("heap"), "Write a heap profile to the file `heap.pprof`")
	add("allocs", Named("allocs"), "Write an allocs profile to the file `allocs.pprof`")
	add("trace", Trace, "Write a trace (https://pkg.go.dev/runtime/trace) to the file `trace.out`")
	return ret
}

// Start opens every file that was named on the command line and
// starts the corresponding profile.  The returned function stops the
// profiles and closes the files; it must be called even if Start
// returns an error.
func (fs *Flags) Start() (StopFunc, error) {
	var stops []StopFunc
	stop := func() error {
		var errs derror.MultiError
		for i := len(stops) - 1; i >= 0; i-- {
			if err := stops[i](); err != nil {
				errs = append(errs, err)
			}
		}
		if len(errs) > 0 {
			return errs
		}
		return nil
	}
	for _, pf := range fs.flags {
		if pf.filename == "" {
			continue
		}
		w, err := os.Create(pf.filename)
		if err != nil {
			return stop, err
		}
		shutdown, err := pf.start(w)
		if err != nil {
			_ = w.Close()
			return stop, err
		}
		stops = append(stops, func() error {
			err1 := shutdown()
			err2 := w.Close()
			if err1 != nil {
				return err1
			}
			return err2
		})
	}
	return stop, nil
}
