// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"fmt"
	"io"

	"github.com/datawire/ocibuild/pkg/cliutil"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/charygao/rubinius/lib/value"
)

func init() {
	subcommands = append(subcommands, func() subcommand {
		var shift, pop, unshift int
		ret := subcommand{
			Command: cobra.Command{
				Use:   "layout FILE",
				Short: "Show how an array sits in its backing buffer",
				Long: "" +
					"Loads FILE, then applies --shift, --pop, and --unshift " +
					"(in that order), dumping the start/length/capacity after " +
					"each step.",
				Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
			},
			RunE: func(cmd *cobra.Command, args []string) error {
				vec, err := readJSONFile(cmd, args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				cfg := spew.NewDefaultConfig()
				cfg.DisablePointerAddresses = true
				cfg.SortKeys = true

				if err := dumpLayout(out, cfg, "loaded", vec); err != nil {
					return err
				}
				if shift > 0 {
					if _, err := vec.ShiftN(shift); err != nil {
						return err
					}
					if err := dumpLayout(out, cfg, fmt.Sprintf("shift %d", shift), vec); err != nil {
						return err
					}
				}
				if pop > 0 {
					if _, err := vec.PopN(pop); err != nil {
						return err
					}
					if err := dumpLayout(out, cfg, fmt.Sprintf("pop %d", pop), vec); err != nil {
						return err
					}
				}
				if unshift > 0 {
					for i := 0; i < unshift; i++ {
						vec.Unshift(nil)
					}
					if err := dumpLayout(out, cfg, fmt.Sprintf("unshift %d", unshift), vec); err != nil {
						return err
					}
				}
				return nil
			},
		}
		ret.Flags().IntVar(&shift, "shift", 0, "remove `N` elements from the front")
		ret.Flags().IntVar(&pop, "pop", 0, "remove `N` elements from the back")
		ret.Flags().IntVar(&unshift, "unshift", 0, "prepend `N` nulls, one at a time")
		return ret
	})
}

func dumpLayout(out io.Writer, cfg *spew.ConfigState, step string, vec *value.Vector) error {
	if _, err := fmt.Fprintf(out, "# %s: %s\n", step, vec.Inspect(value.Inspect)); err != nil {
		return err
	}
	_, err := io.WriteString(out, cfg.Sdump(vec.Layout()))
	return err
}
