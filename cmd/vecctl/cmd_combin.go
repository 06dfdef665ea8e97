// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"fmt"

	"github.com/datawire/dlib/dlog"
	"github.com/datawire/ocibuild/pkg/cliutil"
	"github.com/spf13/cobra"

	"github.com/charygao/rubinius/lib/textui"
	"github.com/charygao/rubinius/lib/value"
	"github.com/charygao/rubinius/lib/vector"
)

type combinatoric struct {
	name     string
	short    string
	generate func(v *value.Vector, k int, fn func(*value.Vector) bool)
	count    func(v *value.Vector, k int) (int, error)
	// whether K may be omitted, meaning "all of them"
	optionalK bool
}

func (c combinatoric) newCommand() subcommand {
	var countOnly bool
	var limit int
	args := cobra.ExactArgs(2)
	use := c.name + " FILE K"
	if c.optionalK {
		args = cobra.RangeArgs(1, 2)
		use = c.name + " FILE [K]"
	}
	ret := subcommand{
		Command: cobra.Command{
			Use:   use,
			Short: c.short,
			Args:  cliutil.WrapPositionalArgs(args),
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			vec, err := readJSONFile(cmd, args[0])
			if err != nil {
				return err
			}
			k := vec.Len()
			if len(args) > 1 {
				if k, err = parseIntArg(args[1]); err != nil {
					return fmt.Errorf("K: %w", err)
				}
			}

			total, countErr := c.count(vec, k)
			if countOnly {
				if countErr != nil {
					return countErr
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), total)
				return err
			}
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative (got %d)", limit)
			}
			switch {
			case countErr != nil:
				dlog.Infof(ctx, "%s: %v", c.name, countErr)
			case limit > 0 && total > limit:
				dlog.Infof(ctx, "only writing %v", textui.Portion[int]{N: limit, D: total})
			default:
				dlog.Debugf(ctx, "%s of %v elements taken %v at a time: %v",
					c.name, textui.Humanized(vec.Len()), k, textui.Humanized(total))
			}

			result := vector.New[any]()
			c.generate(vec, k, func(sel *value.Vector) bool {
				result.Push(sel)
				return limit == 0 || result.Len() < limit
			})
			return writeResult(cmd, result)
		},
	}
	ret.Flags().BoolVar(&countOnly, "count", false, "only print how many there are")
	ret.Flags().IntVar(&limit, "limit", 0, "stop after `N` results (0 for no limit)")
	return ret
}

func init() {
	for _, c := range []combinatoric{
		{
			name:     "combinations",
			short:    "List the K-element subsets of an array, in order",
			generate: (*value.Vector).Combinations,
			count:    (*value.Vector).CountCombinations,
		},
		{
			name:      "permutations",
			short:     "List the K-element arrangements of an array",
			generate:  (*value.Vector).Permutations,
			count:     (*value.Vector).CountPermutations,
			optionalK: true,
		},
		{
			name:     "repeated-combinations",
			short:    "List the K-element multisets of an array's elements",
			generate: (*value.Vector).RepeatedCombinations,
			count:    (*value.Vector).CountRepeatedCombinations,
		},
		{
			name:     "repeated-permutations",
			short:    "List the K-element sequences of an array's elements",
			generate: (*value.Vector).RepeatedPermutations,
			count:    (*value.Vector).CountRepeatedPermutations,
		},
	} {
		subcommands = append(subcommands, c.newCommand)
	}
}
