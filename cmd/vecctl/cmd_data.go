// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/datawire/dlib/dlog"
	"github.com/datawire/ocibuild/pkg/cliutil"
	"github.com/spf13/cobra"

	"github.com/charygao/rubinius/lib/value"
	"github.com/charygao/rubinius/lib/vector"
)

// unary returns a constructor for a "SUBCMD FILE" command that
// transforms one array.  If fn returns a nil result, it has written
// its own output.
func unary(use, short string, fn func(*cobra.Command, *value.Vector) (*value.Vector, error)) func() subcommand {
	return func() subcommand {
		return subcommand{
			Command: cobra.Command{
				Use:   use + " FILE",
				Short: short,
				Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
			},
			RunE: func(cmd *cobra.Command, args []string) error {
				vec, err := readJSONFile(cmd, args[0])
				if err != nil {
					return err
				}
				result, err := fn(cmd, vec)
				if err != nil || result == nil {
					return err
				}
				return writeResult(cmd, result)
			},
		}
	}
}

// binary returns a constructor for a "SUBCMD FILE_A FILE_B" command
// that combines two arrays.
func binary(use, short string, fn func(a, b *value.Vector) *value.Vector) func() subcommand {
	return func() subcommand {
		return subcommand{
			Command: cobra.Command{
				Use:   use + " FILE_A FILE_B",
				Short: short,
				Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(2)),
			},
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := readJSONFile(cmd, args[0])
				if err != nil {
					return err
				}
				b, err := readJSONFile(cmd, args[1])
				if err != nil {
					return err
				}
				return writeResult(cmd, fn(a, b))
			},
		}
	}
}

func init() {
	subcommands = append(subcommands,
		unary("inspect", "Print an array in inspect notation", func(cmd *cobra.Command, vec *value.Vector) (*value.Vector, error) {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), vec.Inspect(value.Inspect))
			return nil, err
		}),
		unary("uniq", "Remove duplicate elements, keeping the first of each", func(_ *cobra.Command, vec *value.Vector) (*value.Vector, error) {
			return vector.UniqFunc(vec, value.Key), nil
		}),
		binary("union", "Distinct elements of either array, in first-seen order", func(a, b *value.Vector) *value.Vector {
			return vector.UnionFunc(a, b, value.Key)
		}),
		binary("intersect", "Elements of FILE_A that match an element of FILE_B", func(a, b *value.Vector) *value.Vector {
			return vector.IntersectFunc(a, b, value.Key)
		}),
		binary("diff", "Elements of FILE_A that do not appear in FILE_B", func(a, b *value.Vector) *value.Vector {
			return vector.DifferenceFunc(a, b, value.Key)
		}),
		newSortCommand,
		newFlattenCommand,
		newSliceCommand,
		newShuffleCommand,
	)
}

func newSortCommand() subcommand {
	var desc bool
	ret := unary("sort", "Sort an array of numbers, strings, or arrays", func(cmd *cobra.Command, vec *value.Vector) (*value.Vector, error) {
		cmp := vector.Comparator[any](value.Compare)
		if desc {
			cmp = cmp.Reversed()
		}
		start := time.Now()
		if err := vec.Sort(cmp); err != nil {
			return nil, err
		}
		dlog.Debugf(cmd.Context(), "sorted %d elements in %v", vec.Len(), time.Since(start))
		return vec, nil
	})()
	ret.Flags().BoolVar(&desc, "desc", false, "sort in descending order")
	return ret
}

func newFlattenCommand() subcommand {
	var level int
	ret := unary("flatten", "Splice nested arrays into their parent", func(_ *cobra.Command, vec *value.Vector) (*value.Vector, error) {
		return vec.Flatten(level)
	})()
	ret.Flags().IntVar(&level, "level", -1, "how many levels of nesting to flatten (negative for all)")
	return ret
}

func newSliceCommand() subcommand {
	return subcommand{
		Command: cobra.Command{
			Use:   "slice FILE START [COUNT]",
			Short: "Copy out a window of an array",
			Long: "" +
				"START may be negative, to count from the end.  If COUNT " +
				"is omitted, the window runs to the end of the array.",
			Args: cliutil.WrapPositionalArgs(cobra.RangeArgs(2, 3)),
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseIntArg(args[1])
			if err != nil {
				return fmt.Errorf("START: %w", err)
			}
			vec, err := readJSONFile(cmd, args[0])
			if err != nil {
				return err
			}
			count := vec.Len()
			if len(args) > 2 {
				if count, err = parseIntArg(args[2]); err != nil {
					return fmt.Errorf("COUNT: %w", err)
				}
			}
			result, ok := vec.Slice(start, count)
			if !ok {
				return fmt.Errorf("slice %d,%d is out of range for an array of length %d", start, count, vec.Len())
			}
			return writeResult(cmd, result)
		},
	}
}

func newShuffleCommand() subcommand {
	var seed int64
	ret := unary("shuffle", "Randomly reorder an array", func(cmd *cobra.Command, vec *value.Vector) (*value.Vector, error) {
		if !cmd.Flags().Changed("seed") {
			seed = time.Now().UnixNano()
		}
		dlog.Debugf(cmd.Context(), "shuffling with seed %d", seed)
		rng := rand.New(rand.NewSource(seed)) //nolint:gosec // Not used for security.
		if err := vec.Shuffle(rng.Intn); err != nil {
			return nil, err
		}
		return vec, nil
	})()
	ret.Flags().Int64Var(&seed, "seed", 0, "seed for the random number generator")
	return ret
}
