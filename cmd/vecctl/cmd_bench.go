// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/datawire/dlib/dlog"
	"github.com/datawire/ocibuild/pkg/cliutil"
	"github.com/spf13/cobra"

	"github.com/charygao/rubinius/lib/profile"
	"github.com/charygao/rubinius/lib/textui"
	"github.com/charygao/rubinius/lib/vector"
)

type benchStats struct {
	Workload string
	Done     textui.Portion[int]
	Realloc  int
}

func (s benchStats) String() string {
	return textui.Sprintf("%s: %v ops (%d reallocations)", s.Workload, s.Done, s.Realloc)
}

type benchResult struct {
	Workload string
	Ops      int
	Elapsed  time.Duration
	Realloc  int
	Final    vector.Layout
}

// A benchWorkload runs n operations against vec, calling step after
// each one.
type benchWorkload struct {
	name string
	run  func(ctx context.Context, vec *vector.Vector[int], n int, rng *rand.Rand, step func(i int)) error
}

var benchWorkloads = []benchWorkload{
	{
		name: "push",
		run: func(_ context.Context, vec *vector.Vector[int], n int, _ *rand.Rand, step func(int)) error {
			for i := 0; i < n; i++ {
				vec.Push(i)
				step(i)
			}
			return nil
		},
	},
	{
		// A FIFO queue at a steady depth: shift from the front,
		// push to the back.
		name: "queue",
		run: func(_ context.Context, vec *vector.Vector[int], n int, _ *rand.Rand, step func(int)) error {
			for i := 0; i < n; i++ {
				vec.Shift()
				vec.Push(i)
				step(i)
			}
			return nil
		},
	},
	{
		name: "splice",
		run: func(_ context.Context, vec *vector.Vector[int], n int, rng *rand.Rand, step func(int)) error {
			for i := 0; i < n; i++ {
				idx := rng.Intn(vec.Len() + 1)
				if i%2 == 0 {
					if err := vec.Splice(idx, 0, i, i); err != nil {
						return err
					}
				} else if err := vec.Splice(idx, 2); err != nil {
					return err
				}
				step(i)
			}
			return nil
		},
	},
	{
		name: "sort",
		run: func(_ context.Context, vec *vector.Vector[int], n int, rng *rand.Rand, step func(int)) error {
			vec.Clear()
			for i := 0; i < n; i++ {
				vec.Push(rng.Int())
			}
			if err := vec.Sort(vector.Natural[int]()); err != nil {
				return err
			}
			step(n - 1)
			return nil
		},
	},
}

func runBench(ctx context.Context, w benchWorkload, size, ops int, seed int64) (benchResult, error) {
	ctx = dlog.WithField(ctx, "vecctl.bench.workload", w.name)
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // Not used for security.

	vec, err := vector.Generate(size, func(i int) int { return i })
	if err != nil {
		return benchResult{}, err
	}

	progressWriter := textui.NewProgress[benchStats](ctx, dlog.LogLevelInfo, textui.Tunable(1*time.Second))
	defer progressWriter.Done()

	stats := benchStats{
		Workload: w.name,
		Done:     textui.Portion[int]{D: ops},
	}
	baseReallocs := vec.Reallocs()
	start := time.Now()
	err = w.run(ctx, vec, ops, rng, func(i int) {
		stats.Realloc = vec.Reallocs() - baseReallocs
		stats.Done.N = i + 1
		progressWriter.Set(stats)
	})
	elapsed := time.Since(start)
	if err != nil {
		return benchResult{}, err
	}
	return benchResult{
		Workload: w.name,
		Ops:      ops,
		Elapsed:  elapsed,
		Realloc:  stats.Realloc,
		Final:    vec.Layout(),
	}, nil
}

func init() {
	subcommands = append(subcommands, func() subcommand {
		var size, ops, rounds int
		var seed int64
		var workloads []string
		var prof *profile.Flags
		ret := subcommand{
			Command: cobra.Command{
				Use:   "bench",
				Short: "Time a few vector workloads",
				Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
			},
			RunE: func(cmd *cobra.Command, _ []string) (err error) {
				ctx := cmd.Context()
				if size < 0 || ops < 0 || rounds < 1 {
					return fmt.Errorf("--size and --ops must be non-negative, and --rounds must be positive")
				}

				selected := make(map[string]bool, len(workloads))
				for _, name := range workloads {
					selected[name] = true
				}
				for name := range selected {
					known := false
					for _, w := range benchWorkloads {
						known = known || w.name == name
					}
					if !known {
						return fmt.Errorf("unknown workload %q", name)
					}
				}

				stopProfiling, err := prof.Start()
				defer func() {
					if _err := stopProfiling(); _err != nil && err == nil {
						err = _err
					}
				}()
				if err != nil {
					return err
				}

				ctx = dlog.WithField(ctx, "mem", new(textui.LiveMemUse))
				out := cmd.OutOrStdout()
				for round := 1; round <= rounds; round++ {
					ctx := dlog.WithField(ctx, "vecctl.bench.round", round)
					ctx = dlog.WithField(ctx, "vecctl.bench.size", size)
					for _, w := range benchWorkloads {
						if len(selected) > 0 && !selected[w.name] {
							continue
						}
						res, err := runBench(ctx, w, size, ops, seed)
						if err != nil {
							return fmt.Errorf("%s: %w", w.name, err)
						}
						if _, err := textui.Fprintf(out, "round=%d workload=%-6s ops=%d elapsed=%v realloc=%d start=%d len=%d cap=%d\n",
							round, res.Workload, res.Ops, res.Elapsed, res.Realloc,
							res.Final.Start, res.Final.Len, res.Final.Cap); err != nil {
							return err
						}
					}
				}
				return nil
			},
		}
		ret.Flags().IntVar(&size, "size", 1024, "initial number of elements")
		ret.Flags().IntVar(&ops, "ops", 100000, "number of operations per workload")
		ret.Flags().IntVar(&rounds, "rounds", 1, "number of times to run each workload")
		ret.Flags().Int64Var(&seed, "seed", 1, "seed for the random number generator")
		ret.Flags().StringSliceVar(&workloads, "workload", nil, "only run the named workloads (push, queue, splice, sort)")
		prof = profile.AddFlags(ret.Flags(), "pprof.")
		return ret
	})
}
