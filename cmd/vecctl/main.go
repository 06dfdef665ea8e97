// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Command vecctl exercises the vector container from the command
// line: it reads JSON arrays, applies an operation, and writes the
// result as JSON (or in inspect notation).
package main

import (
	"context"
	"io"
	"os"

	"github.com/datawire/dlib/dgroup"
	"github.com/datawire/dlib/dlog"
	"github.com/datawire/ocibuild/pkg/cliutil"
	"github.com/spf13/cobra"

	"github.com/charygao/rubinius/lib/textui"
	"github.com/charygao/rubinius/lib/value"
)

type subcommand struct {
	cobra.Command
	RunE func(*cobra.Command, []string) error
}

// subcommands holds constructors rather than commands, so that each
// argparser gets its own flag variables.
var subcommands []func() subcommand

// globalFlags are the persistent flags shared by every subcommand,
// along with per-invocation state.
type globalFlags struct {
	logLevel textui.LogLevelFlag
	pretty   bool
	inspect  bool

	// files holds arrays that have already been decoded, keyed by
	// filename, so that naming the same file (or "-") twice reads
	// it once.
	files *lruCache[string, *value.Vector]
}

func newArgparser(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{
		logLevel: textui.LogLevelFlag{
			Level: dlog.LogLevelInfo,
		},
		files: newLRUCache[string, *value.Vector](textui.Tunable(8)),
	}

	argparser := &cobra.Command{
		Use:   "vecctl {[flags]|SUBCOMMAND}",
		Short: "Manipulate JSON arrays with a resizable vector",

		Args: cliutil.WrapPositionalArgs(cliutil.OnlySubcommands),
		RunE: cliutil.RunSubcommands,

		SilenceErrors: true, // main() will handle this after .ExecuteContext() returns
		SilenceUsage:  true, // our FlagErrorFunc will handle it

		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	argparser.SetFlagErrorFunc(cliutil.FlagErrorFunc)
	argparser.SetHelpTemplate(cliutil.HelpTemplate)
	argparser.SetIn(stdin)
	argparser.SetOut(stdout)
	argparser.SetErr(stderr)
	argparser.PersistentFlags().Var(&flags.logLevel, "verbosity", "set the verbosity")
	argparser.PersistentFlags().BoolVar(&flags.pretty, "pretty", false, "indent JSON output")
	argparser.PersistentFlags().BoolVar(&flags.inspect, "inspect", false, "write results in inspect notation instead of JSON")

	for _, newChild := range subcommands {
		child := newChild()
		cmd := child.Command
		runE := child.RunE
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := textui.NewLogger(cmd.ErrOrStderr(), flags.logLevel.Level)
			ctx = dlog.WithLogger(ctx, logger)
			ctx = dlog.WithField(ctx, "vecctl.cmd", cmd.Name())
			dlog.SetFallbackLogger(logger.WithField("vecctl.THIS_IS_A_BUG", true))

			grp := dgroup.NewGroup(ctx, dgroup.GroupConfig{
				EnableSignalHandling: true,
			})
			grp.Go("main", func(ctx context.Context) error {
				cmd.SetContext(withGlobalFlags(ctx, flags))
				return runE(cmd, args)
			})
			return grp.Wait()
		}
		argparser.AddCommand(&cmd)
	}

	return argparser
}

type globalFlagsKey struct{}

func withGlobalFlags(ctx context.Context, flags *globalFlags) context.Context {
	return context.WithValue(ctx, globalFlagsKey{}, flags)
}

func getGlobalFlags(ctx context.Context) *globalFlags {
	flags, _ := ctx.Value(globalFlagsKey{}).(*globalFlags)
	if flags == nil {
		flags = &globalFlags{
			files: newLRUCache[string, *value.Vector](1),
		}
	}
	return flags
}

func main() {
	argparser := newArgparser(os.Stdin, os.Stdout, os.Stderr)
	if err := argparser.ExecuteContext(context.Background()); err != nil {
		textui.Fprintf(os.Stderr, "%v: error: %v\n", argparser.CommandPath(), err)
		os.Exit(1)
	}
}
