package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
)

// Execute runs the artkit CLI with args, logging to stderr and printing
// command output to stdout.
//
// The --verbose flag switches the logger to debug level before any
// command runs. Errors are returned unprinted so the caller controls the
// exit status and message.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var verbose bool

	c := New(stderr, LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	setup := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(LogDebug)
		}
		return setup(cmd, args)
	}

	return root.ExecuteContext(ctx)
}
