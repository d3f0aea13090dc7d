package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	clierrors "github.com/relbump/relbump/internal/errors"
)

// noArgs rejects positional arguments with an argument error.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return clierrors.NewArgumentErrorWithUsage(
			fmt.Sprintf("unexpected argument %q", args[0]),
			cmd.UseLine(),
			"Run '"+cmd.CommandPath()+" --help' for usage",
		)
	}
	return nil
}

// exactArgs requires n positional arguments.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return clierrors.NewArgumentErrorWithUsage(
				fmt.Sprintf("expected %d argument(s), got %d", n, len(args)),
				cmd.UseLine(),
				"Run '"+cmd.CommandPath()+" --help' for usage",
			)
		}
		return nil
	}
}
