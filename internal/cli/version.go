package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relbump/relbump/internal/build"
)

func newVersionCmd(_ *app) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Display version information (v)",
		Long:    "Display version, commit, build date, and Go version information for relbump",
		Example: `  # Show version info
  relbump version

  # Only the version number (for scripts)
  relbump version --short`,
		Args: noArgs,
		Annotations: map[string]string{
			skipConfigAnnotation: "true",
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if short {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), build.Version)
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), build.Info())
			return err
		},
	}
	cmd.GroupID = GroupSetup
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")

	return cmd
}
