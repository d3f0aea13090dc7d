package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relbump/relbump/internal/release"
)

func newNextCmd(a *app) *cobra.Command {
	var flags transitionFlags

	cmd := &cobra.Command{
		Use:   "next <version>",
		Short: "Print the version following a given one",
		Long: `Print the version that a bump would produce, without touching any file.

Field bumps (--major, --minor, --patch) increment their field and reset the
lower ones. Stage flags move a version along final -> alpha -> beta -> stable.
A field bump combined with --alpha or --beta starts a prerelease of the new
version.`,
		Example: `  relbump next 1.4.9 --minor      # 1.5.0
  relbump next 2.0.0 --alpha      # 2.0.0a1
  relbump next 2.0.0a1 --beta     # 2.0.0b1
  relbump next 2.0.0b1 --stable   # 2.0.0`,
		Args: exactArgs(1),
		Annotations: map[string]string{
			skipConfigAnnotation: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request()
			if err != nil {
				return err
			}
			current, err := release.Parse(args[0])
			if err != nil {
				return err
			}
			next, err := release.Next(current, req)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), next)
			return err
		},
	}
	cmd.GroupID = GroupRelease
	flags.register(cmd)

	return cmd
}
