package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relbump/relbump/internal/health"
	"github.com/relbump/relbump/internal/progress"
)

func newDoctorCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the repository is ready for a release",
		Long: `Check the current version, version and image files, changelogs and alpha
flags named by the configuration. Exits non-zero when a check fails.`,
		Example: `  relbump doctor`,
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report := health.RunHealthChecks(cmd.Context(), a.fs, a.cfg)

			caps := a.caps
			if a.plain {
				caps.SupportsUnicode = false
			}
			symbols := progress.SelectSymbols(caps)
			fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report, symbols.Checkmark, symbols.Failure))

			if !report.Passed {
				return NewExitError(ExitFailure)
			}
			return nil
		},
	}
	cmd.GroupID = GroupSetup

	return cmd
}
