package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/relbump/relbump/internal/alphaflags"
	clierrors "github.com/relbump/relbump/internal/errors"
)

type alphaOptions struct {
	off    bool
	dryRun bool
}

func newAlphaCmd(a *app) *cobra.Command {
	var opts alphaOptions

	cmd := &cobra.Command{
		Use:   "alpha",
		Short: "Show or switch off alpha feature flags",
		Long: `Show the alpha feature flags of the configured TOML file, or switch every
enabled flag off with --off.

Only "key = true" lines inside the configured table (alpha_flags by default)
are changed; comments and formatting are kept. Nothing is written when the
result would no longer be valid TOML.`,
		Example: `  # List the flags
  relbump alpha

  # Disable every alpha flag before a stable release
  relbump alpha --off`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runAlpha(cmd, opts)
		},
	}
	cmd.GroupID = GroupRelease

	cmd.Flags().BoolVar(&opts.off, "off", false, "Switch every enabled flag off")
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "Show the flags that would be switched off")

	return cmd
}

func (a *app) runAlpha(cmd *cobra.Command, opts alphaOptions) error {
	file, table := a.cfg.AlphaFlags.File, a.cfg.AlphaFlags.Table
	if file == "" {
		return clierrors.NewConfigError("no alpha flags file configured",
			"Set alpha_flags.file in .relbump/config.yml",
		)
	}
	out := cmd.OutOrStdout()

	if !opts.off {
		flags, err := alphaflags.Flags(a.fs, file, table)
		if err != nil {
			return err
		}
		if len(flags) == 0 {
			fmt.Fprintf(out, "No flags in [%s] of %s.\n", table, file)
			return nil
		}
		for _, name := range slices.Sorted(maps.Keys(flags)) {
			fmt.Fprintf(out, "%s = %t\n", name, flags[name])
		}
		return nil
	}

	res, err := alphaflags.Disable(a.fs, file, table, opts.dryRun)
	if err != nil {
		return err
	}
	if len(res.Disabled) == 0 {
		fmt.Fprintf(out, "All alpha flags in %s are already off.\n", file)
		return nil
	}

	verb := "Disabled"
	if opts.dryRun {
		verb = "Would disable"
	}
	for _, name := range res.Disabled {
		fmt.Fprintf(out, "  %s\n", name)
	}
	fmt.Fprintf(out, "%s %d alpha flag(s) in %s.\n", verb, len(res.Disabled), file)
	return nil
}
