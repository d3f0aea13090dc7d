package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relbump/relbump/internal/history"
)

func newHistoryCmd(a *app) *cobra.Command {
	var last int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the releases made with relbump",
		Example: `  # Show the 10 most recent releases
  relbump history

  # Show all recorded releases
  relbump history --last 0`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := history.Load(a.fs, a.cfg.History.File)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			entries := h.Last(last)
			if len(entries) == 0 {
				fmt.Fprintln(out, "No releases recorded.")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %s -> %s  %s  (%d files)\n",
					e.Timestamp.Format("2006-01-02 15:04"), e.From, e.To, e.Request, len(e.Files))
			}
			if len(h.Entries) > len(entries) {
				fmt.Fprintf(out, "\n(%d of %d releases shown. Use --last %d to see all)\n",
					len(entries), len(h.Entries), len(h.Entries))
			}
			return nil
		},
	}
	cmd.GroupID = GroupRelease
	cmd.Flags().IntVar(&last, "last", 10, "Number of releases to show (0 = all)")

	return cmd
}
