package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/relbump/relbump/internal/changelog"
)

type changelogOptions struct {
	messageFile string
	quiet       bool
}

func newChangelogCmd(a *app) *cobra.Command {
	var opts changelogOptions

	cmd := &cobra.Command{
		Use:   "changelog",
		Short: "Validate the release notes of a commit message",
		Long: `Validate the release notes written after the changelog marker of a
commit message and print the release type they select.

The message is read from --message-file, then from commit_message_file in
the configuration, and otherwise from standard input. The notes must start
with a checkbox list with exactly one of major, minor, patch or skip checked,
followed by a "## cdf" and a "## templates" section. A section with nothing
to report says "No changes.".`,
		Example: `  # Validate the last commit
  git log -1 --format=%B | relbump changelog

  # Validate a message file, printing nothing on success
  relbump changelog --message-file .git/COMMIT_EDITMSG --quiet`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runChangelog(cmd, opts)
		},
	}
	cmd.GroupID = GroupRelease

	cmd.Flags().StringVarP(&opts.messageFile, "message-file", "m", "", "File holding the commit message (default: commit_message_file, then stdin)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Print nothing on success")

	return cmd
}

func (a *app) runChangelog(cmd *cobra.Command, opts changelogOptions) error {
	msg, source, err := a.readMessage(cmd.InOrStdin(), opts.messageFile)
	if err != nil {
		return err
	}

	decision, err := changelog.ValidateMessage(msg, a.cfg.ChangelogMarker)
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	a.logger.Info("release notes valid",
		slog.String("source", source),
		slog.String("change", string(decision.Change)),
	)

	if opts.quiet {
		return nil
	}
	return changelog.FormatDecision(decision, cmd.OutOrStdout(), changelog.FormatOptions{
		Plain:    a.usePlain(),
		MaxWidth: a.caps.Width,
	})
}

// readMessage returns the commit message and a name for where it came from.
func (a *app) readMessage(stdin io.Reader, messageFile string) (string, string, error) {
	if messageFile == "" {
		messageFile = a.cfg.CommitMessageFile
	}

	if messageFile != "" {
		data, err := afero.ReadFile(a.fs, messageFile)
		if err != nil {
			return "", "", fmt.Errorf("reading commit message file: %w", err)
		}
		return string(data), messageFile, nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", "", fmt.Errorf("reading commit message from stdin: %w", err)
	}
	return string(data), "stdin", nil
}
