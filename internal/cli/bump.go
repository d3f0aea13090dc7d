package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/relbump/relbump/internal/changelog"
	"github.com/relbump/relbump/internal/config"
	"github.com/relbump/relbump/internal/discovery"
	"github.com/relbump/relbump/internal/history"
	"github.com/relbump/relbump/internal/lock"
	"github.com/relbump/relbump/internal/output"
	"github.com/relbump/relbump/internal/progress"
	"github.com/relbump/relbump/internal/propagate"
	"github.com/relbump/relbump/internal/release"
)

// transitionFlags are the version transition flags shared by bump and next.
type transitionFlags struct {
	major, minor, patch  bool
	alpha, beta, stable bool
}

func (f *transitionFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.major, "major", false, "Increment the major version")
	cmd.Flags().BoolVar(&f.minor, "minor", false, "Increment the minor version")
	cmd.Flags().BoolVar(&f.patch, "patch", false, "Increment the patch version")
	cmd.Flags().BoolVar(&f.alpha, "alpha", false, "Start or advance an alpha prerelease")
	cmd.Flags().BoolVar(&f.beta, "beta", false, "Start or advance a beta prerelease")
	cmd.Flags().BoolVar(&f.stable, "stable", false, "Finish a prerelease")
}

func (f *transitionFlags) request() (release.Request, error) {
	return release.NewRequest(f.major, f.minor, f.patch, f.alpha, f.beta, f.stable)
}

type bumpOptions struct {
	transition    transitionFlags
	fromChangelog bool
	messageFile   string
	dryRun        bool
	verbose       bool
	allowEmpty    bool
}

func newBumpCmd(a *app) *cobra.Command {
	var opts bumpOptions

	cmd := &cobra.Command{
		Use:   "bump",
		Short: "Compute the next version and write it everywhere",
		Long: `Compute the next version from the current one and propagate it.

The current version comes from current_version or version_source in the
configuration. The new version replaces the first occurrence of the old one
in every version file, the image tag in every image file, and releases the
pending heading of each changelog. A changelog without pending entries gets
an empty release entry.

All files are read and checked before the first one is written.

With --from-changelog the bump is taken from the release notes of the commit
message, read like 'relbump changelog' does. Notes that check skip release
nothing. A stage flag may still be given alongside.`,
		Example: `  # Minor release
  relbump bump --minor

  # First alpha of the next major version
  relbump bump --major --alpha

  # Show what would change
  relbump bump --patch --dry-run

  # Release what the last commit's notes ask for
  git log -1 --format=%B | relbump bump --from-changelog`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBump(cmd, opts)
		},
	}
	cmd.GroupID = GroupRelease

	opts.transition.register(cmd)
	cmd.Flags().BoolVar(&opts.fromChangelog, "from-changelog", false, "Take the bump from the commit message release notes")
	cmd.Flags().StringVarP(&opts.messageFile, "message-file", "m", "", "File holding the commit message, with --from-changelog (default: commit_message_file, then stdin)")
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "Show the changes without writing any file")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "List every file")
	cmd.Flags().BoolVar(&opts.allowEmpty, "allow-empty", false, "Release even when no changelog has pending entries")

	return cmd
}

// bumpRequest builds the transition from the flags or, with --from-changelog,
// from the release notes. skip is set when the notes release nothing.
func (a *app) bumpRequest(cmd *cobra.Command, opts bumpOptions) (req release.Request, skip bool, err error) {
	f := opts.transition
	if !opts.fromChangelog {
		req, err = f.request()
		return req, false, err
	}
	if f.major || f.minor || f.patch {
		return release.Request{}, false, fmt.Errorf("%w: --from-changelog already selects major, minor or patch", release.ErrConflictingTransition)
	}

	msg, source, err := a.readMessage(cmd.InOrStdin(), opts.messageFile)
	if err != nil {
		return release.Request{}, false, err
	}
	decision, err := changelog.ValidateMessage(msg, a.cfg.ChangelogMarker)
	if err != nil {
		return release.Request{}, false, fmt.Errorf("%s: %w", source, err)
	}
	if !decision.Change.IsRelease() {
		return release.Request{}, true, nil
	}

	bump, err := release.ParseBump(string(decision.Change))
	if err != nil {
		return release.Request{}, false, err
	}
	req, err = release.NewRequest(bump == release.BumpMajor, bump == release.BumpMinor, bump == release.BumpPatch, f.alpha, f.beta, f.stable)
	return req, false, err
}

func (a *app) runBump(cmd *cobra.Command, opts bumpOptions) error {
	req, skip, err := a.bumpRequest(cmd, opts)
	if err != nil {
		return err
	}
	if skip {
		fmt.Fprintln(cmd.OutOrStdout(), "No changes to release.")
		return nil
	}

	if !opts.dryRun {
		runLock, err := lock.Acquire(a.cfg.LockFile)
		if err != nil {
			return err
		}
		defer func() {
			if err := runLock.Release(); err != nil {
				a.logger.Warn("could not release lock", slog.Any("error", err))
			}
		}()
	}

	current, err := config.CurrentVersion(a.fs, a.cfg)
	if err != nil {
		return err
	}
	next, err := release.Next(current, req)
	if err != nil {
		return err
	}
	a.logger.Info("computed next version",
		slog.String("current", current.String()),
		slog.String("next", next.String()),
		slog.String("request", req.String()),
	)

	versionFiles, imageFiles, err := a.discoverFiles(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	p := propagate.New(a.fs, propagate.Options{
		ImageName:         a.cfg.Image.Name,
		Now:               a.now,
		DryRun:            opts.dryRun,
		AllowEmptyRelease: opts.allowEmpty,
	}, a.logger)

	report, err := p.Propagate(current, next, versionFiles, imageFiles, a.changelogs())
	if err != nil {
		return err
	}

	if !opts.dryRun {
		a.recordRelease(report, req)
	}

	return a.printReport(cmd.OutOrStdout(), report, opts.verbose || opts.dryRun)
}

// recordRelease appends the release to the history. Failures only warn.
func (a *app) recordRelease(report *propagate.Report, req release.Request) {
	w := history.NewWriter(a.fs, a.cfg.History.File, a.cfg.History.MaxEntries)
	err := w.Append(history.Entry{
		Timestamp: a.now().UTC(),
		From:      report.Old.String(),
		To:        report.New.String(),
		Request:   req.String(),
		Files:     report.Changed(),
	})
	if err != nil {
		a.logger.Warn("could not record release history", slog.Any("error", err))
	}
}

// discoverFiles expands the configured version and image file patterns.
func (a *app) discoverFiles(ctx context.Context, w io.Writer) ([]string, []string, error) {
	var sp *progress.Spinner
	if a.caps.IsTTY {
		sp = progress.NewSpinner(w, a.caps)
		sp.Start("Finding files")
	}

	versionFiles, err := discovery.Expand(ctx, a.fs, a.cfg.VersionFiles, a.logger)
	if err == nil {
		var imageFiles []string
		imageFiles, err = discovery.Expand(ctx, a.fs, a.cfg.Image.Files, a.logger)
		if err == nil {
			if sp != nil {
				sp.Success(fmt.Sprintf("Found %d version and %d image files", len(versionFiles), len(imageFiles)))
			}
			a.logger.Debug("files discovered",
				slog.Any("version_files", versionFiles),
				slog.Any("image_files", imageFiles),
			)
			return versionFiles, imageFiles, nil
		}
	}

	if sp != nil {
		sp.Fail("Finding files")
	}
	return nil, nil, err
}

func (a *app) changelogs() []propagate.Changelog {
	out := make([]propagate.Changelog, 0, len(a.cfg.Changelogs))
	for _, cl := range a.cfg.Changelogs {
		out = append(out, propagate.Changelog{
			Path:           cl.Path,
			Name:           cl.Name,
			PendingHeading: cl.PendingHeading,
		})
	}
	return out
}

func (a *app) printReport(w io.Writer, report *propagate.Report, details bool) error {
	plain := a.usePlain()
	if details {
		for _, f := range report.Files {
			output.PrintFileAction(w, f.Kind, f.Path, string(f.Action), plain)
			if f.Diff != "" {
				fmt.Fprint(w, output.FormatDiff(f.Diff, "      ", plain))
			}
		}
	}

	n := report.Count(propagate.KindVersion)
	if report.DryRun {
		return output.PrintSuccess(w, fmt.Sprintf("Would bump version from %s to %s in %d files (dry run).", report.Old, report.New, n), plain)
	}
	return output.PrintSuccess(w, fmt.Sprintf("Bumped version from %s to %s in %d files.", report.Old, report.New, n), plain)
}
