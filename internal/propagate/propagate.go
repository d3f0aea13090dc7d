package propagate

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"

	"github.com/relbump/relbump/internal/changelog"
	"github.com/relbump/relbump/internal/release"
)

// ErrNothingToRelease is returned when none of the changelogs carries its
// pending heading, meaning no change was recorded since the last release.
var ErrNothingToRelease = errors.New("there are no changes to release")

const defaultPerm os.FileMode = 0o644

// Changelog is a changelog file taking part in a release.
type Changelog struct {
	Path string
	// Name is used in the placeholder entry, e.g. "No changes to templates.".
	Name string
	// PendingHeading is the literal heading collecting unreleased entries, e.g. "## TBD".
	PendingHeading string
}

// Options configures a Propagator.
type Options struct {
	// ImageName prefixes the version in image files, as in "<ImageName>:<version>".
	ImageName string
	// Now returns the release date. Defaults to time.Now.
	Now func() time.Time
	// DryRun computes the report and diffs without writing anything.
	DryRun bool
	// AllowEmptyRelease releases even when no changelog has a pending heading.
	AllowEmptyRelease bool
}

// Propagator rewrites files on a filesystem.
type Propagator struct {
	fs     afero.Fs
	opts   Options
	logger *slog.Logger
}

// New creates a Propagator. A nil logger discards all output.
func New(fs afero.Fs, opts Options, logger *slog.Logger) *Propagator {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Propagator{fs: fs, opts: opts, logger: logger}
}

// pendingFile is a file held in memory between the two phases.
type pendingFile struct {
	path   string
	perm   os.FileMode
	before string
	after  string
}

type plan struct {
	files []*pendingFile
	index map[string]*pendingFile
}

// Propagate replaces current with next in every file. Changelogs are handled
// first, then version files, then image files. When a path is listed more
// than once its transformations are applied in that order.
func (p *Propagator) Propagate(
	current, next release.Version,
	versionFiles, imageFiles []string,
	changelogs []Changelog,
) (*Report, error) {
	if len(imageFiles) > 0 && p.opts.ImageName == "" {
		return nil, errors.New("an image name is required to update image files")
	}

	now := p.opts.Now()
	heading := changelog.ReleaseHeading(next.String(), now)
	report := &Report{Old: current, New: next, Heading: heading, DryRun: p.opts.DryRun}
	pl := &plan{index: make(map[string]*pendingFile)}

	released := false
	for _, cl := range changelogs {
		f, err := p.load(pl, cl.Path)
		if err != nil {
			return nil, err
		}

		result := FileResult{Path: cl.Path, Kind: KindChangelog}
		if cl.PendingHeading != "" && strings.Contains(f.after, cl.PendingHeading) {
			f.after = strings.ReplaceAll(f.after, cl.PendingHeading, heading)
			result.Action = ActionReleasedPending
			released = true
		} else {
			f.after = insertRelease(f.after, changelog.ReleaseLines(next.String(), now, cl.Name))
			result.Action = ActionInsertedNoChange
		}
		result.Changed = true
		report.Files = append(report.Files, result)
	}

	if len(changelogs) > 0 && !released && !p.opts.AllowEmptyRelease {
		headings := make([]string, 0, len(changelogs))
		for _, cl := range changelogs {
			headings = append(headings, fmt.Sprintf("%s in %s", cl.PendingHeading, cl.Path))
		}
		return nil, fmt.Errorf("%w: no changelog contains its pending heading (%s)",
			ErrNothingToRelease, strings.Join(headings, ", "))
	}

	replacements := []struct {
		paths    []string
		kind     FileKind
		action   Action
		from, to string
	}{
		{versionFiles, KindVersion, ActionReplacedVersion, current.String(), next.String()},
		{imageFiles, KindImage, ActionReplacedImage, p.opts.ImageName + ":" + current.String(), p.opts.ImageName + ":" + next.String()},
	}
	for _, r := range replacements {
		for _, path := range r.paths {
			f, err := p.load(pl, path)
			if err != nil {
				return nil, err
			}

			result := FileResult{Path: path, Kind: r.kind, Action: ActionNoMatch}
			if strings.Contains(f.after, r.from) {
				f.after = strings.Replace(f.after, r.from, r.to, 1)
				result.Action = r.action
				result.Changed = true
			} else {
				p.logger.Warn("version not found, file left unchanged",
					slog.String("path", path),
					slog.String("search", r.from),
				)
			}
			report.Files = append(report.Files, result)
		}
	}

	if p.opts.DryRun {
		for i := range report.Files {
			f := pl.index[report.Files[i].Path]
			report.Files[i].Diff = lineDiff(f.before, f.after)
		}
		p.logger.Debug("dry run, nothing written", slog.Int("files", len(pl.files)))
		return report, nil
	}

	return report, p.write(pl)
}

// load reads path once; later calls return the same in-memory file.
func (p *Propagator) load(pl *plan, path string) (*pendingFile, error) {
	if f, ok := pl.index[path]; ok {
		return f, nil
	}

	info, err := p.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	perm := info.Mode().Perm()
	if perm == 0 {
		perm = defaultPerm
	}
	f := &pendingFile{path: path, perm: perm, before: string(data), after: string(data)}
	pl.files = append(pl.files, f)
	pl.index[path] = f
	return f, nil
}

// write rewrites every modified file, continuing past failures.
func (p *Propagator) write(pl *plan) error {
	var merr *multierror.Error
	for _, f := range pl.files {
		if f.before == f.after {
			continue
		}
		if err := afero.WriteFile(p.fs, f.path, []byte(f.after), f.perm); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("writing %s: %w", f.path, err))
			continue
		}
		p.logger.Debug("file updated", slog.String("path", f.path))
	}
	return merr.ErrorOrNil()
}

// insertRelease places entry above the first line starting with "##", or at
// the end of the content when there is no such line. Other lines are kept
// verbatim and the result always ends with a newline.
func insertRelease(content string, entry []string) string {
	lines := splitLines(content)

	out := make([]string, 0, len(lines)+len(entry))
	inserted := false
	for _, line := range lines {
		if !inserted && strings.HasPrefix(line, "##") {
			out = append(out, entry...)
			inserted = true
		}
		out = append(out, line)
	}
	if !inserted {
		out = append(out, entry...)
	}
	return strings.Join(out, "\n") + "\n"
}
