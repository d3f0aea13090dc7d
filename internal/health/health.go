// Package health checks that a repository is ready for a release. It
// validates the configured version source, version and image files,
// changelogs and alpha flags, returning structured reports used by the
// 'relbump doctor' command.
package health

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/relbump/relbump/internal/alphaflags"
	"github.com/relbump/relbump/internal/config"
	"github.com/relbump/relbump/internal/discovery"
	"github.com/relbump/relbump/internal/release"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

func (r *HealthReport) add(c CheckResult) {
	r.Checks = append(r.Checks, c)
	if !c.Passed {
		r.Passed = false
	}
}

// RunHealthChecks runs all health checks against cfg and returns a report.
// Checks that depend on the current version are skipped when it cannot be
// resolved.
func RunHealthChecks(ctx context.Context, fs afero.Fs, cfg *config.Configuration) *HealthReport {
	report := &HealthReport{Passed: true}

	current, versionCheck := CheckCurrentVersion(fs, cfg)
	report.add(versionCheck)

	if versionCheck.Passed {
		report.add(CheckFiles(ctx, fs, "Version files", cfg.VersionFiles, current.String()))
		if len(cfg.Image.Files) > 0 {
			report.add(CheckFiles(ctx, fs, "Image files", cfg.Image.Files, cfg.Image.Name+":"+current.String()))
		}
	}

	if len(cfg.Changelogs) > 0 {
		report.add(CheckChangelogs(fs, cfg.Changelogs))
	}
	if cfg.AlphaFlags.File != "" {
		report.add(CheckAlphaFlags(fs, cfg.AlphaFlags))
	}

	return report
}

// CheckCurrentVersion checks that the current version can be resolved.
func CheckCurrentVersion(fs afero.Fs, cfg *config.Configuration) (release.Version, CheckResult) {
	v, err := config.CurrentVersion(fs, cfg)
	if err != nil {
		return release.Version{}, CheckResult{
			Name:    "Current version",
			Passed:  false,
			Message: err.Error(),
		}
	}

	source := "current_version"
	if cfg.CurrentVersion == "" {
		source = cfg.VersionSource.Path
	}
	return v, CheckResult{
		Name:    "Current version",
		Passed:  true,
		Message: fmt.Sprintf("%s (from %s)", v, source),
	}
}

// CheckFiles expands patterns and counts the files that contain search.
// Files without it are left unchanged by a bump, which is reported but
// does not fail the check.
func CheckFiles(ctx context.Context, fs afero.Fs, name string, patterns []string, search string) CheckResult {
	if len(patterns) == 0 {
		return CheckResult{Name: name, Passed: true, Message: "none configured"}
	}

	paths, err := discovery.Expand(ctx, fs, patterns, nil)
	if err != nil {
		return CheckResult{Name: name, Passed: false, Message: err.Error()}
	}

	var missing []string
	for _, p := range paths {
		data, err := afero.ReadFile(fs, p)
		if err != nil {
			return CheckResult{Name: name, Passed: false, Message: err.Error()}
		}
		if !strings.Contains(string(data), search) {
			missing = append(missing, p)
		}
	}

	msg := fmt.Sprintf("%d files", len(paths))
	if len(missing) > 0 {
		msg += fmt.Sprintf(", %q not found in %s", search, strings.Join(missing, ", "))
	}
	return CheckResult{Name: name, Passed: true, Message: msg}
}

// CheckChangelogs checks that every changelog exists and that at least one
// has pending entries.
func CheckChangelogs(fs afero.Fs, changelogs []config.Changelog) CheckResult {
	var pending []string
	for _, cl := range changelogs {
		data, err := afero.ReadFile(fs, cl.Path)
		if err != nil {
			return CheckResult{Name: "Changelogs", Passed: false, Message: err.Error()}
		}
		if strings.Contains(string(data), cl.PendingHeading) {
			pending = append(pending, cl.Path)
		}
	}

	if len(pending) == 0 {
		return CheckResult{
			Name:    "Changelogs",
			Passed:  false,
			Message: "no changelog has pending entries",
		}
	}
	return CheckResult{
		Name:    "Changelogs",
		Passed:  true,
		Message: "pending entries in " + strings.Join(pending, ", "),
	}
}

// CheckAlphaFlags checks that the alpha flags file parses and counts the
// enabled flags.
func CheckAlphaFlags(fs afero.Fs, cfg config.AlphaFlags) CheckResult {
	flags, err := alphaflags.Flags(fs, cfg.File, cfg.Table)
	if err != nil {
		return CheckResult{Name: "Alpha flags", Passed: false, Message: err.Error()}
	}

	enabled := 0
	for _, on := range flags {
		if on {
			enabled++
		}
	}
	return CheckResult{
		Name:    "Alpha flags",
		Passed:  true,
		Message: fmt.Sprintf("%d of %d enabled in [%s]", enabled, len(flags), cfg.Table),
	}
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport, checkmark, failure string) string {
	var sb strings.Builder
	for _, check := range report.Checks {
		symbol := checkmark
		if !check.Passed {
			symbol = failure
		}
		fmt.Fprintf(&sb, "%s %s: %s\n", symbol, check.Name, check.Message)
	}
	return sb.String()
}
