package health

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relbump/relbump/internal/config"
)

func newFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
	return fs
}

func TestRunHealthChecks(t *testing.T) {
	t.Parallel()

	fs := newFS(t, map[string]string{
		"pyproject.toml": "version = \"1.2.3\"\n",
		"README.md":      "no version here\n",
		"action.yml":     "image: cognite/toolkit:1.2.3\n",
		"CHANGELOG.md":   "## TBD\n\n- Added X\n",
		"cdf.toml":       "[alpha_flags]\nrun = true\ndump = false\n",
	})
	cfg := &config.Configuration{
		CurrentVersion: "1.2.3",
		VersionFiles:   []string{"pyproject.toml", "README.md"},
		Image:          config.Image{Name: "cognite/toolkit", Files: []string{"action.yml"}},
		Changelogs:     []config.Changelog{{Path: "CHANGELOG.md", Name: "cdf", PendingHeading: "## TBD"}},
		AlphaFlags:     config.AlphaFlags{File: "cdf.toml", Table: "alpha_flags"},
	}

	report := RunHealthChecks(context.Background(), fs, cfg)
	assert.True(t, report.Passed)
	assert.Equal(t, []CheckResult{
		{Name: "Current version", Passed: true, Message: "1.2.3 (from current_version)"},
		{Name: "Version files", Passed: true, Message: "2 files, \"1.2.3\" not found in README.md"},
		{Name: "Image files", Passed: true, Message: "1 files"},
		{Name: "Changelogs", Passed: true, Message: "pending entries in CHANGELOG.md"},
		{Name: "Alpha flags", Passed: true, Message: "1 of 2 enabled in [alpha_flags]"},
	}, report.Checks)
}

func TestRunHealthChecks_Failures(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		files     map[string]string
		cfg       *config.Configuration
		wantCheck string
	}{
		"no version source": {
			cfg:       &config.Configuration{},
			wantCheck: "Current version",
		},
		"missing version file": {
			cfg:       &config.Configuration{CurrentVersion: "1.2.3", VersionFiles: []string{"missing.toml"}},
			wantCheck: "Version files",
		},
		"nothing pending": {
			files: map[string]string{"CHANGELOG.md": "## [1.2.3]\n"},
			cfg: &config.Configuration{
				CurrentVersion: "1.2.3",
				Changelogs:     []config.Changelog{{Path: "CHANGELOG.md", Name: "cdf", PendingHeading: "## TBD"}},
			},
			wantCheck: "Changelogs",
		},
		"invalid alpha flags": {
			files: map[string]string{"cdf.toml": "[alpha_flags\n"},
			cfg: &config.Configuration{
				CurrentVersion: "1.2.3",
				AlphaFlags:     config.AlphaFlags{File: "cdf.toml", Table: "alpha_flags"},
			},
			wantCheck: "Alpha flags",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			report := RunHealthChecks(context.Background(), newFS(t, tt.files), tt.cfg)
			assert.False(t, report.Passed)

			var failed []string
			for _, c := range report.Checks {
				if !c.Passed {
					failed = append(failed, c.Name)
				}
			}
			assert.Equal(t, []string{tt.wantCheck}, failed)
		})
	}
}

func TestFormatReport(t *testing.T) {
	t.Parallel()

	report := &HealthReport{
		Checks: []CheckResult{
			{Name: "Current version", Passed: true, Message: "1.2.3 (from _version.py)"},
			{Name: "Changelogs", Passed: false, Message: "no changelog has pending entries"},
		},
	}

	assert.Equal(t,
		"[OK] Current version: 1.2.3 (from _version.py)\n[FAIL] Changelogs: no changelog has pending entries\n",
		FormatReport(report, "[OK]", "[FAIL]"))
	assert.Empty(t, FormatReport(&HealthReport{}, "✓", "✗"))
}
