package propagate

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relbump/relbump/internal/release"
)

var releaseDate = time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return releaseDate }

func writeFiles(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func changelogs() []Changelog {
	return []Changelog{
		{Path: "CHANGELOG.md", Name: "cdf CLI", PendingHeading: "## TBD"},
		{Path: "templates/CHANGELOG.md", Name: "templates", PendingHeading: "## TBD"},
	}
}

func TestPropagate(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"pyproject.toml":         "[project]\nversion = \"1.2.3\"\ndeps = [\"other==1.2.3\"]\n",
		"_version.py":            "__version__ = \"1.2.3\"\n",
		"action.yml":             "image: cognite/toolkit:1.2.3\n",
		"CHANGELOG.md":           "# Changelog\n\n## TBD\n\n- Added X\n\n## [1.2.3] - 2026-01-01\n\n- Old\n",
		"templates/CHANGELOG.md": "# Templates\n\n## [1.2.3] - 2026-01-01\n\n- Old\n",
	})

	p := New(fs, Options{ImageName: "cognite/toolkit", Now: fixedNow}, nil)
	report, err := p.Propagate(
		release.MustParse("1.2.3"), release.MustParse("1.3.0"),
		[]string{"pyproject.toml", "_version.py"},
		[]string{"action.yml"},
		changelogs(),
	)
	require.NoError(t, err)

	assert.Equal(t, "## [1.3.0] - 2026-10-15", report.Heading)
	assert.Empty(t, report.Unchanged())
	assert.Equal(t, 2, report.Count(KindVersion))
	assert.Equal(t, 1, report.Count(KindImage))
	assert.Equal(t, 2, report.Count(KindChangelog))

	assert.Equal(t, "[project]\nversion = \"1.3.0\"\ndeps = [\"other==1.2.3\"]\n", readFile(t, fs, "pyproject.toml"),
		"only the first occurrence is replaced")
	assert.Equal(t, "__version__ = \"1.3.0\"\n", readFile(t, fs, "_version.py"))
	assert.Equal(t, "image: cognite/toolkit:1.3.0\n", readFile(t, fs, "action.yml"))
	assert.Equal(t,
		"# Changelog\n\n## [1.3.0] - 2026-10-15\n\n- Added X\n\n## [1.2.3] - 2026-01-01\n\n- Old\n",
		readFile(t, fs, "CHANGELOG.md"))
	assert.Equal(t,
		"# Templates\n\n## [1.3.0] - 2026-10-15\n\nNo changes to templates.\n\n## [1.2.3] - 2026-01-01\n\n- Old\n",
		readFile(t, fs, "templates/CHANGELOG.md"))
}

func TestPropagate_RoundTrip(t *testing.T) {
	t.Parallel()

	const original = "version = \"1.2.3\"\n"

	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{"version.toml": original})

	p := New(fs, Options{Now: fixedNow}, nil)
	_, err := p.Propagate(release.MustParse("1.2.3"), release.MustParse("1.3.0"), []string{"version.toml"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "version = \"1.3.0\"\n", readFile(t, fs, "version.toml"))

	_, err = p.Propagate(release.MustParse("1.3.0"), release.MustParse("1.2.3"), []string{"version.toml"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, original, readFile(t, fs, "version.toml"))
}

func TestPropagate_NoMatchIsReported(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"a.txt": "1.2.3\n",
		"b.txt": "nothing here\n",
	})

	p := New(fs, Options{Now: fixedNow}, nil)
	report, err := p.Propagate(release.MustParse("1.2.3"), release.MustParse("1.2.4"), []string{"a.txt", "b.txt"}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"b.txt"}, report.Unchanged())
	assert.Equal(t, []string{"a.txt"}, report.Changed())
	assert.Equal(t, ActionNoMatch, report.Files[1].Action)
	assert.Equal(t, "nothing here\n", readFile(t, fs, "b.txt"))
}

func TestPropagate_NothingToRelease(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"version.txt":            "1.2.3\n",
		"CHANGELOG.md":           "# Changelog\n\n## [1.2.3] - 2026-01-01\n",
		"templates/CHANGELOG.md": "# Templates\n\n## [1.2.3] - 2026-01-01\n",
	}

	t.Run("fails before writing", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		writeFiles(t, fs, files)

		p := New(fs, Options{Now: fixedNow}, nil)
		_, err := p.Propagate(release.MustParse("1.2.3"), release.MustParse("1.2.4"), []string{"version.txt"}, nil, changelogs())
		require.ErrorIs(t, err, ErrNothingToRelease)

		for path, content := range files {
			assert.Equal(t, content, readFile(t, fs, path), path)
		}
	})

	t.Run("allowed", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		writeFiles(t, fs, files)

		p := New(fs, Options{Now: fixedNow, AllowEmptyRelease: true}, nil)
		_, err := p.Propagate(release.MustParse("1.2.3"), release.MustParse("1.2.4"), []string{"version.txt"}, nil, changelogs())
		require.NoError(t, err)

		assert.Equal(t, "1.2.4\n", readFile(t, fs, "version.txt"))
		assert.Equal(t,
			"# Changelog\n\n## [1.2.4] - 2026-10-15\n\nNo changes to cdf CLI.\n\n## [1.2.3] - 2026-01-01\n",
			readFile(t, fs, "CHANGELOG.md"))
	})
}

func TestPropagate_ReadFailureWritesNothing(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"version.txt":  "1.2.3\n",
		"CHANGELOG.md": "## TBD\n",
	})

	p := New(fs, Options{Now: fixedNow}, nil)
	_, err := p.Propagate(
		release.MustParse("1.2.3"), release.MustParse("1.2.4"),
		[]string{"version.txt", "missing.txt"}, nil,
		[]Changelog{{Path: "CHANGELOG.md", Name: "cdf", PendingHeading: "## TBD"}},
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)

	assert.Equal(t, "1.2.3\n", readFile(t, fs, "version.txt"))
	assert.Equal(t, "## TBD\n", readFile(t, fs, "CHANGELOG.md"))
}

func TestPropagate_WriteFailuresAreAggregated(t *testing.T) {
	t.Parallel()

	base := afero.NewMemMapFs()
	writeFiles(t, base, map[string]string{
		"a.txt": "1.2.3\n",
		"b.txt": "1.2.3\n",
	})

	p := New(afero.NewReadOnlyFs(base), Options{Now: fixedNow}, nil)
	_, err := p.Propagate(release.MustParse("1.2.3"), release.MustParse("1.2.4"), []string{"a.txt", "b.txt"}, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing a.txt")
	assert.Contains(t, err.Error(), "writing b.txt")
}

func TestPropagate_DryRun(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"version.txt":  "name\n1.2.3\nend\n",
		"CHANGELOG.md": "# Changelog\n\n## TBD\n\n- Added\n",
	})

	p := New(fs, Options{Now: fixedNow, DryRun: true}, nil)
	report, err := p.Propagate(
		release.MustParse("1.2.3"), release.MustParse("2.0.0a1"),
		[]string{"version.txt"}, nil,
		[]Changelog{{Path: "CHANGELOG.md", Name: "cdf", PendingHeading: "## TBD"}},
	)
	require.NoError(t, err)
	assert.True(t, report.DryRun)

	assert.Equal(t, "name\n1.2.3\nend\n", readFile(t, fs, "version.txt"))
	assert.Equal(t, "# Changelog\n\n## TBD\n\n- Added\n", readFile(t, fs, "CHANGELOG.md"))

	require.Len(t, report.Files, 2)
	assert.Contains(t, report.Files[0].Diff, "-## TBD\n+## [2.0.0a1] - 2026-10-15\n")
	assert.Contains(t, report.Files[1].Diff, "-1.2.3\n+2.0.0a1\n")
	assert.NotContains(t, report.Files[1].Diff, "-name")
}

func TestPropagate_SamePathTwice(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"Dockerfile": "FROM cognite/toolkit:1.2.3\nLABEL version=1.2.3\n",
	})

	p := New(fs, Options{ImageName: "cognite/toolkit", Now: fixedNow}, nil)
	_, err := p.Propagate(release.MustParse("1.2.3"), release.MustParse("1.2.4"),
		[]string{"Dockerfile"}, []string{"Dockerfile"}, nil)
	require.NoError(t, err)

	// The version file pass takes the first occurrence, which is the image tag.
	assert.Equal(t, "FROM cognite/toolkit:1.2.4\nLABEL version=1.2.3\n", readFile(t, fs, "Dockerfile"))
}

func TestPropagate_ImageNameRequired(t *testing.T) {
	t.Parallel()

	p := New(afero.NewMemMapFs(), Options{}, nil)
	_, err := p.Propagate(release.MustParse("1.2.3"), release.MustParse("1.2.4"), nil, []string{"Dockerfile"}, nil)
	require.Error(t, err)
}

func TestInsertRelease(t *testing.T) {
	t.Parallel()

	entry := []string{"## [1.0.0] - 2026-10-15", "", "No changes to x.", ""}

	tests := map[string]struct {
		content string
		want    string
	}{
		"before first level-2 heading": {
			content: "# Title\n\nIntro\n\n## [0.9.0]\n",
			want:    "# Title\n\nIntro\n\n## [1.0.0] - 2026-10-15\n\nNo changes to x.\n\n## [0.9.0]\n",
		},
		"before deeper heading too": {
			content: "### Notes\n",
			want:    "## [1.0.0] - 2026-10-15\n\nNo changes to x.\n\n### Notes\n",
		},
		"appended when no heading": {
			content: "# Title\n",
			want:    "# Title\n## [1.0.0] - 2026-10-15\n\nNo changes to x.\n\n",
		},
		"missing trailing newline": {
			content: "## [0.9.0]",
			want:    "## [1.0.0] - 2026-10-15\n\nNo changes to x.\n\n## [0.9.0]\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, insertRelease(tt.content, entry))
		})
	}
}
