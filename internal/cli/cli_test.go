package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/relbump/relbump/internal/logging"
	"github.com/relbump/relbump/internal/progress"
)

var releaseDate = time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)

// repo is a temporary repository with a relbump config.
type repo struct {
	dir        string
	configPath string
	fs         afero.Fs
}

// newRepo writes files and a config into a temporary directory. The string
// "LOCK" in config is replaced with a lock file path inside that directory.
func newRepo(t *testing.T, cfg string, files map[string]string) *repo {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}

	cfg = strings.ReplaceAll(cfg, "LOCK", filepath.Join(dir, "relbump.lock"))
	configPath := filepath.Join(dir, ".relbump", "config.yml")
	require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0o755))
	require.NoError(t, os.WriteFile(configPath, []byte(cfg), 0o644))

	return &repo{
		dir:        dir,
		configPath: configPath,
		fs:         afero.NewBasePathFs(afero.NewOsFs(), dir),
	}
}

func (r *repo) read(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(r.dir, filepath.FromSlash(name)))
	require.NoError(t, err)
	return string(data)
}

type result struct {
	stdout string
	stderr string
	err    error
}

func (r *repo) run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	return execute(t, r.fs, stdin, append([]string{"--config", r.configPath}, args...)...)
}

func execute(t *testing.T, fs afero.Fs, stdin string, args ...string) result {
	t.Helper()

	a := &app{
		fs:             fs,
		now:            func() time.Time { return releaseDate },
		caps:           progress.TerminalCapabilities{},
		skipUserConfig: true,
		logger:         logging.Discard(),
	}
	cmd := newRootCmd(a)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}
