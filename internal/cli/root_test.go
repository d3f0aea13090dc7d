package cli

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Structure(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	assert.Equal(t, "relbump", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotEmpty(t, cmd.Example)
	assert.True(t, cmd.SilenceErrors)
	assert.True(t, cmd.SilenceUsage)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	for _, name := range []string{"config", "log-level", "log-format", "plain"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "flag %s should exist", name)
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		group string
	}{
		"bump":      {group: GroupRelease},
		"changelog": {group: GroupRelease},
		"next":      {group: GroupRelease},
		"alpha":     {group: GroupRelease},
		"history":   {group: GroupRelease},
		"config":    {group: GroupSetup},
		"doctor":    {group: GroupSetup},
		"version":   {group: GroupSetup},
	}

	cmd := NewRootCmd()
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
			assert.Equal(t, tt.group, sub.GroupID)
		})
	}
}

func TestRootCmd_InvalidLogFlags(t *testing.T) {
	t.Parallel()

	res := execute(t, afero.NewMemMapFs(), "", "--log-level", "loud", "--log-format", "xml", "version")
	require.Error(t, res.err)
	assert.Equal(t, ExitInvalidArguments, ExitCode(res.err))
	assert.Contains(t, res.err.Error(), "invalid log level")
	assert.Contains(t, res.err.Error(), "invalid log format")
}

func TestRootCmd_UnknownFlag(t *testing.T) {
	t.Parallel()

	res := execute(t, afero.NewMemMapFs(), "", "next", "1.2.3", "--huge")
	require.Error(t, res.err)
	assert.Equal(t, ExitInvalidArguments, ExitCode(res.err))
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	t.Parallel()

	r := newRepo(t, "log_level: loud\n", nil)
	res := r.run(t, "", "changelog")
	require.Error(t, res.err)
	assert.Equal(t, ExitConfig, ExitCode(res.err))
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	res := execute(t, afero.NewMemMapFs(), "", "version", "--short")
	require.NoError(t, res.err)
	assert.Equal(t, "dev\n", res.stdout)

	res = execute(t, afero.NewMemMapFs(), "", "version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "relbump dev")
}
