package config_test

import (
	"elekit/internal/config"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err, "a missing config file should not fail")

	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, ".", cfg.Scaffold.Root)
	require.Empty(t, cfg.Scaffold.LayoutPath)
	require.False(t, cfg.Journal.Disabled)
	require.Equal(t, "elekit.db", cfg.Journal.Path)
}

func TestLoadStatError(t *testing.T) {
	// a path whose parent is a regular file fails Stat with ENOTDIR, which is
	// not a missing file and must not fall back to env-only defaults
	parent := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0o600))

	_, err := config.Load(filepath.Join(parent, "config.yml"))
	require.Error(t, err)
	require.ErrorContains(t, err, "could not stat config file")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
environment: production
scaffold:
  root: /srv/projects/ele
  dirMode: "0750"
journal:
  disabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, "production", cfg.Environment)
	require.Equal(t, "/srv/projects/ele", cfg.Scaffold.Root)
	require.True(t, cfg.Journal.Disabled)

	mode, err := cfg.DirMode()
	require.NoError(t, err)
	require.Equal(t, fs.FileMode(0o750), mode)
}

func TestModeParsing(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  fs.FileMode
		ok   bool
	}{
		{name: "default dir mode", in: "0755", out: 0o755, ok: true},
		{name: "default file mode", in: "0644", out: 0o644, ok: true},
		{name: "no leading zero", in: "755", out: 0o755, ok: true},
		{name: "not octal", in: "0999", ok: false},
		{name: "garbage", in: "rwxr-xr-x", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var cfg config.Config
			cfg.Scaffold.FileMode = tc.in

			mode, err := cfg.FileMode()
			if !tc.ok {
				require.Error(t, err)

				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.out, mode)
		})
	}
}
