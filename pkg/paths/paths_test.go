package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDir(t *testing.T) {
	t.Run("override", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(EnvConfigDir, dir)

		assert.Equal(t, dir, ConfigDir())
		assert.Equal(t, filepath.Join(dir, "config.yaml"), ConfigFile())
		assert.Equal(t, filepath.Join(dir, "styles.css"), StylesFile())
	})

	t.Run("xdg default", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")
		assert.Equal(t, filepath.Join(xdg.ConfigHome, "barkeep"), ConfigDir())
	})
}

func TestStateDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvStateDir, dir)

	assert.Equal(t, dir, StateDir())
	assert.Equal(t, filepath.Join(dir, "barkeep.log"), LogFilePath())
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/.config/barkeep", filepath.Join(home, ".config", "barkeep")},
		{"/etc/barkeep", "/etc/barkeep"},
		{"~other/x", "~other/x"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}
