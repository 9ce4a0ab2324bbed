//go:build linux

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-celebrants/internal/config"
)

func TestDocumentsDir(t *testing.T) {
	tests := []struct {
		name     string
		userDirs string
		want     string
	}{
		{
			name: "Localized folder",
			userDirs: `# This file is written by xdg-user-dirs-update
XDG_DESKTOP_DIR="$HOME/Plocha"
XDG_DOCUMENTS_DIR="$HOME/Dokumenty"
`,
			want: "Dokumenty",
		},
		{
			name:     "Disabled by pointing at home",
			userDirs: `XDG_DOCUMENTS_DIR="$HOME/"`,
			want:     config.DocumentsFolderName,
		},
		{
			name:     "No entry",
			userDirs: `XDG_MUSIC_DIR="$HOME/Hudba"`,
			want:     config.DocumentsFolderName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := t.TempDir()
			cfgHome := filepath.Join(home, ".config")
			require.NoError(t, os.MkdirAll(cfgHome, 0o700))
			require.NoError(t, os.WriteFile(filepath.Join(cfgHome, "user-dirs.dirs"), []byte(tt.userDirs), 0o600))

			// Registered first so it runs after the environment is restored.
			t.Cleanup(xdg.Reload)
			t.Setenv("HOME", home)
			t.Setenv("XDG_CONFIG_HOME", cfgHome)
			xdg.Reload()

			got, err := config.DocumentsDir()
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(home, tt.want), got)
		})
	}
}
