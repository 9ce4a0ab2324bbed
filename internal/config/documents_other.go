//go:build !windows

package config

import (
	"errors"
	"path/filepath"

	"github.com/adrg/xdg"
)

// DocumentsDir returns the XDG documents folder when configured,
// otherwise ~/Documents.
func DocumentsDir() (string, error) {
	if xdg.Home == "" {
		return "", errors.New(ErrNoHomeDir)
	}
	dir := xdg.UserDirs.Documents
	// xdg-user-dirs disables a folder by pointing it at $HOME.
	if dir == "" || filepath.Clean(dir) == filepath.Clean(xdg.Home) {
		return filepath.Join(xdg.Home, DocumentsFolderName), nil
	}
	return dir, nil
}
