//go:build windows

package config

import "golang.org/x/sys/windows"

// DocumentsDir returns the Documents known folder, which follows OneDrive
// or group-policy redirection.
func DocumentsDir() (string, error) {
	return windows.KnownFolderPath(windows.FOLDERID_Documents, windows.KF_FLAG_DEFAULT)
}
