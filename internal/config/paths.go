package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths locates every file the application reads or writes.
// It is built once at startup and passed down explicitly.
type Paths struct {
	Dir       string
	Birthdays string
	Namedays  string
	Output    string
	Calendar  string
	Journal   string
	Settings  string
}

// NewPaths lays out the standard file names inside dir.
func NewPaths(dir string) Paths {
	return Paths{
		Dir:       dir,
		Birthdays: filepath.Join(dir, BirthdaysFileName),
		Namedays:  filepath.Join(dir, NamedaysFileName),
		Output:    filepath.Join(dir, OutputFileName),
		Calendar:  filepath.Join(dir, CalendarFileName),
		Journal:   filepath.Join(dir, JournalFileName),
		Settings:  filepath.Join(dir, SettingsFileName),
	}
}

// DefaultPaths resolves the app folder inside the user's Documents directory.
func DefaultPaths() (Paths, error) {
	docs, err := DocumentsDir()
	if err != nil {
		return Paths{}, fmt.Errorf("%s: %w", ErrDocumentsDir, err)
	}
	return NewPaths(filepath.Join(docs, AppFolderName)), nil
}

// EnsureDir creates the app folder if it does not exist yet.
func (p Paths) EnsureDir() error {
	if err := os.MkdirAll(p.Dir, DirPermDocument); err != nil {
		return fmt.Errorf("%s: %w", ErrCreateDir, err)
	}
	return nil
}
