package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-celebrants/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"ICalProdid", config.ICalProdid},
		{"LabelNoCelebrants", config.LabelNoCelebrants},
		{"LabelMoreSuffix", config.LabelMoreSuffix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestDefaults_Sanity checks that default values make sense logically.
func TestDefaults_Sanity(t *testing.T) {
	assert.Equal(t, 255, config.NotificationLimit, "Notification limit follows the host balloon limit")
	assert.Equal(t, 2000, config.DefaultLeapYear, "Default leap year must accept 29 February")
	assert.Less(t, len([]rune(config.LabelMoreSuffix)), config.MinNotificationLimit)
	assert.LessOrEqual(t, config.MinNotificationLimit, config.NotificationLimit)
}

// TestHeaders_EndWithTerminator guards the truncation rule that detects bare headers.
func TestHeaders_EndWithTerminator(t *testing.T) {
	for _, h := range []string{
		config.LabelBirthdays, config.LabelNamedays,
		config.LabelYesterday, config.LabelToday, config.LabelTomorrow, config.LabelDayAfter,
	} {
		assert.Truef(t, len(h) > 0 && h[len(h)-1:] == config.HeaderTerminator, "header %q", h)
	}
}

func TestNewPaths_Layout(t *testing.T) {
	dir := filepath.Join("home", "jirka", "Documents", config.AppFolderName)
	p := config.NewPaths(dir)

	assert.Equal(t, dir, p.Dir)
	assert.Equal(t, filepath.Join(dir, "birthdays.txt"), p.Birthdays)
	assert.Equal(t, filepath.Join(dir, "namedays.txt"), p.Namedays)
	assert.Equal(t, filepath.Join(dir, "output.txt"), p.Output)
	assert.Equal(t, filepath.Join(dir, "log.txt"), p.Journal)
	assert.Equal(t, filepath.Join(dir, "output.ics"), p.Calendar)
}

func TestPaths_EnsureDir(t *testing.T) {
	p := config.NewPaths(filepath.Join(t.TempDir(), "nested", config.AppFolderName))

	require.NoError(t, p.EnsureDir())
	info, err := os.Stat(p.Dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent
	assert.NoError(t, p.EnsureDir())
}

func TestLoadSettings(t *testing.T) {
	t.Run("Missing file uses defaults", func(t *testing.T) {
		s, err := config.LoadSettings(filepath.Join(t.TempDir(), "settings.yaml"))
		require.NoError(t, err)
		assert.Equal(t, config.DefaultSettings(), s)
	})

	t.Run("Partial file keeps other defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.yaml")
		require.NoError(t, os.WriteFile(path, []byte("calendar_export: false\n"), 0o600))

		s, err := config.LoadSettings(path)
		require.NoError(t, err)
		assert.False(t, s.CalendarExport)
		assert.True(t, s.WatchDataFiles)
		assert.Equal(t, config.NotificationLimit, s.NotificationLimit)
	})

	t.Run("Too small limit is reset", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.yaml")
		require.NoError(t, os.WriteFile(path, []byte("notification_limit: 10\n"), 0o600))

		s, err := config.LoadSettings(path)
		require.NoError(t, err)
		assert.Equal(t, config.NotificationLimit, s.NotificationLimit)
	})

	t.Run("Oversize limit is reset", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.yaml")
		require.NoError(t, os.WriteFile(path, []byte("notification_limit: 1000\n"), 0o600))

		s, err := config.LoadSettings(path)
		require.NoError(t, err)
		assert.Equal(t, config.NotificationLimit, s.NotificationLimit)
	})

	t.Run("Limit within range is kept", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.yaml")
		require.NoError(t, os.WriteFile(path, []byte("notification_limit: 200\n"), 0o600))

		s, err := config.LoadSettings(path)
		require.NoError(t, err)
		assert.Equal(t, 200, s.NotificationLimit)
	})

	t.Run("Malformed YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.yaml")
		require.NoError(t, os.WriteFile(path, []byte("notification_limit: [oops\n"), 0o600))

		s, err := config.LoadSettings(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), config.ErrSettingsParse)
		assert.Equal(t, config.DefaultSettings(), s)
	})
}
