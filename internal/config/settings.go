package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings holds the optional user overrides read from settings.yaml.
// Keys missing from the file keep their defaults.
type Settings struct {
	// NotificationLimit caps the notification text, in characters.
	NotificationLimit int `yaml:"notification_limit"`

	// CalendarExport writes output.ics next to output.txt on every check.
	CalendarExport bool `yaml:"calendar_export"`

	// WatchDataFiles re-runs the check when birthdays or namedays change.
	WatchDataFiles bool `yaml:"watch_data_files"`

	// SessionEvents subscribes to suspend/resume and lock/unlock signals.
	SessionEvents bool `yaml:"session_events"`
}

// DefaultSettings returns the behaviour used when no settings file exists.
func DefaultSettings() Settings {
	return Settings{
		NotificationLimit: NotificationLimit,
		CalendarExport:    true,
		WatchDataFiles:    true,
		SessionEvents:     true,
	}
}

// LoadSettings reads path on top of DefaultSettings. A missing file is not an error.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug(MsgSettingsMissing,
			LogKeyComponent, CompConfig,
			LogKeyPath, path)
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("%s: %w", ErrSettingsRead, err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("%s: %w", ErrSettingsParse, err)
	}

	// The host never shows more than NotificationLimit characters.
	if s.NotificationLimit < MinNotificationLimit || s.NotificationLimit > NotificationLimit {
		s.NotificationLimit = NotificationLimit
	}

	slog.Debug(MsgSettingsLoaded,
		LogKeyComponent, CompConfig,
		LogKeyPath, path,
		LogKeyLimit, s.NotificationLimit)
	return s, nil
}
