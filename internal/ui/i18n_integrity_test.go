package ui_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-celebrants/internal/config"
)

// TestI18nIntegrity ensures that every translation key defined in config.go
// actually exists in the locale JSON file, and that no orphan keys remain.
func TestI18nIntegrity(t *testing.T) {
	definedKeys := make(map[string]bool)

	keysToCheck := []string{
		config.TKeyBirthdays,
		config.TKeyNamedays,
		config.TKeyYesterday,
		config.TKeyToday,
		config.TKeyTomorrow,
		config.TKeyDayAfter,
		config.TKeyUnknownAge,
		config.TKeyNoCelebrants,
		config.TKeyMoreSuffix,
		config.TKeyNotifTitle,
		config.TKeyEventBirthday,
		config.TKeyEventNameday,
		config.TKeyMenuCheck,
		config.TKeyMenuOpen,
		config.TKeyMenuQuit,
		config.TKeyTrayStatus,
		config.TKeyTrayStatusZero,
		config.TKeyTrayError,
		config.TKeyWinCelebrants,
		config.TKeyColName,
		config.TKeyColDate,
		config.TKeyColKind,
		config.TKeyColAge,
		config.TKeyKindBirthday,
		config.TKeyKindNameday,
		config.TKeyFormatDate,
	}

	for _, k := range keysToCheck {
		definedKeys[k] = true
	}

	path := filepath.Join(config.LocalesDir, config.LocalePrefix+config.DefaultLanguage+config.LocaleExt)
	content, err := os.ReadFile(path)
	require.NoError(t, err, "Must load %s", path)

	var jsonMap map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &jsonMap), "JSON must be valid")

	for key := range definedKeys {
		_, exists := jsonMap[key]
		assert.Truef(t, exists, "Key '%s' defined in config.go is missing in %s", key, path)
	}

	for jsonKey := range jsonMap {
		if strings.HasPrefix(jsonKey, "_") {
			continue
		}
		assert.Truef(t, definedKeys[jsonKey], "Key '%s' exists in JSON but not in config.go", jsonKey)
	}
}

// TestI18nMatchesBuiltInLabels keeps the bundle and the built-in report strings
// identical, so the report does not change when the bundle is unavailable.
func TestI18nMatchesBuiltInLabels(t *testing.T) {
	content, err := os.ReadFile(filepath.Join(config.LocalesDir, "active.cs.json"))
	require.NoError(t, err)

	var jsonMap map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &jsonMap))

	want := map[string]string{
		config.TKeyBirthdays:     config.LabelBirthdays,
		config.TKeyNamedays:      config.LabelNamedays,
		config.TKeyYesterday:     config.LabelYesterday,
		config.TKeyToday:         config.LabelToday,
		config.TKeyTomorrow:      config.LabelTomorrow,
		config.TKeyDayAfter:      config.LabelDayAfter,
		config.TKeyUnknownAge:    config.LabelUnknownAge,
		config.TKeyNoCelebrants:  config.LabelNoCelebrants,
		config.TKeyMoreSuffix:    config.LabelMoreSuffix,
		config.TKeyNotifTitle:    config.LabelNotifTitle,
		config.TKeyEventBirthday: config.LabelEventBirthday,
		config.TKeyEventNameday:  config.LabelEventNameday,
	}
	for key, label := range want {
		assert.Equal(t, label, jsonMap[key], key)
	}
}
