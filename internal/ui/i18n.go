package ui

import (
	"embed"
	"encoding/json"
	"log/slog"
	"path"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-celebrants/internal/config"
	"github.com/tartampluch/go-celebrants/internal/engine"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// NewBundle loads every embedded locale file. Czech is the only shipped
// language and the bundle default.
func NewBundle() *i18n.Bundle {
	bundle := i18n.NewBundle(language.Czech)
	bundle.RegisterUnmarshalFunc(config.LocaleFormat, json.Unmarshal)

	entries, err := localeFS.ReadDir(config.LocalesDir)
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return bundle
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, config.LocalePrefix) || !strings.HasSuffix(name, config.LocaleExt) {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, config.LocalePrefix), config.LocaleExt)
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, path.Join(config.LocalesDir, name)); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
		)
	}
	return bundle
}

// SetupI18n builds the bundle and the Czech localizer.
func (app *CelebrantsApp) SetupI18n() {
	app.I18nBundle = NewBundle()
	app.Localizer = i18n.NewLocalizer(app.I18nBundle, config.DefaultLanguage)
}

// GetMsg translates key, returning fallback when the key is missing.
func (app *CelebrantsApp) GetMsg(key, fallback string) string {
	if app.Localizer == nil {
		return fallback
	}
	msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil || msg == "" {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return fallback
	}
	return msg
}

// ReportLabels resolves the report strings from the bundle. The built-in
// constants fill any gap so the report layout never depends on the bundle.
func (app *CelebrantsApp) ReportLabels() engine.Labels {
	def := engine.DefaultLabels()
	return engine.Labels{
		Birthdays: app.GetMsg(config.TKeyBirthdays, def.Birthdays),
		Namedays:  app.GetMsg(config.TKeyNamedays, def.Namedays),
		Buckets: [...]string{
			engine.Yesterday:        app.GetMsg(config.TKeyYesterday, def.Buckets[engine.Yesterday]),
			engine.Today:            app.GetMsg(config.TKeyToday, def.Buckets[engine.Today]),
			engine.Tomorrow:         app.GetMsg(config.TKeyTomorrow, def.Buckets[engine.Tomorrow]),
			engine.DayAfterTomorrow: app.GetMsg(config.TKeyDayAfter, def.Buckets[engine.DayAfterTomorrow]),
		},
		UnknownAge:    app.GetMsg(config.TKeyUnknownAge, def.UnknownAge),
		NoCelebrants:  app.GetMsg(config.TKeyNoCelebrants, def.NoCelebrants),
		MoreSuffix:    app.GetMsg(config.TKeyMoreSuffix, def.MoreSuffix),
		EventBirthday: app.GetMsg(config.TKeyEventBirthday, def.EventBirthday),
		EventNameday:  app.GetMsg(config.TKeyEventNameday, def.EventNameday),
	}
}
