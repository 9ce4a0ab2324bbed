package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-celebrants/internal/config"
	"github.com/tartampluch/go-celebrants/internal/engine"
	"github.com/tartampluch/go-celebrants/internal/events"
	"github.com/tartampluch/go-celebrants/internal/journal"
)

// CelebrantsApp owns the tray icon and serialises check cycles.
type CelebrantsApp struct {
	App        fyne.App
	I18nBundle *i18n.Bundle
	Localizer  *i18n.Localizer
	Ctx        context.Context

	Checker *engine.Checker
	Journal *journal.Journal
	Sources []events.Source

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem *fyne.MenuItem
	TrayCheckItem  *fyne.MenuItem
	TrayOpenItem   *fyne.MenuItem
	TrayQuitItem   *fyne.MenuItem

	// Notify shows a desktop notification. Replaced in tests.
	Notify func(title, body string)
	// OpenURL hands a URL to the host's default handler. Replaced in tests.
	OpenURL func(u *url.URL) error

	triggers chan events.Event
	incoming chan events.Event

	resultMut  sync.RWMutex
	lastResult *engine.Result

	celebrantsWindow fyne.Window
}

// NewCelebrantsApp wires the tray application around a checker.
func NewCelebrantsApp(a fyne.App, ctx context.Context, checker *engine.Checker, j *journal.Journal, sources ...events.Source) *CelebrantsApp {
	a.SetIcon(theme.InfoIcon())

	app := &CelebrantsApp{
		App:      a,
		Ctx:      ctx,
		Checker:  checker,
		Journal:  j,
		Sources:  sources,
		triggers: make(chan events.Event, config.ChannelBufferSize),
		incoming: make(chan events.Event, config.EventBufferSize),
	}
	app.Notify = func(title, body string) {
		app.App.SendNotification(fyne.NewNotification(title, body))
	}
	app.OpenURL = app.App.OpenURL
	return app
}

// Run starts the event sources, the check worker and the UI loop.
// It blocks until the fyne app quits.
func (app *CelebrantsApp) Run() {
	app.SetupI18n()
	app.Checker.Labels = app.ReportLabels()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	app.App.Lifecycle().SetOnStarted(func() {
		app.Dispatch(events.Started)
	})

	go events.Run(app.Ctx, app.incoming, app.Sources...)
	go app.pumpEvents()
	go app.backgroundWorker()
	app.App.Run()
}

// setupTrayMenu constructs the system tray menu.
func (app *CelebrantsApp) setupTrayMenu() {
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, func() {
		app.ShowCelebrantsWindow()
	})

	app.TrayCheckItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuCheck, config.FallbackMenuCheck), func() {
		app.Dispatch(events.Manual)
	})

	app.TrayOpenItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuOpen, config.FallbackMenuOpen), func() {
		app.OpenReport()
	})

	// IsQuit replaces the untranslated Quit item fyne would append.
	app.TrayQuitItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuQuit, config.FallbackMenuQuit), func() {
		app.App.Quit()
	})
	app.TrayQuitItem.IsQuit = true

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayCheckItem,
		app.TrayOpenItem,
		fyne.NewMenuItemSeparator(),
		app.TrayQuitItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// Dispatch journals lifecycle events and queues a check for trigger events.
// A trigger arriving while one is already queued is coalesced into it.
func (app *CelebrantsApp) Dispatch(ev events.Event) {
	log := slog.With(config.LogKeyComponent, config.CompUI, config.LogKeyEvent, ev.String())
	log.Info(config.MsgEvent)

	if ev.Journaled() && app.Journal != nil {
		app.Journal.Record(ev)
	}
	if !ev.TriggersCheck() {
		return
	}

	select {
	case app.triggers <- ev:
		log.Debug(config.MsgCheckReq)
	default:
		log.Debug(config.MsgCheckQueued)
	}
}

// pumpEvents forwards events from the sources to Dispatch.
func (app *CelebrantsApp) pumpEvents() {
	for {
		select {
		case <-app.Ctx.Done():
			return
		case ev := <-app.incoming:
			app.Dispatch(ev)
		}
	}
}

// backgroundWorker runs queued checks one at a time.
func (app *CelebrantsApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)
	log.Info(config.MsgWorkerStart)

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgWorkerStop)
			return
		case ev := <-app.triggers:
			app.performCheck(ev)
		}
	}
}

// performCheck runs one cycle and notifies. A failed cycle only updates the
// tray status; the previous report stays on disk.
func (app *CelebrantsApp) performCheck(trigger events.Event) {
	res, err := app.Checker.Run(app.Ctx)
	if err != nil {
		slog.Error(config.ErrCheckFailed,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyTrigger, trigger.String(),
			config.LogKeyError, err)
		app.updateTrayStatus(-1)
		return
	}

	app.resultMut.Lock()
	app.lastResult = &res
	app.resultMut.Unlock()

	app.updateTrayStatus(res.Count())
	app.Notify(app.GetMsg(config.TKeyNotifTitle, config.LabelNotifTitle), res.Display)
}

// LastResult returns the outcome of the latest successful check, if any.
func (app *CelebrantsApp) LastResult() (engine.Result, bool) {
	app.resultMut.RLock()
	defer app.resultMut.RUnlock()
	if app.lastResult == nil {
		return engine.Result{}, false
	}
	return *app.lastResult, true
}

// OpenReport opens the full report with the host's default handler.
func (app *CelebrantsApp) OpenReport() {
	path := app.Checker.Paths.Output
	slog.Info(config.MsgOpenReport,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyPath, path)

	u, err := url.Parse(storage.NewFileURI(path).String())
	if err == nil {
		err = app.OpenURL(u)
	}
	if err != nil {
		slog.Error(config.ErrOpenReport,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
	}
}

// updateTrayStatus shows how many people celebrate today; a negative count
// marks a failed check.
func (app *CelebrantsApp) updateTrayStatus(count int) {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}

	label := app.statusLabel(count)
	fyne.Do(func() {
		app.TrayStatusItem.Label = label
		app.Menu.Refresh()
	})
}

func (app *CelebrantsApp) statusLabel(count int) string {
	switch {
	case count < 0:
		return app.GetMsg(config.TKeyTrayError, config.FallbackTrayError)
	case count == 0:
		return app.GetMsg(config.TKeyTrayStatusZero, fmt.Sprintf(config.FallbackTrayDefault, 0))
	}

	if app.Localizer != nil {
		msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
			MessageID:    config.TKeyTrayStatus,
			TemplateData: map[string]interface{}{config.TemplateCount: count},
			PluralCount:  count,
		})
		if err == nil && msg != "" {
			return msg
		}
	}
	return fmt.Sprintf(config.FallbackTrayDefault, count)
}
