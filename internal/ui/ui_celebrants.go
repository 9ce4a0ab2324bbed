package ui

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-celebrants/internal/config"
	"github.com/tartampluch/go-celebrants/internal/engine"
)

// sortCelebrants orders the list in place by the given column.
// Unknown ages and namedays sort after known ages when ascending. Ties keep
// their report order in both directions.
func sortCelebrants(list []engine.Celebrant, col int, asc bool) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !asc {
			a, b = b, a
		}
		var less bool
		switch col {
		case config.ColIDName:
			less = strings.ToLower(a.DisplayName()) < strings.ToLower(b.DisplayName())
		case config.ColIDKind:
			less = a.Kind < b.Kind
		case config.ColIDAge:
			switch {
			case !a.AgeKnown && b.AgeKnown:
				less = false
			case a.AgeKnown && !b.AgeKnown:
				less = true
			default:
				less = a.Age < b.Age
			}
		default: // config.ColIDDate
			less = a.Date.Before(b.Date)
		}
		return less
	})
}

// cellText renders one table cell.
func (app *CelebrantsApp) cellText(c engine.Celebrant, col int) string {
	switch col {
	case config.ColIDName:
		return c.DisplayName()
	case config.ColIDDate:
		return c.Date.Format(app.GetMsg(config.TKeyFormatDate, config.DateFormatDisplay))
	case config.ColIDKind:
		if c.Kind == engine.KindNameday {
			return app.GetMsg(config.TKeyKindNameday, config.FallbackKindNameday)
		}
		return app.GetMsg(config.TKeyKindBirthday, config.FallbackKindBday)
	case config.ColIDAge:
		switch {
		case c.Kind == engine.KindNameday:
			return ""
		case c.AgeKnown:
			return strconv.Itoa(c.Age)
		default:
			return app.GetMsg(config.TKeyUnknownAge, config.LabelUnknownAge)
		}
	}
	return ""
}

// ShowCelebrantsWindow lists the celebrants of the last successful check.
// Only one window exists at a time; a second call focuses it.
func (app *CelebrantsApp) ShowCelebrantsWindow() {
	if app.celebrantsWindow != nil {
		app.celebrantsWindow.RequestFocus()
		return
	}

	res, _ := app.LastResult()
	display := make([]engine.Celebrant, len(res.Celebrants))
	copy(display, res.Celebrants)

	app.celebrantsWindow = app.App.NewWindow(app.GetMsg(config.TKeyWinCelebrants, config.FallbackWinTitle))
	app.celebrantsWindow.Resize(fyne.NewSize(config.CelebrantsWinWidth, config.CelebrantsWinHeight))

	slog.Info(config.MsgOpenWin,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(display))

	currentSortCol := config.ColIDDate
	sortAsc := true

	performSort := func() {
		sortCelebrants(display, currentSortCol, sortAsc)
		slog.Debug(config.MsgSorted,
			config.LogKeyComponent, config.CompUI,
			config.LogKeySortCol, currentSortCol,
			config.LogKeySortAsc, sortAsc)
	}
	performSort()

	table := widget.NewTable(
		func() (int, int) {
			return len(display), config.ColCount
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			if id.Row >= len(display) {
				return
			}
			o.(*widget.Label).SetText(app.cellText(display[id.Row], id.Col))
		},
	)

	headers := [config.ColCount]string{
		config.ColIDName: app.GetMsg(config.TKeyColName, config.FallbackColName),
		config.ColIDDate: app.GetMsg(config.TKeyColDate, config.FallbackColDate),
		config.ColIDKind: app.GetMsg(config.TKeyColKind, config.FallbackColKind),
		config.ColIDAge:  app.GetMsg(config.TKeyColAge, config.FallbackColAge),
	}

	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton(config.TablePlaceholder, func() {})
	}
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)

		text := headers[id.Col]
		if id.Col == currentSortCol {
			if sortAsc {
				text += config.SortIconAsc
			} else {
				text += config.SortIconDesc
			}
		}
		btn.SetText(text)

		btn.OnTapped = func() {
			if currentSortCol == id.Col {
				sortAsc = !sortAsc
			} else {
				currentSortCol = id.Col
				sortAsc = true
			}
			performSort()
			table.Refresh()
		}
	}

	table.SetColumnWidth(config.ColIDName, config.ColWidthName)
	table.SetColumnWidth(config.ColIDDate, config.ColWidthDate)
	table.SetColumnWidth(config.ColIDKind, config.ColWidthKind)
	table.SetColumnWidth(config.ColIDAge, config.ColWidthAge)

	app.celebrantsWindow.SetContent(container.NewBorder(nil, nil, nil, nil, table))
	app.celebrantsWindow.SetOnClosed(func() {
		app.celebrantsWindow = nil
	})
	app.celebrantsWindow.Show()
}
