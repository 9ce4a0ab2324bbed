package engine

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-celebrants/internal/config"
)

// EncodeCalendar renders the celebrants as all-day iCalendar events.
// now stamps DTSTAMP; an empty window yields a minimal valid VCALENDAR.
func EncodeCalendar(celebrants []Celebrant, labels Labels, now time.Time) ([]byte, error) {
	if len(celebrants) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	dtStamp := ical.NewProp(config.PropDTStamp)
	dtStamp.SetDateTime(now.UTC())

	for _, c := range celebrants {
		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, celebrantUID(c))
		event.Props.Set(dtStamp)

		summary, category := fmt.Sprintf(labels.EventBirthday, c.DisplayName()), config.CategoryBirthday
		if c.Kind == KindNameday {
			summary, category = fmt.Sprintf(labels.EventNameday, c.DisplayName()), config.CategoryNameday
		}
		if c.Kind == KindBirthday && c.AgeKnown {
			summary += fmt.Sprintf(config.AgeFormat, fmt.Sprint(c.Age))
		}
		event.Props.SetText(config.PropSummary, summary)
		event.Props.SetText(config.PropCategories, category)

		dtStart := ical.NewProp(config.PropDTStart)
		dtStart.SetDate(c.Date)
		event.Props.Set(dtStart)

		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

// celebrantUID is stable across checks so calendar clients update in place.
func celebrantUID(c Celebrant) string {
	kind := strings.ToLower(config.CategoryBirthday)
	if c.Kind == KindNameday {
		kind = strings.ToLower(config.CategoryNameday)
	}
	input := fmt.Sprintf(config.FormatHashInput, kind, c.DisplayName(), c.Date.Format(config.UIDDateLayout), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), c.Date.Format(config.UIDDateLayout), config.ICalDomain)
}
