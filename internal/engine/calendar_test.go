package engine_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-celebrants/internal/config"
	"github.com/tartampluch/go-celebrants/internal/engine"
)

func TestEncodeCalendar_Empty(t *testing.T) {
	data, err := engine.EncodeCalendar(nil, engine.DefaultLabels(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(data))
}

func TestEncodeCalendar_Events(t *testing.T) {
	today := day(2024, 3, 15)
	celebrants := engine.Collect(today,
		[]engine.BirthdayRecord{
			birthday(day(1990, 3, 15), "Jana", "Nováková", "Janička"),
			birthday(day(0, 3, 16), "Anna", "Pokorná", ""),
		},
		[]engine.NamedayRecord{nameday(14, time.March, "Matylda", "Kovářová", "")},
	)
	require.Len(t, celebrants, 3)

	data, err := engine.EncodeCalendar(celebrants, engine.DefaultLabels(), today)
	require.NoError(t, err)

	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 3)

	summaries := map[string]string{}
	for _, ev := range events {
		summary, err := ev.Props.Text(config.PropSummary)
		require.NoError(t, err)
		category, err := ev.Props.Text(config.PropCategories)
		require.NoError(t, err)
		summaries[summary] = category

		uid, err := ev.Props.Text(config.PropUID)
		require.NoError(t, err)
		assert.Contains(t, uid, config.ICalDomain)
	}

	assert.Equal(t, config.CategoryBirthday, summaries["Narozeniny: Jana 'Janička' Nováková - 34"])
	assert.Equal(t, config.CategoryBirthday, summaries["Narozeniny: Anna Pokorná"], "Unknown age is omitted")
	assert.Equal(t, config.CategoryNameday, summaries["Svátek: Matylda Kovářová"])
}

func TestEncodeCalendar_StableUIDs(t *testing.T) {
	today := day(2024, 3, 15)
	celebrants := engine.Collect(today,
		[]engine.BirthdayRecord{birthday(day(1990, 3, 15), "Jana", "Nováková", "")}, nil)

	first, err := engine.EncodeCalendar(celebrants, engine.DefaultLabels(), today)
	require.NoError(t, err)
	second, err := engine.EncodeCalendar(celebrants, engine.DefaultLabels(), today.Add(time.Hour))
	require.NoError(t, err)

	uid := func(data []byte) string {
		cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
		require.NoError(t, err)
		v, err := cal.Events()[0].Props.Text(config.PropUID)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, uid(first), uid(second))
}
