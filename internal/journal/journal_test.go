package journal_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-celebrants/internal/config"
	"github.com/tartampluch/go-celebrants/internal/events"
	"github.com/tartampluch/go-celebrants/internal/journal"
)

func TestRecord_Lines(t *testing.T) {
	var buf bytes.Buffer
	j := journal.New(&buf)

	for _, ev := range []events.Event{
		events.Started, events.Suspended, events.Resumed,
		events.SessionLocked, events.SessionUnlocked,
		events.DataChanged, events.Manual,
	} {
		j.Record(ev)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5, "Only lifecycle events are journaled")

	for i, want := range []string{
		config.JournalStarted, config.JournalSuspended, config.JournalResumed,
		config.JournalLocked, config.JournalUnlocked,
	} {
		assert.True(t, strings.HasPrefix(lines[i], "time="), "Line starts with its timestamp: %q", lines[i])
		assert.Contains(t, lines[i], want)
	}
}

func TestOpen_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.JournalFileName)

	for i := 0; i < 2; i++ {
		j, err := journal.Open(path)
		require.NoError(t, err)
		j.Record(events.Started)
		require.NoError(t, j.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), config.JournalStarted), "Earlier lines are kept")
}

func TestOpen_Error(t *testing.T) {
	_, err := journal.Open(filepath.Join(t.TempDir(), "missing", config.JournalFileName))
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrJournalOpen)
}

func TestClose_WithoutFile(t *testing.T) {
	assert.NoError(t, journal.New(&bytes.Buffer{}).Close())
}
