package engine_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-celebrants/internal/config"
	"github.com/tartampluch/go-celebrants/internal/engine"
)

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// newChecker prepares a data folder holding both input files.
func newChecker(t *testing.T, birthdays, namedays string) *engine.Checker {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, config.BirthdaysFileName, birthdays)
	writeFile(t, dir, config.NamedaysFileName, namedays)

	return &engine.Checker{
		Clock:          MockClock{CurrentTime: time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)},
		Paths:          config.NewPaths(dir),
		Labels:         engine.DefaultLabels(),
		ExportCalendar: true,
	}
}

// -----------------------------------------------------------------------------
// Test Cases
// -----------------------------------------------------------------------------

func TestChecker_Run_WritesOutput(t *testing.T) {
	c := newChecker(t, "1990-03-15;Jana;Nováková;Janička\n", "16;03;Herbert;Svoboda;\n")

	res, err := c.Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(c.Paths.Output)
	require.NoError(t, err)
	assert.Equal(t, res.Report, string(data))
	assert.Equal(t, res.Report, res.Display, "Short report is shown unchanged")
	assert.Contains(t, res.Report, "Jana 'Janička' Nováková - 34")
	assert.Equal(t, 1, res.Count())
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), res.Today)

	_, err = os.Stat(c.Paths.Calendar)
	assert.NoError(t, err, "Calendar export is enabled")
}

func TestChecker_Run_Idempotent(t *testing.T) {
	c := newChecker(t, "1990-03-15;Jana;Nováková;\n", "14;03;Matylda;Kovářová;\n")

	_, err := c.Run(context.Background())
	require.NoError(t, err)
	first, err := os.ReadFile(c.Paths.Output)
	require.NoError(t, err)

	_, err = c.Run(context.Background())
	require.NoError(t, err)
	second, err := os.ReadFile(c.Paths.Output)
	require.NoError(t, err)

	assert.Equal(t, first, second, "Output is overwritten, not appended")
}

func TestChecker_Run_LoadFailureKeepsPreviousOutput(t *testing.T) {
	c := newChecker(t, "1990-03-15;Jana;Nováková;\n", "")

	_, err := c.Run(context.Background())
	require.NoError(t, err)
	before, err := os.ReadFile(c.Paths.Output)
	require.NoError(t, err)

	writeFile(t, c.Paths.Dir, config.NamedaysFileName, "16;03;Herbert\n")

	_, err = c.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrLoadNamedays)

	var parseErr *engine.ParseError
	assert.True(t, errors.As(err, &parseErr))

	after, err := os.ReadFile(c.Paths.Output)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestChecker_Run_MissingBirthdays(t *testing.T) {
	c := newChecker(t, "", "")
	require.NoError(t, os.Remove(c.Paths.Birthdays))

	_, err := c.Run(context.Background())

	var accessErr *engine.FileAccessError
	require.True(t, errors.As(err, &accessErr))
	assert.Equal(t, c.Paths.Birthdays, accessErr.Path)
	assert.Contains(t, err.Error(), config.ErrLoadBirthdays)

	_, statErr := os.Stat(c.Paths.Output)
	assert.True(t, os.IsNotExist(statErr), "No output on failure")
}

func TestChecker_Run_NoCelebrants(t *testing.T) {
	c := newChecker(t, "1990-08-01;Jana;Nováková;\n", "")
	c.ExportCalendar = false

	res, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, config.LabelNoCelebrants, res.Report)
	assert.Zero(t, res.Count())

	_, statErr := os.Stat(c.Paths.Calendar)
	assert.True(t, os.IsNotExist(statErr), "Calendar export is disabled")
}

func TestChecker_Run_TruncatesDisplay(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 30; i++ {
		sb.WriteString("15.3.1980;Oslavenec;Dlouhopříjmenný;Přezdívka\n")
	}
	c := newChecker(t, sb.String(), "")
	c.Limit = 200

	res, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Greater(t, utf8.RuneCountInString(res.Report), 200)
	assert.LessOrEqual(t, utf8.RuneCountInString(res.Display), 200)
	assert.True(t, strings.HasSuffix(res.Display, config.LabelMoreSuffix))
	assert.Equal(t, 30, res.Count())

	data, err := os.ReadFile(c.Paths.Output)
	require.NoError(t, err)
	assert.Equal(t, res.Report, string(data), "The file always holds the full report")
}

func TestChecker_Run_Cancelled(t *testing.T) {
	c := newChecker(t, "1990-03-15;Jana;Nováková;\n", "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResult_Count(t *testing.T) {
	res := engine.Result{Celebrants: []engine.Celebrant{
		{Bucket: engine.Yesterday},
		{Bucket: engine.Today, Kind: engine.KindBirthday},
		{Bucket: engine.Today, Kind: engine.KindNameday},
		{Bucket: engine.Tomorrow},
	}}
	assert.Equal(t, 2, res.Count())
}
