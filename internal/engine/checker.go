package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/tartampluch/go-celebrants/internal/config"
)

// Checker runs one check cycle: load both files, build the report, write
// the output files and produce the notification text.
type Checker struct {
	Clock  Clock
	Paths  config.Paths
	Labels Labels

	// Limit caps the notification text; zero means config.NotificationLimit.
	Limit int

	// ExportCalendar also writes Paths.Calendar.
	ExportCalendar bool
}

// Result is the outcome of a successful check.
type Result struct {
	Today      time.Time
	Report     string // full text, as written to the output file
	Display    string // truncated text for the notification
	Celebrants []Celebrant
}

// Count returns how many celebrants fall on today.
func (r Result) Count() int {
	n := 0
	for _, c := range r.Celebrants {
		if c.Bucket == Today {
			n++
		}
	}
	return n
}

// Run executes the cycle. Any load error aborts it before the output file is
// touched, so a failed check leaves the previous report in place.
func (c *Checker) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	now := c.Clock.Now()
	today := startOfDay(now)

	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyToday, today.Format(config.FlagDateLayout),
	)
	log.InfoContext(ctx, config.MsgCheckStarted)

	birthdays, err := LoadBirthdays(c.Paths.Birthdays)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", config.ErrLoadBirthdays, err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	namedays, err := LoadNamedays(c.Paths.Namedays)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", config.ErrLoadNamedays, err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	celebrants := Collect(today, birthdays, namedays)
	report := Format(celebrants, c.Labels)

	if err := os.WriteFile(c.Paths.Output, []byte(report), config.FilePermDocument); err != nil {
		return Result{}, fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
	}
	log.Debug(config.MsgReportWritten, config.LogKeyPath, c.Paths.Output)

	if c.ExportCalendar {
		c.writeCalendar(log, celebrants, now)
	}

	display := c.truncate(log, report)

	log.Info(config.MsgCheckFinished,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyBirthdays, len(birthdays)),
			slog.Int(config.LogKeyNamedays, len(namedays)),
			slog.Int(config.LogKeyMatches, len(celebrants)),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)

	return Result{
		Today:      today,
		Report:     report,
		Display:    display,
		Celebrants: celebrants,
	}, nil
}

// writeCalendar is best effort: the text report is the primary output.
func (c *Checker) writeCalendar(log *slog.Logger, celebrants []Celebrant, now time.Time) {
	data, err := EncodeCalendar(celebrants, c.Labels, now)
	if err == nil {
		err = os.WriteFile(c.Paths.Calendar, data, config.FilePermDocument)
	}
	if err != nil {
		log.Warn(config.ErrWriteCalendar, config.LogKeyError, err)
		return
	}
	log.Debug(config.MsgCalendarWritten, config.LogKeyPath, c.Paths.Calendar)
}

func (c *Checker) truncate(log *slog.Logger, report string) string {
	limit := c.Limit
	if limit <= 0 {
		limit = config.NotificationLimit
	}

	display, err := Truncate(report, limit, c.Labels.MoreSuffix)
	var truncErr *TruncationError
	switch {
	case errors.As(err, &truncErr):
		log.Warn(config.MsgTruncFallback, config.LogKeyError, err)
	case display != report:
		log.Debug(config.MsgTruncated,
			config.LogKeyLength, len([]rune(report)),
			config.LogKeyLimit, limit)
	}
	return display
}
