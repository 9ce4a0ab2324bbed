package engine

import (
	"time"

	"github.com/tartampluch/go-celebrants/internal/config"
)

// BirthdayRecord is one line of the birthdays file.
type BirthdayRecord struct {
	// BirthDate keeps the year as written. Years 0 and 1 mean "unknown".
	BirthDate time.Time
	Name      string
	Surname   string
	Nickname  string // empty when absent
}

// YearKnown reports whether BirthDate carries a real year.
func (r BirthdayRecord) YearKnown() bool {
	return r.BirthDate.Year() > config.UnknownYearSentinel
}

// AgeIn returns the age reached during year. Only meaningful when YearKnown.
func (r BirthdayRecord) AgeIn(year int) int {
	return year - r.BirthDate.Year()
}

// NamedayRecord is one line of the namedays file. Namedays have no year.
type NamedayRecord struct {
	Day      int
	Month    time.Month
	Name     string
	Surname  string
	Nickname string
}
