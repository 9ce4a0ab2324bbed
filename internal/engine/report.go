package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/go-celebrants/internal/config"
)

// Bucket is a day relative to today.
type Bucket int

const (
	Yesterday Bucket = iota
	Today
	Tomorrow
	DayAfterTomorrow

	bucketCount
)

// Offset returns the bucket's distance from today in days.
func (b Bucket) Offset() int {
	return int(b) - int(Today)
}

// Kind tells birthdays and namedays apart.
type Kind int

const (
	KindBirthday Kind = iota
	KindNameday
)

// Labels holds every fixed string of the report.
type Labels struct {
	Birthdays    string
	Namedays     string
	Buckets      [bucketCount]string
	UnknownAge   string
	NoCelebrants string
	MoreSuffix   string

	// EventBirthday and EventNameday are printf formats taking the display name.
	EventBirthday string
	EventNameday  string
}

// DefaultLabels returns the built-in Czech strings.
func DefaultLabels() Labels {
	return Labels{
		Birthdays: config.LabelBirthdays,
		Namedays:  config.LabelNamedays,
		Buckets: [bucketCount]string{
			Yesterday:        config.LabelYesterday,
			Today:            config.LabelToday,
			Tomorrow:         config.LabelTomorrow,
			DayAfterTomorrow: config.LabelDayAfter,
		},
		UnknownAge:    config.LabelUnknownAge,
		NoCelebrants:  config.LabelNoCelebrants,
		MoreSuffix:    config.LabelMoreSuffix,
		EventBirthday: config.LabelEventBirthday,
		EventNameday:  config.LabelEventNameday,
	}
}

// Celebrant is a record that fell into one bucket.
type Celebrant struct {
	Kind   Kind
	Bucket Bucket
	// Date is the calendar day of the anniversary inside the window.
	Date     time.Time
	Name     string
	Surname  string
	Nickname string
	Age      int
	AgeKnown bool
}

// DisplayName renders "Name 'Nickname' Surname".
func (c Celebrant) DisplayName() string {
	var sb strings.Builder
	sb.WriteString(c.Name)
	if c.Nickname != "" {
		fmt.Fprintf(&sb, config.NicknameFormat, c.Nickname)
	}
	sb.WriteString(" ")
	sb.WriteString(c.Surname)
	return sb.String()
}

// Line renders the indented report line; birthdays carry the age.
func (c Celebrant) Line(unknownAge string) string {
	line := config.CelebrantIndent + c.DisplayName()
	if c.Kind != KindBirthday {
		return line
	}
	age := unknownAge
	if c.AgeKnown {
		age = strconv.Itoa(c.Age)
	}
	return line + fmt.Sprintf(config.AgeFormat, age)
}

// GenerateReport builds the report text for today. It is a pure function of
// its inputs: the same records and day always give the same bytes.
func GenerateReport(today time.Time, birthdays []BirthdayRecord, namedays []NamedayRecord, labels Labels) string {
	return Format(Collect(today, birthdays, namedays), labels)
}

// Collect places every record into the buckets it matches, keeping file order.
// Birthdays come first, then namedays.
func Collect(today time.Time, birthdays []BirthdayRecord, namedays []NamedayRecord) []Celebrant {
	today = startOfDay(today)
	var out []Celebrant

	for _, r := range birthdays {
		for _, b := range matchBuckets(today, r.BirthDate.Month(), r.BirthDate.Day()) {
			out = append(out, Celebrant{
				Kind:     KindBirthday,
				Bucket:   b,
				Date:     today.AddDate(0, 0, b.Offset()),
				Name:     r.Name,
				Surname:  r.Surname,
				Nickname: r.Nickname,
				Age:      r.AgeIn(today.Year()),
				AgeKnown: r.YearKnown(),
			})
		}
	}

	for _, r := range namedays {
		for _, b := range matchBuckets(today, r.Month, r.Day) {
			out = append(out, Celebrant{
				Kind:     KindNameday,
				Bucket:   b,
				Date:     today.AddDate(0, 0, b.Offset()),
				Name:     r.Name,
				Surname:  r.Surname,
				Nickname: r.Nickname,
			})
		}
	}

	return out
}

// matchBuckets checks yesterday on its own; today, tomorrow and the day after
// are exclusive of each other.
func matchBuckets(today time.Time, month time.Month, day int) []Bucket {
	var out []Bucket
	if fallsOn(today.AddDate(0, 0, Yesterday.Offset()), month, day) {
		out = append(out, Yesterday)
	}
	switch {
	case fallsOn(today, month, day):
		out = append(out, Today)
	case fallsOn(today.AddDate(0, 0, Tomorrow.Offset()), month, day):
		out = append(out, Tomorrow)
	case fallsOn(today.AddDate(0, 0, DayAfterTomorrow.Offset()), month, day):
		out = append(out, DayAfterTomorrow)
	}
	return out
}

// fallsOn places the anniversary in target's year and compares calendar days.
// time.Date moves 29 February to 1 March in non-leap years.
func fallsOn(target time.Time, month time.Month, day int) bool {
	ty, tm, td := target.Date()
	ay, am, ad := time.Date(ty, month, day, 0, 0, 0, 0, target.Location()).Date()
	return ay == ty && am == tm && ad == td
}

// Format assembles the sections. An empty window yields labels.NoCelebrants.
func Format(celebrants []Celebrant, labels Labels) string {
	birthdays := formatSection(celebrants, KindBirthday, labels)
	namedays := formatSection(celebrants, KindNameday, labels)

	if birthdays == "" && namedays == "" {
		return labels.NoCelebrants
	}

	var sb strings.Builder
	if birthdays != "" {
		sb.WriteString(labels.Birthdays + config.LineBreak)
		sb.WriteString(birthdays)
		sb.WriteString(config.LineBreak)
	}
	if namedays != "" {
		sb.WriteString(labels.Namedays + config.LineBreak)
		sb.WriteString(namedays)
	}
	return sb.String()
}

func formatSection(celebrants []Celebrant, kind Kind, labels Labels) string {
	var lines [bucketCount][]string
	for _, c := range celebrants {
		if c.Kind == kind {
			lines[c.Bucket] = append(lines[c.Bucket], c.Line(labels.UnknownAge))
		}
	}

	var sb strings.Builder
	for b, bucketLines := range lines {
		if len(bucketLines) == 0 {
			continue
		}
		sb.WriteString(config.BucketIndent + labels.Buckets[b] + config.LineBreak)
		for _, l := range bucketLines {
			sb.WriteString(l + config.LineBreak)
		}
	}
	return sb.String()
}
