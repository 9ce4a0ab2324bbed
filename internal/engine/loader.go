package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/tartampluch/go-celebrants/internal/config"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// birthdayRow mirrors one line of the birthdays file: date;name;surname;nickname
type birthdayRow struct {
	Date     string `csv:"date"`
	Name     string `csv:"name"`
	Surname  string `csv:"surname"`
	Nickname string `csv:"nickname"`
}

// namedayRow mirrors one line of the namedays file: day;month;name;surname;nickname
type namedayRow struct {
	Day      string `csv:"day"`
	Month    string `csv:"month"`
	Name     string `csv:"name"`
	Surname  string `csv:"surname"`
	Nickname string `csv:"nickname"`
}

// LoadBirthdays parses the birthdays file. Paths ending in .vcf or .vcard are
// read as vCard address books instead.
//
// Loading stops at the first malformed line; no partial result is returned.
func LoadBirthdays(path string) ([]BirthdayRecord, error) {
	if isVCardPath(path) {
		return LoadVCardBirthdays(path)
	}

	raw, lines, err := readRecords(path, config.BirthdayFieldCount)
	if err != nil {
		return nil, err
	}

	rows, err := decodeRows[birthdayRow](path, raw)
	if err != nil {
		return nil, err
	}

	records := make([]BirthdayRecord, 0, len(rows))
	for i, row := range rows {
		rec, perr := row.toRecord()
		if perr != nil {
			perr.Path, perr.Line = path, lines[i]
			return nil, perr
		}
		records = append(records, rec)
	}

	logLoaded(path, config.LogKeyBirthdays, len(records))
	return records, nil
}

// LoadNamedays parses the namedays file with the same abort-on-first-error policy.
func LoadNamedays(path string) ([]NamedayRecord, error) {
	raw, lines, err := readRecords(path, config.NamedayFieldCount)
	if err != nil {
		return nil, err
	}

	rows, err := decodeRows[namedayRow](path, raw)
	if err != nil {
		return nil, err
	}

	records := make([]NamedayRecord, 0, len(rows))
	for i, row := range rows {
		rec, perr := row.toRecord()
		if perr != nil {
			perr.Path, perr.Line = path, lines[i]
			return nil, perr
		}
		records = append(records, rec)
	}

	logLoaded(path, config.LogKeyNamedays, len(records))
	return records, nil
}

func logLoaded(path, kind string, count int) {
	slog.Debug(config.MsgRecordsLoaded,
		config.LogKeyComponent, config.CompLoader,
		config.LogKeyKind, kind,
		config.LogKeyFile, filepath.Base(path),
		config.LogKeyCount, count)
}

// readRecords splits every non-blank line of path on ';' and checks the field
// count. It returns the records with their 1-based line numbers.
func readRecords(path string, fields int) ([][]string, []int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &FileAccessError{Path: path, Err: err}
	}
	// Read-only handle; a Close error is not actionable.
	defer func() { _ = f.Close() }()

	// Files saved by Notepad start with a UTF-8 byte order mark.
	decoded := transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	var rows [][]string
	var lines []int
	sc := bufio.NewScanner(decoded)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		rec := strings.Split(text, string(config.FieldSeparator))
		switch {
		case len(rec) < fields:
			return nil, nil, recordCountError(path, line, rec, ErrTooFewFields)
		case len(rec) > fields:
			return nil, nil, recordCountError(path, line, rec, ErrTooManyFields)
		}

		rows = append(rows, rec)
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, nil, &ParseError{
				Path:  path,
				Line:  line + 1,
				Field: config.FieldRecord,
				Err:   fmt.Errorf("%s: %w", config.ErrRecordRead, err),
			}
		}
		return nil, nil, &FileAccessError{Path: path, Err: err}
	}
	return rows, lines, nil
}

func recordCountError(path string, line int, rec []string, cause error) *ParseError {
	return &ParseError{
		Path:  path,
		Line:  line,
		Field: config.FieldRecord,
		Value: strings.Join(rec, string(config.FieldSeparator)),
		Err:   cause,
	}
}

// decodeRows maps validated records onto row structs by column position.
func decodeRows[T any](path string, raw [][]string) ([]T, error) {
	rows := make([]T, 0, len(raw))
	if len(raw) == 0 {
		return rows, nil
	}
	if err := gocsv.UnmarshalCSVWithoutHeaders(&rowSource{rows: raw}, &rows); err != nil {
		return nil, fmt.Errorf("%s %s: %w", config.ErrRowDecode, path, err)
	}
	return rows, nil
}

// rowSource replays already validated records to gocsv.
type rowSource struct {
	rows [][]string
	next int
}

func (s *rowSource) Read() ([]string, error) {
	if s.next >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.next]
	s.next++
	return row, nil
}

func (s *rowSource) ReadAll() ([][]string, error) {
	rest := s.rows[s.next:]
	s.next = len(s.rows)
	return rest, nil
}

func (row birthdayRow) toRecord() (BirthdayRecord, *ParseError) {
	date, err := parseBirthDate(row.Date)
	if err != nil {
		return BirthdayRecord{}, &ParseError{Field: config.FieldDate, Value: row.Date, Err: err}
	}

	name, surname, perr := requiredNames(row.Name, row.Surname)
	if perr != nil {
		return BirthdayRecord{}, perr
	}

	return BirthdayRecord{
		BirthDate: date,
		Name:      name,
		Surname:   surname,
		Nickname:  strings.TrimSpace(row.Nickname),
	}, nil
}

func (row namedayRow) toRecord() (NamedayRecord, *ParseError) {
	day, err := strconv.Atoi(strings.TrimSpace(row.Day))
	if err != nil {
		return NamedayRecord{}, &ParseError{Field: config.FieldDay, Value: row.Day, Err: ErrNotNumber}
	}
	month, err := strconv.Atoi(strings.TrimSpace(row.Month))
	if err != nil {
		return NamedayRecord{}, &ParseError{Field: config.FieldMonth, Value: row.Month, Err: ErrNotNumber}
	}
	if !validDayMonth(day, time.Month(month)) {
		return NamedayRecord{}, &ParseError{
			Field: config.FieldDate,
			Value: row.Day + string(config.FieldSeparator) + row.Month,
			Err:   ErrInvalidDate,
		}
	}

	name, surname, perr := requiredNames(row.Name, row.Surname)
	if perr != nil {
		return NamedayRecord{}, perr
	}

	return NamedayRecord{
		Day:      day,
		Month:    time.Month(month),
		Name:     name,
		Surname:  surname,
		Nickname: strings.TrimSpace(row.Nickname),
	}, nil
}

func requiredNames(name, surname string) (string, string, *ParseError) {
	name, surname = strings.TrimSpace(name), strings.TrimSpace(surname)
	if name == "" {
		return "", "", &ParseError{Field: config.FieldName, Err: ErrRequired}
	}
	if surname == "" {
		return "", "", &ParseError{Field: config.FieldSurname, Err: ErrRequired}
	}
	return name, surname, nil
}

// parseBirthDate accepts ISO and Czech short dates, with or without a year.
// Year-less dates come back with year 0, the "unknown" sentinel.
func parseBirthDate(value string) (time.Time, error) {
	v := strings.TrimSpace(value)

	for _, layout := range config.BirthdayLayoutsWithYear {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}

	for _, layout := range config.BirthdayLayoutsNoYear {
		if t, err := time.Parse(layout, v); err == nil {
			return time.Date(0, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, ErrInvalidDate
}

// validDayMonth accepts 29 February; it recurs every leap year.
func validDayMonth(day int, month time.Month) bool {
	if month < time.January || month > time.December || day < 1 {
		return false
	}
	t := time.Date(config.DefaultLeapYear, month, day, 0, 0, 0, 0, time.UTC)
	return t.Month() == month && t.Day() == day
}

func isVCardPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == config.ExtVCF || ext == config.ExtVCard
}
