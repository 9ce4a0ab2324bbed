package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-celebrants/internal/config"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LoadVCardBirthdays reads BirthdayRecords from a vCard address book.
// Cards without BDAY are skipped; a malformed BDAY aborts the load like a bad
// line in the text format. ParseError.Line holds the 1-based card index.
func LoadVCardBirthdays(path string) ([]BirthdayRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	dec := vcard.NewDecoder(transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder())))

	var records []BirthdayRecord
	for index := 1; ; index++ {
		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{
				Path:  path,
				Line:  index,
				Field: config.FieldRecord,
				Err:   fmt.Errorf("%s: %w", config.ErrVCardDecode, err),
			}
		}

		bday := card.Get(config.VCardBDAY)
		if bday == nil || strings.TrimSpace(bday.Value) == "" {
			slog.Debug(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompLoader,
				config.LogKeyCount, index)
			continue
		}

		date, err := parseBirthDate(bday.Value)
		if err != nil {
			return nil, &ParseError{Path: path, Line: index, Field: config.FieldDate, Value: bday.Value, Err: err}
		}

		name, surname := cardNames(card)
		if name == "" || surname == "" {
			return nil, &ParseError{Path: path, Line: index, Field: config.FieldName, Err: ErrRequired}
		}

		records = append(records, BirthdayRecord{
			BirthDate: date,
			Name:      name,
			Surname:   surname,
			Nickname:  strings.TrimSpace(card.Value(config.VCardNickname)),
		})
	}

	logLoaded(path, config.LogKeyBirthdays, len(records))
	return records, nil
}

// cardNames prefers the structured N field and falls back to splitting FN
// at its last space.
func cardNames(card vcard.Card) (string, string) {
	if n := card.Name(); n != nil {
		given, family := strings.TrimSpace(n.GivenName), strings.TrimSpace(n.FamilyName)
		if given != "" && family != "" {
			return given, family
		}
	}

	fn := strings.TrimSpace(card.Value(config.VCardFN))
	if i := strings.LastIndex(fn, " "); i > 0 {
		return strings.TrimSpace(fn[:i]), strings.TrimSpace(fn[i+1:])
	}
	return fn, ""
}
