package engine

import (
	"strings"
	"unicode/utf8"

	"github.com/tartampluch/go-celebrants/internal/config"
)

// Truncate fits report into limit characters (runes, not bytes).
//
// A report within the limit is returned unchanged. Otherwise the text is cut
// at the last line break before limit-len(suffix), trailing bucket headers and
// blank lines are dropped, and suffix is appended. When no celebrant line
// survives, the report is cut at the character budget instead and a
// *TruncationError is returned together with the usable text.
func Truncate(report string, limit int, suffix string) (string, error) {
	length := utf8.RuneCountInString(report)
	if length <= limit {
		return report, nil
	}

	suffixLen := utf8.RuneCountInString(suffix)
	budget := limit - suffixLen
	if budget <= 0 {
		return headRunes(suffix, limit), &TruncationError{Length: length, Limit: limit}
	}

	head := headRunes(report, budget)
	cut := strings.LastIndex(head, config.LineBreak)
	if cut < 0 {
		return head + suffix, &TruncationError{Length: length, Limit: limit}
	}

	lines := strings.Split(head[:cut], config.LineBreak)
	for len(lines) > 0 && !isCelebrantLine(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return head + suffix, &TruncationError{Length: length, Limit: limit}
	}

	return strings.Join(lines, config.LineBreak) + suffix, nil
}

// isCelebrantLine rejects blank separators and headers, which end in ':'.
func isCelebrantLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed != "" && !strings.HasSuffix(trimmed, config.HeaderTerminator)
}

func headRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
