package engine

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-celebrants/internal/config"
)

// Causes wrapped by ParseError.
var (
	ErrTooFewFields  = errors.New(config.ErrTooFewFields)
	ErrTooManyFields = errors.New(config.ErrTooManyFields)
	ErrNotNumber     = errors.New(config.ErrNotNumber)
	ErrInvalidDate   = errors.New(config.ErrInvalidDate)
	ErrRequired      = errors.New(config.ErrRequired)
)

// FileAccessError reports a data file that does not exist or cannot be opened.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("%s %s: %v", config.ErrFileAccess, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// ParseError reports a malformed line or field. Line is 1-based; for vCard
// sources it counts cards instead of lines.
type ParseError struct {
	Path  string
	Line  int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: failed to parse %s='%s': %v",
		e.Path, e.Line, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// TruncationError is returned alongside a usable text when the report could
// not be cut at a line boundary and a hard character cut was applied instead.
type TruncationError struct {
	Length int
	Limit  int
}

func (e *TruncationError) Error() string {
	return fmt.Sprintf("%s (length %d, limit %d)", config.ErrNoLineBoundary, e.Length, e.Limit)
}
