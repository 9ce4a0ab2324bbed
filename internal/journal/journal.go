// Package journal keeps the append-only lifecycle log (log.txt) next to the
// data files. Each line carries a timestamp and one fixed message.
package journal

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/tartampluch/go-celebrants/internal/config"
	"github.com/tartampluch/go-celebrants/internal/events"
)

var messages = map[events.Event]string{
	events.Started:         config.JournalStarted,
	events.Suspended:       config.JournalSuspended,
	events.Resumed:         config.JournalResumed,
	events.SessionLocked:   config.JournalLocked,
	events.SessionUnlocked: config.JournalUnlocked,
}

// Journal writes lifecycle lines. It is safe for concurrent use.
type Journal struct {
	mu     sync.Mutex
	logger *slog.Logger
	closer io.Closer
}

// Open appends to the journal file at path, creating it if needed.
func Open(path string) (*Journal, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, config.FilePermDocument)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrJournalOpen, err)
	}
	j := New(f)
	j.closer = f
	return j, nil
}

// New writes journal lines to w.
func New(w io.Writer) *Journal {
	return &Journal{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

// Record writes the line for ev. Events without a journal line are ignored.
func (j *Journal) Record(ev events.Event) {
	msg, ok := messages[ev]
	if !ok {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.logger.Info(msg, config.LogKeyEvent, ev.String())
}

// Close releases the underlying file, if any.
func (j *Journal) Close() error {
	if j.closer == nil {
		return nil
	}
	return j.closer.Close()
}
