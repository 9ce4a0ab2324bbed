package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/godbus/dbus/v5"
	"github.com/tartampluch/go-celebrants/internal/config"
)

// Logind listens to systemd-logind on the system bus for suspend/resume and
// for lock/unlock of the session running this process.
type Logind struct{}

// NewLogind returns a logind event source.
func NewLogind() *Logind {
	return &Logind{}
}

func (*Logind) Name() string { return "logind" }

// Watch subscribes to the signals and forwards them as events.
func (l *Logind) Watch(ctx context.Context, out chan<- Event) error {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrDBusConnect, err)
	}
	defer func() { _ = conn.Close() }()

	session := ownSession(ctx, conn)

	matches := [][]dbus.MatchOption{
		{dbus.WithMatchInterface(config.LogindManagerIface), dbus.WithMatchMember(config.LogindSleepMember)},
		sessionMatch(session, config.LogindLockMember),
		sessionMatch(session, config.LogindUnlockMember),
	}
	for _, opts := range matches {
		if err := conn.AddMatchSignalContext(ctx, opts...); err != nil {
			return fmt.Errorf("%s: %w", config.ErrDBusMatch, err)
		}
	}

	signals := make(chan *dbus.Signal, config.DBusSignalBuffer)
	conn.Signal(signals)
	defer conn.RemoveSignal(signals)

	for {
		select {
		case <-ctx.Done():
			return nil
		case sig, ok := <-signals:
			if !ok {
				return errors.New(config.ErrSourceStopped)
			}
			ev, ok := translateSignal(sig, session)
			if !ok {
				continue
			}
			slog.Debug(config.MsgEvent,
				config.LogKeyComponent, config.CompEvents,
				config.LogKeySignal, sig.Name,
				config.LogKeyEvent, ev.String())
			if !send(ctx, out, ev) {
				return nil
			}
		}
	}
}

func sessionMatch(session dbus.ObjectPath, member string) []dbus.MatchOption {
	opts := []dbus.MatchOption{
		dbus.WithMatchInterface(config.LogindSessionIface),
		dbus.WithMatchMember(member),
	}
	if session != "" {
		opts = append(opts, dbus.WithMatchObjectPath(session))
	}
	return opts
}

// ownSession asks logind which session this process belongs to.
// An empty path means lock signals of every session are accepted.
func ownSession(ctx context.Context, conn *dbus.Conn) dbus.ObjectPath {
	ctx, cancel := context.WithTimeout(ctx, config.LogindCallTimeout)
	defer cancel()

	var path dbus.ObjectPath
	obj := conn.Object(config.LogindService, dbus.ObjectPath(config.LogindPath))
	err := obj.CallWithContext(ctx, config.LogindSessionByPID, 0, uint32(os.Getpid())).Store(&path)
	if err != nil {
		slog.Debug(config.MsgSessionUnknown,
			config.LogKeyComponent, config.CompEvents,
			config.LogKeyError, err)
		return ""
	}
	return path
}

// translateSignal maps a logind signal to an event. Signals from sessions
// other than session are ignored when session is set.
func translateSignal(sig *dbus.Signal, session dbus.ObjectPath) (Event, bool) {
	switch sig.Name {
	case config.LogindManagerIface + "." + config.LogindSleepMember:
		if len(sig.Body) != 1 {
			return 0, false
		}
		sleeping, ok := sig.Body[0].(bool)
		if !ok {
			return 0, false
		}
		if sleeping {
			return Suspended, true
		}
		return Resumed, true

	case config.LogindSessionIface + "." + config.LogindLockMember:
		if session != "" && sig.Path != session {
			return 0, false
		}
		return SessionLocked, true

	case config.LogindSessionIface + "." + config.LogindUnlockMember:
		if session != "" && sig.Path != session {
			return 0, false
		}
		return SessionUnlocked, true
	}
	return 0, false
}
