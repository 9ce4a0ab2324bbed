package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-celebrants/internal/config"
	"github.com/tartampluch/go-celebrants/internal/engine"
	"github.com/tartampluch/go-celebrants/internal/events"
	"github.com/tartampluch/go-celebrants/internal/journal"
	"github.com/tartampluch/go-celebrants/internal/ui"
)

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// (like closing log files) are executed before the process terminates.
func main() {
	os.Exit(runMain())
}

// runMain wires the signal context and executes the command tree.
func runMain() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}

// options holds the flags shared by every command.
type options struct {
	dir   string
	debug bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           config.CommandName,
		Short:         config.CmdShortRoot,
		Long:          config.CmdLongRoot,
		Version:       config.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			closer := setupLogging(opts.debug, os.Stdout)
			if closer != nil {
				defer func() { _ = closer.Close() }()
			}
			logStartupInfo()

			if err := runTray(cmd.Context(), opts); err != nil {
				slog.Error(config.ErrAppFailed,
					config.LogKeyComponent, config.CompMain,
					config.LogKeyError, err,
				)
				return err
			}
			slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
			return nil
		},
	}
	root.SetVersionTemplate(fmt.Sprintf(config.VersionFormat, config.AppName, config.Version, runtime.GOOS, runtime.GOARCH))

	root.PersistentFlags().StringVar(&opts.dir, config.FlagDir, "", config.FlagDescDir)
	root.PersistentFlags().BoolVar(&opts.debug, config.FlagDebug, false, config.FlagDescDebug)

	root.AddCommand(newCheckCmd(opts))
	return root
}

func newCheckCmd(opts *options) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   config.CmdUseCheck,
		Short: config.CmdShortCheck,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The report goes to stdout, so logs move to stderr.
			closer := setupLogging(opts.debug, cmd.ErrOrStderr())
			if closer != nil {
				defer func() { _ = closer.Close() }()
			}
			return runCheck(cmd.Context(), opts, date, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&date, config.FlagDate, "", config.FlagDescDate)
	return cmd
}

// runTray initializes the Fyne application, wires dependencies, and starts the UI loop.
func runTray(ctx context.Context, opts *options) error {
	paths, settings, err := prepare(opts)
	if err != nil {
		return err
	}

	j, err := journal.Open(paths.Journal)
	if err != nil {
		return err
	}
	defer func() { _ = j.Close() }()

	var sources []events.Source
	if settings.SessionEvents {
		sources = append(sources, events.NewLogind())
	}
	if settings.WatchDataFiles {
		sources = append(sources, events.NewFileWatcher(config.DataDebounce, paths.Birthdays, paths.Namedays))
	}

	a := app.NewWithID(config.AppID)
	gui := ui.NewCelebrantsApp(a, ctx, newChecker(paths, settings, engine.RealClock{}), j, sources...)

	// Lifecycle Bridge:
	// Watch for context cancellation to quit the UI gracefully.
	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	gui.Run()
	return nil
}

// runCheck performs one cycle without the tray and prints the full report.
func runCheck(ctx context.Context, opts *options, date string, out io.Writer) error {
	var clock engine.Clock = engine.RealClock{}
	if date != "" {
		day, err := time.ParseInLocation(config.FlagDateLayout, date, time.Local)
		if err != nil {
			return fmt.Errorf("%s: %w", config.ErrBadDateFlag, err)
		}
		clock = engine.FixedClock{At: day}
	}

	paths, settings, err := prepare(opts)
	if err != nil {
		return err
	}

	res, err := newChecker(paths, settings, clock).Run(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrCheckFailed, err)
	}

	_, err = io.WriteString(out, res.Report)
	return err
}

// prepare resolves the data folder and reads the optional settings file.
func prepare(opts *options) (config.Paths, config.Settings, error) {
	paths, err := resolvePaths(opts.dir)
	if err != nil {
		return config.Paths{}, config.Settings{}, err
	}
	if err := paths.EnsureDir(); err != nil {
		return config.Paths{}, config.Settings{}, err
	}

	settings, err := config.LoadSettings(paths.Settings)
	if err != nil {
		// LoadSettings still returned the defaults.
		slog.Warn(config.ErrSettingsParse,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyPath, paths.Settings,
			config.LogKeyError, err)
	}

	slog.Debug(config.MsgSettingsLoaded,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyDir, paths.Dir)
	return paths, settings, nil
}

// resolvePaths uses dir when given, the Documents folder otherwise.
func resolvePaths(dir string) (config.Paths, error) {
	if dir != "" {
		return config.NewPaths(dir), nil
	}
	return config.DefaultPaths()
}

func newChecker(paths config.Paths, settings config.Settings, clock engine.Clock) *engine.Checker {
	return &engine.Checker{
		Clock:          clock,
		Paths:          paths,
		Labels:         engine.DefaultLabels(),
		Limit:          settings.NotificationLimit,
		ExportCalendar: settings.CalendarExport,
	}
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyCommit, config.Commit),
			slog.String(config.LogKeyDate, config.Date),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger to write to console and
// to a file in the user's cache directory.
func setupLogging(debugMode bool, console io.Writer) io.Closer {
	writers := []io.Writer{console}
	var logFile *os.File

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts)))

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	// Ensure the directory exists with restricted permissions (700).
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
