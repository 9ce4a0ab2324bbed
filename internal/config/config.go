package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName     = "Go Celebrants"
	AppID       = "com.github.tartampluch.go-celebrants"
	CommandName = "go-celebrants"
	LogFileName = "app.log"
)

// -----------------------------------------------------------------------------
// Data Folder Layout
// -----------------------------------------------------------------------------

const (
	// AppFolderName is created inside the user's Documents directory.
	AppFolderName = "BirthdaysNamedays"

	BirthdaysFileName = "birthdays.txt"
	NamedaysFileName  = "namedays.txt"
	OutputFileName    = "output.txt"
	CalendarFileName  = "output.ics"
	JournalFileName   = "log.txt"
	SettingsFileName  = "settings.yaml"

	DocumentsFolderName = "Documents"

	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for the application log in the cache directory.
	FilePermUserRW fs.FileMode = 0600

	// FilePermDocument represents -rw-r--r--. The report and calendar export
	// live in the user's Documents folder and are opened by other programs.
	FilePermDocument fs.FileMode = 0644

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// DirPermDocument represents drwxr-xr-x for the Documents sub-folder.
	DirPermDocument fs.FileMode = 0755

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1

	// EventBufferSize absorbs bursts from the event sources (resume + unlock).
	EventBufferSize = 8
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagDebug      = "debug"
	FlagDir        = "dir"
	FlagDate       = "date"
	FlagDescDebug  = "Enable debug logging"
	FlagDescDir    = "Folder holding birthdays.txt, namedays.txt and the generated files"
	FlagDescDate   = "Evaluate the report for this day (YYYY-MM-DD) instead of today"
	CmdShortRoot   = "Tray notifier for birthdays and namedays"
	CmdLongRoot    = "Shows who celebrates a birthday or nameday yesterday, today, tomorrow or the day after, and journals power and session events."
	CmdUseCheck    = "check"
	CmdShortCheck  = "Run one check and print the full report"
	VersionFormat  = "%s version %s (%s/%s)\n"
	FlagDateLayout = "2006-01-02"
)

// -----------------------------------------------------------------------------
// Record Layout
// -----------------------------------------------------------------------------

const (
	FieldSeparator     = ';'
	BirthdayFieldCount = 4 // date;name;surname;nickname
	NamedayFieldCount  = 5 // day;month;name;surname;nickname

	FieldDate    = "date"
	FieldDay     = "day"
	FieldMonth   = "month"
	FieldName    = "name"
	FieldSurname = "surname"
	FieldRecord  = "record"

	// UnknownYearSentinel is the highest birth year that means "age unknown".
	// Both 0 and 1 are written by hand for people whose year nobody remembers.
	UnknownYearSentinel = 1

	// DefaultLeapYear validates day/month pairs so that 29 February is accepted.
	DefaultLeapYear = 2000
)

// Date layouts accepted for the birthdays file, tried in order.
var (
	BirthdayLayoutsWithYear = []string{
		"2006-1-2",
		"2.1.2006",
		"2. 1. 2006",
		"2006/1/2",
		"20060102",
	}
	BirthdayLayoutsNoYear = []string{
		"--01-02",
		"--0102",
		"2.1.",
		"2. 1.",
	}
)

// -----------------------------------------------------------------------------
// Report Layout
// -----------------------------------------------------------------------------

const (
	// NotificationLimit is the longest text the host notification accepts.
	NotificationLimit = 255

	// MinNotificationLimit leaves room for the suffix plus one celebrant line.
	MinNotificationLimit = 120

	LineBreak        = "\n"
	HeaderTerminator = ":"
	BucketIndent     = "   "
	CelebrantIndent  = "      "
	NicknameFormat   = " '%s'"
	AgeFormat        = " - %s"
	DefaultLanguage  = "cs"
	DataDebounce     = 500 * time.Millisecond
)

// Fixed Czech report strings. These double as fallbacks when a message is
// missing from the embedded locale bundle.
const (
	LabelBirthdays     = "Narozeniny:"
	LabelNamedays      = "Svátky:"
	LabelYesterday     = "Včera:"
	LabelToday         = "Dneska:"
	LabelTomorrow      = "Zítra:"
	LabelDayAfter      = "Pozítří:"
	LabelUnknownAge    = "neznámý věk"
	LabelNoCelebrants  = "Žádný oslavenec v dohledu..."
	LabelMoreSuffix    = "\n\nPro zobrazení dalších oslavenců otevři celý přehled."
	LabelNotifTitle    = "Oslavenci:"
	LabelEventBirthday = "Narozeniny: %s"
	LabelEventNameday  = "Svátek: %s"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyBirthdays      = "report_birthdays"
	TKeyNamedays       = "report_namedays"
	TKeyYesterday      = "bucket_yesterday"
	TKeyToday          = "bucket_today"
	TKeyTomorrow       = "bucket_tomorrow"
	TKeyDayAfter       = "bucket_day_after"
	TKeyUnknownAge     = "age_unknown"
	TKeyNoCelebrants   = "no_celebrants"
	TKeyMoreSuffix     = "more_suffix"
	TKeyNotifTitle     = "notif_title"
	TKeyEventBirthday  = "event_birthday" // printf format, one %s for the name
	TKeyEventNameday   = "event_nameday"  // printf format, one %s for the name
	TKeyMenuCheck      = "menu_check"
	TKeyMenuOpen       = "menu_open_report"
	TKeyMenuQuit       = "menu_quit"
	TKeyTrayStatus     = "tray_status" // Requires Count > 0
	TKeyTrayStatusZero = "tray_status_zero"
	TKeyTrayError      = "tray_error"

	TKeyWinCelebrants = "win_celebrants"
	TKeyColName       = "col_name"
	TKeyColDate       = "col_date"
	TKeyColKind       = "col_kind"
	TKeyColAge        = "col_age"
	TKeyKindBirthday  = "kind_birthday"
	TKeyKindNameday   = "kind_nameday"
	TKeyFormatDate    = "format_date"

	LocalesDir    = "locales"
	LocalePrefix  = "active."
	LocaleExt     = ".json"
	LocaleFormat  = "json"
	TemplateCount = "Count"
)

// -----------------------------------------------------------------------------
// UI Layout (celebrants window)
// -----------------------------------------------------------------------------

const (
	CelebrantsWinWidth  = 560
	CelebrantsWinHeight = 320

	ColIDName = 0
	ColIDDate = 1
	ColIDKind = 2
	ColIDAge  = 3
	ColCount  = 4

	ColWidthName = 240
	ColWidthDate = 110
	ColWidthKind = 110
	ColWidthAge  = 90

	TablePlaceholder  = "Placeholder Text"
	SortIconAsc       = " ▲"
	SortIconDesc      = " ▼"
	DateFormatDisplay = "2. 1."
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Celebrants//Engine//CS"
	ICalCalName = "Oslavenci"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "gocelebrants"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropCategories = "CATEGORIES"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	CategoryBirthday = "BIRTHDAY"
	CategoryNameday  = "NAMEDAY"

	VCardBDAY     = "BDAY"
	VCardFN       = "FN"
	VCardNickname = "NICKNAME"

	UIDSalt         = "go-celebrants-v1-"
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s|%s"
	FormatUID       = "%s-%s@%s"
	UIDDateLayout   = "20060102"

	// StubVCalendar is written when the window holds no celebrants.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// D-Bus (logind)
// -----------------------------------------------------------------------------

const (
	LogindService      = "org.freedesktop.login1"
	LogindPath         = "/org/freedesktop/login1"
	LogindManagerIface = "org.freedesktop.login1.Manager"
	LogindSessionIface = "org.freedesktop.login1.Session"
	LogindSessionByPID = LogindManagerIface + ".GetSessionByPID"
	LogindSleepMember  = "PrepareForSleep"
	LogindLockMember   = "Lock"
	LogindUnlockMember = "Unlock"
	LogindCallTimeout  = 2 * time.Second
	DBusSignalBuffer   = 8
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrFileAccess       = "cannot read data file"
	ErrTooFewFields     = "too few fields"
	ErrTooManyFields    = "too many fields"
	ErrNotNumber        = "not a number"
	ErrInvalidDate      = "invalid calendar date"
	ErrRequired         = "value is required"
	ErrRecordRead       = "malformed record"
	ErrRowDecode        = "failed to decode records"
	ErrVCardDecode      = "failed to decode vCard"
	ErrNoLineBoundary   = "report has no celebrant line before the cut"
	ErrWriteOutput      = "failed to write report file"
	ErrWriteCalendar    = "failed to write calendar export"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrLoadBirthdays    = "failed to load birthdays"
	ErrLoadNamedays     = "failed to load namedays"
	ErrSettingsRead     = "failed to read settings"
	ErrSettingsParse    = "failed to parse settings"
	ErrDocumentsDir     = "could not determine documents dir"
	ErrNoHomeDir        = "home directory is not set"
	ErrCreateDir        = "could not create app folder"
	ErrCacheDir         = "could not determine user cache dir"
	ErrLogFile          = "failed to open log file"
	ErrJournalOpen      = "failed to open journal"
	ErrAppFailed        = "application failed unexpectedly"
	ErrCheckFailed      = "check failed"
	ErrBadDateFlag      = "invalid --date value"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrOpenReport       = "failed to open report"
	ErrDBusConnect      = "failed to connect to system bus"
	ErrDBusMatch        = "failed to subscribe to logind signals"
	ErrWatcherCreate    = "failed to create file watcher"
	ErrWatcherAdd       = "failed to watch app folder"
	ErrSourceStopped    = "event source stopped"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting     = "Starting application"
	MsgAppStop         = "Application stopped gracefully"
	MsgCtxCancel       = "Context cancelled, shutting down UI"
	MsgCheckStarted    = "Check started"
	MsgCheckFinished   = "Check finished"
	MsgCheckReq        = "Check requested"
	MsgCheckQueued     = "Check already queued, coalescing trigger"
	MsgRecordsLoaded   = "Records loaded"
	MsgReportWritten   = "Report written"
	MsgCalendarWritten = "Calendar export written"
	MsgTruncated       = "Report truncated for notification"
	MsgTruncFallback   = "Report cut without a line boundary"
	MsgSkippedCard     = "Skipping vCard without birthday"
	MsgSettingsMissing = "Settings file not found, using defaults"
	MsgSettingsLoaded  = "Settings loaded"
	MsgEvent           = "Lifecycle event"
	MsgWorkerStart     = "Check worker started"
	MsgWorkerStop      = "Worker stopping due to context cancellation"
	MsgSourceStart     = "Event source started"
	MsgDataChanged     = "Data file changed"
	MsgSourceFailed    = "Event source stopped with error"
	MsgSessionUnknown  = "Own logind session not found, accepting every session"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgOpenReport      = "Opening full report"
	MsgOpenWin         = "Opening celebrants window"
	MsgSorted          = "Celebrants sorted"
)

// Journal lines, one per lifecycle event.
const (
	JournalStarted   = "Application started."
	JournalSuspended = "System suspended. Application paused."
	JournalResumed   = "System resumed. Application continued."
	JournalLocked    = "Session locked."
	JournalUnlocked  = "Session unlocked."
)

// -----------------------------------------------------------------------------
// Fallbacks
// -----------------------------------------------------------------------------

const (
	FallbackTrayLabel   = "Go Celebrants"
	FallbackTrayDefault = "Oslavenci dnes: %d"
	FallbackTrayError   = "Go Celebrants: chyba kontroly"
	FallbackMenuCheck   = "Zkontrolovat"
	FallbackMenuOpen    = "Otevřít celý přehled"
	FallbackMenuQuit    = "Konec"
	FallbackWinTitle    = "Oslavenci"
	FallbackColName     = "Jméno"
	FallbackColDate     = "Den"
	FallbackColKind     = "Druh"
	FallbackColAge      = "Věk"
	FallbackKindBday    = "narozeniny"
	FallbackKindNameday = "svátek"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyPath      = "path"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyKind      = "kind"
	LogKeyCount     = "count"
	LogKeyEvent     = "event"
	LogKeyTrigger   = "trigger"
	LogKeyToday     = "today"
	LogKeyLength    = "length"
	LogKeyLimit     = "limit"
	LogKeySource    = "source"
	LogKeySignal    = "signal"
	LogKeyDuration  = "duration_ms"
	LogKeyStats     = "stats"
	LogKeyBirthdays = "birthdays"
	LogKeyNamedays  = "namedays"
	LogKeyMatches   = "celebrants"
	LogKeySortCol   = "sort_col"
	LogKeySortAsc   = "sort_asc"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyDate    = "date"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
	LogKeyDir     = "dir"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI     = "ui"
	CompEngine = "engine"
	CompLoader = "loader"
	CompEvents = "events"
	CompWorker = "worker"
	CompMain   = "main"
	CompI18n   = "i18n"
	CompConfig = "config"
)
