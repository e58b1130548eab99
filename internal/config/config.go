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

// UserAgent identifies the HTTP client used for remote imports.
var UserAgent = "Go-Contacts/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Contacts"
	AppID             = "com.github.tartampluch.go-contacts"
	AppDirName        = "go-contacts"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	ConfigFileName    = "config.yml"
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
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	CmdUse           = "go-contacts"
	CmdShort         = "Interactive contact and birthday assistant"
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagConfig       = "config"
	FlagServe        = "serve"
	FlagLang         = "lang"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging"
	FlagDescConfig   = "Path to the YAML settings file"
	FlagDescServe    = "Serve the upcoming-birthday calendar on this localhost port"
	FlagDescLang     = "Reply language (overrides the settings file)"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Commands
// -----------------------------------------------------------------------------

const (
	CmdHello           = "hello"
	CmdAdd             = "add"
	CmdChange          = "change"
	CmdPhone           = "phone"
	CmdRemovePhone     = "remove-phone"
	CmdAll             = "all"
	CmdAddBirthday     = "add-birthday"
	CmdAddBirthdayAlt  = "add_birthday"
	CmdShowBirthday    = "show-birthday"
	CmdShowBirthdayAlt = "show_birthday"
	CmdBirthdays       = "birthdays"
	CmdDelete          = "delete"
	CmdExport          = "export"
	CmdCalendar        = "calendar"
	CmdImport          = "import"
	CmdHelp            = "help"
	CmdClose           = "close"
	CmdExit            = "exit"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultLanguage   = "en"
	DefaultWindowDays = 7
	DefaultPrompt     = "Enter a command: "
	UIDSalt           = "go-contacts-v1-" // Salt for deterministic UID generation

	// PhoneDigits is the exact length of a stored phone number.
	PhoneDigits = 10

	// PhoneSeparators are stripped from imported vCard TEL values.
	PhoneSeparators = " -.()/"

	RecordFormat   = "Contact name: %s, phones: %s"
	PhoneJoin      = "; "
	GreetingFormat = "%s : %s"
	LineSeparator  = "\n"
	NameSeparator  = " "
	QuoteRune      = '"'
	ExtVCF         = ".vcf"
)

// SupportedLanguages defines the list of available reply languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Date Formats
// -----------------------------------------------------------------------------

const (
	// DateFormatDisplay is the single user-facing date layout (DD.MM.YYYY).
	DateFormatDisplay = "02.01.2006"

	// Date layouts used for parsing vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Contacts//Greetings//EN"
	ICalCalName = "Birthday greetings"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "gocontacts"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	VCardVersion = "4.0"

	DefaultICalRefresh = 1 * time.Hour

	FallbackSummary = "Birthday: %s"

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"

	// StubVCalendar is the minimal valid iCalendar object used when no greetings are due.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	AddrSeparator       = ":"
	MinPort             = 1
	MaxPort             = 65535
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"
	HeaderAccept          = "Accept"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeAcceptVCard     = "text/vcard, text/x-vcard;q=0.9, */*;q=0.1"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrPhoneFormat      = "phone number must contain exactly 10 digits"
	ErrDateFormat       = "invalid date format, use DD.MM.YYYY"
	ErrNotFound         = "contact not found"
	ErrMissingArg       = "missing argument"
	ErrWindow           = "window must be a positive number of days"
	ErrUnknownCmd       = "unknown command"
	ErrSourceEmpty      = "import source is empty"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrPortNumber       = "server port must be a number"
	ErrPortRange        = "server port must be between 1 and 65535"
	ErrLanguage         = "unsupported language"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrFetchRequest     = "failed to create request"
	ErrFetchNetwork     = "network error during fetch"
	ErrFetchStatus      = "address book server returned an error status"
	ErrFetchTooLarge    = "address book exceeds the download size limit"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrVCardEncode      = "failed to encode vCard data"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrDateParse        = "unable to parse date"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrConfigRead       = "failed to read settings file"
	ErrConfigParse      = "failed to parse settings file"
	ErrConfigDefaults   = "failed to apply settings defaults"
	ErrConfigInvalid    = "invalid settings"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrReadInput        = "failed to read input"
	ErrWriteOutput      = "failed to write reply"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrCommandFailed    = "command failed"
	ErrPublishCalendar  = "failed to render calendar feed"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped gracefully"
	MsgSessionStart  = "Session started"
	MsgSessionEnd    = "Session ended"
	MsgCommand       = "Command dispatched"
	MsgCommandErr    = "Command rejected"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCtxCancel     = "Signal received, stopping"
	MsgCacheUpdated  = "Calendar cache updated"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgSkippedPhone  = "Skipping invalid phone number"
	MsgSkippedName   = "Skipping vCard without a name"
	MsgImportDone    = "Import finished"
	MsgFetchStart    = "Initiating vCard download"
	MsgFetchStatus   = "Server returned error status"
	MsgFetchBody     = "vCards downloading"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgConfigLoaded  = "Settings loaded"
	MsgConfigMissing = "Settings file not found, using defaults"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyCommand   = "command"
	LogKeyArgs      = "args"
	LogKeyName      = "name"
	LogKeyValue     = "value"
	LogKeySource    = "source"
	LogKeyCount     = "count"
	LogKeyTotal     = "total_cards"
	LogKeySkipped   = "skipped_cards"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyLength    = "content_length"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain     = "main"
	CompSession  = "session"
	CompEngine   = "engine"
	CompImporter = "importer"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompI18n     = "i18n"
	CompSettings = "settings"
)
