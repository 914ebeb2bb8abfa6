package config

const (
	// ConfigPathEnv names the environment variable holding the config file path
	ConfigPathEnv = "RESPDIFF_CONFIG_PATH"

	// Diff Defaults
	DefaultDiffMaxDocumentSizeMB = 10
	DefaultDiffTimeoutSeconds    = 0

	// Report Defaults
	DefaultReportFormat       = "inline"
	DefaultReportContextLines = 3

	// Storage Defaults
	DefaultStorageSQLitePath = "database/respdiff/snapshots.db"

	// Fetch Defaults
	DefaultFetchTimeoutSecs        = 30
	DefaultFetchUserAgent          = "respdiff/1.0"
	DefaultFetchMaxResponseSizeMB  = 50
	DefaultFetchMaxRetries         = 2
	DefaultFetchRetryBaseDelayMs   = 500
	DefaultFetchRetryMaxDelayMs    = 5000
	DefaultFetchFollowRedirects    = true
	DefaultFetchMaxRedirects       = 10
	DefaultFetchEnableHTTP2        = true
	DefaultFetchInsecureSkipVerify = false

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3
)

// Output formats understood by the reporter
var SupportedOutputFormats = []string{"inline", "side-by-side", "unified", "json", "html"}
