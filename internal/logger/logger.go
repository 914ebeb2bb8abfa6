// Package logger builds the zerolog loggers used by the respdiff commands.
// Console logs go to stderr so reports written to stdout stay parseable.
package logger

import (
	"io"
	"strings"

	"github.com/aleister1102/respdiff/internal/common"
	"github.com/aleister1102/respdiff/internal/config"
	"github.com/rs/zerolog"
)

// Format selects how log events are written.
type Format int

const (
	FormatConsole Format = iota
	FormatJSON
	FormatText
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatText:
		return "text"
	default:
		return "console"
	}
}

// ParseFormat maps a config value to a Format. Unknown values mean console.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	default:
		return FormatConsole
	}
}

// ParseLevel maps a config value to a zerolog level. Empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel, common.WrapError(err, "invalid log level")
	}
	return level, nil
}

// Settings is the resolved logger setup.
type Settings struct {
	Level      zerolog.Level
	Format     Format
	Console    bool
	NoColor    bool
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
}

// DefaultSettings logs at info level to the console only.
func DefaultSettings() Settings {
	return Settings{
		Level:      zerolog.InfoLevel,
		Format:     FormatConsole,
		Console:    true,
		MaxSizeMB:  config.DefaultMaxLogSizeMB,
		MaxBackups: config.DefaultMaxLogBackups,
	}
}

// SettingsFromConfig resolves the log section of the application config.
// An unknown level is returned as an error together with usable settings at
// info level.
func SettingsFromConfig(cfg config.LogConfig) (Settings, error) {
	s := DefaultSettings()
	level, err := ParseLevel(cfg.Level)
	s.Level = level
	s.Format = ParseFormat(cfg.Format)
	s.FilePath = cfg.File
	if cfg.MaxSizeMB > 0 {
		s.MaxSizeMB = cfg.MaxSizeMB
	}
	if cfg.MaxBackups > 0 {
		s.MaxBackups = cfg.MaxBackups
	}
	return s, err
}

// Logger owns a zerolog logger and the files it writes to.
type Logger struct {
	zerolog  zerolog.Logger
	settings Settings
	closers  []io.Closer
}

// GetZerolog returns the underlying zerolog instance
func (l *Logger) GetZerolog() *zerolog.Logger {
	return &l.zerolog
}

// Settings returns what the logger was built with.
func (l *Logger) Settings() Settings {
	return l.settings
}

// Close releases any log files.
func (l *Logger) Close() error {
	var collector common.ErrorCollector
	for _, c := range l.closers {
		collector.Add(c.Close())
	}
	l.closers = nil
	return collector.Error()
}

// New creates a logger from the application log configuration
func New(cfg config.LogConfig) (zerolog.Logger, error) {
	logger, err := NewLoggerBuilder().WithConfig(cfg).Build()
	if err != nil {
		return zerolog.Logger{}, err
	}
	return *logger.GetZerolog(), nil
}
