package logger

import (
	"errors"
	"io"
	stdlog "log"

	"github.com/aleister1102/respdiff/internal/common"
	"github.com/aleister1102/respdiff/internal/config"
	"github.com/rs/zerolog"
)

var errNoWriters = errors.New("no output writers configured")

// LoggerBuilder provides fluent interface for building loggers
type LoggerBuilder struct {
	settings      Settings
	consoleOutput io.Writer
	err           error
}

// NewLoggerBuilder creates a new logger builder
func NewLoggerBuilder() *LoggerBuilder {
	return &LoggerBuilder{settings: DefaultSettings()}
}

// WithConfig applies the application log config. An invalid level is
// reported by Build.
func (lb *LoggerBuilder) WithConfig(cfg config.LogConfig) *LoggerBuilder {
	settings, err := SettingsFromConfig(cfg)
	settings.Console = lb.settings.Console
	settings.NoColor = lb.settings.NoColor
	lb.settings = settings
	lb.err = err
	return lb
}

// WithLevel sets the minimum level
func (lb *LoggerBuilder) WithLevel(level zerolog.Level) *LoggerBuilder {
	lb.settings.Level = level
	return lb
}

// WithFormat sets the output format
func (lb *LoggerBuilder) WithFormat(format Format) *LoggerBuilder {
	lb.settings.Format = format
	return lb
}

// WithFile enables rotating file output; an empty path disables it
func (lb *LoggerBuilder) WithFile(path string, maxSizeMB, maxBackups int) *LoggerBuilder {
	lb.settings.FilePath = path
	lb.settings.MaxSizeMB = maxSizeMB
	lb.settings.MaxBackups = maxBackups
	return lb
}

// WithConsole toggles console output
func (lb *LoggerBuilder) WithConsole(enabled bool) *LoggerBuilder {
	lb.settings.Console = enabled
	return lb
}

// WithConsoleOutput redirects console output, which defaults to stderr
func (lb *LoggerBuilder) WithConsoleOutput(w io.Writer) *LoggerBuilder {
	lb.consoleOutput = w
	return lb
}

// WithNoColor disables ANSI colors on the console writer
func (lb *LoggerBuilder) WithNoColor(noColor bool) *LoggerBuilder {
	lb.settings.NoColor = noColor
	return lb
}

// Build creates the logger. The standard log package is routed through it.
func (lb *LoggerBuilder) Build() (*Logger, error) {
	if lb.err != nil {
		return nil, lb.err
	}
	s := lb.settings
	if s.FilePath != "" && s.MaxSizeMB <= 0 {
		return nil, common.NewValidationError("max_size_mb", s.MaxSizeMB, "max size must be positive")
	}

	var writers []io.Writer
	var closers []io.Closer
	if s.Console {
		writers = append(writers, consoleWriter(lb.consoleOutput, s))
	}
	if s.FilePath != "" {
		w, closer, err := fileWriter(s)
		if err != nil {
			return nil, common.WrapError(err, "failed to create log writers")
		}
		writers = append(writers, w)
		closers = append(closers, closer)
	}
	if len(writers) == 0 {
		return nil, errNoWriters
	}

	zl := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(s.Level).
		With().
		Timestamp().
		Logger()

	stdlog.SetOutput(zl)
	stdlog.SetFlags(0)

	return &Logger{zerolog: zl, settings: s, closers: closers}, nil
}
