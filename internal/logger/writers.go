package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// formatWriter wraps out for the given format. JSON events pass through
// untouched; console and text use zerolog's human readable layout.
func formatWriter(out io.Writer, format Format, noColor bool) io.Writer {
	if format == FormatJSON {
		return out
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    noColor || format == FormatText,
	}
}

// consoleWriter writes to out, or to stderr when out is nil.
func consoleWriter(out io.Writer, s Settings) io.Writer {
	if out == nil {
		out = os.Stderr
	}
	return formatWriter(out, s.Format, s.NoColor)
}

// fileWriter opens a rotating log file, creating its directory. Files never
// get ANSI colors.
func fileWriter(s Settings) (io.Writer, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(s.FilePath), 0755); err != nil {
		return nil, nil, err
	}

	rotating := &lumberjack.Logger{
		Filename:   s.FilePath,
		MaxSize:    s.MaxSizeMB,
		MaxBackups: s.MaxBackups,
		LocalTime:  true,
	}
	return formatWriter(rotating, s.Format, true), rotating, nil
}
