// Package config holds the application settings and loads them from a YAML
// or JSON file. Every section has defaults, so a missing file or a partial
// one is fine.
package config

// Config is the root of the configuration file.
type Config struct {
	Diff    DiffConfig    `json:"diff,omitempty" yaml:"diff,omitempty"`
	Fetch   FetchConfig   `json:"fetch,omitempty" yaml:"fetch,omitempty"`
	Log     LogConfig     `json:"log,omitempty" yaml:"log,omitempty"`
	Report  ReportConfig  `json:"report,omitempty" yaml:"report,omitempty"`
	Storage StorageConfig `json:"storage,omitempty" yaml:"storage,omitempty"`
}

// NewDefaultConfig returns a Config with every section at its defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Diff:    NewDefaultDiffConfig(),
		Fetch:   NewDefaultFetchConfig(),
		Log:     NewDefaultLogConfig(),
		Report:  NewDefaultReportConfig(),
		Storage: StorageConfig{SQLitePath: DefaultStorageSQLitePath},
	}
}

// LogConfig controls the application log. File output rotates once the file
// reaches MaxSizeMB.
type LogConfig struct {
	Level      string `json:"level,omitempty" yaml:"level,omitempty" validate:"omitempty,loglevel"`
	Format     string `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,logformat"`
	File       string `json:"file,omitempty" yaml:"file,omitempty"`
	MaxSizeMB  int    `json:"max_size_mb,omitempty" yaml:"max_size_mb,omitempty" validate:"min=0"`
	MaxBackups int    `json:"max_backups,omitempty" yaml:"max_backups,omitempty" validate:"min=0"`
}

func NewDefaultLogConfig() LogConfig {
	return LogConfig{
		Level:      DefaultLogLevel,
		Format:     DefaultLogFormat,
		MaxSizeMB:  DefaultMaxLogSizeMB,
		MaxBackups: DefaultMaxLogBackups,
	}
}

// ReportConfig controls how comparisons are rendered.
type ReportConfig struct {
	Format       string `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,outputformat"`
	NoColor      bool   `json:"no_color" yaml:"no_color"`
	OnlyChanges  bool   `json:"only_changes" yaml:"only_changes"`
	ContextLines int    `json:"context_lines,omitempty" yaml:"context_lines,omitempty" validate:"min=0"`
	Width        int    `json:"width,omitempty" yaml:"width,omitempty" validate:"omitempty,min=40"`
}

func NewDefaultReportConfig() ReportConfig {
	return ReportConfig{
		Format:       DefaultReportFormat,
		ContextLines: DefaultReportContextLines,
	}
}

// StorageConfig says where saved snapshots live.
type StorageConfig struct {
	SQLitePath string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty" validate:"required"`
}
