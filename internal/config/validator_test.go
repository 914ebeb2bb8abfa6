package config

import (
	"testing"

	"github.com/aleister1102/respdiff/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateExclusionPath(t *testing.T) {
	valid := []string{"a", "a.b.c", "items[*].id", "items[3]", "[*].id", "[0]", "weird-key.x_y"}
	for _, p := range valid {
		assert.NoError(t, ValidateExclusionPath(p), p)
	}

	invalid := []string{"", "  ", "a..b", ".a", "a.", "items[x]", "items[", "a]", "a[1][2]"}
	for _, p := range invalid {
		assert.Error(t, ValidateExclusionPath(p), p)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{
			name:    "bad log level",
			mutate:  func(cfg *Config) { cfg.Log.Level = "verbose" },
			wantErr: "Log.Level",
		},
		{
			name:    "bad log format",
			mutate:  func(cfg *Config) { cfg.Log.Format = "xml" },
			wantErr: "rule 'logformat'",
		},
		{
			name:    "bad output format",
			mutate:  func(cfg *Config) { cfg.Report.Format = "pdf" },
			wantErr: "rule 'outputformat'",
		},
		{
			name:    "bad exclusion path",
			mutate:  func(cfg *Config) { cfg.Diff.ExclusionPaths = []string{"ok", "a..b"} },
			wantErr: "rule 'exclusionpath'",
		},
		{
			name:    "negative context",
			mutate:  func(cfg *Config) { cfg.Report.ContextLines = -1 },
			wantErr: "Report.ContextLines",
		},
		{
			name:    "missing sqlite path",
			mutate:  func(cfg *Config) { cfg.Storage.SQLitePath = "" },
			wantErr: "Storage.SQLitePath",
		},
		{
			name:    "bad retry status",
			mutate:  func(cfg *Config) { cfg.Fetch.Retry.StatusCodes = []int{42} },
			wantErr: "Fetch.Retry.StatusCodes",
		},
		{
			name:    "too many retries",
			mutate:  func(cfg *Config) { cfg.Fetch.Retry.MaxRetries = 11 },
			wantErr: "MaxRetries",
		},
		{
			name:   "upper case values accepted",
			mutate: func(cfg *Config) { cfg.Log.Level = "DEBUG"; cfg.Report.Format = "JSON" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.ErrorIs(t, err, common.ErrInvalidConfiguration)
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	assert.Error(t, Validate(nil))
}
